package aura

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePreset(t *testing.T) {
	tests := []struct {
		preset  string
		payload string
	}{
		{"Auto", "!AB01#"},
		{"High", "!AB01$"},
		{"Medium", "!AB01%"},
		{"Low", "!AB01&"},
		{"Party", "!AB01'01"},
		{"Away", "!AB01(01"},
		{"Frost", "!AB01)"},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cmd, err := EncodePreset("AB01", tt.preset)
			require.NoError(t, err)

			assert.Equal(t, CommandPreset, cmd.Kind)
			assert.Equal(t, AttrMode, cmd.Attribute)
			assert.Equal(t, tt.payload, cmd.Payload)
			assert.Equal(t, tt.preset, cmd.Preset)
		})
	}
}

func TestEncodePreset_IndexRoundTrip(t *testing.T) {
	for i, preset := range RunModes {
		cmd, err := EncodePreset("AB01", preset)
		require.NoError(t, err)

		r := []rune(cmd.Payload)
		assert.Equal(t, i, int(r[5])-presetOffset, preset)
		assert.Equal(t, i, PresetIndex(preset))
	}
}

func TestEncodePreset_Invalid(t *testing.T) {
	_, err := EncodePreset("AB01", "Turbo")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	_, err = EncodePreset("", "Low")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	// Names from the mode table that are not selectable presets
	_, err = EncodePreset("AB01", "OFFLINE")
	assert.True(t, IsValidationError(err))
}

func TestEncodeTemperature(t *testing.T) {
	tests := []struct {
		in       float64
		payload  string
		expected float64
	}{
		{21.5, "!AB01K", 21.5},
		{20.0, "!AB01H", 20.0},
		{21.3, "!AB01K", 21.5},
		{21.2, "!AB01J", 21.0},
		{5.0, "!AB01*", 5.0},
		{35.0, "!AB01f", 35.0},
	}

	for _, tt := range tests {
		cmd, err := EncodeTemperature("AB01", tt.in)
		require.NoError(t, err)

		assert.Equal(t, CommandTemperature, cmd.Kind)
		assert.Equal(t, AttrTemperature, cmd.Attribute)
		assert.Equal(t, tt.payload, cmd.Payload, "temperature %.1f", tt.in)
		assert.Equal(t, tt.expected, cmd.Temperature)
	}
}

func TestEncodeTemperature_RoundTrip(t *testing.T) {
	for temp := MinTemperature; temp <= MaxTemperature; temp += TemperatureStep {
		assert.Equal(t, temp, DecodeTemperature(EncodeTemperatureRune(temp)))
	}
}

func TestEncodeTemperature_OutOfRange(t *testing.T) {
	for _, temp := range []float64{4.5, 35.5, -1} {
		_, err := EncodeTemperature("AB01", temp)
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	}
}

func TestEncodeHotWater(t *testing.T) {
	on, err := EncodeHotWater("AB12", true)
	require.NoError(t, err)
	assert.Equal(t, "!AB12# ", on.Payload)
	assert.Equal(t, AttrMode, on.Attribute)
	assert.Equal(t, CommandHotWater, on.Kind)
	assert.True(t, on.HotWaterOn)

	off, err := EncodeHotWater("AB12", false)
	require.NoError(t, err)
	assert.Equal(t, "!AB12$ ", off.Payload)
	assert.False(t, off.HotWaterOn)
}

func TestCommandKindString(t *testing.T) {
	assert.Equal(t, "preset", CommandPreset.String())
	assert.Equal(t, "temperature", CommandTemperature.String())
	assert.Equal(t, "hot water", CommandHotWater.String())
	assert.Equal(t, "CommandKind(9)", CommandKind(9).String())
}

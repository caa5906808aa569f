package aura

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTemperature(t *testing.T) {
	tests := []struct {
		name    string
		temp    float64
		wantErr bool
	}{
		{"minimum", 5.0, false},
		{"maximum", 35.0, false},
		{"typical", 21.5, false},
		{"below minimum", 4.9, true},
		{"above maximum", 35.1, true},
		{"nan", math.NaN(), true},
		{"infinity", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemperature(tt.temp)
			if tt.wantErr {
				assert.True(t, IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePreset(t *testing.T) {
	for _, preset := range RunModes {
		assert.NoError(t, ValidatePreset(preset))
	}
	assert.Error(t, ValidatePreset("low"))
	assert.Error(t, ValidatePreset(""))
}

func TestValidateDeviceID(t *testing.T) {
	assert.NoError(t, ValidateDeviceID("AB01"))
	assert.Error(t, ValidateDeviceID(""))
	assert.Error(t, ValidateDeviceID("   "))
	assert.Error(t, ValidateDeviceID("AB!1"))
	assert.Error(t, ValidateDeviceID("AB,1"))
}

func TestValidateHost(t *testing.T) {
	assert.NoError(t, ValidateHost(DefaultHost))
	assert.NoError(t, ValidateHost("http://localhost:8080"))
	assert.Error(t, ValidateHost(""))
	assert.Error(t, ValidateHost("ftp://example.com"))
	assert.Error(t, ValidateHost("example.com"))
	assert.Error(t, ValidateHost("https://"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("me@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("example.com"))
	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("me@"))
}

package aura

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHotWater(t *testing.T) {
	tests := []struct {
		name    string
		idValue string
		summary string
		wantID  string
		wantOn  bool
	}{
		{
			name:    "on",
			idValue: "(AB12)",
			summary: "AB12x3yz",
			wantID:  "AB12",
			wantOn:  true,
		},
		{
			name:    "off",
			idValue: "(AB12)",
			summary: "AB12x4yz",
			wantID:  "AB12",
			wantOn:  false,
		},
		{
			name:    "first matching chunk decides",
			idValue: "(AB12)",
			summary: "AB12x4yzAB12x3yz",
			wantID:  "AB12",
			wantOn:  false,
		},
		{
			name:    "id offset within chunk",
			idValue: "(AB12)",
			summary: "zzzzzzzzqAB12x3z",
			wantID:  "AB12",
			wantOn:  true,
		},
		{
			name:    "id at end of chunk",
			idValue: "(AB12)",
			summary: "zzzzAB12x3",
			wantID:  "AB12",
			wantOn:  false,
		},
		{
			name:    "partial trailing chunk",
			idValue: "(AB12)",
			summary: "zzzzzzzzAB12x3",
			wantID:  "AB12",
			wantOn:  true,
		},
		{
			name:    "id not in summary",
			idValue: "(AB12)",
			summary: "CD34x3yz",
			wantID:  "AB12",
			wantOn:  false,
		},
		{
			name:    "id padded with whitespace",
			idValue: "  [AB12]  ",
			summary: "AB12x3yz",
			wantID:  "AB12",
			wantOn:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := attributesXML(
				attr{"2272", "HW", tt.idValue},
				attr{"2257", "HWS", tt.summary},
			)

			hw, err := ExtractHotWater(body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, hw.ID)
			assert.Equal(t, tt.wantOn, hw.On)
		})
	}
}

func TestExtractHotWater_FromFullTelemetry(t *testing.T) {
	hw, err := ExtractHotWater(livingRoomXML())
	require.NoError(t, err)

	assert.Equal(t, "AB12", hw.ID)
	assert.True(t, hw.On)
}

func TestExtractHotWater_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing id attribute", attributesXML(attr{"2257", "HWS", "AB12x3yz"})},
		{"id attribute too short", attributesXML(attr{"2272", "HW", "("}, attr{"2257", "HWS", "AB12x3yz"})},
		{"empty id", attributesXML(attr{"2272", "HW", "()"}, attr{"2257", "HWS", "AB12x3yz"})},
		{"blank id", attributesXML(attr{"2272", "HW", "( )"}, attr{"2257", "HWS", "AB12 3yz"})},
		{"missing summary attribute", attributesXML(attr{"2272", "HW", "(AB12)"})},
		{"malformed xml", "<attrList>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractHotWater(tt.body)
			require.Error(t, err)
			assert.True(t, IsParseError(err))
		})
	}
}

func TestExtractHotWater_EmptyIDMessage(t *testing.T) {
	_, err := ExtractHotWater(attributesXML(attr{"2272", "HW", "()"}, attr{"2257", "HWS", "AB12x3yz"}))
	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.Contains(t, err.Error(), "hot water id is empty")
}

package aura

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractThermostats_SingleThermostat(t *testing.T) {
	gw, err := ExtractThermostats(livingRoomXML())
	require.NoError(t, err)

	assert.Equal(t, DefaultGatewayName, gw.Name)
	require.Len(t, gw.Thermostats, 1)

	th := gw.Thermostats[0]
	assert.Equal(t, "AB01", th.ID)
	assert.Equal(t, "LivingRoom", th.Name)
	assert.Equal(t, "Low", th.Preset)
	assert.False(t, th.On)
	assert.Equal(t, 20.0, th.CurrentTemp)
	assert.Equal(t, 21.5, th.TargetTemp)
	assert.Equal(t, HVACModeHeat, th.HVACMode())
	assert.Equal(t, HVACActionIdle, th.Action())
}

func TestExtractThermostats_MultipleEntries(t *testing.T) {
	body := attributesXML(
		attr{"101", "S02", "AB01Living,AB02Kitchen,AB03"},
		attr{"102", "001", "AB01 &HKAB02 +DF"},
	)

	gw, err := ExtractThermostats(body)
	require.NoError(t, err)
	require.Len(t, gw.Thermostats, 2)

	assert.Equal(t, "Living", gw.Thermostats[0].Name)

	kitchen := gw.Thermostats[1]
	assert.Equal(t, "AB02", kitchen.ID)
	assert.Equal(t, "Kitchen", kitchen.Name)
	assert.True(t, kitchen.On)
	assert.Equal(t, "ON", kitchen.Preset)
	assert.Equal(t, 18.0, kitchen.CurrentTemp)
	assert.Equal(t, 19.0, kitchen.TargetTemp)
	assert.Equal(t, HVACModeOff, kitchen.HVACMode())
	assert.Equal(t, HVACActionHeating, kitchen.Action())
}

func TestExtractThermostats_SummariesAcrossNodes(t *testing.T) {
	body := attributesXML(
		attr{"101", "S02", "AB01Living"},
		attr{"102", "S03", "AB02Kitchen"},
		attr{"103", "002", "AB01 &HK"},
		attr{"104", "003", "AB02 'HKAB0"},
	)

	gw, err := ExtractThermostats(body)
	require.NoError(t, err)
	require.Len(t, gw.Thermostats, 2)

	kitchen, ok := gw.Thermostat("AB02")
	require.True(t, ok)
	assert.Equal(t, "Party", kitchen.Preset)
}

func TestExtractThermostats_DropsEntryWithoutSummary(t *testing.T) {
	body := attributesXML(
		attr{"101", "S02", "AB01Living,ZZ99Ghost"},
		attr{"102", "001", "AB01 &HK"},
	)

	gw, err := ExtractThermostats(body)
	require.NoError(t, err)
	require.Len(t, gw.Thermostats, 1)

	_, ok := gw.Thermostat("ZZ99")
	assert.False(t, ok)
}

func TestExtractThermostats_Empty(t *testing.T) {
	gw, err := ExtractThermostats(attributesXML())
	require.NoError(t, err)

	assert.NotNil(t, gw.Thermostats)
	assert.Empty(t, gw.Thermostats)
}

func TestExtractThermostats_ModeOutOfRange(t *testing.T) {
	body := attributesXML(
		attr{"101", "S02", "AB01Living"},
		attr{"102", "001", "AB01 ~HK"},
	)

	_, err := ExtractThermostats(body)
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestExtractThermostats_MalformedXML(t *testing.T) {
	_, err := ExtractThermostats("<attrList><id>1</id>")
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestParseAttributes_DropsMissingValues(t *testing.T) {
	body := `<r><attrList><id>1</id><name>S02</name></attrList>` +
		`<attrList><id>2</id><name>001</name><value>a&amp;lt;b</value></attrList></r>`

	attrs, err := ParseAttributes(body)
	require.NoError(t, err)
	require.Len(t, attrs, 1)

	assert.Equal(t, "2", attrs[0].ID)
	assert.Equal(t, "a<b", attrs[0].value())
}

func TestUnescapeValue(t *testing.T) {
	assert.Equal(t, "<a & b>", UnescapeValue("&lt;a &amp; b&gt;"))
	assert.Equal(t, "plain", UnescapeValue("plain"))
}

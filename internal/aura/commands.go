package aura

import (
	"fmt"
	"math"
)

// Command is an encoded write for a single device.
type Command struct {
	Kind      CommandKind
	DeviceID  string
	Attribute string // B05 or B06
	Payload   string // Raw payload, escaped when the URL is built

	// Expected state, used to verify the command took effect.
	Preset      string
	Temperature float64
	HotWaterOn  bool
}

// CommandKind identifies what a Command changes.
type CommandKind int

const (
	CommandPreset CommandKind = iota
	CommandTemperature
	CommandHotWater
)

// String returns a human-readable name for the command kind
func (k CommandKind) String() string {
	switch k {
	case CommandPreset:
		return "preset"
	case CommandTemperature:
		return "temperature"
	case CommandHotWater:
		return "hot water"
	default:
		return fmt.Sprintf("CommandKind(%d)", k)
	}
}

// commandPrefix starts every command payload.
const commandPrefix = "!"

// presetOffset is added to the preset index to form the preset character.
const presetOffset = 35

// presetDuration is appended for presets that take a duration.
const presetDuration = "01"

// Hot water payload suffixes.
const (
	hotWaterOnSuffix  = "# "
	hotWaterOffSuffix = "$ "
)

// EncodePreset builds the payload selecting a preset for a thermostat.
func EncodePreset(deviceID, preset string) (Command, error) {
	if err := ValidateDeviceID(deviceID); err != nil {
		return Command{}, err
	}
	if err := ValidatePreset(preset); err != nil {
		return Command{}, err
	}

	duration := ""
	if contains(RunModesWithDuration, preset) {
		duration = presetDuration
	}

	return Command{
		Kind:      CommandPreset,
		DeviceID:  deviceID,
		Attribute: AttrMode,
		Payload:   commandPrefix + deviceID + string(rune(presetOffset+PresetIndex(preset))) + duration,
		Preset:    preset,
	}, nil
}

// EncodeTemperature builds the payload setting a thermostat's target temperature.
// The temperature is rounded to the nearest half degree.
func EncodeTemperature(deviceID string, temperature float64) (Command, error) {
	if err := ValidateDeviceID(deviceID); err != nil {
		return Command{}, err
	}
	if err := ValidateTemperature(temperature); err != nil {
		return Command{}, err
	}

	return Command{
		Kind:        CommandTemperature,
		DeviceID:    deviceID,
		Attribute:   AttrTemperature,
		Payload:     commandPrefix + deviceID + string(EncodeTemperatureRune(temperature)),
		Temperature: RoundHalf(temperature),
	}, nil
}

// EncodeTemperatureRune returns the packed character for a temperature.
func EncodeTemperatureRune(temperature float64) rune {
	return rune(asciiOffset + int(math.Round(temperature/tempStep)))
}

// RoundHalf rounds a temperature to the nearest half degree.
func RoundHalf(temperature float64) float64 {
	return math.Round(temperature/tempStep) * tempStep
}

// EncodeHotWater builds the payload switching the hot-water relay.
func EncodeHotWater(deviceID string, on bool) (Command, error) {
	if err := ValidateDeviceID(deviceID); err != nil {
		return Command{}, err
	}

	suffix := hotWaterOffSuffix
	if on {
		suffix = hotWaterOnSuffix
	}

	return Command{
		Kind:       CommandHotWater,
		DeviceID:   deviceID,
		Attribute:  AttrMode,
		Payload:    commandPrefix + deviceID + suffix,
		HotWaterOn: on,
	}, nil
}

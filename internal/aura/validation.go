package aura

import (
	"fmt"
	"math"
	"net/url"
	"strings"
)

// Thermostat temperature limits in degrees Celsius.
const (
	MinTemperature  = 5.0
	MaxTemperature  = 35.0
	TemperatureStep = tempStep
)

// ValidatePreset validates a preset name against RunModes.
func ValidatePreset(preset string) error {
	if PresetIndex(preset) < 0 {
		return NewValidationError(fmt.Sprintf("unknown preset %q (valid: %s)", preset, strings.Join(RunModes, ", ")))
	}
	return nil
}

// ValidateTemperature validates a target temperature.
// Valid range is 5-35 °C; values are sent with half-degree resolution.
func ValidateTemperature(temperature float64) error {
	if math.IsNaN(temperature) || math.IsInf(temperature, 0) {
		return NewValidationError("temperature must be a finite number")
	}
	if temperature < MinTemperature || temperature > MaxTemperature {
		return NewValidationError(fmt.Sprintf("temperature must be %.1f-%.1f, got %.1f", MinTemperature, MaxTemperature, temperature))
	}
	return nil
}

// ValidateDeviceID validates a thermostat or hot-water device id.
func ValidateDeviceID(id string) error {
	if strings.TrimSpace(id) == "" {
		return NewValidationError("device id cannot be empty")
	}
	if strings.ContainsAny(id, "!,") {
		return NewValidationError(fmt.Sprintf("device id %q contains a reserved character", id))
	}
	return nil
}

// ValidateHost validates the API base URL.
func ValidateHost(host string) error {
	if host == "" {
		return NewValidationError("API host cannot be empty")
	}
	u, err := url.Parse(host)
	if err != nil {
		return NewValidationError(fmt.Sprintf("invalid API host %q: %v", host, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewValidationError(fmt.Sprintf("API host must be an http or https URL, got %q", host))
	}
	if u.Host == "" {
		return NewValidationError(fmt.Sprintf("API host %q has no host name", host))
	}
	return nil
}

// ValidateEmail performs basic validation of the account email.
func ValidateEmail(email string) error {
	if email == "" {
		return NewValidationError("email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return NewValidationError(fmt.Sprintf("invalid email address %q", email))
	}
	return nil
}

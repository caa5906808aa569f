package aura

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// APIDelay is how long the gateway takes before a write shows up in reads.
// Reading earlier returns stale data.
const APIDelay = 1500 * time.Millisecond

// VerificationOptions configures how a write is verified
type VerificationOptions struct {
	// MaxRetries is the number of additional reads after the first one
	// Default: 2
	MaxRetries int

	// InitialDelay is the wait before the first read
	// Default: APIDelay
	InitialDelay time.Duration

	// RetryDelay is the wait between reads
	// Default: APIDelay
	RetryDelay time.Duration
}

// DefaultVerificationOptions returns the defaults for verification
func DefaultVerificationOptions() *VerificationOptions {
	return &VerificationOptions{
		MaxRetries:   2,
		InitialDelay: APIDelay,
		RetryDelay:   APIDelay,
	}
}

// VerificationResult contains the results of a command verification
type VerificationResult struct {
	// Success indicates whether the gateway reports the expected state
	Success bool

	// Attempts is the number of reads made
	Attempts int

	// Thermostat is the last state read for thermostat commands
	Thermostat *Thermostat

	// HotWater is the last state read for hot water commands
	HotWater *HotWater

	// Mismatches lists the differences found on the last read
	Mismatches []string

	// Error is any error that occurred during the write or verification
	Error error
}

// VerifyCommand reads the gateway until it reports the state cmd asked for,
// or the retry budget is used up.
func (c *Client) VerifyCommand(ctx context.Context, cmd Command, opts *VerificationOptions) *VerificationResult {
	if opts == nil {
		opts = DefaultVerificationOptions()
	}

	result := &VerificationResult{Mismatches: []string{}}

	if err := sleepContext(ctx, opts.InitialDelay); err != nil {
		result.Error = err
		return result
	}

	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, opts.RetryDelay); err != nil {
				result.Error = err
				return result
			}
		}
		result.Attempts++

		mismatches, err := c.readBack(ctx, cmd, result)
		if err != nil {
			result.Error = fmt.Errorf("attempt %d: failed to read state: %w", attempt+1, err)
			continue
		}

		result.Mismatches = mismatches
		if len(mismatches) == 0 {
			result.Success = true
			result.Error = nil
			return result
		}

		if attempt < opts.MaxRetries {
			result.Error = fmt.Errorf("attempt %d: state mismatch (will retry)", attempt+1)
		} else {
			result.Error = fmt.Errorf("verification failed after %d attempts: %s", result.Attempts, formatMismatches(mismatches))
		}
	}

	return result
}

// readBack reads the state cmd touches and compares it with the expected values.
func (c *Client) readBack(ctx context.Context, cmd Command, result *VerificationResult) ([]string, error) {
	if cmd.Kind == CommandHotWater {
		hw, err := c.HotWater(ctx)
		if err != nil {
			return nil, err
		}
		result.HotWater = hw
		return verifyHotWater(cmd, hw), nil
	}

	gw, err := c.Thermostats(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := gw.Thermostat(cmd.DeviceID)
	if !ok {
		return []string{fmt.Sprintf("thermostat %s not reported by gateway", cmd.DeviceID)}, nil
	}
	result.Thermostat = &t
	return verifyThermostat(cmd, t), nil
}

func verifyThermostat(cmd Command, t Thermostat) []string {
	var mismatches []string
	switch cmd.Kind {
	case CommandPreset:
		if t.Preset != cmd.Preset {
			mismatches = append(mismatches, fmt.Sprintf("preset: expected %s, got %s", cmd.Preset, t.Preset))
		}
	case CommandTemperature:
		if t.TargetTemp != cmd.Temperature {
			mismatches = append(mismatches, fmt.Sprintf("target temperature: expected %.1f, got %.1f", cmd.Temperature, t.TargetTemp))
		}
	}
	return mismatches
}

func verifyHotWater(cmd Command, hw *HotWater) []string {
	var mismatches []string
	if hw.ID != cmd.DeviceID {
		mismatches = append(mismatches, fmt.Sprintf("hot water id: expected %s, got %s", cmd.DeviceID, hw.ID))
	}
	if hw.On != cmd.HotWaterOn {
		mismatches = append(mismatches, fmt.Sprintf("hot water: expected %s, got %s", onOff(cmd.HotWaterOn), onOff(hw.On)))
	}
	return mismatches
}

// formatMismatches creates a human-readable summary of mismatches
func formatMismatches(mismatches []string) string {
	switch len(mismatches) {
	case 0:
		return "none"
	case 1:
		return mismatches[0]
	default:
		return fmt.Sprintf("%d mismatches: %s", len(mismatches), strings.Join(mismatches, "; "))
	}
}

// ApplyAndVerify sends cmd and then verifies the gateway reports the new state
func (c *Client) ApplyAndVerify(ctx context.Context, cmd Command, opts *VerificationOptions) *VerificationResult {
	if err := c.Apply(ctx, cmd); err != nil {
		return &VerificationResult{
			Error: fmt.Errorf("update failed: %w", err),
		}
	}
	return c.VerifyCommand(ctx, cmd, opts)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

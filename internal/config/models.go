package config

import (
	"fmt"
	"time"

	"github.com/jgaura/aura/internal/aura"
	"github.com/jgaura/aura/internal/logging"
)

// CurrentVersion is the config file format version written by Save.
const CurrentVersion = 1

// Defaults for a new configuration
const (
	DefaultRefreshRate = 60 // seconds
	MinRefreshRate     = 10 // seconds
)

// Registry represents the entire user configuration file.
// It stores the account, client preferences and thermostat nicknames.
type Registry struct {
	Version     int               `yaml:"version"`
	Host        string            `yaml:"host"`                  // API base URL
	Email       string            `yaml:"email,omitempty"`       // Account email
	RefreshRate int               `yaml:"refresh_rate"`          // Seconds between refreshes in watch mode
	HotWater    bool              `yaml:"hot_water"`             // Whether the installation has a hot-water relay
	Timeout     int               `yaml:"timeout,omitempty"`     // HTTP request timeout in seconds (0 = client default)
	LogLevel    string            `yaml:"log_level,omitempty"`   // debug, info, warn or error
	LogFile     string            `yaml:"log_file,omitempty"`    // Optional rotating log file
	Thermostats map[string]string `yaml:"thermostats,omitempty"` // Nicknames keyed by 4-character device id
	// Password is NEVER stored in config file for security reasons
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     CurrentVersion,
		Host:        aura.DefaultHost,
		RefreshRate: DefaultRefreshRate,
		HotWater:    true,
		Thermostats: make(map[string]string),
	}
}

// applyDefaults fills fields left empty in a loaded file.
func (r *Registry) applyDefaults() {
	if r.Host == "" {
		r.Host = aura.DefaultHost
	}
	if r.RefreshRate == 0 {
		r.RefreshRate = DefaultRefreshRate
	}
	if r.Thermostats == nil {
		r.Thermostats = make(map[string]string)
	}
}

// RefreshInterval returns the refresh rate as a duration.
func (r *Registry) RefreshInterval() time.Duration {
	return time.Duration(r.RefreshRate) * time.Second
}

// TimeoutDuration returns the request timeout, or zero when unset.
func (r *Registry) TimeoutDuration() time.Duration {
	return time.Duration(r.Timeout) * time.Second
}

// Nickname returns the nickname for a thermostat, if one is set.
func (r *Registry) Nickname(id string) (string, bool) {
	nick, ok := r.Thermostats[id]
	return nick, ok
}

// SetNickname sets a user-friendly nickname for a thermostat.
// An empty nickname removes the entry.
func (r *Registry) SetNickname(id, nickname string) error {
	if err := aura.ValidateDeviceID(id); err != nil {
		return err
	}
	if r.Thermostats == nil {
		r.Thermostats = make(map[string]string)
	}
	if nickname == "" {
		delete(r.Thermostats, id)
		return nil
	}
	r.Thermostats[id] = nickname
	return nil
}

// Validate checks the registry for values the client cannot use.
func (r *Registry) Validate() error {
	if r.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", r.Version, CurrentVersion)
	}
	if err := aura.ValidateHost(r.Host); err != nil {
		return err
	}
	if r.Email != "" {
		if err := aura.ValidateEmail(r.Email); err != nil {
			return err
		}
	}
	if r.RefreshRate < MinRefreshRate {
		return fmt.Errorf("refresh_rate must be at least %d seconds, got %d", MinRefreshRate, r.RefreshRate)
	}
	if r.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative, got %d", r.Timeout)
	}
	if r.LogLevel != "" {
		if _, err := logging.ParseLevel(r.LogLevel); err != nil {
			return err
		}
	}
	for id := range r.Thermostats {
		if err := aura.ValidateDeviceID(id); err != nil {
			return fmt.Errorf("thermostats: %w", err)
		}
	}
	return nil
}

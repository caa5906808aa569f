// Package config provides user configuration management for the jgaura client.
//
// This package manages a YAML configuration file holding the account email,
// the API host, client preferences (refresh rate, request timeout, logging,
// hot-water support) and thermostat nicknames.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/jgaura/config.yaml or $HOME/.config/jgaura/config.yaml
//   - macOS: $HOME/.config/jgaura/config.yaml
//   - Windows: %LOCALAPPDATA%\jgaura\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores the account password. It is always
// supplied on the command line, through JGAURA_PASSWORD, or prompted.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := registry.SetNickname("AB01", "Lounge"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config

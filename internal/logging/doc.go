// Package logging provides structured logging for the JG Aura client.
//
// This package wraps a global zap logger. Logging is silent unless a level is
// passed to Initialize or JGAURA_LOG_LEVEL is set, so library and CLI output
// stay clean by default.
//
// # Log Levels
//
//   - Debug: every completed request, dropped display entries
//   - Info: login, gateway resolution, commands sent
//   - Warn: retried requests, forced re-logins
//   - Error: failures returned to the caller
//
// # Structured Logging
//
//	logging.Info("Connected to gateway",
//	    zap.String("device_id", deviceID),
//	)
//
// Request URLs carry the session token and the password digest. Pass them
// through RedactURL before logging.
//
// # Log Files
//
// InitializeWithOptions can additionally write JSON entries to a file that is
// rotated by size:
//
//	err := logging.InitializeWithOptions(logging.Options{
//	    Level: "debug",
//	    File:  "/var/log/jgaura.log",
//	})
//	defer logging.Sync()
package logging

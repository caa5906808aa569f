package logging

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "JGAURA_LOG_LEVEL"

// Log file rotation defaults
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Options configures the logger
type Options struct {
	// Level is the minimum level to log; empty means JGAURA_LOG_LEVEL, then silent
	Level string

	// File is an optional log file path; the file is rotated by size
	File string

	// Quiet disables console output (file output only)
	Quiet bool
}

// Initialize creates a new logger with the specified level writing to stderr.
// If level is empty, it checks JGAURA_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	return InitializeWithOptions(Options{Level: level})
}

// InitializeFromEnv initializes the logger from the JGAURA_LOG_LEVEL
// environment variable.
func InitializeFromEnv() error {
	return Initialize("")
}

// InitializeWithOptions creates a logger from opts. A log file, when given,
// receives the same entries as the console, encoded as JSON.
func InitializeWithOptions(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := ParseLevel(level)
	if err != nil {
		return err
	}
	atomic := zap.NewAtomicLevelAt(zapLevel)

	var cores []zapcore.Core

	if !opts.Quiet {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.EncodeCaller = zapcore.ShortCallerEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.Lock(os.Stderr),
			atomic,
		))
	}

	if opts.File != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(newRotatingFile(opts.File)),
			atomic,
		))
	}

	if len(cores) == 0 {
		logger = zap.NewNop()
		return nil
	}

	logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return nil
}

// newRotatingFile returns a size-rotated log file writer.
func newRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
	}
}

// ParseLevel converts a level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (use debug, info, warn or error)", level)
	}
}

// SetLogger replaces the global logger. Intended for tests.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogRequest logs a completed gateway request
func LogRequest(endpoint string, attempt int, statusCode int) {
	Debug("Gateway request completed",
		zap.String("endpoint", endpoint),
		zap.Int("attempt", attempt),
		zap.Int("status_code", statusCode),
	)
}

// redactedParams are query parameters whose values never reach the logs.
var redactedParams = []string{"secToken", "password"}

// RedactURL masks credentials in a request URL
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<unparseable url>"
	}
	if u.RawQuery == "" {
		return rawURL
	}

	parts := strings.Split(u.RawQuery, "&")
	for i, p := range parts {
		key, _, found := strings.Cut(p, "=")
		if !found {
			continue
		}
		for _, r := range redactedParams {
			if key == r {
				parts[i] = key + "=REDACTED"
			}
		}
	}
	u.RawQuery = strings.Join(parts, "&")
	return u.String()
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

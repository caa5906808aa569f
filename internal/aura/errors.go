package aura

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeTransport indicates an HTTP or network failure after all attempts were used
	ErrTypeTransport ErrorType = iota
	// ErrTypeAuth indicates a login or gateway resolution failure
	ErrTypeAuth
	// ErrTypeParse indicates a well-formed response with an unexpected payload shape
	ErrTypeParse
	// ErrTypeCommand indicates a write accepted by HTTP but rejected by the gateway
	ErrTypeCommand
	// ErrTypeCommunication indicates the request still failed after a forced re-login
	ErrTypeCommunication
	// ErrTypeValidation indicates caller input rejected before any request was made
	ErrTypeValidation
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeTransport:
		return "Transport Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeCommand:
		return "Command Error"
	case ErrTypeCommunication:
		return "Communication Error"
	case ErrTypeValidation:
		return "Validation Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is the single error type returned by the client. Callers inspect
// Type directly or use the Is* helpers, which also look through wrapped
// client errors.
type Error struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	Endpoint   string    // Gateway endpoint involved (e.g. "userLogin"), if any
	StatusCode int       // Last HTTP status code seen (0 for connection failures)
	Attempts   int       // Number of HTTP attempts made (transport errors only)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Endpoint != "" {
		msg = e.Endpoint + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTransportError creates the error returned once the transport has used up its attempts
func NewTransportError(endpoint string, attempts, statusCode int, err error) *Error {
	return &Error{
		Type:       ErrTypeTransport,
		Message:    "exhausted retries",
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Attempts:   attempts,
		Err:        err,
	}
}

// NewAuthError creates an authentication error
func NewAuthError(message string, err error) *Error {
	return &Error{
		Type:    ErrTypeAuth,
		Message: message,
		Err:     err,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *Error {
	return &Error{
		Type:    ErrTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewCommandError creates an error for a write the gateway refused
func NewCommandError(message string) *Error {
	return &Error{
		Type:    ErrTypeCommand,
		Message: message,
	}
}

// NewCommunicationError wraps the failure of the request made after a forced re-login
func NewCommunicationError(message string, err error) *Error {
	return &Error{
		Type:    ErrTypeCommunication,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *Error {
	return &Error{
		Type:    ErrTypeValidation,
		Message: message,
	}
}

// hasType walks the chain of client errors looking for the given type.
func hasType(err error, t ErrorType) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Type == t {
			return true
		}
		err = e.Err
	}
	return false
}

// IsTransportError checks if an error is (or wraps) a transport error
func IsTransportError(err error) bool {
	return hasType(err, ErrTypeTransport)
}

// IsAuthError checks if an error is (or wraps) an authentication error
func IsAuthError(err error) bool {
	return hasType(err, ErrTypeAuth)
}

// IsParseError checks if an error is (or wraps) a parse error
func IsParseError(err error) bool {
	return hasType(err, ErrTypeParse)
}

// IsCommandError checks if an error is (or wraps) a command error
func IsCommandError(err error) bool {
	return hasType(err, ErrTypeCommand)
}

// IsCommunicationError checks if an error is a communication error
func IsCommunicationError(err error) bool {
	return hasType(err, ErrTypeCommunication)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrTypeValidation)
}

// describeNetworkError returns a short label for a connection-level failure,
// used only for log fields.
func describeNetworkError(err error) string {
	if err == nil {
		return ""
	}
	if os.IsTimeout(err) {
		return "timeout"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "connection"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return "request"
	}
	return "network"
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "An unexpected error occurred. Please try again."
	}

	switch e.Type {
	case ErrTypeAuth:
		return strings.Join([]string{
			"Login to the gateway service failed.",
			"Troubleshooting:",
			"  • Check the email address and password used in the JG Aura app",
			"  • Verify the API host (the default is the vendor's EMEA endpoint)",
			"  • Make sure the gateway is registered to this account",
		}, "\n")

	case ErrTypeTransport, ErrTypeCommunication:
		return strings.Join([]string{
			"The gateway service could not be reached.",
			"Troubleshooting:",
			"  • Check your internet connection",
			"  • The vendor backend may be temporarily unavailable - try again later",
			"  • Try increasing the timeout with --timeout",
		}, "\n")

	case ErrTypeParse:
		return strings.Join([]string{
			"The gateway returned data in an unexpected shape.",
			"Troubleshooting:",
			"  • Run again with --log-level debug to capture the raw response",
			"  • Check that the thermostats are paired and online in the app",
		}, "\n")

	case ErrTypeCommand:
		return strings.Join([]string{
			"The gateway rejected the command.",
			"Troubleshooting:",
			"  • Check the device id with 'jgaura status'",
			"  • The thermostat may be offline",
		}, "\n")

	case ErrTypeValidation:
		return "The requested value is invalid. Check the error message for details."

	default:
		return "An error occurred. Please check the error message for details."
	}
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Type {
	case ErrTypeAuth:
		return "Login failed - check credentials"
	case ErrTypeTransport:
		if e.StatusCode != 0 {
			return fmt.Sprintf("Gateway service error (HTTP %d)", e.StatusCode)
		}
		return "Gateway service unreachable"
	case ErrTypeCommunication:
		return "Gateway service unreachable after re-login"
	case ErrTypeParse:
		return "Failed to parse gateway response"
	case ErrTypeCommand:
		return "Gateway rejected the command"
	default:
		return e.Message
	}
}

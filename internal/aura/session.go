package aura

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"

	"go.uber.org/zap"

	"github.com/jgaura/aura/internal/logging"
)

// Getter fetches a URL and returns the response body. *Transport implements it.
type Getter interface {
	Get(ctx context.Context, rawURL string) (string, error)
}

// SessionState is the authentication state seen by the client.
type SessionState int

const (
	StateLoggedOut SessionState = iota
	StateLoggingIn
	StateLoggedIn
)

// String returns a human-readable name for the session state
func (s SessionState) String() string {
	switch s {
	case StateLoggedOut:
		return "logged out"
	case StateLoggingIn:
		return "logging in"
	case StateLoggedIn:
		return "logged in"
	default:
		return "unknown"
	}
}

// Session owns the login state for one account: the security token, the
// gateway device id and the logged-in flag. It is not safe for concurrent
// use; the Client serialises access to it.
type Session struct {
	host        string
	email       string
	passwordMD5 string
	getter      Getter
	now         func() time.Time

	token    string
	deviceID string
	state    SessionState
}

// NewSession creates a logged-out session. The password is hashed immediately
// and only the digest is kept.
func NewSession(host, email, password string, getter Getter) *Session {
	return &Session{
		host:        host,
		email:       email,
		passwordMD5: HashPassword(password),
		getter:      getter,
		now:         time.Now,
	}
}

// HashPassword returns the hex MD5 digest the login endpoint expects.
func HashPassword(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

// State returns the current session state
func (s *Session) State() SessionState {
	return s.state
}

// LoggedIn reports whether the session holds a usable token and device id
func (s *Session) LoggedIn() bool {
	return s.state == StateLoggedIn
}

// Credentials returns the token and gateway device id of the last successful login.
func (s *Session) Credentials() (token, deviceID string) {
	return s.token, s.deviceID
}

// EnsureAuthenticated logs in unless the session is already logged in.
// Login exchanges the credentials for a token and user id, then resolves the
// gateway device id. The token and device id are only stored once both steps
// have succeeded; on failure the session is left exactly as it was.
func (s *Session) EnsureAuthenticated(ctx context.Context) error {
	if s.state == StateLoggedIn {
		return nil
	}

	prev := s.state
	s.state = StateLoggingIn

	token, deviceID, err := s.login(ctx)
	if err != nil {
		s.state = prev
		return err
	}

	s.token = token
	s.deviceID = deviceID
	s.state = StateLoggedIn
	return nil
}

func (s *Session) login(ctx context.Context) (string, string, error) {
	logging.Info("Attempting login", zap.String("email", s.email))

	body, err := s.getter.Get(ctx, LoginURL(s.host, s.email, s.passwordMD5, s.now()))
	if err != nil {
		return "", "", NewAuthError("login request failed", err)
	}
	login, err := ParseLogin(body)
	if err != nil {
		logging.Error("Login response rejected", zap.Error(err))
		return "", "", err
	}

	body, err = s.getter.Get(ctx, DeviceListURL(s.host, login.SecurityToken, login.UserID, s.now()))
	if err != nil {
		return "", "", NewAuthError("device list request failed", err)
	}
	deviceID, err := ParseGatewayDeviceID(body)
	if err != nil {
		logging.Error("Device list response rejected", zap.Error(err))
		return "", "", err
	}

	logging.Info("Connected to gateway", zap.String("device_id", deviceID))
	return login.SecurityToken, deviceID, nil
}

// Invalidate forces a fresh login on the next call. The stale token and
// device id are kept until that login overwrites them.
func (s *Session) Invalidate() {
	if s.state == StateLoggedIn {
		logging.Info("Invalidating session")
	}
	s.state = StateLoggedOut
}

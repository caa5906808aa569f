package aura

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(getter Getter) *Session {
	s := NewSession(testHost, "me@example.com", "password", getter)
	s.now = func() time.Time { return testNow }
	return s
}

func TestSession_Login(t *testing.T) {
	getter := newFakeGetter().onLoginSuccess("tok", "9001")
	s := newTestSession(getter)

	assert.Equal(t, StateLoggedOut, s.State())
	require.NoError(t, s.EnsureAuthenticated(context.Background()))

	assert.True(t, s.LoggedIn())
	token, deviceID := s.Credentials()
	assert.Equal(t, "tok", token)
	assert.Equal(t, "9001", deviceID)

	require.Len(t, getter.urls, 2)
	login, err := url.Parse(getter.urls[0])
	require.NoError(t, err)
	assert.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf99", login.Query().Get("password"))
	assert.Equal(t, AppID, login.Query().Get("appId"))

	devices, err := url.Parse(getter.urls[1])
	require.NoError(t, err)
	assert.Equal(t, "tok", devices.Query().Get("secToken"))
	assert.Equal(t, "42", devices.Query().Get("userId"))
}

func TestSession_LoginOnlyOnce(t *testing.T) {
	getter := newFakeGetter().onLoginSuccess("tok", "9001")
	s := newTestSession(getter)

	require.NoError(t, s.EnsureAuthenticated(context.Background()))
	require.NoError(t, s.EnsureAuthenticated(context.Background()))

	assert.Equal(t, 1, getter.count(EndpointLogin))
	assert.Equal(t, 1, getter.count(EndpointDeviceList))
}

func TestSession_MissingUserID(t *testing.T) {
	getter := newFakeGetter()
	getter.respond(EndpointLogin, `<userLoginResponse><securityToken>tok</securityToken></userLoginResponse>`)
	s := newTestSession(getter)

	err := s.EnsureAuthenticated(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))

	assert.Equal(t, StateLoggedOut, s.State())
	token, deviceID := s.Credentials()
	assert.Empty(t, token)
	assert.Empty(t, deviceID)
	assert.Equal(t, 0, getter.count(EndpointDeviceList))
}

func TestSession_MissingToken(t *testing.T) {
	getter := newFakeGetter()
	getter.respond(EndpointLogin, `<userLoginResponse><userId>42</userId></userLoginResponse>`)
	s := newTestSession(getter)

	err := s.EnsureAuthenticated(context.Background())
	assert.True(t, IsAuthError(err))
	assert.False(t, s.LoggedIn())
}

func TestSession_NoGateway(t *testing.T) {
	getter := newFakeGetter()
	getter.respond(EndpointLogin, loginXML("tok", "42"))
	getter.respond(EndpointDeviceList, deviceListXML())
	s := newTestSession(getter)

	err := s.EnsureAuthenticated(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))

	token, _ := s.Credentials()
	assert.Empty(t, token, "token is only stored once the gateway is resolved")
	assert.Equal(t, StateLoggedOut, s.State())
}

func TestSession_FirstNonEmptyDeviceID(t *testing.T) {
	getter := newFakeGetter()
	getter.respond(EndpointLogin, loginXML("tok", "42"))
	getter.respond(EndpointDeviceList, deviceListXML("", "9001", "9002"))
	s := newTestSession(getter)

	require.NoError(t, s.EnsureAuthenticated(context.Background()))
	_, deviceID := s.Credentials()
	assert.Equal(t, "9001", deviceID)
}

func TestSession_TransportFailureIsAuthError(t *testing.T) {
	getter := newFakeGetter()
	s := newTestSession(getter)

	err := s.EnsureAuthenticated(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.True(t, IsTransportError(err), "transport cause stays in the chain")
	assert.Equal(t, StateLoggedOut, s.State())
}

func TestSession_Invalidate(t *testing.T) {
	getter := newFakeGetter().onLoginSuccess("tok", "9001")
	s := newTestSession(getter)
	require.NoError(t, s.EnsureAuthenticated(context.Background()))

	s.Invalidate()
	assert.Equal(t, StateLoggedOut, s.State())
	token, deviceID := s.Credentials()
	assert.Equal(t, "tok", token)
	assert.Equal(t, "9001", deviceID)

	getter.onLoginSuccess("tok2", "9001")
	require.NoError(t, s.EnsureAuthenticated(context.Background()))
	token, _ = s.Credentials()
	assert.Equal(t, "tok2", token)
	assert.Equal(t, 2, getter.count(EndpointLogin))
}

func TestSession_FailedReloginKeepsPreviousCredentials(t *testing.T) {
	getter := newFakeGetter().onLoginSuccess("tok", "9001")
	s := newTestSession(getter)
	require.NoError(t, s.EnsureAuthenticated(context.Background()))
	s.Invalidate()

	getter.respond(EndpointLogin, `<userLoginResponse/>`)
	require.Error(t, s.EnsureAuthenticated(context.Background()))

	token, deviceID := s.Credentials()
	assert.Equal(t, "tok", token)
	assert.Equal(t, "9001", deviceID)
	assert.Equal(t, StateLoggedOut, s.State())
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "logged out", StateLoggedOut.String())
	assert.Equal(t, "logging in", StateLoggingIn.String())
	assert.Equal(t, "logged in", StateLoggedIn.String())
}

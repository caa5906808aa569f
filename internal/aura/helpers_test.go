package aura

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// testNow is the fixed clock used by client and session tests.
var testNow = time.UnixMilli(1700000000000)

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// attr is one attrList entry for attributesXML.
type attr struct {
	id, name, value string
}

// attributesXML builds a getDeviceAttributesWithValues response body.
func attributesXML(attrs ...attr) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<ns1:getDeviceAttributesWithValuesResponse xmlns:ns1="http://arrayent.com/zdk">`)
	for _, a := range attrs {
		fmt.Fprintf(&b, "<attrList><id>%s</id><name>%s</name><value>%s</value></attrList>",
			a.id, a.name, xmlEscaper.Replace(a.value))
	}
	b.WriteString(`</ns1:getDeviceAttributesWithValuesResponse>`)
	return b.String()
}

func loginXML(token, userID string) string {
	return fmt.Sprintf(`<ns1:userLoginResponse xmlns:ns1="http://arrayent.com/zdk"><securityToken>%s</securityToken><userId>%s</userId></ns1:userLoginResponse>`, token, userID)
}

func deviceListXML(devIDs ...string) string {
	var b strings.Builder
	b.WriteString(`<ns1:getDeviceListResponse xmlns:ns1="http://arrayent.com/zdk">`)
	for _, id := range devIDs {
		fmt.Fprintf(&b, "<devList><devId>%s</devId><devName>gateway</devName></devList>", id)
	}
	b.WriteString(`</ns1:getDeviceListResponse>`)
	return b.String()
}

func retCodeXML(code string) string {
	return fmt.Sprintf(`<ns1:setMultiDeviceAttributes2Response xmlns:ns1="http://arrayent.com/zdk"><retCode>%s</retCode></ns1:setMultiDeviceAttributes2Response>`, code)
}

// livingRoomXML is a telemetry response with one thermostat in Low,
// 20.0 °C current and 21.5 °C target.
func livingRoomXML() string {
	return attributesXML(
		attr{"101", "S02", "AB01LivingRoom"},
		attr{"102", "001", "AB01 &HK"},
		attr{"2272", "HW", "(AB12)"},
		attr{"2257", "HWS", "AB12x3yz"},
	)
}

// fakeGetter answers requests by endpoint name and records every call.
type fakeGetter struct {
	mu       sync.Mutex
	handlers map[string]func(rawURL string) (string, error)
	calls    []string
	urls     []string
}

func newFakeGetter() *fakeGetter {
	return &fakeGetter{handlers: make(map[string]func(string) (string, error))}
}

// onLoginSuccess installs handlers for a successful login resolving devID.
func (f *fakeGetter) onLoginSuccess(token, devID string) *fakeGetter {
	f.handle(EndpointLogin, func(string) (string, error) { return loginXML(token, "42"), nil })
	f.handle(EndpointDeviceList, func(string) (string, error) { return deviceListXML(devID), nil })
	return f
}

func (f *fakeGetter) handle(endpoint string, h func(rawURL string) (string, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[endpoint] = h
}

// respond installs a handler that always returns body.
func (f *fakeGetter) respond(endpoint, body string) {
	f.handle(endpoint, func(string) (string, error) { return body, nil })
}

func (f *fakeGetter) Get(_ context.Context, rawURL string) (string, error) {
	name := endpointName(rawURL)

	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.urls = append(f.urls, rawURL)
	h := f.handlers[name]
	f.mu.Unlock()

	if h == nil {
		return "", NewTransportError(name, 1, 404, fmt.Errorf("no handler for %s", name))
	}
	return h(rawURL)
}

// count returns how many requests were made to endpoint.
func (f *fakeGetter) count(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == endpoint {
			n++
		}
	}
	return n
}

// transportFailure returns a handler that fails with a transport error for
// the first n calls and then returns body.
func transportFailure(n int, body string) func(string) (string, error) {
	calls := 0
	return func(string) (string, error) {
		calls++
		if calls <= n {
			return "", NewTransportError(EndpointGetAttributes, DefaultAttempts, 503, fmt.Errorf("unexpected status code: 503"))
		}
		return body, nil
	}
}

// newTestClient returns a client wired to getter with a fixed clock.
func newTestClient(getter Getter) *Client {
	transport := NewTransport()
	transport.sleep = func(context.Context, time.Duration) error { return nil }
	c := newClient("https://api.example.com/zdk/services/zamapi", "me@example.com", "secret", transport, getter)
	c.now = func() time.Time { return testNow }
	c.session.now = c.now
	return c
}

// noDelay is a verification policy that reads back immediately.
func noDelay() *VerificationOptions {
	return &VerificationOptions{MaxRetries: 2}
}

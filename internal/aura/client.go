package aura

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jgaura/aura/internal/logging"
)

// Client talks to one JG Aura gateway through the vendor's HTTP API.
//
// Every operation holds an internal lock for its whole sequence (login,
// request, retry), so a Client may be shared between goroutines; calls simply
// run one at a time.
type Client struct {
	// Host is the API base URL
	Host string

	// Email is the account the client logs in as
	Email string

	transport *Transport
	getter    Getter
	session   *Session
	now       func() time.Time

	mu sync.Mutex
}

// NewClient creates a client for the given API host and account.
// Nothing is sent until the first operation; login happens lazily.
func NewClient(host, email, password string) *Client {
	if host == "" {
		host = DefaultHost
	}
	transport := NewTransport()
	return newClient(host, email, password, transport, transport)
}

func newClient(host, email, password string, transport *Transport, getter Getter) *Client {
	return &Client{
		Host:      host,
		Email:     email,
		transport: transport,
		getter:    getter,
		session:   NewSession(host, email, password, getter),
		now:       time.Now,
	}
}

// SetTimeout sets the per-request HTTP timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.transport.SetTimeout(timeout)
}

// SetRetry configures the HTTP attempt budget and the wait between attempts
func (c *Client) SetRetry(attempts int, retryDelay time.Duration) {
	c.transport.SetRetry(attempts, retryDelay)
}

// SessionState returns the current login state
func (c *Client) SessionState() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.State()
}

// Login logs in if needed and returns the resolved gateway device id.
// Useful for validating credentials.
func (c *Client) Login(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.session.EnsureAuthenticated(ctx); err != nil {
		return "", err
	}
	_, deviceID := c.session.Credentials()
	return deviceID, nil
}

// Thermostats fetches the current state of every thermostat on the gateway
func (c *Client) Thermostats(ctx context.Context) (*Gateway, error) {
	var gw *Gateway
	err := c.withSession(ctx, "fetch thermostats", func(ctx context.Context, token, deviceID string) error {
		body, err := c.readAttributes(ctx, token, deviceID)
		if err != nil {
			return err
		}
		g, err := ExtractThermostats(body)
		if err != nil {
			return err
		}
		g.ID = deviceID
		gw = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return gw, nil
}

// HotWater fetches the state of the hot-water relay
func (c *Client) HotWater(ctx context.Context) (*HotWater, error) {
	var hw *HotWater
	err := c.withSession(ctx, "fetch hot water", func(ctx context.Context, token, deviceID string) error {
		body, err := c.readAttributes(ctx, token, deviceID)
		if err != nil {
			return err
		}
		hw, err = ExtractHotWater(body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return hw, nil
}

// SetThermostatPreset switches a thermostat to one of RunModes
func (c *Client) SetThermostatPreset(ctx context.Context, deviceID, preset string) error {
	cmd, err := EncodePreset(deviceID, preset)
	if err != nil {
		return err
	}
	return c.Apply(ctx, cmd)
}

// SetThermostatTemperature sets a thermostat's target temperature
func (c *Client) SetThermostatTemperature(ctx context.Context, deviceID string, temperature float64) error {
	cmd, err := EncodeTemperature(deviceID, temperature)
	if err != nil {
		return err
	}
	return c.Apply(ctx, cmd)
}

// SetHotWater switches the hot-water relay on or off
func (c *Client) SetHotWater(ctx context.Context, deviceID string, on bool) error {
	cmd, err := EncodeHotWater(deviceID, on)
	if err != nil {
		return err
	}
	return c.Apply(ctx, cmd)
}

// Apply sends an encoded command and checks the gateway accepted it
func (c *Client) Apply(ctx context.Context, cmd Command) error {
	return c.withSession(ctx, "set "+cmd.Kind.String(), func(ctx context.Context, token, deviceID string) error {
		logging.Info("Sending command",
			zap.String("kind", cmd.Kind.String()),
			zap.String("device_id", cmd.DeviceID),
			zap.String("attribute", cmd.Attribute),
		)
		body, err := c.getter.Get(ctx, SetAttributeURL(c.Host, token, deviceID, cmd.Attribute, cmd.Payload, c.now()))
		if err != nil {
			return err
		}
		return ValidateOperationResponse(body)
	})
}

// readAttributes selects the attribute page, then reads it.
func (c *Client) readAttributes(ctx context.Context, token, deviceID string) (string, error) {
	if _, err := c.getter.Get(ctx, PrimeURL(c.Host, token, deviceID, c.now())); err != nil {
		return "", err
	}
	return c.getter.Get(ctx, AttributesURL(c.Host, token, deviceID, c.now()))
}

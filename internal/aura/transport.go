package aura

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/jgaura/aura/internal/logging"
	"github.com/jgaura/aura/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultAttempts is the default number of HTTP attempts per request
	DefaultAttempts = 3

	// DefaultRetryDelay is the fixed wait between attempts
	DefaultRetryDelay = 1 * time.Second
)

// Transport performs GET requests against the gateway service with a bounded
// number of attempts and a constant wait between them.
type Transport struct {
	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// Attempts is the maximum number of requests made per call
	Attempts int

	// RetryDelay is the wait between two attempts
	RetryDelay time.Duration

	// sleep waits between attempts; replaced in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewTransport creates a transport with the default timeout and retry policy
func NewTransport() *Transport {
	return &Transport{
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		Attempts:   DefaultAttempts,
		RetryDelay: DefaultRetryDelay,
		sleep:      sleepContext,
	}
}

// SetTimeout sets the HTTP request timeout
func (t *Transport) SetTimeout(timeout time.Duration) {
	t.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (t *Transport) SetRetry(attempts int, retryDelay time.Duration) {
	t.Attempts = attempts
	t.RetryDelay = retryDelay
}

// Get fetches rawURL and returns the response body. Non-200 responses and
// connection failures are retried; after the last attempt a transport error
// is returned.
func (t *Transport) Get(ctx context.Context, rawURL string) (string, error) {
	attempts := t.Attempts
	if attempts < 1 {
		attempts = 1
	}
	endpoint := endpointName(rawURL)
	logging.Debug("Gateway request", zap.String("url", logging.RedactURL(rawURL)))

	var (
		lastErr    error
		lastStatus int
	)

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := t.wait(ctx); err != nil {
				return "", NewTransportError(endpoint, attempt-1, lastStatus, err)
			}
		}

		body, status, err := t.getAttempt(ctx, rawURL)
		if err == nil {
			logging.LogRequest(endpoint, attempt, status)
			return body, nil
		}

		lastErr = err
		lastStatus = status

		if status != 0 {
			logging.Warn("Gateway request returned unexpected status",
				zap.String("endpoint", endpoint),
				zap.Int("status_code", status),
				zap.Int("attempt", attempt),
			)
		} else {
			logging.Error("Gateway request failed",
				zap.String("endpoint", endpoint),
				zap.String("kind", describeNetworkError(err)),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}

		if ctx.Err() != nil {
			return "", NewTransportError(endpoint, attempt, lastStatus, ctx.Err())
		}
	}

	return "", NewTransportError(endpoint, attempts, lastStatus, lastErr)
}

// getAttempt performs a single request. The returned status is 0 when no
// response was received.
func (t *Transport) getAttempt(ctx context.Context, rawURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create GET request: %w", redactError(err))
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return "", 0, redactError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", resp.StatusCode, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), resp.StatusCode, nil
}

// redactError masks credentials in the URL carried by a *url.Error so the
// error can be logged and shown to the user.
func redactError(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	return &url.Error{Op: ue.Op, URL: logging.RedactURL(ue.URL), Err: ue.Err}
}

func (t *Transport) wait(ctx context.Context) error {
	sleep := t.sleep
	if sleep == nil {
		sleep = sleepContext
	}
	return sleep(ctx, t.RetryDelay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// endpointName returns the last path segment of rawURL, for logs and errors.
func endpointName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := u.Path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

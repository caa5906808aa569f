package aura

import (
	"context"

	"go.uber.org/zap"

	"github.com/jgaura/aura/internal/logging"
)

// sessionAttempts is how many times an operation runs: once, then once more
// after a forced re-login.
const sessionAttempts = 2

// authenticatedOp is one authenticated request sequence. It receives the
// session token and gateway device id to build its URLs from.
type authenticatedOp func(ctx context.Context, token, deviceID string) error

// withSession runs op under the client lock with a logged-in session.
//
// A transport error from op invalidates the session and the whole sequence,
// login included, is run once more. A second transport error is returned as a
// communication error. Login failures, parse errors and command errors are
// returned unchanged and never retried.
func (c *Client) withSession(ctx context.Context, name string, op authenticatedOp) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for attempt := 1; ; attempt++ {
		if err := c.session.EnsureAuthenticated(ctx); err != nil {
			return err
		}

		token, deviceID := c.session.Credentials()
		err := op(ctx, token, deviceID)
		if err == nil {
			return nil
		}
		if !IsTransportError(err) {
			return err
		}

		c.session.Invalidate()

		if attempt >= sessionAttempts {
			logging.Error("Operation failed after re-login",
				zap.String("operation", name),
				zap.Error(err),
			)
			return NewCommunicationError(name+" failed after re-login", err)
		}

		logging.Warn("Operation failed, logging in again",
			zap.String("operation", name),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}

// Package notifier delivers verification tokens to newly registered
// accounts. Delivery is best-effort: the verification workflow logs a
// failed send and moves on, and the token stays redeemable either way.
package notifier

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier defines the interface for verification token delivery.
type Notifier interface {
	// Send delivers a verification token to the given email address.
	Send(ctx context.Context, email, token string) error
}

// LogNotifier writes the token to the log instead of delivering it.
// Intended for development and tests, where a mailbox isn't available.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With().Str("notifier", "log").Logger(),
	}
}

// Send logs the token at info level.
func (n *LogNotifier) Send(ctx context.Context, email, token string) error {
	n.logger.Info().
		Str("email", email).
		Str("token", token).
		Msg("verification token issued (log delivery)")
	return nil
}

// Ensure LogNotifier implements Notifier.
var _ Notifier = (*LogNotifier)(nil)

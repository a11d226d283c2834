package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Policy describes a bounded exponential backoff
type Policy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Default is used for every external network call
var Default = Policy{
	MaxRetries:      3,
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     5 * time.Second,
}

// Permanent marks an error that must not be retried
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op until it succeeds, returns a permanent error, the context ends
// or the retries are exhausted. The last error is returned.
func Do(ctx context.Context, logger *zap.Logger, name string, op func() error) error {
	return Default.Do(ctx, logger, name, op)
}

// Do runs op with this policy
func (p Policy) Do(ctx context.Context, logger *zap.Logger, name string, op func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.MaxInterval = p.MaxInterval
	eb.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(eb, p.MaxRetries), ctx)

	notify := func(err error, wait time.Duration) {
		logger.Warn("Retrying operation",
			zap.String("operation", name),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	return backoff.RetryNotify(op, b, notify)
}

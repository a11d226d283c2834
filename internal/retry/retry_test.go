package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var fast = Policy{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := fast.Do(context.Background(), zap.NewNop(), "test", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := fast.Do(context.Background(), zap.NewNop(), "test", func() error {
		calls++
		return errors.New("down")
	})

	assert.EqualError(t, err, "down")
	assert.Equal(t, 4, calls, "one attempt plus three retries")
}

func TestDo_PermanentErrorStopsImmediately(t *testing.T) {
	calls := 0
	err := fast.Do(context.Background(), zap.NewNop(), "test", func() error {
		calls++
		return Permanent(errors.New("bad request"))
	})

	assert.EqualError(t, err, "bad request")
	assert.Equal(t, 1, calls)
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := fast.Do(ctx, zap.NewNop(), "test", func() error {
		calls++
		return errors.New("down")
	})

	assert.Error(t, err)
	assert.LessOrEqual(t, calls, 1)
}

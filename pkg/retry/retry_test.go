package retry

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast() *Config {
	return &Config{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	var calls, retries int
	cfg := fast()
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		retries++
		assert.Equal(t, retries, attempt)
	}

	err := Retry(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return fs.ErrNotExist
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, retries)
}

func TestRetry_GivesUp(t *testing.T) {
	var calls int
	err := Retry(context.Background(), fast(), func() error {
		calls++
		return fs.ErrNotExist
	})
	assert.Equal(t, 4, calls)
	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRetry_RetryIf(t *testing.T) {
	boom := errors.New("boom")
	cfg := fast()
	cfg.RetryIf = On(fs.ErrNotExist)

	var calls int
	err := Retry(context.Background(), cfg, func() error {
		calls++
		return boom
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, boom, err)
}

func TestRetryWithResult_KeepsLastResult(t *testing.T) {
	var calls int
	cfg := fast()
	cfg.MaxRetries = 1

	res, err := RetryWithResult(context.Background(), cfg, func() (int, error) {
		calls++
		return calls * 10, fs.ErrNotExist
	})
	assert.Error(t, err)
	assert.Equal(t, 20, res)
}

func TestRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fast()
	cfg.InitialDelay = time.Hour
	cfg.MaxDelay = time.Hour

	var calls int
	err := Retry(ctx, cfg, func() error {
		calls++
		cancel()
		return fs.ErrNotExist
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestBackoff(t *testing.T) {
	cfg := &Config{InitialDelay: 10 * time.Millisecond, MaxDelay: 50 * time.Millisecond, Multiplier: 2}

	assert.Equal(t, 10*time.Millisecond, Backoff(0, cfg))
	assert.Equal(t, 20*time.Millisecond, Backoff(1, cfg))
	assert.Equal(t, 40*time.Millisecond, Backoff(2, cfg))
	assert.Equal(t, 50*time.Millisecond, Backoff(3, cfg))

	cfg.Jitter = 0.5
	for i := 0; i < 20; i++ {
		d := Backoff(0, cfg)
		assert.GreaterOrEqual(t, d, 5*time.Millisecond)
		assert.LessOrEqual(t, d, 15*time.Millisecond)
	}
}

func TestOn(t *testing.T) {
	retryable := On(fs.ErrNotExist, fs.ErrPermission)
	assert.True(t, retryable(fs.ErrNotExist))
	assert.True(t, retryable(&fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}))
	assert.False(t, retryable(errors.New("other")))
}

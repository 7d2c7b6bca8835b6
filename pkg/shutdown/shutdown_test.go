package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdown_RunsHooksInPriorityOrder(t *testing.T) {
	h := NewHandler(time.Second)

	var order []string
	h.RegisterFunc("http", PriorityHTTP, func(ctx context.Context) error {
		order = append(order, "http")
		return nil
	})
	h.RegisterFunc("watcher", PriorityWatcher, func(ctx context.Context) error {
		order = append(order, "watcher")
		return nil
	})
	h.RegisterFunc("clients", PriorityClients, func(ctx context.Context) error {
		order = append(order, "clients")
		return nil
	})

	require.NoError(t, h.Shutdown())
	assert.Equal(t, []string{"watcher", "clients", "http"}, order)
	assert.True(t, h.Closed())
}

func TestShutdown_JoinsErrors(t *testing.T) {
	h := NewHandler(time.Second)
	errA := errors.New("a")
	h.RegisterFunc("a", 1, func(ctx context.Context) error { return errA })
	h.RegisterFunc("b", 2, func(ctx context.Context) error { return nil })

	err := h.Shutdown()
	assert.ErrorIs(t, err, errA)
}

func TestShutdown_Twice(t *testing.T) {
	h := NewHandler(0)
	require.NoError(t, h.Shutdown())
	assert.ErrorIs(t, h.Shutdown(), ErrAlreadyClosed)
}

func TestShutdown_Timeout(t *testing.T) {
	h := NewHandler(20 * time.Millisecond)
	h.RegisterFunc("slow", 1, func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})

	assert.ErrorIs(t, h.Shutdown(), ErrShutdownTimeout)
}

func TestWait_RunsOnContextCancel(t *testing.T) {
	h := NewHandler(time.Second)
	called := false
	h.RegisterFunc("x", 1, func(ctx context.Context) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, h.Wait(ctx))
	assert.True(t, called)
}

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestName(t *testing.T) {
	l := New("OpenLibrary", 1)
	assert.Equal(t, "OpenLibrary", l.Name())
}

func TestWaitAllowsBurst(t *testing.T) {
	l := New("test", 100)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 10; i++ {
		assert.NoError(t, l.Wait(ctx))
	}
}

func TestWaitThrottles(t *testing.T) {
	l := New("test", 5)
	ctx := context.Background()

	// Drain the burst allowance, then the next waits must pace out.
	for i := 0; i < 5; i++ {
		assert.NoError(t, l.Wait(ctx))
	}

	start := time.Now()
	assert.NoError(t, l.Wait(ctx))
	assert.True(t, time.Since(start) >= 100*time.Millisecond)
}

func TestWaitHonorsCancelledContext(t *testing.T) {
	l := New("upstream", 1)
	assert.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "upstream")
}
package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	// Test with limit
	c := NewController(Config{MemoryLimitBytes: 100})

	// Acquire 50
	err := c.AcquireMemory(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.MemoryUsage())

	// Acquire 40
	err = c.AcquireMemory(context.Background(), 40)
	require.NoError(t, err)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Acquire 20 (should block/timeout)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = c.AcquireMemory(ctx, 20)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	err = c.AcquireMemory(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(60), c.MemoryUsage())
}

func TestController_MemoryOverLimit(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	err := c.AcquireMemory(ctx, 101)
	require.ErrorIs(t, err, ErrMemoryLimit)
	assert.Less(t, time.Since(start), time.Second)
	assert.NoError(t, ctx.Err())
	assert.Equal(t, int64(0), c.MemoryUsage())

	// A reservation of exactly the limit still fits.
	require.NoError(t, c.AcquireMemory(ctx, 100))
	assert.Equal(t, int64(100), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(context.Background(), 1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())

	// Non-positive sizes are ignored.
	require.NoError(t, c.AcquireMemory(context.Background(), 0))
	c.ReleaseMemory(-1)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_Workers(t *testing.T) {
	c := NewController(Config{MaxWorkers: 2})

	require.NoError(t, c.AcquireWorker(context.Background()))
	require.NoError(t, c.AcquireWorker(context.Background()))
	assert.Equal(t, int64(2), c.RunningWorkers())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireWorker(ctx), context.DeadlineExceeded)

	c.ReleaseWorker()
	require.NoError(t, c.AcquireWorker(context.Background()))
	assert.Equal(t, int64(2), c.RunningWorkers())
}

func TestController_UnlimitedWorkers(t *testing.T) {
	c := NewController(Config{})
	for range 100 {
		require.NoError(t, c.AcquireWorker(context.Background()))
	}
	assert.Equal(t, int64(100), c.RunningWorkers())
}

func TestController_Progress(t *testing.T) {
	c := NewController(Config{ProgressPerSec: 0.001})

	assert.True(t, c.AllowProgress(), "first event uses the burst")
	assert.False(t, c.AllowProgress())

	unlimited := NewController(Config{})
	for range 10 {
		assert.True(t, unlimited.AllowProgress())
	}
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireWorker(context.Background()))
	c.ReleaseWorker()
	require.NoError(t, c.AcquireMemory(context.Background(), 10))
	c.ReleaseMemory(10)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.True(t, c.AllowProgress())
	assert.Equal(t, Config{}, c.Config())
}

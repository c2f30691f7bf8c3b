// Package resource bounds the work a process spends on Monte Carlo shards:
// how many run at once, how much memory materialised sample sets may hold,
// and how often progress is reported.
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimit is returned when a single reservation is larger than the
// configured memory limit and therefore can never be granted.
var ErrMemoryLimit = errors.New("resource: reservation exceeds memory limit")

// Config holds resource limits.
type Config struct {
	// MaxWorkers is the maximum number of shards running at the same time
	// across all drivers sharing this controller.
	// If 0, no process-wide limit is enforced.
	MaxWorkers int64

	// MemoryLimitBytes is the hard limit for materialised sample sets.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// ProgressPerSec is the maximum rate of progress events.
	// If 0, every event is allowed.
	ProgressPerSec float64
}

// Controller manages shared resources (workers, memory, progress events).
// A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	// Workers
	workerSem *semaphore.Weighted // nil if unlimited
	running   atomic.Int64

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Progress
	progress *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MaxWorkers > 0 {
		c.workerSem = semaphore.NewWeighted(cfg.MaxWorkers)
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.ProgressPerSec > 0 {
		c.progress = rate.NewLimiter(rate.Limit(cfg.ProgressPerSec), 1)
	}

	return c
}

// Config returns the limits the controller was created with.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireWorker reserves a worker slot, blocking until one is free or ctx is canceled.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if c.workerSem != nil {
		if err := c.workerSem.Acquire(ctx, 1); err != nil {
			return err
		}
	}
	c.running.Add(1)
	return nil
}

// ReleaseWorker releases a worker slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	if c.workerSem != nil {
		c.workerSem.Release(1)
	}
	c.running.Add(-1)
}

// RunningWorkers returns the number of currently reserved worker slots.
func (c *Controller) RunningWorkers() int64 {
	if c == nil {
		return 0
	}
	return c.running.Load()
}

// AcquireMemory attempts to reserve memory.
// If a hard limit is configured and usage would exceed it,
// this blocks until memory is available or ctx is canceled.
// A reservation larger than the limit itself fails with ErrMemoryLimit.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if bytes > c.cfg.MemoryLimitBytes {
			return fmt.Errorf("%w: %d > %d bytes", ErrMemoryLimit, bytes, c.cfg.MemoryLimitBytes)
		}
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AllowProgress reports whether a progress event may be emitted now.
// Events over the configured rate are dropped, not delayed.
func (c *Controller) AllowProgress() bool {
	if c == nil || c.progress == nil {
		return true
	}
	return c.progress.Allow()
}

package fanout

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/mcvol/resource"
	"github.com/hupe1980/mcvol/sampler"
	"github.com/hupe1980/mcvol/volume"
)

// ShardResult is the outcome of one shard.
type ShardResult struct {
	Index    int           `json:"index"`
	Size     int           `json:"size"`
	Inside   int           `json:"inside"`
	Estimate float64       `json:"estimate"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Result is the aggregated outcome of a run.
type Result struct {
	Workers   int           `json:"workers"`
	Samples   int           `json:"samples"`
	Dimension int           `json:"dimension"`
	Estimate  float64       `json:"estimate"`
	Shards    []ShardResult `json:"shards"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Sampler counts inside and outside points for one shard.
// sampler.Count is the default.
type Sampler func(rng *sampler.RNG, n, d int) (inside, outside int, err error)

// Config configures a Driver.
type Config struct {
	// RNG is the parent random source; shard i samples from RNG.Derive(i).
	// If nil, a zero-seeded RNG is used.
	RNG *sampler.RNG

	// Controller bounds concurrently running shards across drivers.
	// If nil, only the per-run pool of k workers applies.
	Controller *resource.Controller

	// OnShardDone is called from the worker goroutine after each successful shard.
	OnShardDone func(ShardResult)

	// Sampler overrides the shard sampling function (tests).
	Sampler Sampler
}

// Driver runs partitioned Monte Carlo estimates.
type Driver struct {
	rng        *sampler.RNG
	controller *resource.Controller
	onDone     func(ShardResult)
	sample     Sampler
}

// New creates a Driver.
func New(cfg Config) *Driver {
	d := &Driver{
		rng:        cfg.RNG,
		controller: cfg.Controller,
		onDone:     cfg.OnShardDone,
		sample:     cfg.Sampler,
	}
	if d.rng == nil {
		d.rng = sampler.NewRNG(0)
	}
	if d.sample == nil {
		d.sample = sampler.Count
	}
	return d
}

// Run estimates the volume of the unit ball in dim dimensions from n samples
// split over workers shards. It blocks until every shard has finished.
func (d *Driver) Run(ctx context.Context, workers, n, dim int) (Result, error) {
	if dim < 1 {
		return Result{}, fmt.Errorf("%w: dimension %d", ErrInvalidArgument, dim)
	}
	sizes, err := Partition(n, workers)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	shards := make([]ShardResult, workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, size := range sizes {
		rng := d.rng.Derive(uint64(i))
		g.Go(func() error {
			res, err := d.runShard(gctx, i, size, dim, rng)
			if err != nil {
				return &WorkerError{Shard: i, Size: size, cause: err}
			}
			shards[i] = res
			if d.onDone != nil {
				d.onDone(res)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var sum float64
	for _, s := range shards {
		sum += s.Estimate
	}

	return Result{
		Workers:   workers,
		Samples:   n,
		Dimension: dim,
		Estimate:  sum / float64(workers),
		Shards:    shards,
		Elapsed:   time.Since(start),
	}, nil
}

func (d *Driver) runShard(ctx context.Context, index, size, dim int, rng *sampler.RNG) (res ShardResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()

	if err := ctx.Err(); err != nil {
		return ShardResult{}, err
	}
	if err := d.controller.AcquireWorker(ctx); err != nil {
		return ShardResult{}, err
	}
	defer d.controller.ReleaseWorker()

	start := time.Now()

	inside := 0
	if size > 0 {
		inside, _, err = d.sample(rng, size, dim)
		if err != nil {
			return ShardResult{}, err
		}
	}

	est, err := volume.Estimate(inside, size, dim)
	if err != nil {
		return ShardResult{}, err
	}

	return ShardResult{
		Index:    index,
		Size:     size,
		Inside:   inside,
		Estimate: est,
		Elapsed:  time.Since(start),
	}, nil
}

package mcvol

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hupe1980/mcvol/internal/fanout"
	"github.com/hupe1980/mcvol/resource"
	"github.com/hupe1980/mcvol/sampler"
	"github.com/hupe1980/mcvol/volume"
)

// ShardResult is the outcome of one shard of a parallel estimate.
type ShardResult = fanout.ShardResult

// Estimate is the outcome of a sequential or parallel volume estimate.
type Estimate struct {
	Samples   int `json:"samples"`
	Dimension int `json:"dimension"`
	Workers   int `json:"workers"`

	// Inside is the number of points strictly inside the unit ball
	// (summed over shards for parallel estimates).
	Inside int `json:"inside"`

	// Volume is the Monte Carlo estimate of the unit ball volume.
	Volume float64 `json:"volume"`

	// Exact is the analytic unit ball volume for Dimension.
	Exact float64 `json:"exact"`

	// RelativeError is |Volume-Exact|/Exact.
	RelativeError float64 `json:"relative_error"`

	// Shards holds per-shard results of a parallel estimate.
	Shards []ShardResult `json:"shards,omitempty"`

	Elapsed time.Duration `json:"elapsed"`
}

// Progress reports a finished shard of a parallel estimate.
type Progress struct {
	Done  int
	Total int
	Shard ShardResult
}

// Engine runs Monte Carlo volume estimates from one seeded random source.
// It is safe for concurrent use.
type Engine struct {
	rng        *sampler.RNG
	logger     *Logger
	metrics    MetricsCollector
	controller *resource.Controller
	progress   func(Progress)
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	o := applyOptions(optFns)
	return &Engine{
		rng:        sampler.NewRNG(o.seed),
		logger:     o.logger,
		metrics:    o.metricsCollector,
		controller: o.controller,
		progress:   o.progress,
	}
}

// Seed returns the seed of the engine's random source.
func (e *Engine) Seed() uint64 {
	return e.rng.Seed()
}

// Generate draws n points in [-1, 1]^d from the engine's random source.
//
// The memory of the set is reserved on the engine's controller until the set
// is handed back with Release.
func (e *Engine) Generate(ctx context.Context, n, d int) (*sampler.SampleSet, error) {
	start := time.Now()
	set, err := e.generate(ctx, n, d)
	elapsed := time.Since(start)

	e.metrics.RecordGenerate(n, elapsed, err)
	e.logger.LogGenerate(ctx, n, d, elapsed, err)
	return set, err
}

func (e *Engine) generate(ctx context.Context, n, d int) (*sampler.SampleSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	size := sampler.SizeBytes(n, d)
	if err := e.controller.AcquireMemory(ctx, size); err != nil {
		return nil, translateError(err)
	}

	set, err := sampler.Generate(e.rng, n, d)
	if err != nil {
		e.controller.ReleaseMemory(size)
		return nil, translateError(err)
	}
	return set, nil
}

// Release returns the memory reserved for set to the controller.
func (e *Engine) Release(set *sampler.SampleSet) {
	if set == nil {
		return
	}
	e.controller.ReleaseMemory(sampler.SizeBytes(set.Len(), set.Dim()))
}

// Classify splits set into points inside and outside the unit ball.
func (e *Engine) Classify(set *sampler.SampleSet) sampler.Classification {
	return sampler.Classify(set)
}

// Analytic returns the exact volume of the unit ball in d dimensions.
func (e *Engine) Analytic(d int) float64 {
	return volume.Analytic(float64(d))
}

// Estimate generates n points in d dimensions, classifies them and returns
// the Monte Carlo volume estimate of the unit ball.
func (e *Engine) Estimate(ctx context.Context, n, d int) (Estimate, error) {
	start := time.Now()
	est := Estimate{Samples: n, Dimension: d, Workers: 1}

	set, err := e.Generate(ctx, n, d)
	if err == nil {
		cls := sampler.Classify(set)
		e.Release(set)

		est.Inside = cls.InsideCount()
		est.Volume, err = volume.Estimate(cls.InsideCount(), cls.Total(), d)
		err = translateError(err)
	}

	return e.finish(ctx, est, start, err)
}

// ParallelEstimate splits n samples over workers shards, estimates every
// shard concurrently with its own random stream and returns the mean of the
// shard estimates. The last shard absorbs n%workers extra samples.
//
// The first failing shard fails the whole call with a *WorkerError.
func (e *Engine) ParallelEstimate(ctx context.Context, workers, n, d int) (Estimate, error) {
	start := time.Now()
	est := Estimate{Samples: n, Dimension: d, Workers: workers}

	logger := e.logger.WithDimension(d).WithWorkers(workers)

	var done atomic.Int64
	driver := fanout.New(fanout.Config{
		RNG:        sampler.NewRNG(e.rng.Uint64()),
		Controller: e.controller,
		OnShardDone: func(r fanout.ShardResult) {
			e.metrics.RecordShard(r.Size, r.Elapsed)
			logger.LogShard(ctx, r.Index, r.Size, r.Inside, r.Elapsed)

			finished := int(done.Add(1))
			if e.progress != nil && (finished == workers || e.controller.AllowProgress()) {
				e.progress(Progress{Done: finished, Total: workers, Shard: r})
			}
		},
	})

	res, err := driver.Run(ctx, workers, n, d)
	if err == nil {
		est.Volume = res.Estimate
		est.Shards = res.Shards
		for _, s := range res.Shards {
			est.Inside += s.Inside
		}
	}

	return e.finish(ctx, est, start, translateError(err))
}

func (e *Engine) finish(ctx context.Context, est Estimate, start time.Time, err error) (Estimate, error) {
	est.Elapsed = time.Since(start)
	if err == nil {
		est.Exact = volume.Analytic(float64(est.Dimension))
		est.RelativeError = volume.RelativeError(est.Volume, est.Exact)
	}

	e.metrics.RecordEstimate(est.Workers, est.Samples, est.Elapsed, err)
	e.logger.LogEstimate(ctx, est, err)
	if err != nil {
		return Estimate{}, err
	}
	return est, nil
}

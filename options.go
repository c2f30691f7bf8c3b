package mcvol

import (
	"log/slog"

	"github.com/hupe1980/mcvol/resource"
)

type options struct {
	seed             uint64
	metricsCollector MetricsCollector
	logger           *Logger
	controller       *resource.Controller
	progress         func(Progress)
}

// Option configures an Engine.
type Option func(*options)

// WithSeed sets the seed of the engine's random source.
// Equal seeds give equal samples and estimates.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &mcvol.BasicMetricsCollector{}
//	e := mcvol.New(mcvol.WithMetricsCollector(metrics))
//	// ... use e ...
//	stats := metrics.GetStats()
//	fmt.Printf("Estimates: %d, Avg latency: %dns\n", stats.EstimateCount, stats.EstimateAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := mcvol.NewJSONLogger(slog.LevelInfo)
//	e := mcvol.New(mcvol.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithController shares a resource controller between engines.
// The controller bounds concurrently running shards, the memory held by
// generated sample sets and the rate of progress callbacks.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithProgress registers a callback invoked as shards of a parallel estimate
// finish. Calls come from worker goroutines and may be rate limited by the
// controller; the final shard is always reported.
func WithProgress(fn func(Progress)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

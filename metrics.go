package mcvol

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordGenerate is called after each sample generation.
	// n is the number of points requested.
	RecordGenerate(n int, duration time.Duration, err error)

	// RecordEstimate is called after each sequential or parallel estimate.
	// workers is 1 for sequential estimates.
	RecordEstimate(workers, n int, duration time.Duration, err error)

	// RecordShard is called after each successful shard of a parallel estimate.
	RecordShard(size int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGenerate(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordEstimate(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordShard(int, time.Duration)                {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GenerateCount      atomic.Int64
	GenerateErrors     atomic.Int64
	GeneratedPoints    atomic.Int64
	EstimateCount      atomic.Int64
	EstimateErrors     atomic.Int64
	EstimateTotalNanos atomic.Int64
	SampledPoints      atomic.Int64
	ShardCount         atomic.Int64
	ShardTotalNanos    atomic.Int64
}

// RecordGenerate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGenerate(n int, duration time.Duration, err error) {
	b.GenerateCount.Add(1)
	if err != nil {
		b.GenerateErrors.Add(1)
		return
	}
	b.GeneratedPoints.Add(int64(n))
}

// RecordEstimate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEstimate(workers, n int, duration time.Duration, err error) {
	b.EstimateCount.Add(1)
	b.EstimateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EstimateErrors.Add(1)
		return
	}
	b.SampledPoints.Add(int64(n))
}

// RecordShard implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShard(size int, duration time.Duration) {
	b.ShardCount.Add(1)
	b.ShardTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GenerateCount:    b.GenerateCount.Load(),
		GenerateErrors:   b.GenerateErrors.Load(),
		GeneratedPoints:  b.GeneratedPoints.Load(),
		EstimateCount:    b.EstimateCount.Load(),
		EstimateErrors:   b.EstimateErrors.Load(),
		EstimateAvgNanos: avg(b.EstimateTotalNanos.Load(), b.EstimateCount.Load()),
		SampledPoints:    b.SampledPoints.Load(),
		ShardCount:       b.ShardCount.Load(),
		ShardAvgNanos:    avg(b.ShardTotalNanos.Load(), b.ShardCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GenerateCount    int64
	GenerateErrors   int64
	GeneratedPoints  int64
	EstimateCount    int64
	EstimateErrors   int64
	EstimateAvgNanos int64
	SampledPoints    int64
	ShardCount       int64
	ShardAvgNanos    int64
}

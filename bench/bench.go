package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/mcvol"
	"github.com/hupe1980/mcvol/fib"
)

// Estimator is the subset of *mcvol.Engine the sweeps need.
type Estimator interface {
	Estimate(ctx context.Context, n, d int) (mcvol.Estimate, error)
	ParallelEstimate(ctx context.Context, workers, n, d int) (mcvol.Estimate, error)
}

// Time returns the wall-clock duration of fn.
func Time(fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	return time.Since(start), err
}

// PiRow is one π approximation.
type PiRow struct {
	Samples int           `json:"samples"`
	Inside  int           `json:"inside"`
	Pi      float64       `json:"pi"`
	Elapsed time.Duration `json:"elapsed"`
}

// PiSeries approximates π once per sample count.
func PiSeries(ctx context.Context, est Estimator, ns []int) ([]PiRow, error) {
	rows := make([]PiRow, 0, len(ns))
	for _, n := range ns {
		e, err := est.Estimate(ctx, n, 2)
		if err != nil {
			return nil, fmt.Errorf("pi n=%d: %w", n, err)
		}
		rows = append(rows, PiRow{Samples: n, Inside: e.Inside, Pi: e.Volume, Elapsed: e.Elapsed})
	}
	return rows, nil
}

// HypersphereRow compares an estimated unit ball volume with the exact one.
type HypersphereRow struct {
	Dimension     int           `json:"dimension"`
	Samples       int           `json:"samples"`
	Volume        float64       `json:"volume"`
	Exact         float64       `json:"exact"`
	RelativeError float64       `json:"relative_error"`
	Elapsed       time.Duration `json:"elapsed"`
}

// HypersphereRows estimates the unit ball volume with n samples in every
// dimension of ds.
func HypersphereRows(ctx context.Context, est Estimator, n int, ds []int) ([]HypersphereRow, error) {
	rows := make([]HypersphereRow, 0, len(ds))
	for _, d := range ds {
		e, err := est.Estimate(ctx, n, d)
		if err != nil {
			return nil, fmt.Errorf("hypersphere d=%d: %w", d, err)
		}
		rows = append(rows, HypersphereRow{
			Dimension:     d,
			Samples:       n,
			Volume:        e.Volume,
			Exact:         e.Exact,
			RelativeError: e.RelativeError,
			Elapsed:       e.Elapsed,
		})
	}
	return rows, nil
}

// SpeedRow is the outcome of one parallel estimate at a given worker count.
type SpeedRow struct {
	Workers       int           `json:"workers"`
	Samples       int           `json:"samples"`
	Dimension     int           `json:"dimension"`
	Volume        float64       `json:"volume"`
	RelativeError float64       `json:"relative_error"`
	Elapsed       time.Duration `json:"elapsed"`
}

// SpeedSweep runs the same parallel estimate once per worker count.
func SpeedSweep(ctx context.Context, est Estimator, workers []int, n, d int) ([]SpeedRow, error) {
	rows := make([]SpeedRow, 0, len(workers))
	for _, w := range workers {
		e, err := est.ParallelEstimate(ctx, w, n, d)
		if err != nil {
			return nil, fmt.Errorf("speed workers=%d: %w", w, err)
		}
		rows = append(rows, SpeedRow{
			Workers:       w,
			Samples:       n,
			Dimension:     d,
			Volume:        e.Volume,
			RelativeError: e.RelativeError,
			Elapsed:       e.Elapsed,
		})
	}
	return rows, nil
}

// FibRow is one timed Fibonacci computation.
type FibRow struct {
	Strategy string        `json:"strategy"`
	N        int           `json:"n"`
	Value    uint64        `json:"value"`
	Elapsed  time.Duration `json:"elapsed"`
}

type resetter interface {
	Reset()
}

// FibSweep times every strategy on every n. Caching strategies are reset
// before each measurement so every row pays the full cost.
func FibSweep(ctx context.Context, strategies []fib.Strategy, ns []int) ([]FibRow, error) {
	rows := make([]FibRow, 0, len(strategies)*len(ns))
	for _, s := range strategies {
		for _, n := range ns {
			if r, ok := s.(resetter); ok {
				r.Reset()
			}

			var v uint64
			elapsed, err := Time(func() error {
				var err error
				v, err = s.Fib(ctx, n)
				return err
			})
			if err != nil {
				return nil, fmt.Errorf("fib %s n=%d: %w", s.Name(), n, err)
			}
			rows = append(rows, FibRow{Strategy: s.Name(), N: n, Value: v, Elapsed: elapsed})
		}
	}
	return rows, nil
}

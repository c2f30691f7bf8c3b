// Package mcvol estimates the volume of the unit ball in d dimensions with
// Monte Carlo sampling.
//
// Points are drawn uniformly from the cube [-1, 1]^d. The fraction that lands
// strictly inside the unit ball, scaled by the cube volume 2^d, estimates the
// ball volume π^(d/2) / Γ(d/2 + 1). For d = 2 this is the classic estimate of π.
//
// # Quick Start
//
//	ctx := context.Background()
//	e := mcvol.New(mcvol.WithSeed(42))
//
//	est, _ := e.Estimate(ctx, 100_000, 2)
//	fmt.Println(est.Volume, est.Exact) // ≈ 3.14, 3.14159...
//
// # Parallel Estimates
//
// ParallelEstimate splits the samples into one shard per worker. Every shard
// samples from its own random stream derived from the engine seed, and the
// result is the mean of the shard estimates:
//
//	est, err := e.ParallelEstimate(ctx, 4, 10_000_000, 11)
//	var we *mcvol.WorkerError
//	if errors.As(err, &we) {
//	    log.Printf("shard %d failed", we.Shard)
//	}
//
// # Resource Control
//
// Engines can share a resource.Controller that bounds concurrently running
// shards and the memory held by generated sample sets:
//
//	ctrl := resource.NewController(resource.Config{MaxWorkers: 8})
//	e := mcvol.New(mcvol.WithController(ctrl), mcvol.WithLogLevel(slog.LevelDebug))
//
// # Packages
//
//   - sampler: seeded RNG, point generation and unit ball classification
//   - volume: Monte Carlo and analytic volumes
//   - fib: recursive Fibonacci strategies for the timing benchmarks
//   - bench: timing series for estimates and Fibonacci strategies
//   - chart: PNG rendering of point clouds and timing series
//   - blobstore: local, S3 and MinIO output of charts and reports
//   - codec: report encoding and compression
package mcvol

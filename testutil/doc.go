// Package testutil provides testing utilities for mcvol.
//
// This package is intended for use in tests and benchmarks only.
// It provides brute-force ground truth for classifications and the
// standard errors needed to bound Monte Carlo estimates.
//
// # Ground Truth
//
//	inside := testutil.CountInside(points)
//
// # Statistical Bounds
//
//	sigma := testutil.ShardedStdErr(11, []int{2500, 2500, 2500, 2500})
//	testutil.AssertWithinSigma(t, est, volume.Analytic(11), sigma, 5)
package testutil

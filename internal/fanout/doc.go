// Package fanout splits a Monte Carlo run into shards, samples every shard on
// its own goroutine with its own RNG stream, and averages the shard estimates.
//
// # Partitioning
//
// n samples over k workers give k-1 shards of n/k samples and a last shard
// of n/k + n%k samples:
//
//	Partition(10, 4) == []int{2, 2, 2, 4}
//
// # Aggregation
//
// The run estimate is the arithmetic mean of the per-shard volume estimates.
// Shards are not pooled by raw counts, so unequal shard sizes weigh the last
// shard less than its share of samples.
//
// # Failure
//
// The first failing shard fails the run. No partial result is returned and
// nothing is retried. A panicking shard is reported as a *WorkerError.
package fanout

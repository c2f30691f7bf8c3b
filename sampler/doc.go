// Package sampler draws uniformly distributed points from the cube [-1, 1]^d
// and classifies them against the unit ball.
//
// All randomness flows through an explicit *RNG handle owned by the caller,
// so a seed fully determines a sample set:
//
//	rng := sampler.NewRNG(42)
//	set, _ := sampler.Generate(rng, 1000, 2)
//	cls := sampler.Classify(set)
//	fmt.Println(cls.InsideCount(), cls.Total())
//
// Shards of a parallel run derive their own independent streams:
//
//	shardRNG := rng.Derive(uint64(shardIndex))
//
// Points with a squared norm of exactly 1 are neither inside nor outside.
package sampler

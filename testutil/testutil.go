package testutil

import (
	"math"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/mcvol/volume"
)

// CountInside returns the number of points with squared norm strictly below 1.
// It recomputes the norm naively and serves as ground truth for classifiers.
func CountInside[P ~[]float64](points []P) int {
	inside := 0
	for _, p := range points {
		var s float64
		for _, x := range p {
			s += x * x
		}
		if s < 1 {
			inside++
		}
	}
	return inside
}

// HitProbability is the probability that a uniform point in [-1, 1]^d lies
// inside the unit ball.
func HitProbability(d int) float64 {
	return volume.Analytic(float64(d)) / math.Exp2(float64(d))
}

// StdErr is the standard error of a single n-sample volume estimate in d
// dimensions.
func StdErr(d, n int) float64 {
	p := HitProbability(d)
	return math.Exp2(float64(d)) * math.Sqrt(p*(1-p)/float64(n))
}

// ShardedStdErr is the standard error of the mean of per-shard estimates
// with the given shard sizes.
func ShardedStdErr(d int, sizes []int) float64 {
	if len(sizes) == 0 {
		return math.Inf(1)
	}
	var variance float64
	for _, n := range sizes {
		se := StdErr(d, n)
		variance += se * se
	}
	return math.Sqrt(variance) / float64(len(sizes))
}

// AssertWithinSigma asserts |estimate-exact| <= z*sigma.
func AssertWithinSigma(t assert.TestingT, estimate, exact, sigma, z float64, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.InDelta(t, exact, estimate, z*sigma, msgAndArgs...)
}

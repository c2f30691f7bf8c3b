package sampler

import (
	"math/rand/v2"
	"sync"
)

// RNG is a seedable pseudo-random source passed explicitly to the sampler.
// It is thread-safe, but each shard of a parallel run should own a derived
// RNG instead of sharing one.
type RNG struct {
	pcg    *rand.PCG
	rand   *rand.Rand
	seed   uint64
	stream uint64
	mu     sync.Mutex
}

// NewRNG creates a new RNG on stream 0 of the given seed.
func NewRNG(seed uint64) *RNG {
	return newRNG(seed, 0)
}

func newRNG(seed, stream uint64) *RNG {
	pcg := rand.NewPCG(seed, stream)
	return &RNG{
		pcg:    pcg,
		rand:   rand.New(pcg),
		seed:   seed,
		stream: stream,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Stream returns the PCG stream selector of this RNG.
func (r *RNG) Stream() uint64 {
	return r.stream
}

// Reset rewinds the RNG to its initial state.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pcg.Seed(r.seed, r.stream)
}

// Derive returns an independent RNG for sub-stream i.
// Derivation is deterministic: the same parent and i give the same sequence.
func (r *RNG) Derive(i uint64) *RNG {
	return newRNG(r.seed, splitmix64(r.stream^splitmix64(i+1)))
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// FillRange fills dst with values in [lo, hi).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillRange(dst []float64, lo, hi float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fillRangeLocked(r.rand, dst, lo, hi)
}

func fillRangeLocked(src *rand.Rand, dst []float64, lo, hi float64) {
	span := hi - lo
	for i := range dst {
		dst[i] = lo + src.Float64()*span
	}
}

// splitmix64 scrambles x so that neighbouring shard indices select
// unrelated PCG streams.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

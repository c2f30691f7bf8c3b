package sampler

import (
	"math"

	"github.com/hupe1980/mcvol/distance"
)

const (
	// Low is the lower bound of every coordinate.
	Low = -1.0
	// High is the upper bound of every coordinate.
	High = 1.0
)

// Point is a single sample: d coordinates in [-1, 1].
// Points returned by a SampleSet alias its storage and must not be modified.
type Point []float64

// SampleSet holds n points of dimensionality d in one contiguous slice.
type SampleSet struct {
	data []float64
	n    int
	dim  int
}

// Len returns the number of points.
func (s *SampleSet) Len() int { return s.n }

// Dim returns the dimensionality of every point.
func (s *SampleSet) Dim() int { return s.dim }

// At returns the i-th point.
func (s *SampleSet) At(i int) Point {
	off := i * s.dim
	return Point(s.data[off : off+s.dim : off+s.dim])
}

// Points returns all points in generation order.
func (s *SampleSet) Points() []Point {
	pts := make([]Point, s.n)
	for i := range pts {
		pts[i] = s.At(i)
	}
	return pts
}

// SizeBytes returns the memory held by the coordinates of n points in d dimensions.
func SizeBytes(n, d int) int64 {
	return int64(n) * int64(d) * 8
}

func validate(rng *RNG, n, d int) error {
	if rng == nil {
		return ErrInvalidArgument
	}
	if n < 1 || uint64(n) > math.MaxUint32 {
		return &ErrInvalidSize{Name: "sample count", Value: n}
	}
	if d < 1 {
		return &ErrInvalidSize{Name: "dimension", Value: d}
	}
	return nil
}

// Generate draws n points with d coordinates, each uniform on [-1, 1].
func Generate(rng *RNG, n, d int) (*SampleSet, error) {
	if err := validate(rng, n, d); err != nil {
		return nil, err
	}

	data := make([]float64, n*d)
	rng.FillRange(data, Low, High)

	return &SampleSet{data: data, n: n, dim: d}, nil
}

// Count draws n points like Generate and classifies them on the fly without
// keeping them. For the same RNG state it returns exactly the counts that
// Classify(Generate(rng, n, d)) would.
func Count(rng *RNG, n, d int) (inside, outside int, err error) {
	if err := validate(rng, n, d); err != nil {
		return 0, 0, err
	}

	rng.mu.Lock()
	defer rng.mu.Unlock()

	p := make([]float64, d)
	for range n {
		fillRangeLocked(rng.rand, p, Low, High)
		switch distance.Locate(distance.SquaredNorm(p)) {
		case distance.Inside:
			inside++
		case distance.Outside:
			outside++
		}
	}
	return inside, outside, nil
}

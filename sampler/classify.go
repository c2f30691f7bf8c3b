package sampler

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/mcvol/distance"
)

// Classification records which points of a SampleSet fall inside and outside
// the unit ball. Boundary points are in neither set.
type Classification struct {
	inside  *roaring.Bitmap
	outside *roaring.Bitmap
	total   int
}

// Classify tests every point's squared norm against 1.
func Classify(set *SampleSet) Classification {
	c := Classification{
		inside:  roaring.New(),
		outside: roaring.New(),
	}
	if set == nil {
		return c
	}
	c.total = set.Len()

	for i := range set.Len() {
		switch distance.Locate(distance.SquaredNorm(set.At(i))) {
		case distance.Inside:
			c.inside.Add(uint32(i))
		case distance.Outside:
			c.outside.Add(uint32(i))
		}
	}
	return c
}

// InsideCount returns the number of points strictly inside the unit ball.
func (c Classification) InsideCount() int { return int(c.inside.GetCardinality()) }

// OutsideCount returns the number of points strictly outside the unit ball.
func (c Classification) OutsideCount() int { return int(c.outside.GetCardinality()) }

// BoundaryCount returns the number of points lying exactly on the unit sphere.
func (c Classification) BoundaryCount() int {
	return c.total - c.InsideCount() - c.OutsideCount()
}

// Total returns the number of classified points.
func (c Classification) Total() int { return c.total }

// Inside returns the indices of inside points in ascending order.
func (c Classification) Inside() []uint32 { return c.inside.ToArray() }

// Outside returns the indices of outside points in ascending order.
func (c Classification) Outside() []uint32 { return c.outside.ToArray() }

// IsInside reports whether point i was classified inside.
func (c Classification) IsInside(i int) bool {
	return i >= 0 && c.inside.Contains(uint32(i))
}

// XY projects the points at idx onto their first two coordinates.
// One-dimensional points get a zero y coordinate.
func XY(set *SampleSet, idx []uint32) (xs, ys []float64) {
	xs = make([]float64, len(idx))
	ys = make([]float64, len(idx))
	for k, i := range idx {
		p := set.At(int(i))
		xs[k] = p[0]
		if len(p) > 1 {
			ys[k] = p[1]
		}
	}
	return xs, ys
}

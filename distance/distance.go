package distance

import "fmt"

// SquaredNorm returns the sum of squared coordinates of v.
//
// The sum is accumulated left to right, so a given point always yields the
// same bits.
func SquaredNorm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return sum
}

// Region is the position of a point relative to the unit sphere.
type Region int

const (
	// Inside means the squared norm is strictly less than 1.
	Inside Region = iota
	// Outside means the squared norm is strictly greater than 1.
	Outside
	// Boundary means the squared norm is exactly 1.
	Boundary
)

func (r Region) String() string {
	switch r {
	case Inside:
		return "inside"
	case Outside:
		return "outside"
	case Boundary:
		return "boundary"
	default:
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
}

// Locate classifies a squared norm against the unit sphere.
func Locate(squaredNorm float64) Region {
	switch {
	case squaredNorm < 1:
		return Inside
	case squaredNorm > 1:
		return Outside
	default:
		return Boundary
	}
}

// InUnitBall reports whether v lies strictly inside the unit ball.
func InUnitBall(v []float64) bool {
	return Locate(SquaredNorm(v)) == Inside
}

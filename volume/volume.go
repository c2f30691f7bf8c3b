// Package volume turns unit-ball classification counts into Monte Carlo volume
// estimates and provides the closed-form reference volume.
package volume

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDivision is returned when an estimate is requested over zero samples.
	ErrDivision = errors.New("volume: division by zero sample count")

	// ErrInvalidArgument is returned for counts or dimensions outside their domain.
	ErrInvalidArgument = errors.New("volume: invalid argument")
)

// Estimate returns (inside/total) * 2^d, the fraction of the cube [-1, 1]^d
// covered by the unit ball scaled by the cube's volume.
func Estimate(inside, total, d int) (float64, error) {
	if total == 0 {
		return 0, ErrDivision
	}
	if d < 1 {
		return 0, fmt.Errorf("%w: dimension %d", ErrInvalidArgument, d)
	}
	if total < 0 || inside < 0 || inside > total {
		return 0, fmt.Errorf("%w: inside %d of %d", ErrInvalidArgument, inside, total)
	}
	return float64(inside) / float64(total) * math.Exp2(float64(d)), nil
}

// Pi returns the two-dimensional estimate, which approximates π.
func Pi(inside, total int) (float64, error) {
	return Estimate(inside, total, 2)
}

// Analytic returns π^(d/2) / Γ(d/2 + 1), the exact volume of the unit ball
// in d dimensions. It returns NaN for d <= 0.
//
// The ratio is evaluated in log space so that large d underflows towards 0
// instead of dividing two overflowed terms.
func Analytic(d float64) float64 {
	if d <= 0 || math.IsNaN(d) {
		return math.NaN()
	}
	lg, _ := math.Lgamma(d/2 + 1)
	return math.Exp(d/2*math.Log(math.Pi) - lg)
}

// RelativeError returns |estimate - exact| / |exact|.
func RelativeError(estimate, exact float64) float64 {
	return math.Abs(estimate-exact) / math.Abs(exact)
}

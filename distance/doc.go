// Package distance provides the float64 norm kernel used to classify sample
// points against the unit ball.
//
// # Usage
//
//	r2 := distance.SquaredNorm(p)        // x1² + x2² + ... + xd²
//	ok := distance.InUnitBall(p)         // r2 < 1
package distance

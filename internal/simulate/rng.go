// Package simulate implements the Monte Carlo core: normal variate
// generation, per-trial path simulation, and the concurrent trial runner.
package simulate

import (
	"math"
	"math/rand"
)

// NormalSource produces normally distributed variates via the polar
// Box-Muller transform. Each accepted uniform pair yields two independent
// standard-normal values; one is returned immediately and the other cached
// as a spare for the next call, halving the sqrt/log cost.
//
// A NormalSource is NOT safe for concurrent use: both the underlying
// uniform generator and the spare cache are mutable. The runner gives each
// trial chunk its own instance so draws stay independent under parallel
// execution.
type NormalSource struct {
	rng      *rand.Rand
	spare    float64
	hasSpare bool
}

// NewNormalSource creates a NormalSource seeded deterministically.
func NewNormalSource(seed int64) *NormalSource {
	return &NormalSource{rng: rand.New(rand.NewSource(seed))}
}

// Norm returns one draw from N(mean, stdDev^2).
//
// The rejection loop keeps the uniform point strictly inside the unit disk
// and away from the origin, as the transform requires. Acceptance
// probability is pi/4 per iteration, so the loop terminates with
// probability 1 after a small expected number of iterations; there is no
// hard cap.
func (s *NormalSource) Norm(mean, stdDev float64) float64 {
	if s.hasSpare {
		s.hasSpare = false
		return s.spare*stdDev + mean
	}

	var u, v, mag float64
	for {
		u = 2.0*s.rng.Float64() - 1.0
		v = 2.0*s.rng.Float64() - 1.0
		mag = u*u + v*v
		if mag < 1.0 && mag != 0.0 {
			break
		}
	}

	f := math.Sqrt(-2.0 * math.Log(mag) / mag)
	s.spare = v * f
	s.hasSpare = true

	return mean + stdDev*u*f
}

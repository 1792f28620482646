package physics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/vmath"
)

// Comparison describes body a relative to body b. Orbital elements that do
// not exist for the pair are NaN.
type Comparison[V vmath.Vector[V]] struct {
	RelativePosition V
	RelativeVelocity V
	Distance         float64
	// MassRatio is a.Mass / b.Mass.
	MassRatio      float64
	EscapeVelocity float64
	// Bound reports whether the relative speed is below escape velocity.
	Bound bool
	// Barycenter of the pair, zero if both are massless.
	Barycenter V

	EccentricityVector V
	Eccentricity       float64
	SemiMajorAxis      float64
	OrbitalPeriod      float64
}

func Compare[V vmath.Vector[V]](a, b Body[V]) Comparison[V] {
	r := a.Position.Sub(b.Position)
	v := a.Velocity.Sub(b.Velocity)
	dist := r.Len()
	speed := v.Len()
	mu := G * (a.Mass + b.Mass)

	c := Comparison[V]{
		RelativePosition: r,
		RelativeVelocity: v,
		Distance:         dist,
		MassRatio:        a.Mass / b.Mass,
		EscapeVelocity:   math.Sqrt(2 * mu / (dist + Smoothing)),
		Barycenter:       Barycenter([]Body[V]{a, b}),
		Eccentricity:     math.NaN(),
		SemiMajorAxis:    math.NaN(),
		OrbitalPeriod:    math.NaN(),
	}
	c.Bound = speed < c.EscapeVelocity

	if mu == 0 || dist == 0 {
		return c
	}

	c.EccentricityVector = r.Scale(speed*speed/mu - 1/dist).Sub(v.Scale(r.Dot(v) / mu))
	c.Eccentricity = c.EccentricityVector.Len()

	if speed == 0 {
		return c
	}
	energy := speed*speed/2 - mu/dist
	if energy == 0 {
		return c
	}
	c.SemiMajorAxis = -mu / (2 * energy)

	if c.Bound && c.SemiMajorAxis > 0 {
		c.OrbitalPeriod = 2 * math.Pi * math.Sqrt(math.Pow(c.SemiMajorAxis, 3)/mu)
	}
	return c
}

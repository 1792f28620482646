package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/vmath"
)

// MomentumDrift tracks the largest change of total momentum since the first
// observation, relative to the sum of the bodies' momentum magnitudes then.
// A system at rest is measured in absolute terms.
type MomentumDrift[V vmath.Vector[V]] struct {
	name     string
	initial  V
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift[V vmath.Vector[V]]() *MomentumDrift[V] {
	return &MomentumDrift[V]{name: "momentum_drift"}
}

func (m *MomentumDrift[V]) Name() string { return m.name }

func (m *MomentumDrift[V]) Observe(bodies []physics.Body[V], _ sim.Frame) {
	p := physics.Momentum(bodies)
	if m.samples == 0 {
		m.initial = p
		m.scale = 0
		for _, b := range bodies {
			m.scale += b.Mass * b.Velocity.Len()
		}
		if m.scale == 0 {
			m.scale = 1
		}
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Len()/m.scale)
}

func (m *MomentumDrift[V]) Value() float64 { return m.maxDrift }

func (m *MomentumDrift[V]) Reset() {
	var zero V
	m.initial = zero
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}

// AngularMomentumDrift tracks the largest relative change of the angular
// momentum about the origin in the xy plane.
type AngularMomentumDrift[V vmath.Vector[V]] struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift[V vmath.Vector[V]]() *AngularMomentumDrift[V] {
	return &AngularMomentumDrift[V]{name: "angular_momentum_drift"}
}

func (a *AngularMomentumDrift[V]) Name() string { return a.name }

func (a *AngularMomentumDrift[V]) Observe(bodies []physics.Body[V], _ sim.Frame) {
	l := physics.AngularMomentum(bodies)
	if a.samples == 0 {
		a.initial = l
	}
	a.samples++
	if a.initial != 0 {
		a.maxDrift = math.Max(a.maxDrift, math.Abs(l-a.initial)/math.Abs(a.initial))
	}
}

func (a *AngularMomentumDrift[V]) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift[V]) Reset() {
	a.initial = 0
	a.maxDrift = 0
	a.samples = 0
}

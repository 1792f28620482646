package metrics

import (
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/vmath"
)

// Stability is the fraction of active frames that kept up with their target
// time. Paused frames are not counted.
type Stability[V vmath.Vector[V]] struct {
	name       string
	violations int
	samples    int
}

func NewStability[V vmath.Vector[V]]() *Stability[V] {
	return &Stability[V]{
		name: "stability",
	}
}

func (s *Stability[V]) Name() string {
	return s.name
}

func (s *Stability[V]) Observe(_ []physics.Body[V], f sim.Frame) {
	if f.Paused {
		return
	}
	s.samples++
	if f.Slowed {
		s.violations++
	}
}

func (s *Stability[V]) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability[V]) Reset() {
	s.violations = 0
	s.samples = 0
}

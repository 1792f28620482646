package sim

import (
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/vmath"
)

const DefaultOrbitLength = 1000

// Orbit is the trail of past positions of one body, oldest first.
type Orbit[V vmath.Vector[V]] struct {
	ID     int
	Points []V
}

// OrbitHistory keeps a capped trail per body ID.
type OrbitHistory[V vmath.Vector[V]] struct {
	maxLength int
	orbits    []Orbit[V]
}

func NewOrbitHistory[V vmath.Vector[V]](maxLength int) *OrbitHistory[V] {
	if maxLength <= 0 {
		maxLength = DefaultOrbitLength
	}
	return &OrbitHistory[V]{maxLength: maxLength}
}

// Record appends the current position of every body. Bodies seen for the
// first time start a new trail; trails of bodies that are gone are dropped.
func (h *OrbitHistory[V]) Record(bodies []physics.Body[V]) {
	positions := make(map[int]V, len(bodies))
	for _, b := range bodies {
		positions[b.ID] = b.Position
	}

	kept := h.orbits[:0]
	known := make(map[int]bool, len(h.orbits))
	for _, o := range h.orbits {
		if _, ok := positions[o.ID]; ok {
			kept = append(kept, o)
			known[o.ID] = true
		}
	}
	for _, b := range bodies {
		if !known[b.ID] {
			kept = append(kept, Orbit[V]{ID: b.ID})
			known[b.ID] = true
		}
	}
	h.orbits = kept

	for i := range h.orbits {
		o := &h.orbits[i]
		o.Points = append(o.Points, positions[o.ID])
		if len(o.Points) > h.maxLength {
			n := copy(o.Points, o.Points[len(o.Points)-h.maxLength:])
			o.Points = o.Points[:n]
		}
	}
}

func (h *OrbitHistory[V]) Orbits() []Orbit[V] { return h.orbits }

func (h *OrbitHistory[V]) Orbit(id int) (Orbit[V], bool) {
	for _, o := range h.orbits {
		if o.ID == id {
			return o, true
		}
	}
	return Orbit[V]{}, false
}

func (h *OrbitHistory[V]) Clear() { h.orbits = nil }

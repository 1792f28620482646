package physics

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/vmath"
)

// Body is a point mass. ID is stable across evolves; only Position and
// Velocity ever change.
type Body[V vmath.Vector[V]] struct {
	ID       int
	Position V
	Velocity V
	Mass     float64
}

func (b Body[V]) String() string {
	return fmt.Sprintf("body %d: pos=%v vel=%v mass=%g", b.ID, b.Position, b.Velocity, b.Mass)
}

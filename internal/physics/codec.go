package physics

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vmath"
)

// ObjectsToState flattens bodies into [pos0, vel0, pos1, vel1, ...].
func ObjectsToState[V vmath.Vector[V]](bodies []Body[V]) dynamo.State[V] {
	state := make(dynamo.State[V], 0, 2*len(bodies))
	for _, b := range bodies {
		state = append(state, b.Position, b.Velocity)
	}
	return state
}

// StateToObjects overwrites the position and velocity of each body from
// state. The slice itself is reused; IDs and masses are untouched.
func StateToObjects[V vmath.Vector[V]](state dynamo.State[V], bodies []Body[V]) error {
	if len(state) != 2*len(bodies) {
		return fmt.Errorf("%w: state has %d entries, %d bodies need %d",
			dynamo.ErrDimensionMismatch, len(state), len(bodies), 2*len(bodies))
	}
	for i := range bodies {
		bodies[i].Position = state[2*i]
		bodies[i].Velocity = state[2*i+1]
	}
	return nil
}

func Masses[V vmath.Vector[V]](bodies []Body[V]) []float64 {
	masses := make([]float64, len(bodies))
	for i, b := range bodies {
		masses[i] = b.Mass
	}
	return masses
}

// CloneBodies returns a copy that shares nothing with bodies.
func CloneBodies[V vmath.Vector[V]](bodies []Body[V]) []Body[V] {
	if bodies == nil {
		return nil
	}
	c := make([]Body[V], len(bodies))
	copy(c, bodies)
	return c
}

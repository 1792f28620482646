package physics

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vmath"
)

const (
	// G is the gravitational constant in N·m²/kg². Distances are meters and
	// masses kilograms.
	G = 6.6743e-11
	// Smoothing is added to every distance before it is cubed.
	Smoothing = 1e-5
)

// SlopeFunction returns dX/dt for a state of len(masses) bodies. When
// backward is true the derivative is negated so integrating it runs time in
// reverse. The returned slope reuses an internal buffer and must not be
// called concurrently.
func SlopeFunction[V vmath.Vector[V]](masses []float64, backward bool) dynamo.Slope[V] {
	n := len(masses)
	sign := 1.0
	if backward {
		sign = -1
	}
	acc := make([]V, n)

	return func(x dynamo.State[V]) (dynamo.State[V], error) {
		if len(x) != 2*n {
			return nil, fmt.Errorf("%w: state has %d entries, %d bodies need %d",
				dynamo.ErrDimensionMismatch, len(x), n, 2*n)
		}

		var zero V
		for i := range acc {
			acc[i] = zero
		}

		for i := 0; i < n; i++ {
			pi := x[2*i]
			for j := i + 1; j < n; j++ {
				diff := x[2*j].Sub(pi)
				f := inverseCube(diff)
				acc[i] = acc[i].Add(diff.Scale(G * masses[j] * f))
				acc[j] = acc[j].Add(diff.Scale(-G * masses[i] * f))
			}
		}

		dx := make(dynamo.State[V], len(x))
		for i := 0; i < n; i++ {
			dx[2*i] = x[2*i+1].Scale(sign)
			dx[2*i+1] = acc[i].Scale(sign)
		}
		return dx, nil
	}
}

// inverseCube is 1/(|diff|+Smoothing)^3.
func inverseCube[V vmath.Vector[V]](diff V) float64 {
	d := diff.Len() + Smoothing
	return 1 / (d * d * d)
}

// ForceOn returns the net gravitational force on target from others, in
// newtons. Entries sharing target's ID are skipped, so others may include
// target itself.
func ForceOn[V vmath.Vector[V]](target Body[V], others []Body[V]) V {
	var force V
	for _, o := range others {
		if o.ID == target.ID {
			continue
		}
		diff := o.Position.Sub(target.Position)
		force = force.Add(diff.Scale(G * target.Mass * o.Mass * inverseCube(diff)))
	}
	return force
}

// AccelerationOn is ForceOn divided by the target's mass, computed without
// the division so it is defined for massless bodies.
func AccelerationOn[V vmath.Vector[V]](target Body[V], others []Body[V]) V {
	var acc V
	for _, o := range others {
		if o.ID == target.ID {
			continue
		}
		diff := o.Position.Sub(target.Position)
		acc = acc.Add(diff.Scale(G * o.Mass * inverseCube(diff)))
	}
	return acc
}

// MaxDistance is the largest distance between any two bodies, 0 for fewer
// than two.
func MaxDistance[V vmath.Vector[V]](bodies []Body[V]) float64 {
	maxDist := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			if d := vmath.Distance(bodies[i].Position, bodies[j].Position); d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist
}

package physics

import "github.com/san-kum/orbitsim/internal/vmath"

func KineticEnergy[V vmath.Vector[V]](bodies []Body[V]) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.Mass * b.Velocity.Dot(b.Velocity)
	}
	return ke
}

// PotentialEnergy is the pairwise gravitational potential, softened by
// Smoothing like the force.
func PotentialEnergy[V vmath.Vector[V]](bodies []Body[V]) float64 {
	pe := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			r := vmath.Distance(bodies[i].Position, bodies[j].Position) + Smoothing
			pe -= G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

func TotalEnergy[V vmath.Vector[V]](bodies []Body[V]) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies)
}

// Momentum is the total linear momentum, sum of m·v.
func Momentum[V vmath.Vector[V]](bodies []Body[V]) V {
	var p V
	for _, b := range bodies {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	return p
}

// AngularMomentum is the z component of the total angular momentum about
// the origin, taken in the xy plane.
func AngularMomentum[V vmath.Vector[V]](bodies []Body[V]) float64 {
	l := 0.0
	for _, b := range bodies {
		x, y := b.Position.XY()
		vx, vy := b.Velocity.XY()
		l += b.Mass * (x*vy - y*vx)
	}
	return l
}

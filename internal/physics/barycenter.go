package physics

import "github.com/san-kum/orbitsim/internal/vmath"

// Barycenter is the mass-weighted mean position, or the zero vector when
// the total mass is zero.
func Barycenter[V vmath.Vector[V]](bodies []Body[V]) V {
	var total V
	mass := 0.0
	for _, b := range bodies {
		total = total.Add(b.Position.Scale(b.Mass))
		mass += b.Mass
	}
	if mass == 0 {
		var zero V
		return zero
	}
	return total.Scale(1 / mass)
}

// BarycenterVelocity is the velocity of the barycenter, or the zero vector
// when the total mass is zero.
func BarycenterVelocity[V vmath.Vector[V]](bodies []Body[V]) V {
	var total V
	mass := 0.0
	for _, b := range bodies {
		total = total.Add(b.Velocity.Scale(b.Mass))
		mass += b.Mass
	}
	if mass == 0 {
		var zero V
		return zero
	}
	return total.Scale(1 / mass)
}

// ResetToBarycenter shifts bodies in place so the barycenter sits at the
// origin and does not move.
func ResetToBarycenter[V vmath.Vector[V]](bodies []Body[V]) {
	position := Barycenter(bodies)
	velocity := BarycenterVelocity(bodies)
	for i := range bodies {
		bodies[i].Position = bodies[i].Position.Sub(position)
		bodies[i].Velocity = bodies[i].Velocity.Sub(velocity)
	}
}

// Package vmath provides the small vector types the simulator integrates.
//
// [Vec2] and [Vec3] are immutable value types backed by mathgl's mgl64
// vectors. Every operation returns a new value, so several candidate states
// can share entries safely while an integrator compares them.
//
// Code that must work for both dimensionalities is written against the
// [Vector] constraint:
//
//	func Centroid[V vmath.Vector[V]](points []V) V {
//	    var sum V
//	    for _, p := range points {
//	        sum = sum.Add(p)
//	    }
//	    return sum.Scale(1 / float64(len(points)))
//	}
package vmath

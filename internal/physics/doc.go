// Package physics models bodies under Newtonian gravity.
//
// A system of N bodies is flattened into a [dynamo.State] of length 2N laid
// out as [pos0, vel0, pos1, vel1, ...] by [ObjectsToState] and written back
// by [StateToObjects]. [SlopeFunction] returns the time derivative of such a
// state for fixed masses:
//
//	slope := physics.SlopeFunction[vmath.Vec2](physics.Masses(bodies), false)
//	solver := integrators.NewRKF45(physics.ObjectsToState(bodies), slope, opts)
//
// Distances are softened by [Smoothing] so coincident bodies never divide by
// zero. Bodies with zero mass are test particles: they feel gravity but exert
// none.
//
// # Diagnostics
//
// [TotalEnergy], [Momentum] and [AngularMomentum] are conserved by the exact
// dynamics and are used to monitor integration drift. [Compare] reports the
// two-body orbital elements of one body relative to another.
package physics

// Package dynamo provides core simulation primitives for ordinary
// differential equations whose state is a sequence of vectors.
//
//   - [State]: ordered sequence of vectors, the ODE state
//   - [Vector]: the three operations an integrator needs from an entry
//   - [Slope]: right-hand side of the ODE, dX/dt = f(X)
//   - [Budget]: step and wall-clock limits for one evolve call
//   - [Result]: what an evolve call achieved
//
// # Example
//
//	slope := physics.SlopeFunction[vmath.Vec2](masses, false)
//	solver := integrators.NewRKF45(state, slope, integrators.DefaultOptions())
//	res, err := solver.Evolve(60, dynamo.Budget{MaxSteps: 100, MaxComputeTime: 8 * time.Millisecond})
//
// # Thread Safety
//
// Nothing in this package synchronizes. States are values: operations return
// new slices and never write to their inputs.
package dynamo

package integrators

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Stepper advances a state by one fixed step.
type Stepper[V dynamo.Vector[V]] interface {
	Name() string
	Step(slope dynamo.Slope[V], x dynamo.State[V], h float64) (dynamo.State[V], error)
}

// EvolveFixed advances x by total time units in steps of at most h, stopping
// early when the budget runs out.
func EvolveFixed[V dynamo.Vector[V]](s Stepper[V], slope dynamo.Slope[V], x dynamo.State[V], total, h float64, budget dynamo.Budget) (dynamo.Result[V], error) {
	res := dynamo.Result[V]{State: x}
	if !(h > 0) || math.IsInf(h, 1) {
		return res, fmt.Errorf("%w: step size must be finite and positive, got %g", dynamo.ErrParameterBounds, h)
	}
	if !(total >= 0) || math.IsInf(total, 1) {
		return res, fmt.Errorf("%w: evolve time must be finite and non-negative, got %g", dynamo.ErrParameterBounds, total)
	}

	remaining := total
	start := time.Now()
	for remaining > 0 && res.Steps < budget.MaxSteps && !budget.Expired(start, time.Now()) {
		dt := math.Min(h, remaining)
		next, err := s.Step(slope, res.State, dt)
		if err != nil {
			res.Elapsed = total - remaining
			return res, &dynamo.SimulationError{Step: res.Steps, Elapsed: res.Elapsed, Wrapped: err}
		}
		if len(next) != len(res.State) {
			res.Elapsed = total - remaining
			return res, &dynamo.SimulationError{Step: res.Steps, Elapsed: res.Elapsed, Wrapped: dynamo.ErrDimensionMismatch}
		}
		res.State = next
		remaining -= dt
		res.Steps++
	}
	res.Elapsed = total - remaining
	return res, nil
}

func derive[V dynamo.Vector[V]](slope dynamo.Slope[V], x dynamo.State[V]) (dynamo.State[V], error) {
	dx, err := slope(x)
	if err != nil {
		return nil, err
	}
	if len(dx) != len(x) {
		return nil, fmt.Errorf("%w: slope returned %d entries for a state of %d",
			dynamo.ErrDimensionMismatch, len(dx), len(x))
	}
	return dx, nil
}

type Euler[V dynamo.Vector[V]] struct{}

func NewEuler[V dynamo.Vector[V]]() *Euler[V] {
	return &Euler[V]{}
}

func (e *Euler[V]) Name() string { return "euler" }

func (e *Euler[V]) Step(slope dynamo.Slope[V], x dynamo.State[V], h float64) (dynamo.State[V], error) {
	dx, err := derive(slope, x)
	if err != nil {
		return nil, err
	}
	return x.AddScaled(dx, h), nil
}

// RK4 is the classical fourth order Runge-Kutta method.
type RK4[V dynamo.Vector[V]] struct{}

func NewRK4[V dynamo.Vector[V]]() *RK4[V] {
	return &RK4[V]{}
}

func (r *RK4[V]) Name() string { return "rk4" }

func (r *RK4[V]) Step(slope dynamo.Slope[V], x dynamo.State[V], h float64) (dynamo.State[V], error) {
	k1, err := derive(slope, x)
	if err != nil {
		return nil, err
	}
	k2, err := derive(slope, x.AddScaled(k1, 0.5*h))
	if err != nil {
		return nil, err
	}
	k3, err := derive(slope, x.AddScaled(k2, 0.5*h))
	if err != nil {
		return nil, err
	}
	k4, err := derive(slope, x.AddScaled(k3, h))
	if err != nil {
		return nil, err
	}

	result := make(dynamo.State[V], len(x))
	for i := range x {
		sum := k1[i].Add(k2[i].Scale(2)).Add(k3[i].Scale(2)).Add(k4[i])
		result[i] = x[i].Add(sum.Scale(h / 6))
	}
	return result, nil
}

// Verlet is velocity Verlet for states laid out as position/velocity pairs,
// x = [p0, v0, p1, v1, ...], where the slope of p_i is v_i. It assumes
// forward time.
type Verlet[V dynamo.Vector[V]] struct{}

func NewVerlet[V dynamo.Vector[V]]() *Verlet[V] {
	return &Verlet[V]{}
}

func (v *Verlet[V]) Name() string { return "verlet" }

func (v *Verlet[V]) Step(slope dynamo.Slope[V], x dynamo.State[V], h float64) (dynamo.State[V], error) {
	if len(x)%2 != 0 {
		return nil, fmt.Errorf("%w: verlet needs position/velocity pairs, got %d entries",
			dynamo.ErrDimensionMismatch, len(x))
	}
	dx, err := derive(slope, x)
	if err != nil {
		return nil, err
	}

	h2 := h * h
	result := make(dynamo.State[V], len(x))
	for i := 0; i < len(x); i += 2 {
		result[i] = x[i].Add(x[i+1].Scale(h)).Add(dx[i+1].Scale(0.5 * h2))
		result[i+1] = x[i+1]
	}

	dxNew, err := derive(slope, result)
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(x); i += 2 {
		result[i] = x[i].Add(dx[i].Add(dxNew[i]).Scale(0.5 * h))
	}
	return result, nil
}

// NewStepper returns the fixed-step method with the given name.
func NewStepper[V dynamo.Vector[V]](name string) (Stepper[V], error) {
	switch name {
	case "euler":
		return NewEuler[V](), nil
	case "rk4":
		return NewRK4[V](), nil
	case "verlet":
		return NewVerlet[V](), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s", name)
}

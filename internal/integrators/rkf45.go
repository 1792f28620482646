package integrators

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Runge-Kutta-Fehlberg (RKF45) coefficients
var (
	// stage weights, row i builds the input of stage i+1
	fehlbergB = [5][5]float64{
		{1.0 / 4.0},
		{3.0 / 32.0, 9.0 / 32.0},
		{1932.0 / 2197.0, -7200.0 / 2197.0, 7296.0 / 2197.0},
		{439.0 / 216.0, -8.0, 3680.0 / 513.0, -845.0 / 4104.0},
		{-8.0 / 27.0, 2.0, -3544.0 / 2565.0, 1859.0 / 4104.0, -11.0 / 40.0},
	}

	// 4th order solution, propagated
	fehlbergC4 = [6]float64{25.0 / 216.0, 0, 1408.0 / 2565.0, 2197.0 / 4104.0, -1.0 / 5.0, 0}

	// 5th order solution, error estimate only
	fehlbergC5 = [6]float64{16.0 / 135.0, 0, 6656.0 / 12825.0, 28561.0 / 56430.0, -9.0 / 50.0, 2.0 / 55.0}
)

const (
	safety = 0.9
	// shrink applied when the error norm overflows
	overflowShrink = 0.1
)

// Options configures an RKF45 solver.
type Options struct {
	// Tolerance is the absolute bound on the error norm of one substep,
	// taken over the whole state.
	Tolerance float64
	// MaxRejections caps the step-size search for a single substep.
	MaxRejections int
	// Now is the clock polled against the compute-time budget.
	Now func() time.Time
}

func DefaultOptions() Options {
	return Options{
		Tolerance:     1,
		MaxRejections: 64,
		Now:           time.Now,
	}
}

// RKF45 integrates dX/dt = slope(X) with the embedded Runge-Kutta-Fehlberg
// 4(5) pair, choosing each substep as large as the tolerance allows.
type RKF45[V dynamo.Vector[V]] struct {
	state dynamo.State[V]
	slope dynamo.Slope[V]
	opts  Options
	k     [6]dynamo.State[V]
}

func NewRKF45[V dynamo.Vector[V]](initial dynamo.State[V], slope dynamo.Slope[V], opts Options) *RKF45[V] {
	def := DefaultOptions()
	if opts.Now == nil {
		opts.Now = def.Now
	}
	if opts.MaxRejections <= 0 {
		opts.MaxRejections = def.MaxRejections
	}
	return &RKF45[V]{
		state: initial.Clone(),
		slope: slope,
		opts:  opts,
	}
}

// State returns the current state of the solver.
func (r *RKF45[V]) State() dynamo.State[V] { return r.state }

// Evolve advances the state by up to t time units. It stops early when the
// budget runs out; the returned Result says how much time was covered. On
// error the Result still holds every substep accepted before the failure.
func (r *RKF45[V]) Evolve(t float64, budget dynamo.Budget) (dynamo.Result[V], error) {
	res := dynamo.Result[V]{State: r.state}

	if !(r.opts.Tolerance > 0) {
		return res, fmt.Errorf("%w: tolerance must be positive, got %g", dynamo.ErrParameterBounds, r.opts.Tolerance)
	}
	if !(t >= 0) || math.IsInf(t, 1) {
		return res, fmt.Errorf("%w: evolve time must be finite and non-negative, got %g", dynamo.ErrParameterBounds, t)
	}

	remaining := t
	stepsLeft := budget.MaxSteps
	start := r.opts.Now()

	for remaining > 0 && stepsLeft > 0 && !budget.Expired(start, r.opts.Now()) {
		h, rejected, err := r.step(remaining)
		res.Rejections += rejected
		if err == nil && remaining-h == remaining {
			err = fmt.Errorf("%w: step %g makes no progress on %g", dynamo.ErrNonConvergent, h, remaining)
		}
		if err != nil {
			res.State = r.state
			res.Elapsed = t - remaining
			return res, &dynamo.SimulationError{Step: res.Steps, Elapsed: res.Elapsed, Wrapped: err}
		}
		remaining -= h
		stepsLeft--
		res.Steps++
	}

	res.State = r.state
	res.Elapsed = t - remaining
	return res, nil
}

// step performs the step-size search for one substep no longer than hMax
// and accepts the order 4 solution.
func (r *RKF45[V]) step(hMax float64) (float64, int, error) {
	h := hMax
	rejected := 0
	for {
		order4, order5, err := r.attempt(h)
		if err != nil {
			return 0, rejected, err
		}

		errNorm := order4.Sub(order5).Norm()
		if math.IsNaN(errNorm) {
			return 0, rejected, dynamo.ErrInvalidState
		}
		if errNorm <= r.opts.Tolerance {
			r.state = order4
			return h, rejected, nil
		}

		rejected++
		if rejected > r.opts.MaxRejections {
			return 0, rejected, fmt.Errorf("%w: %d rejections, h=%g error=%g tolerance=%g",
				dynamo.ErrNonConvergent, r.opts.MaxRejections, h, errNorm, r.opts.Tolerance)
		}

		if math.IsInf(errNorm, 1) {
			h *= overflowShrink
		} else {
			h = safety * h * math.Pow(r.opts.Tolerance/errNorm, 0.2)
		}
		if h <= 0 {
			return 0, rejected, fmt.Errorf("%w: step size underflow", dynamo.ErrNonConvergent)
		}
	}
}

// attempt evaluates the six stages for step h and returns both solutions.
func (r *RKF45[V]) attempt(h float64) (dynamo.State[V], dynamo.State[V], error) {
	for i := range r.k {
		x := r.state
		if i > 0 {
			x = combine(r.state, r.k[:i], fehlbergB[i-1][:i])
		}
		dx, err := r.slope(x)
		if err != nil {
			return nil, nil, err
		}
		if len(dx) != len(r.state) {
			return nil, nil, fmt.Errorf("%w: slope returned %d entries for a state of %d",
				dynamo.ErrDimensionMismatch, len(dx), len(r.state))
		}
		r.k[i] = dx.Scale(h)
	}

	order4 := combine(r.state, r.k[:], fehlbergC4[:])
	order5 := combine(r.state, r.k[:], fehlbergC5[:])
	return order4, order5, nil
}

// combine returns base + sum(coeffs[j] * ks[j]), skipping zero coefficients.
func combine[V dynamo.Vector[V]](base dynamo.State[V], ks []dynamo.State[V], coeffs []float64) dynamo.State[V] {
	out := make(dynamo.State[V], len(base))
	for e := range base {
		v := base[e]
		for j, c := range coeffs {
			if c == 0 {
				continue
			}
			v = v.Add(ks[j][e].Scale(c))
		}
		out[e] = v
	}
	return out
}

package sim

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/vmath"
)

// Simulator owns a set of bodies and advances them under gravity.
//
// Evolve and the other mutating methods must be called from one goroutine.
// Bodies, Timestamp and Barycenter may be called from any goroutine; they
// see the last published snapshot, never a partial update.
type Simulator[V vmath.Vector[V]] struct {
	bodies    atomic.Pointer[[]physics.Body[V]]
	timestamp atomic.Pointer[time.Time]
	opts      Options
}

func New[V vmath.Vector[V]](bodies []physics.Body[V], opts Options) (*Simulator[V], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Simulator[V]{opts: opts}
	s.SetBodies(bodies)
	s.SetTimestamp(time.Now())
	return s, nil
}

func (s *Simulator[V]) Options() Options { return s.opts }

// Bodies returns the current snapshot. The slice is shared with other
// readers and must not be modified.
func (s *Simulator[V]) Bodies() []physics.Body[V] {
	p := s.bodies.Load()
	if p == nil {
		return nil
	}
	return *p
}

// SetBodies replaces the simulated bodies with a copy of bodies.
func (s *Simulator[V]) SetBodies(bodies []physics.Body[V]) {
	c := physics.CloneBodies(bodies)
	s.bodies.Store(&c)
}

func (s *Simulator[V]) Timestamp() time.Time {
	return *s.timestamp.Load()
}

// SetTimestamp moves the clock of the simulation without evolving it.
func (s *Simulator[V]) SetTimestamp(t time.Time) {
	s.timestamp.Store(&t)
}

// Evolve advances the bodies by t simulated seconds, backward when t is
// negative. It returns the signed time actually covered, which is smaller in
// magnitude than t when MaxEvolveTime or the evolve budget cut it short.
//
// When the solver fails, the substeps accepted before the failure are still
// applied and counted in the returned time. Bodies that are not finite, or a
// result that is not, fail with ErrInvalidState and nothing is published.
func (s *Simulator[V]) Evolve(t float64) (float64, error) {
	if math.IsNaN(t) {
		return 0, fmt.Errorf("%w: evolve time is NaN", dynamo.ErrParameterBounds)
	}

	backward := t < 0
	sign := 1.0
	if backward {
		sign = -1
	}
	dur := math.Min(s.opts.MaxEvolveTime, math.Abs(t))

	current := s.Bodies()
	initial := physics.ObjectsToState(current)
	if !initial.IsValid() {
		return 0, fmt.Errorf("%w: bodies hold a non-finite position or velocity", dynamo.ErrInvalidState)
	}
	scale := physics.MaxDistance(current)
	if scale == 0 {
		scale = 1
	}

	solver := integrators.NewRKF45(
		initial,
		physics.SlopeFunction[V](physics.Masses(current), backward),
		integrators.Options{
			Tolerance:     s.opts.ToleranceBase * scale,
			MaxRejections: s.opts.MaxRejections,
			Now:           s.opts.Now,
		},
	)

	res, err := solver.Evolve(dur, s.opts.budget())
	if res.Steps > 0 && !res.State.IsValid() {
		// an overflowed state is never published
		err = &dynamo.SimulationError{Step: res.Steps, Elapsed: res.Elapsed, Wrapped: dynamo.ErrInvalidState}
		res.Steps, res.Elapsed = 0, 0
	}
	if res.Steps > 0 {
		next := physics.CloneBodies(current)
		if uerr := physics.StateToObjects(res.State, next); uerr != nil {
			return 0, uerr
		}
		s.bodies.Store(&next)
		s.advanceTimestamp(sign * res.Elapsed)
	}

	elapsed := sign * res.Elapsed
	if err != nil {
		s.opts.Logger.Warn("evolve failed",
			"requested", t,
			"elapsed", elapsed,
			"steps", res.Steps,
			"rejections", res.Rejections,
			"error", err)
		return elapsed, err
	}
	return elapsed, nil
}

func (s *Simulator[V]) advanceTimestamp(seconds float64) {
	ts := s.Timestamp().Add(time.Duration(math.Round(seconds * float64(time.Second))))
	s.timestamp.Store(&ts)
}

func (s *Simulator[V]) Barycenter() V {
	return physics.Barycenter(s.Bodies())
}

func (s *Simulator[V]) BarycenterVelocity() V {
	return physics.BarycenterVelocity(s.Bodies())
}

// ResetToBarycenter moves the frame of reference so the barycenter sits at
// the origin and is at rest.
func (s *Simulator[V]) ResetToBarycenter() {
	next := physics.CloneBodies(s.Bodies())
	physics.ResetToBarycenter(next)
	s.bodies.Store(&next)
}

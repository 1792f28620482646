package sim

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Options configures a Simulator.
type Options struct {
	// MaxEvolveTime caps the simulated seconds of one Evolve call.
	MaxEvolveTime float64
	// MaxStepsPerEvolve caps the accepted solver substeps of one Evolve call.
	MaxStepsPerEvolve int
	// MaxComputeTime is the wall-clock budget of one Evolve call.
	MaxComputeTime time.Duration
	// ToleranceBase is multiplied by the largest distance between two bodies
	// to get the solver tolerance.
	ToleranceBase float64
	// MaxRejections caps the step-size search of a single substep.
	MaxRejections int

	Logger *slog.Logger
	// Now is the clock for the compute-time budget. Defaults to time.Now.
	Now func() time.Time
}

func DefaultOptions() Options {
	return Options{
		MaxEvolveTime:     math.Inf(1),
		MaxStepsPerEvolve: 1000,
		MaxComputeTime:    time.Second / 120,
		ToleranceBase:     1e-8,
		MaxRejections:     64,
	}
}

func (o Options) Validate() error {
	if math.IsNaN(o.MaxEvolveTime) || o.MaxEvolveTime < 0 {
		return fmt.Errorf("%w: max evolve time must be non-negative, got %g", dynamo.ErrParameterBounds, o.MaxEvolveTime)
	}
	if o.MaxStepsPerEvolve < 0 {
		return fmt.Errorf("%w: max steps per evolve must be non-negative, got %d", dynamo.ErrParameterBounds, o.MaxStepsPerEvolve)
	}
	if o.MaxComputeTime < 0 {
		return fmt.Errorf("%w: max compute time must be non-negative, got %v", dynamo.ErrParameterBounds, o.MaxComputeTime)
	}
	if !(o.ToleranceBase > 0) || math.IsInf(o.ToleranceBase, 1) {
		return fmt.Errorf("%w: tolerance must be positive, got %g", dynamo.ErrParameterBounds, o.ToleranceBase)
	}
	if o.MaxRejections < 0 {
		return fmt.Errorf("%w: max rejections must be non-negative, got %d", dynamo.ErrParameterBounds, o.MaxRejections)
	}
	return nil
}

func (o Options) budget() dynamo.Budget {
	return dynamo.Budget{MaxSteps: o.MaxStepsPerEvolve, MaxComputeTime: o.MaxComputeTime}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

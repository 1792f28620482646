package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state containing NaN values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrNonConvergent indicates the step-size search could not meet the
	// tolerance within its rejection limit.
	ErrNonConvergent = errors.New("dynamo: step size search did not converge")

	// ErrDimensionMismatch indicates a state whose length does not match the
	// bodies or masses it is paired with.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SimulationError wraps an error with solver context.
type SimulationError struct {
	Step    int
	Elapsed float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (elapsed %.6gs): %v", e.Step, e.Elapsed, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

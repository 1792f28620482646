package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vmath"
)

func TestFixedStepAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		stepper   Stepper[vmath.Vec2]
		tolerance float64
	}{
		{"euler", NewEuler[vmath.Vec2](), 1e-2},
		{"rk4", NewRK4[vmath.Vec2](), 1e-4},
		{"verlet", NewVerlet[vmath.Vec2](), 1e-3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := EvolveFixed(tt.stepper, harmonic, oscillator(), 1, 0.01, dynamo.Unlimited())
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(res.Elapsed-1) > 1e-12 {
				t.Errorf("elapsed = %v, want 1", res.Elapsed)
			}
			if got := res.State[0].X(); math.Abs(got-math.Cos(1)) > tt.tolerance {
				t.Errorf("position error too large: got %.6f, expected %.6f", got, math.Cos(1))
			}
			if got := res.State[1].X(); math.Abs(got+math.Sin(1)) > tt.tolerance {
				t.Errorf("velocity error too large: got %.6f, expected %.6f", got, -math.Sin(1))
			}
		})
	}
}

func TestEvolveFixedShortensLastStep(t *testing.T) {
	res, err := EvolveFixed[vmath.Vec2](NewRK4[vmath.Vec2](), harmonic, oscillator(), 0.25, 0.1, dynamo.Unlimited())
	if err != nil {
		t.Fatal(err)
	}
	if res.Steps != 3 {
		t.Errorf("steps = %d, want 3", res.Steps)
	}
	if math.Abs(res.Elapsed-0.25) > 1e-12 {
		t.Errorf("elapsed = %v, want 0.25", res.Elapsed)
	}
}

func TestEvolveFixedBudget(t *testing.T) {
	res, err := EvolveFixed[vmath.Vec2](NewEuler[vmath.Vec2](), harmonic, oscillator(), 1, 0.1,
		dynamo.Budget{MaxSteps: 2, MaxComputeTime: dynamo.NoDeadline})
	if err != nil {
		t.Fatal(err)
	}
	if res.Steps != 2 {
		t.Errorf("steps = %d, want 2", res.Steps)
	}
	if math.Abs(res.Elapsed-0.2) > 1e-12 {
		t.Errorf("elapsed = %v, want 0.2", res.Elapsed)
	}
}

func TestEvolveFixedErrors(t *testing.T) {
	_, err := EvolveFixed[vmath.Vec2](NewEuler[vmath.Vec2](), harmonic, oscillator(), 1, 0, dynamo.Unlimited())
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("zero step: got %v, want ErrParameterBounds", err)
	}

	odd := dynamo.State[vmath.Vec2]{vmath.V2(1, 0)}
	_, err = EvolveFixed[vmath.Vec2](NewVerlet[vmath.Vec2](), harmonic, odd, 1, 0.1, dynamo.Unlimited())
	if !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("odd verlet state: got %v, want ErrDimensionMismatch", err)
	}
}

func TestNewStepper(t *testing.T) {
	for _, name := range []string{"euler", "rk4", "verlet"} {
		s, err := NewStepper[vmath.Vec2](name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("Name() = %q, want %q", s.Name(), name)
		}
	}
	if _, err := NewStepper[vmath.Vec2]("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

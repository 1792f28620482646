package integrators

import (
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vmath"
)

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler[vmath.Vec2]()
	x := oscillator()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, _ = integrator.Step(harmonic, x, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4[vmath.Vec2]()
	x := oscillator()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, _ = integrator.Step(harmonic, x, 0.01)
	}
}

func BenchmarkRKF45(b *testing.B) {
	solver := NewRKF45(oscillator(), harmonic, Options{Tolerance: 1e-9})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = solver.Evolve(0.01, dynamo.Unlimited())
	}
}

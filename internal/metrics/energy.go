package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/vmath"
)

// EnergyDrift tracks the largest relative change of total energy since the
// first observation.
type EnergyDrift[V vmath.Vector[V]] struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	history       []float64
}

func NewEnergyDrift[V vmath.Vector[V]]() *EnergyDrift[V] {
	return &EnergyDrift[V]{
		name: "energy_drift",
	}
}

func (e *EnergyDrift[V]) Name() string { return e.name }

func (e *EnergyDrift[V]) Observe(bodies []physics.Body[V], _ sim.Frame) {
	energy := physics.TotalEnergy(bodies)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	drift := 0.0
	if e.initialEnergy != 0 {
		drift = math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
	}
	e.maxDrift = math.Max(e.maxDrift, drift)
	e.history = append(e.history, drift)
}

func (e *EnergyDrift[V]) Value() float64 {
	return e.maxDrift
}

// Current is the relative drift at the last observation.
func (e *EnergyDrift[V]) Current() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return math.Abs(e.currentEnergy-e.initialEnergy) / math.Abs(e.initialEnergy)
}

// History is the relative drift at every observation.
func (e *EnergyDrift[V]) History() []float64 { return e.history }

func (e *EnergyDrift[V]) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
	e.history = nil
}

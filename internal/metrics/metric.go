package metrics

import (
	"sort"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/vmath"
)

// Metric observes the published bodies after every frame.
type Metric[V vmath.Vector[V]] interface {
	Name() string
	Observe(bodies []physics.Body[V], f sim.Frame)
	Value() float64
	Reset()
}

// Set fans one observation out to several metrics.
type Set[V vmath.Vector[V]] struct {
	metrics []Metric[V]
}

func NewSet[V vmath.Vector[V]](ms ...Metric[V]) *Set[V] {
	return &Set[V]{metrics: ms}
}

// Standard returns the metrics reported by the CLI.
func Standard[V vmath.Vector[V]]() *Set[V] {
	return NewSet[V](
		NewEnergyDrift[V](),
		NewMomentumDrift[V](),
		NewAngularMomentumDrift[V](),
		NewStability[V](),
	)
}

func (s *Set[V]) Add(m Metric[V]) { s.metrics = append(s.metrics, m) }

func (s *Set[V]) Observe(bodies []physics.Body[V], f sim.Frame) {
	for _, m := range s.metrics {
		m.Observe(bodies, f)
	}
}

func (s *Set[V]) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Set[V]) Values() map[string]float64 {
	values := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		values[m.Name()] = m.Value()
	}
	return values
}

// Names returns the metric names in sorted order.
func (s *Set[V]) Names() []string {
	names := make([]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

func (s *Set[V]) Get(name string) (Metric[V], bool) {
	for _, m := range s.metrics {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

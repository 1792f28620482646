package dynamo

import (
	"math"
	"time"
)

// Vector is what an integrator needs from a state entry.
type Vector[V any] interface {
	Add(other V) V
	Scale(factor float64) V
	Len() float64
}

// State is an ordered sequence of vectors.
type State[V Vector[V]] []V

func (s State[V]) Clone() State[V] {
	c := make(State[V], len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every entry has a finite length.
func (s State[V]) IsValid() bool {
	for _, v := range s {
		l := v.Len()
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return false
		}
	}
	return true
}

// Norm is the Euclidean norm over all entries, sqrt(sum |v|^2).
func (s State[V]) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		l := v.Len()
		sum += l * l
	}
	return math.Sqrt(sum)
}

// Add returns s + other. Both must have the same length.
func (s State[V]) Add(other State[V]) State[V] {
	result := make(State[V], len(s))
	for i := range s {
		result[i] = s[i].Add(other[i])
	}
	return result
}

func (s State[V]) Scale(factor float64) State[V] {
	result := make(State[V], len(s))
	for i := range s {
		result[i] = s[i].Scale(factor)
	}
	return result
}

// Sub returns s - other.
func (s State[V]) Sub(other State[V]) State[V] {
	result := make(State[V], len(s))
	for i := range s {
		result[i] = s[i].Add(other[i].Scale(-1))
	}
	return result
}

// AddScaled returns s + factor*other.
func (s State[V]) AddScaled(other State[V], factor float64) State[V] {
	result := make(State[V], len(s))
	for i := range s {
		result[i] = s[i].Add(other[i].Scale(factor))
	}
	return result
}

// Slope computes the time derivative of a state.
type Slope[V Vector[V]] func(x State[V]) (State[V], error)

const (
	// UnlimitedSteps disables the step budget.
	UnlimitedSteps = math.MaxInt
	// NoDeadline disables the compute-time budget.
	NoDeadline = time.Duration(math.MaxInt64)
)

// Budget bounds the work of one evolve call. Running out of budget is not an
// error: the call reports how much time it actually covered.
type Budget struct {
	MaxSteps       int
	MaxComputeTime time.Duration
}

// Unlimited returns a budget with no step or time limit.
func Unlimited() Budget {
	return Budget{MaxSteps: UnlimitedSteps, MaxComputeTime: NoDeadline}
}

// Expired reports whether the compute time since start has been used up.
func (b Budget) Expired(start, now time.Time) bool {
	if b.MaxComputeTime == NoDeadline {
		return false
	}
	return now.Sub(start) >= b.MaxComputeTime
}

// Result is the outcome of an evolve call.
type Result[V Vector[V]] struct {
	State      State[V]
	Elapsed    float64
	Steps      int
	Rejections int
}

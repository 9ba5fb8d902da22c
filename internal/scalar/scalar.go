// Package scalar provides float64 wrappers whose value is clamped by a
// policy at every construction and decode, so out-of-range values cannot be
// represented.
package scalar

import (
	"encoding/json"
	"fmt"
	"math"
)

// Policy clamps a raw value into the range a Bounded scalar may hold.
// Implementations must be pure and idempotent.
type Policy interface {
	Clamp(v float64) float64
}

// Normalized clamps to the closed interval [0, 1]. NaN becomes 0.
type Normalized struct{}

func (Normalized) Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// NonNegative clamps to [0, MaxFloat64]. NaN becomes 0 and +Inf becomes
// MaxFloat64, keeping every stored value encodable as JSON.
type NonNegative struct{}

func (NonNegative) Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > math.MaxFloat64:
		return math.MaxFloat64
	}
	return v
}

// Bounded is a float64 that always satisfies its policy P.
// The zero value is 0, which every policy accepts.
type Bounded[P Policy] struct {
	v float64
}

// New clamps v with P and wraps the result.
func New[P Policy](v float64) Bounded[P] {
	var p P
	return Bounded[P]{v: p.Clamp(v)}
}

// Float64 returns the clamped value.
func (b Bounded[P]) Float64() float64 {
	return b.v
}

func (b Bounded[P]) String() string {
	return fmt.Sprintf("%g", b.v)
}

// MarshalJSON encodes the bare clamped number.
func (b Bounded[P]) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.v)
}

// UnmarshalJSON decodes any JSON number and clamps it. Out-of-range input
// is not an error.
func (b *Bounded[P]) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding scalar: %w", err)
	}
	*b = New[P](v)
	return nil
}

// Norm is a scalar in [0, 1].
type Norm = Bounded[Normalized]

// NonNeg is a scalar in [0, +inf).
type NonNeg = Bounded[NonNegative]

// NewNorm returns v clamped to [0, 1].
func NewNorm(v float64) Norm {
	return New[Normalized](v)
}

// NewNonNeg returns v clamped to be non-negative.
func NewNonNeg(v float64) NonNeg {
	return New[NonNegative](v)
}

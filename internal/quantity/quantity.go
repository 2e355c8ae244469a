package quantity

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned by Convert when the source and target
// units measure different dimensions.
var ErrDimensionMismatch = errors.New("quantity: dimension mismatch")

// Quantity is a value on an axis measured in unit U.
type Quantity[U Unit] struct {
	value float64
}

// New wraps a raw value expressed in unit U.
func New[U Unit](v float64) Quantity[U] {
	return Quantity[U]{value: v}
}

// Value returns the raw value in unit U.
func (q Quantity[U]) Value() float64 { return q.value }

// Unit returns the zero value of the unit marker type.
func (q Quantity[U]) Unit() U {
	var u U
	return u
}

func (q Quantity[U]) Add(o Quantity[U]) Quantity[U] { return Quantity[U]{value: q.value + o.value} }
func (q Quantity[U]) Sub(o Quantity[U]) Quantity[U] { return Quantity[U]{value: q.value - o.value} }

// Div returns the dimensionless ratio q / o.
func (q Quantity[U]) Div(o Quantity[U]) float64 { return q.value / o.value }

func (q Quantity[U]) Less(o Quantity[U]) bool           { return q.value < o.value }
func (q Quantity[U]) LessOrEqual(o Quantity[U]) bool    { return q.value <= o.value }
func (q Quantity[U]) Greater(o Quantity[U]) bool        { return q.value > o.value }
func (q Quantity[U]) GreaterOrEqual(o Quantity[U]) bool { return q.value >= o.value }
func (q Quantity[U]) Equal(o Quantity[U]) bool          { return q.value == o.value }

// Compare returns -1, 0 or +1. NaN compares equal to everything; callers that
// care must check IsNaN first.
func (q Quantity[U]) Compare(o Quantity[U]) int {
	switch {
	case q.value < o.value:
		return -1
	case q.value > o.value:
		return 1
	default:
		return 0
	}
}

// IsNaN reports whether the value is not-a-number.
func (q Quantity[U]) IsNaN() bool { return math.IsNaN(q.value) }

// String renders the value with three decimals followed by the unit symbol.
func (q Quantity[U]) String() string {
	return fmt.Sprintf("%.3f %s", q.value, q.Unit().Symbol())
}

// Min returns the smaller of a and b, preferring a on ties.
func Min[U Unit](a, b Quantity[U]) Quantity[U] {
	if a.value <= b.value {
		return a
	}
	return b
}

// Max returns the larger of a and b, preferring a on ties.
func Max[U Unit](a, b Quantity[U]) Quantity[U] {
	if a.value >= b.value {
		return a
	}
	return b
}

// Convert re-expresses q in unit T. T must share U's dimension.
func Convert[T, U Unit](q Quantity[U]) (Quantity[T], error) {
	var from U
	var to T
	if from.Dimension() != to.Dimension() {
		return Quantity[T]{}, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)",
			ErrDimensionMismatch, from.Symbol(), from.Dimension(), to.Symbol(), to.Dimension())
	}
	return Quantity[T]{value: q.value * from.Scale() / to.Scale()}, nil
}

package interval

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/gridplan/internal/quantity"
)

// ErrInvalidInterval is returned when an interval is constructed with
// start > end, or with a NaN endpoint.
var ErrInvalidInterval = errors.New("interval start must be <= end")

// Interval is the half-open range [start, end) on an axis measured in U.
//
// Two intervals that only share a boundary point (a.end == b.start) do not
// overlap, which lets the scheduler place tasks back to back without epsilon
// offsets.
type Interval[U quantity.Unit] struct {
	start quantity.Quantity[U]
	end   quantity.Quantity[U]
}

// New creates [start, end). It fails if start > end or either endpoint is NaN.
func New[U quantity.Unit](start, end quantity.Quantity[U]) (Interval[U], error) {
	if start.IsNaN() || end.IsNaN() || start.Greater(end) {
		return Interval[U]{}, fmt.Errorf("%w: [%v, %v)", ErrInvalidInterval, start.Value(), end.Value())
	}
	return Interval[U]{start: start, end: end}, nil
}

// MustNew is New for call sites that have already established start <= end.
// It panics otherwise.
func MustNew[U quantity.Unit](start, end quantity.Quantity[U]) Interval[U] {
	iv, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

// Unchecked builds [start, end) without validation. Reserved for hot paths
// whose inputs were derived from intervals that are already valid.
func Unchecked[U quantity.Unit](start, end quantity.Quantity[U]) Interval[U] {
	return Interval[U]{start: start, end: end}
}

// FromFloat creates an interval from raw values expressed in U.
func FromFloat[U quantity.Unit](start, end float64) (Interval[U], error) {
	return New(quantity.New[U](start), quantity.New[U](end))
}

// MustFromFloat is FromFloat that panics on invalid input. Mostly useful in tests.
func MustFromFloat[U quantity.Unit](start, end float64) Interval[U] {
	return MustNew(quantity.New[U](start), quantity.New[U](end))
}

func (iv Interval[U]) Start() quantity.Quantity[U] { return iv.start }
func (iv Interval[U]) End() quantity.Quantity[U]   { return iv.end }

// Duration returns end - start.
func (iv Interval[U]) Duration() quantity.Quantity[U] {
	return iv.end.Sub(iv.start)
}

// IsEmpty reports whether the interval has zero width. An empty interval
// contains no point.
func (iv Interval[U]) IsEmpty() bool {
	return !iv.start.Less(iv.end)
}

// Contains reports whether start <= p < end.
func (iv Interval[U]) Contains(p quantity.Quantity[U]) bool {
	return iv.start.LessOrEqual(p) && p.Less(iv.end)
}

// Overlaps reports whether the two intervals share an interior point.
func (iv Interval[U]) Overlaps(other Interval[U]) bool {
	return iv.start.Less(other.end) && other.start.Less(iv.end)
}

// Intersection returns the overlapping sub-range. The boolean is false when
// the intervals do not overlap.
func (iv Interval[U]) Intersection(other Interval[U]) (Interval[U], bool) {
	if !iv.Overlaps(other) {
		return Interval[U]{}, false
	}
	return Interval[U]{
		start: quantity.Max(iv.start, other.start),
		end:   quantity.Min(iv.end, other.end),
	}, true
}

// CanFit reports whether a task of the given size starting at start stays
// inside the interval.
func (iv Interval[U]) CanFit(start, size quantity.Quantity[U]) bool {
	return iv.Contains(start) && start.Add(size).LessOrEqual(iv.end)
}

// Equal reports whether both endpoints are identical.
func (iv Interval[U]) Equal(other Interval[U]) bool {
	return iv.start.Equal(other.start) && iv.end.Equal(other.end)
}

func (iv Interval[U]) String() string {
	return fmt.Sprintf("[%.3f, %.3f)", iv.start.Value(), iv.end.Value())
}

// Convert re-expresses iv in unit T of the same dimension.
func Convert[T, U quantity.Unit](iv Interval[U]) (Interval[T], error) {
	start, err := quantity.Convert[T](iv.start)
	if err != nil {
		return Interval[T]{}, err
	}
	end, err := quantity.Convert[T](iv.end)
	if err != nil {
		return Interval[T]{}, err
	}
	return New(start, end)
}

package metrics

import (
	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/specialistvlad/gridplan/internal/solution"
)

// Sized is anything with an extent on the axis.
type Sized[U quantity.Unit] interface {
	Size() quantity.Quantity[U]
}

// EST returns the earliest start of t within the horizon using the windows
// stored under id. It reports false if id is not in space or no window fits.
func EST[U quantity.Unit](t Sized[U], id string, space *solution.Space[U], horizon interval.Interval[U]) (quantity.Quantity[U], bool) {
	windows, ok := space.Get(id)
	if !ok {
		return quantity.Quantity[U]{}, false
	}
	return ESTIn(t.Size(), windows, horizon)
}

// Deadline returns the latest start of t within the horizon.
func Deadline[U quantity.Unit](t Sized[U], id string, space *solution.Space[U], horizon interval.Interval[U]) (quantity.Quantity[U], bool) {
	windows, ok := space.Get(id)
	if !ok {
		return quantity.Quantity[U]{}, false
	}
	return DeadlineIn(t.Size(), windows, horizon)
}

// Flexibility returns how many times t fits into its windows within the
// horizon, or 0 if id is not in space.
func Flexibility[U quantity.Unit](t Sized[U], id string, space *solution.Space[U], horizon interval.Interval[U]) float64 {
	windows, ok := space.Get(id)
	if !ok {
		return 0
	}
	return FlexibilityIn(t.Size(), windows, horizon)
}

// ESTIn scans windows in ascending order and returns the start of the first
// horizon-clipped window at least size long.
func ESTIn[U quantity.Unit](size quantity.Quantity[U], windows interval.Set[U], horizon interval.Interval[U]) (quantity.Quantity[U], bool) {
	for i := 0; i < windows.Len(); i++ {
		w := windows.At(i)
		if w.End().LessOrEqual(horizon.Start()) {
			continue
		}
		if w.Start().GreaterOrEqual(horizon.End()) {
			break
		}
		clipped, ok := w.Intersection(horizon)
		if ok && clipped.Duration().GreaterOrEqual(size) {
			return clipped.Start(), true
		}
	}
	return quantity.Quantity[U]{}, false
}

// DeadlineIn scans windows in descending order and returns end-size of the
// last horizon-clipped window at least size long.
func DeadlineIn[U quantity.Unit](size quantity.Quantity[U], windows interval.Set[U], horizon interval.Interval[U]) (quantity.Quantity[U], bool) {
	for i := windows.Len() - 1; i >= 0; i-- {
		w := windows.At(i)
		if w.Start().GreaterOrEqual(horizon.End()) {
			continue
		}
		if w.End().LessOrEqual(horizon.Start()) {
			break
		}
		clipped, ok := w.Intersection(horizon)
		if ok && clipped.Duration().GreaterOrEqual(size) {
			return clipped.End().Sub(size), true
		}
	}
	return quantity.Quantity[U]{}, false
}

// FlexibilityIn sums duration/size over every horizon-clipped window that
// can hold size. Windows must not overlap, which a Set guarantees.
func FlexibilityIn[U quantity.Unit](size quantity.Quantity[U], windows interval.Set[U], horizon interval.Interval[U]) float64 {
	var flex float64
	for i := 0; i < windows.Len(); i++ {
		w := windows.At(i)
		if w.End().LessOrEqual(horizon.Start()) {
			continue
		}
		if w.Start().GreaterOrEqual(horizon.End()) {
			break
		}
		clipped, ok := w.Intersection(horizon)
		if ok && clipped.Duration().GreaterOrEqual(size) {
			flex += clipped.Duration().Div(size)
		}
	}
	return flex
}

// IsImpossible reports whether a task with this flexibility cannot be placed.
func IsImpossible(flex float64) bool { return flex < 1 }

// IsEndangered reports whether flexibility has fallen below threshold.
func IsEndangered(flex, threshold float64) bool { return flex < threshold }

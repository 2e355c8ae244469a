package dynamic

import (
	"fmt"

	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/specialistvlad/gridplan/internal/schedule"
	"github.com/specialistvlad/gridplan/internal/solution"
)

// Context bundles the read-only state a dynamic constraint may consult.
type Context[U quantity.Unit] struct {
	Schedule schedule.Reader[U]
	Space    *solution.Space[U]
}

// NewContext returns a Context over the given views.
func NewContext[U quantity.Unit](s schedule.Reader[U], space *solution.Space[U]) Context[U] {
	return Context[U]{Schedule: s, Space: space}
}

// Constraint is a feasibility rule relative to a reference task.
// ComputeIntervals returns the canonical sub-ranges of rng where the rule
// currently holds, or an empty set when none do.
type Constraint[U quantity.Unit] interface {
	ComputeIntervals(rng interval.Interval[U], ref string, ctx Context[U]) interval.Set[U]
	String() string
}

// Evaluate computes a built-in kind.
func Evaluate[U quantity.Unit](k Kind, rng interval.Interval[U], ref string, ctx Context[U]) interval.Set[U] {
	var placed bool
	var at interval.Interval[U]
	if ctx.Schedule != nil {
		at, placed = ctx.Schedule.Interval(ref)
	}

	switch k {
	case Dependence:
		if placed {
			return interval.Single(rng)
		}
		return interval.Set[U]{}

	case Consecutive:
		if !placed {
			return interval.Set[U]{}
		}
		start := quantity.Max(rng.Start(), at.End())
		if !start.Less(rng.End()) {
			return interval.Set[U]{}
		}
		return interval.Single(interval.Unchecked(start, rng.End()))

	case Exclusive:
		if placed {
			return interval.Set[U]{}
		}
		return interval.Single(rng)

	default:
		panic(fmt.Sprintf("dynamic: unknown kind %d", int(k)))
	}
}

type builtin[U quantity.Unit] struct {
	kind Kind
}

// Builtin adapts a Kind to the Constraint interface.
func Builtin[U quantity.Unit](k Kind) Constraint[U] {
	return builtin[U]{kind: k}
}

func (b builtin[U]) ComputeIntervals(rng interval.Interval[U], ref string, ctx Context[U]) interval.Set[U] {
	return Evaluate(b.kind, rng, ref, ctx)
}

func (b builtin[U]) String() string { return b.kind.String() }

// KindOf reports the built-in kind behind c, if any.
func KindOf[U quantity.Unit](c Constraint[U]) (Kind, bool) {
	b, ok := c.(builtin[U])
	return b.kind, ok
}

// Func is a custom Constraint backed by a function.
type Func[U quantity.Unit] struct {
	Name string
	Fn   func(rng interval.Interval[U], ref string, ctx Context[U]) interval.Set[U]
}

func (f Func[U]) ComputeIntervals(rng interval.Interval[U], ref string, ctx Context[U]) interval.Set[U] {
	return interval.Clip(f.Fn(rng, ref, ctx), rng)
}

func (f Func[U]) String() string { return f.Name }

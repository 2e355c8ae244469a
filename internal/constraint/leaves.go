package constraint

import (
	"fmt"

	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/quantity"
)

// Windows holds wherever one of a fixed list of windows covers the query range.
type Windows[U quantity.Unit] struct {
	windows interval.Set[U]
}

// NewWindows builds a Windows constraint; overlapping windows are merged.
func NewWindows[U quantity.Unit](windows ...interval.Interval[U]) *Windows[U] {
	return &Windows[U]{windows: interval.NewSet(windows...)}
}

func (w *Windows[U]) ComputeIntervals(rng interval.Interval[U]) interval.Set[U] {
	return interval.Clip(w.windows, rng)
}

func (w *Windows[U]) String() string {
	return "Windows" + w.windows.String()
}

// NotBefore holds from t onwards.
type NotBefore[U quantity.Unit] struct {
	t quantity.Quantity[U]
}

func NewNotBefore[U quantity.Unit](t quantity.Quantity[U]) *NotBefore[U] {
	return &NotBefore[U]{t: t}
}

func (c *NotBefore[U]) ComputeIntervals(rng interval.Interval[U]) interval.Set[U] {
	start := quantity.Max(rng.Start(), c.t)
	if !start.Less(rng.End()) {
		return interval.Set[U]{}
	}
	return interval.Single(interval.Unchecked(start, rng.End()))
}

func (c *NotBefore[U]) String() string {
	return fmt.Sprintf("NotBefore(%.3f)", c.t.Value())
}

// NotAfter holds strictly before t.
type NotAfter[U quantity.Unit] struct {
	t quantity.Quantity[U]
}

func NewNotAfter[U quantity.Unit](t quantity.Quantity[U]) *NotAfter[U] {
	return &NotAfter[U]{t: t}
}

func (c *NotAfter[U]) ComputeIntervals(rng interval.Interval[U]) interval.Set[U] {
	end := quantity.Min(rng.End(), c.t)
	if !rng.Start().Less(end) {
		return interval.Set[U]{}
	}
	return interval.Single(interval.Unchecked(rng.Start(), end))
}

func (c *NotAfter[U]) String() string {
	return fmt.Sprintf("NotAfter(%.3f)", c.t.Value())
}

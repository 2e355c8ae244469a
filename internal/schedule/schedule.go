package schedule

import (
	"slices"

	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/quantity"
)

// Reader is the read-only view of a schedule handed to dynamic constraints.
type Reader[U quantity.Unit] interface {
	ContainsTask(id string) bool
	Interval(id string) (interval.Interval[U], bool)
}

// Placement is a task committed to an interval.
type Placement[U quantity.Unit] struct {
	ID       string               `json:"id"`
	Interval interval.Interval[U] `json:"interval"`
}

// Schedule is a set of non-overlapping placements keyed by task id.
// It is not safe for concurrent mutation; concurrent readers are fine while
// no Add is in flight.
type Schedule[U quantity.Unit] struct {
	byID map[string]interval.Interval[U]
	// sorted by start, then end
	ordered []Placement[U]
}

var _ Reader[quantity.Second] = (*Schedule[quantity.Second])(nil)

// New returns an empty schedule.
func New[U quantity.Unit]() *Schedule[U] {
	return &Schedule[U]{byID: make(map[string]interval.Interval[U])}
}

// Add places id at iv. It fails without modifying the schedule when id is
// already placed, an endpoint is NaN, or iv overlaps an existing placement.
func (s *Schedule[U]) Add(id string, iv interval.Interval[U]) error {
	if _, exists := s.byID[id]; exists {
		return Error{Kind: KindDuplicateTaskID, TaskID: id}
	}
	if iv.Start().IsNaN() || iv.End().IsNaN() {
		return Error{Kind: KindNaNTime, TaskID: id}
	}

	pos, _ := slices.BinarySearchFunc(s.ordered, iv, comparePlacement[U])

	// Ends are non-decreasing in this order, so only the neighbours of the
	// insertion point can conflict.
	if pos > 0 && s.ordered[pos-1].Interval.Overlaps(iv) {
		return Error{Kind: KindOverlapsExisting, TaskID: id, ExistingID: s.ordered[pos-1].ID}
	}
	if pos < len(s.ordered) && s.ordered[pos].Interval.Overlaps(iv) {
		return Error{Kind: KindOverlapsExisting, TaskID: id, ExistingID: s.ordered[pos].ID}
	}

	s.ordered = slices.Insert(s.ordered, pos, Placement[U]{ID: id, Interval: iv})
	s.byID[id] = iv
	return nil
}

func comparePlacement[U quantity.Unit](p Placement[U], iv interval.Interval[U]) int {
	if c := p.Interval.Start().Compare(iv.Start()); c != 0 {
		return c
	}
	return p.Interval.End().Compare(iv.End())
}

// ContainsTask reports whether id has been placed.
func (s *Schedule[U]) ContainsTask(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Interval returns the placement of id.
func (s *Schedule[U]) Interval(id string) (interval.Interval[U], bool) {
	iv, ok := s.byID[id]
	return iv, ok
}

// Lookup is like Interval but reports a missing task as ErrTaskNotFound.
func (s *Schedule[U]) Lookup(id string) (interval.Interval[U], error) {
	iv, ok := s.byID[id]
	if !ok {
		return interval.Interval[U]{}, Error{Kind: KindTaskNotFound, TaskID: id}
	}
	return iv, nil
}

// IsEmpty reports whether nothing has been placed.
func (s *Schedule[U]) IsEmpty() bool { return len(s.ordered) == 0 }

// Len returns the number of placements.
func (s *Schedule[U]) Len() int { return len(s.ordered) }

// Placements returns a copy of all placements ordered by start.
func (s *Schedule[U]) Placements() []Placement[U] {
	return slices.Clone(s.ordered)
}

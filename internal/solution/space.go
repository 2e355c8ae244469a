package solution

import (
	"slices"

	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/specialistvlad/gridplan/internal/task"
)

// Space maps task ids to their static feasibility windows.
// An id that was never registered is different from an id registered with
// an empty set: the former is unconstrained by convention of the caller, the
// latter can never be placed.
type Space[U quantity.Unit] struct {
	windows map[string]interval.Set[U]
}

// New returns an empty Space.
func New[U quantity.Unit]() *Space[U] {
	return &Space[U]{windows: make(map[string]interval.Set[U])}
}

// Set stores the windows of id, replacing any previous entry. The windows
// are canonicalized.
func (s *Space[U]) Set(id string, windows ...interval.Interval[U]) {
	s.windows[id] = interval.NewSet(windows...)
}

// Put stores an already canonical set under id.
func (s *Space[U]) Put(id string, windows interval.Set[U]) {
	s.windows[id] = windows
}

// Get returns the windows of id and whether id is registered.
func (s *Space[U]) Get(id string) (interval.Set[U], bool) {
	if s == nil {
		return interval.Set[U]{}, false
	}
	w, ok := s.windows[id]
	return w, ok
}

// Len returns the number of registered tasks.
func (s *Space[U]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.windows)
}

// IsEmpty reports whether no task is registered.
func (s *Space[U]) IsEmpty() bool { return s.Len() == 0 }

// IDs returns the registered task ids in ascending order.
func (s *Space[U]) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.windows))
	for id := range s.windows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Precompute evaluates each task's static constraint tree once over the
// horizon. Tasks without a tree are left unregistered.
func Precompute[U quantity.Unit, T task.Task[U]](tasks []T, horizon interval.Interval[U]) *Space[U] {
	space := New[U]()
	for _, t := range tasks {
		tree := t.Constraints()
		if tree == nil {
			continue
		}
		space.Put(t.ID(), tree.Evaluate(horizon))
	}
	return space
}

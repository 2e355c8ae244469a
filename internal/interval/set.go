package interval

import (
	"slices"
	"sort"
	"strings"

	"github.com/specialistvlad/gridplan/internal/quantity"
)

// Set is a canonical interval set: sorted ascending by start with no two
// members overlapping. Adjacent members (prev.end == next.start) are allowed
// by the invariant, although the constructors in this package merge them.
//
// The zero value is the empty set. Sets are immutable; every operation
// returns a new Set.
type Set[U quantity.Unit] struct {
	items []Interval[U]
}

// IsCanonical reports whether intervals are sorted by start and pairwise
// non-overlapping. Adjacency is allowed.
func IsCanonical[U quantity.Unit](intervals []Interval[U]) bool {
	for i := 1; i < len(intervals); i++ {
		prev, curr := intervals[i-1], intervals[i]
		if curr.Overlaps(prev) || prev.end.Greater(curr.start) {
			return false
		}
	}
	return true
}

// NewSet builds the canonical form of the given intervals: zero-width members
// are dropped, the rest are sorted and overlapping or adjacent members merged.
func NewSet[U quantity.Unit](intervals ...Interval[U]) Set[U] {
	items := make([]Interval[U], 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			items = append(items, iv)
		}
	}
	if len(items) == 0 {
		return Set[U]{}
	}
	slices.SortFunc(items, func(a, b Interval[U]) int {
		if c := a.start.Compare(b.start); c != 0 {
			return c
		}
		return a.end.Compare(b.end)
	})

	merged := items[:1]
	for _, iv := range items[1:] {
		last := &merged[len(merged)-1]
		if iv.start.LessOrEqual(last.end) {
			last.end = quantity.Max(last.end, iv.end)
			continue
		}
		merged = append(merged, iv)
	}
	return Set[U]{items: merged}
}

// Single returns the set holding only iv, or the empty set if iv is empty.
func Single[U quantity.Unit](iv Interval[U]) Set[U] {
	if iv.IsEmpty() {
		return Set[U]{}
	}
	return Set[U]{items: []Interval[U]{iv}}
}

func (s Set[U]) Len() int      { return len(s.items) }
func (s Set[U]) IsEmpty() bool { return len(s.items) == 0 }

// At returns the i-th member in ascending order.
func (s Set[U]) At(i int) Interval[U] { return s.items[i] }

// Intervals returns a copy of the members in ascending order.
func (s Set[U]) Intervals() []Interval[U] {
	return slices.Clone(s.items)
}

// Total returns the summed duration of all members.
func (s Set[U]) Total() quantity.Quantity[U] {
	var total quantity.Quantity[U]
	for _, iv := range s.items {
		total = total.Add(iv.Duration())
	}
	return total
}

// Find returns the member containing p.
func (s Set[U]) Find(p quantity.Quantity[U]) (Interval[U], bool) {
	i := sort.Search(len(s.items), func(i int) bool {
		return p.Less(s.items[i].end)
	})
	if i < len(s.items) && s.items[i].Contains(p) {
		return s.items[i], true
	}
	return Interval[U]{}, false
}

// Equal reports whether both sets hold the same members.
func (s Set[U]) Equal(other Set[U]) bool {
	return slices.EqualFunc(s.items, other.items, Interval[U].Equal)
}

func (s Set[U]) String() string {
	parts := make([]string, len(s.items))
	for i, iv := range s.items {
		parts[i] = iv.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Union returns every point covered by a or b.
func Union[U quantity.Unit](a, b Set[U]) Set[U] {
	all := make([]Interval[U], 0, a.Len()+b.Len())
	all = append(all, a.items...)
	all = append(all, b.items...)
	return NewSet(all...)
}

// Intersect returns every point covered by both a and b.
func Intersect[U quantity.Unit](a, b Set[U]) Set[U] {
	var out []Interval[U]
	i, j := 0, 0
	for i < len(a.items) && j < len(b.items) {
		if iv, ok := a.items[i].Intersection(b.items[j]); ok {
			out = append(out, iv)
		}
		if a.items[i].end.Less(b.items[j].end) {
			i++
		} else {
			j++
		}
	}
	return Set[U]{items: out}
}

// Complement returns the parts of within not covered by s.
func Complement[U quantity.Unit](s Set[U], within Interval[U]) Set[U] {
	var out []Interval[U]
	cursor := within.start
	for _, iv := range s.items {
		if iv.end.LessOrEqual(within.start) {
			continue
		}
		if iv.start.GreaterOrEqual(within.end) {
			break
		}
		if cursor.Less(iv.start) {
			out = append(out, Interval[U]{start: cursor, end: iv.start})
		}
		cursor = quantity.Max(cursor, iv.end)
	}
	if cursor.Less(within.end) {
		out = append(out, Interval[U]{start: cursor, end: within.end})
	}
	return Set[U]{items: out}
}

// Clip restricts s to within.
func Clip[U quantity.Unit](s Set[U], within Interval[U]) Set[U] {
	return Intersect(s, Single(within))
}

// Subtract returns the points of a not covered by b.
func Subtract[U quantity.Unit](a, b Set[U]) Set[U] {
	if a.IsEmpty() || b.IsEmpty() {
		return a
	}
	hull := Interval[U]{start: a.items[0].start, end: a.items[len(a.items)-1].end}
	return Intersect(a, Complement(b, hull))
}

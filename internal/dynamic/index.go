package dynamic

import (
	"fmt"

	"github.com/specialistvlad/gridplan/internal/dag"
	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/quantity"
)

// Edge is a dependency from the reference task From to the constrained
// task To.
type Edge struct {
	From string
	To   string
}

func (e Edge) String() string { return e.From + " -> " + e.To }

// Index maps dependency edges to the dynamic constraint evaluated for them.
type Index[U quantity.Unit] struct {
	graph *dag.Graph[Constraint[U]]
}

// NewIndex returns an empty Index.
func NewIndex[U quantity.Unit]() *Index[U] {
	return &Index[U]{graph: dag.New[Constraint[U]]()}
}

// AddKind constrains `to` by a built-in kind relative to `from`.
func (x *Index[U]) AddKind(from, to string, k Kind) error {
	return x.Add(from, to, Builtin[U](k))
}

// Add constrains `to` by c relative to `from`, replacing any constraint
// previously stored for the same edge.
func (x *Index[U]) Add(from, to string, c Constraint[U]) error {
	if c == nil {
		return fmt.Errorf("nil constraint for edge %s -> %s", from, to)
	}
	x.graph.AddNode(from)
	x.graph.AddNode(to)
	return x.graph.AddEdge(from, to, c)
}

// Get returns the constraint stored for e.
func (x *Index[U]) Get(e Edge) (Constraint[U], bool) {
	return x.graph.Edge(e.From, e.To)
}

// Len returns the number of edges.
func (x *Index[U]) Len() int { return x.graph.EdgeCount() }

// Incoming returns the edges pointing at target ordered by source id.
func (x *Index[U]) Incoming(target string) []dag.Link[Constraint[U]] {
	return x.graph.Incoming(target)
}

// Graph exposes the underlying dependency graph.
func (x *Index[U]) Graph() *dag.Graph[Constraint[U]] { return x.graph }

// Evaluate intersects the results of every edge pointing at target over
// rng. A target without incoming edges is unconstrained and gets rng back.
func (x *Index[U]) Evaluate(target string, rng interval.Interval[U], ctx Context[U]) interval.Set[U] {
	result := interval.Single(rng)
	for _, link := range x.graph.Incoming(target) {
		if result.IsEmpty() {
			break
		}
		result = interval.Intersect(result, link.Label.ComputeIntervals(rng, link.From, ctx))
	}
	return result
}

// Feasible narrows Evaluate by the target's static windows from ctx.Space.
// A target with no solution space entry is statically unconstrained.
func (x *Index[U]) Feasible(target string, rng interval.Interval[U], ctx Context[U]) interval.Set[U] {
	result := x.Evaluate(target, rng, ctx)
	if static, ok := ctx.Space.Get(target); ok {
		result = interval.Intersect(result, static)
	}
	return result
}

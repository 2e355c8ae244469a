package constraint

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/quantity"
)

// Constraint is a static feasibility rule. ComputeIntervals returns the
// sub-ranges of rng where the rule holds.
type Constraint[U quantity.Unit] interface {
	ComputeIntervals(rng interval.Interval[U]) interval.Set[U]
	String() string
}

// Op is the kind of a tree node.
type Op int

const (
	OpLeaf Op = iota
	OpAnd
	OpOr
	OpNot
)

func (op Op) String() string {
	switch op {
	case OpLeaf:
		return "LEAF"
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpNot:
		return "NOT"
	default:
		return "UNKNOWN"
	}
}

// Expr is a node of a constraint tree.
type Expr[U quantity.Unit] struct {
	op       Op
	leaf     Constraint[U]
	children []*Expr[U]
}

// Leaf wraps a single constraint.
func Leaf[U quantity.Unit](c Constraint[U]) *Expr[U] {
	return &Expr[U]{op: OpLeaf, leaf: c}
}

// And combines children by intersection.
func And[U quantity.Unit](children ...*Expr[U]) *Expr[U] {
	return &Expr[U]{op: OpAnd, children: children}
}

// Or combines children by union.
func Or[U quantity.Unit](children ...*Expr[U]) *Expr[U] {
	return &Expr[U]{op: OpOr, children: children}
}

// Not negates child within the query range.
func Not[U quantity.Unit](child *Expr[U]) *Expr[U] {
	return &Expr[U]{op: OpNot, children: []*Expr[U]{child}}
}

// NewNot returns a NOT node without a child, to be filled by AddChild.
func NewNot[U quantity.Unit]() *Expr[U] {
	return &Expr[U]{op: OpNot}
}

// Op returns the node kind.
func (e *Expr[U]) Op() Op { return e.op }

// Constraint returns the wrapped constraint of a leaf, or nil.
func (e *Expr[U]) Constraint() Constraint[U] { return e.leaf }

// Children returns a copy of the node's children.
func (e *Expr[U]) Children() []*Expr[U] {
	out := make([]*Expr[U], len(e.children))
	copy(out, e.children)
	return out
}

// AddChild attaches child to an AND, OR or empty NOT node.
func (e *Expr[U]) AddChild(child *Expr[U]) error {
	switch e.op {
	case OpLeaf:
		return ErrCannotAddChildToLeaf
	case OpNot:
		if len(e.children) > 0 {
			return ErrCannotAddChildToNot
		}
	}
	e.children = append(e.children, child)
	return nil
}

// Evaluate returns the canonical set of sub-ranges of rng where the
// expression holds. A NOT node that never received a child negates the empty
// set and therefore yields the whole range.
func (e *Expr[U]) Evaluate(rng interval.Interval[U]) interval.Set[U] {
	switch e.op {
	case OpLeaf:
		if e.leaf == nil {
			return interval.Set[U]{}
		}
		return interval.Clip(e.leaf.ComputeIntervals(rng), rng)

	case OpAnd:
		result := interval.Single(rng)
		for _, child := range e.children {
			if result.IsEmpty() {
				break
			}
			result = interval.Intersect(result, child.Evaluate(rng))
		}
		return result

	case OpOr:
		var result interval.Set[U]
		for _, child := range e.children {
			result = interval.Union(result, child.Evaluate(rng))
		}
		return result

	case OpNot:
		var inner interval.Set[U]
		if len(e.children) > 0 {
			inner = e.children[0].Evaluate(rng)
		}
		return interval.Complement(inner, rng)

	default:
		panic(fmt.Sprintf("constraint: unknown op %d", e.op))
	}
}

// String renders the tree, e.g. AND(Windows{[0.000, 10.000)}, NOT(NotBefore(5.000))).
func (e *Expr[U]) String() string {
	if e.op == OpLeaf {
		if e.leaf == nil {
			return "<nil>"
		}
		return e.leaf.String()
	}
	parts := make([]string, len(e.children))
	for i, child := range e.children {
		parts[i] = child.String()
	}
	return e.op.String() + "(" + strings.Join(parts, ", ") + ")"
}

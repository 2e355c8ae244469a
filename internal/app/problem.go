package app

import (
	"fmt"

	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/constraint"
	"github.com/specialistvlad/gridplan/internal/dynamic"
	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/planner"
	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/specialistvlad/gridplan/internal/task"
)

// buildProblem turns the unified model into a planner problem on axis U.
func buildProblem[U quantity.Unit](m *config.Model) (planner.Problem[U], error) {
	var prob planner.Problem[U]

	horizon, err := interval.FromFloat[U](m.Horizon.Start, m.Horizon.End)
	if err != nil {
		return prob, fmt.Errorf("invalid horizon: %w", err)
	}

	known := make(map[string]bool, len(m.Tasks))
	tasks := make([]task.Task[U], 0, len(m.Tasks))
	for _, t := range m.Tasks {
		tree, err := buildExpr[U](t.Constraint)
		if err != nil {
			return prob, fmt.Errorf("%s: %w", t.Source, err)
		}
		tasks = append(tasks, &task.Spec[U]{
			Name:     t.ID,
			Duration: quantity.New[U](t.Size),
			Rank:     t.Priority,
			Gap:      quantity.New[U](t.GapAfter),
			Tree:     tree,
		})
		known[t.ID] = true
	}

	index := dynamic.NewIndex[U]()
	for _, d := range m.Dependencies {
		for _, id := range []string{d.From, d.To} {
			if !known[id] {
				return prob, fmt.Errorf("%s: unknown task '%s'", d.Source, id)
			}
		}
		kind, err := dynamic.ParseKind(d.Kind)
		if err != nil {
			return prob, fmt.Errorf("%s: %w", d.Source, err)
		}
		if err := index.AddKind(d.From, d.To, kind); err != nil {
			return prob, fmt.Errorf("%s: %w", d.Source, err)
		}
	}

	// Mutually exclusive pairs are legal; only ordering edges must be acyclic.
	if err := index.Graph().DetectCycles(ordersTasks[U]); err != nil {
		return prob, fmt.Errorf("invalid dependencies: %w", err)
	}

	return planner.Problem[U]{Horizon: horizon, Tasks: tasks, Index: index}, nil
}

// ordersTasks reports whether an edge forces its target after its source.
func ordersTasks[U quantity.Unit](c dynamic.Constraint[U]) bool {
	k, ok := dynamic.KindOf(c)
	return ok && k != dynamic.Exclusive
}

// buildExpr converts a constraint node. Leaves come first, then nested
// nodes, in definition order. A nil node yields a nil tree.
func buildExpr[U quantity.Unit](c *config.Constraint) (*constraint.Expr[U], error) {
	if c == nil {
		return nil, nil
	}

	children := make([]*constraint.Expr[U], 0, len(c.Leaves)+len(c.Children))
	for i, l := range c.Leaves {
		leaf, err := buildLeaf[U](l)
		if err != nil {
			return nil, fmt.Errorf("%s: leaf %d: %w", c.Source, i, err)
		}
		children = append(children, constraint.Leaf(leaf))
	}
	for _, child := range c.Children {
		node, err := buildExpr[U](child)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}

	var root *constraint.Expr[U]
	switch c.Op {
	case config.OpLeaf:
		if len(c.Leaves) != 1 || len(c.Children) != 0 {
			return nil, fmt.Errorf("%s: a leaf constraint must describe exactly one leaf, got %d", c.Source, len(children))
		}
		return children[0], nil
	case config.OpNot:
		if len(children) == 0 {
			return nil, fmt.Errorf("%s: a not constraint needs a child", c.Source)
		}
		root = constraint.NewNot[U]()
	case config.OpAnd:
		root = constraint.And[U]()
	case config.OpOr:
		root = constraint.Or[U]()
	default:
		return nil, fmt.Errorf("%s: unknown constraint op %q", c.Source, c.Op)
	}

	for _, child := range children {
		if err := root.AddChild(child); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Source, err)
		}
	}
	return root, nil
}

func buildLeaf[U quantity.Unit](l config.Leaf) (constraint.Constraint[U], error) {
	switch l.Kind {
	case config.LeafWindows:
		windows := make([]interval.Interval[U], 0, len(l.Windows))
		for i, w := range l.Windows {
			iv, err := interval.FromFloat[U](w.Start, w.End)
			if err != nil {
				return nil, fmt.Errorf("window %d: %w", i, err)
			}
			windows = append(windows, iv)
		}
		return constraint.NewWindows(windows...), nil
	case config.LeafNotBefore:
		return constraint.NewNotBefore(quantity.New[U](l.At)), nil
	case config.LeafNotAfter:
		return constraint.NewNotAfter(quantity.New[U](l.At)), nil
	default:
		return nil, fmt.Errorf("unknown leaf kind %q", l.Kind)
	}
}

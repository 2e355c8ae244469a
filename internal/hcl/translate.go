package hcl

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/interval"
)

// translateHorizon converts the HCL horizon block into the agnostic model.
// The unit defaults to seconds.
func translateHorizon(h *Horizon) *config.Horizon {
	unit := h.Unit
	if unit == "" {
		unit = "second"
	}
	return &config.Horizon{Unit: unit, Start: h.Start, End: h.End}
}

// translatePlanner copies the settings present in p over dst.
func translatePlanner(p *Planner, dst *config.Planner) {
	if p.EndangeredThreshold != nil {
		dst.EndangeredThreshold = *p.EndangeredThreshold
	}
	if p.Workers != nil {
		dst.Workers = *p.Workers
	}
}

// translateTask converts a task block. Several constraint blocks on one task
// are combined with AND.
func translateTask(t *Task, file string) (*config.Task, error) {
	source := fmt.Sprintf("%s: task %q", file, t.ID)
	out := &config.Task{
		ID:     t.ID,
		Size:   t.Size,
		Source: source,
	}
	if t.Priority != nil {
		out.Priority = *t.Priority
	}
	if t.GapAfter != nil {
		out.GapAfter = *t.GapAfter
	}

	var roots []*config.Constraint
	for _, c := range t.Constraints {
		node, err := translateConstraint(c, source)
		if err != nil {
			return nil, err
		}
		roots = append(roots, node)
	}
	switch len(roots) {
	case 0:
	case 1:
		out.Constraint = roots[0]
	default:
		out.Constraint = &config.Constraint{Op: config.OpAnd, Children: roots, Source: source}
	}
	return out, nil
}

// translateConstraint converts a constraint block and its nested blocks.
func translateConstraint(c *Constraint, parent string) (*config.Constraint, error) {
	op := config.Op(strings.ToLower(c.Op))
	switch op {
	case config.OpAnd, config.OpOr, config.OpNot, config.OpLeaf:
	default:
		return nil, fmt.Errorf("%s: unknown constraint %q, expected one of and, or, not, leaf", parent, c.Op)
	}

	source := fmt.Sprintf("%s > constraint %q", parent, c.Op)
	out := &config.Constraint{Op: op, Source: source}

	for _, w := range c.Window {
		out.Leaves = append(out.Leaves, config.Leaf{
			Kind:    config.LeafWindows,
			Windows: []config.Window{{Start: w.Start, End: w.End}},
		})
	}

	windows, err := decodeWindows(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if windows != nil {
		out.Leaves = append(out.Leaves, config.Leaf{Kind: config.LeafWindows, Windows: windows})
	}

	if c.NotBefore != nil {
		out.Leaves = append(out.Leaves, config.Leaf{Kind: config.LeafNotBefore, At: *c.NotBefore})
	}
	if c.NotAfter != nil {
		out.Leaves = append(out.Leaves, config.Leaf{Kind: config.LeafNotAfter, At: *c.NotAfter})
	}

	for _, child := range c.Children {
		node, err := translateConstraint(child, source)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, node)
	}
	return out, nil
}

// decodeWindows evaluates the `windows` attribute. Each element is either a
// [start, end] pair or a {start, end} object. A missing attribute yields nil.
func decodeWindows(c *Constraint) ([]config.Window, error) {
	if c.Windows == nil {
		return nil, nil
	}
	val, diags := c.Windows.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid windows attribute: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsKnown() || !val.CanIterateElements() {
		return nil, fmt.Errorf("windows must be a list of [start, end] pairs, got %s", val.Type().FriendlyName())
	}

	windows := []config.Window{}
	it := val.ElementIterator()
	for i := 0; it.Next(); i++ {
		_, el := it.Element()
		start, end, err := interval.DecodeCtyBounds(el)
		if err != nil {
			return nil, fmt.Errorf("windows[%d]: %w", i, err)
		}
		windows = append(windows, config.Window{Start: start, End: end})
	}
	return windows, nil
}

// translateDependency converts a dependency block. The kind defaults to
// dependence.
func translateDependency(d *Dependency, file string) *config.Dependency {
	kind := d.Kind
	if kind == "" {
		kind = "dependence"
	}
	return &config.Dependency{
		From:   d.From,
		To:     d.To,
		Kind:   kind,
		Source: fmt.Sprintf("%s: dependency %q -> %q", file, d.From, d.To),
	}
}

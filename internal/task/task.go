package task

import (
	"github.com/specialistvlad/gridplan/internal/constraint"
	"github.com/specialistvlad/gridplan/internal/quantity"
)

// Task is the view of a unit of work that the scheduling core needs.
// It is consumed by solution precomputation, the metrics and the planner.
type Task[U quantity.Unit] interface {
	// ID uniquely identifies the task within a problem.
	ID() string
	// Size is the amount of axis the task occupies once placed.
	Size() quantity.Quantity[U]
	// Priority breaks ties between equally flexible candidates; higher wins.
	Priority() int
	// GapAfter is the minimum free axis required after the task's placement
	// before another task may start.
	GapAfter() quantity.Quantity[U]
	// Constraints returns the static constraint tree, or nil if the task is
	// unconstrained.
	Constraints() *constraint.Expr[U]
}

// Spec is the concrete Task built from a problem definition.
type Spec[U quantity.Unit] struct {
	// Name is the task id.
	Name string

	// Duration is the task size on the axis.
	Duration quantity.Quantity[U]

	// Rank is the task priority.
	Rank int

	// Gap is the gap-after duration.
	Gap quantity.Quantity[U]

	// Tree is the optional static constraint tree.
	Tree *constraint.Expr[U]
}

var _ Task[quantity.Second] = (*Spec[quantity.Second])(nil)

func (s *Spec[U]) ID() string                       { return s.Name }
func (s *Spec[U]) Size() quantity.Quantity[U]       { return s.Duration }
func (s *Spec[U]) Priority() int                    { return s.Rank }
func (s *Spec[U]) GapAfter() quantity.Quantity[U]   { return s.Gap }
func (s *Spec[U]) Constraints() *constraint.Expr[U] { return s.Tree }

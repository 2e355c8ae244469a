package planner

import (
	"context"

	"github.com/specialistvlad/gridplan/internal/dynamic"
	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/specialistvlad/gridplan/internal/schedule"
	"github.com/specialistvlad/gridplan/internal/solution"
	"github.com/specialistvlad/gridplan/internal/task"
)

// DefaultEndangeredThreshold is used when Options leaves it unset.
const DefaultEndangeredThreshold = 2.0

// Options tunes a Planner.
type Options struct {
	// EndangeredThreshold is the flexibility below which a placement is
	// reported as endangered.
	EndangeredThreshold float64

	// Workers is the number of goroutines evaluating candidates per step.
	// Values below 2 evaluate sequentially.
	Workers int
}

// Problem is the input of a planning run.
type Problem[U quantity.Unit] struct {
	// Horizon is the static range used for every metric.
	Horizon interval.Interval[U]

	Tasks []task.Task[U]

	// Index holds the dynamic constraints; nil means none.
	Index *dynamic.Index[U]
}

// Status is the final state of a task.
type Status int

const (
	Placed Status = iota
	// Blocked tasks had static room but their dynamic constraints never
	// allowed a start.
	Blocked
	// Infeasible tasks had nowhere to fit.
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Placed:
		return "placed"
	case Blocked:
		return "blocked"
	case Infeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Outcome reports what happened to one task.
type Outcome[U quantity.Unit] struct {
	ID     string `json:"id"`
	Status Status `json:"status"`

	// Interval is set for placed tasks.
	Interval interval.Interval[U] `json:"interval"`

	// Flexibility is measured right before placement, or at the end of the
	// run for unplaced tasks.
	Flexibility float64 `json:"flexibility"`
	Endangered  bool    `json:"endangered"`

	// Step is the 1-based placement order; 0 for unplaced tasks.
	Step int `json:"step"`
}

// Result is the output of a planning run.
type Result[U quantity.Unit] struct {
	Schedule *schedule.Schedule[U]
	Space    *solution.Space[U]

	// Outcomes lists placed tasks in placement order followed by the
	// unplaced ones by id.
	Outcomes []Outcome[U]
}

// Unplaced returns the outcomes of tasks that were not placed.
func (r *Result[U]) Unplaced() []Outcome[U] {
	var out []Outcome[U]
	for _, o := range r.Outcomes {
		if o.Status != Placed {
			out = append(out, o)
		}
	}
	return out
}

// Listener is notified after every placement.
type Listener[U quantity.Unit] interface {
	OnPlaced(ctx context.Context, o Outcome[U]) error
}

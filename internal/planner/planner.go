package planner

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/specialistvlad/gridplan/internal/dynamic"
	"github.com/specialistvlad/gridplan/internal/interval"
	"github.com/specialistvlad/gridplan/internal/metrics"
	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/specialistvlad/gridplan/internal/schedule"
	"github.com/specialistvlad/gridplan/internal/solution"
	"github.com/specialistvlad/gridplan/internal/task"
	"golang.org/x/sync/errgroup"
)

// Planner runs the greedy placement loop.
type Planner[U quantity.Unit] struct {
	opts      Options
	listeners []Listener[U]
}

// New returns a Planner. Listeners are called in order after each placement.
func New[U quantity.Unit](opts Options, listeners ...Listener[U]) *Planner[U] {
	if opts.EndangeredThreshold <= 0 {
		opts.EndangeredThreshold = DefaultEndangeredThreshold
	}
	return &Planner[U]{opts: opts, listeners: listeners}
}

// candidate is the evaluation of one pending task in one step.
type candidate[U quantity.Unit] struct {
	task    task.Task[U]
	windows interval.Set[U]
	est     quantity.Quantity[U]
	fits    bool
	flex    float64
}

// Plan places as many of the problem's tasks as it can. It returns an error
// only for invalid input or a cancelled context; tasks that cannot be placed
// are reported in the result.
func (p *Planner[U]) Plan(ctx context.Context, prob Problem[U]) (*Result[U], error) {
	logger := ctxlog.FromContext(ctx)

	if err := validate(prob); err != nil {
		return nil, err
	}
	index := prob.Index
	if index == nil {
		index = dynamic.NewIndex[U]()
	}

	logger.Debug("Planning started.", "tasks", len(prob.Tasks), "edges", index.Len(), "horizon", prob.Horizon.String())

	space := solution.Precompute(prob.Tasks, prob.Horizon)
	sched := schedule.New[U]()
	result := &Result[U]{Schedule: sched, Space: space}

	gaps := make(map[string]quantity.Quantity[U], len(prob.Tasks))
	var pending []task.Task[U]
	var infeasible []Outcome[U]
	for _, t := range prob.Tasks {
		gaps[t.ID()] = t.GapAfter()
		if windows, ok := space.Get(t.ID()); ok {
			if flex := metrics.FlexibilityIn(t.Size(), windows, prob.Horizon); metrics.IsImpossible(flex) {
				logger.Warn("Task has no static window large enough, skipping.", "task", t.ID(), "flexibility", flex)
				infeasible = append(infeasible, Outcome[U]{ID: t.ID(), Status: Infeasible, Flexibility: flex, Endangered: true})
				continue
			}
		}
		pending = append(pending, t)
	}

	for step := 1; len(pending) > 0; step++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("planning interrupted at step %d: %w", step, err)
		}

		dctx := dynamic.NewContext[U](sched, space)
		candidates := p.evaluate(pending, prob.Horizon, index, dctx, sched.Placements(), gaps)

		best := -1
		for i := range candidates {
			if candidates[i].fits && (best < 0 || better(candidates[i], candidates[best])) {
				best = i
			}
		}
		if best < 0 {
			logger.Debug("No pending task can be placed, stopping.", "step", step, "pending", len(pending))
			break
		}

		c := candidates[best]
		at := interval.Unchecked(c.est, c.est.Add(c.task.Size()))
		if err := sched.Add(c.task.ID(), at); err != nil {
			// Candidate windows exclude existing placements, so this is a bug.
			return nil, fmt.Errorf("placing task '%s': %w", c.task.ID(), err)
		}

		outcome := Outcome[U]{
			ID:          c.task.ID(),
			Status:      Placed,
			Interval:    at,
			Flexibility: c.flex,
			Endangered:  metrics.IsEndangered(c.flex, p.opts.EndangeredThreshold),
			Step:        step,
		}
		result.Outcomes = append(result.Outcomes, outcome)

		taskLogger := logger.With("task", outcome.ID, "step", step)
		if outcome.Endangered {
			taskLogger.Warn("Placed endangered task.", "flexibility", c.flex, "threshold", p.opts.EndangeredThreshold)
		}
		taskLogger.Debug("Task placed.", "start", at.Start().Value(), "end", at.End().Value(), "flexibility", c.flex)

		for _, l := range p.listeners {
			if err := l.OnPlaced(ctx, outcome); err != nil {
				taskLogger.Warn("Placement listener failed.", "error", err)
			}
		}

		pending = append(pending[:best], pending[best+1:]...)
	}

	unplaced := infeasible
	dctx := dynamic.NewContext[U](sched, space)
	for _, t := range pending {
		o := Outcome[U]{ID: t.ID(), Status: Infeasible, Endangered: true}
		if index.Evaluate(t.ID(), prob.Horizon, dctx).IsEmpty() {
			o.Status = Blocked
		}
		windows := index.Feasible(t.ID(), prob.Horizon, dctx)
		windows = interval.Subtract(windows, occupied(sched.Placements(), gaps, t.GapAfter()))
		o.Flexibility = metrics.FlexibilityIn(t.Size(), windows, prob.Horizon)
		logger.Warn("Task could not be placed.", "task", o.ID, "status", o.Status.String())
		unplaced = append(unplaced, o)
	}
	sortOutcomes(unplaced)
	result.Outcomes = append(result.Outcomes, unplaced...)

	logger.Info("Planning finished.", "placed", sched.Len(), "unplaced", len(unplaced))
	return result, nil
}

// evaluate computes a candidate for every pending task, spreading the work
// over the configured number of workers.
func (p *Planner[U]) evaluate(
	pending []task.Task[U],
	horizon interval.Interval[U],
	index *dynamic.Index[U],
	dctx dynamic.Context[U],
	placements []schedule.Placement[U],
	gaps map[string]quantity.Quantity[U],
) []candidate[U] {
	candidates := make([]candidate[U], len(pending))

	evalOne := func(i int) {
		t := pending[i]
		windows := index.Feasible(t.ID(), horizon, dctx)
		windows = interval.Subtract(windows, occupied(placements, gaps, t.GapAfter()))
		est, fits := metrics.ESTIn(t.Size(), windows, horizon)
		candidates[i] = candidate[U]{
			task:    t,
			windows: windows,
			est:     est,
			fits:    fits,
			flex:    metrics.FlexibilityIn(t.Size(), windows, horizon),
		}
	}

	if p.opts.Workers < 2 || len(pending) < 2 {
		for i := range pending {
			evalOne(i)
		}
		return candidates
	}

	var g errgroup.Group
	g.SetLimit(p.opts.Workers)
	for i := range pending {
		g.Go(func() error {
			evalOne(i)
			return nil
		})
	}
	_ = g.Wait()

	return candidates
}

// occupied returns the axis a task with trailing gap `gap` cannot use: every
// placement widened by its own gap after it and by `gap` before it.
func occupied[U quantity.Unit](placements []schedule.Placement[U], gaps map[string]quantity.Quantity[U], gap quantity.Quantity[U]) interval.Set[U] {
	blocked := make([]interval.Interval[U], 0, len(placements))
	for _, pl := range placements {
		blocked = append(blocked, interval.Unchecked(
			pl.Interval.Start().Sub(gap),
			pl.Interval.End().Add(gaps[pl.ID]),
		))
	}
	return interval.NewSet(blocked...)
}

// better reports whether a should be placed before b.
func better[U quantity.Unit](a, b candidate[U]) bool {
	if a.flex != b.flex {
		return a.flex < b.flex
	}
	if a.task.Priority() != b.task.Priority() {
		return a.task.Priority() > b.task.Priority()
	}
	return cmp.Less(a.task.ID(), b.task.ID())
}

func sortOutcomes[U quantity.Unit](outcomes []Outcome[U]) {
	slices.SortFunc(outcomes, func(a, b Outcome[U]) int { return cmp.Compare(a.ID, b.ID) })
}

func validate[U quantity.Unit](prob Problem[U]) error {
	if prob.Horizon.Start().IsNaN() || prob.Horizon.End().IsNaN() || prob.Horizon.End().Less(prob.Horizon.Start()) {
		return fmt.Errorf("invalid horizon %s", prob.Horizon)
	}
	seen := make(map[string]bool, len(prob.Tasks))
	for _, t := range prob.Tasks {
		id := t.ID()
		if id == "" {
			return errors.New("task with empty id")
		}
		if seen[id] {
			return fmt.Errorf("duplicate task id '%s'", id)
		}
		seen[id] = true
		if !t.Size().Greater(quantity.Quantity[U]{}) {
			return fmt.Errorf("task '%s': size must be positive, got %s", id, t.Size())
		}
		if t.GapAfter().IsNaN() || t.GapAfter().Less(quantity.Quantity[U]{}) {
			return fmt.Errorf("task '%s': gap_after must not be negative, got %s", id, t.GapAfter())
		}
	}
	return nil
}

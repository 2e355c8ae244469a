package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/specialistvlad/gridplan/internal/planner"
	"github.com/specialistvlad/gridplan/internal/publish"
	"github.com/specialistvlad/gridplan/internal/quantity"
)

// Run plans the loaded problem and writes the report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	unit, ok := quantity.Lookup(a.model.Horizon.Unit)
	if !ok {
		return fmt.Errorf("unknown horizon unit %q, expected one of %s", a.model.Horizon.Unit, strings.Join(quantity.Names(), ", "))
	}
	runID := uuid.New().String()
	ctx = ctxlog.With(ctx, "run_id", runID, "unit", unit.Symbol())

	var err error
	switch unit.(type) {
	case quantity.Second:
		err = run[quantity.Second](ctx, a, runID)
	case quantity.Minute:
		err = run[quantity.Minute](ctx, a, runID)
	case quantity.Hour:
		err = run[quantity.Hour](ctx, a, runID)
	case quantity.Day:
		err = run[quantity.Day](ctx, a, runID)
	case quantity.Meter:
		err = run[quantity.Meter](ctx, a, runID)
	case quantity.Kilometer:
		err = run[quantity.Kilometer](ctx, a, runID)
	default:
		err = fmt.Errorf("unit %s has no planner", unit.Symbol())
	}
	if err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func run[U quantity.Unit](ctx context.Context, a *App, runID string) error {
	logger := ctxlog.FromContext(ctx)

	prob, err := buildProblem[U](a.model)
	if err != nil {
		return fmt.Errorf("failed to build problem: %w", err)
	}
	logger.Debug("Problem built.", "tasks", len(prob.Tasks), "edges", prob.Index.Len())

	var listeners []planner.Listener[U]
	if a.cfg.PublishURL != "" {
		client, err := publish.Connect(ctx, publish.Options{URL: a.cfg.PublishURL, Namespace: a.cfg.PublishNamespace})
		if err != nil {
			return fmt.Errorf("failed to start publisher: %w", err)
		}
		defer publish.Close(ctx, client)
		listeners = append(listeners, publish.New[U](client, a.cfg.PublishEvent, runID))
	}

	logger.Info("Planning...", "tasks", len(prob.Tasks))
	result, err := planner.New[U](a.plannerOptions(), listeners...).Plan(ctx, prob)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	rep := newReport(runID, prob, result)
	if a.cfg.HistoryPath != "" {
		if err := saveHistory(ctx, a.cfg.HistoryPath, rep); err != nil {
			return err
		}
	}
	return writeReport(a.outW, a.cfg.Output, a.cfg.Color, rep)
}

// plannerOptions merges the command line over the problem file.
func (a *App) plannerOptions() planner.Options {
	opts := planner.Options{
		EndangeredThreshold: a.model.Planner.EndangeredThreshold,
		Workers:             a.model.Planner.Workers,
	}
	if a.cfg.EndangeredThreshold > 0 {
		opts.EndangeredThreshold = a.cfg.EndangeredThreshold
	}
	if a.cfg.Workers > 0 {
		opts.Workers = a.cfg.Workers
	}
	return opts
}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
	model  *config.Model
}

// NewApp is the constructor for the main application. The report goes to
// outW and logs go to logW. It panics if the problem cannot be loaded.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.ProblemPath)
	if err != nil {
		// A failure to load the problem is a fatal startup error.
		panic(fmt.Errorf("failed to load problem: %w", err))
	}
	logger.Debug("Problem loaded into unified model.", "tasks", len(model.Tasks), "dependencies", len(model.Dependencies))

	return &App{
		outW:   outW,
		logger: logger,
		cfg:    cfg,
		model:  model,
	}
}

// Model returns the loaded problem. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

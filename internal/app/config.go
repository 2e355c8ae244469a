package app

import (
	"errors"
	"fmt"
)

// Output formats accepted by Config.Output.
const (
	OutputText    = "text"
	OutputJSON    = "json"
	OutputMsgpack = "msgpack"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProblemPath string // hcl file or directory

	LogFormat string
	LogLevel  string

	Output string
	Color  bool

	PublishURL       string
	PublishNamespace string
	PublishEvent     string

	// HistoryPath is a SQLite database that records every run. Empty
	// disables recording.
	HistoryPath string

	// Zero values defer to the problem file, then to the planner defaults.
	EndangeredThreshold float64
	Workers             int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProblemPath == "" {
		return nil, errors.New("ProblemPath is a required configuration field and cannot be empty")
	}
	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	switch cfg.Output {
	case OutputText, OutputJSON, OutputMsgpack:
	default:
		return nil, fmt.Errorf("invalid output format %q: must be 'text', 'json' or 'msgpack'", cfg.Output)
	}
	if cfg.EndangeredThreshold < 0 {
		return nil, fmt.Errorf("endangered threshold must not be negative, got %v", cfg.EndangeredThreshold)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return &cfg, nil
}

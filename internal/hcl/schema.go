package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Horizon      *Horizon      `hcl:"horizon,block"`
	Planner      *Planner      `hcl:"planner,block"`
	Tasks        []*Task       `hcl:"task,block"`
	Dependencies []*Dependency `hcl:"dependency,block"`
	Remain       hcl.Body      `hcl:",remain"`
}

// Horizon represents the `horizon` block.
type Horizon struct {
	Unit  string  `hcl:"unit,optional"`
	Start float64 `hcl:"start"`
	End   float64 `hcl:"end"`
}

// Planner represents the optional `planner` block.
type Planner struct {
	EndangeredThreshold *float64 `hcl:"endangered_threshold,optional"`
	Workers             *int     `hcl:"workers,optional"`
}

// Task represents a `task "id"` block.
type Task struct {
	ID          string        `hcl:"id,label"`
	Size        float64       `hcl:"size"`
	Priority    *int          `hcl:"priority,optional"`
	GapAfter    *float64      `hcl:"gap_after,optional"`
	Constraints []*Constraint `hcl:"constraint,block"`
}

// Constraint represents a `constraint "op"` block. Its leaves are the
// window blocks and the windows, not_before and not_after attributes.
type Constraint struct {
	Op        string         `hcl:"op,label"`
	Windows   hcl.Expression `hcl:"windows,optional"`
	NotBefore *float64       `hcl:"not_before,optional"`
	NotAfter  *float64       `hcl:"not_after,optional"`
	Window    []*Window      `hcl:"window,block"`
	Children  []*Constraint  `hcl:"constraint,block"`
}

// Window represents a `window { start = .. end = .. }` block.
type Window struct {
	Start float64 `hcl:"start"`
	End   float64 `hcl:"end"`
}

// Dependency represents a `dependency "from" "to"` block.
type Dependency struct {
	From string `hcl:"from,label"`
	To   string `hcl:"to,label"`
	Kind string `hcl:"kind,optional"`
}

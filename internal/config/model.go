package config

// Model is the unified, format-agnostic representation of a scheduling
// problem.
type Model struct {
	Horizon      *Horizon
	Planner      Planner
	Tasks        []*Task
	Dependencies []*Dependency
}

// Horizon is the fixed range of the run.
type Horizon struct {
	// Unit names the axis unit, e.g. "second" or "km".
	Unit  string
	Start float64
	End   float64
}

// Planner holds optional tuning from the problem file. Zero values mean
// "use the command line or the built-in default".
type Planner struct {
	EndangeredThreshold float64
	Workers             int
}

// Task is the format-agnostic representation of a `task` block.
type Task struct {
	ID         string
	Size       float64
	Priority   int
	GapAfter   float64
	Constraint *Constraint
	// Source is a human-readable location of the definition.
	Source string
}

// Op is the kind of a constraint node.
type Op string

const (
	OpAnd  Op = "and"
	OpOr   Op = "or"
	OpNot  Op = "not"
	OpLeaf Op = "leaf"
)

// Constraint is one node of a static constraint tree. Every leaf and every
// child becomes a child of the node, in the order leaves first.
type Constraint struct {
	Op       Op
	Leaves   []Leaf
	Children []*Constraint
	Source   string
}

// LeafKind names a built-in static constraint.
type LeafKind string

const (
	LeafWindows   LeafKind = "windows"
	LeafNotBefore LeafKind = "not_before"
	LeafNotAfter  LeafKind = "not_after"
)

// Leaf is a single built-in static constraint.
type Leaf struct {
	Kind LeafKind
	// Windows is set for LeafWindows.
	Windows []Window
	// At is set for LeafNotBefore and LeafNotAfter.
	At float64
}

// Window is a raw [Start, End) pair.
type Window struct {
	Start float64
	End   float64
}

// Dependency is the format-agnostic representation of a `dependency` block.
type Dependency struct {
	From string
	To   string
	// Kind is one of dependence, consecutive or exclusive.
	Kind   string
	Source string
}

// Package metrics computes the earliest start time, deadline and
// flexibility of a task from its feasible windows.
//
// All functions take the static horizon of the run. Passing a shrinking
// "remaining" range instead would change the results between incremental and
// batch evaluation, so callers keep their progress cursor elsewhere.
package metrics

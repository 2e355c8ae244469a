// Package planner is the greedy scheduling loop built on the core packages.
//
// Each step evaluates every pending task against the current schedule:
// dynamic constraints from the index, static windows from the solution space
// and the free axis left by earlier placements. The task with the lowest
// flexibility is placed at its earliest start. Ties go to the higher
// priority, then to the smaller id. Placements are never revisited, so the
// loop ends once no pending task has a feasible start.
package planner

// Package dynamic evaluates constraints that depend on the partial schedule.
//
// A dynamic constraint relates a constrained task to a reference task. The
// built-in kinds are:
//
//	Dependence   the whole range once ref is placed, nothing before
//	Consecutive  from the end of ref's placement, nothing before ref is placed
//	Exclusive    the whole range until ref is placed, nothing after
//
// Index stores one constraint per dependency edge and intersects all edges
// pointing at a task. Evaluation reads the schedule and solution space
// through a Context and never mutates either, so independent targets may be
// evaluated from several goroutines.
package dynamic

// Package schedule holds the placements committed by the planner.
//
// A Schedule guarantees that task ids are unique and that no two placements
// overlap. Add either commits fully or leaves the schedule untouched. There
// is no removal operation; planning is irrevocable.
package schedule

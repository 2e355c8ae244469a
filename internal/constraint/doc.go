// Package constraint implements the static constraint tree.
//
// A tree is built from Leaf nodes, each wrapping a Constraint, combined with
// And, Or and Not. Evaluating a tree over a query range yields the canonical
// interval set where the expression holds:
//
//   - And intersects its children (no children: the whole range)
//   - Or unions its children (no children: the empty set)
//   - Not complements its single child within the range
//
// Static constraints depend only on data fixed before scheduling starts, so
// a tree is typically evaluated once per task over the full horizon (see
// package solution).
package constraint

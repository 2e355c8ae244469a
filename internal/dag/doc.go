// Package dag is a small labelled dependency graph. Nodes are task ids and
// each directed edge from -> to carries a label describing how `to` depends
// on `from`. The dynamic constraint index stores its constraints here and
// the problem loader uses cycle detection to reject orderings that could
// never be satisfied.
package dag

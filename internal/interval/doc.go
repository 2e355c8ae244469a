// Package interval implements half-open interval algebra on a dimensioned
// axis.
//
// Interval is the range [start, end). Set is an immutable canonical sequence
// of intervals (sorted, pairwise non-overlapping) with union, intersection
// and complement. Every function in this package that returns a Set returns
// it in canonical form.
//
// Intervals have a two-field external form, {"start": x, "end": y}, used both
// for JSON and for cty values decoded from configuration.
package interval

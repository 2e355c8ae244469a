// Package quantity provides the dimensioned scalar used as the scheduling axis.
//
// A Quantity carries its unit in its type parameter, so the compiler rejects
// arithmetic between, say, seconds and meters. Units of the same dimension are
// interchangeable through Convert, which applies the linear scale of each unit
// relative to the dimension's base unit.
//
// The engine packages (interval, constraint, solution, schedule, dynamic,
// metrics) are all parameterized over a Unit and never look at the scale or
// symbol themselves.
package quantity

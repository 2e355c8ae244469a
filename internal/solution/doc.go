// Package solution holds the precomputed static feasibility windows of every
// task. A Space is filled once before scheduling starts and is read-only
// afterwards, so it may be shared between goroutines without locking.
package solution

// Package history records planning runs in a SQLite database so that
// schedules can be compared across runs.
package history

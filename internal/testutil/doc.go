// Package testutil holds helpers shared by package tests: a logger-carrying
// context, a thread-safe log buffer and a fixture file writer.
package testutil

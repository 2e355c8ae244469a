// Package app contains the application lifecycle: it loads a problem through
// a config.Loader, plans it and writes the report. It is decoupled from any
// specific entrypoint like a CLI.
package app

// Package logging configures structured logging for the API spy.
//
// It wraps Go's standard log/slog package to provide JSON and text output
// formats, configurable levels, and optional rotating file output. Every
// component tags its logger with a "component" attribute, so a single
// stream can be filtered per subsystem.
package logging

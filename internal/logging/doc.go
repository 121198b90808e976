// Package logging builds the slog.Logger used by scriptkit commands.
//
// Output always goes to the console writer passed to Setup; an optional log
// file receives the same records in append mode, with size-based rotation.
// Loggers are returned to the caller rather than installed globally.
package logging

// Package logger defines the logging contract the scheduling core depends
// on. Concrete backends live under infra.
package logger

// Logger exposes the levels the pipeline logs at. Run summaries go through
// Infof, per-solve diagnostics through Debugw.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// StructuredLogger is the structured subset of Logger, for callers that only
// emit field-based diagnostics.
type StructuredLogger interface {
	Debugw(msg string, fields map[string]any)
}

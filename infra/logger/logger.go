package logger

import corelogger "github.com/prodflow/jobshop/core/logger"

// Logger re-exports the core logging contract so infra packages and cmd can
// construct backends without importing core/logger directly.
type Logger = corelogger.Logger

// NopLogger discards everything. Useful as a default when no logger is wired.
type NopLogger struct{}

var _ Logger = NopLogger{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns the default zerolog-backed Logger for the given component.
// Output format follows the APP_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}

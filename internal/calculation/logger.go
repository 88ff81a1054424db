package calculation

import (
	"fmt"
	"os"
)

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// StderrLogger writes leveled lines to standard error. Used by the CLI's
// debug flag.
type StderrLogger struct{}

func (StderrLogger) Debugf(format string, args ...any) { logLine("DEBUG", format, args...) }
func (StderrLogger) Infof(format string, args ...any)  { logLine("INFO", format, args...) }
func (StderrLogger) Warnf(format string, args ...any)  { logLine("WARN", format, args...) }
func (StderrLogger) Errorf(format string, args ...any) { logLine("ERROR", format, args...) }

func logLine(level, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", level, fmt.Sprintf(format, args...))
}

// Package plog is a thin wrapper over the standard library's log.Logger,
// matching cmd/datalog's own logging idiom (log.Printf/log.Fatalf
// straight from the "log" package — no framework) rather than introducing
// one for this module alone. Verbose output is gated by a bool flag the
// way cmd/datalog gates its own annotation output.
package plog

import (
	"io"
	"log"
	"os"
)

// Logger wraps *log.Logger with a verbose gate: Debugf is a no-op unless
// verbose output was requested, while Infof and Errorf always print.
type Logger struct {
	*log.Logger
	verbose bool
}

// New builds a Logger writing to w with the given prefix. verbose
// controls whether Debugf calls are emitted.
func New(w io.Writer, prefix string, verbose bool) *Logger {
	return &Logger{Logger: log.New(w, prefix, log.LstdFlags), verbose: verbose}
}

// Default builds a Logger writing to stderr with no prefix, mirroring
// cmd/datalog's bare use of the package-level log functions.
func Default(verbose bool) *Logger {
	return New(os.Stderr, "", verbose)
}

// Debugf logs only when the logger was constructed with verbose=true.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.verbose {
		l.Printf(format, args...)
	}
}

// Infof always logs, unconditionally of verbose.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Printf(format, args...)
}

// Errorf always logs; it does not call os.Exit — callers decide whether
// an error is fatal, the way cmd/datalog reserves log.Fatalf for its own
// top-level failures only.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Printf(format, args...)
}

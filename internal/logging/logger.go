// Package logging provides the leveled printf logger shared by the CLI,
// the terminal editor and the example server.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger provides logging methods for components that report failures
// without surfacing them to the user.
type Logger interface {
	Info(format string, args ...interface{})
	Verbose(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// StdLogger implements Logger on top of two writers, stdout/stderr by
// default.
type StdLogger struct {
	mu      sync.Mutex
	out     io.Writer
	err     io.Writer
	verbose bool
	quiet   bool
}

// NewStdLogger creates a new standard logger
func NewStdLogger(verbose, quiet bool) *StdLogger {
	return &StdLogger{out: os.Stdout, err: os.Stderr, verbose: verbose, quiet: quiet}
}

// NewWriterLogger sends every level to w. The terminal editor uses it to
// keep log lines off the screen.
func NewWriterLogger(w io.Writer, verbose bool) *StdLogger {
	return &StdLogger{out: w, err: w, verbose: verbose}
}

// Info logs info messages (unless quiet)
func (l *StdLogger) Info(format string, args ...interface{}) {
	if !l.quiet {
		l.write(l.out, format, args...)
	}
}

// Verbose logs verbose/debug messages (only if verbose and not quiet)
func (l *StdLogger) Verbose(format string, args ...interface{}) {
	if l.verbose && !l.quiet {
		l.write(l.out, "[DEBUG] "+format, args...)
	}
}

// Error logs error messages to stderr
func (l *StdLogger) Error(format string, args ...interface{}) {
	l.write(l.err, "Error: "+format, args...)
}

func (l *StdLogger) write(w io.Writer, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}

// OpenFile returns a logger appending to path, plus the file to close.
func OpenFile(path string, verbose bool) (*StdLogger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return NewWriterLogger(f, verbose), f, nil
}

// Discard drops every message.
var Discard Logger = NewWriterLogger(io.Discard, false)

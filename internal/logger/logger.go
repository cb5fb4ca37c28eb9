// Package logger provides leveled logging for Daybook.
// Loggers are explicitly constructed and injected into components; the
// level is a field of the instance, not process-wide state, so tests can
// run concurrently without cross-contamination.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level controls which messages a Logger emits.
type Level int

// Available levels, most verbose first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger writes leveled, printf-style messages to a single writer.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

// New creates a logger writing to out at the given level.
// A nil out defaults to os.Stderr.
func New(out io.Writer, level Level) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{out: out, level: level}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *Logger {
	return New(io.Discard, LevelError+1)
}

// SetLevel changes the logger's level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Debugf prints a debug message.
func (l *Logger) Debugf(format string, args ...any) {
	l.printf(LevelDebug, "[DEBUG] ", format, args...)
}

// Infof prints an informational message.
func (l *Logger) Infof(format string, args ...any) {
	l.printf(LevelInfo, "[INFO] ", format, args...)
}

// Warnf prints a warning message.
func (l *Logger) Warnf(format string, args ...any) {
	l.printf(LevelWarn, "[WARN] ", format, args...)
}

// Errorf prints an error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.printf(LevelError, "[ERROR] ", format, args...)
}

func (l *Logger) printf(level Level, prefix, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	fmt.Fprintf(l.out, prefix+format+"\n", args...)
}

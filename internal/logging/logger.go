package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Logger writes leveled, colorized output to stderr. Values registered via
// Protect are redacted from every message, so a formatting mistake in a
// caller cannot leak credential material or secret values.
type Logger struct {
	debug   bool
	noColor bool

	mu       sync.RWMutex
	redacted []string
}

// New creates a new logger instance
func New(debug, noColor bool) *Logger {
	return &Logger{
		debug:   debug,
		noColor: noColor,
	}
}

// Protect registers values to be replaced with [REDACTED] in all output.
// Trivially short values are ignored to avoid mangling ordinary text.
func (l *Logger) Protect(values ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, v := range values {
		if len(v) > 3 {
			l.redacted = append(l.redacted, v)
		}
	}
}

func (l *Logger) write(color, prefix, format string, args []interface{}) {
	msg := fmt.Sprintf(format, args...)

	l.mu.RLock()
	msg = Redact(msg, l.redacted)
	l.mu.RUnlock()

	if l.noColor {
		fmt.Fprintf(os.Stderr, "%s %s\n", prefix, msg)
		return
	}
	fmt.Fprintf(os.Stderr, "%s%s\033[0m %s\n", color, prefix, msg)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.write("\033[32m", "✓", format, args)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.write("\033[33m", "⚠", format, args)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.write("\033[31m", "✗", format, args)
}

// Debug logs a debug message if debug mode is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.write("\033[36m", "[DEBUG]", format, args)
}

// Secret represents a value that should be redacted in logs
type Secret string

// String implements the Stringer interface, always returning a redacted value
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements the GoStringer interface for %#v formatting
func (s Secret) GoString() string {
	return "[REDACTED]"
}

// Redact replaces sensitive values in a string with [REDACTED]
func Redact(s string, secrets []string) string {
	result := s
	for _, secret := range secrets {
		if secret != "" && len(secret) > 3 {
			result = strings.ReplaceAll(result, secret, "[REDACTED]")
		}
	}
	return result
}

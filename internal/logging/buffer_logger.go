package logging

import (
	"fmt"
	"strings"
	"sync"
)

// BufferLogger keeps every message in memory with the same prefixes
// ConsoleLogger uses, without styling.
type BufferLogger struct {
	verbose bool
	mu      sync.Mutex
	lines   []string
}

// NewBufferLogger creates an empty BufferLogger.
func NewBufferLogger(verbose bool) *BufferLogger {
	return &BufferLogger{verbose: verbose}
}

func (l *BufferLogger) Verbose(format string, args ...interface{}) {
	if l.verbose {
		l.add("[VERBOSE] ", format, args)
	}
}

func (l *BufferLogger) Info(format string, args ...interface{}) {
	l.add("", format, args)
}

func (l *BufferLogger) Error(format string, args ...interface{}) {
	l.add("[ERROR] ", format, args)
}

func (l *BufferLogger) add(prefix, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, prefix+msg)
}

// Lines returns a copy of the recorded lines.
func (l *BufferLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// String returns all recorded lines, each terminated by a newline.
func (l *BufferLogger) String() string {
	lines := l.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

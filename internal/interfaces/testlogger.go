package interfaces

import (
	"fmt"
	"os"
)

// TestLogger satisfies Logger for tests. Warnings and errors always print so
// a failing test shows what the code complained about; debug and info only
// print when verbose.
type TestLogger struct {
	verbose bool
	scope   []Field
}

func NewTestLogger(verbose bool) *TestLogger {
	return &TestLogger{verbose: verbose}
}

func (tl *TestLogger) print(level, msg string, fields []Field) {
	all := append(append([]Field{}, tl.scope...), fields...)
	fmt.Fprintf(os.Stderr, "[%s] %s %v\n", level, msg, all)
}

func (tl *TestLogger) Debug(msg string, fields ...Field) {
	if tl.verbose {
		tl.print("DEBUG", msg, fields)
	}
}

func (tl *TestLogger) Info(msg string, fields ...Field) {
	if tl.verbose {
		tl.print("INFO", msg, fields)
	}
}

func (tl *TestLogger) Warn(msg string, fields ...Field) {
	tl.print("WARN", msg, fields)
}

func (tl *TestLogger) Error(msg string, fields ...Field) {
	tl.print("ERROR", msg, fields)
}

func (tl *TestLogger) With(fields ...Field) Logger {
	return &TestLogger{
		verbose: tl.verbose,
		scope:   append(append([]Field{}, tl.scope...), fields...),
	}
}

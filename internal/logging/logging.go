// Package logging provides the default JSON-lines logger behind the
// interfaces.Logger contract.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/calder-r/veriscan/internal/interfaces"
)

// Aliases so callers can write logging.Logger / logging.Field without also
// importing the interfaces package.
type (
	Logger = interfaces.Logger
	Field  = interfaces.Field
)

// StdoutLogger prints one JSON object per message. Fields attached with With
// persist onto every message of the child logger.
type StdoutLogger struct {
	out   io.Writer
	scope []Field
}

// NewStdoutLogger creates a logger writing to stdout. component, when
// non-empty, becomes a persistent field.
func NewStdoutLogger(component string) *StdoutLogger {
	l := &StdoutLogger{out: os.Stdout}
	if component != "" {
		l.scope = []Field{{Key: "component", Value: component}}
	}
	return l
}

func (s *StdoutLogger) log(level, msg string, fields []Field) {
	m := make(map[string]any, len(s.scope)+len(fields))
	for _, f := range s.scope {
		m[f.Key] = f.Value
	}
	for _, f := range fields {
		m[f.Key] = f.Value
	}

	entry := struct {
		Level  string         `json:"level"`
		Msg    string         `json:"msg"`
		Time   string         `json:"time"`
		Fields map[string]any `json:"fields,omitempty"`
	}{
		Level:  level,
		Msg:    msg,
		Time:   time.Now().UTC().Format(time.RFC3339),
		Fields: m,
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(s.out, "%s %s %v\n", level, msg, m)
		return
	}
	fmt.Fprintln(s.out, string(encoded))
}

func (s *StdoutLogger) Debug(msg string, fields ...Field) { s.log("debug", msg, fields) }
func (s *StdoutLogger) Info(msg string, fields ...Field)  { s.log("info", msg, fields) }
func (s *StdoutLogger) Warn(msg string, fields ...Field)  { s.log("warn", msg, fields) }
func (s *StdoutLogger) Error(msg string, fields ...Field) { s.log("error", msg, fields) }

// With returns a child logger whose fields are included on every message.
// A repeated key on a message overrides the persistent one.
func (s *StdoutLogger) With(fields ...Field) Logger {
	return &StdoutLogger{
		out:   s.out,
		scope: append(append([]Field{}, s.scope...), fields...),
	}
}

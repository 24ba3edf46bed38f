package interfaces

// Logger is the minimal structured logging contract the rest of the codebase
// is written against. Consumers never construct one; they receive it.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child logger whose fields appear on every message.
	With(fields ...Field) Logger
}

// Field is one structured key/value attachment on a log message.
type Field struct {
	Key   string
	Value any
}

// Package observability defines the logging and metrics hooks of the client.
// Callers plug in their own implementations; the defaults discard everything.
package observability

// Field is one key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// ErrorKey is the field key used for errors.
const ErrorKey = "error"

// Err returns a field carrying err under ErrorKey.
func Err(err error) Field {
	return Field{Key: ErrorKey, Value: err}
}

// Logger receives the client's structured log entries.
//
// Requests are logged at debug level. Data the controller returned that could
// not be mapped onto an entity (a value of the wrong type, an unknown device
// type, a malformed predefined firewall rule) is logged at warn level.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a logger that adds fields to every entry it writes.
	// The receiver is not modified.
	With(fields ...Field) Logger
}

// noopLogger drops every entry.
type noopLogger struct{}

// NoopLogger returns the logger used when Config.Logger is nil.
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NoopLogger() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...Field) {}
func (noopLogger) Info(string, ...Field)  {}
func (noopLogger) Warn(string, ...Field)  {}
func (noopLogger) Error(string, ...Field) {}

//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l noopLogger) With(...Field) Logger { return l }

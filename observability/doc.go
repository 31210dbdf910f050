// Package observability provides interfaces for logging and metrics collection
// in the go-unipy library.
//
// # Logger Interface
//
// The Logger interface supports structured logging with key-value pairs:
//
//	client, err := unipy.NewWithConfig(&unipy.ClientConfig{
//		Server:   "192.168.1.1",
//		Username: "admin",
//		Password: "secret",
//		Logger:   observability.NewZapLogger(zapLogger),
//	})
//
// Besides HTTP traffic, the network service logs field coercion warnings and
// device types it has no dedicated kind for.
//
// # MetricsRecorder Interface
//
// The MetricsRecorder interface tracks:
//   - HTTP request count, status codes, and duration
//   - Retry attempts for failed requests
//   - Rate limiting events and wait times
//   - Error occurrences by type
//
// # Default Behavior
//
// If no logger or metrics recorder is provided, the client uses no-op
// implementations that discard all events.
package observability

package observability

import "time"

// MetricsRecorder receives counters and timings from the HTTP middleware.
// Paths are normalized before recording: MAC addresses, object ids and the
// site name are replaced by placeholders to keep label cardinality bounded.
type MetricsRecorder interface {
	// RecordHTTPRequest is called once per controller response.
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)

	// RecordRetry is called before each re-send of a request that got 429 or 5xx.
	RecordRetry(attempt int, endpoint string)

	// RecordRateLimit is called when the client-side limiter delayed a request.
	RecordRateLimit(endpoint string, wait time.Duration)

	// RecordError is called for failures that produced no response.
	RecordError(operation, errorType string)
}

// noopMetricsRecorder drops every measurement.
type noopMetricsRecorder struct{}

// NoopMetricsRecorder returns the recorder used when Config.Metrics is nil.
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NoopMetricsRecorder() MetricsRecorder {
	return noopMetricsRecorder{}
}

func (noopMetricsRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}
func (noopMetricsRecorder) RecordRetry(int, string)                              {}
func (noopMetricsRecorder) RecordRateLimit(string, time.Duration)                {}
func (noopMetricsRecorder) RecordError(string, string)                           {}

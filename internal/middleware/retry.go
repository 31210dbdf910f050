// Package middleware provides the RoundTripper layers of a controller connection.
package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-unipy/internal/retry"
	"github.com/lexfrei/go-unipy/observability"
)

// RetryConfig configures the retry middleware.
type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	Logger      observability.Logger
	Metrics     observability.MetricsRecorder
}

// Retry returns a middleware that re-sends requests answered with 429 or 5xx,
// waiting with exponential backoff (or Retry-After when given).
//
// Transport failures are returned immediately and never re-sent; the
// connection reports them as transport errors. With MaxRetries <= 0 the
// middleware is a pass-through.
func Retry(cfg RetryConfig) func(http.RoundTripper) http.RoundTripper {
	if cfg.Logger == nil {
		cfg.Logger = observability.NoopLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		if cfg.MaxRetries <= 0 {
			return next
		}

		return &retryTransport{
			next:        next,
			maxRetries:  cfg.MaxRetries,
			initialWait: cfg.InitialWait,
			logger:      cfg.Logger,
			metrics:     cfg.Metrics,
		}
	}
}

type retryTransport struct {
	next        http.RoundTripper
	maxRetries  int
	initialWait time.Duration
	logger      observability.Logger
	metrics     observability.MetricsRecorder
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	// Buffer the body so it can be replayed
	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, errors.Wrap(err, "failed to read request body")
		}
	}

	for attempt := 0; ; attempt++ {
		if bodyBytes != nil {
			req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		resp, err := t.next.RoundTrip(req)
		if err != nil {
			//nolint:wrapcheck // Transport failures are classified by the connection
			return nil, err
		}

		if !retry.ShouldRetry(resp.StatusCode) || attempt == t.maxRetries {
			return resp, nil
		}

		t.logger.Warn("retrying request",
			observability.Field{Key: "attempt", Value: attempt + 1},
			observability.Field{Key: "max_retries", Value: t.maxRetries},
			observability.Field{Key: "status", Value: resp.StatusCode},
			observability.Field{Key: "path", Value: req.URL.Path},
			observability.Field{Key: "method", Value: req.Method},
		)

		t.metrics.RecordRetry(attempt+1, normalizePath(req.URL.Path))

		waitTime := t.calculateWait(attempt, resp)
		resp.Body.Close()

		select {
		case <-time.After(waitTime):
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "context canceled during retry wait")
		}
	}
}

// calculateWait returns Retry-After for 429 responses when present, otherwise
// initialWait * 2^attempt.
func (t *retryTransport) calculateWait(attempt int, resp *http.Response) time.Duration {
	if resp.StatusCode == http.StatusTooManyRequests {
		if wait := retry.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()); wait > 0 {
			return wait
		}
	}

	return t.initialWait * time.Duration(1<<attempt)
}

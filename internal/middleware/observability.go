package middleware

import (
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/lexfrei/go-unipy/observability"
)

// Observability returns a middleware that logs and records metrics for HTTP requests.
func Observability(logger observability.Logger, metrics observability.MetricsRecorder) func(http.RoundTripper) http.RoundTripper {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &observabilityTransport{
			next:    next,
			logger:  logger,
			metrics: metrics,
		}
	}
}

type observabilityTransport struct {
	next    http.RoundTripper
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

func (t *observabilityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	path := normalizePath(req.URL.Path)

	t.logger.Debug("http request started",
		observability.Field{Key: "method", Value: req.Method},
		observability.Field{Key: "path", Value: req.URL.Path},
	)

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		t.logger.Error("http request failed",
			observability.Field{Key: "method", Value: req.Method},
			observability.Field{Key: "path", Value: req.URL.Path},
			observability.Field{Key: "duration", Value: duration},
			observability.Err(err),
		)

		t.metrics.RecordError("http_request", "TransportError")

		//nolint:wrapcheck // Observability middleware logs error but passes it through unchanged
		return nil, err
	}

	fields := []observability.Field{
		{Key: "method", Value: req.Method},
		{Key: "path", Value: req.URL.Path},
		{Key: "status", Value: resp.StatusCode},
		{Key: "duration", Value: duration},
	}

	if resp.StatusCode >= http.StatusBadRequest {
		t.logger.Warn("http request completed with error", fields...)
	} else {
		t.logger.Debug("http request completed", fields...)
	}

	t.metrics.RecordHTTPRequest(req.Method, path, resp.StatusCode, duration)

	return resp, nil
}

var (
	// macPattern matches device MAC addresses in stat/device/{mac}.
	macPattern = regexp.MustCompile(`(?i)[0-9a-f]{2}(?::[0-9a-f]{2}){5}`)
	// objectIDPattern matches the 24 hex digit identifiers of REST resources.
	objectIDPattern = regexp.MustCompile(`(?i)\b[0-9a-f]{24}\b`)
	// siteNamePattern matches the site segment of v1 (/s/{site}/) and v2 (/site/{site}/) paths.
	siteNamePattern = regexp.MustCompile(`/(s|site)/[^/]+(/|$)`)

	normalizedPathCache sync.Map
)

// normalizePath replaces dynamic path segments with placeholders to keep
// metric label cardinality bounded.
//
// Examples:
//   - /proxy/network/api/s/default/stat/device/fc:ec:da:01:02:03 → /proxy/network/api/s/:site/stat/device/:mac
//   - /proxy/network/api/s/office/rest/firewallrule/5f1a2b3c4d5e6f7081920a1b → /proxy/network/api/s/:site/rest/firewallrule/:id
//   - /proxy/network/v2/api/site/default/clients/active → /proxy/network/v2/api/site/:site/clients/active
func normalizePath(path string) string {
	if cached, ok := normalizedPathCache.Load(path); ok {
		//nolint:forcetypeassert // Cache only stores strings
		return cached.(string)
	}

	normalized := macPattern.ReplaceAllString(path, ":mac")
	normalized = objectIDPattern.ReplaceAllString(normalized, ":id")
	normalized = siteNamePattern.ReplaceAllString(normalized, "/$1/:site$2")

	normalizedPathCache.Store(path, normalized)

	return normalized
}

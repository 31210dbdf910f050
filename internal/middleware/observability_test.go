package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexfrei/go-unipy/observability"
)

type recordedRequest struct {
	method string
	path   string
	status int
}

type recordingMetrics struct {
	mu        sync.Mutex
	requests  []recordedRequest
	errors    []string
	retries   []int
	rateWaits int
}

func (m *recordingMetrics) RecordHTTPRequest(method, path string, statusCode int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, recordedRequest{method: method, path: path, status: statusCode})
}

func (m *recordingMetrics) RecordRetry(attempt int, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retries = append(m.retries, attempt)
}

func (m *recordingMetrics) RecordRateLimit(string, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateWaits++
}

func (m *recordingMetrics) RecordError(_, errorType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, errorType)
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{
			path: "/proxy/network/api/s/default/stat/device",
			want: "/proxy/network/api/s/:site/stat/device",
		},
		{
			path: "/proxy/network/api/s/default/stat/device/FC:EC:DA:01:02:03",
			want: "/proxy/network/api/s/:site/stat/device/:mac",
		},
		{
			path: "/proxy/network/api/s/office/rest/firewallrule/5f1a2b3c4d5e6f7081920a1b",
			want: "/proxy/network/api/s/:site/rest/firewallrule/:id",
		},
		{
			path: "/proxy/network/v2/api/site/default/clients/active",
			want: "/proxy/network/v2/api/site/:site/clients/active",
		},
		{
			path: "/proxy/network/api/self/sites",
			want: "/proxy/network/api/self/sites",
		},
		{
			path: "/api/auth/login",
			want: "/api/auth/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizePath(tt.path))
		})
	}
}

func TestObservabilityRecordsRequest(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	metrics := &recordingMetrics{}
	transport := Observability(observability.NoopLogger(), metrics)(http.DefaultTransport)

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/proxy/network/api/s/default/rest/wlanconf", nil)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Len(t, metrics.requests, 1)
	assert.Equal(t, recordedRequest{
		method: http.MethodGet,
		path:   "/proxy/network/api/s/:site/rest/wlanconf",
		status: http.StatusForbidden,
	}, metrics.requests[0])
}

func TestObservabilityRecordsTransportError(t *testing.T) {
	t.Parallel()

	failing := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	metrics := &recordingMetrics{}
	transport := Observability(nil, metrics)(failing)

	req, _ := http.NewRequest(http.MethodGet, "https://controller.invalid/api/auth/login", nil)
	_, err := transport.RoundTrip(req)
	require.Error(t, err)

	assert.Equal(t, []string{"TransportError"}, metrics.errors)
	assert.Empty(t, metrics.requests)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func BenchmarkNormalizePath(b *testing.B) {
	path := "/proxy/network/api/s/default/stat/device/fc:ec:da:01:02:03"

	for range b.N {
		normalizePath(path)
	}
}

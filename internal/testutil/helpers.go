// Package testutil provides common testing utilities and helpers.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewMockServer creates a test HTTP server with predefined response.
// It validates the request path, then returns the specified response.
func NewMockServer(t *testing.T, expectedPath, responseBody string, statusCode int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, expectedPath, r.URL.Path, "Request path should match expected")
		WriteJSON(t, w, statusCode, responseBody)
	}))
	t.Cleanup(server.Close)

	return server
}

// Response is one canned reply of a sequence server.
type Response struct {
	Body       string
	StatusCode int
	Header     http.Header
}

// NewMockServerSequence creates a test server that returns responses in sequence.
// Each call to the server returns the next response in the slice.
// Useful for testing retry logic.
func NewMockServerSequence(t *testing.T, responses []Response) *httptest.Server {
	t.Helper()

	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if callCount >= len(responses) {
			t.Errorf("More requests than configured responses (got %d requests, have %d responses)",
				callCount+1, len(responses))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		resp := responses[callCount]
		callCount++

		for key, values := range resp.Header {
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}
		WriteJSON(t, w, resp.StatusCode, resp.Body)
	}))
	t.Cleanup(server.Close)

	return server
}

// WriteJSON writes a JSON response body with the given status.
func WriteJSON(t *testing.T, w http.ResponseWriter, statusCode int, body string) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, err := w.Write([]byte(body))
	require.NoError(t, err, "Failed to write response body")
}

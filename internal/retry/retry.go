// Package retry classifies controller responses that may be re-sent.
package retry

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ShouldRetry reports whether a response status may be re-sent:
// 429 (the controller is shedding load) and any 5xx.
//
// Authorization failures (401, 403) are never retried; they are surfaced to the
// caller as permission errors.
func ShouldRetry(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError || statusCode == http.StatusTooManyRequests
}

// ParseRetryAfter parses the Retry-After header relative to now.
// Both forms from RFC 9110 are accepted: delay-seconds ("120") and an
// HTTP-date. Returns 0 if the header is empty, malformed or already elapsed.
func ParseRetryAfter(header string, now time.Time) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil {
		if seconds <= 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	when, err := http.ParseTime(header)
	if err != nil {
		return 0
	}

	if wait := when.Sub(now); wait > 0 {
		return wait
	}

	return 0
}

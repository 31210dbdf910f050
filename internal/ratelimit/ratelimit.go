// Package ratelimit builds the token bucket used to pace controller requests.
package ratelimit

import "golang.org/x/time/rate"

// NewRateLimiter creates a limiter allowing requestsPerMinute requests per
// minute with a burst of the same size. A non-positive rate disables limiting
// and returns nil, which the rate limit middleware treats as "no limiter".
func NewRateLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute)
}

package middleware

import (
	"crypto/tls"
	"net/http"
)

// TLSConfig returns a middleware that replaces the TLS configuration of the
// innermost *http.Transport. Controllers usually ship self-signed
// certificates, so callers opt into InsecureSkipVerify through this.
func TLSConfig(config *tls.Config) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		transport, ok := next.(*http.Transport)
		if !ok {
			defaultTransport, ok := http.DefaultTransport.(*http.Transport)
			if !ok {
				return next
			}
			transport = defaultTransport.Clone()
			transport.ForceAttemptHTTP2 = true
		} else {
			transport = transport.Clone()
		}

		transport.TLSClientConfig = config

		return transport
	}
}

// InsecureSkipVerify returns a TLS config that skips certificate verification.
func InsecureSkipVerify() *tls.Config {
	return &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // Opt-in for self-signed controller certificates
	}
}

// Package httpclient builds the http.Client a controller connection talks through.
package httpclient

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/publicsuffix"
)

// DefaultTimeout is applied when no timeout option is given.
const DefaultTimeout = 30 * time.Second

// Client is an HTTP client that supports middleware chaining.
type Client struct {
	base       *http.Client
	middleware []Middleware
	withJar    bool
}

// Middleware wraps an http.RoundTripper to add behavior.
// Middleware is applied in order: first middleware is outermost.
type Middleware func(http.RoundTripper) http.RoundTripper

// New creates a new HTTP client with the given options.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		base: &http.Client{
			Timeout: DefaultTimeout,
		},
		middleware: []Middleware{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.withJar && c.base.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create cookie jar")
		}
		c.base.Jar = jar
	}

	if len(c.middleware) > 0 {
		transport := c.base.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}

		// Reverse order so the first middleware is outermost
		for i := len(c.middleware) - 1; i >= 0; i-- {
			transport = c.middleware[i](transport)
		}

		c.base.Transport = transport
	}

	return c, nil
}

// Do executes an HTTP request using the configured middleware chain.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	//nolint:wrapcheck // Transport errors are classified by the caller
	return c.base.Do(req)
}

// HTTPClient returns the underlying http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.base
}

// Package connection manages an authenticated session with a UniFi controller
// and issues raw JSON requests against it.
//
// A Connection authenticates either with a username and password (session
// cookie plus anti-forgery token) or with an API key:
//
//	conn, err := connection.New("unifi.local", "admin", "secret")
//	if err != nil {
//	    return err
//	}
//	if err := conn.Login(ctx); err != nil {
//	    return err
//	}
//	defer conn.Logout(ctx)
//
//	resp, err := conn.Request(ctx, http.MethodGet, "proxy/network/api/self/sites", nil)
//
// A Connection is not safe for concurrent use: the session token is mutable
// per-connection state. Serialize calls or use one Connection per goroutine.
package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-unipy/internal/httpclient"
	"github.com/lexfrei/go-unipy/internal/middleware"
	"github.com/lexfrei/go-unipy/internal/ratelimit"
	"github.com/lexfrei/go-unipy/observability"
)

const (
	loginEndpoint  = "api/auth/login"
	logoutEndpoint = "api/auth/logout"
)

// Connection is an authenticated session with a controller.
type Connection struct {
	baseURL  string
	username string
	password string
	apiKey   string

	client  *httpclient.Client
	session *session
	logger  observability.Logger
}

// session holds the anti-forgery token sent on every request.
type session struct {
	token    string
	loggedIn bool
}

func (s *session) Token() string {
	return s.token
}

func (s *session) SetToken(token string) {
	s.token = token
}

func (s *session) reset() {
	s.token = ""
	s.loggedIn = false
}

// New creates a connection using a username and password with default settings.
//
// Default settings:
//   - Rate limit: 1000 requests/minute
//   - Retries: disabled
//   - Timeout: 30 seconds
//   - TLS verification: enabled
//
// For custom configuration, use NewWithConfig.
func New(server, username, password string) (*Connection, error) {
	return NewWithConfig(&Config{
		Server:   server,
		Username: username,
		Password: password,
	})
}

// NewWithConfig creates a connection with custom configuration.
//
// Example:
//
//	conn, err := connection.NewWithConfig(&connection.Config{
//	    Server:             "https://192.168.1.1",
//	    APIKey:             "your-api-key",
//	    InsecureSkipVerify: true,
//	    MaxRetries:         3,
//	})
func NewWithConfig(cfg *Config) (*Connection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.setDefaults()

	base, err := baseURL(cfg.Server)
	if err != nil {
		return nil, err
	}

	sess := &session{}

	middlewares := []httpclient.Middleware{
		middleware.Observability(cfg.Logger, cfg.Metrics),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: ratelimit.NewRateLimiter(cfg.RateLimitPerMinute),
			Logger:  cfg.Logger,
			Metrics: cfg.Metrics,
		}),
		middleware.Retry(middleware.RetryConfig{
			MaxRetries:  cfg.MaxRetries,
			InitialWait: cfg.RetryWaitTime,
			Logger:      cfg.Logger,
			Metrics:     cfg.Metrics,
		}),
	}

	if cfg.APIKey != "" {
		middlewares = append(middlewares, middleware.Auth(middleware.APIKeyHeader, cfg.APIKey))
	} else {
		middlewares = append(middlewares, middleware.CSRF(sess))
	}

	// TLS must be innermost: it replaces the transport instead of wrapping it
	if cfg.InsecureSkipVerify {
		middlewares = append(middlewares, middleware.TLSConfig(middleware.InsecureSkipVerify()))
	}

	opts := []httpclient.Option{
		httpclient.WithHTTPClient(cfg.HTTPClient),
		httpclient.WithMiddleware(middlewares...),
	}
	if cfg.HTTPClient == nil {
		opts = append(opts, httpclient.WithTimeout(cfg.Timeout))
	}
	if cfg.APIKey == "" {
		opts = append(opts, httpclient.WithCookieJar())
	}

	client, err := httpclient.New(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create HTTP client")
	}

	return &Connection{
		baseURL:  base,
		username: cfg.Username,
		password: cfg.Password,
		apiKey:   cfg.APIKey,
		client:   client,
		session:  sess,
		logger:   cfg.Logger.With(observability.Field{Key: "server", Value: base}),
	}, nil
}

// BaseURL returns the URL all endpoints are resolved against.
func (c *Connection) BaseURL() string {
	return c.baseURL
}

// LoggedIn reports whether the connection holds an authenticated session.
func (c *Connection) LoggedIn() bool {
	return c.session.loggedIn
}

// Login authenticates against the controller.
// With a username and password it posts the credentials and stores the
// anti-forgery token returned in the X-Csrf-Token header; the session cookie
// is kept in the connection's cookie jar. With an API key there is no session
// and Login only marks the connection as authenticated.
//
// On failure the token is cleared and the returned error matches ErrLoginFailed.
func (c *Connection) Login(ctx context.Context) error {
	if c.apiKey != "" {
		c.session.loggedIn = true
		return nil
	}

	credentials := map[string]string{
		"username": c.username,
		"password": c.password,
	}

	resp, err := c.Request(ctx, http.MethodPost, loginEndpoint, credentials)
	if err == nil && !isSuccess(resp.StatusCode()) {
		err = errors.Newf("API error: status=%d", resp.StatusCode())
	}
	if err != nil {
		c.session.reset()
		c.logger.Warn("login failed", observability.Err(err))

		return errors.Join(ErrLoginFailed, errors.Wrap(err, "failed to log in"))
	}

	c.session.token = resp.Header().Get(middleware.CSRFHeader)
	c.session.loggedIn = true
	c.logger.Debug("logged in", observability.Field{Key: "username", Value: c.username})

	return nil
}

// Logout ends the session. It does nothing when not logged in.
// The local session state is cleared even when the request fails.
func (c *Connection) Logout(ctx context.Context) error {
	if !c.session.loggedIn {
		return nil
	}

	if c.apiKey != "" {
		c.session.reset()
		return nil
	}

	resp, err := c.Request(ctx, http.MethodPost, logoutEndpoint, nil)
	c.session.reset()
	if err != nil {
		return errors.Wrap(err, "failed to log out")
	}
	if !isSuccess(resp.StatusCode()) {
		return errors.Newf("failed to log out: API error: status=%d", resp.StatusCode())
	}

	c.logger.Debug("logged out")

	return nil
}

// EnsureLoggedIn logs in unless the connection is already authenticated.
func (c *Connection) EnsureLoggedIn(ctx context.Context) error {
	if c.session.loggedIn {
		return nil
	}

	return c.Login(ctx)
}

// Request sends a request to {base}/{endpoint} and reads the whole response.
// A non-nil body is sent as JSON.
//
// Errors:
//   - the controller could not be reached: ErrTransport
//   - HTTP 401 or 403: ErrPermissionDenied
//
// Any other status is returned to the caller as-is.
func (c *Connection) Request(ctx context.Context, method, endpoint string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	url := c.baseURL + "/" + strings.TrimPrefix(endpoint, "/")

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrTransport, errors.Wrapf(err, "%s %s", method, endpoint))
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Join(ErrTransport, errors.Wrapf(err, "%s %s: read body", method, endpoint))
	}

	if httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden {
		return nil, errors.Wrapf(ErrPermissionDenied, "%s %s: status=%d", method, endpoint, httpResp.StatusCode)
	}

	return &Response{
		statusCode: httpResp.StatusCode,
		header:     httpResp.Header,
		body:       data,
	}, nil
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

package connection

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/lexfrei/go-unipy/observability"
)

const (
	// DefaultRateLimit is the default rate limit (requests per minute).
	DefaultRateLimit = 1000

	// DefaultRetryWaitTime is the initial wait between retries.
	DefaultRetryWaitTime = 1 * time.Second

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for a controller connection.
type Config struct {
	// Server is the controller address: a host, host:port or an absolute URL.
	// https is assumed when no scheme is given.
	Server string `validate:"required"`

	// Username and Password are used for session login.
	Username string `validate:"required_without=APIKey"`
	Password string `validate:"required_without=APIKey"`

	// APIKey authenticates with the X-API-KEY header instead of a session.
	APIKey string

	// InsecureSkipVerify disables TLS certificate verification (self-signed certs)
	InsecureSkipVerify bool

	// HTTPClient is the HTTP client to use (optional)
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout (defaults to 30s)
	Timeout time.Duration `validate:"gte=0"`

	// RateLimitPerMinute sets the rate limit (defaults to 1000)
	RateLimitPerMinute int `validate:"gte=0"`

	// MaxRetries sets the number of retries on 429 and 5xx responses.
	// Zero disables retries.
	MaxRetries int `validate:"gte=0"`

	// RetryWaitTime sets the initial wait between retries (defaults to 1s)
	RetryWaitTime time.Duration `validate:"gte=0"`

	// Logger receives request and session logs (optional, defaults to no-op)
	Logger observability.Logger

	// Metrics receives HTTP, retry and rate limit metrics (optional, defaults to no-op)
	Metrics observability.MetricsRecorder
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is required")
	}

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.Newf("invalid config: %s failed on %q", fe.Field(), fe.Tag())
		}

		return errors.Wrap(err, "invalid config")
	}

	if _, err := baseURL(c.Server); err != nil {
		return err
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = DefaultRateLimit
	}
	if c.RetryWaitTime == 0 {
		c.RetryWaitTime = DefaultRetryWaitTime
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = observability.NoopLogger()
	}
	if c.Metrics == nil {
		c.Metrics = observability.NoopMetricsRecorder()
	}
}

// baseURL turns a server address into the base URL requests are built on.
func baseURL(server string) (string, error) {
	server = strings.TrimSpace(server)
	if !strings.Contains(server, "://") {
		server = "https://" + server
	}

	parsed, err := url.Parse(server)
	if err != nil {
		return "", errors.Wrapf(err, "invalid server address %q", server)
	}
	if parsed.Host == "" {
		return "", errors.Newf("invalid server address %q: missing host", server)
	}

	return strings.TrimRight(server, "/"), nil
}

package connection

import "github.com/cockroachdb/errors"

var (
	// ErrPermissionDenied is returned when the controller rejects the
	// credentials or the session (HTTP 401/403).
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTransport is returned when the controller could not be reached:
	// connection refused, DNS failure, TLS failure, timeout or cancellation.
	ErrTransport = errors.New("transport error")

	// ErrLoginFailed is joined with the cause of every error returned by Login.
	ErrLoginFailed = errors.New("login failed")
)

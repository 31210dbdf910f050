package middleware

import (
	"maps"
	"net/http"
)

const (
	// APIKeyHeader carries a controller API key.
	//nolint:canonicalheader // X-API-KEY is the header name the controller documents
	APIKeyHeader = "X-API-KEY"
	// CSRFHeader carries the anti-forgery token of a session login.
	CSRFHeader = "X-Csrf-Token"
	// UpdatedCSRFHeader is set by the controller when it rotates the token.
	UpdatedCSRFHeader = "X-Updated-Csrf-Token"
)

// Auth returns a middleware that adds a static authentication header to all requests.
func Auth(headerName, headerValue string) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return &authTransport{
			next:        next,
			headerName:  headerName,
			headerValue: headerValue,
		}
	}
}

type authTransport struct {
	next        http.RoundTripper
	headerName  string
	headerValue string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = cloneRequest(req)
	req.Header.Set(t.headerName, t.headerValue)

	//nolint:wrapcheck // Middleware passes through errors from next handler in chain
	return t.next.RoundTrip(req)
}

// TokenStore holds the anti-forgery token of a logged in session.
type TokenStore interface {
	Token() string
	SetToken(token string)
}

// CSRF returns a middleware that sends the stored session token on every
// request and picks up rotated tokens from responses.
// Nothing is sent while the store is empty.
func CSRF(store TokenStore) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return &csrfTransport{next: next, store: store}
	}
}

type csrfTransport struct {
	next  http.RoundTripper
	store TokenStore
}

func (t *csrfTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.store.Token(); token != "" {
		req = cloneRequest(req)
		req.Header.Set(CSRFHeader, token)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		//nolint:wrapcheck // Middleware passes through errors from next handler in chain
		return nil, err
	}

	if updated := resp.Header.Get(UpdatedCSRFHeader); updated != "" && t.store.Token() != "" {
		t.store.SetToken(updated)
	}

	return resp, nil
}

// cloneRequest creates a shallow copy of the request with a cloned header map.
func cloneRequest(req *http.Request) *http.Request {
	r := new(http.Request)
	*r = *req
	r.Header = make(http.Header, len(req.Header))
	maps.Copy(r.Header, req.Header)
	return r
}

package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Default credentials and session values of a mock controller.
const (
	Username     = "admin"
	Password     = "secret"
	CSRFToken    = "csrf-token-1"
	SessionValue = "session-1"
	cookieName   = "TOKEN"
)

// Request is what a mock controller recorded about one incoming request.
type Request struct {
	Method    string
	Path      string
	Query     string
	CSRFToken string
	Session   bool
}

// Controller is an httptest server that mimics the session handling of a
// UniFi OS controller: POST /api/auth/login sets a session cookie and returns
// an X-Csrf-Token header, POST /api/auth/logout ends the session.
// Other paths are served from registered handlers and, unless Open is set,
// rejected with 401 when the request lacks the session cookie or token.
type Controller struct {
	Server *httptest.Server

	// Open disables the session check for registered handlers.
	Open bool

	t        *testing.T
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []Request
}

// NewController starts a mock controller that is closed with the test.
func NewController(t *testing.T) *Controller {
	t.Helper()

	c := &Controller{
		t:        t,
		handlers: make(map[string]http.HandlerFunc),
	}
	c.Server = httptest.NewServer(http.HandlerFunc(c.serve))
	t.Cleanup(c.Server.Close)

	return c
}

// URL returns the base URL of the controller.
func (c *Controller) URL() string {
	return c.Server.URL
}

// Handle registers a handler for a path (without query).
func (c *Controller) Handle(path string, handler http.HandlerFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handlers[path] = handler
}

// HandleJSON registers a fixed JSON response for a path.
func (c *Controller) HandleJSON(path string, statusCode int, body string) {
	c.Handle(path, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(c.t, w, statusCode, body)
	})
}

// HandleData registers a v1 envelope response wrapping data.
func (c *Controller) HandleData(path, data string) {
	c.HandleJSON(path, http.StatusOK, `{"meta":{"rc":"ok"},"data":`+data+`}`)
}

// Requests returns the requests recorded so far.
func (c *Controller) Requests() []Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Request(nil), c.requests...)
}

// Paths returns the paths of the recorded requests in order.
func (c *Controller) Paths() []string {
	requests := c.Requests()
	paths := make([]string, 0, len(requests))
	for _, r := range requests {
		paths = append(paths, r.Path)
	}

	return paths
}

func (c *Controller) serve(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(cookieName)
	hasSession := err == nil && cookie.Value == SessionValue

	c.mu.Lock()
	c.requests = append(c.requests, Request{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.RawQuery,
		CSRFToken: r.Header.Get("X-Csrf-Token"),
		Session:   hasSession,
	})
	handler, ok := c.handlers[r.URL.Path]
	open := c.Open
	c.mu.Unlock()

	switch r.URL.Path {
	case "/api/auth/login":
		c.login(w, r)
		return
	case "/api/auth/logout":
		http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1})
		WriteJSON(c.t, w, http.StatusOK, `{}`)
		return
	}

	if !ok {
		WriteJSON(c.t, w, http.StatusNotFound, `{"meta":{"rc":"error","msg":"api.err.NotFound"},"data":[]}`)
		return
	}

	if !open && (!hasSession || r.Header.Get("X-Csrf-Token") != CSRFToken) {
		WriteJSON(c.t, w, http.StatusUnauthorized, `{"meta":{"rc":"error","msg":"api.err.LoginRequired"},"data":[]}`)
		return
	}

	handler(w, r)
}

func (c *Controller) login(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if r.Method != http.MethodPost || json.NewDecoder(r.Body).Decode(&credentials) != nil {
		WriteJSON(c.t, w, http.StatusBadRequest, `{}`)
		return
	}

	if credentials.Username != Username || credentials.Password != Password {
		WriteJSON(c.t, w, http.StatusUnauthorized, `{"errors":["Invalid username or password"]}`)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: SessionValue, Path: "/", HttpOnly: true})
	w.Header().Set("X-Csrf-Token", CSRFToken)
	WriteJSON(c.t, w, http.StatusOK, `{"username":"admin"}`)
}

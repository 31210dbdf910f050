package connection_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexfrei/go-unipy/connection"
	"github.com/lexfrei/go-unipy/internal/testutil"
)

func newSessionConnection(t *testing.T, ctrl *testutil.Controller) *connection.Connection {
	t.Helper()

	conn, err := connection.New(ctrl.URL(), testutil.Username, testutil.Password)
	require.NoError(t, err)

	return conn
}

func TestNewWithConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *connection.Config
		wantErr bool
	}{
		{name: "nil config", cfg: nil, wantErr: true},
		{name: "missing server", cfg: &connection.Config{Username: "u", Password: "p"}, wantErr: true},
		{name: "missing password", cfg: &connection.Config{Server: "unifi.local", Username: "u"}, wantErr: true},
		{name: "api key only", cfg: &connection.Config{Server: "unifi.local", APIKey: "key"}},
		{name: "credentials", cfg: &connection.Config{Server: "unifi.local:8443", Username: "u", Password: "p"}},
		{name: "negative retries", cfg: &connection.Config{Server: "unifi.local", APIKey: "key", MaxRetries: -1}, wantErr: true},
		{name: "no host", cfg: &connection.Config{Server: "https://", APIKey: "key"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conn, err := connection.NewWithConfig(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, conn)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, conn)
		})
	}
}

func TestBaseURL(t *testing.T) {
	t.Parallel()

	conn, err := connection.New("192.168.1.1", "u", "p")
	require.NoError(t, err)
	assert.Equal(t, "https://192.168.1.1", conn.BaseURL())

	conn, err = connection.New("http://unifi.local:8080/", "u", "p")
	require.NoError(t, err)
	assert.Equal(t, "http://unifi.local:8080", conn.BaseURL())
}

func TestLoginStoresTokenAndSendsIt(t *testing.T) {
	t.Parallel()

	ctrl := testutil.NewController(t)
	ctrl.HandleData("/proxy/network/api/self/sites", `[]`)

	conn := newSessionConnection(t, ctrl)
	ctx := context.Background()

	assert.False(t, conn.LoggedIn())
	require.NoError(t, conn.Login(ctx))
	assert.True(t, conn.LoggedIn())

	resp, err := conn.Request(ctx, http.MethodGet, "proxy/network/api/self/sites", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	requests := ctrl.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "/api/auth/login", requests[0].Path)
	assert.Empty(t, requests[0].CSRFToken)
	assert.Equal(t, testutil.CSRFToken, requests[1].CSRFToken)
	assert.True(t, requests[1].Session)
}

func TestLoginFailureClearsSession(t *testing.T) {
	t.Parallel()

	ctrl := testutil.NewController(t)

	conn, err := connection.New(ctrl.URL(), testutil.Username, "wrong")
	require.NoError(t, err)

	err = conn.Login(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, connection.ErrLoginFailed)
	assert.ErrorIs(t, err, connection.ErrPermissionDenied)
	assert.False(t, conn.LoggedIn())
}

func TestLogout(t *testing.T) {
	t.Parallel()

	ctrl := testutil.NewController(t)
	ctrl.HandleData("/proxy/network/api/self/sites", `[]`)

	conn := newSessionConnection(t, ctrl)
	ctx := context.Background()

	// Not logged in: no request
	require.NoError(t, conn.Logout(ctx))
	assert.Empty(t, ctrl.Requests())

	require.NoError(t, conn.Login(ctx))
	require.NoError(t, conn.Logout(ctx))
	assert.False(t, conn.LoggedIn())
	assert.Equal(t, []string{"/api/auth/login", "/api/auth/logout"}, ctrl.Paths())

	_, err := conn.Request(ctx, http.MethodGet, "proxy/network/api/self/sites", nil)
	assert.ErrorIs(t, err, connection.ErrPermissionDenied)
}

func TestEnsureLoggedIn(t *testing.T) {
	t.Parallel()

	ctrl := testutil.NewController(t)
	conn := newSessionConnection(t, ctrl)
	ctx := context.Background()

	require.NoError(t, conn.EnsureLoggedIn(ctx))
	require.NoError(t, conn.EnsureLoggedIn(ctx))
	assert.Equal(t, []string{"/api/auth/login"}, ctrl.Paths())
}

func TestRequestForbidden(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServer(t, "/proxy/network/api/s/default/stat/device", `{}`, http.StatusForbidden)

	conn, err := connection.New(server.URL, "u", "p")
	require.NoError(t, err)

	resp, err := conn.Request(context.Background(), http.MethodGet, "proxy/network/api/s/default/stat/device", nil)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, connection.ErrPermissionDenied)
	assert.NotErrorIs(t, err, connection.ErrTransport)
}

func TestRequestPassesOtherStatuses(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServer(t, "/missing", `{"meta":{"rc":"error"}}`, http.StatusNotFound)

	conn, err := connection.New(server.URL, "u", "p")
	require.NoError(t, err)

	resp, err := conn.Request(context.Background(), http.MethodGet, "/missing", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.JSONEq(t, `{"meta":{"rc":"error"}}`, string(resp.Body()))
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
}

func TestRequestTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	conn, err := connection.New(url, "u", "p")
	require.NoError(t, err)

	_, err = conn.Request(context.Background(), http.MethodGet, "api/self", nil)
	assert.ErrorIs(t, err, connection.ErrTransport)
	assert.NotErrorIs(t, err, connection.ErrPermissionDenied)

	err = conn.Login(context.Background())
	assert.ErrorIs(t, err, connection.ErrLoginFailed)
	assert.ErrorIs(t, err, connection.ErrTransport)
}

func TestRequestContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	conn, err := connection.New(server.URL, "u", "p")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = conn.Request(ctx, http.MethodGet, "slow", nil)
	assert.ErrorIs(t, err, connection.ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRequestSendsJSONBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		testutil.WriteJSON(t, w, http.StatusOK, `{"meta":{"rc":"ok"},"data":[]}`)
	}))
	t.Cleanup(server.Close)

	conn, err := connection.New(server.URL, "u", "p")
	require.NoError(t, err)

	resp, err := conn.Request(context.Background(), http.MethodPut, "rest/portforward/1", map[string]any{"enabled": true})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{"meta":{"rc":"ok"},"data":[]}`, string(resp.Body()))
}

func TestAPIKeyAuthentication(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		assert.Empty(t, r.Header.Get("X-Csrf-Token"))
		testutil.WriteJSON(t, w, http.StatusOK, `{"data":[]}`)
	}))
	t.Cleanup(server.Close)

	conn, err := connection.NewWithConfig(&connection.Config{Server: server.URL, APIKey: "test-key"})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, conn.Login(ctx))
	assert.True(t, conn.LoggedIn())

	_, err = conn.Request(ctx, http.MethodGet, "proxy/network/api/self/sites", nil)
	require.NoError(t, err)

	require.NoError(t, conn.Logout(ctx))
	assert.False(t, conn.LoggedIn())
}

func TestRetryOnServerError(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServerSequence(t, []testutil.Response{
		{StatusCode: http.StatusServiceUnavailable, Body: `{}`},
		{StatusCode: http.StatusOK, Body: `{"data":[]}`},
	})

	conn, err := connection.NewWithConfig(&connection.Config{
		Server:        server.URL,
		APIKey:        "key",
		MaxRetries:    2,
		RetryWaitTime: time.Millisecond,
	})
	require.NoError(t, err)

	resp, err := conn.Request(context.Background(), http.MethodGet, "anything", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestCSRFTokenRotation(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		seen []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("X-Csrf-Token"))
		mu.Unlock()
		switch r.URL.Path {
		case "/api/auth/login":
			w.Header().Set("X-Csrf-Token", "first")
		case "/rotate":
			w.Header().Set("X-Updated-Csrf-Token", "second")
		}
		testutil.WriteJSON(t, w, http.StatusOK, `{}`)
	}))
	t.Cleanup(server.Close)

	conn, err := connection.New(server.URL, "u", "p")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, conn.Login(ctx))
	_, err = conn.Request(ctx, http.MethodGet, "rotate", nil)
	require.NoError(t, err)
	_, err = conn.Request(ctx, http.MethodGet, "after", nil)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"", "first", "second"}, seen)
}

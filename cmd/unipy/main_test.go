package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexfrei/go-unipy/internal/testutil"
)

const sitesPath = "/proxy/network/api/self/sites"

func writeProfiles(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func controllerProfiles(t *testing.T, server, password string) string {
	t.Helper()

	return writeProfiles(t, `
profiles:
  - name: lab
    server: `+server+`
    username: `+testutil.Username+`
    password: `+password+`
  - name: branch
    server: `+server+`
    username: `+testutil.Username+`
    password: `+password+`
    site: k3x9z2w1
  - name: gone
    server: `+server+`
    username: `+testutil.Username+`
    password: `+password+`
    site: closed
`)
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestAuthList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
profiles:
  - name: home
    server: 192.168.1.1
    username: admin
    password: secret
    insecure_skip_verify: true
  - name: office
    server: unifi.example.com
    api_key: abc123
    site: branch
`), 0o600))

	out, err := runCLI(t, "auth", "list", "--config", path, "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "home")
	assert.Contains(t, out, "password (admin)")
	assert.Contains(t, out, "office")
	assert.Contains(t, out, "branch")
	assert.Contains(t, out, "api-key")
	assert.NotContains(t, out, "secret")
	assert.NotContains(t, out, "abc123")
}

func TestAuthListFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	t.Setenv("UNIPY_CONFIG", path)
	t.Setenv("UNIPY_LOG_LEVEL", "error")

	out, err := runCLI(t, "auth", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no authentications configured in "+path)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := runCLI(t, "auth", "list", "--config", filepath.Join(t.TempDir(), "x.yaml"), "--log-level", "loud")
	assert.Error(t, err)
}

func TestAuthRequiresSubcommand(t *testing.T) {
	out, err := runCLI(t, "auth")
	require.NoError(t, err)
	assert.Contains(t, out, "list")
}

func TestAuthCheck(t *testing.T) {
	ctrl := testutil.NewController(t)
	ctrl.HandleData(sitesPath, `[{"_id":"1","name":"default","desc":"Default"},{"_id":"2","name":"k3x9z2w1","desc":"Branch office"}]`)
	path := controllerProfiles(t, ctrl.URL(), testutil.Password)

	out, err := runCLI(t, "auth", "check", "lab", "--config", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "lab: ok (site default, Default)")

	out, err = runCLI(t, "auth", "check", "branch", "--config", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "branch: ok (site k3x9z2w1, Branch office)")

	assert.Contains(t, ctrl.Paths(), "/api/auth/logout")
}

func TestAuthCheckFailures(t *testing.T) {
	ctrl := testutil.NewController(t)
	ctrl.HandleData(sitesPath, `[{"_id":"1","name":"default","desc":"Default"}]`)

	path := controllerProfiles(t, ctrl.URL(), testutil.Password)

	_, err := runCLI(t, "auth", "check", "gone", "--config", path, "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `site "closed" not found`)

	_, err = runCLI(t, "auth", "check", "missing", "--config", path, "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no authentication named "missing"`)

	wrong := controllerProfiles(t, ctrl.URL(), "wrong")
	_, err = runCLI(t, "auth", "check", "lab", "--config", wrong, "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed")

	_, err = runCLI(t, "auth", "check", "--config", path)
	assert.Error(t, err)
}

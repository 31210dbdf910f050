package unipy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	unipy "github.com/lexfrei/go-unipy"
	"github.com/lexfrei/go-unipy/internal/testutil"
	"github.com/lexfrei/go-unipy/network"
)

func TestNewRequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := unipy.New("unifi.local", "", "")
	require.Error(t, err)

	_, err = unipy.NewWithConfig(nil)
	require.Error(t, err)
}

func TestClientLoginAndList(t *testing.T) {
	t.Parallel()

	ctrl := testutil.NewController(t)
	ctrl.HandleData("/proxy/network/api/s/branch/rest/wlanconf", `[{"_id":"w1","name":"Home","enabled":true}]`)

	client, err := unipy.NewWithConfig(&unipy.ClientConfig{
		Server:   ctrl.URL(),
		Username: testutil.Username,
		Password: testutil.Password,
	}, network.WithSite("branch"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.Login(ctx))
	assert.True(t, client.Connection().LoggedIn())

	ssids, err := client.Network().ListSSIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ssids, 1)
	assert.Equal(t, "Home", ssids[0].Name())

	require.NoError(t, client.Logout(ctx))
	assert.False(t, client.Connection().LoggedIn())

	assert.Equal(t, []string{
		"/api/auth/login",
		"/proxy/network/api/s/branch/rest/wlanconf",
		"/api/auth/logout",
	}, ctrl.Paths())
}

package network

import (
	"context"

	"github.com/lexfrei/go-unipy/connection"
)

// Requester is the part of a connection the service uses.
// *connection.Connection implements it.
type Requester interface {
	EnsureLoggedIn(ctx context.Context) error
	Request(ctx context.Context, method, endpoint string, body any) (*connection.Response, error)
}

// NetworkAPI defines the operations of the network service.
// This interface enables consumers to create mock implementations for testing.
//
// Example usage with testify/mock:
//
//	type MockNetwork struct {
//	    mock.Mock
//	}
//
//	func (m *MockNetwork) ListDevices(ctx context.Context) ([]*network.Device, error) {
//	    args := m.Called(ctx)
//	    return args.Get(0).([]*network.Device), args.Error(1)
//	}
//
//nolint:revive // NetworkAPI reads better than API at call sites
type NetworkAPI interface { //nolint:interfacebloat // Mirrors every listing operation of the service
	// ListDevices retrieves all adopted devices of the site.
	ListDevices(ctx context.Context) ([]*Device, error)

	// GetDeviceSystemConfig retrieves the system configuration of a device.
	GetDeviceSystemConfig(ctx context.Context, mac string) (map[string]any, error)

	// ListActiveClients retrieves the currently connected clients.
	ListActiveClients(ctx context.Context) ([]*ActiveClient, error)

	// ListInactiveClients retrieves clients from the connection history.
	ListInactiveClients(ctx context.Context) ([]*InactiveClient, error)

	// ListPortForwards retrieves the port forwarding rules.
	ListPortForwards(ctx context.Context) ([]*PortForward, error)

	// ListSSIDs retrieves the wireless networks.
	ListSSIDs(ctx context.Context) ([]*SSID, error)

	// ListFirewallGroups retrieves the firewall groups.
	ListFirewallGroups(ctx context.Context) ([]*FirewallGroup, error)

	// ListFirewallRules retrieves the firewall rules configured on the controller.
	ListFirewallRules(ctx context.Context) ([]*FirewallRule, error)

	// FirewallChains merges the configured rules with the gateway's
	// predefined rules into chains.
	FirewallChains(ctx context.Context) (map[string]*FirewallChain, error)

	// ListSites retrieves the sites the user has access to.
	ListSites(ctx context.Context) ([]*Site, error)
}

// Compile-time check that Service implements NetworkAPI.
var _ NetworkAPI = (*Service)(nil)

package network

import "github.com/lexfrei/go-unipy/model"

// ClientKind is a network client (station) seen by the controller.
var ClientKind = model.NewKind("Client", nil,
	model.String("id"),
	model.String("hostname"),
	model.String("display_name"),
	model.Bool("blocked"),
	model.Int("first_seen"),
	model.Int("last_seen"),
	model.String("ipv4_address").From("ip"),
	model.String("fixed_ipv4_address").From("fixed_ip"),
	model.String("mac_address").From("mac"),
	model.String("status"),
	model.String("type"),
	model.Bool("unifi_device"),
	model.Bool("fixed_ip").From("use_fixedip"),
	model.Bool("wired").From("is_wired"),
)

// ActiveClientKind is a currently connected client.
var ActiveClientKind = model.NewKind("ActiveClient", []*model.Kind{ClientKind},
	model.Int("uptime"),
)

// InactiveClientKind is a client from the connection history.
var InactiveClientKind = model.NewKind("InactiveClient", []*model.Kind{ClientKind})

// Client is a network client.
type Client struct {
	*model.Object
}

func (c *Client) ID() string               { return c.String("id") }
func (c *Client) Hostname() string         { return c.String("hostname") }
func (c *Client) DisplayName() string      { return c.String("display_name") }
func (c *Client) MACAddress() string       { return c.String("mac_address") }
func (c *Client) IPv4Address() string      { return c.String("ipv4_address") }
func (c *Client) FixedIPv4Address() string { return c.String("fixed_ipv4_address") }
func (c *Client) Status() string           { return c.String("status") }
func (c *Client) Type() string             { return c.String("type") }
func (c *Client) Blocked() bool            { return c.Bool("blocked") }
func (c *Client) UsesFixedIP() bool        { return c.Bool("fixed_ip") }
func (c *Client) Wired() bool              { return c.Bool("wired") }
func (c *Client) UnifiDevice() bool        { return c.Bool("unifi_device") }
func (c *Client) FirstSeen() int64         { return c.Int("first_seen") }
func (c *Client) LastSeen() int64          { return c.Int("last_seen") }

// ActiveClient is a currently connected client.
type ActiveClient struct {
	Client
}

// Uptime is the connection time in seconds.
func (c *ActiveClient) Uptime() int64 { return c.Int("uptime") }

// InactiveClient is a client that is not connected.
type InactiveClient struct {
	Client
}

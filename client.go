package unipy

import (
	"context"

	"github.com/lexfrei/go-unipy/connection"
	"github.com/lexfrei/go-unipy/network"
)

// ClientConfig holds configuration for the controller connection.
type ClientConfig = connection.Config

// Client bundles a controller connection with the applications on top of it.
type Client struct {
	conn    *connection.Connection
	network *network.Service
}

// New creates a client that logs in with a username and password.
// Certificates are verified; use NewWithConfig with InsecureSkipVerify for
// controllers with self-signed certificates.
//
// Example:
//
//	client, err := unipy.New("192.168.1.1", "admin", "secret")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.Login(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Logout(ctx)
//
//	devices, err := client.Network().ListDevices(ctx)
func New(server, username, password string) (*Client, error) {
	return NewWithConfig(&ClientConfig{
		Server:   server,
		Username: username,
		Password: password,
	})
}

// NewWithConfig creates a client with custom configuration.
// opts configure the network service, e.g. network.WithSite.
// The network service logs through cfg.Logger unless an option overrides it.
func NewWithConfig(cfg *ClientConfig, opts ...network.Option) (*Client, error) {
	conn, err := connection.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}

	opts = append([]network.Option{network.WithLogger(cfg.Logger)}, opts...)

	return &Client{
		conn:    conn,
		network: network.New(conn, opts...),
	}, nil
}

// Login authenticates the underlying connection.
func (c *Client) Login(ctx context.Context) error {
	return c.conn.Login(ctx)
}

// Logout ends the session of the underlying connection.
func (c *Client) Logout(ctx context.Context) error {
	return c.conn.Logout(ctx)
}

// Connection returns the underlying connection for raw requests.
func (c *Client) Connection() *connection.Connection {
	return c.conn
}

// Network returns the network application service.
func (c *Client) Network() *network.Service {
	return c.network
}

// Package unipy is a client for the REST API of UniFi OS controllers.
//
// The root package bundles the pieces most programs need:
//
//   - connection: session login, logout and raw JSON requests
//   - network: devices, clients, SSIDs, port forwards, firewall groups,
//     rules and chains of the Network application
//   - model: the field mapping that turns API dictionaries into typed entities
//   - observability: pluggable logging and metrics
//
// # Basic Usage
//
//	client, err := unipy.NewWithConfig(&unipy.ClientConfig{
//	    Server:             "192.168.1.1",
//	    Username:           "admin",
//	    Password:           os.Getenv("UNIFI_PASSWORD"),
//	    InsecureSkipVerify: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := client.Login(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Logout(ctx)
//
//	chains, err := client.Network().FirewallChains(ctx)
//
// # Errors
//
// Authentication failures match connection.ErrPermissionDenied and
// unreachable controllers match connection.ErrTransport; use errors.Is.
//
// A Client is not safe for concurrent use.
package unipy

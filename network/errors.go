package network

import "github.com/cockroachdb/errors"

var (
	// ErrNoRoutersFound is returned when no gateway device exists on the site.
	ErrNoRoutersFound = errors.New("no routers found")

	// ErrNoFirewallsFound is returned when the gateway system configuration
	// has no predefined firewall rule sets.
	ErrNoFirewallsFound = errors.New("no firewalls found")

	// ErrNoSystemConfig is returned when a device reports no system configuration.
	ErrNoSystemConfig = errors.New("no system configuration")

	// ErrUnbound is returned when an entity is not bound to a live service.
	ErrUnbound = errors.New("entity is not bound to a service")
)

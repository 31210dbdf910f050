// Package network reads the Network application of a UniFi OS controller.
//
// Resources are fetched through the legacy controller endpoints under
// /proxy/network and converted into typed entities using the kinds declared
// in this package (DeviceKind, ActiveClientKind, FirewallRuleKind, ...).
// Every entity embeds its *model.Object, so fields without a typed accessor
// remain reachable by local name:
//
//	svc := network.New(conn)
//	devices, err := svc.ListDevices(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range devices {
//	    fmt.Println(d.Name(), d.Type(), d.String("license_state"))
//	}
//
// # Firewall chains
//
// FirewallChains combines the rules configured on the controller with the
// rules the gateway predefines in its system configuration:
//
//	chains, err := svc.FirewallChains(ctx)
//	if errors.Is(err, network.ErrNoRoutersFound) {
//	    // the site has no gateway
//	}
//	for _, rule := range chains["WAN_IN"].Rules {
//	    fmt.Println(rule.ChainIndex(), rule.Name(), rule.IsPredefined())
//	}
//
// Entities are bound to the service that listed them without keeping it
// alive; see Device.SystemConfig and BoundService.
package network

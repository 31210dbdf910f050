package network

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"weak"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"

	"github.com/lexfrei/go-unipy/internal/response"
	"github.com/lexfrei/go-unipy/model"
	"github.com/lexfrei/go-unipy/observability"
)

// DefaultSite is the site used when none is configured.
const DefaultSite = "default"

// Service lists network resources of one controller site and assembles
// firewall chains. It is as safe for concurrent use as its Requester.
type Service struct {
	conn   Requester
	site   string
	logger observability.Logger
	ref    *serviceRef
}

// Option configures a Service.
type Option func(*Service)

// WithSite sets the site short name used in site-scoped endpoints.
func WithSite(site string) Option {
	return func(s *Service) {
		if site != "" {
			s.site = site
		}
	}
}

// WithLogger sets the logger that receives warnings about entities.
func WithLogger(logger observability.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a network service on top of a connection.
//
// Example:
//
//	conn, err := connection.New("unifi.local", "admin", "secret")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svc := network.New(conn, network.WithSite("default"))
//	devices, err := svc.ListDevices(ctx)
func New(conn Requester, opts ...Option) *Service {
	s := &Service{
		conn:   conn,
		site:   DefaultSite,
		logger: observability.NoopLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.ref = &serviceRef{ptr: weak.Make(s)}

	return s
}

// Site returns the configured site short name.
func (s *Service) Site() string {
	return s.site
}

func (s *Service) siteEndpoint(format string, args ...any) string {
	return fmt.Sprintf("proxy/network/api/s/%s/", url.PathEscape(s.site)) + fmt.Sprintf(format, args...)
}

func (s *Service) siteV2Endpoint(path string) string {
	return fmt.Sprintf("proxy/network/v2/api/site/%s/%s", url.PathEscape(s.site), path)
}

// fetchData logs in if needed, GETs a v1 endpoint and returns its data array.
func (s *Service) fetchData(ctx context.Context, endpoint, errorMsg string) ([]map[string]any, error) {
	if err := s.conn.EnsureLoggedIn(ctx); err != nil {
		return nil, errors.Wrap(err, errorMsg)
	}

	resp, err := s.conn.Request(ctx, http.MethodGet, endpoint, nil)

	return response.DecodeData[[]map[string]any](resp, err, errorMsg)
}

// fetchArray is like fetchData for v2 endpoints returning bare arrays.
func (s *Service) fetchArray(ctx context.Context, endpoint, errorMsg string) ([]map[string]any, error) {
	if err := s.conn.EnsureLoggedIn(ctx); err != nil {
		return nil, errors.Wrap(err, errorMsg)
	}

	resp, err := s.conn.Request(ctx, http.MethodGet, endpoint, nil)

	return response.Decode[[]map[string]any](resp, err, errorMsg)
}

// newObject creates a bound object of kind from raw and logs fields that
// could not be populated.
func (s *Service) newObject(kind *model.Kind, raw map[string]any) *model.Object {
	obj := model.New(kind)
	obj.Bind(s.ref)

	if err := obj.Populate(raw); err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, warning := range merr.Errors {
				s.logger.Warn("field not populated",
					observability.Field{Key: "kind", Value: kind.Name()},
					observability.Err(warning),
				)
			}
		}
	}

	return obj
}

// ListDevices retrieves all devices of the site.
// Each device gets the kind of its reported type; unknown types fall back
// to DeviceKind with a warning.
func (s *Service) ListDevices(ctx context.Context) ([]*Device, error) {
	data, err := s.fetchData(ctx, s.siteEndpoint("stat/device"), "failed to list devices")
	if err != nil {
		return nil, err
	}

	devices := make([]*Device, 0, len(data))
	for _, raw := range data {
		devices = append(devices, s.newDevice(raw))
	}

	return devices, nil
}

func (s *Service) newDevice(raw map[string]any) *Device {
	deviceType, _ := raw["type"].(string)

	kind, ok := deviceKinds[deviceType]
	if !ok {
		s.logger.Warn("unknown device type, using generic device",
			observability.Field{Key: "type", Value: deviceType},
			observability.Field{Key: "mac", Value: raw["mac"]},
		)
		kind = DeviceKind
	}

	return &Device{Object: s.newObject(kind, raw)}
}

// GetDeviceSystemConfig retrieves the "system_cfg" section of a device.
func (s *Service) GetDeviceSystemConfig(ctx context.Context, mac string) (map[string]any, error) {
	endpoint := s.siteEndpoint("stat/device/%s?cfg=system", url.PathEscape(mac))

	data, err := s.fetchData(ctx, endpoint, "failed to get device system config")
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errors.Wrapf(ErrNoSystemConfig, "device %s", mac)
	}

	cfg, ok := data[0]["system_cfg"].(map[string]any)
	if !ok {
		return nil, errors.Wrapf(ErrNoSystemConfig, "device %s", mac)
	}

	return cfg, nil
}

// ListActiveClients retrieves the currently connected clients.
func (s *Service) ListActiveClients(ctx context.Context) ([]*ActiveClient, error) {
	data, err := s.fetchArray(ctx, s.siteV2Endpoint("clients/active"), "failed to list active clients")
	if err != nil {
		return nil, err
	}

	clients := make([]*ActiveClient, 0, len(data))
	for _, raw := range data {
		clients = append(clients, &ActiveClient{Client{Object: s.newObject(ActiveClientKind, raw)}})
	}

	return clients, nil
}

// ListInactiveClients retrieves clients from the connection history.
func (s *Service) ListInactiveClients(ctx context.Context) ([]*InactiveClient, error) {
	data, err := s.fetchArray(ctx, s.siteV2Endpoint("clients/history?withinHours=0"), "failed to list inactive clients")
	if err != nil {
		return nil, err
	}

	clients := make([]*InactiveClient, 0, len(data))
	for _, raw := range data {
		clients = append(clients, &InactiveClient{Client{Object: s.newObject(InactiveClientKind, raw)}})
	}

	return clients, nil
}

// ListPortForwards retrieves the port forwarding rules.
func (s *Service) ListPortForwards(ctx context.Context) ([]*PortForward, error) {
	data, err := s.fetchData(ctx, s.siteEndpoint("rest/portforward"), "failed to list port forwards")
	if err != nil {
		return nil, err
	}

	forwards := make([]*PortForward, 0, len(data))
	for _, raw := range data {
		forwards = append(forwards, &PortForward{Object: s.newObject(PortForwardKind, raw)})
	}

	return forwards, nil
}

// ListSSIDs retrieves the wireless networks.
func (s *Service) ListSSIDs(ctx context.Context) ([]*SSID, error) {
	data, err := s.fetchData(ctx, s.siteEndpoint("rest/wlanconf"), "failed to list SSIDs")
	if err != nil {
		return nil, err
	}

	ssids := make([]*SSID, 0, len(data))
	for _, raw := range data {
		ssids = append(ssids, &SSID{Object: s.newObject(SSIDKind, raw)})
	}

	return ssids, nil
}

// ListFirewallGroups retrieves the firewall groups.
func (s *Service) ListFirewallGroups(ctx context.Context) ([]*FirewallGroup, error) {
	data, err := s.fetchData(ctx, s.siteEndpoint("rest/firewallgroup"), "failed to list firewall groups")
	if err != nil {
		return nil, err
	}

	groups := make([]*FirewallGroup, 0, len(data))
	for _, raw := range data {
		groups = append(groups, &FirewallGroup{Object: s.newObject(FirewallGroupKind, raw)})
	}

	return groups, nil
}

// ListFirewallRules retrieves the firewall rules configured on the controller.
// Predefined gateway rules are not included; see FirewallChains.
func (s *Service) ListFirewallRules(ctx context.Context) ([]*FirewallRule, error) {
	data, err := s.fetchData(ctx, s.siteEndpoint("rest/firewallrule"), "failed to list firewall rules")
	if err != nil {
		return nil, err
	}

	rules := make([]*FirewallRule, 0, len(data))
	for _, raw := range data {
		rules = append(rules, &FirewallRule{Object: s.newObject(FirewallRuleKind, raw)})
	}

	return rules, nil
}

// ListSites retrieves the sites the user has access to.
func (s *Service) ListSites(ctx context.Context) ([]*Site, error) {
	data, err := s.fetchData(ctx, "proxy/network/api/self/sites", "failed to list sites")
	if err != nil {
		return nil, err
	}

	sites := make([]*Site, 0, len(data))
	for _, raw := range data {
		sites = append(sites, &Site{Object: s.newObject(SiteKind, raw)})
	}

	return sites, nil
}

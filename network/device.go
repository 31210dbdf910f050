package network

import (
	"context"

	"github.com/lexfrei/go-unipy/model"
)

// Device types reported in the "type" key.
const (
	DeviceTypeGateway        = "ugw"
	DeviceTypeDreamMachine   = "udm"
	DeviceTypeNextGenGateway = "uxg"
	DeviceTypeSwitch         = "usw"
	DeviceTypeAccessPoint    = "uap"
)

// DeviceKind is the generic network device.
var DeviceKind = model.NewKind("Device", nil,
	model.String("id").From("_id"),
	model.String("ipv4_address").From("ip"),
	model.String("mac_address").From("mac"),
	model.String("model"),
	model.String("type"),
	model.String("version"),
	model.Bool("adopted"),
	model.String("site_id"),
	model.String("cfg_version").From("cfgversion"),
	model.String("cfg_network").From("config_network"),
	model.String("license_state"),
	model.String("inform_url"),
	model.String("inform_ip"),
	model.Int("hw_caps"),
	model.Int("fw_caps"),
	model.String("serial"),
	model.String("name"),
	model.Bool("model_incompatible"),
	model.Bool("model_in_lts"),
	model.Bool("model_in_eol"),
	model.String("snmp_contact"),
	model.String("snmp_location"),
	model.Int("connected_at"),
	model.Int("provisioned_at"),
	model.String("device_id"),
	model.String("uplink"),
	model.Int("state"),
	model.Int("last_seen"),
	model.Bool("upgradable"),
	model.String("known_cfgversion"),
	model.Int("uptime"),
	model.String("connect_request_ip"),
	model.String("connect_request_port"),
	model.Int("startup_timestamp"),
	model.Int("tx_bytes"),
	model.Int("rx_bytes"),
	model.Bool("x_has_ssh_hostkey"),
)

// GatewayKind is a routing device: USG, UDM or UXG.
var GatewayKind = model.NewKind("Gateway", []*model.Kind{DeviceKind},
	model.Bool("speedtest_status_saved").From("speedtest_status"),
)

// SwitchKind is a switch.
var SwitchKind = model.NewKind("Switch", []*model.Kind{DeviceKind},
	model.String("stp_version"),
	model.Int("stp_priority"),
)

// AccessPointKind is a wireless access point.
var AccessPointKind = model.NewKind("AccessPoint", []*model.Kind{DeviceKind},
	model.Int("wifi_caps"),
	model.Bool("scanning"),
	model.Bool("spectrum_scanning"),
	model.Bool("isolated").From("isolate"),
	model.String("bandsteering_mode"),
)

var deviceKinds = map[string]*model.Kind{
	DeviceTypeGateway:        GatewayKind,
	DeviceTypeDreamMachine:   GatewayKind,
	DeviceTypeNextGenGateway: GatewayKind,
	DeviceTypeSwitch:         SwitchKind,
	DeviceTypeAccessPoint:    AccessPointKind,
}

// Device is a network device. Its kind is one of DeviceKind, GatewayKind,
// SwitchKind or AccessPointKind depending on the reported type.
type Device struct {
	*model.Object
}

func (d *Device) ID() string          { return d.String("id") }
func (d *Device) Name() string        { return d.String("name") }
func (d *Device) MACAddress() string  { return d.String("mac_address") }
func (d *Device) IPv4Address() string { return d.String("ipv4_address") }
func (d *Device) Model() string       { return d.String("model") }
func (d *Device) Type() string        { return d.String("type") }
func (d *Device) Version() string     { return d.String("version") }
func (d *Device) Serial() string      { return d.String("serial") }
func (d *Device) Adopted() bool       { return d.Bool("adopted") }
func (d *Device) Upgradable() bool    { return d.Bool("upgradable") }
func (d *Device) State() int64        { return d.Int("state") }
func (d *Device) Uptime() int64       { return d.Int("uptime") }
func (d *Device) LastSeen() int64     { return d.Int("last_seen") }
func (d *Device) TxBytes() int64      { return d.Int("tx_bytes") }
func (d *Device) RxBytes() int64      { return d.Int("rx_bytes") }

// IsGateway reports whether the device routes traffic for the site.
func (d *Device) IsGateway() bool {
	return d.Kind().Is(GatewayKind)
}

// SpeedtestStatusSaved is only set on gateways.
func (d *Device) SpeedtestStatusSaved() bool { return d.Bool("speedtest_status_saved") }

// STPVersion is only set on switches.
func (d *Device) STPVersion() string { return d.String("stp_version") }

// STPPriority is only set on switches.
func (d *Device) STPPriority() int64 { return d.Int("stp_priority") }

// Isolated is only set on access points.
func (d *Device) Isolated() bool { return d.Bool("isolated") }

// BandSteeringMode is only set on access points.
func (d *Device) BandSteeringMode() string { return d.String("bandsteering_mode") }

// SystemConfig fetches the system configuration of the device through the
// service it was listed by.
func (d *Device) SystemConfig(ctx context.Context) (map[string]any, error) {
	svc, err := boundService(d.Object)
	if err != nil {
		return nil, err
	}

	return svc.GetDeviceSystemConfig(ctx, d.MACAddress())
}

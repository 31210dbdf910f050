package network

import "github.com/lexfrei/go-unipy/model"

// PortForwardKind is a port forwarding rule.
var PortForwardKind = model.NewKind("PortForward", nil,
	model.String("id").From("_id"),
	model.Bool("enabled").Default(false),
	model.String("name"),
	model.String("dst_port"),
	model.String("fwd_port"),
	model.String("fwd"),
	model.Bool("log"),
	model.String("src"),
	model.String("proto"),
	model.String("site_id"),
	model.String("pfwd_interface"),
	model.String("destination_ip"),
)

// PortForward is a port forwarding rule.
type PortForward struct {
	*model.Object
}

func (p *PortForward) ID() string            { return p.String("id") }
func (p *PortForward) Name() string          { return p.String("name") }
func (p *PortForward) Enabled() bool         { return p.Bool("enabled") }
func (p *PortForward) DstPort() string       { return p.String("dst_port") }
func (p *PortForward) FwdPort() string       { return p.String("fwd_port") }
func (p *PortForward) Fwd() string           { return p.String("fwd") }
func (p *PortForward) Proto() string         { return p.String("proto") }
func (p *PortForward) Src() string           { return p.String("src") }
func (p *PortForward) Log() bool             { return p.Bool("log") }
func (p *PortForward) Interface() string     { return p.String("pfwd_interface") }
func (p *PortForward) DestinationIP() string { return p.String("destination_ip") }

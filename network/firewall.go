package network

import "github.com/lexfrei/go-unipy/model"

// FirewallGroupKind is an address or port group referenced by firewall rules.
var FirewallGroupKind = model.NewKind("FirewallGroup", nil,
	model.String("id").From("_id"),
	model.String("name"),
	model.String("group_type"),
	model.List("members").From("group_members"),
)

// FirewallChainKind holds the attributes of a rule chain in the gateway
// system configuration.
var FirewallChainKind = model.NewKind("FirewallChain", nil,
	model.String("name"),
	model.String("default_action").From("default-action"),
	model.String("description"),
)

// FirewallRuleKind is a firewall rule, either configured on the controller
// or predefined by the gateway.
var FirewallRuleKind = model.NewKind("FirewallRule", nil,
	model.Bool("is_predefined").Default(false),
	model.String("id").From("_id"),
	model.String("name"),
	model.Bool("enabled"),
	model.List("dst_firewall_group_ids").From("dst_firewallgroup_ids"),
	model.List("src_firewall_group_ids").From("src_firewallgroup_ids"),
	model.String("chain").From("ruleset"),
	model.Int("chain_index").From("rule_index"),
	model.Bool("logging").Default(false),
	model.String("action"),
)

// FirewallGroup is an address or port group.
type FirewallGroup struct {
	*model.Object
}

func (g *FirewallGroup) ID() string        { return g.String("id") }
func (g *FirewallGroup) Name() string      { return g.String("name") }
func (g *FirewallGroup) GroupType() string { return g.String("group_type") }
func (g *FirewallGroup) Members() []string { return g.Strings("members") }

// FirewallRule is a configured or predefined firewall rule.
type FirewallRule struct {
	*model.Object
}

func (r *FirewallRule) ID() string                    { return r.String("id") }
func (r *FirewallRule) Name() string                  { return r.String("name") }
func (r *FirewallRule) Enabled() bool                 { return r.Bool("enabled") }
func (r *FirewallRule) Chain() string                 { return r.String("chain") }
func (r *FirewallRule) ChainIndex() int64             { return r.Int("chain_index") }
func (r *FirewallRule) Action() string                { return r.String("action") }
func (r *FirewallRule) Logging() bool                 { return r.Bool("logging") }
func (r *FirewallRule) IsPredefined() bool            { return r.Bool("is_predefined") }
func (r *FirewallRule) DstFirewallGroupIDs() []string { return r.Strings("dst_firewall_group_ids") }
func (r *FirewallRule) SrcFirewallGroupIDs() []string { return r.Strings("src_firewall_group_ids") }

// FirewallChain is a rule chain with its configured and predefined rules,
// ordered by chain index. Chains are only assembled by Service.FirewallChains.
type FirewallChain struct {
	*model.Object

	Rules []*FirewallRule
}

func (c *FirewallChain) Name() string          { return c.String("name") }
func (c *FirewallChain) DefaultAction() string { return c.String("default_action") }
func (c *FirewallChain) Description() string   { return c.String("description") }

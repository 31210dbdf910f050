package network

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-unipy/model"
	"github.com/lexfrei/go-unipy/observability"
)

// FirewallChains returns every firewall chain of the site keyed by name.
//
// The gateway's system configuration lists the predefined IPv4 ("name") and
// IPv6 ("ipv6-name") rule sets. Predefined rules that have no configured
// counterpart with the same chain and index are added as rules with
// IsPredefined set. Configured rules are appended to their chain, and every
// chain is sorted by chain index.
//
// Errors:
//   - no gateway device on the site: ErrNoRoutersFound
//   - no predefined rule sets in the system configuration: ErrNoFirewallsFound
func (s *Service) FirewallChains(ctx context.Context) (map[string]*FirewallChain, error) {
	configured, err := s.ListFirewallRules(ctx)
	if err != nil {
		return nil, err
	}

	devices, err := s.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	var gateways []*Device
	for _, d := range devices {
		if d.IsGateway() {
			gateways = append(gateways, d)
		}
	}

	if len(gateways) == 0 {
		return nil, ErrNoRoutersFound
	}
	if len(gateways) > 1 {
		s.logger.Warn("multiple gateways found, using the first",
			observability.Field{Key: "count", Value: len(gateways)},
			observability.Field{Key: "mac", Value: gateways[0].MACAddress()},
		)
	}

	cfg, err := s.GetDeviceSystemConfig(ctx, gateways[0].MACAddress())
	if errors.Is(err, ErrNoSystemConfig) {
		return nil, errors.Join(ErrNoFirewallsFound, err)
	}
	if err != nil {
		return nil, err
	}

	predefined, err := predefinedChains(cfg)
	if err != nil {
		return nil, err
	}

	return s.reconcile(configured, predefined), nil
}

// predefinedChains merges the IPv4 and IPv6 rule sets of a system
// configuration. IPv6 chains replace IPv4 chains of the same name.
func predefinedChains(cfg map[string]any) (map[string]any, error) {
	firewall, ok := cfg["firewall"].(map[string]any)
	if !ok {
		return nil, errors.Wrap(ErrNoFirewallsFound, "system config has no firewall section")
	}

	ipv4, ok := firewall["name"].(map[string]any)
	if !ok {
		return nil, errors.Wrap(ErrNoFirewallsFound, "firewall section has no IPv4 rule sets")
	}

	ipv6, ok := firewall["ipv6-name"].(map[string]any)
	if !ok {
		return nil, errors.Wrap(ErrNoFirewallsFound, "firewall section has no IPv6 rule sets")
	}

	chains := maps.Clone(ipv4)
	maps.Copy(chains, ipv6)

	return chains, nil
}

func ruleIdentity(chain string, index int64) string {
	return chain + "_" + strconv.FormatInt(index, 10)
}

// reconcile builds chains from the predefined rule sets and the configured rules.
func (s *Service) reconcile(configured []*FirewallRule, predefined map[string]any) map[string]*FirewallChain {
	configuredIDs := make(map[string]bool, len(configured))
	for _, r := range configured {
		configuredIDs[ruleIdentity(r.Chain(), r.ChainIndex())] = true
	}

	chains := make(map[string]*FirewallChain, len(predefined))

	for _, name := range slices.Sorted(maps.Keys(predefined)) {
		details, ok := predefined[name].(map[string]any)
		if !ok {
			s.logger.Warn("skipping malformed firewall chain", observability.Field{Key: "chain", Value: name})
			continue
		}

		chain := s.newChain(name)
		if err := chain.Populate(details); err != nil {
			s.logger.Warn("firewall chain not fully populated",
				observability.Field{Key: "chain", Value: name},
				observability.Err(err),
			)
		}

		chain.Rules = s.predefinedRules(name, details["rule"], configuredIDs)
		chains[name] = chain
	}

	for _, r := range configured {
		chain, ok := chains[r.Chain()]
		if !ok {
			s.logger.Warn("configured rule references unknown chain, creating it",
				observability.Field{Key: "chain", Value: r.Chain()},
				observability.Field{Key: "rule", Value: r.Name()},
			)
			chain = s.newChain(r.Chain())
			chains[r.Chain()] = chain
		}
		chain.Rules = append(chain.Rules, r)
	}

	for _, chain := range chains {
		slices.SortStableFunc(chain.Rules, func(a, b *FirewallRule) int {
			return cmp.Compare(a.ChainIndex(), b.ChainIndex())
		})
	}

	return chains
}

func (s *Service) newChain(name string) *FirewallChain {
	obj := model.New(FirewallChainKind)
	obj.Bind(s.ref)
	_ = obj.Set("name", name)

	return &FirewallChain{Object: obj}
}

// predefinedRules synthesizes the rules of one predefined chain that are not
// configured on the controller, in ascending index order. Entries without a
// numeric index, a description or an action are skipped.
func (s *Service) predefinedRules(chain string, table any, configuredIDs map[string]bool) []*FirewallRule {
	if table == nil {
		return nil
	}

	entries, ok := table.(map[string]any)
	if !ok {
		s.logger.Warn("skipping malformed predefined rule table", observability.Field{Key: "chain", Value: chain})
		return nil
	}

	type indexed struct {
		index   int64
		details map[string]any
	}

	var ordered []indexed
	for key, value := range entries {
		index, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			s.logger.Warn("skipping predefined rule with non-numeric index",
				observability.Field{Key: "chain", Value: chain},
				observability.Field{Key: "index", Value: key},
			)
			continue
		}

		details, ok := value.(map[string]any)
		if !ok {
			s.logger.Warn("skipping malformed predefined rule",
				observability.Field{Key: "chain", Value: chain},
				observability.Field{Key: "index", Value: key},
			)
			continue
		}

		ordered = append(ordered, indexed{index: index, details: details})
	}

	slices.SortFunc(ordered, func(a, b indexed) int { return cmp.Compare(a.index, b.index) })

	var rules []*FirewallRule
	for _, entry := range ordered {
		if configuredIDs[ruleIdentity(chain, entry.index)] {
			continue
		}

		rule, err := s.predefinedRule(chain, entry.index, entry.details)
		if err != nil {
			s.logger.Warn("skipping predefined rule",
				observability.Field{Key: "chain", Value: chain},
				observability.Field{Key: "index", Value: entry.index},
				observability.Err(err),
			)
			continue
		}
		rules = append(rules, rule)
	}

	return rules
}

func (s *Service) predefinedRule(chain string, index int64, details map[string]any) (*FirewallRule, error) {
	description, ok := details["description"]
	if !ok {
		return nil, errors.New("missing description")
	}

	action, ok := details["action"]
	if !ok {
		return nil, errors.New("missing action")
	}

	obj := model.New(FirewallRuleKind)
	obj.Bind(s.ref)

	for name, value := range map[string]any{
		"name":          description,
		"enabled":       true,
		"chain":         chain,
		"chain_index":   index,
		"action":        action,
		"is_predefined": true,
	} {
		if err := obj.Set(name, value); err != nil {
			return nil, err
		}
	}

	return &FirewallRule{Object: obj}, nil
}

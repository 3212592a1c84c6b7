package networkdefinition

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"sequencer_gateway/internal/app/port"
	"sequencer_gateway/internal/domain/entity"
)

const (
	feederGatewaySuffix = "/feeder_gateway"
	gatewaySuffix       = "/gateway"
	mainnetHost         = "alpha-mainnet.starknet.io"
)

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	MainnetAlpha = entity.NetworkDefinition{
		Name:       "StarkNet Mainnet",
		Identifier: "mainnet-alpha",
		BaseURL:    "https://alpha-mainnet.starknet.io",
		ChainID:    entity.ChainIDMainnet,
	}
	GoerliAlpha = entity.NetworkDefinition{
		Name:       "StarkNet Goerli Testnet",
		Identifier: "goerli-alpha",
		BaseURL:    "https://alpha4.starknet.io",
		ChainID:    entity.ChainIDTestnet,
	}

	allKnownDefinitions = map[string]entity.NetworkDefinition{
		MainnetAlpha.Identifier: MainnetAlpha,
		GoerliAlpha.Identifier:  GoerliAlpha,
	}
)

// DefaultNetwork is used when neither a network name nor a base URL is given.
var DefaultNetwork = GoerliAlpha //nolint:gochecknoglobals

// Options select a gateway either by network name or by explicit URLs.
// Explicit URLs take precedence over the network name.
type Options struct {
	Network          string
	BaseURL          string
	FeederGatewayURL string
	GatewayURL       string
	ChainID          entity.ChainID
}

// NetworkDefinitionProvider resolves named networks and explicit URLs into targets.
type NetworkDefinitionProvider struct {
	logger         port.Logger
	allNetworkDefs map[string]entity.NetworkDefinition
}

// NewNetworkDefinitionProvider creates a provider over the built-in network table.
func NewNetworkDefinitionProvider(log port.Logger) *NetworkDefinitionProvider {
	return &NetworkDefinitionProvider{
		logger:         log,
		allNetworkDefs: allKnownDefinitions,
	}
}

// GetAllNetworkDefinitions returns the known networks ordered by identifier.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	defs := make([]entity.NetworkDefinition, 0, len(p.allNetworkDefs))
	for _, def := range p.allNetworkDefs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Identifier < defs[j].Identifier })
	return defs
}

// GetNetworkDefinitionByName returns a network by identifier.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	def, ok := p.allNetworkDefs[strings.ToLower(strings.TrimSpace(identifier))]
	return def, ok
}

// Resolve builds the immutable network target for the given options.
func (p *NetworkDefinitionProvider) Resolve(opts Options) (entity.NetworkTarget, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		def := DefaultNetwork
		if opts.Network != "" {
			var ok bool
			def, ok = p.GetNetworkDefinitionByName(opts.Network)
			if !ok {
				return entity.NetworkTarget{}, fmt.Errorf("unknown network %q", opts.Network)
			}
		}
		baseURL = def.BaseURL
		p.logger.Debug("Resolved named network", "network", def.Identifier, "baseURL", baseURL)
	}

	target := entity.NetworkTarget{
		BaseURL:          baseURL,
		FeederGatewayURL: strings.TrimRight(opts.FeederGatewayURL, "/"),
		GatewayURL:       strings.TrimRight(opts.GatewayURL, "/"),
		ChainID:          opts.ChainID,
	}
	if target.FeederGatewayURL == "" {
		target.FeederGatewayURL = baseURL + feederGatewaySuffix
	}
	if target.GatewayURL == "" {
		target.GatewayURL = baseURL + gatewaySuffix
	}
	if target.ChainID == "" {
		target.ChainID = ChainIDFromBaseURL(baseURL)
	}

	p.logger.Info("Network target resolved",
		"feederGateway", target.FeederGatewayURL,
		"gateway", target.GatewayURL,
		"chainID", string(target.ChainID))
	return target, nil
}

// ChainIDFromBaseURL maps a gateway base URL to its chain id. Unknown or unparseable URLs map to the testnet.
func ChainIDFromBaseURL(baseURL string) entity.ChainID {
	u, err := url.Parse(baseURL)
	if err != nil {
		return entity.ChainIDTestnet
	}
	if strings.Contains(u.Host, mainnetHost) {
		return entity.ChainIDMainnet
	}
	return entity.ChainIDTestnet
}

package networkdefinition_test

import (
	"testing"

	"sequencer_gateway/internal/domain/entity"
	networkdefinition "sequencer_gateway/internal/infrastructure/network/definition"
	"sequencer_gateway/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProvider() *networkdefinition.NetworkDefinitionProvider {
	return networkdefinition.NewNetworkDefinitionProvider(logger.NewZapAdapter(zap.NewNop()))
}

func TestChainIDFromBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    entity.ChainID
	}{
		{"mainnet", "https://alpha-mainnet.starknet.io", entity.ChainIDMainnet},
		{"mainnet with path", "https://alpha-mainnet.starknet.io/some/path", entity.ChainIDMainnet},
		{"testnet", "https://alpha4.starknet.io", entity.ChainIDTestnet},
		{"local", "http://127.0.0.1:5050", entity.ChainIDTestnet},
		{"unparseable", "://bad url", entity.ChainIDTestnet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, networkdefinition.ChainIDFromBaseURL(tt.baseURL))
		})
	}
}

func TestResolveDefaultsToTestnet(t *testing.T) {
	target, err := newProvider().Resolve(networkdefinition.Options{})
	require.NoError(t, err)
	assert.Equal(t, "https://alpha4.starknet.io", target.BaseURL)
	assert.Equal(t, "https://alpha4.starknet.io/feeder_gateway", target.FeederGatewayURL)
	assert.Equal(t, "https://alpha4.starknet.io/gateway", target.GatewayURL)
	assert.Equal(t, entity.ChainIDTestnet, target.ChainID)
}

func TestResolveExplicitURLsWin(t *testing.T) {
	target, err := newProvider().Resolve(networkdefinition.Options{
		Network:          "mainnet-alpha",
		BaseURL:          "http://localhost:5050/",
		FeederGatewayURL: "http://feeder.local/",
		ChainID:          entity.ChainIDMainnet,
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5050", target.BaseURL)
	assert.Equal(t, "http://feeder.local", target.FeederGatewayURL)
	assert.Equal(t, "http://localhost:5050/gateway", target.GatewayURL)
	assert.Equal(t, entity.ChainIDMainnet, target.ChainID)
}

func TestResolveUnknownNetwork(t *testing.T) {
	_, err := newProvider().Resolve(networkdefinition.Options{Network: "sepolia-omega"})
	require.Error(t, err)
}

func TestNetworkDefinitionLookup(t *testing.T) {
	p := newProvider()
	defs := p.GetAllNetworkDefinitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "goerli-alpha", defs[0].Identifier)
	assert.Equal(t, "mainnet-alpha", defs[1].Identifier)

	def, ok := p.GetNetworkDefinitionByName(" Mainnet-Alpha ")
	require.True(t, ok)
	assert.Equal(t, entity.ChainIDMainnet, def.ChainID)
}

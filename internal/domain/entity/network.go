package entity

// ChainID is the StarkNet chain identifier, a short string encoded as a felt in hex.
type ChainID string

const (
	ChainIDMainnet ChainID = "0x534e5f4d41494e"     // SN_MAIN
	ChainIDTestnet ChainID = "0x534e5f474f45524c49" // SN_GOERLI
)

// NetworkDefinition holds a named sequencer deployment.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type NetworkDefinition struct {
	Name       string  `json:"name" yaml:"name"`
	Identifier string  `json:"identifier" yaml:"identifier"` // e.g. "mainnet-alpha", "goerli-alpha"
	BaseURL    string  `json:"baseUrl" yaml:"baseUrl"`
	ChainID    ChainID `json:"chainId" yaml:"chainId"`
}

// NetworkTarget is the resolved set of URLs a client talks to. It never changes after construction.
type NetworkTarget struct {
	BaseURL          string  `json:"baseUrl"`
	FeederGatewayURL string  `json:"feederGatewayUrl"`
	GatewayURL       string  `json:"gatewayUrl"`
	ChainID          ChainID `json:"chainId"`
}

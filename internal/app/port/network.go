package port

import "sequencer_gateway/internal/domain/entity"

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all known networks.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByName returns a network by identifier, and false when unknown.
	GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool)
}

package utils

import (
	"fmt"
	"os"

	"sequencer_gateway/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

// LoadCompiledContract reads a compiled contract artifact from disk.
func LoadCompiledContract(filePath string) (entity.CompiledContract, error) {
	var contract entity.CompiledContract
	data, err := os.ReadFile(filePath)
	if err != nil {
		return contract, fmt.Errorf("failed to read contract file %s: %w", filePath, err)
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &contract); err != nil {
		return contract, fmt.Errorf("failed to decode contract file %s: %w", filePath, err)
	}
	if len(contract.Program) == 0 {
		return contract, fmt.Errorf("contract file %s has no program", filePath)
	}
	return contract, nil
}

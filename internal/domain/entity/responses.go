package entity

import (
	"encoding/json"
	"math/big"
)

// Block is the normalized answer of get_block.
type Block struct {
	BlockHash       string   `json:"block_hash,omitempty"`
	BlockNumber     *uint64  `json:"block_number,omitempty"`
	ParentHash      string   `json:"parent_hash"`
	NewRoot         string   `json:"new_root,omitempty"`
	Status          string   `json:"status"`
	Timestamp       int64    `json:"timestamp"`
	GasPrice        string   `json:"gas_price,omitempty"`
	Sequencer       string   `json:"sequencer,omitempty"`
	StarknetVersion string   `json:"starknet_version,omitempty"`
	Transactions    []string `json:"transactions"`
}

// CallContractResponse holds the felts returned by a view call.
type CallContractResponse struct {
	Result []string `json:"result"`
}

// InvokeFunctionResponse is returned after an INVOKE_FUNCTION submission.
type InvokeFunctionResponse struct {
	TransactionHash string `json:"transaction_hash"`
}

// DeployContractResponse is returned after a DEPLOY submission.
type DeployContractResponse struct {
	TransactionHash string `json:"transaction_hash"`
	ContractAddress string `json:"contract_address"`
}

// DeclareContractResponse is returned after a DECLARE submission.
type DeclareContractResponse struct {
	TransactionHash string `json:"transaction_hash"`
	ClassHash       string `json:"class_hash"`
}

// FeeEstimate carries fee values without precision loss.
type FeeEstimate struct {
	OverallFee  *big.Int `json:"overall_fee"`
	GasConsumed *big.Int `json:"gas_consumed,omitempty"`
	GasPrice    *big.Int `json:"gas_price,omitempty"`
	Unit        string   `json:"unit,omitempty"`
}

// ContractClass is a deployed class with its program gzip-compressed and base64-encoded.
type ContractClass struct {
	Program           string          `json:"program"`
	EntryPointsByType json.RawMessage `json:"entry_points_by_type"`
	ABI               json.RawMessage `json:"abi,omitempty"`
}

// ContractCode is the answer of get_code.
type ContractCode struct {
	Bytecode []string        `json:"bytecode"`
	ABI      json.RawMessage `json:"abi,omitempty"`
}

// ContractAddresses lists the L1 core contracts of a network.
type ContractAddresses struct {
	Starknet             string `json:"Starknet"`
	GpsStatementVerifier string `json:"GpsStatementVerifier"`
}

package entity

import (
	"encoding/json"
	"math/big"
)

// Call describes a read-only contract call.
// EntryPointSelector is the function name; it is hashed into a selector before dispatch.
type Call struct {
	ContractAddress    string
	EntryPointSelector string
	Calldata           []*big.Int
}

// Invocation describes a state-changing call submitted to the write tier.
type Invocation struct {
	ContractAddress string
	Calldata        []*big.Int
	Signature       []*big.Int
}

// InvocationDetails are optional transaction fields. Nil values take gateway-compatible defaults.
type InvocationDetails struct {
	MaxFee  *big.Int
	Nonce   *big.Int
	Version *big.Int
}

// CompiledContract is a contract class as produced by the compiler.
// Program may hold either a JSON object or a JSON string with the serialized program.
type CompiledContract struct {
	Program           json.RawMessage `json:"program"`
	EntryPointsByType json.RawMessage `json:"entry_points_by_type"`
	ABI               json.RawMessage `json:"abi,omitempty"`
}

// DeployContractPayload is the input of a DEPLOY transaction. An empty AddressSalt is replaced by a random felt.
type DeployContractPayload struct {
	Contract            CompiledContract
	ConstructorCalldata []*big.Int
	AddressSalt         string
}

// DeclareContractPayload is the input of a DECLARE transaction.
type DeclareContractPayload struct {
	Contract CompiledContract
	Version  *big.Int
}

// Transaction is the normalized answer of get_transaction.
type Transaction struct {
	TransactionHash    string         `json:"transaction_hash,omitempty"`
	Type               string         `json:"type,omitempty"`
	Status             string         `json:"status,omitempty"`
	BlockHash          string         `json:"block_hash,omitempty"`
	BlockNumber        *uint64        `json:"block_number,omitempty"`
	TransactionIndex   *uint64        `json:"transaction_index,omitempty"`
	ContractAddress    string         `json:"contract_address,omitempty"`
	SenderAddress      string         `json:"sender_address,omitempty"`
	EntryPointSelector string         `json:"entry_point_selector,omitempty"`
	ClassHash          string         `json:"class_hash,omitempty"`
	ContractClass      *ContractClass `json:"contract_class,omitempty"`
	Calldata           []string       `json:"calldata"`
	Signature          []string       `json:"signature,omitempty"`
	Nonce              string         `json:"nonce,omitempty"`
	MaxFee             string         `json:"max_fee,omitempty"`
	Version            string         `json:"version,omitempty"`
}

// Event is a contract event emitted during execution.
type Event struct {
	FromAddress string   `json:"from_address"`
	Keys        []string `json:"keys"`
	Data        []string `json:"data"`
}

// MessageToL1 is a message sent from L2 to L1.
type MessageToL1 struct {
	FromAddress string   `json:"from_address"`
	ToAddress   string   `json:"to_address"`
	Payload     []string `json:"payload"`
}

// MessageToL2 is the L1 message consumed by an L1 handler transaction.
type MessageToL2 struct {
	FromAddress string   `json:"from_address"`
	ToAddress   string   `json:"to_address"`
	Selector    string   `json:"selector"`
	Payload     []string `json:"payload"`
	Nonce       string   `json:"nonce,omitempty"`
}

// ExecutionResources summarizes the Cairo resources used by a transaction.
type ExecutionResources struct {
	NSteps                 uint64            `json:"n_steps"`
	BuiltinInstanceCounter map[string]uint64 `json:"builtin_instance_counter"`
	NMemoryHoles           uint64            `json:"n_memory_holes"`
}

// TransactionReceipt is the normalized answer of get_transaction_receipt.
type TransactionReceipt struct {
	TransactionHash    string              `json:"transaction_hash"`
	Status             TransactionStatus   `json:"status"`
	StatusData         string              `json:"status_data,omitempty"`
	ActualFee          string              `json:"actual_fee,omitempty"`
	BlockHash          string              `json:"block_hash,omitempty"`
	BlockNumber        *uint64             `json:"block_number,omitempty"`
	TransactionIndex   *uint64             `json:"transaction_index,omitempty"`
	MessagesSent       []MessageToL1       `json:"messages_sent"`
	L1OriginMessage    *MessageToL2        `json:"l1_origin_message,omitempty"`
	Events             []Event             `json:"events"`
	ExecutionResources *ExecutionResources `json:"execution_resources,omitempty"`
}

// TransactionTrace is the answer of get_transaction_trace. Invocation trees are kept as raw JSON.
type TransactionTrace struct {
	ValidateInvocation    json.RawMessage `json:"validate_invocation,omitempty"`
	FunctionInvocation    json.RawMessage `json:"function_invocation,omitempty"`
	FeeTransferInvocation json.RawMessage `json:"fee_transfer_invocation,omitempty"`
	Signature             []string        `json:"signature"`
}

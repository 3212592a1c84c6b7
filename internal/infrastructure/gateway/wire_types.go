package gateway

import (
	stdjson "encoding/json"

	"sequencer_gateway/internal/domain/entity"
)

// Transaction types accepted by add_transaction.
const (
	TxTypeInvokeFunction = "INVOKE_FUNCTION"
	TxTypeDeploy         = "DEPLOY"
	TxTypeDeclare        = "DECLARE"
)

// TransactionRequest is the body of add_transaction. It is implemented by the request types below only.
type TransactionRequest interface {
	transactionRequest()
}

// InvokeFunctionRequest is an INVOKE_FUNCTION transaction; estimate_fee takes the same shape.
type InvokeFunctionRequest struct {
	Type            string   `json:"type"`
	ContractAddress string   `json:"contract_address"`
	Calldata        []string `json:"calldata"`
	Signature       []string `json:"signature"`
	Nonce           string   `json:"nonce,omitempty"`
	MaxFee          string   `json:"max_fee,omitempty"`
	Version         string   `json:"version"`
}

// ContractDefinition is a contract class with its program already compressed.
type ContractDefinition struct {
	Program           string             `json:"program"`
	EntryPointsByType stdjson.RawMessage `json:"entry_points_by_type"`
	ABI               stdjson.RawMessage `json:"abi,omitempty"`
}

// DeployRequest is a DEPLOY transaction.
type DeployRequest struct {
	Type                string             `json:"type"`
	ContractAddressSalt string             `json:"contract_address_salt"`
	ConstructorCalldata []string           `json:"constructor_calldata"`
	ContractDefinition  ContractDefinition `json:"contract_definition"`
}

// DeclareRequest is a DECLARE transaction.
type DeclareRequest struct {
	Type          string             `json:"type"`
	ContractClass ContractDefinition `json:"contract_class"`
	Nonce         string             `json:"nonce"`
	Signature     []string           `json:"signature"`
	SenderAddress string             `json:"sender_address"`
	Version       string             `json:"version"`
}

func (InvokeFunctionRequest) transactionRequest() {}
func (DeployRequest) transactionRequest()         {}
func (DeclareRequest) transactionRequest()        {}

// CallContractRequest is the body of call_contract.
type CallContractRequest struct {
	Signature          []string `json:"signature"`
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
}

// CallContractResult is the raw answer of call_contract.
type CallContractResult struct {
	Result []string `json:"result"`
}

// AddTransactionResponse is the raw answer of add_transaction for every transaction type.
type AddTransactionResponse struct {
	Code            string `json:"code"`
	TransactionHash string `json:"transaction_hash"`
	Address         string `json:"address,omitempty"`
	ClassHash       string `json:"class_hash,omitempty"`
}

// RawFeeEstimate is estimate_fee decoded with every integer literal kept as *big.Int.
type RawFeeEstimate map[string]any

// RawTransaction is a transaction as embedded in blocks and get_transaction.
type RawTransaction struct {
	TransactionHash     string            `json:"transaction_hash"`
	Type                string            `json:"type"`
	Version             string            `json:"version"`
	ContractAddress     string            `json:"contract_address"`
	SenderAddress       string            `json:"sender_address"`
	EntryPointSelector  string            `json:"entry_point_selector"`
	ClassHash           string            `json:"class_hash"`
	Nonce               string            `json:"nonce"`
	MaxFee              string            `json:"max_fee"`
	Calldata            []string          `json:"calldata"`
	ConstructorCalldata []string          `json:"constructor_calldata"`
	Signature           []string          `json:"signature"`
	ContractClass       *RawContractClass `json:"contract_class"`
}

// RawTransactionResponse is the raw answer of get_transaction.
type RawTransactionResponse struct {
	Status           string         `json:"status"`
	BlockHash        string         `json:"block_hash"`
	BlockNumber      *uint64        `json:"block_number"`
	TransactionIndex *uint64        `json:"transaction_index"`
	Transaction      RawTransaction `json:"transaction"`
}

// RawTransactionReceipt is the raw answer of get_transaction_receipt.
type RawTransactionReceipt struct {
	Status                entity.TransactionStatus         `json:"status"`
	TransactionHash       string                           `json:"transaction_hash"`
	BlockHash             string                           `json:"block_hash"`
	BlockNumber           *uint64                          `json:"block_number"`
	TransactionIndex      *uint64                          `json:"transaction_index"`
	ActualFee             string                           `json:"actual_fee"`
	TxFailureReason       *entity.TransactionFailureReason `json:"tx_failure_reason"`
	L2ToL1Messages        []entity.MessageToL1             `json:"l2_to_l1_messages"`
	L1ToL2ConsumedMessage *entity.MessageToL2              `json:"l1_to_l2_consumed_message"`
	Events                []entity.Event                   `json:"events"`
	ExecutionResources    *entity.ExecutionResources       `json:"execution_resources"`
}

// RawBlock is the raw answer of get_block.
type RawBlock struct {
	BlockHash        string           `json:"block_hash"`
	BlockNumber      *uint64          `json:"block_number"`
	ParentBlockHash  string           `json:"parent_block_hash"`
	StateRoot        string           `json:"state_root"`
	Status           string           `json:"status"`
	Timestamp        int64            `json:"timestamp"`
	GasPrice         string           `json:"gas_price"`
	SequencerAddress string           `json:"sequencer_address"`
	StarknetVersion  string           `json:"starknet_version"`
	Transactions     []RawTransaction `json:"transactions"`
}

// RawContractClass is a class as served by the feeder; Program may be a JSON object or a JSON string.
type RawContractClass struct {
	Program           stdjson.RawMessage `json:"program"`
	EntryPointsByType stdjson.RawMessage `json:"entry_points_by_type"`
	ABI               stdjson.RawMessage `json:"abi"`
}

// RawContractCode is the raw answer of get_code.
type RawContractCode struct {
	Bytecode []string           `json:"bytecode"`
	ABI      stdjson.RawMessage `json:"abi"`
}

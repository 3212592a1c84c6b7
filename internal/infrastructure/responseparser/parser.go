// Package responseparser reshapes raw gateway answers into the client's public types.
// Every function is pure and tolerant of missing optional fields.
package responseparser

import (
	"fmt"

	"sequencer_gateway/internal/domain/entity"
	"sequencer_gateway/internal/infrastructure/gateway"
	"sequencer_gateway/internal/pkg/utils"
)

// ParseBlock maps state_root, parent_block_hash and sequencer_address to their public names
// and reduces the embedded transactions to their hashes.
func ParseBlock(raw gateway.RawBlock) entity.Block {
	hashes := make([]string, 0, len(raw.Transactions))
	for _, tx := range raw.Transactions {
		if tx.TransactionHash != "" {
			hashes = append(hashes, tx.TransactionHash)
		}
	}
	return entity.Block{
		BlockHash:       raw.BlockHash,
		BlockNumber:     raw.BlockNumber,
		ParentHash:      raw.ParentBlockHash,
		NewRoot:         raw.StateRoot,
		Status:          raw.Status,
		Timestamp:       raw.Timestamp,
		GasPrice:        raw.GasPrice,
		Sequencer:       raw.SequencerAddress,
		StarknetVersion: raw.StarknetVersion,
		Transactions:    hashes,
	}
}

// ParseTransaction flattens get_transaction. Missing calldata becomes an empty list.
func ParseTransaction(raw gateway.RawTransactionResponse) (entity.Transaction, error) {
	tx := raw.Transaction
	calldata := tx.Calldata
	if calldata == nil {
		calldata = tx.ConstructorCalldata
	}
	if calldata == nil {
		calldata = []string{}
	}

	out := entity.Transaction{
		TransactionHash:    tx.TransactionHash,
		Type:               tx.Type,
		Status:             raw.Status,
		BlockHash:          raw.BlockHash,
		BlockNumber:        raw.BlockNumber,
		TransactionIndex:   raw.TransactionIndex,
		ContractAddress:    tx.ContractAddress,
		SenderAddress:      tx.SenderAddress,
		EntryPointSelector: tx.EntryPointSelector,
		ClassHash:          tx.ClassHash,
		Calldata:           calldata,
		Signature:          tx.Signature,
		Nonce:              tx.Nonce,
		MaxFee:             tx.MaxFee,
		Version:            tx.Version,
	}
	if tx.ContractClass != nil {
		class, err := ParseContractClass(*tx.ContractClass)
		if err != nil {
			return entity.Transaction{}, err
		}
		out.ContractClass = &class
	}
	return out, nil
}

// ParseTransactionReceipt renames the message fields and lifts the failure message into StatusData.
func ParseTransactionReceipt(raw gateway.RawTransactionReceipt) entity.TransactionReceipt {
	out := entity.TransactionReceipt{
		TransactionHash:    raw.TransactionHash,
		Status:             raw.Status,
		ActualFee:          raw.ActualFee,
		BlockHash:          raw.BlockHash,
		BlockNumber:        raw.BlockNumber,
		TransactionIndex:   raw.TransactionIndex,
		MessagesSent:       raw.L2ToL1Messages,
		L1OriginMessage:    raw.L1ToL2ConsumedMessage,
		Events:             raw.Events,
		ExecutionResources: raw.ExecutionResources,
	}
	if raw.TxFailureReason != nil {
		out.StatusData = raw.TxFailureReason.ErrorMessage
	}
	if out.MessagesSent == nil {
		out.MessagesSent = []entity.MessageToL1{}
	}
	if out.Events == nil {
		out.Events = []entity.Event{}
	}
	return out
}

// ParseFeeEstimate reads overall_fee, falling back to the older amount key.
func ParseFeeEstimate(raw gateway.RawFeeEstimate) entity.FeeEstimate {
	overall, ok := raw["overall_fee"]
	if !ok || overall == nil {
		overall = raw["amount"]
	}
	out := entity.FeeEstimate{
		OverallFee:  utils.BigIntFromAny(overall),
		GasConsumed: utils.BigIntFromAny(raw["gas_consumed"]),
		GasPrice:    utils.BigIntFromAny(raw["gas_price"]),
	}
	if unit, ok := raw["unit"].(string); ok {
		out.Unit = unit
	}
	return out
}

// ParseCallContractResponse copies the returned felts.
func ParseCallContractResponse(raw gateway.CallContractResult) entity.CallContractResponse {
	result := raw.Result
	if result == nil {
		result = []string{}
	}
	return entity.CallContractResponse{Result: result}
}

// ParseInvokeFunctionResponse keeps the transaction hash.
func ParseInvokeFunctionResponse(raw gateway.AddTransactionResponse) entity.InvokeFunctionResponse {
	return entity.InvokeFunctionResponse{TransactionHash: raw.TransactionHash}
}

// ParseDeployContractResponse maps address to contract_address.
func ParseDeployContractResponse(raw gateway.AddTransactionResponse) entity.DeployContractResponse {
	return entity.DeployContractResponse{TransactionHash: raw.TransactionHash, ContractAddress: raw.Address}
}

// ParseDeclareContractResponse keeps the transaction and class hashes.
func ParseDeclareContractResponse(raw gateway.AddTransactionResponse) entity.DeclareContractResponse {
	return entity.DeclareContractResponse{TransactionHash: raw.TransactionHash, ClassHash: raw.ClassHash}
}

// ParseContractClass compresses the program, which may arrive as an object or as a JSON string.
func ParseContractClass(raw gateway.RawContractClass) (entity.ContractClass, error) {
	program, err := utils.CompressProgram(raw.Program)
	if err != nil {
		return entity.ContractClass{}, fmt.Errorf("failed to parse contract class: %w", err)
	}
	return entity.ContractClass{
		Program:           program,
		EntryPointsByType: raw.EntryPointsByType,
		ABI:               raw.ABI,
	}, nil
}

// ParseContractCode copies get_code.
func ParseContractCode(raw gateway.RawContractCode) entity.ContractCode {
	bytecode := raw.Bytecode
	if bytecode == nil {
		bytecode = []string{}
	}
	return entity.ContractCode{Bytecode: bytecode, ABI: raw.ABI}
}

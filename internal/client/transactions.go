package client

import (
	"context"
	"fmt"
	"strings"

	"sequencer_gateway/internal/domain/entity"
	"sequencer_gateway/internal/infrastructure/gateway"
	"sequencer_gateway/internal/infrastructure/responseparser"
	"sequencer_gateway/internal/pkg/utils"

	"go.uber.org/zap"
)

// placeholder sender for DECLARE v0 transactions
const declareSenderAddress = "0x1"

func contractDefinition(contract entity.CompiledContract) (gateway.ContractDefinition, error) {
	program, err := utils.CompressProgram(contract.Program)
	if err != nil {
		return gateway.ContractDefinition{}, err
	}
	return gateway.ContractDefinition{
		Program:           program,
		EntryPointsByType: contract.EntryPointsByType,
		ABI:               contract.ABI,
	}, nil
}

// InvokeFunction submits an INVOKE_FUNCTION transaction. A nil nonce is omitted, max fee defaults
// to zero and version to one.
func (c *SequencerClient) InvokeFunction(ctx context.Context, invocation entity.Invocation, details entity.InvocationDetails) (*entity.InvokeFunctionResponse, error) {
	body := gateway.InvokeFunctionRequest{
		Type:            gateway.TxTypeInvokeFunction,
		ContractAddress: strings.TrimSpace(invocation.ContractAddress),
		Calldata:        utils.ToDecimalStrings(invocation.Calldata),
		Signature:       utils.ToDecimalStrings(invocation.Signature),
		MaxFee:          utils.ToHexOr(details.MaxFee, 0),
		Version:         utils.ToHexOr(details.Version, 1),
	}
	if details.Nonce != nil {
		body.Nonce = utils.ToHex(details.Nonce)
	}

	raw, err := gateway.Call(ctx, c.dispatcher, gateway.AddTransaction, gateway.NoQuery{}, gateway.TransactionRequest(body))
	if err != nil {
		return nil, err
	}
	res := responseparser.ParseInvokeFunctionResponse(raw)
	c.logger.Info("Invoke transaction submitted", zap.String("txHash", res.TransactionHash))
	return &res, nil
}

// DeployContract submits a DEPLOY transaction with the program compressed.
func (c *SequencerClient) DeployContract(ctx context.Context, payload entity.DeployContractPayload) (*entity.DeployContractResponse, error) {
	salt := strings.TrimSpace(payload.AddressSalt)
	if salt == "" {
		var err error
		if salt, err = utils.RandomFelt(); err != nil {
			return nil, err
		}
	}
	def, err := contractDefinition(payload.Contract)
	if err != nil {
		return nil, fmt.Errorf("could not prepare deploy transaction: %w", err)
	}

	body := gateway.DeployRequest{
		Type:                gateway.TxTypeDeploy,
		ContractAddressSalt: salt,
		ConstructorCalldata: utils.ToDecimalStrings(payload.ConstructorCalldata),
		ContractDefinition:  def,
	}
	raw, err := gateway.Call(ctx, c.dispatcher, gateway.AddTransaction, gateway.NoQuery{}, gateway.TransactionRequest(body))
	if err != nil {
		return nil, err
	}
	res := responseparser.ParseDeployContractResponse(raw)
	c.logger.Info("Deploy transaction submitted",
		zap.String("txHash", res.TransactionHash),
		zap.String("contractAddress", res.ContractAddress))
	return &res, nil
}

// DeclareContract submits a DECLARE transaction with the program compressed.
func (c *SequencerClient) DeclareContract(ctx context.Context, payload entity.DeclareContractPayload) (*entity.DeclareContractResponse, error) {
	def, err := contractDefinition(payload.Contract)
	if err != nil {
		return nil, fmt.Errorf("could not prepare declare transaction: %w", err)
	}

	body := gateway.DeclareRequest{
		Type:          gateway.TxTypeDeclare,
		ContractClass: def,
		Nonce:         utils.ToHex(nil),
		Signature:     []string{},
		SenderAddress: declareSenderAddress,
		Version:       utils.ToHexOr(payload.Version, 0),
	}
	raw, err := gateway.Call(ctx, c.dispatcher, gateway.AddTransaction, gateway.NoQuery{}, gateway.TransactionRequest(body))
	if err != nil {
		return nil, err
	}
	res := responseparser.ParseDeclareContractResponse(raw)
	c.logger.Info("Declare transaction submitted",
		zap.String("txHash", res.TransactionHash),
		zap.String("classHash", res.ClassHash))
	return &res, nil
}

// EstimateFee asks the feeder for the fee of an invocation. A nil block means the pending block.
// Fee fields keep their exact integer values.
func (c *SequencerClient) EstimateFee(ctx context.Context, invocation entity.Invocation, details entity.InvocationDetails, block *entity.BlockIdentifier) (*entity.FeeEstimate, error) {
	body := gateway.InvokeFunctionRequest{
		Type:            gateway.TxTypeInvokeFunction,
		ContractAddress: strings.TrimSpace(invocation.ContractAddress),
		Calldata:        utils.ToDecimalStrings(invocation.Calldata),
		Signature:       utils.ToDecimalStrings(invocation.Signature),
		Version:         utils.ToHexOr(details.Version, 1),
	}
	if details.Nonce != nil {
		body.Nonce = utils.ToHex(details.Nonce)
	}

	raw, err := gateway.Call(ctx, c.dispatcher, gateway.EstimateFee, gateway.BlockQuery{Block: orPending(block)}, body)
	if err != nil {
		return nil, err
	}
	res := responseparser.ParseFeeEstimate(raw)
	return &res, nil
}

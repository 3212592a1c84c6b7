package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"sequencer_gateway/internal/app/service"
	"sequencer_gateway/internal/domain/entity"
	"sequencer_gateway/internal/infrastructure/gateway"
	networkdefinition "sequencer_gateway/internal/infrastructure/network/definition"
	"sequencer_gateway/internal/infrastructure/responseparser"
	"sequencer_gateway/internal/pkg/logger"
	"sequencer_gateway/internal/pkg/utils"

	"go.uber.org/zap"
)

// Options configure a SequencerClient. BaseURL wins over Network; empty tier URLs and chain id
// are derived from the base URL.
type Options struct {
	Network          string
	BaseURL          string
	FeederGatewayURL string
	GatewayURL       string
	ChainID          entity.ChainID

	Gateway gateway.Config
	Waiter  service.WaiterConfig
}

// SequencerClient talks to the feeder gateway and the gateway of one network.
// It holds only immutable configuration and is safe for concurrent use.
type SequencerClient struct {
	dispatcher *gateway.Dispatcher
	waiter     *service.TransactionWaiterService
	target     entity.NetworkTarget
	logger     *zap.Logger
}

// NewSequencerClient resolves the network target and builds the client.
func NewSequencerClient(opts Options, zapLogger *zap.Logger) (*SequencerClient, error) {
	log := zapLogger.Named("SequencerClient")
	appLogger := logger.NewZapAdapter(log)

	target, err := networkdefinition.NewNetworkDefinitionProvider(appLogger).Resolve(networkdefinition.Options{
		Network:          opts.Network,
		BaseURL:          opts.BaseURL,
		FeederGatewayURL: opts.FeederGatewayURL,
		GatewayURL:       opts.GatewayURL,
		ChainID:          opts.ChainID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network target: %w", err)
	}

	c := &SequencerClient{
		dispatcher: gateway.NewDispatcher(target, opts.Gateway, zapLogger),
		target:     target,
		logger:     log,
	}
	if opts.Waiter.Metrics == nil {
		opts.Waiter.Metrics = opts.Gateway.Metrics
	}
	c.waiter = service.NewTransactionWaiterService(c, appLogger, opts.Waiter)
	return c, nil
}

// ChainID returns the chain identifier of the target network.
func (c *SequencerClient) ChainID() entity.ChainID { return c.target.ChainID }

// Target returns the resolved gateway URLs.
func (c *SequencerClient) Target() entity.NetworkTarget { return c.target }

func orPending(block *entity.BlockIdentifier) *entity.BlockIdentifier {
	if block == nil {
		return entity.PendingBlock()
	}
	return block
}

func normalizeHash(kind, value string) (string, error) {
	h, err := utils.NormalizeHex(value)
	if err != nil {
		return "", fmt.Errorf("invalid %s %q: %w", kind, value, err)
	}
	return h, nil
}

// GetContractAddresses returns the L1 core contract addresses.
func (c *SequencerClient) GetContractAddresses(ctx context.Context) (*entity.ContractAddresses, error) {
	res, err := gateway.Call(ctx, c.dispatcher, gateway.GetContractAddresses, gateway.NoQuery{}, gateway.NoBody{})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CallContract runs a view call. A nil block means the pending block.
func (c *SequencerClient) CallContract(ctx context.Context, call entity.Call, block *entity.BlockIdentifier) (*entity.CallContractResponse, error) {
	body := gateway.CallContractRequest{
		Signature:          []string{},
		ContractAddress:    call.ContractAddress,
		EntryPointSelector: utils.GetSelectorFromName(call.EntryPointSelector),
		Calldata:           utils.ToDecimalStrings(call.Calldata),
	}
	raw, err := gateway.Call(ctx, c.dispatcher, gateway.CallContract, gateway.BlockQuery{Block: orPending(block)}, body)
	if err != nil {
		return nil, err
	}
	res := responseparser.ParseCallContractResponse(raw)
	return &res, nil
}

// GetBlock fetches a block. A nil block lets the gateway pick the latest one.
func (c *SequencerClient) GetBlock(ctx context.Context, block *entity.BlockIdentifier) (*entity.Block, error) {
	raw, err := gateway.Call(ctx, c.dispatcher, gateway.GetBlock, gateway.BlockQuery{Block: block}, gateway.NoBody{})
	if err != nil {
		return nil, err
	}
	res := responseparser.ParseBlock(raw)
	return &res, nil
}

// GetStorageAt reads one storage slot. A nil block means the pending block.
func (c *SequencerClient) GetStorageAt(ctx context.Context, contractAddress string, key *big.Int, block *entity.BlockIdentifier) (string, error) {
	return gateway.Call(ctx, c.dispatcher, gateway.GetStorageAt, gateway.StorageQuery{
		Block:           orPending(block),
		ContractAddress: strings.TrimSpace(contractAddress),
		Key:             key,
	}, gateway.NoBody{})
}

// GetTransaction fetches a transaction by hash.
func (c *SequencerClient) GetTransaction(ctx context.Context, txHash string) (*entity.Transaction, error) {
	h, err := normalizeHash("transaction hash", txHash)
	if err != nil {
		return nil, err
	}
	raw, err := gateway.Call(ctx, c.dispatcher, gateway.GetTransaction, gateway.TransactionHashQuery{TransactionHash: h}, gateway.NoBody{})
	if err != nil {
		return nil, err
	}
	res, err := responseparser.ParseTransaction(raw)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetTransactionReceipt fetches the receipt of a transaction.
func (c *SequencerClient) GetTransactionReceipt(ctx context.Context, txHash string) (*entity.TransactionReceipt, error) {
	h, err := normalizeHash("transaction hash", txHash)
	if err != nil {
		return nil, err
	}
	raw, err := gateway.Call(ctx, c.dispatcher, gateway.GetTransactionReceipt, gateway.TransactionHashQuery{TransactionHash: h}, gateway.NoBody{})
	if err != nil {
		return nil, err
	}
	res := responseparser.ParseTransactionReceipt(raw)
	return &res, nil
}

// GetTransactionStatus fetches the lifecycle status of a transaction.
func (c *SequencerClient) GetTransactionStatus(ctx context.Context, txHash string) (*entity.TransactionStatusResponse, error) {
	h, err := normalizeHash("transaction hash", txHash)
	if err != nil {
		return nil, err
	}
	res, err := gateway.Call(ctx, c.dispatcher, gateway.GetTransactionStatus, gateway.TransactionHashQuery{TransactionHash: h}, gateway.NoBody{})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetTransactionTrace fetches the execution trace of a transaction.
func (c *SequencerClient) GetTransactionTrace(ctx context.Context, txHash string) (*entity.TransactionTrace, error) {
	h, err := normalizeHash("transaction hash", txHash)
	if err != nil {
		return nil, err
	}
	res, err := gateway.Call(ctx, c.dispatcher, gateway.GetTransactionTrace, gateway.TransactionHashQuery{TransactionHash: h}, gateway.NoBody{})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetCode fetches the bytecode and ABI of a deployed contract. A nil block means the pending block.
func (c *SequencerClient) GetCode(ctx context.Context, contractAddress string, block *entity.BlockIdentifier) (*entity.ContractCode, error) {
	raw, err := gateway.Call(ctx, c.dispatcher, gateway.GetCode, gateway.ContractQuery{
		Block:           orPending(block),
		ContractAddress: strings.TrimSpace(contractAddress),
	}, gateway.NoBody{})
	if err != nil {
		return nil, err
	}
	res := responseparser.ParseContractCode(raw)
	return &res, nil
}

// GetClassAt fetches the full class of a deployed contract with its program compressed.
// A nil block means the pending block.
func (c *SequencerClient) GetClassAt(ctx context.Context, contractAddress string, block *entity.BlockIdentifier) (*entity.ContractClass, error) {
	raw, err := gateway.Call(ctx, c.dispatcher, gateway.GetFullContract, gateway.ContractQuery{
		Block:           orPending(block),
		ContractAddress: strings.TrimSpace(contractAddress),
	}, gateway.NoBody{})
	if err != nil {
		return nil, err
	}
	res, err := responseparser.ParseContractClass(raw)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetClassHashAt returns the class hash of a deployed contract. A nil block means the pending block.
func (c *SequencerClient) GetClassHashAt(ctx context.Context, contractAddress string, block *entity.BlockIdentifier) (string, error) {
	return gateway.Call(ctx, c.dispatcher, gateway.GetClassHashAt, gateway.ContractQuery{
		Block:           orPending(block),
		ContractAddress: strings.TrimSpace(contractAddress),
	}, gateway.NoBody{})
}

// GetClassByHash fetches a declared class with its program compressed.
func (c *SequencerClient) GetClassByHash(ctx context.Context, classHash string) (*entity.ContractClass, error) {
	h, err := normalizeHash("class hash", classHash)
	if err != nil {
		return nil, err
	}
	raw, err := gateway.Call(ctx, c.dispatcher, gateway.GetClassByHash, gateway.ClassHashQuery{ClassHash: h}, gateway.NoBody{})
	if err != nil {
		return nil, err
	}
	res, err := responseparser.ParseContractClass(raw)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// WaitForTransaction polls the transaction status until it is accepted, pending or failed.
// A non-positive interval uses the configured poll interval. The wait ends early when ctx is done.
func (c *SequencerClient) WaitForTransaction(ctx context.Context, txHash string, interval time.Duration) error {
	return c.waiter.WaitForTransaction(ctx, txHash, interval)
}

// WaitForTransactions waits for several transactions concurrently.
func (c *SequencerClient) WaitForTransactions(ctx context.Context, txHashes []string, interval time.Duration) error {
	return c.waiter.WaitForTransactions(ctx, txHashes, interval)
}

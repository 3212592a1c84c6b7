package port

import (
	"context"
	"math/big"

	"sequencer_gateway/internal/domain/entity"
)

// SequencerReader is the read side of the sequencer gateway used by the HTTP facade.
type SequencerReader interface {
	TransactionStatusReader
	TransactionWaiter

	ChainID() entity.ChainID
	GetContractAddresses(ctx context.Context) (*entity.ContractAddresses, error)
	GetBlock(ctx context.Context, block *entity.BlockIdentifier) (*entity.Block, error)
	GetTransaction(ctx context.Context, txHash string) (*entity.Transaction, error)
	GetTransactionReceipt(ctx context.Context, txHash string) (*entity.TransactionReceipt, error)
	GetTransactionTrace(ctx context.Context, txHash string) (*entity.TransactionTrace, error)
	GetStorageAt(ctx context.Context, contractAddress string, key *big.Int, block *entity.BlockIdentifier) (string, error)
	GetClassHashAt(ctx context.Context, contractAddress string, block *entity.BlockIdentifier) (string, error)
	GetCode(ctx context.Context, contractAddress string, block *entity.BlockIdentifier) (*entity.ContractCode, error)
}

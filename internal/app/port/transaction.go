package port

import (
	"context"
	"time"

	"sequencer_gateway/internal/domain/entity"
)

// TransactionStatusReader fetches the current status of a transaction.
type TransactionStatusReader interface {
	GetTransactionStatus(ctx context.Context, txHash string) (*entity.TransactionStatusResponse, error)
}

// TransactionWaiter blocks until transactions reach a terminal status.
type TransactionWaiter interface {
	// WaitForTransaction polls until the transaction is accepted or pending, or fails.
	WaitForTransaction(ctx context.Context, txHash string, interval time.Duration) error

	// WaitForTransactions waits for several transactions concurrently and fails on the first failure.
	WaitForTransactions(ctx context.Context, txHashes []string, interval time.Duration) error
}

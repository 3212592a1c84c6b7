package service

import (
	"context"
	"fmt"
	"time"

	"sequencer_gateway/internal/app/port"
	"sequencer_gateway/internal/domain/entity"
	"sequencer_gateway/internal/pkg/metrics"
	"sequencer_gateway/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// DefaultPollInterval is the delay before every status check.
const DefaultPollInterval = 8 * time.Second

const defaultMaxConcurrentWaits = 16

// WaiterConfig tunes TransactionWaiterService.
type WaiterConfig struct {
	PollInterval       time.Duration
	MaxConcurrentWaits int
	Metrics            *metrics.GatewayMetrics
}

// TransactionWaiterService polls transaction status until a terminal state.
type TransactionWaiterService struct {
	reader        port.TransactionStatusReader
	logger        port.Logger
	metrics       *metrics.GatewayMetrics
	interval      time.Duration
	maxConcurrent int
	sleep         func(ctx context.Context, d time.Duration) error
}

// NewTransactionWaiterService creates a waiter on top of a status reader.
func NewTransactionWaiterService(reader port.TransactionStatusReader, logger port.Logger, cfg WaiterConfig) *TransactionWaiterService {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.MaxConcurrentWaits <= 0 {
		cfg.MaxConcurrentWaits = defaultMaxConcurrentWaits
	}
	return &TransactionWaiterService{
		reader:        reader,
		logger:        logger,
		metrics:       cfg.Metrics,
		interval:      cfg.PollInterval,
		maxConcurrent: cfg.MaxConcurrentWaits,
		sleep:         sleepContext,
	}
}

// WaitForTransaction sleeps for interval, checks the status and repeats until the transaction is
// accepted or pending (nil), rejected or not received (*entity.TransactionFailedError), the status
// call fails (that error, unchanged) or ctx is done. A non-positive interval uses the configured one.
func (s *TransactionWaiterService) WaitForTransaction(ctx context.Context, txHash string, interval time.Duration) error {
	if interval <= 0 {
		interval = s.interval
	}

	for attempt := 1; ; attempt++ {
		if err := s.sleep(ctx, interval); err != nil {
			s.logger.Warn("Stopped waiting for transaction", "txHash", txHash, "attempts", attempt-1, "error", err)
			return fmt.Errorf("waiting for transaction %s: %w", txHash, err)
		}

		res, err := s.reader.GetTransactionStatus(ctx, txHash)
		if err != nil {
			return err
		}

		switch {
		case res.TxStatus.IsSuccessful():
			s.logger.Info("Transaction confirmed", "txHash", txHash, "status", string(res.TxStatus), "attempts", attempt)
			s.metrics.ObserveWait(string(res.TxStatus))
			return nil
		case res.TxStatus.IsFailure():
			s.logger.Warn("Transaction failed", "txHash", txHash, "status", string(res.TxStatus))
			s.metrics.ObserveWait(string(res.TxStatus))
			return &entity.TransactionFailedError{Response: *res}
		}

		s.logger.Debug("Transaction not final yet", "txHash", txHash, "status", string(res.TxStatus), "attempt", attempt)
	}
}

// WaitForTransactions waits for every distinct hash concurrently. The first failure cancels the rest.
func (s *TransactionWaiterService) WaitForTransactions(ctx context.Context, txHashes []string, interval time.Duration) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.maxConcurrent)

	for _, txHash := range utils.UniqueStrings(txHashes) {
		txHash := txHash
		eg.Go(func() error {
			return s.WaitForTransaction(egCtx, txHash, interval)
		})
	}
	return eg.Wait()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package hashloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"sequencer_gateway/internal/app/port"
	"sequencer_gateway/internal/pkg/utils"
)

// TransactionHashFileLoader reads transaction hashes from a text file, one per line.
// Blank lines and lines starting with # are ignored.
type TransactionHashFileLoader struct {
	filePath string
	logger   port.Logger
}

// NewTransactionHashFileLoader creates a loader for filePath.
func NewTransactionHashFileLoader(filePath string, logger port.Logger) *TransactionHashFileLoader {
	return &TransactionHashFileLoader{
		filePath: filePath,
		logger:   logger,
	}
}

// GetTransactionHashes returns the normalized hashes in file order. Malformed lines are skipped.
func (l *TransactionHashFileLoader) GetTransactionHashes() ([]string, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction hash file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var hashes []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hash, err := utils.NormalizeHex(line)
		if err != nil || !strings.HasPrefix(strings.ToLower(line), "0x") {
			l.logger.Warn("Skipping invalid transaction hash", "file", l.filePath, "line_number", lineNum, "hash", line)
			continue
		}
		hashes = append(hashes, hash)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning transaction hash file %s: %w", l.filePath, err)
	}

	l.logger.Info("Transaction hashes loaded from file", "count", len(hashes), "path", l.filePath)
	return hashes, nil
}

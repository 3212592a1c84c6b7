package utils

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// RandomFelt returns a uniformly random field element as hex, used for contract address salts.
func RandomFelt() (string, error) {
	var e fp.Element
	if _, err := e.SetRandom(); err != nil {
		return "", fmt.Errorf("failed to generate random felt: %w", err)
	}
	return hexutil.EncodeBig(e.BigInt(new(big.Int))), nil
}

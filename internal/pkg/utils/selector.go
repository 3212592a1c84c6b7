package utils

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var mask250 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 250), big.NewInt(1))

// StarknetKeccak is keccak256 truncated to the low 250 bits.
func StarknetKeccak(data []byte) *big.Int {
	h := new(big.Int).SetBytes(crypto.Keccak256(data))
	return h.And(h, mask250)
}

// GetSelectorFromName returns the entry point selector of a function name as hex.
func GetSelectorFromName(name string) string {
	return hexutil.EncodeBig(StarknetKeccak([]byte(name)))
}

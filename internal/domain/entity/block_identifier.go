package entity

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// BlockTag selects which kind of reference a BlockIdentifier holds.
type BlockTag int

const (
	BlockTagPending BlockTag = iota
	BlockTagLatest
	BlockTagNumber
	BlockTagHash
)

// BlockIdentifier references a block by keyword, number or hash.
// A nil *BlockIdentifier means "let the gateway decide" and renders no query fragment.
type BlockIdentifier struct {
	tag    BlockTag
	number uint64
	hash   *big.Int
}

// PendingBlock returns the identifier of the block currently being built.
func PendingBlock() *BlockIdentifier { return &BlockIdentifier{tag: BlockTagPending} }

// LatestBlock returns the identifier of the latest accepted block.
func LatestBlock() *BlockIdentifier { return &BlockIdentifier{tag: BlockTagLatest} }

// BlockAtNumber references a block by height.
func BlockAtNumber(n uint64) *BlockIdentifier {
	return &BlockIdentifier{tag: BlockTagNumber, number: n}
}

// BlockAtHash references a block by hash. The hash may be 0x-prefixed hex or decimal.
func BlockAtHash(hash string) (*BlockIdentifier, error) {
	h, ok := new(big.Int).SetString(strings.TrimSpace(hash), 0)
	if !ok || h.Sign() < 0 {
		return nil, fmt.Errorf("invalid block hash %q", hash)
	}
	return &BlockIdentifier{tag: BlockTagHash, hash: h}, nil
}

// ParseBlockIdentifier accepts "pending", "latest", a decimal block number or a 0x-prefixed block hash.
// An empty string yields nil.
func ParseBlockIdentifier(s string) (*BlockIdentifier, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, nil
	case strings.EqualFold(s, "pending"):
		return PendingBlock(), nil
	case strings.EqualFold(s, "latest"):
		return LatestBlock(), nil
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		return BlockAtHash(s)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid block identifier %q: %w", s, err)
	}
	return BlockAtNumber(n), nil
}

// Tag reports the kind of reference held.
func (b *BlockIdentifier) Tag() BlockTag { return b.tag }

// Number returns the block height for BlockTagNumber identifiers.
func (b *BlockIdentifier) Number() uint64 { return b.number }

// Hash returns the 0x-prefixed block hash for BlockTagHash identifiers.
func (b *BlockIdentifier) Hash() string {
	if b.hash == nil {
		return ""
	}
	return "0x" + b.hash.Text(16)
}

// QueryFragment renders the identifier as a bare query string fragment.
func (b *BlockIdentifier) QueryFragment() string {
	if b == nil {
		return ""
	}
	switch b.tag {
	case BlockTagPending:
		return "blockNumber=pending"
	case BlockTagLatest:
		return "blockNumber=latest"
	case BlockTagNumber:
		return "blockNumber=" + strconv.FormatUint(b.number, 10)
	case BlockTagHash:
		return "blockHash=" + b.Hash()
	}
	return ""
}

// String implements fmt.Stringer.
func (b *BlockIdentifier) String() string {
	if b == nil {
		return "<none>"
	}
	switch b.tag {
	case BlockTagPending:
		return "pending"
	case BlockTagLatest:
		return "latest"
	case BlockTagNumber:
		return strconv.FormatUint(b.number, 10)
	}
	return b.Hash()
}

package gateway

import (
	"math/big"
	"strings"

	"sequencer_gateway/internal/domain/entity"
)

const blockIdentifierKey = "blockIdentifier"

// QueryParam is one query string pair. Block is used instead of Value for the blockIdentifier key.
type QueryParam struct {
	Key   string
	Value string
	Block *entity.BlockIdentifier
}

// QueryParams is implemented by every typed query object.
type QueryParams interface {
	QueryParams() []QueryParam
}

// NoQuery marks endpoints that take no query string.
type NoQuery struct{}

func (NoQuery) QueryParams() []QueryParam { return nil }

// NoBody marks endpoints that take no request body.
type NoBody struct{}

func blockParam(b *entity.BlockIdentifier) QueryParam {
	return QueryParam{Key: blockIdentifierKey, Block: b}
}

// BlockQuery selects a block.
type BlockQuery struct {
	Block *entity.BlockIdentifier
}

func (q BlockQuery) QueryParams() []QueryParam {
	return []QueryParam{blockParam(q.Block)}
}

// TransactionHashQuery selects a transaction.
type TransactionHashQuery struct {
	TransactionHash string
}

func (q TransactionHashQuery) QueryParams() []QueryParam {
	return []QueryParam{{Key: "transactionHash", Value: q.TransactionHash}}
}

// ContractQuery selects a contract at a block.
type ContractQuery struct {
	Block           *entity.BlockIdentifier
	ContractAddress string
}

func (q ContractQuery) QueryParams() []QueryParam {
	return []QueryParam{blockParam(q.Block), {Key: "contractAddress", Value: q.ContractAddress}}
}

// StorageQuery selects a storage slot of a contract at a block. Key is rendered in decimal.
type StorageQuery struct {
	Block           *entity.BlockIdentifier
	ContractAddress string
	Key             *big.Int
}

func (q StorageQuery) QueryParams() []QueryParam {
	key := "0"
	if q.Key != nil {
		key = q.Key.Text(10)
	}
	return []QueryParam{
		blockParam(q.Block),
		{Key: "contractAddress", Value: q.ContractAddress},
		{Key: "key", Value: key},
	}
}

// ClassHashQuery selects a declared class.
type ClassHashQuery struct {
	ClassHash string
}

func (q ClassHashQuery) QueryParams() []QueryParam {
	return []QueryParam{{Key: "classHash", Value: q.ClassHash}}
}

func isEmptyQuery(params []QueryParam) bool {
	if len(params) == 0 {
		return true
	}
	return len(params) == 1 && params[0].Key == blockIdentifierKey && params[0].Block == nil
}

// BuildQueryString renders params as "?k=v&k=v". The block identifier is inserted as its own fragment.
func BuildQueryString(params []QueryParam) string {
	if isEmptyQuery(params) {
		return ""
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.Key == blockIdentifierKey {
			if fragment := p.Block.QueryFragment(); fragment != "" {
				parts = append(parts, fragment)
			}
			continue
		}
		parts = append(parts, p.Key+"="+p.Value)
	}
	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

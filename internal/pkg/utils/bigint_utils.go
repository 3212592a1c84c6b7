package utils

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ParseBigInt parses a 0x-prefixed hex or decimal string into a non-negative big.Int.
func ParseBigInt(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 0)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative value %q is not a felt", s)
	}
	return v, nil
}

// ToHex renders v as a 0x-prefixed lowercase hex string. Nil renders as "0x0".
func ToHex(v *big.Int) string {
	if v == nil {
		return "0x0"
	}
	return hexutil.EncodeBig(v)
}

// ToHexOr renders v as hex, falling back to def when v is nil.
func ToHexOr(v *big.Int, def int64) string {
	if v == nil {
		return hexutil.EncodeBig(big.NewInt(def))
	}
	return hexutil.EncodeBig(v)
}

// NormalizeHex re-encodes a hex or decimal felt string in canonical hex form.
func NormalizeHex(s string) (string, error) {
	v, err := ParseBigInt(s)
	if err != nil {
		return "", err
	}
	return hexutil.EncodeBig(v), nil
}

// ToDecimalStrings renders every value in base 10. A nil slice yields an empty one.
func ToDecimalStrings(values []*big.Int) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == nil {
			out = append(out, "0")
			continue
		}
		out = append(out, v.Text(10))
	}
	return out
}

// BigIntFromAny converts a decoded JSON value into a big.Int.
// It accepts *big.Int, json.Number, float64 integers and numeric strings; anything else yields nil.
func BigIntFromAny(v any) *big.Int {
	switch t := v.(type) {
	case *big.Int:
		return t
	case json.Number:
		if n, ok := new(big.Int).SetString(t.String(), 10); ok {
			return n
		}
	case float64:
		if f := big.NewFloat(t); f.IsInt() {
			n, _ := f.Int(nil)
			return n
		}
	case string:
		if n, err := ParseBigInt(t); err == nil {
			return n
		}
	}
	return nil
}

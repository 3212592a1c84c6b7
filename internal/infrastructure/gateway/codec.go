package gateway

import (
	stdjson "encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"sequencer_gateway/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// numberJSON keeps numeric literals as json.Number when decoding into interface values.
var numberJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// DecodePreservingIntegers decodes data into generic JSON values and turns every integer
// literal, whatever its magnitude, into a *big.Int. Non-integer numbers stay json.Number.
func DecodePreservingIntegers(data []byte) (any, error) {
	var v any
	if err := numberJSON.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return promoteIntegers(v), nil
}

func promoteIntegers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = promoteIntegers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = promoteIntegers(e)
		}
		return t
	case stdjson.Number:
		if n, ok := new(big.Int).SetString(t.String(), 10); ok {
			return n
		}
		return t
	}
	return v
}

func decodeExactObject(data []byte, out *RawFeeEstimate) error {
	v, err := DecodePreservingIntegers(data)
	if err != nil {
		return err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("expected a JSON object, got %T", v)
	}
	*out = obj
	return nil
}

// classifyFailure turns a non-2xx response into a GatewayError when the body is JSON,
// and into an HTTPError otherwise.
func classifyFailure(statusCode int, statusText string, body []byte) error {
	var parsed any
	if err := numberJSON.Unmarshal(body, &parsed); err != nil {
		return &entity.HTTPError{StatusText: statusText, StatusCode: statusCode}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return &entity.GatewayError{Message: strings.TrimSpace(string(body))}
	}

	gwErr := &entity.GatewayError{Message: jsonScalarString(obj["message"])}
	// Deployments disagree on the key carrying the error code.
	if code, ok := obj["code"]; ok && code != nil {
		gwErr.Code = jsonScalarString(code)
	} else if code, ok := obj["status_code"]; ok && code != nil {
		gwErr.Code = jsonScalarString(code)
	}
	return gwErr
}

func jsonScalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case stdjson.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"
)

// CompressProgram gzips a contract program and encodes it as base64.
// The program may be a JSON object or a JSON string holding the serialized program.
func CompressProgram(program []byte) (string, error) {
	payload := bytes.TrimSpace(program)
	if len(payload) == 0 {
		return "", fmt.Errorf("empty contract program")
	}
	if payload[0] == '"' {
		var s string
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(payload, &s); err != nil {
			return "", fmt.Errorf("failed to decode string program: %w", err)
		}
		payload = []byte(s)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return "", fmt.Errorf("failed to compress program: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish program compression: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecompressProgram reverses CompressProgram.
func DecompressProgram(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode program: %w", err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed program: %w", err)
	}
	defer zr.Close()
	var out bytes.Buffer
	if _, err := out.ReadFrom(zr); err != nil {
		return nil, fmt.Errorf("failed to decompress program: %w", err)
	}
	return out.Bytes(), nil
}

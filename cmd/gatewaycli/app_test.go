package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	path  string
	query string
	body  map[string]any
}

func newGatewayServer(t *testing.T, responses map[string]string) (*httptest.Server, *seenRequest) {
	t.Helper()
	seen := &seenRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		*seen = seenRequest{path: r.URL.Path, query: r.URL.RawQuery}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &seen.body)
		}
		body, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"gatewaycli", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestStatusCommand(t *testing.T) {
	srv, seen := newGatewayServer(t, map[string]string{
		"/feeder_gateway/get_transaction_status": `{"tx_status":"ACCEPTED_ON_L2","block_hash":"0x1"}`,
	})

	out, err := runApp(t, "--base-url", srv.URL, "status", "0x0A")
	require.NoError(t, err)
	assert.Equal(t, "transactionHash=0xa", seen.query)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "ACCEPTED_ON_L2", res["tx_status"])
}

func TestStatusCommandRequiresHash(t *testing.T) {
	_, err := runApp(t, "--base-url", "http://127.0.0.1:1", "status")
	require.Error(t, err)
}

func TestCallCommand(t *testing.T) {
	srv, seen := newGatewayServer(t, map[string]string{
		"/feeder_gateway/call_contract": `{"result":["0x7"]}`,
	})

	out, err := runApp(t, "--base-url", srv.URL, "call",
		"--contract", "0x49d", "--function", "balanceOf", "--calldata", "0x10", "--block", "latest")
	require.NoError(t, err)
	assert.Equal(t, "blockNumber=latest", seen.query)
	assert.Equal(t, []any{"16"}, seen.body["calldata"])
	assert.Contains(t, out, `"0x7"`)
}

func TestEstimateFeeCommand(t *testing.T) {
	srv, seen := newGatewayServer(t, map[string]string{
		"/feeder_gateway/estimate_fee": `{"overall_fee":1000,"gas_price":10,"gas_consumed":100,"unit":"wei"}`,
	})

	out, err := runApp(t, "--base-url", srv.URL, "estimate-fee",
		"--contract", "0x1", "--calldata", "1", "--signature", "2", "--nonce", "3")
	require.NoError(t, err)
	assert.Equal(t, "blockNumber=pending", seen.query)
	assert.Equal(t, "0x3", seen.body["nonce"])
	assert.Contains(t, out, `"overall_fee": 1000`)
}

func TestEstimateFeeRejectsBadFelt(t *testing.T) {
	_, err := runApp(t, "--base-url", "http://127.0.0.1:1", "estimate-fee", "--contract", "0x1", "--calldata", "abc")
	require.Error(t, err)
}

func TestWaitCommand(t *testing.T) {
	srv, _ := newGatewayServer(t, map[string]string{
		"/feeder_gateway/get_transaction_status": `{"tx_status":"PENDING"}`,
	})

	out, err := runApp(t, "--base-url", srv.URL, "wait", "--interval", "1ms", "0x1", "0x2")
	require.NoError(t, err)
	assert.Contains(t, out, `"settled": true`)
}

func TestWaitCommandReportsRejection(t *testing.T) {
	srv, _ := newGatewayServer(t, map[string]string{
		"/feeder_gateway/get_transaction_status": `{"tx_status":"REJECTED"}`,
	})

	_, err := runApp(t, "--base-url", srv.URL, "wait", "--interval", "1ms", "0x1")
	require.EqualError(t, err, "REJECTED")
}

func TestBlockCommandWithoutArgument(t *testing.T) {
	srv, seen := newGatewayServer(t, map[string]string{
		"/feeder_gateway/get_block": `{"block_number":5,"status":"ACCEPTED_ON_L2","transactions":[]}`,
	})

	out, err := runApp(t, "--base-url", srv.URL, "block")
	require.NoError(t, err)
	assert.Empty(t, seen.query)
	assert.Contains(t, out, `"block_number": 5`)
}

func TestWaitCommandReadsHashFile(t *testing.T) {
	srv, seen := newGatewayServer(t, map[string]string{
		"/feeder_gateway/get_transaction_status": `{"tx_status":"ACCEPTED_ON_L1"}`,
	})
	path := filepath.Join(t.TempDir(), "hashes.txt")
	require.NoError(t, os.WriteFile(path, []byte("# one hash\n0x0F\n"), 0o600))

	out, err := runApp(t, "--base-url", srv.URL, "wait", "--interval", "1ms", "--from-file", path)
	require.NoError(t, err)
	assert.Equal(t, "transactionHash=0xf", seen.query)
	assert.Contains(t, out, `"0xf"`)
}

func TestDeclareCommandLoadsArtifact(t *testing.T) {
	srv, seen := newGatewayServer(t, map[string]string{
		"/gateway/add_transaction": `{"code":"TRANSACTION_RECEIVED","transaction_hash":"0x1","class_hash":"0x2"}`,
	})
	path := filepath.Join(t.TempDir(), "contract.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"program":{"data":[]},"entry_points_by_type":{},"abi":[]}`), 0o600))

	out, err := runApp(t, "--base-url", srv.URL, "declare", "--artifact", path)
	require.NoError(t, err)
	assert.Equal(t, "DECLARE", seen.body["type"])
	assert.Contains(t, out, `"class_hash": "0x2"`)
}

func TestDeployCommandUsesGivenSalt(t *testing.T) {
	srv, seen := newGatewayServer(t, map[string]string{
		"/gateway/add_transaction": `{"code":"TRANSACTION_RECEIVED","transaction_hash":"0x1","address":"0x3"}`,
	})
	path := filepath.Join(t.TempDir(), "contract.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"program":{"data":[]},"entry_points_by_type":{}}`), 0o600))

	out, err := runApp(t, "--base-url", srv.URL, "deploy", "--artifact", path, "--salt", "0x5", "--calldata", "7")
	require.NoError(t, err)
	assert.Equal(t, "0x5", seen.body["contract_address_salt"])
	assert.Equal(t, []any{"7"}, seen.body["constructor_calldata"])
	assert.Contains(t, out, `"contract_address": "0x3"`)
}

package gateway_test

import (
	"context"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sequencer_gateway/internal/domain/entity"
	"sequencer_gateway/internal/infrastructure/gateway"
	"sequencer_gateway/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturedRequest struct {
	method      string
	path        string
	rawQuery    string
	contentType string
	body        string
}

func newGateway(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*captured = capturedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			rawQuery:    r.URL.RawQuery,
			contentType: r.Header.Get("Content-Type"),
			body:        string(b),
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newDispatcher(baseURL string, cfg gateway.Config) *gateway.Dispatcher {
	target := entity.NetworkTarget{
		BaseURL:          baseURL,
		FeederGatewayURL: baseURL + "/feeder_gateway",
		GatewayURL:       baseURL + "/gateway",
		ChainID:          entity.ChainIDTestnet,
	}
	return gateway.NewDispatcher(target, cfg, zap.NewNop())
}

func TestCallGetUsesFeederWithoutBodyOrContentType(t *testing.T) {
	srv, req := newGateway(t, http.StatusOK, `{"block_number":123,"status":"ACCEPTED_ON_L2","transactions":[]}`)
	d := newDispatcher(srv.URL, gateway.Config{})

	block, err := gateway.Call(context.Background(), d, gateway.GetBlock,
		gateway.BlockQuery{Block: entity.BlockAtNumber(123)}, gateway.NoBody{})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/feeder_gateway/get_block", req.path)
	assert.Equal(t, "blockNumber=123", req.rawQuery)
	assert.Empty(t, req.contentType)
	assert.Empty(t, req.body)
	require.NotNil(t, block.BlockNumber)
	assert.Equal(t, uint64(123), *block.BlockNumber)
}

func TestCallOmitsEmptyQuery(t *testing.T) {
	srv, req := newGateway(t, http.StatusOK, `{"status":"PENDING"}`)
	d := newDispatcher(srv.URL, gateway.Config{})

	_, err := gateway.Call(context.Background(), d, gateway.GetBlock, gateway.BlockQuery{}, gateway.NoBody{})
	require.NoError(t, err)
	assert.Empty(t, req.rawQuery)
}

func TestCallPostsJSONToWriteTier(t *testing.T) {
	srv, req := newGateway(t, http.StatusOK, `{"code":"TRANSACTION_RECEIVED","transaction_hash":"0x1"}`)
	d := newDispatcher(srv.URL, gateway.Config{})

	body := gateway.InvokeFunctionRequest{
		Type:            gateway.TxTypeInvokeFunction,
		ContractAddress: "0x2",
		Calldata:        []string{"1"},
		Signature:       []string{},
		MaxFee:          "0x0",
		Version:         "0x1",
	}
	res, err := gateway.Call(context.Background(), d, gateway.AddTransaction, gateway.NoQuery{}, gateway.TransactionRequest(body))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/gateway/add_transaction", req.path)
	assert.Equal(t, "application/json", req.contentType)
	assert.JSONEq(t, `{"type":"INVOKE_FUNCTION","contract_address":"0x2","calldata":["1"],"signature":[],"max_fee":"0x0","version":"0x1"}`, req.body)
	assert.Equal(t, "0x1", res.TransactionHash)
}

func TestCallEstimateFeePreservesLargeIntegers(t *testing.T) {
	srv, req := newGateway(t, http.StatusOK, `{"overall_fee":123456789012345678901234567890,"gas_price":9007199254740993,"unit":"wei"}`)
	d := newDispatcher(srv.URL, gateway.Config{})

	res, err := gateway.Call(context.Background(), d, gateway.EstimateFee,
		gateway.BlockQuery{Block: entity.PendingBlock()}, gateway.InvokeFunctionRequest{Type: gateway.TxTypeInvokeFunction})
	require.NoError(t, err)

	assert.Equal(t, "/feeder_gateway/estimate_fee", req.path)
	assert.Equal(t, "blockNumber=pending", req.rawQuery)
	assert.Equal(t, "application/json", req.contentType)

	want, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	got, ok := res["overall_fee"].(*big.Int)
	require.True(t, ok)
	assert.Zero(t, want.Cmp(got))

	gasPrice, ok := res["gas_price"].(*big.Int)
	require.True(t, ok)
	assert.Equal(t, "9007199254740993", gasPrice.String())
	assert.Equal(t, "wei", res["unit"])
}

func TestDecodePreservingIntegersNested(t *testing.T) {
	v, err := gateway.DecodePreservingIntegers([]byte(`{"a":[1,{"b":18446744073709551617}],"c":1.5}`))
	require.NoError(t, err)
	obj := v.(map[string]any)
	arr := obj["a"].([]any)
	assert.Equal(t, int64(1), arr[0].(*big.Int).Int64())
	assert.Equal(t, "18446744073709551617", arr[1].(map[string]any)["b"].(*big.Int).String())
	assert.NotNil(t, obj["c"])
	_, isBig := obj["c"].(*big.Int)
	assert.False(t, isBig)
}

func TestCallGatewayErrorWithCode(t *testing.T) {
	srv, _ := newGateway(t, http.StatusBadRequest, `{"code":"StarknetErrorCode.UNINITIALIZED_CONTRACT","message":"Requested contract address is not deployed."}`)
	d := newDispatcher(srv.URL, gateway.Config{})

	_, err := gateway.Call(context.Background(), d, gateway.GetStorageAt,
		gateway.StorageQuery{ContractAddress: "0x1", Key: big.NewInt(1)}, gateway.NoBody{})
	var gwErr *entity.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "StarknetErrorCode.UNINITIALIZED_CONTRACT", gwErr.Code)
	assert.Equal(t, "Requested contract address is not deployed.", gwErr.Message)
	assert.NotContains(t, err.Error(), "could not")
}

func TestCallGatewayErrorWithStatusCode(t *testing.T) {
	srv, _ := newGateway(t, http.StatusInternalServerError, `{"status_code":500,"message":"Internal error"}`)
	d := newDispatcher(srv.URL, gateway.Config{})

	_, err := gateway.Call(context.Background(), d, gateway.GetTransactionStatus,
		gateway.TransactionHashQuery{TransactionHash: "0x1"}, gateway.NoBody{})
	var gwErr *entity.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "500", gwErr.Code)
	assert.Equal(t, "Internal error", gwErr.Message)
}

func TestCallHTTPErrorOnNonJSONBody(t *testing.T) {
	srv, _ := newGateway(t, http.StatusBadGateway, `<html>upstream down</html>`)
	d := newDispatcher(srv.URL, gateway.Config{})

	_, err := gateway.Call(context.Background(), d, gateway.GetContractAddresses, gateway.NoQuery{}, gateway.NoBody{})
	var httpErr *entity.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, "Bad Gateway", httpErr.StatusText)
	assert.NotContains(t, err.Error(), "upstream")

	var gwErr *entity.GatewayError
	assert.False(t, errors.As(err, &gwErr))
}

func TestCallWrapsTransportFailures(t *testing.T) {
	srv, _ := newGateway(t, http.StatusOK, `{}`)
	d := newDispatcher(srv.URL, gateway.Config{RequestTimeout: time.Second})
	srv.Close()

	_, err := gateway.Call(context.Background(), d, gateway.GetTransaction,
		gateway.TransactionHashQuery{TransactionHash: "0xabc"}, gateway.NoBody{})
	require.Error(t, err)
	want := "could not GET from endpoint " + srv.URL + "/feeder_gateway/get_transaction?transactionHash=0xabc: "
	assert.True(t, strings.HasPrefix(err.Error(), want), err.Error())

	var gwErr *entity.GatewayError
	var httpErr *entity.HTTPError
	assert.False(t, errors.As(err, &gwErr))
	assert.False(t, errors.As(err, &httpErr))
}

func TestCallWrapsDecodeFailures(t *testing.T) {
	srv, _ := newGateway(t, http.StatusOK, `not json`)
	d := newDispatcher(srv.URL, gateway.Config{})

	_, err := gateway.Call(context.Background(), d, gateway.CallContract,
		gateway.BlockQuery{Block: entity.LatestBlock()}, gateway.CallContractRequest{Signature: []string{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not POST from endpoint "+srv.URL+"/feeder_gateway/call_contract?blockNumber=latest")
}

func TestCallHonoursCancelledContext(t *testing.T) {
	srv, _ := newGateway(t, http.StatusOK, `{}`)
	d := newDispatcher(srv.URL, gateway.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gateway.Call(ctx, d, gateway.GetContractAddresses, gateway.NoQuery{}, gateway.NoBody{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCallRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewGatewayMetrics(reg)
	require.NoError(t, err)

	srv, _ := newGateway(t, http.StatusOK, `"0x5"`)
	d := newDispatcher(srv.URL, gateway.Config{Metrics: m, RateLimit: 100, RateBurst: 2})

	value, err := gateway.Call(context.Background(), d, gateway.GetStorageAt,
		gateway.StorageQuery{Block: entity.PendingBlock(), ContractAddress: "0x1", Key: big.NewInt(2)}, gateway.NoBody{})
	require.NoError(t, err)
	assert.Equal(t, "0x5", value)

	n, err := testutil.GatherAndCount(reg, "sequencer_gateway_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDispatcherURL(t *testing.T) {
	d := newDispatcher("https://example.test", gateway.Config{})
	assert.Equal(t, "https://example.test/gateway/add_transaction", d.URL(gateway.TierGateway, gateway.NameAddTransaction, nil))
	assert.Equal(t, "https://example.test/feeder_gateway/get_block?blockNumber=latest",
		d.URL(gateway.TierFeeder, gateway.NameGetBlock, gateway.BlockQuery{Block: entity.LatestBlock()}.QueryParams()))
	assert.Equal(t, entity.ChainIDTestnet, d.Target().ChainID)
}

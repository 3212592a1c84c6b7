package gateway

import (
	"fmt"

	"sequencer_gateway/internal/domain/entity"

	"github.com/valyala/fasthttp"
)

// EndpointName is the path segment of a gateway operation.
type EndpointName string

const (
	NameGetContractAddresses  EndpointName = "get_contract_addresses"
	NameAddTransaction        EndpointName = "add_transaction"
	NameGetTransaction        EndpointName = "get_transaction"
	NameGetTransactionStatus  EndpointName = "get_transaction_status"
	NameGetTransactionTrace   EndpointName = "get_transaction_trace"
	NameGetTransactionReceipt EndpointName = "get_transaction_receipt"
	NameGetStorageAt          EndpointName = "get_storage_at"
	NameGetCode               EndpointName = "get_code"
	NameGetBlock              EndpointName = "get_block"
	NameCallContract          EndpointName = "call_contract"
	NameEstimateFee           EndpointName = "estimate_fee"
	NameGetClassByHash        EndpointName = "get_class_by_hash"
	NameGetClassHashAt        EndpointName = "get_class_hash_at"
	NameGetFullContract       EndpointName = "get_full_contract"
)

// Tier selects the gateway surface an endpoint lives on.
type Tier int

const (
	TierFeeder Tier = iota // read-only feeder_gateway
	TierGateway            // transaction submission
)

func (t Tier) String() string {
	if t == TierGateway {
		return "gateway"
	}
	return "feeder_gateway"
}

type route struct {
	tier          Tier
	method        string
	acceptsQuery  bool
	acceptsBody   bool
	exactIntegers bool
}

// writeEndpoints go to the gateway tier, everything else to the feeder.
var writeEndpoints = map[EndpointName]struct{}{ //nolint:gochecknoglobals
	NameAddTransaction: {},
}

// postEndpoints are sent as POST, everything else as GET.
var postEndpoints = map[EndpointName]struct{}{ //nolint:gochecknoglobals
	NameAddTransaction: {},
	NameCallContract:   {},
	NameEstimateFee:    {},
}

// exactIntegerEndpoints decode every integer literal as *big.Int.
var exactIntegerEndpoints = map[EndpointName]struct{}{ //nolint:gochecknoglobals
	NameEstimateFee: {},
}

// argumentShapes lists every endpoint with whether it accepts a query and a body.
var argumentShapes = map[EndpointName][2]bool{ //nolint:gochecknoglobals
	NameGetContractAddresses:  {false, false},
	NameAddTransaction:        {false, true},
	NameGetTransaction:        {true, false},
	NameGetTransactionStatus:  {true, false},
	NameGetTransactionTrace:   {true, false},
	NameGetTransactionReceipt: {true, false},
	NameGetStorageAt:          {true, false},
	NameGetCode:               {true, false},
	NameGetBlock:              {true, false},
	NameCallContract:          {true, true},
	NameEstimateFee:           {true, true},
	NameGetClassByHash:        {true, false},
	NameGetClassHashAt:        {true, false},
	NameGetFullContract:       {true, false},
}

var routes = buildRoutes() //nolint:gochecknoglobals

func buildRoutes() map[EndpointName]route {
	out := make(map[EndpointName]route, len(argumentShapes))
	for name, shape := range argumentShapes {
		r := route{tier: TierFeeder, method: fasthttp.MethodGet, acceptsQuery: shape[0], acceptsBody: shape[1]}
		if _, ok := writeEndpoints[name]; ok {
			r.tier = TierGateway
		}
		if _, ok := postEndpoints[name]; ok {
			r.method = fasthttp.MethodPost
		}
		_, r.exactIntegers = exactIntegerEndpoints[name]
		out[name] = r
	}
	for _, set := range []map[EndpointName]struct{}{writeEndpoints, postEndpoints, exactIntegerEndpoints} {
		for name := range set {
			if _, ok := argumentShapes[name]; !ok {
				panic(fmt.Sprintf("gateway: %q is routed but has no argument shape", name))
			}
		}
	}
	return out
}

// Lookup returns the tier and HTTP method of a named endpoint.
func Lookup(name EndpointName) (Tier, string, bool) {
	r, ok := routes[name]
	return r.tier, r.method, ok
}

// declared collects every endpoint value built at init, so the registry can be checked for gaps.
var declared = map[EndpointName]struct{}{} //nolint:gochecknoglobals

// Endpoint is a typed gateway operation: Q is its query object, B its body and R its raw response.
type Endpoint[Q QueryParams, B any, R any] struct {
	name   EndpointName
	route  route
	decode func(data []byte, out *R) error
}

// Name returns the endpoint path segment.
func (e Endpoint[Q, B, R]) Name() EndpointName { return e.name }

// Tier returns the gateway surface of the endpoint.
func (e Endpoint[Q, B, R]) Tier() Tier { return e.route.tier }

// Method returns the HTTP method of the endpoint.
func (e Endpoint[Q, B, R]) Method() string { return e.route.method }

func checkedRoute[Q QueryParams, B any](name EndpointName, exact bool) route {
	r, ok := routes[name]
	if !ok {
		panic(fmt.Sprintf("gateway: endpoint %q has no route", name))
	}
	var (
		q Q
		b B
	)
	_, noQuery := any(q).(NoQuery)
	_, noBody := any(b).(NoBody)
	if r.acceptsQuery == noQuery {
		panic(fmt.Sprintf("gateway: endpoint %q query type %T does not match its route", name, q))
	}
	if r.acceptsBody == noBody {
		panic(fmt.Sprintf("gateway: endpoint %q body type does not match its route", name))
	}
	if r.exactIntegers != exact {
		panic(fmt.Sprintf("gateway: endpoint %q integer decoding does not match its route", name))
	}
	declared[name] = struct{}{}
	return r
}

func newEndpoint[Q QueryParams, B any, R any](name EndpointName) Endpoint[Q, B, R] {
	return Endpoint[Q, B, R]{
		name:  name,
		route: checkedRoute[Q, B](name, false),
		decode: func(data []byte, out *R) error {
			return json.Unmarshal(data, out)
		},
	}
}

func newExactEndpoint[Q QueryParams, B any](name EndpointName) Endpoint[Q, B, RawFeeEstimate] {
	return Endpoint[Q, B, RawFeeEstimate]{
		name:   name,
		route:  checkedRoute[Q, B](name, true),
		decode: decodeExactObject,
	}
}

// Endpoints. Construction panics when an endpoint disagrees with the routing tables.
var (
	GetContractAddresses  = newEndpoint[NoQuery, NoBody, entity.ContractAddresses](NameGetContractAddresses)
	AddTransaction        = newEndpoint[NoQuery, TransactionRequest, AddTransactionResponse](NameAddTransaction)
	GetTransaction        = newEndpoint[TransactionHashQuery, NoBody, RawTransactionResponse](NameGetTransaction)
	GetTransactionStatus  = newEndpoint[TransactionHashQuery, NoBody, entity.TransactionStatusResponse](NameGetTransactionStatus)
	GetTransactionTrace   = newEndpoint[TransactionHashQuery, NoBody, entity.TransactionTrace](NameGetTransactionTrace)
	GetTransactionReceipt = newEndpoint[TransactionHashQuery, NoBody, RawTransactionReceipt](NameGetTransactionReceipt)
	GetStorageAt          = newEndpoint[StorageQuery, NoBody, string](NameGetStorageAt)
	GetCode               = newEndpoint[ContractQuery, NoBody, RawContractCode](NameGetCode)
	GetBlock              = newEndpoint[BlockQuery, NoBody, RawBlock](NameGetBlock)
	CallContract          = newEndpoint[BlockQuery, CallContractRequest, CallContractResult](NameCallContract)
	EstimateFee           = newExactEndpoint[BlockQuery, InvokeFunctionRequest](NameEstimateFee)
	GetClassByHash        = newEndpoint[ClassHashQuery, NoBody, RawContractClass](NameGetClassByHash)
	GetClassHashAt        = newEndpoint[ContractQuery, NoBody, string](NameGetClassHashAt)
	GetFullContract       = newEndpoint[ContractQuery, NoBody, RawContractClass](NameGetFullContract)
)

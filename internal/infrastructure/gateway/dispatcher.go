package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sequencer_gateway/internal/domain/entity"
	"sequencer_gateway/internal/pkg/metrics"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultRequestTimeout = 30 * time.Second

// Config tunes the dispatcher transport.
type Config struct {
	// RequestTimeout bounds a single exchange when the context carries no deadline.
	RequestTimeout time.Duration
	// RateLimit is the maximum number of requests per second; zero disables limiting.
	RateLimit float64
	RateBurst int
	// MaxConnsPerHost caps pooled connections per gateway host; zero keeps the fasthttp default.
	MaxConnsPerHost int
	Metrics         *metrics.GatewayMetrics
}

// Dispatcher executes typed endpoint calls against one network target.
// It holds no mutable state besides the optional rate limiter and is safe for concurrent use.
type Dispatcher struct {
	client  *fasthttp.Client
	target  entity.NetworkTarget
	timeout time.Duration
	limiter *rate.Limiter
	metrics *metrics.GatewayMetrics
	logger  *zap.Logger
}

// NewDispatcher creates a dispatcher for the given target.
func NewDispatcher(target entity.NetworkTarget, cfg Config, logger *zap.Logger) *Dispatcher {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	d := &Dispatcher{
		client: &fasthttp.Client{
			Name:            "sequencer-gateway-client",
			MaxConnsPerHost: cfg.MaxConnsPerHost,
		},
		target:  target,
		timeout: cfg.RequestTimeout,
		metrics: cfg.Metrics,
		logger:  logger.Named("GatewayDispatcher"),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		d.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return d
}

// Target returns the network target the dispatcher talks to.
func (d *Dispatcher) Target() entity.NetworkTarget { return d.target }

// URL returns the full request URL for an endpoint and query.
func (d *Dispatcher) URL(tier Tier, name EndpointName, params []QueryParam) string {
	base := d.target.FeederGatewayURL
	if tier == TierGateway {
		base = d.target.GatewayURL
	}
	return base + "/" + string(name) + BuildQueryString(params)
}

type rawResponse struct {
	statusCode int
	statusText string
	body       []byte
}

// Call executes one endpoint end to end: it builds the URL, serializes the body, performs the
// exchange, classifies failures and decodes the response into the endpoint's raw type.
//
// GatewayError and HTTPError propagate unchanged; every other failure is wrapped with the
// method and URL.
func Call[Q QueryParams, B any, R any](ctx context.Context, d *Dispatcher, ep Endpoint[Q, B, R], query Q, body B) (R, error) {
	var out R
	method := ep.route.method
	url := d.URL(ep.route.tier, ep.name, query.QueryParams())
	start := time.Now()

	var payload []byte
	if ep.route.acceptsBody {
		encoded, err := json.Marshal(body)
		if err != nil {
			return out, d.fail(ep.name, method, url, start, fmt.Errorf("failed to encode request body: %w", err))
		}
		payload = encoded
	}

	d.logger.Debug("Requesting gateway endpoint",
		zap.String("endpoint", string(ep.name)),
		zap.String("method", method),
		zap.String("url", url))

	resp, err := d.exchange(ctx, method, url, payload)
	if err != nil {
		return out, d.fail(ep.name, method, url, start, err)
	}

	if resp.statusCode < 200 || resp.statusCode > 299 {
		return out, d.fail(ep.name, method, url, start, classifyFailure(resp.statusCode, resp.statusText, resp.body))
	}

	if err := ep.decode(resp.body, &out); err != nil {
		return out, d.fail(ep.name, method, url, start, fmt.Errorf("failed to decode response: %w", err))
	}

	d.metrics.ObserveRequest(string(ep.name), method, metrics.OutcomeSuccess, time.Since(start))
	return out, nil
}

func (d *Dispatcher) exchange(ctx context.Context, method, url string, payload []byte) (*rawResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	if method == fasthttp.MethodPost {
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(payload)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = d.client.DoDeadline(req, resp, deadline)
	} else {
		err = d.client.DoTimeout(req, resp, d.timeout)
	}
	if err != nil {
		return nil, err
	}

	statusText := string(resp.Header.StatusMessage())
	if statusText == "" {
		statusText = fasthttp.StatusMessage(resp.StatusCode())
	}
	return &rawResponse{
		statusCode: resp.StatusCode(),
		statusText: statusText,
		body:       append([]byte(nil), resp.Body()...),
	}, nil
}

func (d *Dispatcher) fail(name EndpointName, method, url string, start time.Time, err error) error {
	var (
		gwErr   *entity.GatewayError
		httpErr *entity.HTTPError
	)
	switch {
	case errors.As(err, &gwErr):
		d.metrics.ObserveRequest(string(name), method, metrics.OutcomeGatewayError, time.Since(start))
		d.logger.Warn("Gateway rejected request",
			zap.String("endpoint", string(name)),
			zap.String("code", gwErr.Code),
			zap.String("message", gwErr.Message))
		return err
	case errors.As(err, &httpErr):
		d.metrics.ObserveRequest(string(name), method, metrics.OutcomeHTTPError, time.Since(start))
		d.logger.Error("Gateway request failed with non-JSON response",
			zap.String("url", url),
			zap.Int("statusCode", httpErr.StatusCode))
		return err
	}

	d.metrics.ObserveRequest(string(name), method, metrics.OutcomeFailure, time.Since(start))
	d.logger.Error("Gateway request failed", zap.String("url", url), zap.Error(err))
	return fmt.Errorf("could not %s from endpoint %s: %w", method, url, err)
}

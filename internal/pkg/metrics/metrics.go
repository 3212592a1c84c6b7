package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sequencer_gateway"

// Outcome labels.
const (
	OutcomeSuccess      = "success"
	OutcomeGatewayError = "gateway_error"
	OutcomeHTTPError    = "http_error"
	OutcomeFailure      = "failure"
)

// GatewayMetrics records per-endpoint request counts and latencies. A nil *GatewayMetrics is a no-op.
type GatewayMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	waits    *prometheus.CounterVec
}

// NewGatewayMetrics creates the collectors and registers them on reg.
func NewGatewayMetrics(reg prometheus.Registerer) (*GatewayMetrics, error) {
	m := &GatewayMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Gateway requests by endpoint, method and outcome.",
		}, []string{"endpoint", "method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Gateway request latency by endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		waits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transaction_waits_total",
			Help:      "Finished transaction waits by final status.",
		}, []string{"status"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration, m.waits} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustRegisterMetrics is NewGatewayMetrics that panics on registration errors.
func MustRegisterMetrics(reg prometheus.Registerer) *GatewayMetrics {
	m, err := NewGatewayMetrics(reg)
	if err != nil {
		panic(err)
	}
	return m
}

// ObserveRequest records one finished gateway exchange.
func (m *GatewayMetrics) ObserveRequest(endpoint, method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, method, outcome).Inc()
	m.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveWait records the terminal status of a transaction wait.
func (m *GatewayMetrics) ObserveWait(status string) {
	if m == nil {
		return
	}
	m.waits.WithLabelValues(status).Inc()
}

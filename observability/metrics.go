package observability

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ModuleMetrics tracks JSON-RPC and websocket method calls.
type ModuleMetrics struct {
	requests  *prometheus.CounterVec
	errors    *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	throttles *prometheus.CounterVec
}

// LedgerEntryMetrics tracks ledger object lookups by request shape.
type LedgerEntryMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// GRPCMetrics tracks binary lookups by status code.
type GRPCMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

var (
	moduleMetricsOnce sync.Once
	moduleRegistry    *ModuleMetrics

	ledgerEntryOnce     sync.Once
	ledgerEntryRegistry *LedgerEntryMetrics

	grpcMetricsOnce sync.Once
	grpcRegistry    *GRPCMetrics
)

// Module returns the lazily-initialised metrics registry used to record RPC
// method activity.
func Module() *ModuleMetrics {
	moduleMetricsOnce.Do(func() {
		moduleRegistry = &ModuleMetrics{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "ledgerd",
				Subsystem: "rpc",
				Name:      "requests_total",
				Help:      "Total RPC requests segmented by transport, method and outcome.",
			}, []string{"transport", "method", "outcome"}),
			errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "ledgerd",
				Subsystem: "rpc",
				Name:      "errors_total",
				Help:      "Total RPC errors segmented by transport, method and status code.",
			}, []string{"transport", "method", "status"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "ledgerd",
				Subsystem: "rpc",
				Name:      "request_duration_seconds",
				Help:      "Latency distribution for RPC handlers.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"transport", "method"}),
			throttles: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "ledgerd",
				Subsystem: "rpc",
				Name:      "throttles_total",
				Help:      "Count of requests rejected due to throttling policies.",
			}, []string{"transport", "reason"}),
		}
		prometheus.MustRegister(
			moduleRegistry.requests,
			moduleRegistry.errors,
			moduleRegistry.latency,
			moduleRegistry.throttles,
		)
	})
	return moduleRegistry
}

// Observe records the outcome of an RPC request. The status code should be
// the HTTP status that was ultimately written to the response writer.
func (m *ModuleMetrics) Observe(transport, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if transport == "" {
		transport = "unknown"
	}
	if method == "" {
		method = "unknown"
	}
	outcome := "success"
	if status >= 400 {
		outcome = "error"
	}
	m.requests.WithLabelValues(transport, method, outcome).Inc()
	if status >= 400 {
		m.errors.WithLabelValues(transport, method, fmt.Sprintf("%d", status)).Inc()
	}
	m.latency.WithLabelValues(transport, method).Observe(duration.Seconds())
}

// RecordThrottle increments the throttle counter. Reasons should be stable
// strings such as "rate_limit" so dashboards and alerts remain consistent.
func (m *ModuleMetrics) RecordThrottle(transport, reason string) {
	if m == nil {
		return
	}
	if transport == "" {
		transport = "unknown"
	}
	if reason == "" {
		reason = "unspecified"
	}
	m.throttles.WithLabelValues(transport, reason).Inc()
}

// LedgerEntry returns the lookup metrics registry.
func LedgerEntry() *LedgerEntryMetrics {
	ledgerEntryOnce.Do(func() {
		ledgerEntryRegistry = &LedgerEntryMetrics{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "ledgerd",
				Subsystem: "ledger_entry",
				Name:      "requests_total",
				Help:      "Ledger object lookups segmented by request shape and result code.",
			}, []string{"shape", "result"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "ledgerd",
				Subsystem: "ledger_entry",
				Name:      "duration_seconds",
				Help:      "Latency of ledger object lookups including snapshot resolution.",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
			}, []string{"shape"}),
		}
		prometheus.MustRegister(ledgerEntryRegistry.requests, ledgerEntryRegistry.latency)
	})
	return ledgerEntryRegistry
}

// Observe records one lookup. result is "success" or the error code returned
// to the client.
func (m *LedgerEntryMetrics) Observe(shape, result string, duration time.Duration) {
	if m == nil {
		return
	}
	if shape == "" {
		shape = "unknown"
	}
	if result == "" {
		result = "success"
	}
	m.requests.WithLabelValues(shape, result).Inc()
	m.latency.WithLabelValues(shape).Observe(duration.Seconds())
}

// GRPC returns the binary lookup metrics registry.
func GRPC() *GRPCMetrics {
	grpcMetricsOnce.Do(func() {
		grpcRegistry = &GRPCMetrics{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "ledgerd",
				Subsystem: "grpc",
				Name:      "requests_total",
				Help:      "gRPC calls segmented by method and status code.",
			}, []string{"method", "code"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "ledgerd",
				Subsystem: "grpc",
				Name:      "request_duration_seconds",
				Help:      "Latency distribution for gRPC handlers.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method"}),
		}
		prometheus.MustRegister(grpcRegistry.requests, grpcRegistry.latency)
	})
	return grpcRegistry
}

// Observe records a completed call.
func (m *GRPCMetrics) Observe(method, code string, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, code).Inc()
	m.latency.WithLabelValues(method).Observe(duration.Seconds())
}

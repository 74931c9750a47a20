package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics gom toàn bộ collectors của API
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Authentication metrics: operation = login|refresh|logout|signup..., result = success|failure
	AuthOperations *prometheus.CounterVec

	// Token revocation
	TokensRevoked prometheus.Counter

	// Asset store: operation = upload|delete|presign, result = success|failure
	AssetOperations *prometheus.CounterVec

	// Database operation metrics
	DBOperationDuration *prometheus.HistogramVec
}

// New tạo Metrics với registry riêng, prefix lấy từ config (METRICS_PREFIX)
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		AuthOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_auth_operations_total",
				Help: "Total number of authentication operations",
			},
			[]string{"operation", "result"},
		),
		TokensRevoked: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_tokens_revoked_total",
				Help: "Total number of revoked token identifiers",
			},
		),
		AssetOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_asset_operations_total",
				Help: "Total number of asset store operations",
			},
			[]string{"operation", "result"},
		),
		DBOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		),
	}
}

// Handler expose /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry - dùng trong test
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAuth tăng counter cho một auth operation
func (m *Metrics) RecordAuth(operation string, err error) {
	if m == nil {
		return
	}
	m.AuthOperations.WithLabelValues(operation, result(err)).Inc()
}

// RecordAsset tăng counter cho một asset operation
func (m *Metrics) RecordAsset(operation string, err error) {
	if m == nil {
		return
	}
	m.AssetOperations.WithLabelValues(operation, result(err)).Inc()
}

// RecordRevocation tăng counter revoked token
func (m *Metrics) RecordRevocation() {
	if m == nil {
		return
	}
	m.TokensRevoked.Inc()
}

// TrackDBOperation trả về function ghi lại duration của một DB operation
//
//	defer m.TrackDBOperation("cart_upsert")(time.Now())
func (m *Metrics) TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if m == nil {
			return
		}
		m.DBOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

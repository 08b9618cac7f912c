package wallet

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ledgerOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mesa",
			Name:      "ledger_operations_total",
			Help:      "Total ledger operations by operation and result.",
		},
		[]string{"operation", "result"},
	)

	ledgerOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mesa",
			Name:      "ledger_operation_duration_seconds",
			Help:      "Ledger operation duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"operation"},
	)

	ledgerRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mesa",
			Name:      "ledger_cas_retries_total",
			Help:      "CAS version conflicts retried, by operation.",
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(ledgerOpsTotal, ledgerOpDuration, ledgerRetriesTotal)
}

// PrometheusMetricsCollector reports ledger metrics to prometheus.
type PrometheusMetricsCollector struct{}

func (p *PrometheusMetricsCollector) RecordOperationDuration(operation string, duration time.Duration) {
	ledgerOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (p *PrometheusMetricsCollector) RecordOperationResult(operation, result string) {
	ledgerOpsTotal.WithLabelValues(operation, result).Inc()
}

func (p *PrometheusMetricsCollector) RecordRetry(operation string) {
	ledgerRetriesTotal.WithLabelValues(operation).Inc()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordOperationResult(string, string)          {}
func (n *NoopMetricsCollector) RecordRetry(string)                            {}

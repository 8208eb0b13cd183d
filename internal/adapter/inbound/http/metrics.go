package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the payroll MCP server.
// Pass to components that need to record metrics.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	ToolCalls        *prometheus.CounterVec
	UpstreamRequests *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics with the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "payroll_mcp",
				Name:      "requests_total",
				Help:      "Total number of MCP requests processed",
			},
			[]string{"method", "status"}, // method=POST, status=ok/error
		),
		RequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "payroll_mcp",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets, // 5ms to 10s
			},
			[]string{"method"},
		),
		ToolCalls: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "payroll_mcp",
				Name:      "tool_calls_total",
				Help:      "Total tool executions by outcome",
			},
			[]string{"tool", "outcome"}, // outcome=ok/error/missing_credentials
		),
		UpstreamRequests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "payroll_mcp",
				Name:      "upstream_requests_total",
				Help:      "Total StratusPay API requests by status class",
			},
			[]string{"method", "status_class"},
		),
	}
}

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestNewMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RequestsTotal.WithLabelValues("POST", "ok").Inc()
	m.ToolCalls.WithLabelValues("get_company", "ok").Inc()
	m.UpstreamRequests.WithLabelValues("GET", "2xx").Inc()

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "ok")); got != 1 {
		t.Errorf("requests_total: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ToolCalls.WithLabelValues("get_company", "ok")); got != 1 {
		t.Errorf("tool_calls_total: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("GET", "2xx")); got != 1 {
		t.Errorf("upstream_requests_total: got %v, want 1", got)
	}
}

func TestMetricsMiddlewareRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	h := MetricsMiddleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "ok")); got != 1 {
		t.Errorf("requests_total: got %v, want 1", got)
	}

	// Histogram count is only reachable through the gathered families.
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var hist *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == "payroll_mcp_request_duration_seconds" {
			hist = mf
		}
	}
	if hist == nil {
		t.Fatal("request_duration_seconds not registered")
	}
	if count := hist.GetMetric()[0].GetHistogram().GetSampleCount(); count != 1 {
		t.Errorf("duration sample count: got %d, want 1", count)
	}
}

func TestMetricsMiddlewareSkipsInfraPaths(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	h := MetricsMiddleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/metrics", "/health"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "ok")); got != 0 {
		t.Errorf("infra paths must not be counted, got %v", got)
	}
}

func TestStatusToLabel(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "ok"},
		{202, "ok"},
		{301, "ok"},
		{401, "error"},
		{500, "error"},
	}
	for _, tt := range tests {
		if got := statusToLabel(tt.code); got != tt.want {
			t.Errorf("statusToLabel(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

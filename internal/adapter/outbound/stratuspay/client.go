// Package stratuspay is the outbound adapter for the StratusPay REST API.
//
// A Client is constructed per inbound request from that request's tenant
// credentials and discarded afterward; no process-wide state ever holds a
// bearer token. The client performs no retries — retry policy is the
// caller's concern, the adapter only surfaces retryability.
package stratuspay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stratuspay/payroll-mcp/internal/domain/apierror"
	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
	"github.com/stratuspay/payroll-mcp/internal/domain/paging"
	"github.com/stratuspay/payroll-mcp/internal/domain/tenant"
)

// DefaultBaseURL is the production StratusPay API endpoint.
const DefaultBaseURL = "https://api.stratuspay.com/v1"

// maxResponseBodySize caps upstream response bodies to prevent OOM from an
// unbounded response.
const maxResponseBodySize = 10 * 1024 * 1024 // 10MB

// Config carries the request-independent gateway settings.
type Config struct {
	// BaseURL is the API root; empty means DefaultBaseURL.
	BaseURL string
	// APIVersion is the default X-StratusPay-API-Version header value.
	// A per-request credential override takes precedence.
	APIVersion string
	// Timeout bounds each upstream call. Zero means no client timeout
	// (cancellation then comes only from the caller's context).
	Timeout time.Duration
}

// Client issues authenticated calls against the StratusPay API on behalf of
// one tenant for one request.
type Client struct {
	baseURL    string
	apiVersion string
	creds      tenant.Credentials
	httpClient *http.Client
	logger     *slog.Logger
	requests   *prometheus.CounterVec // optional {method, status_class}
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client (testing, proxying).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestCounter records upstream calls on the given counter with
// {method, status_class} labels.
func WithRequestCounter(cv *prometheus.CounterVec) Option {
	return func(c *Client) {
		c.requests = cv
	}
}

// New builds a Client scoped to the given credentials. Call it once per
// inbound request; the returned client must not outlive the request.
func New(cfg Config, creds tenant.Credentials, opts ...Option) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	apiVersion := cfg.APIVersion
	if creds.APIVersion != "" {
		apiVersion = creds.APIVersion
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiVersion: apiVersion,
		creds:      creds,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return c
}

// do performs one upstream call and classifies the outcome. On 2xx it
// returns the raw body (nil for 204/empty); every failure comes back as a
// *apierror.ClassifiedError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body map[string]any) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, apierror.Unknown(fmt.Errorf("encoding request body: %w", err))
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, apierror.Unknown(fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.AccessToken)
	req.Header.Set("Accept", "application/json")
	if c.apiVersion != "" {
		req.Header.Set(tenant.APIVersionHeader, c.apiVersion)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.count(method, "error")
		return nil, apierror.Unknown(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		c.count(method, "error")
		return nil, apierror.Unknown(fmt.Errorf("reading response body: %w", err))
	}

	c.count(method, statusClass(resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, apierror.RateLimit(resp.Header.Get("Retry-After"))
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, apierror.Authentication(resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Debug("upstream API error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return nil, apierror.FromResponse(resp.StatusCode, respBody)
	}

	if len(respBody) == 0 {
		return nil, nil
	}
	return respBody, nil
}

func (c *Client) count(method, class string) {
	if c.requests != nil {
		c.requests.WithLabelValues(method, class).Inc()
	}
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

// getEntity fetches a single resource and normalizes it.
func (c *Client) getEntity(ctx context.Context, path string, m *entity.Mapping) (entity.Entity, error) {
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeEntity(raw, m)
}

// mutateEntity issues a mutating call whose body is attrs serialized through
// the entity mapping (absent fields omitted, never null) and whose response,
// if any, is normalized back through the same mapping.
func (c *Client) mutateEntity(ctx context.Context, method, path string, attrs entity.Entity, m *entity.Mapping) (entity.Entity, error) {
	var body map[string]any
	if attrs != nil {
		body = m.ToWire(attrs)
	}
	raw, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	return decodeEntity(raw, m)
}

// listPage fetches one page of a paginated collection.
func (c *Client) listPage(ctx context.Context, path string, p paging.Params, extra url.Values, m *entity.Mapping) (*paging.Page, error) {
	query := url.Values{}
	for k, vs := range extra {
		query[k] = vs
	}
	query.Set("page", strconv.Itoa(p.Page))
	query.Set("per", strconv.Itoa(p.Per))

	raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeEntitySlice(raw, m)
	if err != nil {
		return nil, err
	}
	return paging.NewPage(items, p), nil
}

// listAll fetches an unpaginated (bare array) collection. The upstream
// provides no pagination metadata for these endpoints, so the full array is
// passed through.
func (c *Client) listAll(ctx context.Context, path string, query url.Values, m *entity.Mapping) ([]entity.Entity, error) {
	raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeEntitySlice(raw, m)
}

func decodeEntity(raw json.RawMessage, m *entity.Mapping) (entity.Entity, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var wire map[string]any
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, apierror.Unknown(fmt.Errorf("decoding %s response: %w", m.Name, err))
	}
	return m.FromWire(wire), nil
}

func decodeEntitySlice(raw json.RawMessage, m *entity.Mapping) ([]entity.Entity, error) {
	if len(raw) == 0 {
		return []entity.Entity{}, nil
	}
	var wire []any
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, apierror.Unknown(fmt.Errorf("decoding %s list response: %w", m.Name, err))
	}
	return m.FromWireSlice(wire), nil
}

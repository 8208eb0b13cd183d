package stratuspay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stratuspay/payroll-mcp/internal/domain/apierror"
	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
	"github.com/stratuspay/payroll-mcp/internal/domain/paging"
	"github.com/stratuspay/payroll-mcp/internal/domain/tenant"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(
		Config{BaseURL: srv.URL, APIVersion: "2024-04-01"},
		tenant.Credentials{AccessToken: "test-token"},
	)
}

func TestAuthHeaders(t *testing.T) {
	t.Parallel()

	var gotAuth, gotVersion string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get(tenant.APIVersionHeader)
		_, _ = w.Write([]byte(`{"uuid":"co-1","name":"Acme"}`))
	})

	company, err := c.GetCompany(context.Background(), "co-1")
	require.NoError(t, err)
	require.Equal(t, "Bearer test-token", gotAuth)
	require.Equal(t, "2024-04-01", gotVersion)
	require.Equal(t, "Acme", company["name"])
}

func TestCredentialVersionOverridesConfig(t *testing.T) {
	t.Parallel()

	var gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get(tenant.APIVersionHeader)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := New(
		Config{BaseURL: srv.URL, APIVersion: "2024-04-01"},
		tenant.Credentials{AccessToken: "t", APIVersion: "2025-01-01"},
	)
	_, err := c.GetCompany(context.Background(), "co-1")
	require.NoError(t, err)
	require.Equal(t, "2025-01-01", gotVersion)
}

func TestRateLimitClassification(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.GetCompany(context.Background(), "co-1")
	var cerr *apierror.ClassifiedError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, apierror.KindRateLimit, cerr.Kind)
	require.True(t, cerr.Retryable)
	require.Equal(t, 30, cerr.RetryAfterSeconds)
}

func TestRateLimitDefaultRetryAfter(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.GetCompany(context.Background(), "co-1")
	var cerr *apierror.ClassifiedError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, 60, cerr.RetryAfterSeconds)
}

func TestAuthenticationClassification(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		_, err := c.GetCompany(context.Background(), "co-1")
		var cerr *apierror.ClassifiedError
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, apierror.KindAuthentication, cerr.Kind)
		require.False(t, cerr.Retryable)
		require.Equal(t, status, cerr.StatusCode)
	}
}

func TestAPIErrorMessageExtraction(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":[{"message":"hire_date is invalid"}]}`))
	})

	_, err := c.GetEmployee(context.Background(), "emp-1")
	var cerr *apierror.ClassifiedError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, apierror.KindAPIError, cerr.Kind)
	require.Equal(t, "hire_date is invalid", cerr.Message)
	require.Equal(t, 422, cerr.StatusCode)
}

func TestNoContentSentinel(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteEmployee(context.Background(), "emp-1"))
}

func TestNetworkErrorIsUnknown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(Config{BaseURL: srv.URL}, tenant.Credentials{AccessToken: "t"})
	_, err := c.GetCompany(context.Background(), "co-1")
	var cerr *apierror.ClassifiedError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, apierror.KindUnknown, cerr.Kind)
}

func TestListEmployeesPagination(t *testing.T) {
	t.Parallel()

	employees := make([]map[string]any, 25)
	for i := range employees {
		employees[i] = map[string]any{"uuid": "e", "first_name": "A"}
	}

	var gotPage, gotPer string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotPer = r.URL.Query().Get("per")
		_ = json.NewEncoder(w).Encode(employees)
	})

	page, err := c.ListEmployees(context.Background(), "co-1", paging.Params{Page: 2, Per: 25}, nil)
	require.NoError(t, err)
	require.Equal(t, "2", gotPage)
	require.Equal(t, "25", gotPer)
	require.Equal(t, 25, page.Count)
	require.True(t, page.HasMore, "full page should report more available")
	require.Equal(t, 3, page.NextPage)
	require.Equal(t, "A", page.Items[0]["firstName"])
}

func TestListEmployeesShortPage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"uuid":"e1"},{"uuid":"e2"}]`))
	})

	page, err := c.ListEmployees(context.Background(), "co-1", paging.Params{Page: 1, Per: 25}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, page.Count)
	require.False(t, page.HasMore)
	require.Zero(t, page.NextPage)
}

func TestHolidayPayPolicy404IsNoPolicy(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"policy not found"}`))
	})

	policy, err := c.GetHolidayPayPolicy(context.Background(), "co-1")
	require.NoError(t, err, "404 on holiday pay policy is normal state")
	require.Nil(t, policy)
}

func TestOther404StaysAnError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"employee not found"}`))
	})

	_, err := c.GetEmployee(context.Background(), "emp-nope")
	var cerr *apierror.ClassifiedError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, apierror.KindAPIError, cerr.Kind)
	require.Equal(t, 404, cerr.StatusCode)
}

func TestUpdateOmitsAbsentFields(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"uuid":"emp-1","first_name":"Ada"}`))
	})

	_, err := c.UpdateEmployee(context.Background(), "emp-1", entity.Entity{
		"firstName": "Ada",
		"version":   "v3",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"first_name": "Ada", "version": "v3"}, gotBody)
	_, hasNull := gotBody["last_name"]
	require.False(t, hasNull, "absent fields must not appear in PUT bodies")
}

func TestContextCancellationPropagates(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetCompany(ctx, "co-1")
	var cerr *apierror.ClassifiedError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, apierror.KindUnknown, cerr.Kind)
}

func TestPolicyMemberBody(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.AddEmployeesToHolidayPayPolicy(context.Background(), "co-1", []string{"e1", "e2"})
	require.NoError(t, err)
	require.Equal(t, "/companies/co-1/holiday_pay_policy/add", gotPath)
	require.Equal(t, map[string]any{
		"employees": []any{
			map[string]any{"uuid": "e1"},
			map[string]any{"uuid": "e2"},
		},
	}, gotBody)
}

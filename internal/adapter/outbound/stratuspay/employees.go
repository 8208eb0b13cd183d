package stratuspay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
	"github.com/stratuspay/payroll-mcp/internal/domain/paging"
)

// ListEmployees fetches one page of a company's employees. When terminated
// is non-nil it filters by termination state.
func (c *Client) ListEmployees(ctx context.Context, companyUUID string, p paging.Params, terminated *bool) (*paging.Page, error) {
	extra := url.Values{}
	if terminated != nil {
		extra.Set("terminated", fmt.Sprintf("%t", *terminated))
	}
	path := fmt.Sprintf("/companies/%s/employees", url.PathEscape(companyUUID))
	return c.listPage(ctx, path, p, extra, entity.Employee)
}

// GetEmployee fetches one employee.
func (c *Client) GetEmployee(ctx context.Context, employeeUUID string) (entity.Entity, error) {
	return c.getEntity(ctx, fmt.Sprintf("/employees/%s", url.PathEscape(employeeUUID)), entity.Employee)
}

// CreateEmployee creates an employee under a company.
func (c *Client) CreateEmployee(ctx context.Context, companyUUID string, attrs entity.Entity) (entity.Entity, error) {
	path := fmt.Sprintf("/companies/%s/employees", url.PathEscape(companyUUID))
	return c.mutateEntity(ctx, http.MethodPost, path, attrs, entity.Employee)
}

// UpdateEmployee partially updates an employee. The attrs must include the
// employee's current version token; the upstream rejects stale versions.
// Absent fields are left unchanged upstream.
func (c *Client) UpdateEmployee(ctx context.Context, employeeUUID string, attrs entity.Entity) (entity.Entity, error) {
	path := fmt.Sprintf("/employees/%s", url.PathEscape(employeeUUID))
	return c.mutateEntity(ctx, http.MethodPut, path, attrs, entity.Employee)
}

// DeleteEmployee removes an employee that has not yet been onboarded.
func (c *Client) DeleteEmployee(ctx context.Context, employeeUUID string) error {
	path := fmt.Sprintf("/employees/%s", url.PathEscape(employeeUUID))
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// ListJobs fetches one page of an employee's jobs.
func (c *Client) ListJobs(ctx context.Context, employeeUUID string, p paging.Params) (*paging.Page, error) {
	path := fmt.Sprintf("/employees/%s/jobs", url.PathEscape(employeeUUID))
	return c.listPage(ctx, path, p, nil, entity.Job)
}

// GetJob fetches one job.
func (c *Client) GetJob(ctx context.Context, jobUUID string) (entity.Entity, error) {
	return c.getEntity(ctx, fmt.Sprintf("/jobs/%s", url.PathEscape(jobUUID)), entity.Job)
}

// CreateJob creates a job for an employee.
func (c *Client) CreateJob(ctx context.Context, employeeUUID string, attrs entity.Entity) (entity.Entity, error) {
	path := fmt.Sprintf("/employees/%s/jobs", url.PathEscape(employeeUUID))
	return c.mutateEntity(ctx, http.MethodPost, path, attrs, entity.Job)
}

// UpdateJob partially updates a job (version token required).
func (c *Client) UpdateJob(ctx context.Context, jobUUID string, attrs entity.Entity) (entity.Entity, error) {
	path := fmt.Sprintf("/jobs/%s", url.PathEscape(jobUUID))
	return c.mutateEntity(ctx, http.MethodPut, path, attrs, entity.Job)
}

// DeleteJob removes a job.
func (c *Client) DeleteJob(ctx context.Context, jobUUID string) error {
	path := fmt.Sprintf("/jobs/%s", url.PathEscape(jobUUID))
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// ListCompensations fetches one page of a job's compensations.
func (c *Client) ListCompensations(ctx context.Context, jobUUID string, p paging.Params) (*paging.Page, error) {
	path := fmt.Sprintf("/jobs/%s/compensations", url.PathEscape(jobUUID))
	return c.listPage(ctx, path, p, nil, entity.Compensation)
}

// GetCompensation fetches one compensation.
func (c *Client) GetCompensation(ctx context.Context, compensationUUID string) (entity.Entity, error) {
	return c.getEntity(ctx, fmt.Sprintf("/compensations/%s", url.PathEscape(compensationUUID)), entity.Compensation)
}

// UpdateCompensation partially updates a compensation (version token required).
func (c *Client) UpdateCompensation(ctx context.Context, compensationUUID string, attrs entity.Entity) (entity.Entity, error) {
	path := fmt.Sprintf("/compensations/%s", url.PathEscape(compensationUUID))
	return c.mutateEntity(ctx, http.MethodPut, path, attrs, entity.Compensation)
}

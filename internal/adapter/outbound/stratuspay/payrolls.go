package stratuspay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
	"github.com/stratuspay/payroll-mcp/internal/domain/paging"
)

// ListPayrolls fetches a company's payrolls, optionally filtered by
// processing status ("processed" or "unprocessed"). Bare array upstream,
// passed through unpaginated.
func (c *Client) ListPayrolls(ctx context.Context, companyUUID, processingStatus string) ([]entity.Entity, error) {
	var query url.Values
	if processingStatus != "" {
		query = url.Values{}
		query.Set("processing_statuses", processingStatus)
	}
	path := fmt.Sprintf("/companies/%s/payrolls", url.PathEscape(companyUUID))
	return c.listAll(ctx, path, query, entity.Payroll)
}

// GetPayroll fetches one payroll with its totals and employee compensations.
func (c *Client) GetPayroll(ctx context.Context, companyUUID, payrollUUID string) (entity.Entity, error) {
	path := fmt.Sprintf("/companies/%s/payrolls/%s",
		url.PathEscape(companyUUID), url.PathEscape(payrollUUID))
	return c.getEntity(ctx, path, entity.Payroll)
}

// CalculatePayroll asks the upstream to calculate an unprocessed payroll.
// The upstream accepts the request asynchronously (202/204 with no body);
// the caller re-fetches the payroll to observe calculated totals.
func (c *Client) CalculatePayroll(ctx context.Context, companyUUID, payrollUUID string) error {
	path := fmt.Sprintf("/companies/%s/payrolls/%s/calculate",
		url.PathEscape(companyUUID), url.PathEscape(payrollUUID))
	_, err := c.do(ctx, http.MethodPut, path, nil, nil)
	return err
}

// SubmitPayroll submits a calculated payroll for processing.
func (c *Client) SubmitPayroll(ctx context.Context, companyUUID, payrollUUID string) error {
	path := fmt.Sprintf("/companies/%s/payrolls/%s/submit",
		url.PathEscape(companyUUID), url.PathEscape(payrollUUID))
	_, err := c.do(ctx, http.MethodPut, path, nil, nil)
	return err
}

// CancelPayroll cancels a submitted payroll while still cancellable and
// returns the payroll's new state.
func (c *Client) CancelPayroll(ctx context.Context, companyUUID, payrollUUID string) (entity.Entity, error) {
	path := fmt.Sprintf("/companies/%s/payrolls/%s/cancel",
		url.PathEscape(companyUUID), url.PathEscape(payrollUUID))
	raw, err := c.do(ctx, http.MethodPut, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeEntity(raw, entity.Payroll)
}

// ListPaySchedules fetches one page of a company's pay schedules.
func (c *Client) ListPaySchedules(ctx context.Context, companyUUID string, p paging.Params) (*paging.Page, error) {
	path := fmt.Sprintf("/companies/%s/pay_schedules", url.PathEscape(companyUUID))
	return c.listPage(ctx, path, p, nil, entity.PaySchedule)
}

// GetPaySchedule fetches one pay schedule.
func (c *Client) GetPaySchedule(ctx context.Context, companyUUID, scheduleUUID string) (entity.Entity, error) {
	path := fmt.Sprintf("/companies/%s/pay_schedules/%s",
		url.PathEscape(companyUUID), url.PathEscape(scheduleUUID))
	return c.getEntity(ctx, path, entity.PaySchedule)
}

// ListPayPeriods fetches a company's pay periods in a date range. Bare array
// upstream, passed through unpaginated.
func (c *Client) ListPayPeriods(ctx context.Context, companyUUID, startDate, endDate string) ([]entity.Entity, error) {
	query := url.Values{}
	if startDate != "" {
		query.Set("start_date", startDate)
	}
	if endDate != "" {
		query.Set("end_date", endDate)
	}
	path := fmt.Sprintf("/companies/%s/pay_periods", url.PathEscape(companyUUID))
	return c.listAll(ctx, path, query, entity.PayPeriod)
}

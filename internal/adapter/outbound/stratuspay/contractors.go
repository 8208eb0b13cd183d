package stratuspay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
	"github.com/stratuspay/payroll-mcp/internal/domain/paging"
)

// ListContractors fetches one page of a company's contractors.
func (c *Client) ListContractors(ctx context.Context, companyUUID string, p paging.Params) (*paging.Page, error) {
	path := fmt.Sprintf("/companies/%s/contractors", url.PathEscape(companyUUID))
	return c.listPage(ctx, path, p, nil, entity.Contractor)
}

// GetContractor fetches one contractor.
func (c *Client) GetContractor(ctx context.Context, contractorUUID string) (entity.Entity, error) {
	return c.getEntity(ctx, fmt.Sprintf("/contractors/%s", url.PathEscape(contractorUUID)), entity.Contractor)
}

// CreateContractor creates a contractor under a company.
func (c *Client) CreateContractor(ctx context.Context, companyUUID string, attrs entity.Entity) (entity.Entity, error) {
	path := fmt.Sprintf("/companies/%s/contractors", url.PathEscape(companyUUID))
	return c.mutateEntity(ctx, http.MethodPost, path, attrs, entity.Contractor)
}

// UpdateContractor partially updates a contractor (version token required).
func (c *Client) UpdateContractor(ctx context.Context, contractorUUID string, attrs entity.Entity) (entity.Entity, error) {
	path := fmt.Sprintf("/contractors/%s", url.PathEscape(contractorUUID))
	return c.mutateEntity(ctx, http.MethodPut, path, attrs, entity.Contractor)
}

// DeleteContractor removes a contractor.
func (c *Client) DeleteContractor(ctx context.Context, contractorUUID string) error {
	path := fmt.Sprintf("/contractors/%s", url.PathEscape(contractorUUID))
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// ListContractorPayments fetches a company's contractor payments in a date
// range. The upstream returns a bare array with no pagination metadata;
// the full array is passed through.
func (c *Client) ListContractorPayments(ctx context.Context, companyUUID, startDate, endDate string) ([]entity.Entity, error) {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)
	path := fmt.Sprintf("/companies/%s/contractor_payments", url.PathEscape(companyUUID))
	return c.listAll(ctx, path, query, entity.ContractorPayment)
}

// GetContractorPayment fetches one contractor payment.
func (c *Client) GetContractorPayment(ctx context.Context, companyUUID, paymentUUID string) (entity.Entity, error) {
	path := fmt.Sprintf("/companies/%s/contractor_payments/%s",
		url.PathEscape(companyUUID), url.PathEscape(paymentUUID))
	return c.getEntity(ctx, path, entity.ContractorPayment)
}

// CreateContractorPayment records a payment to a contractor.
func (c *Client) CreateContractorPayment(ctx context.Context, companyUUID string, attrs entity.Entity) (entity.Entity, error) {
	path := fmt.Sprintf("/companies/%s/contractor_payments", url.PathEscape(companyUUID))
	return c.mutateEntity(ctx, http.MethodPost, path, attrs, entity.ContractorPayment)
}

// CancelContractorPayment cancels a payment that has not been processed yet.
func (c *Client) CancelContractorPayment(ctx context.Context, companyUUID, paymentUUID string) error {
	path := fmt.Sprintf("/companies/%s/contractor_payments/%s",
		url.PathEscape(companyUUID), url.PathEscape(paymentUUID))
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

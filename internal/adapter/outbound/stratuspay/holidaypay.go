package stratuspay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stratuspay/payroll-mcp/internal/domain/apierror"
	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
)

// GetHolidayPayPolicy fetches a company's holiday pay policy. The policy is
// an optional sub-resource: a 404 means "no policy configured", which is
// normal state, so it is recovered into a (nil, nil) result instead of being
// surfaced as an error. A 404 from any other endpoint remains an error.
func (c *Client) GetHolidayPayPolicy(ctx context.Context, companyUUID string) (entity.Entity, error) {
	path := fmt.Sprintf("/companies/%s/holiday_pay_policy", url.PathEscape(companyUUID))
	policy, err := c.getEntity(ctx, path, entity.HolidayPayPolicy)
	if err != nil {
		var cerr *apierror.ClassifiedError
		if errors.As(err, &cerr) && cerr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return policy, nil
}

// CreateHolidayPayPolicy creates a company's holiday pay policy.
func (c *Client) CreateHolidayPayPolicy(ctx context.Context, companyUUID string, attrs entity.Entity) (entity.Entity, error) {
	path := fmt.Sprintf("/companies/%s/holiday_pay_policy", url.PathEscape(companyUUID))
	return c.mutateEntity(ctx, http.MethodPost, path, attrs, entity.HolidayPayPolicy)
}

// UpdateHolidayPayPolicy partially updates the policy (version token required).
func (c *Client) UpdateHolidayPayPolicy(ctx context.Context, companyUUID string, attrs entity.Entity) (entity.Entity, error) {
	path := fmt.Sprintf("/companies/%s/holiday_pay_policy", url.PathEscape(companyUUID))
	return c.mutateEntity(ctx, http.MethodPut, path, attrs, entity.HolidayPayPolicy)
}

// DeleteHolidayPayPolicy removes the policy.
func (c *Client) DeleteHolidayPayPolicy(ctx context.Context, companyUUID string) error {
	path := fmt.Sprintf("/companies/%s/holiday_pay_policy", url.PathEscape(companyUUID))
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// AddEmployeesToHolidayPayPolicy enrolls employees in the policy. The
// upstream acknowledges with 204.
func (c *Client) AddEmployeesToHolidayPayPolicy(ctx context.Context, companyUUID string, employeeUUIDs []string) error {
	return c.changePolicyMembers(ctx, companyUUID, "add", employeeUUIDs)
}

// RemoveEmployeesFromHolidayPayPolicy removes employees from the policy.
func (c *Client) RemoveEmployeesFromHolidayPayPolicy(ctx context.Context, companyUUID string, employeeUUIDs []string) error {
	return c.changePolicyMembers(ctx, companyUUID, "remove", employeeUUIDs)
}

func (c *Client) changePolicyMembers(ctx context.Context, companyUUID, op string, employeeUUIDs []string) error {
	members := make([]entity.Entity, 0, len(employeeUUIDs))
	for _, u := range employeeUUIDs {
		members = append(members, entity.Entity{"uuid": u})
	}
	body := entity.HolidayPayPolicy.ToWire(entity.Entity{"employees": members})
	path := fmt.Sprintf("/companies/%s/holiday_pay_policy/%s", url.PathEscape(companyUUID), op)
	_, err := c.do(ctx, http.MethodPut, path, nil, body)
	return err
}

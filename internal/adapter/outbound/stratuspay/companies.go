package stratuspay

import (
	"context"
	"fmt"
	"net/url"

	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
)

// GetTokenInfo describes the presented access token (scope and the resource
// it is bound to). Used as the connection test: a successful call proves the
// credentials reach the upstream.
func (c *Client) GetTokenInfo(ctx context.Context) (entity.Entity, error) {
	return c.getEntity(ctx, "/token_info", entity.TokenInfo)
}

// GetCompany fetches one company.
func (c *Client) GetCompany(ctx context.Context, companyUUID string) (entity.Entity, error) {
	return c.getEntity(ctx, fmt.Sprintf("/companies/%s", url.PathEscape(companyUUID)), entity.Company)
}

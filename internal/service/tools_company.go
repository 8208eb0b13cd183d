package service

import (
	"context"
	"encoding/json"

	"github.com/stratuspay/payroll-mcp/internal/domain/render"
	"github.com/stratuspay/payroll-mcp/pkg/mcp"
)

type companyInput struct {
	CompanyUUID string `json:"company_uuid" validate:"required"`
}

func companyTools() []Tool {
	return []Tool{
		{
			Def: mcp.Tool{
				Name:        "get_token_info",
				Description: "Describe the access token in use: its scope and the resource it is bound to. Useful as a connection test and to discover the company UUID.",
				InputSchema: objectSchema(map[string]any{}),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				info, err := env.Gateway.GetTokenInfo(ctx)
				return info, render.KindGeneric, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "get_company",
				Description: "Fetch a company's profile: legal name, EIN, entity type and status.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid": stringProp("UUID of the company"),
				}, "company_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in companyInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				company, err := env.Gateway.GetCompany(ctx, in.CompanyUUID)
				return company, render.KindCompany, err
			},
		},
	}
}

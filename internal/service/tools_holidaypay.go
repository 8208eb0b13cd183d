package service

import (
	"context"
	"encoding/json"

	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
	"github.com/stratuspay/payroll-mcp/internal/domain/render"
	"github.com/stratuspay/payroll-mcp/pkg/mcp"
)

type createHolidayPayPolicyInput struct {
	CompanyUUID     string         `json:"company_uuid" validate:"required"`
	FederalHolidays map[string]any `json:"federal_holidays"`
}

type updateHolidayPayPolicyInput struct {
	CompanyUUID     string         `json:"company_uuid" validate:"required"`
	Version         string         `json:"version" validate:"required"`
	FederalHolidays map[string]any `json:"federal_holidays"`
}

type policyMembersInput struct {
	CompanyUUID   string   `json:"company_uuid" validate:"required"`
	EmployeeUUIDs []string `json:"employee_uuids" validate:"required,min=1,dive,required"`
}

func holidayPayTools() []Tool {
	return []Tool{
		{
			Def: mcp.Tool{
				Name:        "get_holiday_pay_policy",
				Description: "Fetch a company's holiday pay policy. Returns null when the company has no policy configured; that is a normal state, not an error.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid": stringProp("UUID of the company"),
				}, "company_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in companyInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				policy, err := env.Gateway.GetHolidayPayPolicy(ctx, in.CompanyUUID)
				if err != nil {
					return nil, render.KindGeneric, err
				}
				if policy == nil {
					// No policy configured; distinct from an empty policy.
					return nil, render.KindGeneric, nil
				}
				return policy, render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "create_holiday_pay_policy",
				Description: "Create a holiday pay policy for a company that has none.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid":     stringProp("UUID of the company"),
					"federal_holidays": objectProp("Map of federal holiday keys to booleans, e.g. {\"new_years_day\": true}"),
				}, "company_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in createHolidayPayPolicyInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				attrs := entity.Entity{}
				putObj(attrs, "federalHolidays", in.FederalHolidays)
				policy, err := env.Gateway.CreateHolidayPayPolicy(ctx, in.CompanyUUID, attrs)
				if err != nil {
					return nil, render.KindGeneric, err
				}
				return mutated("holidayPayPolicy", policy), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "update_holiday_pay_policy",
				Description: "Update a company's holiday pay policy. Requires the policy's current version token.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid":     stringProp("UUID of the company"),
					"version":          stringProp("Current version token of the policy"),
					"federal_holidays": objectProp("Map of federal holiday keys to booleans"),
				}, "company_uuid", "version"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in updateHolidayPayPolicyInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				attrs := entity.Entity{"version": in.Version}
				putObj(attrs, "federalHolidays", in.FederalHolidays)
				policy, err := env.Gateway.UpdateHolidayPayPolicy(ctx, in.CompanyUUID, attrs)
				if err != nil {
					return nil, render.KindGeneric, err
				}
				return mutated("holidayPayPolicy", policy), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "delete_holiday_pay_policy",
				Description: "Delete a company's holiday pay policy.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid": stringProp("UUID of the company"),
				}, "company_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in companyInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				if err := env.Gateway.DeleteHolidayPayPolicy(ctx, in.CompanyUUID); err != nil {
					return nil, render.KindGeneric, err
				}
				return acknowledged(), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "add_employees_to_holiday_pay_policy",
				Description: "Enroll employees in the company's holiday pay policy.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid":   stringProp("UUID of the company"),
					"employee_uuids": stringArrayProp("UUIDs of the employees to enroll"),
				}, "company_uuid", "employee_uuids"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in policyMembersInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				if err := env.Gateway.AddEmployeesToHolidayPayPolicy(ctx, in.CompanyUUID, in.EmployeeUUIDs); err != nil {
					return nil, render.KindGeneric, err
				}
				return acknowledged(), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "remove_employees_from_holiday_pay_policy",
				Description: "Remove employees from the company's holiday pay policy.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid":   stringProp("UUID of the company"),
					"employee_uuids": stringArrayProp("UUIDs of the employees to remove"),
				}, "company_uuid", "employee_uuids"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in policyMembersInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				if err := env.Gateway.RemoveEmployeesFromHolidayPayPolicy(ctx, in.CompanyUUID, in.EmployeeUUIDs); err != nil {
					return nil, render.KindGeneric, err
				}
				return acknowledged(), render.KindGeneric, nil
			},
		},
	}
}

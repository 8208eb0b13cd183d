package service

import (
	"context"
	"encoding/json"

	"github.com/stratuspay/payroll-mcp/internal/domain/render"
	"github.com/stratuspay/payroll-mcp/pkg/mcp"
)

type listPayrollsInput struct {
	CompanyUUID      string `json:"company_uuid" validate:"required"`
	ProcessingStatus string `json:"processing_status" validate:"omitempty,oneof=processed unprocessed"`
}

type payrollInput struct {
	CompanyUUID string `json:"company_uuid" validate:"required"`
	PayrollUUID string `json:"payroll_uuid" validate:"required"`
}

type listPaySchedulesInput struct {
	CompanyUUID string `json:"company_uuid" validate:"required"`
	Page        int    `json:"page" validate:"omitempty,min=1"`
	Per         int    `json:"per" validate:"omitempty,min=1"`
}

type payScheduleInput struct {
	CompanyUUID     string `json:"company_uuid" validate:"required"`
	PayScheduleUUID string `json:"pay_schedule_uuid" validate:"required"`
}

type listPayPeriodsInput struct {
	CompanyUUID string `json:"company_uuid" validate:"required"`
	StartDate   string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

func payrollTools() []Tool {
	return []Tool{
		{
			Def: mcp.Tool{
				Name:        "list_payrolls",
				Description: "List a company's payrolls, optionally filtered by processing status. Returns the full set; this endpoint is not paginated.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid":      stringProp("UUID of the company"),
					"processing_status": enumProp("Filter by processing status", "processed", "unprocessed"),
				}, "company_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in listPayrollsInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindPayroll, err
				}
				payrolls, err := env.Gateway.ListPayrolls(ctx, in.CompanyUUID, in.ProcessingStatus)
				return payrolls, render.KindPayroll, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "get_payroll",
				Description: "Fetch one payroll, including its pay period, totals and per-employee compensations.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid": stringProp("UUID of the company"),
					"payroll_uuid": stringProp("UUID of the payroll"),
				}, "company_uuid", "payroll_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in payrollInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindPayroll, err
				}
				payroll, err := env.Gateway.GetPayroll(ctx, in.CompanyUUID, in.PayrollUUID)
				return payroll, render.KindPayroll, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "calculate_payroll",
				Description: "Start calculating an unprocessed payroll. The calculation runs asynchronously; fetch the payroll again to see calculated totals.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid": stringProp("UUID of the company"),
					"payroll_uuid": stringProp("UUID of the payroll"),
				}, "company_uuid", "payroll_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in payrollInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				if err := env.Gateway.CalculatePayroll(ctx, in.CompanyUUID, in.PayrollUUID); err != nil {
					return nil, render.KindGeneric, err
				}
				return acknowledged(), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "submit_payroll",
				Description: "Submit a calculated payroll for processing. Processing debits the company account; this is the point of no easy return.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid": stringProp("UUID of the company"),
					"payroll_uuid": stringProp("UUID of the payroll"),
				}, "company_uuid", "payroll_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in payrollInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				if err := env.Gateway.SubmitPayroll(ctx, in.CompanyUUID, in.PayrollUUID); err != nil {
					return nil, render.KindGeneric, err
				}
				return acknowledged(), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "cancel_payroll",
				Description: "Cancel a submitted payroll while it is still cancellable. Returns the payroll's new state.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid": stringProp("UUID of the company"),
					"payroll_uuid": stringProp("UUID of the payroll"),
				}, "company_uuid", "payroll_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in payrollInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindPayroll, err
				}
				payroll, err := env.Gateway.CancelPayroll(ctx, in.CompanyUUID, in.PayrollUUID)
				if err != nil {
					return nil, render.KindPayroll, err
				}
				return mutated("payroll", payroll), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "list_pay_schedules",
				Description: "List a company's pay schedules, one page at a time.",
				InputSchema: objectSchema(pagingProps(map[string]any{
					"company_uuid": stringProp("UUID of the company"),
				}), "company_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in listPaySchedulesInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindPaySchedule, err
				}
				page, err := env.Gateway.ListPaySchedules(ctx, in.CompanyUUID, env.pageParams(in.Page, in.Per))
				return page, render.KindPaySchedule, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "get_pay_schedule",
				Description: "Fetch one pay schedule.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid":      stringProp("UUID of the company"),
					"pay_schedule_uuid": stringProp("UUID of the pay schedule"),
				}, "company_uuid", "pay_schedule_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in payScheduleInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindPaySchedule, err
				}
				schedule, err := env.Gateway.GetPaySchedule(ctx, in.CompanyUUID, in.PayScheduleUUID)
				return schedule, render.KindPaySchedule, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "list_pay_periods",
				Description: "List a company's pay periods, optionally within a date range. Returns the full set; this endpoint is not paginated.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid": stringProp("UUID of the company"),
					"start_date":   stringProp("Range start, YYYY-MM-DD"),
					"end_date":     stringProp("Range end, YYYY-MM-DD"),
				}, "company_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in listPayPeriodsInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				periods, err := env.Gateway.ListPayPeriods(ctx, in.CompanyUUID, in.StartDate, in.EndDate)
				return periods, render.KindGeneric, err
			},
		},
	}
}

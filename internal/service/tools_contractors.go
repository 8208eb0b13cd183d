package service

import (
	"context"
	"encoding/json"

	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
	"github.com/stratuspay/payroll-mcp/internal/domain/render"
	"github.com/stratuspay/payroll-mcp/pkg/mcp"
)

type listContractorsInput struct {
	CompanyUUID string `json:"company_uuid" validate:"required"`
	Page        int    `json:"page" validate:"omitempty,min=1"`
	Per         int    `json:"per" validate:"omitempty,min=1"`
}

type contractorInput struct {
	ContractorUUID string `json:"contractor_uuid" validate:"required"`
}

type createContractorInput struct {
	CompanyUUID  string `json:"company_uuid" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=Individual Business"`
	WageType     string `json:"wage_type" validate:"required,oneof=Fixed Hourly"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BusinessName string `json:"business_name"`
	Ein          string `json:"ein"`
	Email        string `json:"email" validate:"omitempty,email"`
	HourlyRate   string `json:"hourly_rate"`
}

type updateContractorInput struct {
	ContractorUUID string `json:"contractor_uuid" validate:"required"`
	Version        string `json:"version" validate:"required"`
	WageType       string `json:"wage_type" validate:"omitempty,oneof=Fixed Hourly"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	BusinessName   string `json:"business_name"`
	Ein            string `json:"ein"`
	Email          string `json:"email" validate:"omitempty,email"`
	HourlyRate     string `json:"hourly_rate"`
}

type listContractorPaymentsInput struct {
	CompanyUUID string `json:"company_uuid" validate:"required"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type contractorPaymentInput struct {
	CompanyUUID           string `json:"company_uuid" validate:"required"`
	ContractorPaymentUUID string `json:"contractor_payment_uuid" validate:"required"`
}

type createContractorPaymentInput struct {
	CompanyUUID    string `json:"company_uuid" validate:"required"`
	ContractorUUID string `json:"contractor_uuid" validate:"required"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Wage           string `json:"wage"`
	Hours          string `json:"hours"`
	Bonus          string `json:"bonus"`
	Reimbursement  string `json:"reimbursement"`
	PaymentMethod  string `json:"payment_method" validate:"omitempty,oneof='Direct Deposit' 'Check' 'Historical Payment'"`
}

func contractorTools() []Tool {
	return []Tool{
		{
			Def: mcp.Tool{
				Name:        "list_contractors",
				Description: "List a company's contractors, one page at a time.",
				InputSchema: objectSchema(pagingProps(map[string]any{
					"company_uuid": stringProp("UUID of the company"),
				}), "company_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in listContractorsInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindContractor, err
				}
				page, err := env.Gateway.ListContractors(ctx, in.CompanyUUID, env.pageParams(in.Page, in.Per))
				return page, render.KindContractor, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "get_contractor",
				Description: "Fetch one contractor.",
				InputSchema: objectSchema(map[string]any{
					"contractor_uuid": stringProp("UUID of the contractor"),
				}, "contractor_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in contractorInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindContractor, err
				}
				contractor, err := env.Gateway.GetContractor(ctx, in.ContractorUUID)
				return contractor, render.KindContractor, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "create_contractor",
				Description: "Create a contractor under a company. Individuals need a first and last name; businesses need a business name.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid":  stringProp("UUID of the company"),
					"type":          enumProp("Contractor type", "Individual", "Business"),
					"wage_type":     enumProp("How the contractor is paid", "Fixed", "Hourly"),
					"start_date":    stringProp("Contract start date, YYYY-MM-DD"),
					"first_name":    stringProp("First name (Individual contractors)"),
					"last_name":     stringProp("Last name (Individual contractors)"),
					"business_name": stringProp("Business name (Business contractors)"),
					"ein":           stringProp("Employer identification number (Business contractors)"),
					"email":         stringProp("Email address"),
					"hourly_rate":   stringProp("Hourly rate as a decimal string (Hourly wage type)"),
				}, "company_uuid", "type", "wage_type", "start_date"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in createContractorInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindContractor, err
				}
				attrs := entity.Entity{
					"type":      in.Type,
					"wageType":  in.WageType,
					"startDate": in.StartDate,
				}
				putStr(attrs, "firstName", in.FirstName)
				putStr(attrs, "lastName", in.LastName)
				putStr(attrs, "businessName", in.BusinessName)
				putStr(attrs, "ein", in.Ein)
				putStr(attrs, "email", in.Email)
				putStr(attrs, "hourlyRate", in.HourlyRate)
				contractor, err := env.Gateway.CreateContractor(ctx, in.CompanyUUID, attrs)
				if err != nil {
					return nil, render.KindContractor, err
				}
				return mutated("contractor", contractor), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "update_contractor",
				Description: "Update a contractor. Requires the contractor's current version token; omitted fields are left unchanged.",
				InputSchema: objectSchema(map[string]any{
					"contractor_uuid": stringProp("UUID of the contractor"),
					"version":         stringProp("Current version token of the contractor record"),
					"wage_type":       enumProp("How the contractor is paid", "Fixed", "Hourly"),
					"first_name":      stringProp("First name"),
					"last_name":       stringProp("Last name"),
					"business_name":   stringProp("Business name"),
					"ein":             stringProp("Employer identification number"),
					"email":           stringProp("Email address"),
					"hourly_rate":     stringProp("Hourly rate as a decimal string"),
				}, "contractor_uuid", "version"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in updateContractorInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindContractor, err
				}
				attrs := entity.Entity{"version": in.Version}
				putStr(attrs, "wageType", in.WageType)
				putStr(attrs, "firstName", in.FirstName)
				putStr(attrs, "lastName", in.LastName)
				putStr(attrs, "businessName", in.BusinessName)
				putStr(attrs, "ein", in.Ein)
				putStr(attrs, "email", in.Email)
				putStr(attrs, "hourlyRate", in.HourlyRate)
				contractor, err := env.Gateway.UpdateContractor(ctx, in.ContractorUUID, attrs)
				if err != nil {
					return nil, render.KindContractor, err
				}
				return mutated("contractor", contractor), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "delete_contractor",
				Description: "Delete a contractor who has not been paid yet.",
				InputSchema: objectSchema(map[string]any{
					"contractor_uuid": stringProp("UUID of the contractor"),
				}, "contractor_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in contractorInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				if err := env.Gateway.DeleteContractor(ctx, in.ContractorUUID); err != nil {
					return nil, render.KindGeneric, err
				}
				return acknowledged(), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "list_contractor_payments",
				Description: "List a company's contractor payments within a date range. Returns the full set; this endpoint is not paginated.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid": stringProp("UUID of the company"),
					"start_date":   stringProp("Range start, YYYY-MM-DD"),
					"end_date":     stringProp("Range end, YYYY-MM-DD"),
				}, "company_uuid", "start_date", "end_date"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in listContractorPaymentsInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				payments, err := env.Gateway.ListContractorPayments(ctx, in.CompanyUUID, in.StartDate, in.EndDate)
				return payments, render.KindGeneric, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "get_contractor_payment",
				Description: "Fetch one contractor payment.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid":            stringProp("UUID of the company"),
					"contractor_payment_uuid": stringProp("UUID of the contractor payment"),
				}, "company_uuid", "contractor_payment_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in contractorPaymentInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				payment, err := env.Gateway.GetContractorPayment(ctx, in.CompanyUUID, in.ContractorPaymentUUID)
				return payment, render.KindGeneric, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "create_contractor_payment",
				Description: "Record a payment to a contractor. Fixed-wage contractors take a wage amount; hourly contractors take hours.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid":    stringProp("UUID of the company"),
					"contractor_uuid": stringProp("UUID of the contractor being paid"),
					"date":            stringProp("Payment date, YYYY-MM-DD"),
					"wage":            stringProp("Fixed wage amount as a decimal string"),
					"hours":           stringProp("Hours worked as a decimal string"),
					"bonus":           stringProp("Bonus amount as a decimal string"),
					"reimbursement":   stringProp("Reimbursement amount as a decimal string"),
					"payment_method":  enumProp("How the payment is made", "Direct Deposit", "Check", "Historical Payment"),
				}, "company_uuid", "contractor_uuid", "date"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in createContractorPaymentInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				attrs := entity.Entity{
					"contractorUuid": in.ContractorUUID,
					"date":           in.Date,
				}
				putStr(attrs, "wage", in.Wage)
				putStr(attrs, "hours", in.Hours)
				putStr(attrs, "bonus", in.Bonus)
				putStr(attrs, "reimbursement", in.Reimbursement)
				putStr(attrs, "paymentMethod", in.PaymentMethod)
				payment, err := env.Gateway.CreateContractorPayment(ctx, in.CompanyUUID, attrs)
				if err != nil {
					return nil, render.KindGeneric, err
				}
				return mutated("contractorPayment", payment), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "cancel_contractor_payment",
				Description: "Cancel a contractor payment that has not been processed yet.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid":            stringProp("UUID of the company"),
					"contractor_payment_uuid": stringProp("UUID of the contractor payment"),
				}, "company_uuid", "contractor_payment_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in contractorPaymentInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				if err := env.Gateway.CancelContractorPayment(ctx, in.CompanyUUID, in.ContractorPaymentUUID); err != nil {
					return nil, render.KindGeneric, err
				}
				return acknowledged(), render.KindGeneric, nil
			},
		},
	}
}

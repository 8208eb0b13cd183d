package service

import (
	"context"
	"encoding/json"

	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
	"github.com/stratuspay/payroll-mcp/internal/domain/render"
	"github.com/stratuspay/payroll-mcp/pkg/mcp"
)

type listEmployeesInput struct {
	CompanyUUID string `json:"company_uuid" validate:"required"`
	Page        int    `json:"page" validate:"omitempty,min=1"`
	Per         int    `json:"per" validate:"omitempty,min=1"`
	Terminated  *bool  `json:"terminated"`
}

type employeeInput struct {
	EmployeeUUID string `json:"employee_uuid" validate:"required"`
}

type createEmployeeInput struct {
	CompanyUUID string `json:"company_uuid" validate:"required"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Department  string `json:"department"`
}

type updateEmployeeInput struct {
	EmployeeUUID          string `json:"employee_uuid" validate:"required"`
	Version               string `json:"version" validate:"required"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Email                 string `json:"email" validate:"omitempty,email"`
	Phone                 string `json:"phone"`
	DateOfBirth           string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Department            string `json:"department"`
	TwoPercentShareholder *bool  `json:"two_percent_shareholder"`
}

type listJobsInput struct {
	EmployeeUUID string `json:"employee_uuid" validate:"required"`
	Page         int    `json:"page" validate:"omitempty,min=1"`
	Per          int    `json:"per" validate:"omitempty,min=1"`
}

type jobInput struct {
	JobUUID string `json:"job_uuid" validate:"required"`
}

type createJobInput struct {
	EmployeeUUID string `json:"employee_uuid" validate:"required"`
	Title        string `json:"title" validate:"required"`
	HireDate     string `json:"hire_date" validate:"required,datetime=2006-01-02"`
}

type updateJobInput struct {
	JobUUID  string `json:"job_uuid" validate:"required"`
	Version  string `json:"version" validate:"required"`
	Title    string `json:"title"`
	HireDate string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
}

type listCompensationsInput struct {
	JobUUID string `json:"job_uuid" validate:"required"`
	Page    int    `json:"page" validate:"omitempty,min=1"`
	Per     int    `json:"per" validate:"omitempty,min=1"`
}

type compensationInput struct {
	CompensationUUID string `json:"compensation_uuid" validate:"required"`
}

type updateCompensationInput struct {
	CompensationUUID string `json:"compensation_uuid" validate:"required"`
	Version          string `json:"version" validate:"required"`
	Rate             string `json:"rate"`
	PaymentUnit      string `json:"payment_unit" validate:"omitempty,oneof=Hour Week Month Year Paycheck"`
	FlsaStatus       string `json:"flsa_status"`
}

func employeeTools() []Tool {
	return []Tool{
		{
			Def: mcp.Tool{
				Name:        "list_employees",
				Description: "List a company's employees, one page at a time. Optionally filter by termination state.",
				InputSchema: objectSchema(pagingProps(map[string]any{
					"company_uuid": stringProp("UUID of the company"),
					"terminated":   boolProp("Filter to terminated (true) or active (false) employees"),
				}), "company_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in listEmployeesInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindEmployee, err
				}
				page, err := env.Gateway.ListEmployees(ctx, in.CompanyUUID, env.pageParams(in.Page, in.Per), in.Terminated)
				return page, render.KindEmployee, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "get_employee",
				Description: "Fetch one employee, including home address and jobs.",
				InputSchema: objectSchema(map[string]any{
					"employee_uuid": stringProp("UUID of the employee"),
				}, "employee_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in employeeInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindEmployee, err
				}
				emp, err := env.Gateway.GetEmployee(ctx, in.EmployeeUUID)
				return emp, render.KindEmployee, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "create_employee",
				Description: "Create an employee under a company. The employee completes onboarding separately.",
				InputSchema: objectSchema(map[string]any{
					"company_uuid":  stringProp("UUID of the company"),
					"first_name":    stringProp("Legal first name"),
					"last_name":     stringProp("Legal last name"),
					"email":         stringProp("Work email address"),
					"phone":         stringProp("Phone number"),
					"date_of_birth": stringProp("Date of birth, YYYY-MM-DD"),
					"department":    stringProp("Department name"),
				}, "company_uuid", "first_name", "last_name"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in createEmployeeInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindEmployee, err
				}
				attrs := entity.Entity{
					"firstName": in.FirstName,
					"lastName":  in.LastName,
				}
				putStr(attrs, "email", in.Email)
				putStr(attrs, "phone", in.Phone)
				putStr(attrs, "dateOfBirth", in.DateOfBirth)
				putStr(attrs, "department", in.Department)
				emp, err := env.Gateway.CreateEmployee(ctx, in.CompanyUUID, attrs)
				if err != nil {
					return nil, render.KindEmployee, err
				}
				return mutated("employee", emp), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "update_employee",
				Description: "Update an employee. Requires the employee's current version token; omitted fields are left unchanged.",
				InputSchema: objectSchema(map[string]any{
					"employee_uuid":           stringProp("UUID of the employee"),
					"version":                 stringProp("Current version token of the employee record"),
					"first_name":              stringProp("Legal first name"),
					"last_name":               stringProp("Legal last name"),
					"email":                   stringProp("Work email address"),
					"phone":                   stringProp("Phone number"),
					"date_of_birth":           stringProp("Date of birth, YYYY-MM-DD"),
					"department":              stringProp("Department name"),
					"two_percent_shareholder": boolProp("Whether the employee owns 2% or more of the company"),
				}, "employee_uuid", "version"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in updateEmployeeInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindEmployee, err
				}
				attrs := entity.Entity{"version": in.Version}
				putStr(attrs, "firstName", in.FirstName)
				putStr(attrs, "lastName", in.LastName)
				putStr(attrs, "email", in.Email)
				putStr(attrs, "phone", in.Phone)
				putStr(attrs, "dateOfBirth", in.DateOfBirth)
				putStr(attrs, "department", in.Department)
				putBool(attrs, "twoPercentShareholder", in.TwoPercentShareholder)
				emp, err := env.Gateway.UpdateEmployee(ctx, in.EmployeeUUID, attrs)
				if err != nil {
					return nil, render.KindEmployee, err
				}
				return mutated("employee", emp), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "delete_employee",
				Description: "Delete an employee who has not yet been onboarded. Onboarded employees cannot be deleted.",
				InputSchema: objectSchema(map[string]any{
					"employee_uuid": stringProp("UUID of the employee"),
				}, "employee_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in employeeInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				if err := env.Gateway.DeleteEmployee(ctx, in.EmployeeUUID); err != nil {
					return nil, render.KindGeneric, err
				}
				return acknowledged(), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "list_jobs",
				Description: "List an employee's jobs, one page at a time.",
				InputSchema: objectSchema(pagingProps(map[string]any{
					"employee_uuid": stringProp("UUID of the employee"),
				}), "employee_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in listJobsInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				page, err := env.Gateway.ListJobs(ctx, in.EmployeeUUID, env.pageParams(in.Page, in.Per))
				return page, render.KindGeneric, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "get_job",
				Description: "Fetch one job, including its compensation history.",
				InputSchema: objectSchema(map[string]any{
					"job_uuid": stringProp("UUID of the job"),
				}, "job_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in jobInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				job, err := env.Gateway.GetJob(ctx, in.JobUUID)
				return job, render.KindGeneric, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "create_job",
				Description: "Create a job for an employee.",
				InputSchema: objectSchema(map[string]any{
					"employee_uuid": stringProp("UUID of the employee"),
					"title":         stringProp("Job title"),
					"hire_date":     stringProp("Hire date, YYYY-MM-DD"),
				}, "employee_uuid", "title", "hire_date"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in createJobInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				attrs := entity.Entity{
					"title":    in.Title,
					"hireDate": in.HireDate,
				}
				job, err := env.Gateway.CreateJob(ctx, in.EmployeeUUID, attrs)
				if err != nil {
					return nil, render.KindGeneric, err
				}
				return mutated("job", job), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "update_job",
				Description: "Update a job's title or hire date. Requires the job's current version token.",
				InputSchema: objectSchema(map[string]any{
					"job_uuid":  stringProp("UUID of the job"),
					"version":   stringProp("Current version token of the job record"),
					"title":     stringProp("Job title"),
					"hire_date": stringProp("Hire date, YYYY-MM-DD"),
				}, "job_uuid", "version"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in updateJobInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				attrs := entity.Entity{"version": in.Version}
				putStr(attrs, "title", in.Title)
				putStr(attrs, "hireDate", in.HireDate)
				job, err := env.Gateway.UpdateJob(ctx, in.JobUUID, attrs)
				if err != nil {
					return nil, render.KindGeneric, err
				}
				return mutated("job", job), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "delete_job",
				Description: "Delete a job.",
				InputSchema: objectSchema(map[string]any{
					"job_uuid": stringProp("UUID of the job"),
				}, "job_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in jobInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				if err := env.Gateway.DeleteJob(ctx, in.JobUUID); err != nil {
					return nil, render.KindGeneric, err
				}
				return acknowledged(), render.KindGeneric, nil
			},
		},
		{
			Def: mcp.Tool{
				Name:        "list_compensations",
				Description: "List a job's compensations, one page at a time.",
				InputSchema: objectSchema(pagingProps(map[string]any{
					"job_uuid": stringProp("UUID of the job"),
				}), "job_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in listCompensationsInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				page, err := env.Gateway.ListCompensations(ctx, in.JobUUID, env.pageParams(in.Page, in.Per))
				return page, render.KindGeneric, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "get_compensation",
				Description: "Fetch one compensation record.",
				InputSchema: objectSchema(map[string]any{
					"compensation_uuid": stringProp("UUID of the compensation"),
				}, "compensation_uuid"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in compensationInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				comp, err := env.Gateway.GetCompensation(ctx, in.CompensationUUID)
				return comp, render.KindGeneric, err
			},
		},
		{
			Def: mcp.Tool{
				Name:        "update_compensation",
				Description: "Update a compensation's rate, payment unit or FLSA status. Requires the compensation's current version token.",
				InputSchema: objectSchema(map[string]any{
					"compensation_uuid": stringProp("UUID of the compensation"),
					"version":           stringProp("Current version token of the compensation record"),
					"rate":              stringProp("Pay rate as a decimal string, e.g. \"32.50\""),
					"payment_unit":      enumProp("Unit the rate applies to", "Hour", "Week", "Month", "Year", "Paycheck"),
					"flsa_status":       stringProp("FLSA classification, e.g. \"Exempt\" or \"Nonexempt\""),
				}, "compensation_uuid", "version"),
			},
			Handler: func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error) {
				var in updateCompensationInput
				if err := decodeArgs(args, &in); err != nil {
					return nil, render.KindGeneric, err
				}
				attrs := entity.Entity{"version": in.Version}
				putStr(attrs, "rate", in.Rate)
				putStr(attrs, "paymentUnit", in.PaymentUnit)
				putStr(attrs, "flsaStatus", in.FlsaStatus)
				comp, err := env.Gateway.UpdateCompensation(ctx, in.CompensationUUID, attrs)
				if err != nil {
					return nil, render.KindGeneric, err
				}
				return mutated("compensation", comp), render.KindGeneric, nil
			},
		},
	}
}

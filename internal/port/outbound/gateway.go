// Package outbound defines the outbound port interfaces of the adapter core.
// The service layer calls these; outbound adapters implement them.
package outbound

import (
	"context"

	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
	"github.com/stratuspay/payroll-mcp/internal/domain/paging"
	"github.com/stratuspay/payroll-mcp/internal/domain/tenant"
)

// Gateway is the outbound port to the StratusPay API. Every method returns
// normalized domain entities; failures are *apierror.ClassifiedError values.
type Gateway interface {
	GetTokenInfo(ctx context.Context) (entity.Entity, error)
	GetCompany(ctx context.Context, companyUUID string) (entity.Entity, error)

	ListEmployees(ctx context.Context, companyUUID string, p paging.Params, terminated *bool) (*paging.Page, error)
	GetEmployee(ctx context.Context, employeeUUID string) (entity.Entity, error)
	CreateEmployee(ctx context.Context, companyUUID string, attrs entity.Entity) (entity.Entity, error)
	UpdateEmployee(ctx context.Context, employeeUUID string, attrs entity.Entity) (entity.Entity, error)
	DeleteEmployee(ctx context.Context, employeeUUID string) error

	ListJobs(ctx context.Context, employeeUUID string, p paging.Params) (*paging.Page, error)
	GetJob(ctx context.Context, jobUUID string) (entity.Entity, error)
	CreateJob(ctx context.Context, employeeUUID string, attrs entity.Entity) (entity.Entity, error)
	UpdateJob(ctx context.Context, jobUUID string, attrs entity.Entity) (entity.Entity, error)
	DeleteJob(ctx context.Context, jobUUID string) error

	ListCompensations(ctx context.Context, jobUUID string, p paging.Params) (*paging.Page, error)
	GetCompensation(ctx context.Context, compensationUUID string) (entity.Entity, error)
	UpdateCompensation(ctx context.Context, compensationUUID string, attrs entity.Entity) (entity.Entity, error)

	ListContractors(ctx context.Context, companyUUID string, p paging.Params) (*paging.Page, error)
	GetContractor(ctx context.Context, contractorUUID string) (entity.Entity, error)
	CreateContractor(ctx context.Context, companyUUID string, attrs entity.Entity) (entity.Entity, error)
	UpdateContractor(ctx context.Context, contractorUUID string, attrs entity.Entity) (entity.Entity, error)
	DeleteContractor(ctx context.Context, contractorUUID string) error

	ListContractorPayments(ctx context.Context, companyUUID, startDate, endDate string) ([]entity.Entity, error)
	GetContractorPayment(ctx context.Context, companyUUID, paymentUUID string) (entity.Entity, error)
	CreateContractorPayment(ctx context.Context, companyUUID string, attrs entity.Entity) (entity.Entity, error)
	CancelContractorPayment(ctx context.Context, companyUUID, paymentUUID string) error

	ListPayrolls(ctx context.Context, companyUUID, processingStatus string) ([]entity.Entity, error)
	GetPayroll(ctx context.Context, companyUUID, payrollUUID string) (entity.Entity, error)
	CalculatePayroll(ctx context.Context, companyUUID, payrollUUID string) error
	SubmitPayroll(ctx context.Context, companyUUID, payrollUUID string) error
	CancelPayroll(ctx context.Context, companyUUID, payrollUUID string) (entity.Entity, error)

	ListPaySchedules(ctx context.Context, companyUUID string, p paging.Params) (*paging.Page, error)
	GetPaySchedule(ctx context.Context, companyUUID, scheduleUUID string) (entity.Entity, error)
	ListPayPeriods(ctx context.Context, companyUUID, startDate, endDate string) ([]entity.Entity, error)

	GetHolidayPayPolicy(ctx context.Context, companyUUID string) (entity.Entity, error)
	CreateHolidayPayPolicy(ctx context.Context, companyUUID string, attrs entity.Entity) (entity.Entity, error)
	UpdateHolidayPayPolicy(ctx context.Context, companyUUID string, attrs entity.Entity) (entity.Entity, error)
	DeleteHolidayPayPolicy(ctx context.Context, companyUUID string) error
	AddEmployeesToHolidayPayPolicy(ctx context.Context, companyUUID string, employeeUUIDs []string) error
	RemoveEmployeesFromHolidayPayPolicy(ctx context.Context, companyUUID string, employeeUUIDs []string) error
}

// GatewayFactory builds a Gateway scoped to one request's credentials. The
// server never holds a process-wide upstream client; every tool call goes
// through a factory-built, request-scoped gateway.
type GatewayFactory func(creds tenant.Credentials) Gateway

package entity

// Mapping tables for every supported StratusPay entity. A wire field listed
// here is normalized; anything else the API returns is dropped by FromWire.
// Cross-entity references stay identifiers (Job carries employeeUuid, not an
// embedded Employee) matching the upstream resource-linking model.

// Address is shared by employees, contractors and company locations.
var Address = &Mapping{
	Name: "address",
	Fields: []Field{
		f("street_1"),
		f("street_2"),
		f("city"),
		f("state"),
		f("zip"),
		f("country"),
		f("active"),
	},
}

// Company is the tenant's company resource.
var Company = &Mapping{
	Name: "company",
	Fields: []Field{
		f("uuid"),
		f("name"),
		f("trade_name"),
		f("ein"),
		f("entity_type"),
		f("company_status"),
		f("tier"),
		f("is_suspended"),
		f("contractor_only"),
		fn("primary_location", Address),
	},
}

// Compensation is a job's pay rate record.
var Compensation = &Mapping{
	Name: "compensation",
	Fields: []Field{
		f("uuid"),
		f("job_uuid"),
		f("version"),
		f("rate"),
		f("payment_unit"),
		f("flsa_status"),
		f("effective_date"),
		f("adjust_for_minimum_wage"),
	},
}

// Job is an employee's position; compensations nest under it.
var Job = &Mapping{
	Name: "job",
	Fields: []Field{
		f("uuid"),
		f("employee_uuid"),
		f("version"),
		f("title"),
		f("hire_date"),
		f("location_uuid"),
		f("primary"),
		f("rate"),
		f("payment_unit"),
		f("current_compensation_uuid"),
		fn("compensations", Compensation),
	},
}

// Employee is the main worker resource.
var Employee = &Mapping{
	Name: "employee",
	Fields: []Field{
		f("uuid"),
		f("company_uuid"),
		f("manager_uuid"),
		f("version"),
		f("first_name"),
		f("middle_initial"),
		f("last_name"),
		f("email"),
		f("phone"),
		f("date_of_birth"),
		f("department"),
		f("onboarded"),
		f("onboarding_status"),
		f("terminated"),
		f("two_percent_shareholder"),
		f("current_employment_status"),
		fn("home_address", Address),
		fn("jobs", Job),
	},
}

// Contractor is an independent worker, individual or business.
var Contractor = &Mapping{
	Name: "contractor",
	Fields: []Field{
		f("uuid"),
		f("company_uuid"),
		f("version"),
		f("type"),
		f("wage_type"),
		f("is_active"),
		f("start_date"),
		f("first_name"),
		f("middle_initial"),
		f("last_name"),
		f("email"),
		f("business_name"),
		f("ein"),
		f("hourly_rate"),
		fn("address", Address),
	},
}

// PayPeriod delimits one payroll run.
var PayPeriod = &Mapping{
	Name: "payPeriod",
	Fields: []Field{
		f("start_date"),
		f("end_date"),
		f("pay_schedule_uuid"),
	},
}

// PayrollTotals aggregates a payroll's amounts. Decimal strings throughout.
var PayrollTotals = &Mapping{
	Name: "totals",
	Fields: []Field{
		f("gross_pay"),
		f("net_pay"),
		f("employer_taxes"),
		f("employee_taxes"),
		f("company_debit"),
		f("reimbursements"),
		f("child_support_debit"),
	},
}

// EmployeeCompensation is one employee's line in a payroll.
var EmployeeCompensation = &Mapping{
	Name: "employeeCompensation",
	Fields: []Field{
		f("employee_uuid"),
		f("excluded"),
		f("payment_method"),
		f("gross_pay"),
		f("net_pay"),
		f("check_amount"),
		f("memo"),
	},
}

// Payroll is a single payroll run with nested period, totals and lines.
var Payroll = &Mapping{
	Name: "payroll",
	Fields: []Field{
		f("payroll_uuid"),
		f("company_uuid"),
		f("version"),
		f("off_cycle"),
		f("off_cycle_reason"),
		f("check_date"),
		f("processed"),
		f("processed_date"),
		f("calculated_at"),
		f("payroll_deadline"),
		fn("pay_period", PayPeriod),
		fn("totals", PayrollTotals),
		fn("employee_compensations", EmployeeCompensation),
	},
}

// PaySchedule defines when a company pays its employees.
var PaySchedule = &Mapping{
	Name: "paySchedule",
	Fields: []Field{
		f("uuid"),
		f("version"),
		f("frequency"),
		f("anchor_pay_date"),
		f("anchor_end_of_pay_period"),
		f("day_1"),
		f("day_2"),
		f("name"),
		f("custom_name"),
		f("auto_pay"),
		f("active"),
	},
}

// ContractorPayment records one payment to a contractor.
var ContractorPayment = &Mapping{
	Name: "contractorPayment",
	Fields: []Field{
		f("uuid"),
		f("contractor_uuid"),
		f("date"),
		f("payment_method"),
		f("status"),
		f("wage_type"),
		f("wage"),
		f("hours"),
		f("bonus"),
		f("reimbursement"),
		f("wage_total"),
		f("may_cancel"),
	},
}

// policyEmployee is the minimal employee reference inside a holiday pay policy.
var policyEmployee = &Mapping{
	Name: "employee",
	Fields: []Field{
		f("uuid"),
	},
}

// HolidayPayPolicy is an optional per-company sub-resource; most companies
// have none, which the API reports as 404.
var HolidayPayPolicy = &Mapping{
	Name: "holidayPayPolicy",
	Fields: []Field{
		f("uuid"),
		f("company_uuid"),
		f("version"),
		f("federal_holidays"),
		fn("employees", policyEmployee),
	},
}

// tokenResource is the resource a token is scoped to.
var tokenResource = &Mapping{
	Name: "resource",
	Fields: []Field{
		f("type"),
		f("uuid"),
	},
}

// TokenInfo describes the access token presented by the tenant; used by the
// connection-test tool.
var TokenInfo = &Mapping{
	Name: "tokenInfo",
	Fields: []Field{
		f("scope"),
		fn("resource", tokenResource),
	},
}

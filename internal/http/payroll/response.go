package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/payroll"
)

type payrollResponse struct {
	ID              int64           `json:"id"`
	EmployeeID      int64           `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	EmployeeRole    string          `json:"employee_role,omitempty"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	Bonuses         decimal.Decimal `json:"bonuses"`
	Allowances      decimal.Decimal `json:"allowances"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	Tax             decimal.Decimal `json:"tax"`
	LatePenalties   decimal.Decimal `json:"late_penalties"`
	Absences        decimal.Decimal `json:"absences"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
	PayPeriodStart  string          `json:"pay_period_start"`
	PayPeriodEnd    string          `json:"pay_period_end"`
	PaymentDate     string          `json:"payment_date"`
	Status          payroll.Status  `json:"status"`
	Notes           string          `json:"notes,omitempty"`
}

func toResponse(rec *payroll.Record) payrollResponse {
	return payrollResponse{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		EmployeeName:    rec.EmployeeName,
		EmployeeRole:    rec.EmployeeRole,
		BaseSalary:      rec.Components.BaseSalary,
		OvertimePay:     rec.Components.OvertimePay,
		Bonuses:         rec.Components.Bonuses,
		Allowances:      rec.Components.Allowances,
		GrossSalary:     rec.GrossSalary,
		Tax:             rec.Components.Tax,
		LatePenalties:   rec.Components.LatePenalties,
		Absences:        rec.Components.Absences,
		OtherDeductions: rec.Components.OtherDeductions,
		TotalDeductions: rec.TotalDeductions,
		NetPay:          rec.NetPay,
		PayPeriodStart:  rec.PayPeriodStart.Format(time.DateOnly),
		PayPeriodEnd:    rec.PayPeriodEnd.Format(time.DateOnly),
		PaymentDate:     rec.PaymentDate.Format(time.DateOnly),
		Status:          rec.Status,
		Notes:           rec.Notes,
	}
}

func toResponseList(records []*payroll.Record) []payrollResponse {
	resp := make([]payrollResponse, len(records))
	for i, rec := range records {
		resp[i] = toResponse(rec)
	}

	return resp
}

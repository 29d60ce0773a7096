package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/fault"
)

// Status represents the payment state of a payroll record.
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusPending Status = "Pending"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPaid, StatusPending:
		return Status(s), nil
	}

	return "", fault.Invalidf("unknown payroll status %q", s)
}

// Components are the compensation and deduction inputs a payroll record is
// computed from. All fields must be non-negative.
type Components struct {
	BaseSalary      decimal.Decimal
	OvertimePay     decimal.Decimal
	Bonuses         decimal.Decimal
	Allowances      decimal.Decimal
	Tax             decimal.Decimal
	LatePenalties   decimal.Decimal
	Absences        decimal.Decimal
	OtherDeductions decimal.Decimal
}

// Record is a payroll entry for one employee and pay period. Gross,
// TotalDeductions and NetPay are derived from the components. When Status is
// Paid, exactly one Expense transaction of amount NetPay exists against the
// disbursement account, written in the same atomic unit as the record.
type Record struct {
	ID              int64
	EmployeeID      int64
	EmployeeName    string
	EmployeeRole    string
	Components      Components
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	PayPeriodStart  time.Time
	PayPeriodEnd    time.Time
	PaymentDate     time.Time
	Status          Status
	Notes           string
}

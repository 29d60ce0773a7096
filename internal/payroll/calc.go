package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

// Totals are the derived payroll amounts. NetPay may be negative when
// deductions exceed gross pay; it is never clamped.
type Totals struct {
	Gross           decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
}

// Calculate derives gross, total deductions and net pay, summing components
// in a fixed order.
func Calculate(c Components) Totals {
	gross := money.Sum(c.BaseSalary, c.OvertimePay, c.Bonuses, c.Allowances)
	deductions := money.Sum(c.Tax, c.LatePenalties, c.Absences, c.OtherDeductions)

	return Totals{
		Gross:           gross,
		TotalDeductions: deductions,
		NetPay:          gross.Sub(deductions),
	}
}

// ValidateComponents rejects negative compensation or deduction inputs.
func ValidateComponents(c Components) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"base salary", c.BaseSalary},
		{"overtime pay", c.OvertimePay},
		{"bonuses", c.Bonuses},
		{"allowances", c.Allowances},
		{"tax", c.Tax},
		{"late penalties", c.LatePenalties},
		{"absences", c.Absences},
		{"other deductions", c.OtherDeductions},
	}

	for _, f := range fields {
		if money.IsNegative(f.value) {
			return fault.Invalidf("%s must not be negative", f.name)
		}
	}

	return nil
}

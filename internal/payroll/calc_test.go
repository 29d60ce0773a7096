package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/payroll"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name           string
		components     payroll.Components
		wantGross      string
		wantDeductions string
		wantNet        string
	}{
		{
			name: "StandardMonth",
			components: payroll.Components{
				BaseSalary:  dec("2000"),
				OvertimePay: dec("100"),
				Bonuses:     dec("50"),
				Allowances:  dec("25"),
				Tax:         dec("200"),
			},
			wantGross:      "2175",
			wantDeductions: "200",
			wantNet:        "1975",
		},
		{
			name: "DeductionsExceedGross",
			components: payroll.Components{
				BaseSalary:      dec("1000"),
				Tax:             dec("800"),
				LatePenalties:   dec("150"),
				Absences:        dec("200"),
				OtherDeductions: dec("50"),
			},
			wantGross:      "1000",
			wantDeductions: "1200",
			wantNet:        "-200",
		},
		{
			name:           "AllZero",
			components:     payroll.Components{},
			wantGross:      "0",
			wantDeductions: "0",
			wantNet:        "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payroll.Calculate(tt.components)

			assert.True(t, got.Gross.Equal(dec(tt.wantGross)), "gross %s", got.Gross)
			assert.True(t, got.TotalDeductions.Equal(dec(tt.wantDeductions)), "deductions %s", got.TotalDeductions)
			assert.True(t, got.NetPay.Equal(dec(tt.wantNet)), "net %s", got.NetPay)
		})
	}
}

func TestValidateComponents(t *testing.T) {
	valid := payroll.Components{BaseSalary: dec("1500")}
	assert.NoError(t, payroll.ValidateComponents(valid))

	negatives := []payroll.Components{
		{BaseSalary: dec("-1")},
		{OvertimePay: dec("-0.5")},
		{Tax: dec("-10")},
		{OtherDeductions: dec("-3")},
	}

	for _, c := range negatives {
		err := payroll.ValidateComponents(c)
		assert.Error(t, err)
		assert.True(t, fault.IsValidation(err))
	}
}

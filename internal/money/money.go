// Package money holds the decimal arithmetic shared by the invoice and
// payroll calculators. All amounts stay exact decimals until presentation;
// rounding to two places happens only in Round2 and Format.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var hundred = decimal.NewFromInt(100)

// Percent returns base * pct / 100.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// Sum adds values strictly left to right. The fixed order keeps repeated
// recomputation bit-identical.
func Sum(vs ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range vs {
		total = total.Add(v)
	}

	return total
}

// Round2 rounds to two decimal places. Presentation only; stored values keep
// full precision.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// IsNegative reports whether d is below zero.
func IsNegative(d decimal.Decimal) bool {
	return d.IsNegative()
}

// ValidPercent reports whether pct is within 0..100.
func ValidPercent(pct decimal.Decimal) bool {
	return !pct.IsNegative() && pct.LessThanOrEqual(hundred)
}

var printer = message.NewPrinter(language.English)

// Format renders an amount for display with a currency symbol, grouped
// thousands and exactly two decimal places, e.g. "$1,234.50".
func Format(symbol string, d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	if f < 0 {
		return printer.Sprintf("-%s%.2f", symbol, -f)
	}

	return printer.Sprintf("%s%.2f", symbol, f)
}

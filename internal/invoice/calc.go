package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

// Totals are the derived invoice amounts. All values are exact decimals;
// rounding happens at presentation.
type Totals struct {
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Terms are the invoice-level adjustments applied after the item sums.
// When Percent is above zero it wins over Flat and is applied to the
// tax-inclusive base (subtotal + tax); Flat is subtracted as-is.
type Terms struct {
	DiscountPercent decimal.Decimal
	DiscountFlat    decimal.Decimal
	Advance         decimal.Decimal
}

// Calculate derives totals from the line items and terms. Items are summed
// strictly in order so recomputation on the same input is bit-identical.
// Inputs must already be validated; Calculate itself accepts any values,
// including an empty item list.
func Calculate(items []*LineItem, terms Terms) Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero

	for _, it := range items {
		base := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		lineTax := money.Percent(base, it.TaxPercent)

		it.LineTotal = base.Add(lineTax)
		subtotal = subtotal.Add(base)
		tax = tax.Add(lineTax)
	}

	discount := terms.DiscountFlat
	if terms.DiscountPercent.IsPositive() {
		discount = money.Percent(subtotal.Add(tax), terms.DiscountPercent)
	}

	return Totals{
		Subtotal:       subtotal,
		Tax:            tax,
		DiscountAmount: discount,
		Total:          subtotal.Add(tax).Sub(discount).Sub(terms.Advance),
	}
}

// ValidateItems rejects the inputs the store would otherwise accept:
// negative quantities, prices, or out-of-range tax percentages.
func ValidateItems(items []*LineItem) error {
	if len(items) == 0 {
		return fault.Invalidf("invoice must have at least one line item")
	}

	for i, it := range items {
		if it.ProductName == "" {
			return fault.Invalidf("line item %d: product name is required", i+1)
		}

		if it.Quantity < 0 {
			return fault.Invalidf("line item %d: quantity must not be negative", i+1)
		}

		if money.IsNegative(it.UnitPrice) {
			return fault.Invalidf("line item %d: unit price must not be negative", i+1)
		}

		if !money.ValidPercent(it.TaxPercent) {
			return fault.Invalidf("line item %d: tax percent must be between 0 and 100", i+1)
		}
	}

	return nil
}

// ValidateTerms rejects negative discounts and advances.
func ValidateTerms(terms Terms) error {
	if !money.ValidPercent(terms.DiscountPercent) {
		return fault.Invalidf("discount percent must be between 0 and 100")
	}

	if money.IsNegative(terms.DiscountFlat) {
		return fault.Invalidf("discount must not be negative")
	}

	if money.IsNegative(terms.Advance) {
		return fault.Invalidf("advance must not be negative")
	}

	return nil
}

package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/invoice"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(qty int64, price, taxPct string) *invoice.LineItem {
	return &invoice.LineItem{
		ProductName: "Widget",
		Quantity:    qty,
		UnitPrice:   dec(price),
		TaxPercent:  dec(taxPct),
	}
}

func TestCalculate(t *testing.T) {
	type want struct {
		subtotal string
		tax      string
		discount string
		total    string
	}

	tests := []struct {
		name  string
		items []*invoice.LineItem
		terms invoice.Terms
		want  want
	}{
		{
			name: "PercentDiscountWithAdvance",
			items: []*invoice.LineItem{
				item(2, "50.00", "10"),
				item(1, "30.00", "0"),
			},
			terms: invoice.Terms{DiscountPercent: dec("10"), Advance: dec("5.00")},
			want:  want{subtotal: "130", tax: "10", discount: "14", total: "121"},
		},
		{
			name:  "FlatDiscount",
			items: []*invoice.LineItem{item(1, "100.00", "0")},
			terms: invoice.Terms{DiscountFlat: dec("15")},
			want:  want{subtotal: "100", tax: "0", discount: "15", total: "85"},
		},
		{
			name:  "PercentWinsOverFlat",
			items: []*invoice.LineItem{item(1, "100.00", "0")},
			terms: invoice.Terms{DiscountPercent: dec("10"), DiscountFlat: dec("50")},
			want:  want{subtotal: "100", tax: "0", discount: "10", total: "90"},
		},
		{
			name:  "NoAdjustments",
			items: []*invoice.LineItem{item(3, "19.99", "5")},
			terms: invoice.Terms{},
			want:  want{subtotal: "59.97", tax: "2.9985", discount: "0", total: "62.9685"},
		},
		{
			name:  "EmptyItems",
			items: nil,
			terms: invoice.Terms{DiscountFlat: dec("5"), Advance: dec("2")},
			want:  want{subtotal: "0", tax: "0", discount: "5", total: "-7"},
		},
		{
			name:  "ZeroQuantity",
			items: []*invoice.LineItem{item(0, "80.00", "10")},
			terms: invoice.Terms{},
			want:  want{subtotal: "0", tax: "0", discount: "0", total: "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoice.Calculate(tt.items, tt.terms)

			assert.True(t, got.Subtotal.Equal(dec(tt.want.subtotal)), "subtotal %s", got.Subtotal)
			assert.True(t, got.Tax.Equal(dec(tt.want.tax)), "tax %s", got.Tax)
			assert.True(t, got.DiscountAmount.Equal(dec(tt.want.discount)), "discount %s", got.DiscountAmount)
			assert.True(t, got.Total.Equal(dec(tt.want.total)), "total %s", got.Total)
		})
	}
}

func TestCalculate_SetsLineTotals(t *testing.T) {
	items := []*invoice.LineItem{item(2, "50.00", "10"), item(1, "30.00", "0")}

	invoice.Calculate(items, invoice.Terms{})

	assert.True(t, items[0].LineTotal.Equal(dec("110")), "got %s", items[0].LineTotal)
	assert.True(t, items[1].LineTotal.Equal(dec("30")), "got %s", items[1].LineTotal)
}

func TestCalculate_Recomputation(t *testing.T) {
	items := []*invoice.LineItem{
		item(7, "3.33", "7.5"),
		item(13, "0.07", "19"),
		item(1, "999.99", "2.5"),
	}
	terms := invoice.Terms{DiscountPercent: dec("3.5"), Advance: dec("12.34")}

	first := invoice.Calculate(items, terms)
	second := invoice.Calculate(items, terms)

	assert.Equal(t, first.Subtotal.String(), second.Subtotal.String())
	assert.Equal(t, first.Tax.String(), second.Tax.String())
	assert.Equal(t, first.DiscountAmount.String(), second.DiscountAmount.String())
	assert.Equal(t, first.Total.String(), second.Total.String())
}

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []*invoice.LineItem
		wantErr bool
	}{
		{name: "Valid", items: []*invoice.LineItem{item(1, "10", "0")}, wantErr: false},
		{name: "Empty", items: nil, wantErr: true},
		{name: "NegativeQuantity", items: []*invoice.LineItem{item(-1, "10", "0")}, wantErr: true},
		{name: "NegativePrice", items: []*invoice.LineItem{item(1, "-10", "0")}, wantErr: true},
		{name: "TaxPercentTooHigh", items: []*invoice.LineItem{item(1, "10", "101")}, wantErr: true},
		{name: "NegativeTaxPercent", items: []*invoice.LineItem{item(1, "10", "-5")}, wantErr: true},
		{
			name: "MissingProductName",
			items: []*invoice.LineItem{{
				Quantity:  1,
				UnitPrice: dec("10"),
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := invoice.ValidateItems(tt.items)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, fault.IsValidation(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidateTerms(t *testing.T) {
	assert.NoError(t, invoice.ValidateTerms(invoice.Terms{}))
	assert.Error(t, invoice.ValidateTerms(invoice.Terms{DiscountPercent: dec("120")}))
	assert.Error(t, invoice.ValidateTerms(invoice.Terms{DiscountFlat: dec("-1")}))
	assert.Error(t, invoice.ValidateTerms(invoice.Terms{Advance: dec("-0.01")}))
}

package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/invoice"
)

type itemResponse struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"product_name"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxPercent  decimal.Decimal `json:"tax_percent"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type invoiceResponse struct {
	ID              int64           `json:"id"`
	Number          string          `json:"invoice_number"`
	CustomerID      int64           `json:"customer_id"`
	CustomerName    string          `json:"customer_name,omitempty"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	Status          invoice.Status  `json:"status"`
	IssueDate       string          `json:"issue_date"`
	DueDate         string          `json:"due_date"`
	Notes           string          `json:"notes,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Discount        decimal.Decimal `json:"discount"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Advance         decimal.Decimal `json:"advance"`
	Total           decimal.Decimal `json:"total"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []itemResponse  `json:"items"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	items := make([]itemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = itemResponse{
			ID:          it.ID,
			ProductName: it.ProductName,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxPercent:  it.TaxPercent,
			LineTotal:   it.LineTotal,
		}
	}

	return invoiceResponse{
		ID:              inv.ID,
		Number:          inv.Number,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		CustomerPhone:   inv.CustomerPhone,
		Status:          inv.Status,
		IssueDate:       inv.IssueDate.Format(time.DateOnly),
		DueDate:         inv.DueDate.Format(time.DateOnly),
		Notes:           inv.Notes,
		Subtotal:        inv.Subtotal,
		Tax:             inv.Tax,
		Discount:        inv.Discount,
		DiscountPercent: inv.DiscountPercent,
		Advance:         inv.Advance,
		Total:           inv.Total,
		CreatedAt:       inv.CreatedAt,
		Items:           items,
	}
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}

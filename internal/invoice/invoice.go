package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/fault"
)

// Status represents the lifecycle state of an invoice.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusSent      Status = "Sent"
	StatusPaid      Status = "Paid"
	StatusOverdue   Status = "Overdue"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus validates a status value from the boundary. Unknown values are
// a validation error, not a passthrough.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return Status(s), nil
	}

	return "", fault.Invalidf("unknown invoice status %q", s)
}

// LineItem is one priced row within an invoice. LineTotal is derived and set
// by the calculator, never supplied by callers.
type LineItem struct {
	ID          int64
	InvoiceID   int64
	ProductName string
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	TaxPercent  decimal.Decimal
	LineTotal   decimal.Decimal
}

// Invoice is a customer invoice with derived totals. The stored totals are a
// materialized copy of what Calculate produces from the items; the items are
// the only source of truth.
type Invoice struct {
	ID              int64
	Number          string
	CustomerID      int64
	CustomerName    string
	CustomerPhone   string
	Status          Status
	IssueDate       time.Time
	DueDate         time.Time
	Notes           string
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Discount        decimal.Decimal
	DiscountPercent decimal.Decimal
	Advance         decimal.Decimal
	Total           decimal.Decimal
	CreatedAt       time.Time
	Items           []*LineItem
}

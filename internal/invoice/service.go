package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	// CreateInvoice persists the invoice and all of its items in one atomic
	// unit, allocating the sequential invoice number inside the same unit.
	// On success the invoice ID, number and timestamps are filled in.
	CreateInvoice(ctx context.Context, inv *Invoice) error
	// NextSequence reads the sequence the next invoice would be numbered
	// from. Advisory only: CreateInvoice re-reads it inside its own unit.
	NextSequence(ctx context.Context) (int64, error)
	GetInvoice(ctx context.Context, id int64) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	DeleteInvoice(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ItemParams struct {
	ProductName string
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	TaxPercent  decimal.Decimal
}

type CreateParams struct {
	CustomerID      int64
	Status          Status
	IssueDate       time.Time
	DueDate         time.Time
	Notes           string
	DiscountPercent decimal.Decimal
	DiscountFlat    decimal.Decimal
	Advance         decimal.Decimal
	Items           []ItemParams
}

type ListFilter struct {
	Status     *Status
	CustomerID *int64
}

// Create validates the request, derives all totals from the items and writes
// the invoice and its items atomically. Validation failures surface before
// anything is persisted.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	items := make([]*LineItem, len(params.Items))
	for i, p := range params.Items {
		items[i] = &LineItem{
			ProductName: p.ProductName,
			Description: p.Description,
			Quantity:    p.Quantity,
			UnitPrice:   p.UnitPrice,
			TaxPercent:  p.TaxPercent,
		}
	}

	if err := ValidateItems(items); err != nil {
		return nil, err
	}

	terms := Terms{
		DiscountPercent: params.DiscountPercent,
		DiscountFlat:    params.DiscountFlat,
		Advance:         params.Advance,
	}
	if err := ValidateTerms(terms); err != nil {
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = StatusDraft
	}

	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	totals := Calculate(items, terms)

	inv := &Invoice{
		CustomerID:      params.CustomerID,
		Status:          status,
		IssueDate:       params.IssueDate,
		DueDate:         params.DueDate,
		Notes:           params.Notes,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Discount:        totals.DiscountAmount,
		DiscountPercent: params.DiscountPercent,
		Advance:         params.Advance,
		Total:           totals.Total,
		Items:           items,
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	st, err := ParseStatus(status)
	if err != nil {
		return err
	}

	return s.repo.UpdateStatus(ctx, id, st)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteInvoice(ctx, id)
}

// NextNumber previews the number the next created invoice will receive.
func (s *Service) NextNumber(ctx context.Context) (string, error) {
	seq, err := s.repo.NextSequence(ctx)
	if err != nil {
		return "", err
	}

	return Number(seq), nil
}

// Number formats a sequential invoice id as the stored human-readable
// invoice number, e.g. 7 -> "INV-00007".
func Number(seq int64) string {
	return fmt.Sprintf("INV-%05d", seq)
}

package product

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

// Product is a catalogue entry used to prefill invoice line items. Invoices
// copy name and price at creation time, so later product edits never change
// existing invoices.
type Product struct {
	ID          int64
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	TaxPercent  decimal.Decimal
}

type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	ListProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	TaxPercent  decimal.Decimal
}

func validate(params Params) error {
	if params.Name == "" {
		return fault.Invalidf("product name is required")
	}

	if money.IsNegative(params.UnitPrice) {
		return fault.Invalidf("unit price must not be negative")
	}

	if !money.ValidPercent(params.TaxPercent) {
		return fault.Invalidf("tax percent must be between 0 and 100")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params Params) (*Product, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	p := &Product{
		Name:        params.Name,
		Description: params.Description,
		UnitPrice:   params.UnitPrice,
		TaxPercent:  params.TaxPercent,
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, params Params) (*Product, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	p := &Product{
		ID:          id,
		Name:        params.Name,
		Description: params.Description,
		UnitPrice:   params.UnitPrice,
		TaxPercent:  params.TaxPercent,
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}

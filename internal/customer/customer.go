package customer

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/fault"
)

// Customer is a billing counterparty referenced by invoices.
type Customer struct {
	ID        int64
	Name      string
	Company   string
	Phone     string
	Email     string
	Address   string
	TaxID     string
	CreatedAt time.Time
}

type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name    string
	Company string
	Phone   string
	Email   string
	Address string
	TaxID   string
}

func (s *Service) Create(ctx context.Context, params Params) (*Customer, error) {
	if params.Name == "" {
		return nil, fault.Invalidf("customer name is required")
	}

	c := &Customer{
		Name:    params.Name,
		Company: params.Company,
		Phone:   params.Phone,
		Email:   params.Email,
		Address: params.Address,
		TaxID:   params.TaxID,
	}

	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, params Params) (*Customer, error) {
	if params.Name == "" {
		return nil, fault.Invalidf("customer name is required")
	}

	c, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = params.Name
	c.Company = params.Company
	c.Phone = params.Phone
	c.Email = params.Email
	c.Address = params.Address
	c.TaxID = params.TaxID

	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteCustomer(ctx, id)
}

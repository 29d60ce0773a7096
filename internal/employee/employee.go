package employee

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

// Employee holds the contracted salary and allowances that prefill a payroll
// run. Payroll records copy these amounts at creation, so editing an employee
// never rewrites past runs.
type Employee struct {
	ID         int64
	Name       string
	Role       string
	Email      string
	Phone      string
	Salary     decimal.Decimal
	Allowances decimal.Decimal
	CreatedAt  time.Time
}

type Repository interface {
	CreateEmployee(ctx context.Context, e *Employee) error
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, e *Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name       string
	Role       string
	Email      string
	Phone      string
	Salary     decimal.Decimal
	Allowances decimal.Decimal
}

func validate(params Params) error {
	if params.Name == "" {
		return fault.Invalidf("employee name is required")
	}

	if money.IsNegative(params.Salary) {
		return fault.Invalidf("salary must not be negative")
	}

	if money.IsNegative(params.Allowances) {
		return fault.Invalidf("allowances must not be negative")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params Params) (*Employee, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	e := &Employee{
		Name:       params.Name,
		Role:       params.Role,
		Email:      params.Email,
		Phone:      params.Phone,
		Salary:     params.Salary,
		Allowances: params.Allowances,
	}

	if err := s.repo.CreateEmployee(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	return s.repo.GetEmployee(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	return s.repo.ListEmployees(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, params Params) (*Employee, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	e := &Employee{
		ID:         id,
		Name:       params.Name,
		Role:       params.Role,
		Email:      params.Email,
		Phone:      params.Phone,
		Salary:     params.Salary,
		Allowances: params.Allowances,
	}

	if err := s.repo.UpdateEmployee(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteEmployee(ctx, id)
}

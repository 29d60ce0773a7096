package payroll

import (
	"context"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payroll
type Repository interface {
	// CreatePayroll persists the record atomically. When the record's status
	// is Paid, the same unit also writes one Expense transaction of amount
	// NetPay against disbursementAccountID and debits that account's balance.
	CreatePayroll(ctx context.Context, rec *Record, disbursementAccountID int64) error
	GetPayroll(ctx context.Context, id int64) (*Record, error)
	ListPayroll(ctx context.Context) ([]*Record, error)
}

type Service struct {
	repo Repository

	// disbursementAccountID is the account debited for Paid payroll records.
	disbursementAccountID int64
}

func NewService(repo Repository, disbursementAccountID int64) *Service {
	return &Service{repo: repo, disbursementAccountID: disbursementAccountID}
}

type CreateParams struct {
	EmployeeID     int64
	Components     Components
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	PaymentDate    time.Time
	Status         Status
	Notes          string
}

// Create validates the request, derives the totals and writes the record
// (plus the ledger side effects for Paid records) atomically.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Record, error) {
	if err := ValidateComponents(params.Components); err != nil {
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = StatusPending
	}

	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}

	totals := Calculate(params.Components)

	rec := &Record{
		EmployeeID:      params.EmployeeID,
		Components:      params.Components,
		GrossSalary:     totals.Gross,
		TotalDeductions: totals.TotalDeductions,
		NetPay:          totals.NetPay,
		PayPeriodStart:  params.PayPeriodStart,
		PayPeriodEnd:    params.PayPeriodEnd,
		PaymentDate:     params.PaymentDate,
		Status:          status,
		Notes:           params.Notes,
	}

	if err := s.repo.CreatePayroll(ctx, rec, s.disbursementAccountID); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Record, error) {
	return s.repo.GetPayroll(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Record, error) {
	return s.repo.ListPayroll(ctx)
}

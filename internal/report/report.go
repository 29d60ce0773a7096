package report

import (
	"context"

	"github.com/shopspring/decimal"
)

// Stats is the dashboard summary. CashInHand is the balance of the configured
// disbursement account; BankBalance sums the Bank-type accounts; Receivables
// sums outstanding amounts of unpaid invoices.
type Stats struct {
	CashInHand     decimal.Decimal
	BankBalance    decimal.Decimal
	TotalIncome    decimal.Decimal
	TotalExpense   decimal.Decimal
	NetBalance     decimal.Decimal
	Receivables    decimal.Decimal
	InvoiceCount   int64
	CustomerCount  int64
	RecentInvoices []*RecentInvoice
}

// RecentInvoice is the dashboard's shortened invoice row.
type RecentInvoice struct {
	ID           int64
	Number       string
	CustomerName string
	Status       string
	IssueDate    string
	Total        decimal.Decimal
}

// MonthlyFlow is income against expense for one calendar month, keyed by a
// YYYY-MM month string.
type MonthlyFlow struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// CategoryTotal is the summed transaction amount for one category.
type CategoryTotal struct {
	Category string
	Type     string
	Total    decimal.Decimal
}

type Repository interface {
	DisbursementBalance(ctx context.Context, accountID int64) (decimal.Decimal, error)
	BankBalance(ctx context.Context) (decimal.Decimal, error)
	IncomeExpenseTotals(ctx context.Context) (income, expense decimal.Decimal, err error)
	Receivables(ctx context.Context) (decimal.Decimal, error)
	InvoiceCount(ctx context.Context) (int64, error)
	CustomerCount(ctx context.Context) (int64, error)
	RecentInvoices(ctx context.Context, limit int) ([]*RecentInvoice, error)
	MonthlyCashFlow(ctx context.Context, months int) ([]*MonthlyFlow, error)
	CategoryTotals(ctx context.Context, from, to string) ([]*CategoryTotal, error)
}

type Service struct {
	repo                  Repository
	disbursementAccountID int64
}

func NewService(repo Repository, disbursementAccountID int64) *Service {
	return &Service{repo: repo, disbursementAccountID: disbursementAccountID}
}

func (s *Service) Dashboard(ctx context.Context) (*Stats, error) {
	cash, err := s.repo.DisbursementBalance(ctx, s.disbursementAccountID)
	if err != nil {
		return nil, err
	}

	bank, err := s.repo.BankBalance(ctx)
	if err != nil {
		return nil, err
	}

	income, expense, err := s.repo.IncomeExpenseTotals(ctx)
	if err != nil {
		return nil, err
	}

	receivables, err := s.repo.Receivables(ctx)
	if err != nil {
		return nil, err
	}

	invoices, err := s.repo.InvoiceCount(ctx)
	if err != nil {
		return nil, err
	}

	customers, err := s.repo.CustomerCount(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.RecentInvoices(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &Stats{
		CashInHand:     cash,
		BankBalance:    bank,
		TotalIncome:    income,
		TotalExpense:   expense,
		NetBalance:     income.Sub(expense),
		Receivables:    receivables,
		InvoiceCount:   invoices,
		CustomerCount:  customers,
		RecentInvoices: recent,
	}, nil
}

func (s *Service) CashFlow(ctx context.Context, months int) ([]*MonthlyFlow, error) {
	if months <= 0 || months > 24 {
		months = 6
	}

	return s.repo.MonthlyCashFlow(ctx, months)
}

func (s *Service) ByCategory(ctx context.Context, from, to string) ([]*CategoryTotal, error) {
	return s.repo.CategoryTotals(ctx, from, to)
}

package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

type Repository interface {
	// CreateTransaction inserts the entry and folds its signed amount into
	// the referenced account's balance in one atomic unit.
	CreateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, limit int) ([]*Transaction, error)

	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, id int64) (*Account, error)
	ListAccounts(ctx context.Context) ([]*Account, error)
	// AccountTransactionSum sums the signed amount of every transaction
	// referencing the account, in a fixed order.
	AccountTransactionSum(ctx context.Context, accountID int64) (decimal.Decimal, error)

	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context) ([]*Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateTransactionParams struct {
	AccountID   int64
	CategoryID  *int64
	Amount      decimal.Decimal
	Type        TransactionType
	Description string
	Date        time.Time
	ReferenceID string
}

// CreateTransaction validates and posts one ledger entry. The amount must
// not be negative; direction comes from the type.
func (s *Service) CreateTransaction(ctx context.Context, params CreateTransactionParams) (*Transaction, error) {
	if money.IsNegative(params.Amount) {
		return nil, fault.Invalidf("transaction amount must not be negative")
	}

	if _, err := ParseTransactionType(string(params.Type)); err != nil {
		return nil, err
	}

	tx := &Transaction{
		AccountID:   params.AccountID,
		CategoryID:  params.CategoryID,
		Amount:      params.Amount,
		Type:        params.Type,
		Description: params.Description,
		Date:        params.Date,
		ReferenceID: params.ReferenceID,
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) ListTransactions(ctx context.Context, limit int) ([]*Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	return s.repo.ListTransactions(ctx, limit)
}

type CreateAccountParams struct {
	Name     string
	Type     AccountType
	Balance  decimal.Decimal
	Currency string
}

func (s *Service) CreateAccount(ctx context.Context, params CreateAccountParams) (*Account, error) {
	if params.Name == "" {
		return nil, fault.Invalidf("account name is required")
	}

	if _, err := ParseAccountType(string(params.Type)); err != nil {
		return nil, err
	}

	currency := params.Currency
	if currency == "" {
		currency = "$"
	}

	a := &Account{
		Name:     params.Name,
		Type:     params.Type,
		Balance:  params.Balance,
		Currency: currency,
	}

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) GetAccount(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) ListAccounts(ctx context.Context) ([]*Account, error) {
	return s.repo.ListAccounts(ctx)
}

// Reconciliation compares an account's stored balance with the balance
// reconstructed by summing its transaction history.
type Reconciliation struct {
	AccountID       int64
	StoredBalance   decimal.Decimal
	ComputedBalance decimal.Decimal
}

// Balanced reports whether the materialized balance matches the history.
func (r Reconciliation) Balanced() bool {
	return r.StoredBalance.Equal(r.ComputedBalance)
}

// Reconcile recomputes an account's balance from its full transaction
// history and returns it alongside the stored value. The two must always be
// equal; a mismatch means a write bypassed the coordinator.
func (s *Service) Reconcile(ctx context.Context, accountID int64) (Reconciliation, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return Reconciliation{}, err
	}

	sum, err := s.repo.AccountTransactionSum(ctx, accountID)
	if err != nil {
		return Reconciliation{}, err
	}

	return Reconciliation{
		AccountID:       accountID,
		StoredBalance:   account.Balance,
		ComputedBalance: sum,
	}, nil
}

type CreateCategoryParams struct {
	Name string
	Type CategoryType
}

func (s *Service) CreateCategory(ctx context.Context, params CreateCategoryParams) (*Category, error) {
	if params.Name == "" {
		return nil, fault.Invalidf("category name is required")
	}

	if _, err := ParseCategoryType(string(params.Type)); err != nil {
		return nil, err
	}

	c := &Category{Name: params.Name, Type: params.Type}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}

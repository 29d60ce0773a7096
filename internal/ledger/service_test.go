package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Mock repository
type mockRepo struct {
	createTransactionFunc func(ctx context.Context, tx *ledger.Transaction) error
	getAccountFunc        func(ctx context.Context, id int64) (*ledger.Account, error)
	transactionSumFunc    func(ctx context.Context, accountID int64) (decimal.Decimal, error)
}

func (m *mockRepo) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	if m.createTransactionFunc != nil {
		return m.createTransactionFunc(ctx, tx)
	}

	return nil
}

func (m *mockRepo) ListTransactions(ctx context.Context, limit int) ([]*ledger.Transaction, error) {
	return nil, nil
}

func (m *mockRepo) CreateAccount(ctx context.Context, a *ledger.Account) error { return nil }

func (m *mockRepo) GetAccount(ctx context.Context, id int64) (*ledger.Account, error) {
	if m.getAccountFunc != nil {
		return m.getAccountFunc(ctx, id)
	}

	return nil, nil
}

func (m *mockRepo) ListAccounts(ctx context.Context) ([]*ledger.Account, error) { return nil, nil }

func (m *mockRepo) AccountTransactionSum(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	if m.transactionSumFunc != nil {
		return m.transactionSumFunc(ctx, accountID)
	}

	return decimal.Zero, nil
}

func (m *mockRepo) CreateCategory(ctx context.Context, c *ledger.Category) error { return nil }
func (m *mockRepo) ListCategories(ctx context.Context) ([]*ledger.Category, error) {
	return nil, nil
}
func (m *mockRepo) DeleteCategory(ctx context.Context, id int64) error { return nil }

func TestService_CreateTransaction(t *testing.T) {
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		var captured *ledger.Transaction

		svc := ledger.NewService(&mockRepo{
			createTransactionFunc: func(_ context.Context, tx *ledger.Transaction) error {
				tx.ID = 9
				captured = tx
				return nil
			},
		})

		got, err := svc.CreateTransaction(context.Background(), ledger.CreateTransactionParams{
			AccountID: 1,
			Amount:    dec("250.00"),
			Type:      ledger.TypeIncome,
			Date:      date,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(9), got.ID)
		assert.Equal(t, captured, got)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		svc := ledger.NewService(&mockRepo{})

		_, err := svc.CreateTransaction(context.Background(), ledger.CreateTransactionParams{
			AccountID: 1,
			Amount:    dec("-1"),
			Type:      ledger.TypeExpense,
			Date:      date,
		})

		assert.Error(t, err)
		assert.True(t, fault.IsValidation(err))
	})

	t.Run("UnknownType", func(t *testing.T) {
		svc := ledger.NewService(&mockRepo{})

		_, err := svc.CreateTransaction(context.Background(), ledger.CreateTransactionParams{
			AccountID: 1,
			Amount:    dec("10"),
			Type:      ledger.TransactionType("Transfer"),
			Date:      date,
		})

		assert.Error(t, err)
		assert.True(t, fault.IsValidation(err))
	})
}

func TestService_Reconcile(t *testing.T) {
	svc := ledger.NewService(&mockRepo{
		getAccountFunc: func(_ context.Context, id int64) (*ledger.Account, error) {
			return &ledger.Account{ID: id, Balance: dec("120.50")}, nil
		},
		transactionSumFunc: func(_ context.Context, _ int64) (decimal.Decimal, error) {
			return dec("120.50"), nil
		},
	})

	rec, err := svc.Reconcile(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, rec.Balanced())

	svc = ledger.NewService(&mockRepo{
		getAccountFunc: func(_ context.Context, id int64) (*ledger.Account, error) {
			return &ledger.Account{ID: id, Balance: dec("120.50")}, nil
		},
		transactionSumFunc: func(_ context.Context, _ int64) (decimal.Decimal, error) {
			return dec("100.00"), nil
		},
	})

	rec, err = svc.Reconcile(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, rec.Balanced())
}

func TestTransaction_Signed(t *testing.T) {
	income := &ledger.Transaction{Amount: dec("10"), Type: ledger.TypeIncome}
	expense := &ledger.Transaction{Amount: dec("10"), Type: ledger.TypeExpense}

	assert.True(t, income.Signed().Equal(dec("10")))
	assert.True(t, expense.Signed().Equal(dec("-10")))
}

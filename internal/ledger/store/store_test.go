package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/ledger/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func post(t *testing.T, s *store.Store, accountID int64, amount string, txType ledger.TransactionType) {
	t.Helper()

	err := s.CreateTransaction(context.Background(), &ledger.Transaction{
		AccountID: accountID,
		Amount:    dec(amount),
		Type:      txType,
		Date:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestCreateTransaction_ProjectsBalance(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	// Account 1 is the seeded Cash account with balance 0.
	post(t, s, 1, "1000.00", ledger.TypeIncome)
	post(t, s, 1, "250.50", ledger.TypeExpense)
	post(t, s, 1, "0.50", ledger.TypeIncome)

	account, err := s.GetAccount(ctx, 1)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("750")), "balance %s", account.Balance)
}

func TestCreateTransaction_UnknownAccountRollsBack(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	err := s.CreateTransaction(ctx, &ledger.Transaction{
		AccountID: 99,
		Amount:    dec("10"),
		Type:      ledger.TypeIncome,
		Date:      time.Now(),
	})
	require.Error(t, err)

	// The transaction row must not survive the failed balance update.
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count))
	assert.Zero(t, count)
}

// Stored balance must equal the signed sum of the history after every single
// posting, not just at the end.
func TestBalanceReconciliation_EveryStep(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	steps := []struct {
		amount string
		txType ledger.TransactionType
	}{
		{"100.10", ledger.TypeIncome},
		{"0.01", ledger.TypeExpense},
		{"99.99", ledger.TypeExpense},
		{"500.00", ledger.TypeIncome},
		{"700.00", ledger.TypeExpense}, // drives the balance negative
		{"0.10", ledger.TypeIncome},
	}

	for _, step := range steps {
		post(t, s, 1, step.amount, step.txType)

		account, err := s.GetAccount(ctx, 1)
		require.NoError(t, err)

		sum, err := s.AccountTransactionSum(ctx, 1)
		require.NoError(t, err)

		assert.True(t, account.Balance.Equal(sum),
			"stored %s != computed %s", account.Balance, sum)
	}

	account, err := s.GetAccount(ctx, 1)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("-199.8")), "balance %s", account.Balance)
}

func TestAccountTransactionSum_IgnoresOtherAccounts(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	post(t, s, 1, "100", ledger.TypeIncome)
	post(t, s, 2, "40", ledger.TypeIncome)

	sum, err := s.AccountTransactionSum(ctx, 1)
	require.NoError(t, err)
	assert.True(t, sum.Equal(dec("100")))
}

func TestAccounts(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	a := &ledger.Account{Name: "Savings", Type: ledger.AccountBank, Balance: dec("10.00"), Currency: "$"}
	require.NoError(t, s.CreateAccount(ctx, a))
	assert.NotZero(t, a.ID)

	got, err := s.GetAccount(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Savings", got.Name)
	assert.Equal(t, ledger.AccountBank, got.Type)
	assert.True(t, got.Balance.Equal(dec("10.00")))

	_, err = s.GetAccount(ctx, 1234)
	assert.True(t, fault.IsNotFound(err))

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3) // two seeded + one created
}

func TestCreateAccount_OpeningBalanceReconciles(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	a := &ledger.Account{Name: "Savings", Type: ledger.AccountBank, Balance: dec("250.75"), Currency: "$"}
	require.NoError(t, s.CreateAccount(ctx, a))

	// The opening balance is backed by a transaction, so the stored balance
	// stays equal to the summed history from the first entry on.
	sum, err := s.AccountTransactionSum(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(dec("250.75")), "sum %s", sum)

	post(t, s, a.ID, "49.25", ledger.TypeIncome)

	got, err := s.GetAccount(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec("300")), "balance %s", got.Balance)

	sum, err = s.AccountTransactionSum(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(sum), "stored %s != computed %s", got.Balance, sum)
}

func TestCreateAccount_NegativeOpeningBalanceReconciles(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	a := &ledger.Account{Name: "Card", Type: ledger.AccountCredit, Balance: dec("-80.50"), Currency: "$"}
	require.NoError(t, s.CreateAccount(ctx, a))

	sum, err := s.AccountTransactionSum(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(dec("-80.50")), "sum %s", sum)
}

func TestCategories(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	c := &ledger.Category{Name: "Consulting", Type: ledger.CategoryIncome}
	require.NoError(t, s.CreateCategory(ctx, c))
	assert.NotZero(t, c.ID)

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 7) // six seeded + one created

	require.NoError(t, s.DeleteCategory(ctx, c.ID))
	assert.True(t, fault.IsNotFound(s.DeleteCategory(ctx, c.ID)))
}

func TestListTransactions(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	post(t, s, 1, "10", ledger.TypeIncome)
	post(t, s, 1, "20", ledger.TypeIncome)
	post(t, s, 1, "30", ledger.TypeIncome)

	txs, err := s.ListTransactions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	// Most recent first.
	assert.True(t, txs[0].Amount.Equal(dec("30")))
	assert.True(t, txs[1].Amount.Equal(dec("20")))
}

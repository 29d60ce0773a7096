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
	"github.com/MrJamesThe3rd/tally/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/tally/internal/invoice/store"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/tally/internal/ledger/store"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/report/store"
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

func post(t *testing.T, db *sql.DB, amount string, txType ledger.TransactionType, date time.Time) {
	t.Helper()

	err := ledgerStore.New(db).CreateTransaction(context.Background(), &ledger.Transaction{
		AccountID: 1,
		Amount:    dec(amount),
		Type:      txType,
		Date:      date,
	})
	require.NoError(t, err)
}

func TestIncomeExpenseTotals(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	post(t, db, "100.10", ledger.TypeIncome, day)
	post(t, db, "200.20", ledger.TypeIncome, day)
	post(t, db, "50.05", ledger.TypeExpense, day)

	income, expense, err := s.IncomeExpenseTotals(ctx)
	require.NoError(t, err)
	assert.True(t, income.Equal(dec("300.30")), "income %s", income)
	assert.True(t, expense.Equal(dec("50.05")), "expense %s", expense)
}

func TestDisbursementBalanceMatchesLedger(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	post(t, db, "500.00", ledger.TypeIncome, day)
	post(t, db, "125.25", ledger.TypeExpense, day)

	balance, err := s.DisbursementBalance(ctx, 1)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("374.75")), "balance %s", balance)
}

func TestBankBalanceSumsBankAccounts(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	// Account 2 is the seeded Bank account; account 1 is Cash and must not
	// count toward the bank total.
	ls := ledgerStore.New(db)
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, ls.CreateTransaction(ctx, &ledger.Transaction{
		AccountID: 2, Amount: dec("800.40"), Type: ledger.TypeIncome, Date: day,
	}))
	require.NoError(t, ls.CreateTransaction(ctx, &ledger.Transaction{
		AccountID: 1, Amount: dec("99.99"), Type: ledger.TypeIncome, Date: day,
	}))

	balance, err := s.BankBalance(ctx)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("800.40")), "balance %s", balance)
}

func TestMonthlyCashFlowGroupsByMonth(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	now := time.Now().UTC()
	// Anchor to the first of the month so subtracting a month never
	// normalizes back into the current one.
	lastMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

	post(t, db, "100.00", ledger.TypeIncome, lastMonth)
	post(t, db, "40.00", ledger.TypeExpense, lastMonth)
	post(t, db, "300.00", ledger.TypeIncome, now)

	flows, err := s.MonthlyCashFlow(ctx, 3)
	require.NoError(t, err)
	require.Len(t, flows, 2)

	assert.Equal(t, lastMonth.Format("2006-01"), flows[0].Month)
	assert.True(t, flows[0].Income.Equal(dec("100")), "income %s", flows[0].Income)
	assert.True(t, flows[0].Expense.Equal(dec("40")), "expense %s", flows[0].Expense)
	assert.Equal(t, now.Format("2006-01"), flows[1].Month)
	assert.True(t, flows[1].Income.Equal(dec("300")), "income %s", flows[1].Income)
}

func TestCategoryTotals(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	// Categories 1 and 2 are seeded; share category 1 between two entries.
	catOne, catTwo := int64(1), int64(2)
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	ls := ledgerStore.New(db)
	for _, tx := range []*ledger.Transaction{
		{AccountID: 1, CategoryID: &catOne, Amount: dec("10.00"), Type: ledger.TypeIncome, Date: day},
		{AccountID: 1, CategoryID: &catOne, Amount: dec("15.00"), Type: ledger.TypeIncome, Date: day},
		{AccountID: 1, CategoryID: &catTwo, Amount: dec("7.50"), Type: ledger.TypeIncome, Date: day},
		{AccountID: 1, Amount: dec("3.00"), Type: ledger.TypeExpense, Date: day},
	} {
		require.NoError(t, ls.CreateTransaction(ctx, tx))
	}

	totals, err := s.CategoryTotals(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, totals, 3)

	byName := map[string]*report.CategoryTotal{}
	for _, total := range totals {
		byName[total.Category] = total
	}

	require.Contains(t, byName, "Uncategorized")
	assert.True(t, byName["Uncategorized"].Total.Equal(dec("3")))

	var categorized decimal.Decimal
	for name, total := range byName {
		if name != "Uncategorized" {
			categorized = categorized.Add(total.Total)
		}
	}

	assert.True(t, categorized.Equal(dec("32.50")), "categorized %s", categorized)
}

func TestReceivablesSumsIssuedInvoiceTotals(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		"INSERT INTO customers (name, created_at) VALUES ('Acme', '2024-06-01T00:00:00Z')")
	require.NoError(t, err)

	// A Sent invoice written through the calculator and store: the stored
	// total already has the advance subtracted (130 + 10 - 14 - 5 = 121),
	// so receivables must count it once, not subtract the advance again.
	items := []*invoice.LineItem{
		{ProductName: "Consulting", Quantity: 2, UnitPrice: dec("50.00"), TaxPercent: dec("10")},
		{ProductName: "Hosting", Quantity: 1, UnitPrice: dec("30.00"), TaxPercent: dec("0")},
	}
	totals := invoice.Calculate(items, invoice.Terms{DiscountPercent: dec("10"), Advance: dec("5.00")})

	sent := &invoice.Invoice{
		CustomerID:      1,
		Status:          invoice.StatusSent,
		IssueDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DueDate:         time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Discount:        totals.DiscountAmount,
		DiscountPercent: dec("10"),
		Advance:         dec("5.00"),
		Total:           totals.Total,
		Items:           items,
	}
	require.NoError(t, invoiceStore.New(db).CreateInvoice(ctx, sent))
	require.True(t, sent.Total.Equal(dec("121")), "total %s", sent.Total)

	insert := `
		INSERT INTO invoices (invoice_number, customer_id, status, issue_date, due_date, total, created_at)
		VALUES (?, 1, ?, '2024-06-01', '2024-07-01', ?, '2024-06-01T00:00:00Z')`

	for _, row := range []struct {
		number, status, total string
	}{
		{"INV-10002", "Overdue", "50.50"},
		{"INV-10003", "Draft", "75.00"},
		{"INV-10004", "Paid", "999.00"},
		{"INV-10005", "Cancelled", "40.00"},
	} {
		_, err := db.ExecContext(ctx, insert, row.number, row.status, row.total)
		require.NoError(t, err)
	}

	// Sent 121 + Overdue 50.50; Draft, Paid and Cancelled are excluded.
	outstanding, err := s.Receivables(ctx)
	require.NoError(t, err)
	assert.True(t, outstanding.Equal(dec("171.50")), "outstanding %s", outstanding)
}

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
	"github.com/MrJamesThe3rd/tally/internal/invoice"
	"github.com/MrJamesThe3rd/tally/internal/invoice/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(
		"INSERT INTO customers (id, name, phone, created_at) VALUES (1, 'Acme Ltd', '555-0100', ?)",
		time.Now().UTC().Format(time.RFC3339),
	)
	require.NoError(t, err)

	return db
}

func newInvoice() *invoice.Invoice {
	items := []*invoice.LineItem{
		{ProductName: "Consulting", Quantity: 2, UnitPrice: dec("50.00"), TaxPercent: dec("10")},
		{ProductName: "Hosting", Quantity: 1, UnitPrice: dec("30.00"), TaxPercent: dec("0")},
	}
	totals := invoice.Calculate(items, invoice.Terms{DiscountPercent: dec("10"), Advance: dec("5.00")})

	return &invoice.Invoice{
		CustomerID:      1,
		Status:          invoice.StatusDraft,
		IssueDate:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:         time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Discount:        totals.DiscountAmount,
		DiscountPercent: dec("10"),
		Advance:         dec("5.00"),
		Total:           totals.Total,
		Items:           items,
	}
}

func TestCreateInvoice_RoundTrip(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	inv := newInvoice()
	require.NoError(t, s.CreateInvoice(ctx, inv))
	assert.Equal(t, "INV-00001", inv.Number)

	got, err := s.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)

	assert.Equal(t, "Acme Ltd", got.CustomerName)
	assert.Equal(t, invoice.StatusDraft, got.Status)
	assert.True(t, got.Subtotal.Equal(dec("130")), "subtotal %s", got.Subtotal)
	assert.True(t, got.Tax.Equal(dec("10")), "tax %s", got.Tax)
	assert.True(t, got.Discount.Equal(dec("14")), "discount %s", got.Discount)
	assert.True(t, got.Total.Equal(dec("121")), "total %s", got.Total)
	require.Len(t, got.Items, 2)
	assert.True(t, got.Items[0].LineTotal.Equal(dec("110")))
	assert.True(t, got.Items[1].LineTotal.Equal(dec("30")))

	// Stored totals must match a fresh recomputation from the stored items.
	recomputed := invoice.Calculate(got.Items, invoice.Terms{
		DiscountPercent: got.DiscountPercent,
		DiscountFlat:    got.Discount,
		Advance:         got.Advance,
	})
	assert.True(t, got.Total.Equal(recomputed.Total), "stored %s recomputed %s", got.Total, recomputed.Total)
}

func TestCreateInvoice_SequentialNumbers(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	for i, want := range []string{"INV-00001", "INV-00002", "INV-00003"} {
		inv := newInvoice()
		require.NoError(t, s.CreateInvoice(ctx, inv), "invoice %d", i+1)
		assert.Equal(t, want, inv.Number)
	}
}

// An item row that violates the quantity check must undo the already-written
// invoice row: afterwards neither the invoice nor any items are observable.
func TestCreateInvoice_RollbackOnItemFailure(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	inv := newInvoice()
	inv.Items = append(inv.Items, &invoice.LineItem{
		ProductName: "Broken",
		Quantity:    -1, // violates the schema check, bypassing service validation
		UnitPrice:   dec("10"),
	})

	err := s.CreateInvoice(ctx, inv)
	require.Error(t, err)
	assert.True(t, fault.IsPersistence(err))

	var invoices, items int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM invoices").Scan(&invoices))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM invoice_items").Scan(&items))
	assert.Zero(t, invoices)
	assert.Zero(t, items)

	// The failed attempt must not burn the sequential number.
	fresh := newInvoice()
	require.NoError(t, s.CreateInvoice(ctx, fresh))
	assert.Equal(t, "INV-00001", fresh.Number)
}

func TestDeleteInvoice_CascadesToItems(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	inv := newInvoice()
	require.NoError(t, s.CreateInvoice(ctx, inv))

	require.NoError(t, s.DeleteInvoice(ctx, inv.ID))

	var items int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM invoice_items").Scan(&items))
	assert.Zero(t, items)

	_, err := s.GetInvoice(ctx, inv.ID)
	assert.True(t, fault.IsNotFound(err))
}

func TestUpdateStatus(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	inv := newInvoice()
	require.NoError(t, s.CreateInvoice(ctx, inv))

	require.NoError(t, s.UpdateStatus(ctx, inv.ID, invoice.StatusSent))

	got, err := s.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusSent, got.Status)

	assert.True(t, fault.IsNotFound(s.UpdateStatus(ctx, 999, invoice.StatusPaid)))
}

func TestListInvoices_Filter(t *testing.T) {
	db := testDB(t)
	s := store.New(db)
	ctx := context.Background()

	first := newInvoice()
	require.NoError(t, s.CreateInvoice(ctx, first))

	second := newInvoice()
	second.Status = invoice.StatusSent
	require.NoError(t, s.CreateInvoice(ctx, second))

	all, err := s.ListInvoices(ctx, invoice.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	sent := invoice.StatusSent
	filtered, err := s.ListInvoices(ctx, invoice.ListFilter{Status: &sent})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, second.ID, filtered[0].ID)
}

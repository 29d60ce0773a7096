package store

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

// Store aggregates transaction amounts in Go rather than with SQL SUM.
// Amounts are stored as decimal text, and SUM would coerce them to floats.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DisbursementBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := s.db.QueryRowContext(ctx,
		"SELECT balance FROM accounts WHERE id = ?", accountID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fault.NotFound("account", accountID)
		}

		return decimal.Zero, fault.Persistence("getting disbursement balance", err)
	}

	return balance, nil
}

// BankBalance sums the balances of all Bank-type accounts in Go.
func (s *Store) BankBalance(ctx context.Context) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT balance FROM accounts WHERE account_type = 'Bank' ORDER BY id")
	if err != nil {
		return decimal.Zero, fault.Persistence("listing bank balances", err)
	}
	defer rows.Close()

	total := decimal.Zero

	for rows.Next() {
		var balance decimal.Decimal

		if err := rows.Scan(&balance); err != nil {
			return decimal.Zero, fault.Persistence("scanning bank balance", err)
		}

		total = total.Add(balance)
	}

	if err := rows.Err(); err != nil {
		return decimal.Zero, fault.Persistence("iterating bank balances", err)
	}

	return total, nil
}

func (s *Store) RecentInvoices(ctx context.Context, limit int) ([]*report.RecentInvoice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.invoice_number, c.name, i.status, i.issue_date, i.total
		FROM invoices i JOIN customers c ON c.id = i.customer_id
		ORDER BY i.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fault.Persistence("listing recent invoices", err)
	}
	defer rows.Close()

	var invoices []*report.RecentInvoice

	for rows.Next() {
		var inv report.RecentInvoice

		if err := rows.Scan(&inv.ID, &inv.Number, &inv.CustomerName, &inv.Status, &inv.IssueDate, &inv.Total); err != nil {
			return nil, fault.Persistence("scanning recent invoice", err)
		}

		invoices = append(invoices, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating recent invoices", err)
	}

	return invoices, nil
}

func (s *Store) IncomeExpenseTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT transaction_type, amount FROM transactions ORDER BY id")
	if err != nil {
		return decimal.Zero, decimal.Zero, fault.Persistence("listing transaction totals", err)
	}
	defer rows.Close()

	income, expense := decimal.Zero, decimal.Zero

	for rows.Next() {
		var (
			typ    string
			amount decimal.Decimal
		)

		if err := rows.Scan(&typ, &amount); err != nil {
			return decimal.Zero, decimal.Zero, fault.Persistence("scanning transaction total", err)
		}

		if typ == string(ledger.TypeIncome) {
			income = income.Add(amount)
		} else {
			expense = expense.Add(amount)
		}
	}

	if err := rows.Err(); err != nil {
		return decimal.Zero, decimal.Zero, fault.Persistence("iterating transaction totals", err)
	}

	return income, expense, nil
}

// Receivables sums the total of issued, unsettled invoices. The stored total
// already has the advance subtracted, so it is the outstanding amount as-is.
func (s *Store) Receivables(ctx context.Context) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT total FROM invoices
		WHERE status IN ('Sent', 'Overdue') ORDER BY id`)
	if err != nil {
		return decimal.Zero, fault.Persistence("listing receivables", err)
	}
	defer rows.Close()

	outstanding := decimal.Zero

	for rows.Next() {
		var total decimal.Decimal

		if err := rows.Scan(&total); err != nil {
			return decimal.Zero, fault.Persistence("scanning receivable", err)
		}

		outstanding = outstanding.Add(total)
	}

	if err := rows.Err(); err != nil {
		return decimal.Zero, fault.Persistence("iterating receivables", err)
	}

	return outstanding, nil
}

func (s *Store) InvoiceCount(ctx context.Context) (int64, error) {
	var n int64

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM invoices").Scan(&n); err != nil {
		return 0, fault.Persistence("counting invoices", err)
	}

	return n, nil
}

func (s *Store) CustomerCount(ctx context.Context) (int64, error) {
	var n int64

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&n); err != nil {
		return 0, fault.Persistence("counting customers", err)
	}

	return n, nil
}

func (s *Store) MonthlyCashFlow(ctx context.Context, months int) ([]*report.MonthlyFlow, error) {
	cutoff := time.Now().UTC().AddDate(0, -(months - 1), 0).Format("2006-01")

	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(date, 1, 7), transaction_type, amount FROM transactions
		WHERE substr(date, 1, 7) >= ? ORDER BY id`, cutoff)
	if err != nil {
		return nil, fault.Persistence("listing cash flow", err)
	}
	defer rows.Close()

	byMonth := make(map[string]*report.MonthlyFlow)

	for rows.Next() {
		var (
			month, typ string
			amount     decimal.Decimal
		)

		if err := rows.Scan(&month, &typ, &amount); err != nil {
			return nil, fault.Persistence("scanning cash flow", err)
		}

		flow, ok := byMonth[month]
		if !ok {
			flow = &report.MonthlyFlow{Month: month}
			byMonth[month] = flow
		}

		if typ == string(ledger.TypeIncome) {
			flow.Income = flow.Income.Add(amount)
		} else {
			flow.Expense = flow.Expense.Add(amount)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating cash flow", err)
	}

	flows := make([]*report.MonthlyFlow, 0, len(byMonth))
	for _, flow := range byMonth {
		flows = append(flows, flow)
	}

	sort.Slice(flows, func(i, j int) bool { return flows[i].Month < flows[j].Month })

	return flows, nil
}

func (s *Store) CategoryTotals(ctx context.Context, from, to string) ([]*report.CategoryTotal, error) {
	query := `
		SELECT COALESCE(c.name, 'Uncategorized'), t.transaction_type, t.amount
		FROM transactions t LEFT JOIN categories c ON c.id = t.category_id`
	args := []any{}

	if from != "" && to != "" {
		query += " WHERE t.date >= ? AND t.date <= ?"
		args = append(args, from, to)
	}

	query += " ORDER BY t.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fault.Persistence("listing category totals", err)
	}
	defer rows.Close()

	byCategory := make(map[string]*report.CategoryTotal)

	var order []string

	for rows.Next() {
		var (
			category, typ string
			amount        decimal.Decimal
		)

		if err := rows.Scan(&category, &typ, &amount); err != nil {
			return nil, fault.Persistence("scanning category total", err)
		}

		total, ok := byCategory[category]
		if !ok {
			total = &report.CategoryTotal{Category: category, Type: typ}
			byCategory[category] = total
			order = append(order, category)
		}

		total.Total = total.Total.Add(amount)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating category totals", err)
	}

	totals := make([]*report.CategoryTotal, 0, len(order))
	for _, category := range order {
		totals = append(totals, byCategory[category])
	}

	return totals, nil
}

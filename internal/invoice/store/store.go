package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	i.id, i.invoice_number, i.customer_id, c.name, c.phone, i.status,
	i.issue_date, i.due_date, i.notes, i.subtotal, i.tax, i.discount,
	i.discount_percent, i.advance, i.total, i.created_at
`

// scanInvoice reads an invoice row in selectInvoiceColumns order.
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var (
		custName, custPhone, notes sql.NullString
		statusStr                  string
		issueDate, dueDate         string
		createdAt                  string
	)

	if err := s.Scan(
		&inv.ID, &inv.Number, &inv.CustomerID, &custName, &custPhone, &statusStr,
		&issueDate, &dueDate, &notes, &inv.Subtotal, &inv.Tax, &inv.Discount,
		&inv.DiscountPercent, &inv.Advance, &inv.Total, &createdAt,
	); err != nil {
		return nil, err
	}

	inv.CustomerName = custName.String
	inv.CustomerPhone = custPhone.String
	inv.Notes = notes.String
	inv.Status = invoice.Status(statusStr)

	var err error
	if inv.IssueDate, err = time.Parse(time.DateOnly, issueDate); err != nil {
		return nil, fmt.Errorf("parsing issue date: %w", err)
	}

	if inv.DueDate, err = time.Parse(time.DateOnly, dueDate); err != nil {
		return nil, fmt.Errorf("parsing due date: %w", err)
	}

	if inv.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &inv, nil
}

func (s *Store) NextSequence(ctx context.Context) (int64, error) {
	var maxID int64
	if err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM invoices").Scan(&maxID); err != nil {
		return 0, fault.Persistence("reading invoice sequence", err)
	}

	return maxID + 1, nil
}

// CreateInvoice writes the invoice row and every item row in one database
// transaction, allocating the next sequential invoice number from MAX(id)+1
// inside that transaction. Any failure rolls the whole write back.
func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fault.Persistence("beginning invoice transaction", err)
	}
	defer dbTx.Rollback()

	var maxID int64
	if err := dbTx.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM invoices").Scan(&maxID); err != nil {
		return fault.Persistence("allocating invoice number", err)
	}

	inv.Number = invoice.Number(maxID + 1)
	inv.CreatedAt = time.Now().UTC()

	res, err := dbTx.ExecContext(ctx, `
		INSERT INTO invoices (invoice_number, customer_id, status, issue_date, due_date, notes,
			subtotal, tax, discount, discount_percent, advance, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.Number,
		inv.CustomerID,
		inv.Status,
		inv.IssueDate.Format(time.DateOnly),
		inv.DueDate.Format(time.DateOnly),
		inv.Notes,
		inv.Subtotal,
		inv.Tax,
		inv.Discount,
		inv.DiscountPercent,
		inv.Advance,
		inv.Total,
		inv.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fault.Persistence("creating invoice", err)
	}

	if inv.ID, err = res.LastInsertId(); err != nil {
		return fault.Persistence("reading invoice id", err)
	}

	for _, it := range inv.Items {
		res, err := dbTx.ExecContext(ctx, `
			INSERT INTO invoice_items (invoice_id, product_name, description, quantity, unit_price, tax_percent, line_total)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			inv.ID,
			it.ProductName,
			it.Description,
			it.Quantity,
			it.UnitPrice,
			it.TaxPercent,
			it.LineTotal,
		)
		if err != nil {
			return fault.Persistence("creating invoice item", err)
		}

		if it.ID, err = res.LastInsertId(); err != nil {
			return fault.Persistence("reading invoice item id", err)
		}

		it.InvoiceID = inv.ID
	}

	if err := dbTx.Commit(); err != nil {
		return fault.Persistence("committing invoice", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id int64) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		LEFT JOIN customers c ON i.customer_id = c.id
		WHERE i.id = ?`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fault.NotFound("invoice", id)
		}

		return nil, fault.Persistence("getting invoice", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, invoice_id, product_name, description, quantity, unit_price, tax_percent, line_total
		FROM invoice_items WHERE invoice_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fault.Persistence("listing invoice items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it invoice.LineItem

		var desc sql.NullString

		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductName, &desc, &it.Quantity,
			&it.UnitPrice, &it.TaxPercent, &it.LineTotal); err != nil {
			return nil, fault.Persistence("scanning invoice item", err)
		}

		it.Description = desc.String
		inv.Items = append(inv.Items, &it)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating invoice items", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		LEFT JOIN customers c ON i.customer_id = c.id`

	var (
		conds []string
		args  []any
	)

	if filter.Status != nil {
		conds = append(conds, "i.status = ?")
		args = append(args, *filter.Status)
	}

	if filter.CustomerID != nil {
		conds = append(conds, "i.customer_id = ?")
		args = append(args, *filter.CustomerID)
	}

	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}

	query += " ORDER BY i.id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fault.Persistence("listing invoices", err)
	}
	defer rows.Close()

	var invs []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fault.Persistence("scanning invoice", err)
		}

		invs = append(invs, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating invoices", err)
	}

	return invs, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, status invoice.Status) error {
	res, err := s.db.ExecContext(ctx, "UPDATE invoices SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fault.Persistence("updating invoice status", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.NotFound("invoice", id)
	}

	return nil
}

// DeleteInvoice removes the invoice; items cascade via the foreign key.
func (s *Store) DeleteInvoice(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		return fault.Persistence("deleting invoice", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.NotFound("invoice", id)
	}

	return nil
}

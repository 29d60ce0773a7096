package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var (
		categoryID      sql.NullInt64
		desc, reference sql.NullString
		typeStr         string
		date, createdAt string
	)

	if err := s.Scan(
		&tx.ID, &tx.AccountID, &categoryID, &tx.Amount, &typeStr,
		&desc, &date, &reference, &createdAt,
	); err != nil {
		return nil, err
	}

	if categoryID.Valid {
		tx.CategoryID = &categoryID.Int64
	}

	tx.Type = ledger.TransactionType(typeStr)
	tx.Description = desc.String
	tx.ReferenceID = reference.String

	var err error
	if tx.Date, err = time.Parse(time.DateOnly, date); err != nil {
		return nil, fmt.Errorf("parsing transaction date: %w", err)
	}

	if tx.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &tx, nil
}

// CreateTransaction inserts the entry and projects its signed amount onto
// the account balance in one database transaction. No observer ever sees
// the entry without the balance change or vice versa.
func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fault.Persistence("beginning ledger transaction", err)
	}
	defer dbTx.Rollback()

	tx.CreatedAt = time.Now().UTC()

	res, err := dbTx.ExecContext(ctx, `
		INSERT INTO transactions (account_id, category_id, amount, transaction_type, description, date, reference_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.AccountID,
		tx.CategoryID,
		tx.Amount,
		tx.Type,
		tx.Description,
		tx.Date.Format(time.DateOnly),
		tx.ReferenceID,
		tx.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fault.Persistence("creating transaction", err)
	}

	if tx.ID, err = res.LastInsertId(); err != nil {
		return fault.Persistence("reading transaction id", err)
	}

	var balance decimal.Decimal
	if err := dbTx.QueryRowContext(ctx,
		"SELECT balance FROM accounts WHERE id = ?", tx.AccountID,
	).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fault.NotFound("account", tx.AccountID)
		}

		return fault.Persistence("reading account balance", err)
	}

	if _, err := dbTx.ExecContext(ctx,
		"UPDATE accounts SET balance = ? WHERE id = ?",
		balance.Add(tx.Signed()), tx.AccountID,
	); err != nil {
		return fault.Persistence("updating account balance", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fault.Persistence("committing transaction", err)
	}

	return nil
}

func (s *Store) ListTransactions(ctx context.Context, limit int) ([]*ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, category_id, amount, transaction_type, description, date, reference_id, created_at
		FROM transactions
		ORDER BY date DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fault.Persistence("listing transactions", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fault.Persistence("scanning transaction", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating transactions", err)
	}

	return txs, nil
}

// AccountTransactionSum reconstructs the balance from the full history. The
// signed amounts are summed in Go, ordered by id, so the result is exact
// decimal arithmetic rather than SQLite float aggregation.
func (s *Store) AccountTransactionSum(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT amount, transaction_type FROM transactions
		WHERE account_id = ?
		ORDER BY id`, accountID)
	if err != nil {
		return decimal.Zero, fault.Persistence("summing account transactions", err)
	}
	defer rows.Close()

	sum := decimal.Zero

	for rows.Next() {
		var (
			amount  decimal.Decimal
			typeStr string
		)

		if err := rows.Scan(&amount, &typeStr); err != nil {
			return decimal.Zero, fault.Persistence("scanning transaction amount", err)
		}

		if ledger.TransactionType(typeStr) == ledger.TypeExpense {
			sum = sum.Sub(amount)
		} else {
			sum = sum.Add(amount)
		}
	}

	if err := rows.Err(); err != nil {
		return decimal.Zero, fault.Persistence("iterating transaction amounts", err)
	}

	return sum, nil
}

// CreateAccount inserts the account and, for a nonzero opening balance, an
// opening-balance transaction in the same unit. The opening entry keeps the
// stored balance reconcilable against the transaction history from day one.
func (s *Store) CreateAccount(ctx context.Context, a *ledger.Account) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fault.Persistence("beginning account transaction", err)
	}
	defer dbTx.Rollback()

	res, err := dbTx.ExecContext(ctx, `
		INSERT INTO accounts (name, account_type, balance, currency)
		VALUES (?, ?, ?, ?)`,
		a.Name, a.Type, a.Balance, a.Currency,
	)
	if err != nil {
		return fault.Persistence("creating account", err)
	}

	if a.ID, err = res.LastInsertId(); err != nil {
		return fault.Persistence("reading account id", err)
	}

	if !a.Balance.IsZero() {
		txType := ledger.TypeIncome
		amount := a.Balance

		if a.Balance.IsNegative() {
			txType = ledger.TypeExpense
			amount = a.Balance.Neg()
		}

		now := time.Now().UTC()

		if _, err := dbTx.ExecContext(ctx, `
			INSERT INTO transactions (account_id, amount, transaction_type, description, date, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, amount, string(txType), "Opening balance",
			now.Format(time.DateOnly), now.Format(time.RFC3339),
		); err != nil {
			return fault.Persistence("recording opening balance", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fault.Persistence("committing account transaction", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*ledger.Account, error) {
	var a ledger.Account

	var typeStr string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, account_type, balance, currency FROM accounts WHERE id = ?", id,
	).Scan(&a.ID, &a.Name, &typeStr, &a.Balance, &a.Currency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fault.NotFound("account", id)
		}

		return nil, fault.Persistence("getting account", err)
	}

	a.Type = ledger.AccountType(typeStr)

	return &a, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*ledger.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, account_type, balance, currency FROM accounts ORDER BY id")
	if err != nil {
		return nil, fault.Persistence("listing accounts", err)
	}
	defer rows.Close()

	var accounts []*ledger.Account

	for rows.Next() {
		var a ledger.Account

		var typeStr string

		if err := rows.Scan(&a.ID, &a.Name, &typeStr, &a.Balance, &a.Currency); err != nil {
			return nil, fault.Persistence("scanning account", err)
		}

		a.Type = ledger.AccountType(typeStr)
		accounts = append(accounts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating accounts", err)
	}

	return accounts, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *ledger.Category) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (name, category_type) VALUES (?, ?)", c.Name, c.Type)
	if err != nil {
		return fault.Persistence("creating category", err)
	}

	if c.ID, err = res.LastInsertId(); err != nil {
		return fault.Persistence("reading category id", err)
	}

	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*ledger.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category_type FROM categories ORDER BY name")
	if err != nil {
		return nil, fault.Persistence("listing categories", err)
	}
	defer rows.Close()

	var categories []*ledger.Category

	for rows.Next() {
		var c ledger.Category

		var typeStr string

		if err := rows.Scan(&c.ID, &c.Name, &typeStr); err != nil {
			return nil, fault.Persistence("scanning category", err)
		}

		c.Type = ledger.CategoryType(typeStr)
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating categories", err)
	}

	return categories, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fault.Persistence("deleting category", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.NotFound("category", id)
	}

	return nil
}

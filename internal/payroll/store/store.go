package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/payroll"
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

const selectPayrollColumns = `
	p.id, p.employee_id, e.name, e.role, p.base_salary, p.overtime_pay, p.bonuses,
	p.allowances, p.gross_salary, p.tax, p.late_penalties, p.absences,
	p.other_deductions, p.total_deductions, p.net_pay, p.pay_period_start,
	p.pay_period_end, p.payment_date, p.status, p.notes
`

func scanRecord(s scanner) (*payroll.Record, error) {
	var rec payroll.Record

	var (
		name, role, notes      sql.NullString
		statusStr              string
		periodStart, periodEnd string
		paymentDate            string
	)

	if err := s.Scan(
		&rec.ID, &rec.EmployeeID, &name, &role,
		&rec.Components.BaseSalary, &rec.Components.OvertimePay,
		&rec.Components.Bonuses, &rec.Components.Allowances,
		&rec.GrossSalary,
		&rec.Components.Tax, &rec.Components.LatePenalties,
		&rec.Components.Absences, &rec.Components.OtherDeductions,
		&rec.TotalDeductions, &rec.NetPay,
		&periodStart, &periodEnd, &paymentDate, &statusStr, &notes,
	); err != nil {
		return nil, err
	}

	rec.EmployeeName = name.String
	rec.EmployeeRole = role.String
	rec.Notes = notes.String
	rec.Status = payroll.Status(statusStr)

	var err error
	if rec.PayPeriodStart, err = time.Parse(time.DateOnly, periodStart); err != nil {
		return nil, fmt.Errorf("parsing pay period start: %w", err)
	}

	if rec.PayPeriodEnd, err = time.Parse(time.DateOnly, periodEnd); err != nil {
		return nil, fmt.Errorf("parsing pay period end: %w", err)
	}

	if rec.PaymentDate, err = time.Parse(time.DateOnly, paymentDate); err != nil {
		return nil, fmt.Errorf("parsing payment date: %w", err)
	}

	return &rec, nil
}

// CreatePayroll writes the payroll row and, for Paid records, the matching
// Expense transaction and account balance debit, all in one database
// transaction. The employee must resolve to a name for the transaction
// description; if it does not, nothing is persisted.
func (s *Store) CreatePayroll(ctx context.Context, rec *payroll.Record, disbursementAccountID int64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fault.Persistence("beginning payroll transaction", err)
	}
	defer dbTx.Rollback()

	res, err := dbTx.ExecContext(ctx, `
		INSERT INTO payroll (employee_id, base_salary, overtime_pay, bonuses, allowances,
			gross_salary, tax, late_penalties, absences, other_deductions,
			total_deductions, net_pay, pay_period_start, pay_period_end,
			payment_date, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.EmployeeID,
		rec.Components.BaseSalary,
		rec.Components.OvertimePay,
		rec.Components.Bonuses,
		rec.Components.Allowances,
		rec.GrossSalary,
		rec.Components.Tax,
		rec.Components.LatePenalties,
		rec.Components.Absences,
		rec.Components.OtherDeductions,
		rec.TotalDeductions,
		rec.NetPay,
		rec.PayPeriodStart.Format(time.DateOnly),
		rec.PayPeriodEnd.Format(time.DateOnly),
		rec.PaymentDate.Format(time.DateOnly),
		rec.Status,
		rec.Notes,
	)
	if err != nil {
		return fault.Persistence("creating payroll record", err)
	}

	if rec.ID, err = res.LastInsertId(); err != nil {
		return fault.Persistence("reading payroll id", err)
	}

	if rec.Status == payroll.StatusPaid {
		if err := s.postDisbursement(ctx, dbTx, rec, disbursementAccountID); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fault.Persistence("committing payroll", err)
	}

	return nil
}

// postDisbursement records the salary payment in the ledger: one Expense
// transaction referencing the payroll record, and the matching balance debit
// on the disbursement account. Runs inside the caller's transaction.
func (s *Store) postDisbursement(ctx context.Context, dbTx *sql.Tx, rec *payroll.Record, accountID int64) error {
	var employeeName string
	if err := dbTx.QueryRowContext(ctx,
		"SELECT name FROM employees WHERE id = ?", rec.EmployeeID,
	).Scan(&employeeName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fault.NotFound("employee", rec.EmployeeID)
		}

		return fault.Persistence("resolving employee", err)
	}

	rec.EmployeeName = employeeName

	_, err := dbTx.ExecContext(ctx, `
		INSERT INTO transactions (account_id, amount, transaction_type, description, date, reference_id, created_at)
		VALUES (?, ?, 'Expense', ?, ?, ?, ?)`,
		accountID,
		rec.NetPay,
		fmt.Sprintf("Salary: %s", employeeName),
		rec.PaymentDate.Format(time.DateOnly),
		fmt.Sprintf("PAY-%d", rec.ID),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fault.Persistence("recording salary expense", err)
	}

	var balance decimal.Decimal
	if err := dbTx.QueryRowContext(ctx,
		"SELECT balance FROM accounts WHERE id = ?", accountID,
	).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fault.NotFound("account", accountID)
		}

		return fault.Persistence("reading account balance", err)
	}

	if _, err := dbTx.ExecContext(ctx,
		"UPDATE accounts SET balance = ? WHERE id = ?",
		balance.Sub(rec.NetPay), accountID,
	); err != nil {
		return fault.Persistence("updating account balance", err)
	}

	return nil
}

func (s *Store) GetPayroll(ctx context.Context, id int64) (*payroll.Record, error) {
	query := `SELECT ` + selectPayrollColumns + `
		FROM payroll p
		LEFT JOIN employees e ON p.employee_id = e.id
		WHERE p.id = ?`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fault.NotFound("payroll record", id)
		}

		return nil, fault.Persistence("getting payroll record", err)
	}

	return rec, nil
}

func (s *Store) ListPayroll(ctx context.Context) ([]*payroll.Record, error) {
	query := `SELECT ` + selectPayrollColumns + `
		FROM payroll p
		LEFT JOIN employees e ON p.employee_id = e.id
		ORDER BY p.payment_date DESC, p.id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fault.Persistence("listing payroll records", err)
	}
	defer rows.Close()

	var recs []*payroll.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fault.Persistence("scanning payroll record", err)
		}

		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating payroll records", err)
	}

	return recs, nil
}

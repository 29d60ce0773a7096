package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/employee"
	"github.com/MrJamesThe3rd/tally/internal/fault"
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

func scanEmployee(s scanner) (*employee.Employee, error) {
	var e employee.Employee

	var (
		role, email, phone sql.NullString
		createdAt          string
	)

	if err := s.Scan(&e.ID, &e.Name, &role, &email, &phone, &e.Salary, &e.Allowances, &createdAt); err != nil {
		return nil, err
	}

	e.Role = role.String
	e.Email = email.String
	e.Phone = phone.String

	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &e, nil
}

func (s *Store) CreateEmployee(ctx context.Context, e *employee.Employee) error {
	e.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (name, role, email, phone, salary, allowances, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.Role, e.Email, e.Phone, e.Salary, e.Allowances,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fault.Persistence("creating employee", err)
	}

	if e.ID, err = res.LastInsertId(); err != nil {
		return fault.Persistence("reading employee id", err)
	}

	return nil
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (*employee.Employee, error) {
	e, err := scanEmployee(s.db.QueryRowContext(ctx, `
		SELECT id, name, role, email, phone, salary, allowances, created_at
		FROM employees WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fault.NotFound("employee", id)
		}

		return nil, fault.Persistence("getting employee", err)
	}

	return e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]*employee.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, role, email, phone, salary, allowances, created_at
		FROM employees ORDER BY name`)
	if err != nil {
		return nil, fault.Persistence("listing employees", err)
	}
	defer rows.Close()

	var employees []*employee.Employee

	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fault.Persistence("scanning employee", err)
		}

		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating employees", err)
	}

	return employees, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, e *employee.Employee) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE employees SET name = ?, role = ?, email = ?, phone = ?, salary = ?, allowances = ?
		WHERE id = ?`,
		e.Name, e.Role, e.Email, e.Phone, e.Salary, e.Allowances, e.ID,
	)
	if err != nil {
		return fault.Persistence("updating employee", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.NotFound("employee", e.ID)
	}

	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return fault.Persistence("deleting employee", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.NotFound("employee", id)
	}

	return nil
}

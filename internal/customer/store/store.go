package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/customer"
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

func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	var (
		company, phone, email, address, taxID sql.NullString
		createdAt                             string
	)

	if err := s.Scan(&c.ID, &c.Name, &company, &phone, &email, &address, &taxID, &createdAt); err != nil {
		return nil, err
	}

	c.Company = company.String
	c.Phone = phone.String
	c.Email = email.String
	c.Address = address.String
	c.TaxID = taxID.String

	var err error
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	c.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (name, company, phone, email, address, tax_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Company, c.Phone, c.Email, c.Address, c.TaxID,
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fault.Persistence("creating customer", err)
	}

	if c.ID, err = res.LastInsertId(); err != nil {
		return fault.Persistence("reading customer id", err)
	}

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	c, err := scanCustomer(s.db.QueryRowContext(ctx, `
		SELECT id, name, company, phone, email, address, tax_id, created_at
		FROM customers WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fault.NotFound("customer", id)
		}

		return nil, fault.Persistence("getting customer", err)
	}

	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, company, phone, email, address, tax_id, created_at
		FROM customers ORDER BY name`)
	if err != nil {
		return nil, fault.Persistence("listing customers", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fault.Persistence("scanning customer", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating customers", err)
	}

	return customers, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE customers SET name = ?, company = ?, phone = ?, email = ?, address = ?, tax_id = ?
		WHERE id = ?`,
		c.Name, c.Company, c.Phone, c.Email, c.Address, c.TaxID, c.ID,
	)
	if err != nil {
		return fault.Persistence("updating customer", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.NotFound("customer", c.ID)
	}

	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM customers WHERE id = ?", id)
	if err != nil {
		return fault.Persistence("deleting customer", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.NotFound("customer", id)
	}

	return nil
}

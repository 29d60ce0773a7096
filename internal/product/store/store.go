package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/product"
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

func scanProduct(s scanner) (*product.Product, error) {
	var p product.Product

	var description sql.NullString

	if err := s.Scan(&p.ID, &p.Name, &description, &p.UnitPrice, &p.TaxPercent); err != nil {
		return nil, err
	}

	p.Description = description.String

	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO products (name, description, unit_price, tax_percent)
		VALUES (?, ?, ?, ?)`,
		p.Name, p.Description, p.UnitPrice, p.TaxPercent,
	)
	if err != nil {
		return fault.Persistence("creating product", err)
	}

	if p.ID, err = res.LastInsertId(); err != nil {
		return fault.Persistence("reading product id", err)
	}

	return nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, `
		SELECT id, name, description, unit_price, tax_percent
		FROM products WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fault.NotFound("product", id)
		}

		return nil, fault.Persistence("getting product", err)
	}

	return p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]*product.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, unit_price, tax_percent
		FROM products ORDER BY name`)
	if err != nil {
		return nil, fault.Persistence("listing products", err)
	}
	defer rows.Close()

	var products []*product.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fault.Persistence("scanning product", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating products", err)
	}

	return products, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET name = ?, description = ?, unit_price = ?, tax_percent = ?
		WHERE id = ?`,
		p.Name, p.Description, p.UnitPrice, p.TaxPercent, p.ID,
	)
	if err != nil {
		return fault.Persistence("updating product", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.NotFound("product", p.ID)
	}

	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fault.Persistence("deleting product", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.NotFound("product", id)
	}

	return nil
}

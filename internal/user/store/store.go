package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MrJamesThe3rd/tally/internal/fault"
	"github.com/MrJamesThe3rd/tally/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		u.Username, u.PasswordHash, string(u.Role),
	)
	if err != nil {
		return fault.Persistence("creating user", err)
	}

	if u.ID, err = res.LastInsertId(); err != nil {
		return fault.Persistence("reading user id", err)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*user.User, error) {
	var u user.User

	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fault.NotFound("user", id)
		}

		return nil, fault.Persistence("getting user", err)
	}

	if err := s.loadPermissions(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User

	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fault.NotFoundName("user", username)
		}

		return nil, fault.Persistence("getting user", err)
	}

	if err := s.loadPermissions(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *Store) loadPermissions(ctx context.Context, u *user.User) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.name FROM permissions p
		JOIN user_permissions up ON up.permission_id = p.id
		WHERE up.user_id = ? ORDER BY p.name`, u.ID)
	if err != nil {
		return fault.Persistence("loading user permissions", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string

		if err := rows.Scan(&name); err != nil {
			return fault.Persistence("scanning user permission", err)
		}

		u.Permissions = append(u.Permissions, name)
	}

	if err := rows.Err(); err != nil {
		return fault.Persistence("iterating user permissions", err)
	}

	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*user.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, username, password_hash, role FROM users ORDER BY username")
	if err != nil {
		return nil, fault.Persistence("listing users", err)
	}
	defer rows.Close()

	var users []*user.User

	for rows.Next() {
		var u user.User

		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role); err != nil {
			return nil, fault.Persistence("scanning user", err)
		}

		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating users", err)
	}

	for _, u := range users {
		if err := s.loadPermissions(ctx, u); err != nil {
			return nil, err
		}
	}

	return users, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id)
	if err != nil {
		return fault.Persistence("updating password", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.NotFound("user", id)
	}

	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fault.Persistence("deleting user", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.NotFound("user", id)
	}

	return nil
}

func (s *Store) ListPermissions(ctx context.Context) ([]*user.Permission, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description FROM permissions ORDER BY id")
	if err != nil {
		return nil, fault.Persistence("listing permissions", err)
	}
	defer rows.Close()

	var permissions []*user.Permission

	for rows.Next() {
		var p user.Permission

		var description sql.NullString

		if err := rows.Scan(&p.ID, &p.Name, &description); err != nil {
			return nil, fault.Persistence("scanning permission", err)
		}

		p.Description = description.String

		permissions = append(permissions, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating permissions", err)
	}

	return permissions, nil
}

// SetUserPermissions replaces the user's grants in one transaction.
func (s *Store) SetUserPermissions(ctx context.Context, userID int64, permissionIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fault.Persistence("beginning transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM user_permissions WHERE user_id = ?", userID); err != nil {
		return fault.Persistence("clearing user permissions", err)
	}

	for _, pid := range permissionIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO user_permissions (user_id, permission_id) VALUES (?, ?)",
			userID, pid); err != nil {
			return fault.Persistence("granting permission", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fault.Persistence("committing transaction", err)
	}

	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/audit"
	"github.com/MrJamesThe3rd/tally/internal/fault"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateEntry(ctx context.Context, e *audit.Entry) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_logs (user_id, action, module, record_id, description, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Action, e.Module, e.RecordID, e.Description,
		e.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return fault.Persistence("creating audit entry", err)
	}

	if e.ID, err = res.LastInsertId(); err != nil {
		return fault.Persistence("reading audit entry id", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, filter audit.Filter) ([]*audit.Entry, error) {
	query := `
		SELECT id, user_id, action, module, record_id, description, timestamp
		FROM audit_logs`
	args := []any{}

	var conds []string

	if filter.Module != "" {
		conds = append(conds, "module = ?")
		args = append(args, filter.Module)
	}

	if filter.UserID != 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, filter.UserID)
	}

	if !filter.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, filter.From.UTC().Format(time.RFC3339))
	}

	if !filter.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, filter.To.UTC().Format(time.RFC3339))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fault.Persistence("listing audit entries", err)
	}
	defer rows.Close()

	var entries []*audit.Entry

	for rows.Next() {
		var e audit.Entry

		var (
			userID   sql.NullInt64
			recordID sql.NullString
			ts       string
		)

		if err := rows.Scan(&e.ID, &userID, &e.Action, &e.Module, &recordID, &e.Description, &ts); err != nil {
			return nil, fault.Persistence("scanning audit entry", err)
		}

		if userID.Valid {
			e.UserID = &userID.Int64
		}

		e.RecordID = recordID.String

		if e.Timestamp, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, fault.Persistence("parsing audit timestamp", fmt.Errorf("parsing timestamp: %w", err))
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fault.Persistence("iterating audit entries", err)
	}

	return entries, nil
}

package audit

import (
	"context"
	"log/slog"
	"time"
)

// Entry is one audit trail row. UserID is nil for actions taken before
// authentication, such as failed logins.
type Entry struct {
	ID          int64
	UserID      *int64
	Action      string
	Module      string
	RecordID    string
	Description string
	Timestamp   time.Time
}

// Filter narrows List. Zero values mean no constraint. From and To bound the
// entry timestamp inclusively.
type Filter struct {
	Module string
	UserID int64
	From   time.Time
	To     time.Time
	Limit  int
}

type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context, filter Filter) ([]*Entry, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record writes an audit entry. Auditing is best effort: a failure is logged
// and swallowed so it never rolls back or fails the action being audited.
func (s *Service) Record(ctx context.Context, userID *int64, action, module, recordID, description string) {
	e := &Entry{
		UserID:      userID,
		Action:      action,
		Module:      module,
		RecordID:    recordID,
		Description: description,
		Timestamp:   time.Now().UTC(),
	}

	if err := s.repo.CreateEntry(ctx, e); err != nil {
		s.logger.Error("recording audit entry",
			slog.String("action", action),
			slog.String("module", module),
			slog.Any("error", err))
	}
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}

	return s.repo.ListEntries(ctx, filter)
}

package audit

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	entries []*Entry
	err     error
}

func (m *mockRepo) CreateEntry(_ context.Context, e *Entry) error {
	if m.err != nil {
		return m.err
	}

	m.entries = append(m.entries, e)

	return nil
}

func (m *mockRepo) ListEntries(_ context.Context, _ Filter) ([]*Entry, error) {
	return m.entries, m.err
}

func TestRecord(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, slog.Default())

	userID := int64(3)
	svc.Record(context.Background(), &userID, "create", "invoices", "12", "created invoice INV-00012")

	require.Len(t, repo.entries, 1)
	assert.Equal(t, "create", repo.entries[0].Action)
	assert.Equal(t, "invoices", repo.entries[0].Module)
	assert.Equal(t, int64(3), *repo.entries[0].UserID)
	assert.False(t, repo.entries[0].Timestamp.IsZero())
}

func TestRecordSwallowsRepoError(t *testing.T) {
	repo := &mockRepo{err: errors.New("disk full")}
	svc := NewService(repo, slog.Default())

	// Must not panic or propagate: auditing never fails the audited action.
	svc.Record(context.Background(), nil, "delete", "customers", "4", "deleted customer")

	assert.Empty(t, repo.entries)
}

func TestListClampsLimit(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, slog.Default())

	_, err := svc.List(context.Background(), Filter{Limit: -5})
	require.NoError(t, err)
}

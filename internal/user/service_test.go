package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/fault"
)

type mockRepo struct {
	users  map[string]*User
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: map[string]*User{}}
}

func (m *mockRepo) CreateUser(_ context.Context, u *User) error {
	m.nextID++
	u.ID = m.nextID
	m.users[u.Username] = u

	return nil
}

func (m *mockRepo) GetUser(_ context.Context, id int64) (*User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}

	return nil, fault.NotFound("user", id)
}

func (m *mockRepo) GetUserByUsername(_ context.Context, username string) (*User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, fault.NotFoundName("user", username)
	}

	return u, nil
}

func (m *mockRepo) ListUsers(_ context.Context) ([]*User, error) { return nil, nil }

func (m *mockRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	for _, u := range m.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}

	return fault.NotFound("user", id)
}

func (m *mockRepo) DeleteUser(_ context.Context, _ int64) error { return nil }

func (m *mockRepo) ListPermissions(_ context.Context) ([]*Permission, error) { return nil, nil }

func (m *mockRepo) SetUserPermissions(_ context.Context, _ int64, _ []int64) error { return nil }

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, "test-secret", time.Hour), repo
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "jordan", "s3cretpass", RoleUser)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", created.PasswordHash)

	u, token, err := svc.Login(ctx, "jordan", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	require.NotNil(t, token)

	claims, err := svc.VerifyToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "jordan", claims.Username)
	assert.Equal(t, RoleUser, claims.Role)
	assert.Equal(t, "1", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "jordan", "s3cretpass", RoleUser)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "jordan", "wrongpass1")
	assert.True(t, fault.IsValidation(err))

	_, _, err = svc.Login(ctx, "nobody", "s3cretpass")
	assert.True(t, fault.IsValidation(err))
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "jordan", "s3cretpass", RoleUser)
	require.NoError(t, err)

	_, token, err := svc.Login(ctx, "jordan", "s3cretpass")
	require.NoError(t, err)

	other := NewService(newMockRepo(), "other-secret", time.Hour)

	_, err = other.VerifyToken(token.Value)
	assert.True(t, fault.IsValidation(err))
}

func TestCreateRejectsShortPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), "jordan", "short", RoleUser)
	assert.True(t, fault.IsValidation(err))
}

func TestEnsureAdmin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin1234"))
	require.Len(t, repo.users, 1)
	assert.Equal(t, RoleAdmin, repo.users["admin"].Role)

	firstHash := repo.users["admin"].PasswordHash

	// Second start must not recreate or rehash the account.
	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "different1"))
	require.Len(t, repo.users, 1)
	assert.Equal(t, firstHash, repo.users["admin"].PasswordHash)
}

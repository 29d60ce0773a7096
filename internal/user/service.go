package user

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/tally/internal/fault"
)

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	DeleteUser(ctx context.Context, id int64) error
	ListPermissions(ctx context.Context) ([]*Permission, error)
	SetUserPermissions(ctx context.Context, userID int64, permissionIDs []int64) error
}

// Claims are the JWT payload: the subject is the user id, and role travels
// with the token so the middleware can authorize without a lookup.
type Claims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	repo      Repository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewService(repo Repository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

func validateCredentials(username, password string) error {
	if username == "" {
		return fault.Invalidf("username is required")
	}

	if len(password) < 8 {
		return fault.Invalidf("password must be at least 8 characters")
	}

	return nil
}

func (s *Service) Create(ctx context.Context, username, password string, role Role) (*User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fault.Persistence("hashing password", err)
	}

	u := &User{Username: username, PasswordHash: string(hash), Role: role}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Login verifies the credentials and issues a signed token. The same
// invalid-credentials error covers unknown usernames and wrong passwords.
func (s *Service) Login(ctx context.Context, username, password string) (*User, *Token, error) {
	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if fault.IsNotFound(err) {
			return nil, nil, fault.Invalidf("invalid username or password")
		}

		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, nil, fault.Invalidf("invalid username or password")
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, nil, err
	}

	return u, token, nil
}

func (s *Service) issueToken(u *User) (*Token, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := Claims{
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fault.Persistence("signing token", err)
	}

	return &Token{Value: signed, ExpiresAt: expiresAt}, nil
}

// VerifyToken parses and validates a token, returning its claims.
func (s *Service) VerifyToken(tokenValue string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenValue, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fault.Invalidf("invalid or expired token")
	}

	return claims, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) ChangePassword(ctx context.Context, id int64, password string) error {
	if len(password) < 8 {
		return fault.Invalidf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fault.Persistence("hashing password", err)
	}

	return s.repo.UpdatePassword(ctx, id, string(hash))
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

func (s *Service) ListPermissions(ctx context.Context) ([]*Permission, error) {
	return s.repo.ListPermissions(ctx)
}

func (s *Service) SetPermissions(ctx context.Context, userID int64, permissionIDs []int64) error {
	return s.repo.SetUserPermissions(ctx, userID, permissionIDs)
}

// EnsureAdmin creates the default admin account on first start. Existing
// installs are left alone.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.repo.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}

	if !fault.IsNotFound(err) {
		return err
	}

	_, err = s.Create(ctx, username, password, RoleAdmin)

	return err
}

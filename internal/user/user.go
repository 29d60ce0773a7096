package user

import (
	"time"

	"github.com/MrJamesThe3rd/tally/internal/fault"
)

// Role is the coarse access level. Fine-grained access is granted through
// permissions; Admin implicitly holds every permission.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	}

	return "", fault.Invalidf("unknown role %q", s)
}

// User is an application login. PasswordHash never leaves the package
// boundary: handlers map User to responses without it.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	Permissions  []string
}

// Permission names one grantable capability, seeded with the schema.
type Permission struct {
	ID          int64
	Name        string
	Description string
}

// Token is an issued session token with its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

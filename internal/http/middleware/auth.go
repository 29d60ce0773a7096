package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/user"
)

type contextKey string

const claimsKey contextKey = "claims"

// Authenticate verifies the bearer token and stores its claims on the request
// context for handlers to read.
func Authenticate(svc *user.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
				return
			}

			claims, err := svc.VerifyToken(token)
			if err != nil {
				respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
				return
			}

			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// RequireAdmin rejects requests whose token does not carry the Admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok || claims.Role != user.RoleAdmin {
			respond.JSON(w, http.StatusForbidden, map[string]string{"error": "admin access required"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ClaimsFrom(ctx context.Context) (*user.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*user.Claims)
	return claims, ok
}

// UserIDFrom extracts the authenticated user id, if any, for audit trails.
func UserIDFrom(ctx context.Context) *int64 {
	claims, ok := ClaimsFrom(ctx)
	if !ok {
		return nil
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil
	}

	return &id
}

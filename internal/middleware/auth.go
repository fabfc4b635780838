package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mmynk/weddingplan/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// MemberIDKey is the context key for storing the authenticated member ID.
	MemberIDKey contextKey = "member_id"
	// EmailKey is the context key for storing the authenticated member's email.
	EmailKey contextKey = "email"
)

// GetMemberID extracts the member ID from the context.
// Returns empty string if not found.
func GetMemberID(ctx context.Context) string {
	id, _ := ctx.Value(MemberIDKey).(string)
	return id
}

// GetEmail extracts the member email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// RequireAuth wraps a handler so it only runs with a valid Bearer token.
// The member ID and email from the token are added to the request context;
// everything downstream reads the actor identity from there and threads it
// into the services explicitly.
func RequireAuth(jwtManager *auth.JWTManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(jwtManager, r)
		if !ok {
			http.Error(w, `{"error":"authorization token required"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), MemberIDKey, claims.MemberID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFromRequest(jwtManager *auth.JWTManager, r *http.Request) (*auth.Claims, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}
	claims, err := jwtManager.Validate(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

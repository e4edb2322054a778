package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const ctxUserKey contextKey = "user"

// TokenValidator checks a bearer token and returns the stable user identity
// (the email the ledger is keyed by).
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// Auth authenticates requests by validating the Bearer JWT and putting the
// user identity into the request context.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractBearer(r)
			if raw == "" {
				http.Error(w, `{"error":"missing or malformed Authorization header"}`, http.StatusUnauthorized)
				return
			}
			userID, err := validator.ValidateToken(r.Context(), raw)
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID)))
		})
	}
}

// UserFromCtx returns the authenticated user identity, or "" if absent.
func UserFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ctxUserKey).(string)
	return id
}

// WithUser returns a context carrying the given user identity.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserKey, userID)
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

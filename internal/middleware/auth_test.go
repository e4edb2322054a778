package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubValidator struct {
	userID string
	err    error
}

func (s stubValidator) ValidateToken(_ context.Context, token string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.userID, nil
}

func TestAuthMissingHeader(t *testing.T) {
	handler := Auth(stubValidator{userID: "alice@example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	handler := Auth(stubValidator{err: errors.New("expired")})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestAuthPutsUserInContext(t *testing.T) {
	var got string
	handler := Auth(stubValidator{userID: "alice@example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserFromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if got != "alice@example.com" {
		t.Errorf("user in context: got %q", got)
	}
}

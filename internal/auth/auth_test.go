package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const testSecret = "unit-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken(testSecret, 42, "driver@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	p, err := ParseToken(tok, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.DriverID != 42 || p.Email != "driver@example.com" {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, err := GenerateToken(testSecret, 1, "a@b.c")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken(tok, "other-secret"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestMiddleware_RejectsAndAllows(t *testing.T) {
	var gotPrincipal *Principal
	h := Middleware(testSecret, "/healthz")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	// Unauthenticated request to a protected path.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	// Allowlisted path passes through without a token.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for allowlisted path, got %d", rec.Code)
	}

	// Valid bearer token injects the principal.
	tok, err := GenerateToken(testSecret, 7, "x@y.z")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotPrincipal == nil || gotPrincipal.DriverID != 7 {
		t.Fatalf("principal not injected: %+v", gotPrincipal)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword("hunter2", hash) {
		t.Fatal("expected password to match")
	}
	if CheckPassword("wrong", hash) {
		t.Fatal("expected mismatch for wrong password")
	}
}

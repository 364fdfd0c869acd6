package testutil

import (
	"database/sql"
	"net/http"
	"testing"

	"delivery-tracking/internal/auth"
	"delivery-tracking/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// We use a shared cache memory database so that multiple connections share the
// same DB if needed. Caller cleanup is registered automatically.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// Token returns a signed driver JWT for tests.
func Token(t *testing.T, secret string, driverID int64, email string) string {
	t.Helper()
	tok, err := auth.GenerateToken(secret, driverID, email)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

// Authorize sets the Bearer token on a request.
func Authorize(r *http.Request, token string) {
	r.Header.Set("Authorization", "Bearer "+token)
}

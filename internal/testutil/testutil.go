package testutil

import (
	"database/sql"
	"net/http"
	"testing"

	"estateClientManagement/internal/auth"
	"estateClientManagement/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// Caller is responsible for closing the DB, typically via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache so that multiple connections see the same database.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SessionCookie returns the session cookie a browser would hold after the
// server issued a token for the given session id.
func SessionCookie(t *testing.T, secret, sessionID string) *http.Cookie {
	t.Helper()
	tok, err := auth.SignSessionID(sessionID, secret)
	if err != nil {
		t.Fatalf("sign session id: %v", err)
	}
	return &http.Cookie{Name: "session", Value: tok, Path: "/"}
}

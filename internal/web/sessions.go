// Package web carries the HTTP-boundary plumbing the catalog handlers
// rely on: cookie sessions for one-shot notices, CSRF protection for
// form submissions, and response security headers.
package web

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

const flashKey = "flash"

// SessionManager wraps scs.SessionManager with catalog-specific helpers.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a session manager backed by the catalog's
// SQLite database. The sqlDB parameter should be the underlying *sql.DB
// from GORM.
func NewSessionManager(sqlDB *sql.DB, lifetime time.Duration, secureCookies bool) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = lifetime

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// PutFlash stores a one-shot notice shown on the next rendered page.
func (sm *SessionManager) PutFlash(ctx context.Context, message string) {
	sm.Put(ctx, flashKey, message)
}

// PopFlash retrieves and clears the pending notice, if any.
func (sm *SessionManager) PopFlash(ctx context.Context) string {
	return sm.PopString(ctx, flashKey)
}

// GenerateSecret returns a random hex-encoded 32-byte secret, used for
// CSRF signing when none is configured.
func GenerateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

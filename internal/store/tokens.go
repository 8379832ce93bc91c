package store

import (
	"context"
	"database/sql"
	"sync"
)

// TokenKey is the well-known key the session token is persisted under. The
// HTTP adapter and the auth state both read and write it.
const TokenKey = "token"

// TokenStore persists the session token between runs.
type TokenStore interface {
	// Token returns the persisted token, or "" if none is stored.
	Token(ctx context.Context) (string, error)
	// SetToken persists token, replacing any previous one.
	SetToken(ctx context.Context, token string) error
	// ClearToken removes the persisted token. Clearing an empty store is
	// not an error.
	ClearToken(ctx context.Context) error
}

// SQLiteTokens keeps the token in the settings table of a SQLite database.
type SQLiteTokens struct {
	DB *sql.DB
}

var _ TokenStore = (*SQLiteTokens)(nil)

// NewSQLiteTokens returns a token store backed by db. The schema must exist.
func NewSQLiteTokens(db *sql.DB) *SQLiteTokens {
	return &SQLiteTokens{DB: db}
}

// Token implements TokenStore.
func (s *SQLiteTokens) Token(ctx context.Context) (string, error) {
	return GetSetting(ctx, s.DB, TokenKey)
}

// SetToken implements TokenStore.
func (s *SQLiteTokens) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.ClearToken(ctx)
	}
	return SetSetting(ctx, s.DB, TokenKey, token)
}

// ClearToken implements TokenStore.
func (s *SQLiteTokens) ClearToken(ctx context.Context) error {
	return DeleteSetting(ctx, s.DB, TokenKey)
}

// MemoryTokens keeps the token in process memory. Safe for concurrent use.
type MemoryTokens struct {
	mu    sync.RWMutex
	token string
}

var _ TokenStore = (*MemoryTokens)(nil)

// NewMemoryTokens returns an in-memory token store seeded with token.
func NewMemoryTokens(token string) *MemoryTokens {
	return &MemoryTokens{token: token}
}

// Token implements TokenStore.
func (m *MemoryTokens) Token(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

// SetToken implements TokenStore.
func (m *MemoryTokens) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// ClearToken implements TokenStore.
func (m *MemoryTokens) ClearToken(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

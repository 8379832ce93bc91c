package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/najdeno/internal/db"
)

func testTokenStore(t *testing.T, tokens TokenStore) {
	t.Helper()
	ctx := context.Background()

	got, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, got, "fresh store holds no token")

	require.NoError(t, tokens.SetToken(ctx, "T1"))
	got, err = tokens.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T1", got)

	require.NoError(t, tokens.SetToken(ctx, "T2"))
	got, _ = tokens.Token(ctx)
	assert.Equal(t, "T2", got)

	require.NoError(t, tokens.ClearToken(ctx))
	require.NoError(t, tokens.ClearToken(ctx), "clearing twice is not an error")
	got, _ = tokens.Token(ctx)
	assert.Empty(t, got)
}

func TestMemoryTokens(t *testing.T) {
	testTokenStore(t, NewMemoryTokens(""))
}

func TestSQLiteTokens(t *testing.T) {
	testTokenStore(t, NewSQLiteTokens(db.NewTestDB(t)))
}

func TestSQLiteTokensPersistAcrossReopen(t *testing.T) {
	database, path := db.NewTestFileDB(t)
	ctx := context.Background()

	require.NoError(t, NewSQLiteTokens(database).SetToken(ctx, "persisted"))
	require.NoError(t, database.Close())

	reopened, err := db.OpenWithSchema(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := NewSQLiteTokens(reopened).Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}

func TestSQLiteTokensEmptyTokenClears(t *testing.T) {
	tokens := NewSQLiteTokens(db.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, tokens.SetToken(ctx, "T1"))
	require.NoError(t, tokens.SetToken(ctx, ""))

	got, err := tokens.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTokenKeySharedWithSettings(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, NewSQLiteTokens(database).SetToken(ctx, "abc"))

	raw, err := GetSetting(ctx, database, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", raw)
}

func TestSQLiteTokensErrors(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	tokens := NewSQLiteTokens(database)
	boom := errors.New("disk I/O error")

	mock.ExpectQuery(`SELECT value FROM settings`).WithArgs(TokenKey).WillReturnError(boom)
	_, err = tokens.Token(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "querying setting token")

	mock.ExpectExec(`INSERT INTO settings`).WithArgs(TokenKey, "T1").WillReturnError(boom)
	err = tokens.SetToken(ctx, "T1")
	assert.ErrorIs(t, err, boom)

	mock.ExpectExec(`DELETE FROM settings`).WithArgs(TokenKey).WillReturnError(boom)
	err = tokens.ClearToken(ctx)
	assert.ErrorContains(t, err, "deleting setting token")

	// An empty token is a delete, never an insert.
	mock.ExpectExec(`DELETE FROM settings`).WithArgs(TokenKey).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, tokens.SetToken(ctx, ""))

	require.NoError(t, mock.ExpectationsWereMet())
}

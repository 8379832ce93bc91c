package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/najdeno/internal/model"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateToken(secret, 1, "alice", string(model.RoleAdmin), TokenExpiry)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)

	assert.Equal(t, int64(1), claims.UserID())
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, string(model.RoleAdmin), claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret1", 1, "alice", "user", TokenExpiry)

	_, err := ValidateToken("secret2", token)
	assert.Error(t, err)
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("secret", "not-a-token")
	assert.Error(t, err)
}

func TestInspectReadsClaimsWithoutSecret(t *testing.T) {
	token, err := GenerateToken("server-only", 7, "bob", "user", time.Hour)
	require.NoError(t, err)

	claims, err := Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID())
	assert.Equal(t, "bob", claims.Username)

	// Should be within a few seconds of the requested lifetime.
	diff := time.Until(claims.ExpiresAt.Time) - time.Hour
	assert.InDelta(t, 0, diff.Seconds(), 5)
}

func TestInspectOpaqueToken(t *testing.T) {
	_, err := Inspect("T1")
	assert.True(t, errors.Is(err, ErrNotJWT), "got %v", err)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	live, _ := GenerateToken("s", 1, "a", "user", time.Hour)
	claims, err := Inspect(live)
	require.NoError(t, err)
	assert.False(t, Expired(claims, now))
	assert.True(t, Expired(claims, now.Add(2*time.Hour)))

	assert.False(t, Expired(&Claims{}, now), "no exp claim never expires")
	assert.False(t, Expired(nil, now))
}

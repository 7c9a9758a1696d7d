package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vornexz/pay/internal/auth"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, auth.ComparePasswordAndHash("secret123", hash))
	assert.ErrorIs(t, auth.ComparePasswordAndHash("wrong", hash), auth.ErrMismatchedHashAndPassword)
}

func TestCompareAgainstGarbageHash(t *testing.T) {
	err := auth.ComparePasswordAndHash("secret123", "not-a-bcrypt-hash")
	assert.Error(t, err)
}

func TestRandomPasswordHashNeverMatches(t *testing.T) {
	hash := auth.RandomPasswordHash()
	require.NotEmpty(t, hash)
	assert.Error(t, auth.ComparePasswordAndHash("", hash))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_ProducesVerifiableHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password123", 10)
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash)
	assert.True(t, VerifyPassword(hash, "password123"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("password123", 10)
	require.NoError(t, err)
	second, err := HashPassword("password123", 10)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPassword_ZeroCostFallsBackToDefault(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password123", 0)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "password123"))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "password123"))
	assert.False(t, VerifyPassword("", "password123"))
}

package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret-password"))
	assert.Error(t, ComparePassword(hash, "wrong-password"))
}

func TestIsHashed(t *testing.T) {
	hash, err := HashPassword("s3cret-password", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, IsHashed(hash))
	assert.False(t, IsHashed("s3cret-password"))
	assert.False(t, IsHashed(""))
}

func TestNewCapabilityToken(t *testing.T) {
	first, err := NewCapabilityToken()
	require.NoError(t, err)
	second, err := NewCapabilityToken()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)

	raw, err := hex.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

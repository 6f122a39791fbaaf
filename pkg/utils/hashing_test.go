package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)

	assert.NoError(t, ComparePasswords(hash, "hunter2!"))
	assert.Error(t, ComparePasswords(hash, "hunter3!"))
}

func TestLegacyHashCompare(t *testing.T) {
	legacy := LegacyHash("old-password")
	assert.Len(t, legacy, 64, "hex-encoded sha256")

	assert.True(t, CompareLegacyHash(legacy, "old-password"))
	assert.False(t, CompareLegacyHash(legacy, "different"))
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = GenerateSecureToken(0)
	assert.Error(t, err)
}

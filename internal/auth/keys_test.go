package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key, err := GenerateKey()
		require.NoError(t, err)
		assert.Len(t, key, 64)
		_, err = hex.DecodeString(key)
		assert.NoError(t, err)
		assert.False(t, seen[key], "duplicate key generated")
		seen[key] = true
	}
}

func TestDeriveKey(t *testing.T) {
	a := DeriveKey("ana@example.com", "pepper")
	assert.Equal(t, a, DeriveKey("ana@example.com", "pepper"))
	assert.NotEqual(t, a, DeriveKey("ana@example.com", "salt"))
	assert.NotEqual(t, a, DeriveKey("rui@example.com", "pepper"))
	assert.Len(t, a, 64)

	// sha256("") is a well known value
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", DeriveKey("", ""))
}

func TestKeyGenerators(t *testing.T) {
	random := RandomKeys()
	k1, err := random("ana@example.com")
	require.NoError(t, err)
	k2, err := random("ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	derived := DerivedKeys("pepper")
	d1, err := derived("ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, DeriveKey("ana@example.com", "pepper"), d1)
}

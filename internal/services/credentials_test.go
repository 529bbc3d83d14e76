package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsHashAndVerify(t *testing.T) {
	creds := NewCredentials()

	hash, err := creds.Hash("correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse", hash)

	assert.True(t, creds.Verify("correct-horse", hash))
	assert.False(t, creds.Verify("wrong-horse", hash))
}

func TestCredentialsVerifyGarbageHash(t *testing.T) {
	creds := NewCredentials()
	// A malformed stored hash is a mismatch, not a panic or error.
	assert.False(t, creds.Verify("anything", "not-a-bcrypt-hash"))
}

func TestCredentialsHashesAreSalted(t *testing.T) {
	creds := NewCredentials()

	h1, err := creds.Hash("same-input")
	require.NoError(t, err)
	h2, err := creds.Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, creds.Verify("same-input", h1))
	assert.True(t, creds.Verify("same-input", h2))
}

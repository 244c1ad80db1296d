package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := BcryptHasher{Cost: 4}

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)

	ok, err := h.Verify(hash, "secret1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestBcryptHasher_Mismatch(t *testing.T) {
	h := BcryptHasher{Cost: 4}

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	// mismatch is a boolean outcome, not an error
	ok, err := h.Verify(hash, "wrong")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBcryptHasher_PrimitiveFailure(t *testing.T) {
	h := BcryptHasher{Cost: 4}

	ok, err := h.Verify("garbage-not-a-bcrypt-hash", "secret1")
	require.Error(t, err)
	require.False(t, ok)
}

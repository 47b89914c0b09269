package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)

	ok, err := h.Verify("secret1", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify("secret2", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBcryptHasher_SelfSalting(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestBcryptHasher_CorruptHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, stored := range []string{"", "short", "$9$" + strings.Repeat("a", 57)} {
		ok, err := h.Verify("secret1", stored)
		require.False(t, ok)
		require.ErrorIs(t, err, ErrCorruptCredential, "stored=%q", stored)
	}
}

func TestBcryptHasher_TooLong(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("x", 73))
	require.True(t, errors.Is(err, ErrPasswordTooLong))
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	require.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	require.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
	require.Equal(t, 12, NewBcryptHasher(12).cost)
}

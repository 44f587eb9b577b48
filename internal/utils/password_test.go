package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("mauvais mot de passe", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_HashInvalide(t *testing.T) {
	_, err := VerifyPassword("peu importe", "$2a$10$pasunargon2")
	assert.Error(t, err)

	_, err = VerifyPassword("peu importe", "n'importe quoi")
	assert.Error(t, err)
}

func TestHashPassword_SaltUnique(t *testing.T) {
	h1, err := HashPassword("même mot de passe")
	require.NoError(t, err)
	h2, err := HashPassword("même mot de passe")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

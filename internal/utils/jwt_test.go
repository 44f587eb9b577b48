package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func TestGenerateJWT(t *testing.T) {
	InitJWT("secret-de-test")

	account := models.User{
		ID:    "3e2f9c1a-0000-0000-0000-000000000001",
		Email: "claire@example.com",
		Role:  "admin",
	}

	tokenString, err := GenerateJWT(account)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret-de-test"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, account.ID, claims["user_id"])
	assert.Equal(t, account.Email, claims["email"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotZero(t, claims["exp"])
}

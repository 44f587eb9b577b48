package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"velora_back_end/internal/models"
)

var jwtSecret []byte

// InitJWT fixe le secret de signature des tokens émis.
func InitJWT(secret string) {
	jwtSecret = []byte(secret)
}

func GenerateJWT(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

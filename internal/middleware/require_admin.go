package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin s'utilise après AuthRequired.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSupport autorise les rôles support et admin (chat d'assistance).
func RequireSupport() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role != "support" && role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé à l'équipe support"})
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/database"
)

const (
	LoginMaxAttempts    = 5
	RegisterMaxAttempts = 3
	APIMaxRequests      = 100 // par minute pour les endpoints généraux

	LoginCooldown    = 15 * time.Minute
	RegisterCooldown = 30 * time.Minute
	APICooldown      = 1 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email.
func LoginRateLimit() gin.HandlerFunc {
	return attemptLimit("login", LoginMaxAttempts, LoginCooldown)
}

// RegisterRateLimit limite les créations de compte par email.
func RegisterRateLimit() gin.HandlerFunc {
	return attemptLimit("register", RegisterMaxAttempts, RegisterCooldown)
}

func attemptLimit(scope string, maxAttempts int, cooldown time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		cooldownKey := scope + "_cooldown:" + input.Email
		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives. Réessayez dans %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		key := scope + "_attempts:" + input.Email
		attempts, _ := database.Redis.Incr(ctx, key).Result()
		if attempts == 1 {
			database.Redis.Expire(ctx, key, cooldown)
		}
		if attempts > int64(maxAttempts) {
			database.Redis.Set(ctx, cooldownKey, "1", cooldown)
			database.Redis.Del(ctx, key)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de tentatives. Réessayez plus tard",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// APIRateLimit limite le trafic général par IP.
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "api_rate:" + c.ClientIP()

		count, _ := database.Redis.Incr(ctx, key).Result()
		if count == 1 {
			database.Redis.Expire(ctx, key, APICooldown)
		}
		if count > APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Trop de requêtes, ralentissez"})
			c.Abort()
			return
		}

		c.Next()
	}
}

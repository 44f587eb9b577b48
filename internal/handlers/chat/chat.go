package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// Le chat support relie un client et l'équipe support via un canal Redis
// chat:<user_id>. Les messages sont persistés en base pour l'historique.

// ChatWebSocket gère la connexion temps réel du chat support.
// GET /api/chat/ws?customer_id=... (le paramètre n'est utilisé que par le support)
func ChatWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	// Un client écoute son propre canal ; le support écoute celui du client choisi.
	channelUserID := userID
	senderRole := "customer"
	if role == "support" || role == "admin" {
		senderRole = "support"
		if target := c.Query("customer_id"); target != "" {
			channelUserID = target
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()
	channel := "chat:" + channelUserID

	pubsub := database.Redis.Subscribe(ctx, channel)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Chat support connecté",
	})

	// Lecture des messages entrants du websocket
	incoming := make(chan models.ChatMessage)
	go func() {
		defer close(incoming)
		for {
			var input struct {
				Content string `json:"content"`
			}
			if err := conn.ReadJSON(&input); err != nil {
				return
			}
			if input.Content == "" {
				continue
			}
			incoming <- models.ChatMessage{
				ID:         uuid.NewString(),
				UserID:     channelUserID,
				SenderRole: senderRole,
				Content:    input.Content,
				CreatedAt:  time.Now(),
			}
		}
	}()

	for {
		select {
		case msg, ok := <-incoming:
			if !ok {
				return
			}
			if err := database.DB.Create(&msg).Error; err != nil {
				log.Printf("❌ Erreur persistance message chat: %v", err)
				continue
			}
			payload, _ := json.Marshal(msg)
			if err := database.Redis.Publish(ctx, channel, payload).Err(); err != nil {
				log.Printf("❌ Erreur publication chat: %v", err)
			}

		case redisMsg := <-ch:
			var msg models.ChatMessage
			if err := json.Unmarshal([]byte(redisMsg.Payload), &msg); err != nil {
				continue
			}
			if err := conn.WriteJSON(map[string]interface{}{"type": "message", "message": msg}); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}

		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// GetChatHistory retourne l'historique d'une conversation.
// GET /api/chat/history (client) ou /api/chat/history?customer_id=... (support)
func GetChatHistory(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")

	channelUserID := userID
	if (role == "support" || role == "admin") && c.Query("customer_id") != "" {
		channelUserID = c.Query("customer_id")
	}

	var messages []models.ChatMessage
	err := database.DB.Where("user_id = ?", channelUserID).
		Order("created_at ASC").
		Limit(200).
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération historique"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "count": len(messages)})
}

package models

import "time"

// Genre d'acteur d'une transition de statut.
const (
	ActorKindSystem = "system"
	ActorKindUser   = "user"
)

// Actor identifie qui a déclenché une transition : le système (job
// d'auto-livraison) ou un utilisateur identifié par son email.
type Actor struct {
	Kind  string `json:"kind"`
	Email string `json:"email,omitempty"`
}

func SystemActor() Actor {
	return Actor{Kind: ActorKindSystem}
}

func UserActor(email string) Actor {
	return Actor{Kind: ActorKindUser, Email: email}
}

// OrderStatusHistory est un journal en append-only : jamais modifié,
// jamais supprimé.
type OrderStatusHistory struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	OrderID    string    `json:"order_id" gorm:"type:uuid;index;not null"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ActorKind  string    `json:"actor_kind" gorm:"not null"`
	ActorEmail string    `json:"actor_email,omitempty"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h OrderStatusHistory) Actor() Actor {
	if h.ActorKind == ActorKindSystem {
		return SystemActor()
	}
	return UserActor(h.ActorEmail)
}

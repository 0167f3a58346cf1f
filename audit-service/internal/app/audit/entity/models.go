package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SecurityEvent - событие безопасности из топика security-events.
// Формат совпадает с продюсером auth-service.
type SecurityEvent struct {
	ID        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	EventID   string             `json:"event_id" bson:"event_id"`
	EventType string             `json:"event_type" bson:"event_type"`
	UserID    int64              `json:"user_id" bson:"user_id"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Detail    string             `json:"detail,omitempty" bson:"detail,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	StoredAt  time.Time          `json:"stored_at" bson:"stored_at"`
}

// Типы событий безопасности
const (
	EventLogin         = "login"
	EventTokenRotated  = "token_rotated"
	EventReuseDetected = "reuse_detected"
	EventRevokeAll     = "revoke_all"
	EventLogout        = "logout"
)

// UserEventsResponse - события безопасности одного пользователя
type UserEventsResponse struct {
	UserID int64           `json:"user_id"`
	Events []SecurityEvent `json:"events"`
	Total  int             `json:"total"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

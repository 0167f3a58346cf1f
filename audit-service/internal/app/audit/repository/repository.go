package repository

import (
	"context"

	"bowlingapp/audit-service/internal/app/audit/entity"
)

// EventRepository - интерфейс хранилища событий безопасности
type EventRepository interface {
	Store(ctx context.Context, event *entity.SecurityEvent) error
	FindByUser(ctx context.Context, userID int64, limit int64) ([]entity.SecurityEvent, error)
	CountByType(ctx context.Context, eventType string) (int64, error)
}

package service

import (
	"context"

	"bowlingapp/audit-service/internal/app/audit/entity"
)

// AuditServiceInterface - интерфейс сервиса аудита
type AuditServiceInterface interface {
	RecordEvent(ctx context.Context, event *entity.SecurityEvent) error
	GetUserEvents(ctx context.Context, userID int64, limit int64) ([]entity.SecurityEvent, error)
}

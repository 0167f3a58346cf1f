package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bowlingapp/audit-service/internal/app/audit/entity"
	"bowlingapp/audit-service/internal/app/audit/repository"
	"bowlingapp/pkg/logger"
	"bowlingapp/pkg/metrics"
)

var (
	// ErrInvalidEvent - событие без типа или пользователя не сохраняется
	ErrInvalidEvent = errors.New("invalid security event")
)

const defaultEventsLimit = 100

// AuditService сохраняет след событий безопасности и отдаёт его
// администраторам для расследования инцидентов
type AuditService struct {
	eventRepo repository.EventRepository
}

// NewAuditService создает новый сервис аудита
func NewAuditService(eventRepo repository.EventRepository) *AuditService {
	return &AuditService{
		eventRepo: eventRepo,
	}
}

// RecordEvent сохраняет событие безопасности.
// Повторная обработка сообщения из Kafka даёт дубликат записи, это
// приемлемо для следа аудита - лучше дубль, чем потерянное событие.
func (s *AuditService) RecordEvent(ctx context.Context, event *entity.SecurityEvent) error {
	if event == nil || event.EventType == "" || event.UserID == 0 {
		return ErrInvalidEvent
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	if err := s.eventRepo.Store(ctx, event); err != nil {
		return fmt.Errorf("failed to record security event: %w", err)
	}

	metrics.AuditEventsStored.WithLabelValues(event.EventType).Inc()

	// Обнаруженное переиспользование токена - сигнал компрометации,
	// его дублируем в security лог
	if event.EventType == entity.EventReuseDetected {
		logger.Security(event.EventType).
			Int64("user_id", event.UserID).
			Str("detail", event.Detail).
			Msg("token reuse recorded in audit trail")
	}

	return nil
}

// GetUserEvents возвращает последние события пользователя
func (s *AuditService) GetUserEvents(ctx context.Context, userID int64, limit int64) ([]entity.SecurityEvent, error) {
	if limit <= 0 || limit > defaultEventsLimit {
		limit = defaultEventsLimit
	}

	events, err := s.eventRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user events: %w", err)
	}

	if events == nil {
		events = []entity.SecurityEvent{}
	}

	return events, nil
}

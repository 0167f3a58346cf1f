package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bowlingapp/audit-service/internal/app/audit/entity"
	"bowlingapp/audit-service/internal/app/audit/repository/mocks"
)

// ==================== RecordEvent Tests ====================

func TestAuditService_RecordEvent_Success(t *testing.T) {
	// Arrange
	eventRepo := new(mocks.MockEventRepository)
	svc := NewAuditService(eventRepo)

	event := &entity.SecurityEvent{
		EventID:   "evt-1",
		EventType: entity.EventLogin,
		UserID:    42,
		CreatedAt: time.Now(),
	}
	eventRepo.On("Store", mock.Anything, event).Return(nil)

	// Act
	err := svc.RecordEvent(context.Background(), event)

	// Assert
	assert.NoError(t, err)
	eventRepo.AssertExpectations(t)
}

func TestAuditService_RecordEvent_FillsMissingTimestamp(t *testing.T) {
	// Arrange
	eventRepo := new(mocks.MockEventRepository)
	svc := NewAuditService(eventRepo)

	event := &entity.SecurityEvent{
		EventType: entity.EventRevokeAll,
		UserID:    42,
	}
	eventRepo.On("Store", mock.Anything, mock.MatchedBy(func(e *entity.SecurityEvent) bool {
		return !e.CreatedAt.IsZero()
	})).Return(nil)

	// Act
	err := svc.RecordEvent(context.Background(), event)

	// Assert
	assert.NoError(t, err)
	eventRepo.AssertExpectations(t)
}

func TestAuditService_RecordEvent_InvalidEvent(t *testing.T) {
	// Arrange
	eventRepo := new(mocks.MockEventRepository)
	svc := NewAuditService(eventRepo)

	cases := []*entity.SecurityEvent{
		nil,
		{UserID: 42},                        // нет типа
		{EventType: entity.EventLogin},      // нет пользователя
	}

	for _, event := range cases {
		// Act
		err := svc.RecordEvent(context.Background(), event)

		// Assert
		assert.ErrorIs(t, err, ErrInvalidEvent)
	}

	eventRepo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestAuditService_RecordEvent_RepositoryError(t *testing.T) {
	// Arrange
	eventRepo := new(mocks.MockEventRepository)
	svc := NewAuditService(eventRepo)

	event := &entity.SecurityEvent{
		EventType: entity.EventReuseDetected,
		UserID:    42,
		CreatedAt: time.Now(),
	}
	eventRepo.On("Store", mock.Anything, event).Return(errors.New("mongo down"))

	// Act
	err := svc.RecordEvent(context.Background(), event)

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record security event")
}

// ==================== GetUserEvents Tests ====================

func TestAuditService_GetUserEvents_Success(t *testing.T) {
	// Arrange
	eventRepo := new(mocks.MockEventRepository)
	svc := NewAuditService(eventRepo)

	stored := []entity.SecurityEvent{
		{EventType: entity.EventReuseDetected, UserID: 42},
		{EventType: entity.EventLogin, UserID: 42},
	}
	eventRepo.On("FindByUser", mock.Anything, int64(42), int64(10)).Return(stored, nil)

	// Act
	events, err := svc.GetUserEvents(context.Background(), 42, 10)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, entity.EventReuseDetected, events[0].EventType)
}

func TestAuditService_GetUserEvents_ClampsLimit(t *testing.T) {
	// Arrange: запредельный limit укорачивается до значения по умолчанию
	eventRepo := new(mocks.MockEventRepository)
	svc := NewAuditService(eventRepo)

	eventRepo.On("FindByUser", mock.Anything, int64(42), int64(100)).Return([]entity.SecurityEvent{}, nil)

	// Act
	events, err := svc.GetUserEvents(context.Background(), 42, 100000)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, events)
	eventRepo.AssertExpectations(t)
}

func TestAuditService_GetUserEvents_NilBecomesEmpty(t *testing.T) {
	// Arrange
	eventRepo := new(mocks.MockEventRepository)
	svc := NewAuditService(eventRepo)

	eventRepo.On("FindByUser", mock.Anything, int64(42), int64(100)).Return(nil, nil)

	// Act
	events, err := svc.GetUserEvents(context.Background(), 42, 0)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bowlingapp/audit-service/internal/app/audit/entity"
)

// MockEventRepository мок для EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Store(ctx context.Context, event *entity.SecurityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) FindByUser(ctx context.Context, userID int64, limit int64) ([]entity.SecurityEvent, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SecurityEvent), args.Error(1)
}

func (m *MockEventRepository) CountByType(ctx context.Context, eventType string) (int64, error) {
	args := m.Called(ctx, eventType)
	return args.Get(0).(int64), args.Error(1)
}

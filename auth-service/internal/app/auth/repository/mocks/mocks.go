package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bowlingapp/auth-service/internal/app/auth/entity"
)

// MockUserRepository мок для UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockRefreshTokenRepository мок для RefreshTokenRepository
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Save(ctx context.Context, token *entity.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Rotate(ctx context.Context, oldHash, newHash string, issuedAt, expiresAt time.Time) (entity.RotateOutcome, *entity.RefreshToken, *entity.RefreshToken, error) {
	args := m.Called(ctx, oldHash, newHash, issuedAt, expiresAt)

	var current, next *entity.RefreshToken
	if args.Get(1) != nil {
		current = args.Get(1).(*entity.RefreshToken)
	}
	if args.Get(2) != nil {
		next = args.Get(2).(*entity.RefreshToken)
	}
	return args.Get(0).(entity.RotateOutcome), current, next, args.Error(3)
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64, reason string) (int64, error) {
	args := m.Called(ctx, userID, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteExpiredRevoked(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockBlacklistRepository мок для BlacklistRepository
type MockBlacklistRepository struct {
	mock.Mock
}

func (m *MockBlacklistRepository) AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error {
	args := m.Called(ctx, token, expiresAt)
	return args.Error(0)
}

func (m *MockBlacklistRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// MockSecurityEventPublisher мок для публикации событий безопасности
type MockSecurityEventPublisher struct {
	mock.Mock
}

func (m *MockSecurityEventPublisher) Publish(ctx context.Context, event entity.SecurityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

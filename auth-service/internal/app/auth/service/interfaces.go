package service

import (
	"context"
	"time"

	"bowlingapp/auth-service/internal/app/auth/entity"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error)
	Refresh(ctx context.Context, rawRefreshToken string) (*entity.TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	RevokeAll(ctx context.Context, userID int64, reason string) error
	Authenticate(ctx context.Context, accessToken string) (*entity.Principal, error)
	PurgeExpiredTokens(ctx context.Context, before time.Time) (int64, error)
}

// SecurityEventPublisher отправляет события безопасности в шину аудита
type SecurityEventPublisher interface {
	Publish(ctx context.Context, event entity.SecurityEvent) error
}

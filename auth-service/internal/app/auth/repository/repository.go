package repository

import (
	"context"
	"errors"
	"time"

	"bowlingapp/auth-service/internal/app/auth/entity"
)

var (
	ErrNotFound = errors.New("not found")
)

type UserRepository interface {
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}

// RefreshTokenRepository - персистентный реестр refresh токенов.
// Rotate - единственная операция с транзакционной границей: проверка и
// перезапись записи выполняются под блокировкой строки, чтобы из двух
// конкурентных ротаций одного токена победила ровно одна.
type RefreshTokenRepository interface {
	Save(ctx context.Context, token *entity.RefreshToken) error
	Rotate(ctx context.Context, oldHash, newHash string, issuedAt, expiresAt time.Time) (entity.RotateOutcome, *entity.RefreshToken, *entity.RefreshToken, error)
	RevokeAllForUser(ctx context.Context, userID int64, reason string) (int64, error)
	DeleteExpiredRevoked(ctx context.Context, before time.Time) (int64, error)
}

// BlacklistRepository - чёрный список access токенов (logout до истечения TTL)
type BlacklistRepository interface {
	AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

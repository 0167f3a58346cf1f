package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bowlingapp/pkg/metrics"
)

type redisBlacklistRepository struct {
	client *redis.Client
}

// NewRedisBlacklistRepository создает Redis-хранилище чёрного списка
// access токенов. Ключ живёт ровно до истечения самого токена,
// дальше чёрный список не нужен.
func NewRedisBlacklistRepository(client *redis.Client) BlacklistRepository {
	return &redisBlacklistRepository{client: client}
}

// AddToBlacklist помечает access токен отозванным до его истечения
func (r *redisBlacklistRepository) AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error {
	timer := metrics.NewRedisTimer("auth-service", metrics.RedisOpSet)
	defer timer.ObserveDuration()

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Токен уже истёк, блокировать нечего
		return nil
	}

	key := fmt.Sprintf("blacklist:%s", token)
	if err := r.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		metrics.RecordRedisError("auth-service", metrics.RedisOpSet)
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	return nil
}

// IsBlacklisted проверяет, отозван ли access токен
func (r *redisBlacklistRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	timer := metrics.NewRedisTimer("auth-service", metrics.RedisOpExists)
	defer timer.ObserveDuration()

	key := fmt.Sprintf("blacklist:%s", token)
	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		metrics.RecordRedisError("auth-service", metrics.RedisOpExists)
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}

	return count > 0, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bowlingapp/auth-service/internal/app/auth/entity"
	"bowlingapp/pkg/metrics"
)

type refreshTokenRepository struct {
	db *pgxpool.Pool
}

// NewRefreshTokenRepository создает новый реестр refresh токенов
func NewRefreshTokenRepository(db *pgxpool.Pool) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Save сохраняет новую запись о выданном refresh токене
func (r *refreshTokenRepository) Save(ctx context.Context, token *entity.RefreshToken) error {
	timer := metrics.NewDbTimer("auth-service", metrics.DbOpInsert, "refresh_tokens")
	defer timer.ObserveDuration()

	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, issued_at, expires_at, revoked)
		VALUES ($1, $2, $3, $4, false)
		RETURNING refresh_token_id
	`

	err := r.db.QueryRow(ctx, query,
		token.UserID, token.TokenHash, token.IssuedAt, token.ExpiresAt,
	).Scan(&token.ID)
	if err != nil {
		metrics.RecordDbError("auth-service", metrics.DbOpInsert)
		return fmt.Errorf("failed to save refresh token: %w", err)
	}

	return nil
}

// Rotate выполняет ротацию в одной транзакции. Строка с oldHash берётся
// с блокировкой SELECT ... FOR UPDATE: из двух конкурентных ротаций одного
// токена вторая дождётся коммита первой и увидит запись уже отозванной.
// Возвращает исход, найденную старую запись и созданную новую (для RotateOK).
func (r *refreshTokenRepository) Rotate(ctx context.Context, oldHash, newHash string, issuedAt, expiresAt time.Time) (entity.RotateOutcome, *entity.RefreshToken, *entity.RefreshToken, error) {
	timer := metrics.NewDbTimer("auth-service", metrics.DbOpUpdate, "refresh_tokens")
	defer timer.ObserveDuration()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return entity.RotateUnknown, nil, nil, fmt.Errorf("failed to begin rotation tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var current entity.RefreshToken
	err = tx.QueryRow(ctx, `
		SELECT refresh_token_id, user_id, token_hash, issued_at, expires_at,
		       revoked, revoked_at, COALESCE(revocation_reason, ''), COALESCE(replaced_by_token_hash, '')
		FROM refresh_tokens
		WHERE token_hash = $1
		FOR UPDATE
	`, oldHash).Scan(
		&current.ID,
		&current.UserID,
		&current.TokenHash,
		&current.IssuedAt,
		&current.ExpiresAt,
		&current.Revoked,
		&current.RevokedAt,
		&current.RevocationReason,
		&current.ReplacedByTokenHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.RotateUnknown, nil, nil, nil
		}
		metrics.RecordDbError("auth-service", metrics.DbOpSelect)
		return entity.RotateUnknown, nil, nil, fmt.Errorf("failed to lock refresh token: %w", err)
	}

	// Уже отозванный токен предъявлен повторно: сама запись не меняется,
	// эскалация (отзыв всех токенов владельца) - дело вызывающего
	if current.Revoked {
		if err := tx.Commit(ctx); err != nil {
			return entity.RotateReused, nil, nil, fmt.Errorf("failed to commit rotation tx: %w", err)
		}
		return entity.RotateReused, &current, nil, nil
	}

	now := time.Now()

	if current.ExpiresAt.Before(now) {
		_, err = tx.Exec(ctx, `
			UPDATE refresh_tokens
			SET revoked = true, revoked_at = $2, revocation_reason = $3
			WHERE refresh_token_id = $1
		`, current.ID, now, entity.RevokeReasonExpired)
		if err != nil {
			metrics.RecordDbError("auth-service", metrics.DbOpUpdate)
			return entity.RotateExpired, nil, nil, fmt.Errorf("failed to revoke expired token: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return entity.RotateExpired, nil, nil, fmt.Errorf("failed to commit rotation tx: %w", err)
		}
		return entity.RotateExpired, &current, nil, nil
	}

	next := &entity.RefreshToken{
		UserID:    current.UserID,
		TokenHash: newHash,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, issued_at, expires_at, revoked)
		VALUES ($1, $2, $3, $4, false)
		RETURNING refresh_token_id
	`, next.UserID, next.TokenHash, next.IssuedAt, next.ExpiresAt).Scan(&next.ID)
	if err != nil {
		metrics.RecordDbError("auth-service", metrics.DbOpInsert)
		return entity.RotateUnknown, nil, nil, fmt.Errorf("failed to insert rotated token: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked = true, revoked_at = $2, revocation_reason = $3, replaced_by_token_hash = $4
		WHERE refresh_token_id = $1
	`, current.ID, now, entity.RevokeReasonRotated, newHash)
	if err != nil {
		metrics.RecordDbError("auth-service", metrics.DbOpUpdate)
		return entity.RotateUnknown, nil, nil, fmt.Errorf("failed to revoke rotated token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return entity.RotateUnknown, nil, nil, fmt.Errorf("failed to commit rotation tx: %w", err)
	}

	return entity.RotateOK, &current, next, nil
}

// RevokeAllForUser отзывает все неотозванные токены пользователя.
// Используется при logout-everywhere и при обнаружении повторного
// предъявления. Возвращает количество отозванных записей.
func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64, reason string) (int64, error) {
	timer := metrics.NewDbTimer("auth-service", metrics.DbOpUpdate, "refresh_tokens")
	defer timer.ObserveDuration()

	tag, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked = true, revoked_at = $2, revocation_reason = $3
		WHERE user_id = $1 AND revoked = false
	`, userID, time.Now(), reason)
	if err != nil {
		metrics.RecordDbError("auth-service", metrics.DbOpUpdate)
		return 0, fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeleteExpiredRevoked удаляет записи, которые и отозваны, и истекли
// раньше указанного момента. Вызывается фоновой политикой ретенции.
func (r *refreshTokenRepository) DeleteExpiredRevoked(ctx context.Context, before time.Time) (int64, error) {
	timer := metrics.NewDbTimer("auth-service", metrics.DbOpDelete, "refresh_tokens")
	defer timer.ObserveDuration()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM refresh_tokens
		WHERE revoked = true AND expires_at < $1
	`, before)
	if err != nil {
		metrics.RecordDbError("auth-service", metrics.DbOpDelete)
		return 0, fmt.Errorf("failed to purge refresh tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bowlingapp/auth-service/internal/app/auth/entity"
	"bowlingapp/pkg/metrics"
)

type userRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepository{db: db}
}

// GetByPhone получает пользователя по номеру телефона вместе с именем роли
func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	timer := metrics.NewDbTimer("auth-service", metrics.DbOpSelect, "users")
	defer timer.ObserveDuration()

	query := `
		SELECT u.user_id, u.phone, u.password_hash, r.name, u.is_active, u.created_at
		FROM users u
		JOIN roles r ON r.role_id = u.role_id
		WHERE u.phone = $1
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, phone).Scan(
		&user.ID,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		metrics.RecordDbError("auth-service", metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}

	return &user, nil
}

// GetByID получает пользователя по идентификатору
func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	timer := metrics.NewDbTimer("auth-service", metrics.DbOpSelect, "users")
	defer timer.ObserveDuration()

	query := `
		SELECT u.user_id, u.phone, u.password_hash, r.name, u.is_active, u.created_at
		FROM users u
		JOIN roles r ON r.role_id = u.role_id
		WHERE u.user_id = $1
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		metrics.RecordDbError("auth-service", metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

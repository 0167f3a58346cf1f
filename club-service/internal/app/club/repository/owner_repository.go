package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bowlingapp/club-service/internal/app/club/entity"
	"bowlingapp/pkg/metrics"
)

type ownerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository создает новый репозиторий профилей владельцев
func NewOwnerRepository(db *gorm.DB) OwnerRepository {
	return &ownerRepository{db: db}
}

// GetByUserID получает профиль владельца по ID пользователя
func (r *ownerRepository) GetByUserID(ctx context.Context, userID int64) (*entity.OwnerProfile, error) {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpSelect, "owner_profiles")
	defer timer.ObserveDuration()

	var owner entity.OwnerProfile
	result := r.db.WithContext(ctx).First(&owner, "user_id = ?", userID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotFound
		}
		metrics.RecordDbError("club-service", metrics.DbOpSelect)
		return nil, result.Error
	}

	return &owner, nil
}

// Create создает новый профиль владельца
func (r *ownerRepository) Create(ctx context.Context, owner *entity.OwnerProfile) error {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpInsert, "owner_profiles")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Create(owner)
	if result.Error != nil {
		metrics.RecordDbError("club-service", metrics.DbOpInsert)
	}
	return result.Error
}

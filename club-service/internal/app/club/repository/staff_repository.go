package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bowlingapp/club-service/internal/app/club/entity"
	"bowlingapp/pkg/metrics"
)

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository создает новый репозиторий закреплений персонала
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

// FindActiveClubIDs возвращает клубы, где пользователь закреплён активно
func (r *staffRepository) FindActiveClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpSelect, "club_staff")
	defer timer.ObserveDuration()

	var ids []int64
	result := r.db.WithContext(ctx).
		Model(&entity.ClubStaff{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("club_id").
		Pluck("club_id", &ids)

	if result.Error != nil {
		metrics.RecordDbError("club-service", metrics.DbOpSelect)
		return nil, result.Error
	}

	return ids, nil
}

// HasAssignments сообщает, есть ли у пользователя строки закрепления
// независимо от их активности
func (r *staffRepository) HasAssignments(ctx context.Context, userID int64) (bool, error) {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpSelect, "club_staff")
	defer timer.ObserveDuration()

	var count int64
	result := r.db.WithContext(ctx).
		Model(&entity.ClubStaff{}).
		Where("user_id = ?", userID).
		Count(&count)

	if result.Error != nil {
		metrics.RecordDbError("club-service", metrics.DbOpSelect)
		return false, result.Error
	}

	return count > 0, nil
}

// FindByClubAndUser находит закрепление пользователя за клубом
func (r *staffRepository) FindByClubAndUser(ctx context.Context, clubID, userID int64) (*entity.ClubStaff, error) {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpSelect, "club_staff")
	defer timer.ObserveDuration()

	var staff entity.ClubStaff
	result := r.db.WithContext(ctx).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Order("staff_id").
		First(&staff)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		metrics.RecordDbError("club-service", metrics.DbOpSelect)
		return nil, result.Error
	}

	return &staff, nil
}

// Save создает или обновляет закрепление
func (r *staffRepository) Save(ctx context.Context, staff *entity.ClubStaff) error {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpInsert, "club_staff")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Save(staff)
	if result.Error != nil {
		metrics.RecordDbError("club-service", metrics.DbOpInsert)
	}
	return result.Error
}

// SetActive переключает активность закрепления, строка не удаляется
func (r *staffRepository) SetActive(ctx context.Context, staffID int64, isActive bool) error {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpUpdate, "club_staff")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).
		Model(&entity.ClubStaff{}).
		Where("staff_id = ?", staffID).
		Update("is_active", isActive)

	if result.Error != nil {
		metrics.RecordDbError("club-service", metrics.DbOpUpdate)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

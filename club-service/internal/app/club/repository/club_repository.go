package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bowlingapp/club-service/internal/app/club/entity"
	"bowlingapp/pkg/metrics"
)

type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository создает новый репозиторий клубов
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

// Create создает новый клуб
func (r *clubRepository) Create(ctx context.Context, club *entity.BowlingClub) error {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpInsert, "bowling_clubs")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Create(club)
	if result.Error != nil {
		metrics.RecordDbError("club-service", metrics.DbOpInsert)
	}
	return result.Error
}

// GetByID получает клуб по ID
func (r *clubRepository) GetByID(ctx context.Context, clubID int64) (*entity.BowlingClub, error) {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpSelect, "bowling_clubs")
	defer timer.ObserveDuration()

	var club entity.BowlingClub
	result := r.db.WithContext(ctx).First(&club, "club_id = ?", clubID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		metrics.RecordDbError("club-service", metrics.DbOpSelect)
		return nil, result.Error
	}

	return &club, nil
}

// GetAll получает все клубы
func (r *clubRepository) GetAll(ctx context.Context) ([]entity.BowlingClub, error) {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpSelect, "bowling_clubs")
	defer timer.ObserveDuration()

	var clubs []entity.BowlingClub
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&clubs)

	if result.Error != nil {
		metrics.RecordDbError("club-service", metrics.DbOpSelect)
		return nil, result.Error
	}

	return clubs, nil
}

// AllClubIDs возвращает идентификаторы всех клубов одним узким запросом
func (r *clubRepository) AllClubIDs(ctx context.Context) ([]int64, error) {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpSelect, "bowling_clubs")
	defer timer.ObserveDuration()

	var ids []int64
	result := r.db.WithContext(ctx).
		Model(&entity.BowlingClub{}).
		Order("club_id").
		Pluck("club_id", &ids)

	if result.Error != nil {
		metrics.RecordDbError("club-service", metrics.DbOpSelect)
		return nil, result.Error
	}

	return ids, nil
}

// FindOwnedClubIDs возвращает клубы, владелец которых - данный пользователь.
// Связь идёт через owner_profiles, запрос отдаёт только идентификаторы.
func (r *clubRepository) FindOwnedClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpSelect, "bowling_clubs")
	defer timer.ObserveDuration()

	var ids []int64
	result := r.db.WithContext(ctx).
		Model(&entity.BowlingClub{}).
		Joins("JOIN owner_profiles ON owner_profiles.owner_id = bowling_clubs.owner_id").
		Where("owner_profiles.user_id = ?", userID).
		Order("bowling_clubs.club_id").
		Pluck("bowling_clubs.club_id", &ids)

	if result.Error != nil {
		metrics.RecordDbError("club-service", metrics.DbOpSelect)
		return nil, result.Error
	}

	return ids, nil
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bowlingapp/club-service/internal/app/club/entity"
	"bowlingapp/pkg/metrics"
)

type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository создает новый репозиторий приглашений
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

// Create создает новое приглашение
func (r *invitationRepository) Create(ctx context.Context, invitation *entity.ClubInvitation) error {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpInsert, "club_invitations")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Create(invitation)
	if result.Error != nil {
		metrics.RecordDbError("club-service", metrics.DbOpInsert)
	}
	return result.Error
}

// GetByID получает приглашение по ID.
// Статус из базы проходит через ParseInvitationStatus: неизвестное
// значение - ошибка данных, а не молчаливое несовпадение.
func (r *invitationRepository) GetByID(ctx context.Context, invitationID int64) (*entity.ClubInvitation, error) {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpSelect, "club_invitations")
	defer timer.ObserveDuration()

	var invitation entity.ClubInvitation
	result := r.db.WithContext(ctx).First(&invitation, "invitation_id = ?", invitationID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		metrics.RecordDbError("club-service", metrics.DbOpSelect)
		return nil, result.Error
	}

	if _, err := entity.ParseInvitationStatus(string(invitation.Status)); err != nil {
		return nil, err
	}

	return &invitation, nil
}

// UpdateStatus переводит приглашение в новый статус
func (r *invitationRepository) UpdateStatus(ctx context.Context, invitationID int64, status entity.InvitationStatus) error {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpUpdate, "club_invitations")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).
		Model(&entity.ClubInvitation{}).
		Where("invitation_id = ?", invitationID).
		Update("status", status)

	if result.Error != nil {
		metrics.RecordDbError("club-service", metrics.DbOpUpdate)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrInvitationNotFound
	}

	return nil
}

// FindClubIDsByMechanicAndStatus возвращает клубы из приглашений пользователя
// с данным статусом одним узким запросом
func (r *invitationRepository) FindClubIDsByMechanicAndStatus(ctx context.Context, userID int64, status entity.InvitationStatus) ([]int64, error) {
	timer := metrics.NewDbTimer("club-service", metrics.DbOpSelect, "club_invitations")
	defer timer.ObserveDuration()

	var ids []int64
	result := r.db.WithContext(ctx).
		Model(&entity.ClubInvitation{}).
		Where("mechanic_id = ? AND status = ?", userID, status).
		Order("club_id").
		Pluck("club_id", &ids)

	if result.Error != nil {
		metrics.RecordDbError("club-service", metrics.DbOpSelect)
		return nil, result.Error
	}

	return ids, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bowlingapp/club-service/internal/app/club/entity"
	"bowlingapp/club-service/internal/app/club/repository"
)

// InvitationService обрабатывает жизненный цикл приглашений:
// PENDING -> ACCEPTED | REJECTED. Принятие приглашения закрепляет
// механика за клубом.
type InvitationService struct {
	invitationRepo repository.InvitationRepository
	clubRepo       repository.ClubRepository
	staffRepo      repository.StaffRepository
}

// NewInvitationService создает новый сервис приглашений
func NewInvitationService(
	invitationRepo repository.InvitationRepository,
	clubRepo repository.ClubRepository,
	staffRepo repository.StaffRepository,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		clubRepo:       clubRepo,
		staffRepo:      staffRepo,
	}
}

// InviteMechanic создает приглашение механику в клуб со статусом PENDING
func (s *InvitationService) InviteMechanic(ctx context.Context, clubID, mechanicID int64) (*entity.ClubInvitation, error) {
	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, repository.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to verify club: %w", err)
	}

	now := time.Now()
	invitation := &entity.ClubInvitation{
		ClubID:     clubID,
		MechanicID: mechanicID,
		Status:     entity.InvitationPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return invitation, nil
}

// AcceptInvitation принимает приглашение и закрепляет механика за клубом.
// Принять можно только приглашение в статусе PENDING.
func (s *InvitationService) AcceptInvitation(ctx context.Context, invitationID int64) error {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return ErrInvitationNotFound
		}
		return fmt.Errorf("failed to get invitation: %w", err)
	}

	if invitation.Status != entity.InvitationPending {
		return ErrInvitationNotPending
	}

	if err := s.invitationRepo.UpdateStatus(ctx, invitationID, entity.InvitationAccepted); err != nil {
		return fmt.Errorf("failed to accept invitation: %w", err)
	}

	return s.activateMechanicInClub(ctx, invitation.ClubID, invitation.MechanicID)
}

// RejectInvitation отклоняет приглашение
func (s *InvitationService) RejectInvitation(ctx context.Context, invitationID int64) error {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return ErrInvitationNotFound
		}
		return fmt.Errorf("failed to get invitation: %w", err)
	}

	if invitation.Status != entity.InvitationPending {
		return ErrInvitationNotPending
	}

	if err := s.invitationRepo.UpdateStatus(ctx, invitationID, entity.InvitationRejected); err != nil {
		return fmt.Errorf("failed to reject invitation: %w", err)
	}

	return nil
}

// activateMechanicInClub создает или реактивирует закрепление механика
func (s *InvitationService) activateMechanicInClub(ctx context.Context, clubID, mechanicID int64) error {
	staff, err := s.staffRepo.FindByClubAndUser(ctx, clubID, mechanicID)
	if err != nil {
		if !errors.Is(err, repository.ErrStaffNotFound) {
			return fmt.Errorf("failed to get staff assignment: %w", err)
		}
		staff = &entity.ClubStaff{
			ClubID:     clubID,
			UserID:     mechanicID,
			Role:       entity.RoleMechanic,
			AssignedAt: time.Now(),
		}
	}

	staff.IsActive = true

	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return fmt.Errorf("failed to save staff assignment: %w", err)
	}

	return nil
}

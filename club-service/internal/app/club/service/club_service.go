package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bowlingapp/club-service/internal/app/club/entity"
	"bowlingapp/club-service/internal/app/club/repository"
)

// ClubService обрабатывает бизнес-логику реестра клубов и персонала
type ClubService struct {
	clubRepo  repository.ClubRepository
	ownerRepo repository.OwnerRepository
	staffRepo repository.StaffRepository
}

// NewClubService создает новый сервис реестра клубов
func NewClubService(
	clubRepo repository.ClubRepository,
	ownerRepo repository.OwnerRepository,
	staffRepo repository.StaffRepository,
) *ClubService {
	return &ClubService{
		clubRepo:  clubRepo,
		ownerRepo: ownerRepo,
		staffRepo: staffRepo,
	}
}

// CreateClub регистрирует клуб за владельцем. Профиль владельца
// создается при первом клубе.
func (s *ClubService) CreateClub(ctx context.Context, ownerUserID int64, req *entity.CreateClubRequest) (*entity.BowlingClub, error) {
	owner, err := s.ownerRepo.GetByUserID(ctx, ownerUserID)
	if err != nil {
		if !errors.Is(err, repository.ErrOwnerNotFound) {
			return nil, fmt.Errorf("failed to get owner profile: %w", err)
		}
		owner = &entity.OwnerProfile{UserID: ownerUserID, CreatedAt: time.Now()}
		if err := s.ownerRepo.Create(ctx, owner); err != nil {
			return nil, fmt.Errorf("failed to create owner profile: %w", err)
		}
	}

	now := time.Now()
	club := &entity.BowlingClub{
		OwnerID:      &owner.OwnerID,
		Name:         req.Name,
		Address:      req.Address,
		LanesCount:   req.LanesCount,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.clubRepo.Create(ctx, club); err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}

	return club, nil
}

// GetClub получает клуб по ID
func (s *ClubService) GetClub(ctx context.Context, clubID int64) (*entity.BowlingClub, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repository.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}

	return club, nil
}

// GetAllClubs получает все клубы
func (s *ClubService) GetAllClubs(ctx context.Context) ([]entity.BowlingClub, error) {
	clubs, err := s.clubRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get clubs: %w", err)
	}

	return clubs, nil
}

// AssignStaff закрепляет пользователя за клубом. Существующее закрепление
// реактивируется, новое создается активным.
func (s *ClubService) AssignStaff(ctx context.Context, clubID int64, req *entity.AssignStaffRequest) (*entity.ClubStaff, error) {
	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, repository.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to verify club: %w", err)
	}

	staff, err := s.staffRepo.FindByClubAndUser(ctx, clubID, req.UserID)
	if err != nil {
		if !errors.Is(err, repository.ErrStaffNotFound) {
			return nil, fmt.Errorf("failed to get staff assignment: %w", err)
		}
		staff = &entity.ClubStaff{
			ClubID:     clubID,
			UserID:     req.UserID,
			AssignedAt: time.Now(),
		}
	}

	if req.Role != "" {
		staff.Role = req.Role
	}
	staff.IsActive = true

	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to save staff assignment: %w", err)
	}

	return staff, nil
}

// SetStaffActive переключает активность закрепления
func (s *ClubService) SetStaffActive(ctx context.Context, staffID int64, isActive bool) error {
	if err := s.staffRepo.SetActive(ctx, staffID, isActive); err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("failed to update staff assignment: %w", err)
	}

	return nil
}

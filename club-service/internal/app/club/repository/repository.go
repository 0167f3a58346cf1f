package repository

import (
	"context"
	"errors"

	"bowlingapp/club-service/internal/app/club/entity"
)

var (
	ErrClubNotFound       = errors.New("club not found")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrStaffNotFound      = errors.New("staff assignment not found")
	ErrOwnerNotFound      = errors.New("owner profile not found")
)

type ClubRepository interface {
	Create(ctx context.Context, club *entity.BowlingClub) error
	GetByID(ctx context.Context, clubID int64) (*entity.BowlingClub, error)
	GetAll(ctx context.Context) ([]entity.BowlingClub, error)
	// AllClubIDs возвращает идентификаторы всех клубов (ветка глобального админа)
	AllClubIDs(ctx context.Context) ([]int64, error)
	// FindOwnedClubIDs возвращает клубы, связанные с пользователем через владение
	FindOwnedClubIDs(ctx context.Context, userID int64) ([]int64, error)
}

type OwnerRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*entity.OwnerProfile, error)
	Create(ctx context.Context, owner *entity.OwnerProfile) error
}

type StaffRepository interface {
	// FindActiveClubIDs возвращает клубы по строкам с isActive = true;
	// неактивные закрепления исключаются целиком
	FindActiveClubIDs(ctx context.Context, userID int64) ([]int64, error)
	// HasAssignments сообщает, есть ли у пользователя хоть одна строка
	// закрепления, активная или нет (критерий "свободного" механика)
	HasAssignments(ctx context.Context, userID int64) (bool, error)
	FindByClubAndUser(ctx context.Context, clubID, userID int64) (*entity.ClubStaff, error)
	Save(ctx context.Context, staff *entity.ClubStaff) error
	SetActive(ctx context.Context, staffID int64, isActive bool) error
}

type InvitationRepository interface {
	Create(ctx context.Context, invitation *entity.ClubInvitation) error
	GetByID(ctx context.Context, invitationID int64) (*entity.ClubInvitation, error)
	UpdateStatus(ctx context.Context, invitationID int64, status entity.InvitationStatus) error
	// FindClubIDsByMechanicAndStatus возвращает клубы из приглашений
	// пользователя с данным статусом
	FindClubIDsByMechanicAndStatus(ctx context.Context, userID int64, status entity.InvitationStatus) ([]int64, error)
}

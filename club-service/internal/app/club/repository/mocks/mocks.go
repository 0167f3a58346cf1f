package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bowlingapp/club-service/internal/app/club/entity"
)

// MockClubRepository мок для ClubRepository
type MockClubRepository struct {
	mock.Mock
}

func (m *MockClubRepository) Create(ctx context.Context, club *entity.BowlingClub) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}

func (m *MockClubRepository) GetByID(ctx context.Context, clubID int64) (*entity.BowlingClub, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BowlingClub), args.Error(1)
}

func (m *MockClubRepository) GetAll(ctx context.Context) ([]entity.BowlingClub, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.BowlingClub), args.Error(1)
}

func (m *MockClubRepository) AllClubIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockClubRepository) FindOwnedClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockOwnerRepository мок для OwnerRepository
type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) GetByUserID(ctx context.Context, userID int64) (*entity.OwnerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OwnerProfile), args.Error(1)
}

func (m *MockOwnerRepository) Create(ctx context.Context, owner *entity.OwnerProfile) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

// MockStaffRepository мок для StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) FindActiveClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockStaffRepository) HasAssignments(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStaffRepository) FindByClubAndUser(ctx context.Context, clubID, userID int64) (*entity.ClubStaff, error) {
	args := m.Called(ctx, clubID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ClubStaff), args.Error(1)
}

func (m *MockStaffRepository) Save(ctx context.Context, staff *entity.ClubStaff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) SetActive(ctx context.Context, staffID int64, isActive bool) error {
	args := m.Called(ctx, staffID, isActive)
	return args.Error(0)
}

// MockInvitationRepository мок для InvitationRepository
type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *entity.ClubInvitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitationRepository) GetByID(ctx context.Context, invitationID int64) (*entity.ClubInvitation, error) {
	args := m.Called(ctx, invitationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ClubInvitation), args.Error(1)
}

func (m *MockInvitationRepository) UpdateStatus(ctx context.Context, invitationID int64, status entity.InvitationStatus) error {
	args := m.Called(ctx, invitationID, status)
	return args.Error(0)
}

func (m *MockInvitationRepository) FindClubIDsByMechanicAndStatus(ctx context.Context, userID int64, status entity.InvitationStatus) ([]int64, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

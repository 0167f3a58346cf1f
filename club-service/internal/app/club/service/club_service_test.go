package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bowlingapp/club-service/internal/app/club/entity"
	"bowlingapp/club-service/internal/app/club/repository"
	"bowlingapp/club-service/internal/app/club/repository/mocks"
)

func newClubFixture() (*ClubService, *mocks.MockClubRepository, *mocks.MockOwnerRepository, *mocks.MockStaffRepository) {
	clubRepo := new(mocks.MockClubRepository)
	ownerRepo := new(mocks.MockOwnerRepository)
	staffRepo := new(mocks.MockStaffRepository)
	svc := NewClubService(clubRepo, ownerRepo, staffRepo)
	return svc, clubRepo, ownerRepo, staffRepo
}

// ==================== CreateClub Tests ====================

func TestClubService_CreateClub_ExistingOwner(t *testing.T) {
	// Arrange
	svc, clubRepo, ownerRepo, _ := newClubFixture()
	lanes := 12
	ownerRepo.On("GetByUserID", mock.Anything, int64(10)).Return(&entity.OwnerProfile{
		OwnerID: 3,
		UserID:  10,
	}, nil)
	clubRepo.On("Create", mock.Anything, mock.MatchedBy(func(club *entity.BowlingClub) bool {
		return club.OwnerID != nil && *club.OwnerID == 3 && club.Name == "Strike Zone" && club.IsActive
	})).Return(nil)

	// Act
	club, err := svc.CreateClub(context.Background(), 10, &entity.CreateClubRequest{
		Name:       "Strike Zone",
		Address:    "ул. Ленина, 1",
		LanesCount: &lanes,
	})

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, club)
	ownerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	clubRepo.AssertExpectations(t)
}

func TestClubService_CreateClub_FirstClubCreatesOwnerProfile(t *testing.T) {
	// Arrange: профиля владельца еще нет
	svc, clubRepo, ownerRepo, _ := newClubFixture()
	ownerRepo.On("GetByUserID", mock.Anything, int64(10)).Return(nil, repository.ErrOwnerNotFound)
	ownerRepo.On("Create", mock.Anything, mock.MatchedBy(func(owner *entity.OwnerProfile) bool {
		return owner.UserID == 10
	})).Return(nil)
	clubRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	// Act
	club, err := svc.CreateClub(context.Background(), 10, &entity.CreateClubRequest{Name: "Strike Zone"})

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, club)
	ownerRepo.AssertExpectations(t)
}

// ==================== GetClub Tests ====================

func TestClubService_GetClub_Success(t *testing.T) {
	// Arrange
	svc, clubRepo, _, _ := newClubFixture()
	clubRepo.On("GetByID", mock.Anything, int64(1)).Return(&entity.BowlingClub{
		ClubID: 1,
		Name:   "Strike Zone",
	}, nil)

	// Act
	club, err := svc.GetClub(context.Background(), 1)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Strike Zone", club.Name)
}

func TestClubService_GetClub_NotFound(t *testing.T) {
	// Arrange
	svc, clubRepo, _, _ := newClubFixture()
	clubRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrClubNotFound)

	// Act
	club, err := svc.GetClub(context.Background(), 99)

	// Assert
	assert.ErrorIs(t, err, ErrClubNotFound)
	assert.Nil(t, club)
}

// ==================== AssignStaff Tests ====================

func TestClubService_AssignStaff_NewAssignment(t *testing.T) {
	// Arrange
	svc, clubRepo, _, staffRepo := newClubFixture()
	clubRepo.On("GetByID", mock.Anything, int64(1)).Return(&entity.BowlingClub{ClubID: 1}, nil)
	staffRepo.On("FindByClubAndUser", mock.Anything, int64(1), int64(20)).Return(nil, repository.ErrStaffNotFound)
	staffRepo.On("Save", mock.Anything, mock.MatchedBy(func(staff *entity.ClubStaff) bool {
		return staff.ClubID == 1 && staff.UserID == 20 && staff.Role == entity.RoleManager && staff.IsActive
	})).Return(nil)

	// Act
	staff, err := svc.AssignStaff(context.Background(), 1, &entity.AssignStaffRequest{
		UserID: 20,
		Role:   entity.RoleManager,
	})

	// Assert
	assert.NoError(t, err)
	assert.True(t, staff.IsActive)
	staffRepo.AssertExpectations(t)
}

func TestClubService_AssignStaff_ReactivatesExisting(t *testing.T) {
	// Arrange: роль не передана, прежняя сохраняется
	svc, clubRepo, _, staffRepo := newClubFixture()
	clubRepo.On("GetByID", mock.Anything, int64(1)).Return(&entity.BowlingClub{ClubID: 1}, nil)
	staffRepo.On("FindByClubAndUser", mock.Anything, int64(1), int64(20)).Return(&entity.ClubStaff{
		StaffID:  7,
		ClubID:   1,
		UserID:   20,
		Role:     entity.RoleMechanic,
		IsActive: false,
	}, nil)
	staffRepo.On("Save", mock.Anything, mock.MatchedBy(func(staff *entity.ClubStaff) bool {
		return staff.StaffID == 7 && staff.IsActive && staff.Role == entity.RoleMechanic
	})).Return(nil)

	// Act
	staff, err := svc.AssignStaff(context.Background(), 1, &entity.AssignStaffRequest{UserID: 20})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, entity.RoleMechanic, staff.Role)
	staffRepo.AssertExpectations(t)
}

func TestClubService_AssignStaff_ClubNotFound(t *testing.T) {
	// Arrange
	svc, clubRepo, _, staffRepo := newClubFixture()
	clubRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrClubNotFound)

	// Act
	staff, err := svc.AssignStaff(context.Background(), 99, &entity.AssignStaffRequest{UserID: 20})

	// Assert
	assert.ErrorIs(t, err, ErrClubNotFound)
	assert.Nil(t, staff)
	staffRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// ==================== SetStaffActive Tests ====================

func TestClubService_SetStaffActive_Success(t *testing.T) {
	// Arrange
	svc, _, _, staffRepo := newClubFixture()
	staffRepo.On("SetActive", mock.Anything, int64(7), false).Return(nil)

	// Act
	err := svc.SetStaffActive(context.Background(), 7, false)

	// Assert
	assert.NoError(t, err)
	staffRepo.AssertExpectations(t)
}

func TestClubService_SetStaffActive_NotFound(t *testing.T) {
	// Arrange
	svc, _, _, staffRepo := newClubFixture()
	staffRepo.On("SetActive", mock.Anything, int64(404), true).Return(repository.ErrStaffNotFound)

	// Act
	err := svc.SetStaffActive(context.Background(), 404, true)

	// Assert
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

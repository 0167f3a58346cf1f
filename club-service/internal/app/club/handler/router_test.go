package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bowlingapp/club-service/internal/app/club/entity"
	"bowlingapp/club-service/internal/app/club/repository"
	"bowlingapp/club-service/internal/app/club/repository/mocks"
)

// Хелпер собирает полный роутер поверх моков репозиториев,
// чтобы проверять ролевые ограничения маршрутов целиком
func setupTestRouter() (*gin.Engine, *mocks.MockClubRepository, *mocks.MockStaffRepository, *mocks.MockInvitationRepository) {
	handler, clubRepo, _, staffRepo, invitationRepo := setupTestHandler()
	middleware := NewAuthMiddleware(testJWTSecret)
	router := SetupRoutes(handler, middleware)
	return router, clubRepo, staffRepo, invitationRepo
}

func doRouterRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ==================== Invitation Route Authorization Tests ====================

func TestRouter_InviteMechanic_OwnerAllowed(t *testing.T) {
	// Arrange
	router, clubRepo, _, invitationRepo := setupTestRouter()
	clubRepo.On("GetByID", mock.Anything, int64(1)).Return(&entity.BowlingClub{ClubID: 1}, nil)
	invitationRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.ClubInvitation")).Return(nil)

	token := signTestToken(t, "10", "+79001234567", entity.RoleClubOwner, time.Minute)

	// Act
	w := doRouterRequest(router, http.MethodPost, "/invitations", token,
		entity.InviteMechanicRequest{ClubID: 1, MechanicID: 20})

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)
	invitationRepo.AssertExpectations(t)
}

func TestRouter_InviteMechanic_MechanicForbidden(t *testing.T) {
	// Arrange - приглашать может только владелец или администратор
	router, _, _, invitationRepo := setupTestRouter()

	token := signTestToken(t, "20", "+79001234567", entity.RoleMechanic, time.Minute)

	// Act
	w := doRouterRequest(router, http.MethodPost, "/invitations", token,
		entity.InviteMechanicRequest{ClubID: 1, MechanicID: 20})

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
	invitationRepo.AssertNotCalled(t, "Create")
}

func TestRouter_AcceptInvitation_MechanicAllowed(t *testing.T) {
	// Arrange
	router, _, staffRepo, invitationRepo := setupTestRouter()
	invitationRepo.On("GetByID", mock.Anything, int64(5)).Return(&entity.ClubInvitation{
		InvitationID: 5,
		ClubID:       1,
		MechanicID:   20,
		Status:       entity.InvitationPending,
	}, nil)
	invitationRepo.On("UpdateStatus", mock.Anything, int64(5), entity.InvitationAccepted).Return(nil)
	staffRepo.On("FindByClubAndUser", mock.Anything, int64(1), int64(20)).
		Return(nil, repository.ErrStaffNotFound)
	staffRepo.On("Save", mock.Anything, mock.AnythingOfType("*entity.ClubStaff")).Return(nil)

	token := signTestToken(t, "20", "+79001234567", entity.RoleMechanic, time.Minute)

	// Act
	w := doRouterRequest(router, http.MethodPost, "/invitations/5/accept", token, nil)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	invitationRepo.AssertExpectations(t)
	staffRepo.AssertExpectations(t)
}

func TestRouter_AcceptInvitation_OwnerForbidden(t *testing.T) {
	// Arrange - принимать приглашение может только механик
	router, _, _, invitationRepo := setupTestRouter()

	token := signTestToken(t, "10", "+79001234567", entity.RoleClubOwner, time.Minute)

	// Act
	w := doRouterRequest(router, http.MethodPost, "/invitations/5/accept", token, nil)

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
	invitationRepo.AssertNotCalled(t, "GetByID")
}

func TestRouter_RejectInvitation_OwnerForbidden(t *testing.T) {
	// Arrange
	router, _, _, invitationRepo := setupTestRouter()

	token := signTestToken(t, "10", "+79001234567", entity.RoleClubOwner, time.Minute)

	// Act
	w := doRouterRequest(router, http.MethodPost, "/invitations/5/reject", token, nil)

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
	invitationRepo.AssertNotCalled(t, "GetByID")
}

func TestRouter_AcceptInvitation_WithoutTokenUnauthorized(t *testing.T) {
	// Arrange
	router, _, _, invitationRepo := setupTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/invitations/5/accept", nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusUnauthorized, w.Code)
	invitationRepo.AssertNotCalled(t, "GetByID")
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bowlingapp/audit-service/internal/app/audit/entity"
	"bowlingapp/audit-service/internal/app/audit/repository/mocks"
	"bowlingapp/audit-service/internal/app/audit/service"
)

const testJWTSecret = "test-secret-key"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter() (*gin.Engine, *mocks.MockEventRepository) {
	eventRepo := new(mocks.MockEventRepository)
	auditService := service.NewAuditService(eventRepo)
	auditHandler := NewAuditHandler(auditService)
	router := SetupRoutes(auditHandler, testJWTSecret)
	return router, eventRepo
}

func signTestToken(t *testing.T, role string) string {
	t.Helper()

	claims := JWTClaims{
		UserID: "1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "+79001234567",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

// ==================== GetUserEvents Tests ====================

func TestAuditHandler_GetUserEvents_Success(t *testing.T) {
	// Arrange
	router, eventRepo := setupTestRouter()
	eventRepo.On("FindByUser", mock.Anything, int64(42), int64(50)).Return([]entity.SecurityEvent{
		{EventType: entity.EventReuseDetected, UserID: 42},
		{EventType: entity.EventLogin, UserID: 42},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit/users/42/events", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "ADMIN"))

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.UserEventsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(42), response.UserID)
	assert.Equal(t, 2, response.Total)
	assert.Equal(t, entity.EventReuseDetected, response.Events[0].EventType)
}

func TestAuditHandler_GetUserEvents_CustomLimit(t *testing.T) {
	// Arrange
	router, eventRepo := setupTestRouter()
	eventRepo.On("FindByUser", mock.Anything, int64(42), int64(5)).Return([]entity.SecurityEvent{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit/users/42/events?limit=5", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "ADMIN"))

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	eventRepo.AssertExpectations(t)
}

func TestAuditHandler_GetUserEvents_InvalidUserID(t *testing.T) {
	// Arrange
	router, _ := setupTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit/users/abc/events", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "ADMIN"))

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditHandler_GetUserEvents_NonAdminForbidden(t *testing.T) {
	// Arrange
	router, eventRepo := setupTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit/users/42/events", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "CLUB_OWNER"))

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
	eventRepo.AssertNotCalled(t, "FindByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuditHandler_GetUserEvents_WithoutTokenUnauthorized(t *testing.T) {
	// Arrange
	router, _ := setupTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit/users/42/events", nil)

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ==================== Health Tests ====================

func TestHealthEndpoint(t *testing.T) {
	// Arrange
	router, _ := setupTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "audit-service")
}

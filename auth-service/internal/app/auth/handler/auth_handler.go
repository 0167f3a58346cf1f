package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bowlingapp/auth-service/internal/app/auth/entity"
	"bowlingapp/auth-service/internal/app/auth/service"
	"bowlingapp/pkg/metrics"
)

type AuthHandler struct {
	authService service.AuthServiceInterface
}

func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login выполняет вход по телефону и паролю
func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserDisabled):
			metrics.AuthLogins.WithLabelValues("failed").Inc()
			// Отключённый аккаунт наружу неотличим от неверных данных
			c.JSON(http.StatusUnauthorized, entity.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid phone or password",
			})
		default:
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to login",
			})
		}
		return
	}

	metrics.AuthLogins.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, resp)
}

// Refresh обменивает refresh токен на новую пару токенов
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req entity.RefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshTokenUnknown),
			errors.Is(err, service.ErrRefreshTokenExpired),
			errors.Is(err, service.ErrRefreshTokenReused):
			// Во всех трёх случаях клиенту нужно залогиниться заново;
			// причина отказа не детализируется
			c.JSON(http.StatusUnauthorized, entity.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid or expired refresh token",
			})
		default:
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to refresh tokens",
			})
		}
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Logout отзывает предъявленный access токен и все refresh токены
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Authorization header required",
		})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), parts[1]); err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to logout",
		})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Logged out"})
}

// Me возвращает Principal текущего запроса
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Authentication required",
		})
		return
	}

	c.JSON(http.StatusOK, entity.MeResponse{
		UserID:      principal.UserID,
		Phone:       principal.Phone,
		Role:        principal.Role,
		Authorities: principal.AuthorityList(),
	})
}

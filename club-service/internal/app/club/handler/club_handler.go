package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"bowlingapp/club-service/internal/app/club/entity"
	"bowlingapp/club-service/internal/app/club/service"
	"bowlingapp/pkg/logger"
)

// ClubHandler обрабатывает HTTP запросы реестра клубов и области видимости
type ClubHandler struct {
	clubService       service.ClubServiceInterface
	accessService     service.AccessServiceInterface
	invitationService service.InvitationServiceInterface
	validate          *validator.Validate
}

// NewClubHandler создает новый обработчик
func NewClubHandler(
	clubService service.ClubServiceInterface,
	accessService service.AccessServiceInterface,
	invitationService service.InvitationServiceInterface,
) *ClubHandler {
	return &ClubHandler{
		clubService:       clubService,
		accessService:     accessService,
		invitationService: invitationService,
		validate:          validator.New(),
	}
}

func callerIdentity(c *gin.Context) (int64, string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return 0, "", false
	}
	userID, ok := userIDVal.(int64)
	if !ok {
		return 0, "", false
	}
	role, _ := c.Get("role")
	roleStr, _ := role.(string)
	return userID, roleStr, true
}

// GetAccessibleClubs возвращает область видимости вызывающего пользователя
// GET /clubs/accessible
func (h *ClubHandler) GetAccessibleClubs(c *gin.Context) {
	userID, role, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Unauthorized"})
		return
	}

	clubIDs, err := h.accessService.ResolveAccessibleClubIDs(c.Request.Context(), userID, role)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("failed to resolve accessible clubs")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to resolve accessible clubs"})
		return
	}

	c.JSON(http.StatusOK, entity.AccessibleClubsResponse{
		ClubIDs: clubIDs,
		Total:   len(clubIDs),
	})
}

// CreateClub регистрирует клуб за вызывающим владельцем
// POST /clubs
func (h *ClubHandler) CreateClub(c *gin.Context) {
	userID, _, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req entity.CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body", Message: err.Error()})
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Validation failed", Message: err.Error()})
		return
	}

	club, err := h.clubService.CreateClub(c.Request.Context(), userID, &req)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create club")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to create club"})
		return
	}

	c.JSON(http.StatusCreated, club)
}

// GetAllClubs возвращает все клубы
// GET /clubs
func (h *ClubHandler) GetAllClubs(c *gin.Context) {
	clubs, err := h.clubService.GetAllClubs(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("failed to get clubs")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to get clubs"})
		return
	}

	c.JSON(http.StatusOK, entity.ClubListResponse{
		Clubs: clubs,
		Total: len(clubs),
	})
}

// GetClub возвращает клуб по ID, если он входит в область видимости
// GET /clubs/:id
func (h *ClubHandler) GetClub(c *gin.Context) {
	userID, role, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "Unauthorized"})
		return
	}

	clubID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || clubID <= 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid club ID"})
		return
	}

	hasAccess, err := h.accessService.HasClubAccess(c.Request.Context(), userID, role, clubID)
	if err != nil {
		logger.Error().Err(err).Int64("club_id", clubID).Msg("failed to check club access")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to check club access"})
		return
	}
	if !hasAccess {
		c.JSON(http.StatusForbidden, entity.ErrorResponse{Error: "Club is not accessible"})
		return
	}

	club, err := h.clubService.GetClub(c.Request.Context(), clubID)
	if err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Club not found"})
			return
		}
		logger.Error().Err(err).Int64("club_id", clubID).Msg("failed to get club")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to get club"})
		return
	}

	c.JSON(http.StatusOK, club)
}

// AssignStaff закрепляет сотрудника за клубом
// POST /clubs/:id/staff
func (h *ClubHandler) AssignStaff(c *gin.Context) {
	clubID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || clubID <= 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid club ID"})
		return
	}

	var req entity.AssignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body", Message: err.Error()})
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Validation failed", Message: err.Error()})
		return
	}

	staff, err := h.clubService.AssignStaff(c.Request.Context(), clubID, &req)
	if err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Club not found"})
			return
		}
		logger.Error().Err(err).Int64("club_id", clubID).Msg("failed to assign staff")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to assign staff"})
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// SetStaffActive включает или выключает закрепление сотрудника
// PATCH /staff/:id/active
func (h *ClubHandler) SetStaffActive(c *gin.Context) {
	staffID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || staffID <= 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid staff ID"})
		return
	}

	var req entity.SetStaffActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body", Message: err.Error()})
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Validation failed", Message: err.Error()})
		return
	}

	if err := h.clubService.SetStaffActive(c.Request.Context(), staffID, *req.IsActive); err != nil {
		if errors.Is(err, service.ErrStaffNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Staff assignment not found"})
			return
		}
		logger.Error().Err(err).Int64("staff_id", staffID).Msg("failed to update staff assignment")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to update staff assignment"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Staff assignment updated"})
}

// InviteMechanic приглашает механика в клуб
// POST /invitations
func (h *ClubHandler) InviteMechanic(c *gin.Context) {
	var req entity.InviteMechanicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body", Message: err.Error()})
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Validation failed", Message: err.Error()})
		return
	}

	invitation, err := h.invitationService.InviteMechanic(c.Request.Context(), req.ClubID, req.MechanicID)
	if err != nil {
		if errors.Is(err, service.ErrClubNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Club not found"})
			return
		}
		logger.Error().Err(err).Int64("club_id", req.ClubID).Msg("failed to create invitation")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to create invitation"})
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

// AcceptInvitation принимает приглашение
// POST /invitations/:id/accept
func (h *ClubHandler) AcceptInvitation(c *gin.Context) {
	h.resolveInvitation(c, h.invitationService.AcceptInvitation, "Invitation accepted")
}

// RejectInvitation отклоняет приглашение
// POST /invitations/:id/reject
func (h *ClubHandler) RejectInvitation(c *gin.Context) {
	h.resolveInvitation(c, h.invitationService.RejectInvitation, "Invitation rejected")
}

func (h *ClubHandler) resolveInvitation(c *gin.Context, resolve func(ctx context.Context, invitationID int64) error, successMessage string) {
	invitationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || invitationID <= 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid invitation ID"})
		return
	}

	if err := resolve(c.Request.Context(), invitationID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Invitation not found"})
		case errors.Is(err, service.ErrInvitationNotPending):
			c.JSON(http.StatusConflict, entity.ErrorResponse{Error: "Invitation is not pending"})
		default:
			logger.Error().Err(err).Int64("invitation_id", invitationID).Msg("failed to resolve invitation")
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to resolve invitation"})
		}
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: successMessage})
}

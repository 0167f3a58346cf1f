package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bowlingapp/audit-service/internal/app/audit/entity"
	"bowlingapp/audit-service/internal/app/audit/service"
	"bowlingapp/pkg/logger"
)

// AuditHandler обрабатывает запросы к следу аудита
type AuditHandler struct {
	auditService service.AuditServiceInterface
}

// NewAuditHandler создает новый обработчик аудита
func NewAuditHandler(auditService service.AuditServiceInterface) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// GetUserEvents возвращает последние события безопасности пользователя
// GET /audit/users/:id/events?limit=N
func (h *AuditHandler) GetUserEvents(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	events, err := h.auditService.GetUserEvents(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get user events")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to get user events"})
		return
	}

	c.JSON(http.StatusOK, entity.UserEventsResponse{
		UserID: userID,
		Events: events,
		Total:  len(events),
	})
}

package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bowlingapp/club-service/internal/app/club/entity"
	"bowlingapp/pkg/logger"
	"bowlingapp/pkg/metrics"
)

// SetupRoutes настраивает все маршруты сервиса клубов
func SetupRoutes(clubHandler *ClubHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("club-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "club-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	clubs := router.Group("/clubs")
	clubs.Use(authMiddleware.Authenticate())
	{
		clubs.GET("/accessible", clubHandler.GetAccessibleClubs)
		clubs.GET("", clubHandler.GetAllClubs)
		clubs.GET("/:id", clubHandler.GetClub)

		// Управление клубами и персоналом только для владельцев и администраторов
		manage := clubs.Group("")
		manage.Use(authMiddleware.RequireRole(entity.RoleClubOwner, entity.RoleAdmin))
		{
			manage.POST("", clubHandler.CreateClub)
			manage.POST("/:id/staff", clubHandler.AssignStaff)
		}
	}

	staff := router.Group("/staff")
	staff.Use(authMiddleware.Authenticate(), authMiddleware.RequireRole(entity.RoleClubOwner, entity.RoleAdmin))
	{
		staff.PATCH("/:id/active", clubHandler.SetStaffActive)
	}

	invitations := router.Group("/invitations")
	invitations.Use(authMiddleware.Authenticate())
	{
		// Приглашать может владелец клуба (или администратор),
		// принимать и отклонять - только приглашённый механик
		invitations.POST("",
			authMiddleware.RequireRole(entity.RoleClubOwner, entity.RoleAdmin),
			clubHandler.InviteMechanic)
		invitations.POST("/:id/accept",
			authMiddleware.RequireRole(entity.RoleMechanic),
			clubHandler.AcceptInvitation)
		invitations.POST("/:id/reject",
			authMiddleware.RequireRole(entity.RoleMechanic),
			clubHandler.RejectInvitation)
	}

	return router
}

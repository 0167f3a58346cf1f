package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bowlingapp/pkg/logger"
	"bowlingapp/pkg/metrics"
)

// SetupRoutes настраивает все маршруты сервиса аудита
func SetupRoutes(auditHandler *AuditHandler, jwtSecret string) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("audit-service"))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "audit-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	audit := router.Group("/audit")
	audit.Use(AdminOnly(jwtSecret))
	{
		audit.GET("/users/:id/events", auditHandler.GetUserEvents)
	}

	return router
}

package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты локального представления инцидентов
	incidents := api.Group("/incidents")
	{
		incidents.POST("", h.submitIncident)
		incidents.GET("", h.listIncidents)
		incidents.POST("/:id/vote", h.castVote)
		incidents.GET("/stats", h.getStats)
	}

	// Маршруты прогнозов и оповещений
	api.GET("/predictions", h.listPredictions)
	alerts := api.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.POST("/:id/dismiss", h.dismissAlert)
	}

	// Маршруты управления фоновой синхронизацией
	syncGroup := api.Group("/sync")
	{
		syncGroup.POST("/start", h.startSync)
		syncGroup.POST("/stop", h.stopSync)
		syncGroup.GET("/status", h.syncStatus)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}

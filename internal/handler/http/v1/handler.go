package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/config"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/service"
)

type Handler struct {
	incidentService service.IncidentService
	forecastService service.ForecastService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(incidentService service.IncidentService, forecastService service.ForecastService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		forecastService: forecastService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Submit a citizen incident report
// @Description Accept an incident report optimistically: it appears in the local view immediately and is queued for sync with the central server. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body SubmitIncidentRequest true "Incident submission request"
// @Success 202 {object} WriteAcceptedResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Duplicate submission"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) submitIncident(c *gin.Context) {
	var input SubmitIncidentRequest
	log := h.logger.WithField("method", "submitIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, queued, err := h.incidentService.SubmitIncident(c.Request.Context(), DTOToIncidentDraft(input))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateSubmission):
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate submission"})
		case errors.Is(err, service.ErrInvalidDraft):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.WithError(err).Error("Failed to submit incident in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusAccepted, WriteAcceptedResponse{
		Incident: ModelToIncidentResponse(incident),
		Queued:   queued,
	})
}

// @Summary Get the merged incident view
// @Description Get the local incident view: server snapshot merged with unconfirmed local writes, unresolved and severe incidents first. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	incidents := h.incidentService.GetIncidents(c.Request.Context())
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Cast a vote on an incident
// @Description Apply a citizen vote optimistically and queue it for sync. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param vote body CastVoteRequest true "Vote request"
// @Success 202 {object} WriteAcceptedResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/vote [post]
func (h *Handler) castVote(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "castVote").WithField("id", id)

	var input CastVoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, queued, err := h.incidentService.CastVote(c.Request.Context(), id, models.VoteType(input.VoteType), input.CitizenID, input.HasPhoto)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncidentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		case errors.Is(err, service.ErrInvalidVote):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vote type"})
		default:
			log.WithError(err).Error("Failed to cast vote in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusAccepted, WriteAcceptedResponse{
		Incident: ModelToIncidentResponse(incident),
		Queued:   queued,
	})
}

// @Summary Get incident statistics
// @Description Get incident counts per event type over the configured time window. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	counts, err := h.incidentService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, StatsToResponse(counts, h.cfg.StatsTimeWindowMinutes))
}

// @Summary Get hazard predictions
// @Description Get fresh hazard predictions per city zone, sorted by probability. Requires API key.
// @Tags Predictions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} PredictionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /predictions [get]
func (h *Handler) listPredictions(c *gin.Context) {
	c.JSON(http.StatusOK, ModelsToPredictionResponses(h.forecastService.Predictions()))
}

// @Summary Get active alerts
// @Description Get currently active alerts derived from predictions and severe incidents. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} AlertResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, ModelsToAlertResponses(h.forecastService.Alerts()))
}

// @Summary Dismiss an alert
// @Description Dismiss an active alert. The dismissal persists: the same threat does not resurface unless its severity band increases. Requires API key.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Alert not found"
// @Router /alerts/{id}/dismiss [post]
func (h *Handler) dismissAlert(c *gin.Context) {
	id := c.Param("id")
	if !h.forecastService.DismissAlert(c.Request.Context(), id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Start background sync
// @Description Start the periodic background sync loop. Idempotent: has no effect when sync is already running. Requires API key.
// @Tags Sync
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param options body StartSyncRequest false "Sync start options"
// @Success 200 {object} SyncStatusResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /sync/start [post]
func (h *Handler) startSync(c *gin.Context) {
	log := h.logger.WithField("method", "startSync")

	interval := h.cfg.SyncInterval
	if c.Request.ContentLength > 0 {
		var input StartSyncRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			log.WithError(err).Warn("Failed to bind JSON")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := h.validate.Struct(input); err != nil {
			log.WithError(err).Warn("Validation failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.IntervalSeconds > 0 {
			interval = time.Duration(input.IntervalSeconds) * time.Second
		}
	}

	h.incidentService.StartBackgroundSync(interval)
	c.JSON(http.StatusOK, StatusToResponse(h.incidentService.Status()))
}

// @Summary Stop background sync
// @Description Stop the periodic background sync loop. Pending writes stay queued. Requires API key.
// @Tags Sync
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SyncStatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /sync/stop [post]
func (h *Handler) stopSync(c *gin.Context) {
	h.incidentService.StopBackgroundSync()
	c.JSON(http.StatusOK, StatusToResponse(h.incidentService.Status()))
}

// @Summary Get sync status
// @Description Get the current background sync status: last cycle, pending writes, failed writes. Requires API key.
// @Tags Sync
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SyncStatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /sync/status [get]
func (h *Handler) syncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusToResponse(h.incidentService.Status()))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/config"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/handler/http/v1/mocks"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/service"
)

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*mocks.MockIncidentService, *mocks.MockForecastService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	incidentMock := mocks.NewMockIncidentService(ctrl)
	forecastMock := mocks.NewMockForecastService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:                []string{"test-api-key"},
		StatsTimeWindowMinutes: 60,
		SyncInterval:           30 * time.Second,
	}

	handler := NewHandler(incidentMock, forecastMock, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return incidentMock, forecastMock, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func pendingIncident(id string) *models.Incident {
	return &models.Incident{
		ID:           id,
		EventType:    models.EventTraffic,
		Description:  "Затор на перекрёстке",
		Latitude:     22.31,
		Longitude:    73.18,
		Severity:     0.5,
		RadiusMeters: 300,
		Status:       models.StatusPending,
		Source:       models.SourceCitizenReport,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestSubmitIncident_Accepted(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)
	reqBody := SubmitIncidentRequest{
		EventType:   "traffic",
		Description: "Затор на перекрёстке",
		Latitude:    22.31,
		Longitude:   73.18,
		Severity:    0.5,
	}
	expected := pendingIncident("local-abc123")

	incidentMock.EXPECT().
		SubmitIncident(gomock.Any(), gomock.Any()).
		Return(expected, true, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp WriteAcceptedResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Queued)
	assert.Equal(t, "local-abc123", resp.Incident.ID)
	assert.True(t, resp.Incident.PendingSync)
}

func TestSubmitIncident_InvalidJSON(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)

	incidentMock.EXPECT().SubmitIncident(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBufferString(`{"event_type": "traffic"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestSubmitIncident_ValidationError(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)
	reqBody := SubmitIncidentRequest{ // Неизвестный тип события
		EventType: "earthquake",
		Latitude:  22.31,
		Longitude: 73.18,
	}

	incidentMock.EXPECT().SubmitIncident(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'EventType' failed on the 'oneof' tag")
}

func TestSubmitIncident_Duplicate(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)
	reqBody := SubmitIncidentRequest{
		EventType:   "traffic",
		Latitude:    22.31,
		Longitude:   73.18,
		ClientToken: "token-abc",
	}

	incidentMock.EXPECT().
		SubmitIncident(gomock.Any(), gomock.Any()).
		Return(nil, false, service.ErrDuplicateSubmission).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate submission")
}

func TestSubmitIncident_ServiceError(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)
	reqBody := SubmitIncidentRequest{
		EventType: "traffic",
		Latitude:  22.31,
		Longitude: 73.18,
	}

	incidentMock.EXPECT().
		SubmitIncident(gomock.Any(), gomock.Any()).
		Return(nil, false, errors.New("failed to enqueue incident")).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestListIncidents_Success(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)
	expected := []*models.Incident{
		pendingIncident("local-abc123"),
		{ID: "srv-1", EventType: models.EventWater, Latitude: 22.32, Longitude: 73.19, Severity: 0.7, Status: models.StatusApproved, Source: models.SourceBackendSync},
	}

	incidentMock.EXPECT().GetIncidents(gomock.Any()).Return(expected).Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.True(t, resp[0].PendingSync)
	assert.False(t, resp[1].PendingSync)
}

func TestCastVote_Accepted(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)
	reqBody := CastVoteRequest{
		VoteType:  "yes",
		CitizenID: "citizen-1",
	}
	merged := pendingIncident("srv-1")
	merged.Severity = 0.6
	merged.VerifiedCount = 1

	incidentMock.EXPECT().
		CastVote(gomock.Any(), "srv-1", models.VoteYes, "citizen-1", false).
		Return(merged, true, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents/srv-1/vote", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusAccepted, w.Code)
	var resp WriteAcceptedResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, resp.Incident.Severity, 1e-9)
	assert.Equal(t, 1, resp.Incident.VerifiedCount)
}

func TestCastVote_NotFound(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)
	reqBody := CastVoteRequest{
		VoteType:  "yes",
		CitizenID: "citizen-1",
	}

	incidentMock.EXPECT().
		CastVote(gomock.Any(), "srv-404", models.VoteYes, "citizen-1", false).
		Return(nil, false, service.ErrIncidentNotFound).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents/srv-404/vote", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "incident not found")
}

func TestCastVote_InvalidVoteType(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)
	reqBody := CastVoteRequest{
		VoteType:  "maybe",
		CitizenID: "citizen-1",
	}

	incidentMock.EXPECT().CastVote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidents/srv-1/vote", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'VoteType' failed on the 'oneof' tag")
}

func TestGetStats_Success(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)
	expected := map[models.EventType]int{
		models.EventTraffic: 3,
		models.EventWater:   1,
	}

	incidentMock.EXPECT().GetStats(gomock.Any()).Return(expected, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp StatsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 60, resp.WindowMinutes)
	assert.Equal(t, 3, resp.Counts["traffic"])
	assert.Equal(t, 1, resp.Counts["water"])
}

func TestGetStats_ServiceError(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)

	incidentMock.EXPECT().GetStats(gomock.Any()).Return(nil, errors.New("archive unavailable")).Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidents/stats", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestListPredictions_Success(t *testing.T) {
	_, forecastMock, router := newTestHandler(t)
	expected := []*models.Prediction{
		{
			EventType:    models.EventTraffic,
			AreaName:     "Alkapuri",
			Probability:  0.8,
			Timeframe:    "1-2 hours",
			SeverityBand: models.BandHigh,
			Trend:        models.TrendIncreasing,
			Confidence:   0.7,
		},
	}

	forecastMock.EXPECT().Predictions().Return(expected).Times(1)

	w := makeRequest(router, "GET", "/api/v1/predictions", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []PredictionResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Alkapuri", resp[0].AreaName)
	assert.Equal(t, "high", resp[0].SeverityBand)
}

func TestListAlerts_Success(t *testing.T) {
	_, forecastMock, router := newTestHandler(t)
	expected := []*models.Alert{
		{
			ID:           "alert-1",
			Title:        "Traffic congestion expected",
			Message:      "High probability of congestion in Alkapuri",
			Severity:     models.AlertWarning,
			EventType:    models.EventTraffic,
			AffectedArea: "Alkapuri",
		},
	}

	forecastMock.EXPECT().Alerts().Return(expected).Times(1)

	w := makeRequest(router, "GET", "/api/v1/alerts", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []AlertResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "alert-1", resp[0].ID)
}

func TestDismissAlert_Success(t *testing.T) {
	_, forecastMock, router := newTestHandler(t)

	forecastMock.EXPECT().DismissAlert(gomock.Any(), "alert-1").Return(true).Times(1)

	w := makeRequest(router, "POST", "/api/v1/alerts/alert-1/dismiss", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDismissAlert_NotFound(t *testing.T) {
	_, forecastMock, router := newTestHandler(t)

	forecastMock.EXPECT().DismissAlert(gomock.Any(), "missing").Return(false).Times(1)

	w := makeRequest(router, "POST", "/api/v1/alerts/missing/dismiss", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "alert not found")
}

func TestStartSync_DefaultInterval(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)

	incidentMock.EXPECT().StartBackgroundSync(30 * time.Second).Times(1)
	incidentMock.EXPECT().Status().Return(service.SyncStatus{Running: true}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/sync/start", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SyncStatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Running)
}

func TestStartSync_CustomInterval(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)
	reqBody := StartSyncRequest{IntervalSeconds: 10}

	incidentMock.EXPECT().StartBackgroundSync(10 * time.Second).Times(1)
	incidentMock.EXPECT().Status().Return(service.SyncStatus{Running: true}).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/sync/start", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStopSync_Success(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)

	incidentMock.EXPECT().StopBackgroundSync().Times(1)
	incidentMock.EXPECT().Status().Return(service.SyncStatus{Running: false, PendingCount: 2}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/sync/stop", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SyncStatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.False(t, resp.Running)
	assert.Equal(t, 2, resp.PendingCount)
}

func TestSyncStatus_IncludesFailedWrites(t *testing.T) {
	incidentMock, _, router := newTestHandler(t)
	status := service.SyncStatus{
		Running:      true,
		PendingCount: 1,
		FailedWrites: []service.FailedWrite{
			{WriteID: "w-1", Kind: models.WriteCreateIncident, TargetID: "local-abc", Reason: "max sync attempts exceeded", At: time.Now()},
		},
	}

	incidentMock.EXPECT().Status().Return(status).Times(1)

	w := makeRequest(router, "GET", "/api/v1/sync/status", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SyncStatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.Len(t, resp.FailedWrites, 1)
	assert.Equal(t, "w-1", resp.FailedWrites[0].WriteID)
	assert.Contains(t, resp.FailedWrites[0].Reason, "max sync attempts")
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAPIKeyAuthMiddleware_Success(t *testing.T) {
	// Создаем Gin-роутер и добавляем middleware
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil) // Нет API ключа
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "invalid-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}

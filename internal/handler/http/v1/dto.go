package v1

import (
	"time"
)

// SubmitIncidentRequest DTO для подачи сообщения об инциденте
// @Description DTO для подачи сообщения об инциденте
type SubmitIncidentRequest struct {
	EventType    string  `json:"event_type" validate:"required,oneof=traffic garbage water light road encroachment animals"`
	Description  string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Latitude     float64 `json:"latitude" validate:"required,latitude"`
	Longitude    float64 `json:"longitude" validate:"required,longitude"`
	Severity     float64 `json:"severity,omitempty" validate:"omitempty,gte=0,lte=1"`
	RadiusMeters float64 `json:"radius_meters,omitempty" validate:"omitempty,gt=0"`
	Source       string  `json:"source,omitempty" validate:"omitempty,oneof=citizen-report citizen-map-click ai-detection"`
	// ClientToken - токен идемпотентности действия UI; повторная подача
	// с тем же токеном в коротком окне схлопывается
	ClientToken string `json:"client_token,omitempty"`
}

// CastVoteRequest DTO для голоса за инцидент
// @Description DTO для голоса за инцидент
type CastVoteRequest struct {
	VoteType  string `json:"vote_type" validate:"required,oneof=yes no photo"`
	CitizenID string `json:"citizen_id" validate:"required"`
	HasPhoto  bool   `json:"has_photo,omitempty"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID            string    `json:"id"`
	EventType     string    `json:"event_type"`
	Description   string    `json:"description,omitempty"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Severity      float64   `json:"severity"`
	RadiusMeters  float64   `json:"radius_meters,omitempty"`
	VerifiedCount int       `json:"verified_count"`
	TrustScore    float64   `json:"trust_score"`
	Status        string    `json:"status"`
	Source        string    `json:"source"`
	Resolved      bool      `json:"resolved"`
	PendingSync   bool      `json:"pending_sync"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// WriteAcceptedResponse DTO для ответа на оптимистично принятую запись
// @Description DTO для ответа на оптимистично принятую запись
type WriteAcceptedResponse struct {
	Incident *IncidentResponse `json:"incident"`
	Queued   bool              `json:"queued"`
}

// PredictionResponse DTO для ответа с прогнозом
// @Description DTO для ответа с прогнозом
type PredictionResponse struct {
	EventType    string    `json:"event_type"`
	AreaName     string    `json:"area_name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Probability  float64   `json:"probability"`
	Timeframe    string    `json:"timeframe"`
	SeverityBand string    `json:"severity_band"`
	Trend        string    `json:"trend"`
	Confidence   float64   `json:"confidence"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AlertResponse DTO для ответа с оповещением
// @Description DTO для ответа с оповещением
type AlertResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	Severity        string    `json:"severity"`
	EventType       string    `json:"event_type"`
	AffectedArea    string    `json:"affected_area"`
	Recommendations []string  `json:"recommendations"`
	Confidence      float64   `json:"confidence"`
	Timestamp       time.Time `json:"timestamp"`
}

// FailedWriteResponse DTO для окончательно отклонённой записи
// @Description DTO для окончательно отклонённой записи
type FailedWriteResponse struct {
	WriteID  string    `json:"write_id"`
	Kind     string    `json:"kind"`
	TargetID string    `json:"target_id"`
	Reason   string    `json:"reason"`
	At       time.Time `json:"at"`
}

// SyncStatusResponse DTO для ответа с состоянием синхронизации
// @Description DTO для ответа с состоянием синхронизации
type SyncStatusResponse struct {
	Running      bool                  `json:"running"`
	LastSyncAt   time.Time             `json:"last_sync_at"`
	LastError    string                `json:"last_error,omitempty"`
	PendingCount int                   `json:"pending_count"`
	FailedWrites []FailedWriteResponse `json:"failed_writes,omitempty"`
}

// StartSyncRequest DTO для запуска синхронизации
// @Description DTO для запуска синхронизации
type StartSyncRequest struct {
	IntervalSeconds int `json:"interval_seconds,omitempty" validate:"omitempty,gt=0"`
}

// StatsResponse DTO для ответа со статистикой инцидентов
// @Description DTO для ответа со статистикой инцидентов
type StatsResponse struct {
	WindowMinutes int            `json:"window_minutes"`
	Counts        map[string]int `json:"counts"`
}

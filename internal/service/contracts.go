package service

import (
	"context"
	"time"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/client"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

// QueueStore определяет контракт долговечной очереди отложенных записей.
// Содержимое обязано переживать перезапуск процесса.
type QueueStore interface {
	Enqueue(ctx context.Context, write *models.PendingWrite) (bool, error)
	ListPending(ctx context.Context) ([]*models.PendingWrite, error)
	DequeueConfirmed(ctx context.Context, writeID string) error
	IncrementAttempt(ctx context.Context, writeID string) (int, error)
	SetIDMapping(ctx context.Context, localID, serverID string) error
	GetIDMappings(ctx context.Context) (map[string]string, error)
	RetargetWrites(ctx context.Context, localID, serverID string) error
}

// ServerClient определяет контракт API центрального сервера
type ServerClient interface {
	ListIncidents(ctx context.Context) ([]*models.Incident, error)
	CreateIncident(ctx context.Context, payload *models.CreateIncidentPayload) (*models.Incident, error)
	CastVote(ctx context.Context, incidentID string, payload *models.CastVotePayload) (*client.VoteResult, error)
}

// Archive определяет контракт локального архива инцидентов
type Archive interface {
	UpsertIncidents(ctx context.Context, incidents []*models.Incident) error
	DeleteIncident(ctx context.Context, id string) error
	GetStats(ctx context.Context, minutes int) (map[models.EventType]int, error)
}

// IncidentDraft - черновик инцидента от UI. Доменные идентификаторы
// черновик не несёт: их чеканит сервис.
type IncidentDraft struct {
	EventType    models.EventType
	Description  string
	Latitude     float64
	Longitude    float64
	Severity     float64
	RadiusMeters float64
	Source       models.IncidentSource
	// Token - необязательный токен идемпотентности действия UI.
	// Повторная отправка с тем же токеном в коротком окне схлопывается.
	Token string
}

// FailedWrite - запись, окончательно отвергнутая после исчерпания попыток
// или отказа сервера. Фатальна для действия пользователя, не для процесса.
type FailedWrite struct {
	WriteID  string           `json:"write_id"`
	Kind     models.WriteKind `json:"kind"`
	TargetID string           `json:"target_id"`
	Reason   string           `json:"reason"`
	At       time.Time        `json:"at"`
}

// SyncStatus - наблюдаемое состояние фоновой синхронизации
type SyncStatus struct {
	Running      bool          `json:"running"`
	LastSyncAt   time.Time     `json:"last_sync_at"`
	LastError    string        `json:"last_error,omitempty"`
	PendingCount int           `json:"pending_count"`
	FailedWrites []FailedWrite `json:"failed_writes,omitempty"`
}

// EventKind - вид события для подписчиков
type EventKind string

const (
	EventIncidentsChanged  EventKind = "incidents-changed"
	EventSyncStatusChanged EventKind = "sync-status-changed"
)

// Event - уведомление подписчика: либо новое представление инцидентов,
// либо новое состояние синхронизации
type Event struct {
	Kind      EventKind
	Incidents []*models.Incident
	Status    *SyncStatus
}

// IncidentService определяет контракт фасада инцидентов для UI-слоя
type IncidentService interface {
	Restore(ctx context.Context) error
	GetIncidents(ctx context.Context) []*models.Incident
	SubmitIncident(ctx context.Context, draft *IncidentDraft) (*models.Incident, bool, error)
	CastVote(ctx context.Context, incidentID string, vote models.VoteType, citizenID string, hasPhoto bool) (*models.Incident, bool, error)
	StartBackgroundSync(interval time.Duration)
	StopBackgroundSync()
	Status() SyncStatus
	Subscribe(fn func(Event)) func()
	GetStats(ctx context.Context) (map[models.EventType]int, error)
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType - тип городского происшествия
type EventType string

const (
	EventTraffic      EventType = "traffic"
	EventGarbage      EventType = "garbage"
	EventWater        EventType = "water"
	EventLight        EventType = "light"
	EventRoad         EventType = "road"
	EventEncroachment EventType = "encroachment"
	EventAnimals      EventType = "animals"
)

// IncidentStatus - статус жизненного цикла инцидента
type IncidentStatus string

const (
	StatusPending  IncidentStatus = "pending"
	StatusApproved IncidentStatus = "approved"
	StatusRejected IncidentStatus = "rejected"
	StatusResolved IncidentStatus = "resolved"
)

// IncidentSource - источник появления инцидента, неизменяем после создания
type IncidentSource string

const (
	SourceCitizenReport   IncidentSource = "citizen-report"
	SourceCitizenMapClick IncidentSource = "citizen-map-click"
	SourceAIDetection     IncidentSource = "ai-detection"
	SourceBackendSync     IncidentSource = "backend-sync"
)

// LocalIDPrefix - префикс идентификаторов, сгенерированных на стороне узла
// до подтверждения сервером
const LocalIDPrefix = "local-"

type Incident struct {
	ID            string         `json:"id"`
	EventType     EventType      `json:"event_type"`
	Description   string         `json:"description,omitempty"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	Severity      float64        `json:"severity"`
	RadiusMeters  float64        `json:"radius_meters"`
	VerifiedCount int            `json:"verified_count"`
	Status        IncidentStatus `json:"status"`
	Source        IncidentSource `json:"source"`
	Resolved      bool           `json:"resolved"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewLocalID генерирует локальный идентификатор инцидента.
// Доменные идентификаторы создаются только здесь, а не в обработчиках.
func NewLocalID() string {
	return LocalIDPrefix + uuid.NewString()
}

// IsLocalID сообщает, является ли идентификатор локальным (ещё не подтверждённым сервером)
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// ValidEventType проверяет известность типа происшествия
func ValidEventType(t EventType) bool {
	switch t {
	case EventTraffic, EventGarbage, EventWater, EventLight, EventRoad, EventEncroachment, EventAnimals:
		return true
	}
	return false
}

// CanTransition проверяет допустимость перехода статуса.
// resolved и rejected - терминальные статусы.
func CanTransition(from, to IncidentStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusResolved
	}
	return false
}

// SetStatus выставляет статус и поддерживает согласованность поля Resolved
func (i *Incident) SetStatus(s IncidentStatus) {
	i.Status = s
	i.Resolved = s == StatusResolved
}

// TrustScore - производная нормализованная оценка доверия [0,1].
// Не хранится: canonical-представление подтверждений - целочисленный счётчик.
func (i *Incident) TrustScore() float64 {
	const saturation = 10.0
	score := float64(i.VerifiedCount) / saturation
	if score > 1 {
		return 1
	}
	return score
}

// Clone возвращает независимую копию инцидента
func (i *Incident) Clone() *Incident {
	c := *i
	return &c
}

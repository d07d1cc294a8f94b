package models

import (
	"encoding/json"
	"time"
)

// WriteKind - вид отложенной записи в очереди синхронизации
type WriteKind string

const (
	WriteCreateIncident WriteKind = "create-incident"
	WriteCastVote       WriteKind = "cast-vote"
)

// PendingWrite - запись очереди, ожидающая подтверждения центральным сервером.
// Записи для одного TargetID применяются к серверу в порядке постановки.
type PendingWrite struct {
	ID         string          `json:"id"`
	Kind       WriteKind       `json:"kind"`
	TargetID   string          `json:"target_id"`
	Token      string          `json:"token"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// CreateIncidentPayload - тело запроса на создание инцидента
type CreateIncidentPayload struct {
	EventType    EventType      `json:"event_type"`
	Description  string         `json:"description,omitempty"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	Severity     float64        `json:"severity"`
	RadiusMeters float64        `json:"radius_meters"`
	Source       IncidentSource `json:"source"`
	ClientID     string         `json:"client_id"`
}

// CastVotePayload - тело запроса на голос за инцидент
type CastVotePayload struct {
	VoteType  VoteType `json:"vote_type"`
	CitizenID string   `json:"citizen_id"`
	HasPhoto  bool     `json:"has_photo"`
}

// DecodeCreatePayload разбирает полезную нагрузку записи о создании
func (w *PendingWrite) DecodeCreatePayload() (*CreateIncidentPayload, error) {
	var p CreateIncidentPayload
	if err := json.Unmarshal(w.Payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeVotePayload разбирает полезную нагрузку записи о голосе
func (w *PendingWrite) DecodeVotePayload() (*CastVotePayload, error) {
	var p CastVotePayload
	if err := json.Unmarshal(w.Payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

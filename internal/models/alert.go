package models

import "time"

// AlertSeverity - уровень важности оповещения для жителей
type AlertSeverity string

const (
	AlertInfo     AlertSeverity = "info"
	AlertWarning  AlertSeverity = "warning"
	AlertCritical AlertSeverity = "critical"
)

// Alert - оповещение, выведенное из прогнозов и инцидентов.
// Identity (тип+район) стабильна и используется для дедупликации,
// случайный ID - только для адресации в API.
type Alert struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Message         string        `json:"message"`
	Severity        AlertSeverity `json:"severity"`
	EventType       EventType     `json:"event_type"`
	AffectedArea    string        `json:"affected_area"`
	Recommendations []string      `json:"recommendations"`
	Confidence      float64       `json:"confidence"`
	Band            SeverityBand  `json:"band"`
	Timestamp       time.Time     `json:"timestamp"`
}

// Identity возвращает стабильный ключ дедупликации оповещения
func (a *Alert) Identity() string {
	return string(a.EventType) + ":" + a.AffectedArea
}

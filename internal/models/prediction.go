package models

import "time"

// Trend - направление изменения риска
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
	TrendDecreasing Trend = "decreasing"
)

// SeverityBand - полоса серьёзности прогноза по пороговым значениям вероятности
type SeverityBand string

const (
	BandHigh   SeverityBand = "high"
	BandMedium SeverityBand = "medium"
	BandLow    SeverityBand = "low"
)

// Prediction - краткосрочный прогноз риска для пары (тип, район).
// Прогнозы пересоздаются целиком каждый цикл и не мутируются.
type Prediction struct {
	EventType    EventType    `json:"event_type"`
	AreaName     string       `json:"area_name"`
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	Probability  float64      `json:"probability"`
	Timeframe    string       `json:"timeframe"`
	SeverityBand SeverityBand `json:"severity_band"`
	Trend        Trend        `json:"trend"`
	Confidence   float64      `json:"confidence"`
	CreatedAt    time.Time    `json:"created_at"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

// Expired сообщает, истёк ли прогноз к моменту now
func (p *Prediction) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

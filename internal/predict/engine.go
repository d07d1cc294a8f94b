package predict

import (
	"math"
	"sort"
	"time"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

const (
	// Контекстные множители и бонусы
	peakHourMultiplier   = 1.5  // утренний и вечерний пик для трафика
	nightLightMultiplier = 1.3  // тёмное время суток для освещения
	nearbyIncidentBonus  = 0.12 // линейный бонус за каждый инцидент того же типа рядом
	spatialToleranceDeg  = 0.03 // допуск по координатам при привязке инцидента к району

	// Пороговые значения
	bandHighThreshold   = 0.7
	bandMediumThreshold = 0.5
	trendThreshold      = 0.75
	probabilityCeiling  = 0.99

	// Ограничение выдачи, чтобы не перегружать потребителей
	maxPredictions = 12
)

// минимальные вероятности, ниже которых прогноз не публикуется
var emitThresholds = map[models.EventType]float64{
	models.EventTraffic: 0.35,
	models.EventGarbage: 0.40,
	models.EventWater:   0.30,
	models.EventLight:   0.35,
}

// Engine - детерминированный движок краткосрочных прогнозов риска.
// Чистая функция от (инциденты, час, вероятность дождя): одинаковые входы
// всегда дают одинаковый набор пар (тип, район) в одинаковом порядке.
// Никакого случайного шума в решающей логике - дрожание координат для
// карты является заботой рендеринга, не движка.
type Engine struct {
	zones []Zone
	ttl   time.Duration
}

func NewEngine(zones []Zone, ttl time.Duration) *Engine {
	return &Engine{zones: zones, ttl: ttl}
}

// Predict строит прогнозы для всех пар (район, тип) на момент now
func (e *Engine) Predict(incidents []*models.Incident, hour int, rainProbability float64, now time.Time) []*models.Prediction {
	byKey := make(map[string]*models.Prediction)

	for _, zone := range e.zones {
		for eventType, baseWeight := range zone.Weights {
			probability := baseWeight

			// Множитель часа пик для трафика
			if eventType == models.EventTraffic && isPeakHour(hour) {
				probability *= peakHourMultiplier
			}

			// Ночной множитель для освещения
			if eventType == models.EventLight && isNight(hour) {
				probability *= nightLightMultiplier
			}

			// Линейный бонус за подтверждающие инциденты рядом с центром района
			nearby := countNearby(incidents, zone, eventType)
			probability += nearbyIncidentBonus * float64(nearby)

			// Дождь усиливает риск подтоплений
			if eventType == models.EventWater {
				probability *= 1 + rainProbability
			}

			if probability > probabilityCeiling {
				probability = probabilityCeiling
			}

			threshold, ok := emitThresholds[eventType]
			if !ok || probability < threshold {
				continue
			}

			p := &models.Prediction{
				EventType:    eventType,
				AreaName:     zone.Name,
				Latitude:     zone.Latitude,
				Longitude:    zone.Longitude,
				Probability:  round2(probability),
				Timeframe:    timeframeFor(probability),
				SeverityBand: bandFor(probability),
				Trend:        trendFor(probability),
				Confidence:   confidenceFor(nearby),
				CreatedAt:    now,
				ExpiresAt:    now.Add(e.ttl),
			}

			// На пару (тип, район) остаётся один прогноз - с большей вероятностью
			key := string(eventType) + "|" + zone.Name
			if existing, ok := byKey[key]; !ok || p.Probability > existing.Probability {
				byKey[key] = p
			}
		}
	}

	predictions := make([]*models.Prediction, 0, len(byKey))
	for _, p := range byKey {
		predictions = append(predictions, p)
	}

	// Устойчивая сортировка: вероятность по убыванию, затем район и тип,
	// чтобы относительный порядок не зависел от обхода map
	sort.Slice(predictions, func(i, j int) bool {
		if predictions[i].Probability != predictions[j].Probability {
			return predictions[i].Probability > predictions[j].Probability
		}
		if predictions[i].AreaName != predictions[j].AreaName {
			return predictions[i].AreaName < predictions[j].AreaName
		}
		return predictions[i].EventType < predictions[j].EventType
	})

	if len(predictions) > maxPredictions {
		predictions = predictions[:maxPredictions]
	}
	return predictions
}

// Fresh отбрасывает истёкшие прогнозы
func Fresh(predictions []*models.Prediction, now time.Time) []*models.Prediction {
	fresh := make([]*models.Prediction, 0, len(predictions))
	for _, p := range predictions {
		if !p.Expired(now) {
			fresh = append(fresh, p)
		}
	}
	return fresh
}

func isPeakHour(hour int) bool {
	return (hour >= 8 && hour <= 11) || (hour >= 17 && hour <= 20)
}

func isNight(hour int) bool {
	return hour >= 19 || hour <= 6
}

func countNearby(incidents []*models.Incident, zone Zone, eventType models.EventType) int {
	count := 0
	for _, inc := range incidents {
		if inc.EventType != eventType || inc.Resolved {
			continue
		}
		if math.Abs(inc.Latitude-zone.Latitude) <= spatialToleranceDeg &&
			math.Abs(inc.Longitude-zone.Longitude) <= spatialToleranceDeg {
			count++
		}
	}
	return count
}

func bandFor(probability float64) models.SeverityBand {
	switch {
	case probability >= bandHighThreshold:
		return models.BandHigh
	case probability >= bandMediumThreshold:
		return models.BandMedium
	default:
		return models.BandLow
	}
}

func trendFor(probability float64) models.Trend {
	if probability >= trendThreshold {
		return models.TrendIncreasing
	}
	return models.TrendStable
}

func timeframeFor(probability float64) string {
	switch {
	case probability >= bandHighThreshold:
		return "1-2 hours"
	case probability >= bandMediumThreshold:
		return "2-4 hours"
	default:
		return "4-8 hours"
	}
}

func confidenceFor(nearby int) float64 {
	confidence := 0.6 + 0.1*float64(nearby)
	if confidence > 0.9 {
		return 0.9
	}
	return confidence
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package predict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

var testNow = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(Vadodara(), 30*time.Minute)
}

func trafficIncident(lat, lon float64, resolved bool) *models.Incident {
	return &models.Incident{
		ID:        "srv-1",
		EventType: models.EventTraffic,
		Latitude:  lat,
		Longitude: lon,
		Severity:  0.6,
		Status:    models.StatusApproved,
		Resolved:  resolved,
	}
}

func findPrediction(t *testing.T, predictions []*models.Prediction, area string, eventType models.EventType) *models.Prediction {
	t.Helper()
	for _, p := range predictions {
		if p.AreaName == area && p.EventType == eventType {
			return p
		}
	}
	return nil
}

func TestPredict_Deterministic(t *testing.T) {
	// Подготовка
	engine := newTestEngine()
	incidents := []*models.Incident{trafficIncident(22.31, 73.18, false)}

	// Действие: одинаковые входы дважды
	first := engine.Predict(incidents, 9, 0.4, testNow)
	second := engine.Predict(incidents, 9, 0.4, testNow)

	// Проверки: идентичный набор в идентичном порядке
	require.Equal(t, len(first), len(second))
	assert.Equal(t, first, second)
}

func TestPredict_RushHourTrafficBoost(t *testing.T) {
	// Подготовка
	engine := newTestEngine()

	// Действие: час пик против полудня
	peak := engine.Predict(nil, 9, 0, testNow)
	offPeak := engine.Predict(nil, 13, 0, testNow)

	// Проверки: в пик вероятность трафика Alkapuri умножена
	peakTraffic := findPrediction(t, peak, "Alkapuri", models.EventTraffic)
	require.NotNil(t, peakTraffic)
	assert.InDelta(t, 0.68, peakTraffic.Probability, 0.01)
	assert.Equal(t, models.BandMedium, peakTraffic.SeverityBand)
	assert.Equal(t, "2-4 hours", peakTraffic.Timeframe)

	offPeakTraffic := findPrediction(t, offPeak, "Alkapuri", models.EventTraffic)
	require.NotNil(t, offPeakTraffic)
	assert.InDelta(t, 0.45, offPeakTraffic.Probability, 0.01)
}

func TestPredict_NearbyIncidentsRaiseBandAndTrend(t *testing.T) {
	// Подготовка: подтверждающий инцидент у центра Alkapuri в час пик
	engine := newTestEngine()
	incidents := []*models.Incident{trafficIncident(22.315, 73.185, false)}

	// Действие
	predictions := engine.Predict(incidents, 9, 0, testNow)

	// Проверки: 0.45*1.5 + 0.12 даёт высокую полосу и растущий тренд
	p := findPrediction(t, predictions, "Alkapuri", models.EventTraffic)
	require.NotNil(t, p)
	assert.InDelta(t, 0.8, p.Probability, 0.01)
	assert.Equal(t, models.BandHigh, p.SeverityBand)
	assert.Equal(t, models.TrendIncreasing, p.Trend)
	assert.Equal(t, "1-2 hours", p.Timeframe)
	assert.InDelta(t, 0.7, p.Confidence, 1e-9)
}

func TestPredict_ResolvedIncidentsIgnored(t *testing.T) {
	// Подготовка: разрешённый инцидент бонуса не даёт
	engine := newTestEngine()
	resolved := []*models.Incident{trafficIncident(22.31, 73.18, true)}

	// Действие
	with := engine.Predict(resolved, 9, 0, testNow)
	without := engine.Predict(nil, 9, 0, testNow)

	// Проверки
	a := findPrediction(t, with, "Alkapuri", models.EventTraffic)
	b := findPrediction(t, without, "Alkapuri", models.EventTraffic)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, b.Probability, a.Probability)
}

func TestPredict_NightLightMultiplier(t *testing.T) {
	// Подготовка
	engine := newTestEngine()

	// Действие: поздний вечер против полудня
	night := engine.Predict(nil, 22, 0, testNow)
	day := engine.Predict(nil, 13, 0, testNow)

	// Проверки: ночью Waghodia light усилен, днём остаётся базовым
	nightLight := findPrediction(t, night, "Waghodia", models.EventLight)
	require.NotNil(t, nightLight)
	assert.InDelta(t, 0.47, nightLight.Probability, 0.01)

	dayLight := findPrediction(t, day, "Waghodia", models.EventLight)
	require.NotNil(t, dayLight)
	assert.InDelta(t, 0.36, dayLight.Probability, 0.01)
}

func TestPredict_RainScalesWaterRisk(t *testing.T) {
	// Подготовка
	engine := newTestEngine()

	// Действие
	wet := engine.Predict(nil, 13, 0.8, testNow)
	dry := engine.Predict(nil, 13, 0, testNow)

	// Проверки: вероятность подтопления умножена на (1 + дождь)
	wetWater := findPrediction(t, wet, "Waghodia", models.EventWater)
	require.NotNil(t, wetWater)
	assert.InDelta(t, 0.68, wetWater.Probability, 0.01)

	dryWater := findPrediction(t, dry, "Waghodia", models.EventWater)
	require.NotNil(t, dryWater)
	assert.InDelta(t, 0.38, dryWater.Probability, 0.01)
}

func TestPredict_EmitThresholdsFilterWeakSignals(t *testing.T) {
	// Подготовка
	engine := newTestEngine()

	// Действие
	predictions := engine.Predict(nil, 13, 0, testNow)

	// Проверки: типы без порога не публикуются, слабые сигналы отсечены
	for _, p := range predictions {
		threshold, ok := emitThresholds[p.EventType]
		require.True(t, ok, "unexpected event type %s", p.EventType)
		assert.GreaterOrEqual(t, p.Probability, threshold)
	}
}

func TestPredict_CappedAndSortedByProbability(t *testing.T) {
	// Подготовка: час пик и сильный дождь дают больше кандидатов, чем лимит
	engine := newTestEngine()

	// Действие
	predictions := engine.Predict(nil, 9, 1.0, testNow)

	// Проверки
	assert.Len(t, predictions, maxPredictions)
	for i := 1; i < len(predictions); i++ {
		assert.GreaterOrEqual(t, predictions[i-1].Probability, predictions[i].Probability)
	}
}

func TestFresh_DropsExpired(t *testing.T) {
	// Подготовка
	engine := newTestEngine()
	predictions := engine.Predict(nil, 9, 0, testNow)
	require.NotEmpty(t, predictions)

	// Действие и проверки: внутри TTL всё живо, после TTL ничего
	assert.Len(t, Fresh(predictions, testNow.Add(10*time.Minute)), len(predictions))
	assert.Empty(t, Fresh(predictions, testNow.Add(31*time.Minute)))
}

func TestAreaResolver_NearestZone(t *testing.T) {
	resolve := AreaResolver(Vadodara())

	assert.Equal(t, "Alkapuri", resolve(22.31, 73.18))
	assert.Equal(t, "Makarpura", resolve(22.25, 73.19))
	assert.Equal(t, "Gotri", resolve(22.33, 73.13))
}

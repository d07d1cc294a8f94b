package alerts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

// fakeDismissals — хранилище скрытий в памяти для тестов
type fakeDismissals struct {
	bands map[string]models.SeverityBand
	err   error
}

func newFakeDismissals() *fakeDismissals {
	return &fakeDismissals{bands: make(map[string]models.SeverityBand)}
}

func (f *fakeDismissals) Dismiss(_ context.Context, identity string, band models.SeverityBand) error {
	if f.err != nil {
		return f.err
	}
	f.bands[identity] = band
	return nil
}

func (f *fakeDismissals) DismissedBand(_ context.Context, identity string) (models.SeverityBand, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	band, ok := f.bands[identity]
	return band, ok, nil
}

func newTestDeriver(dismissals DismissalStore, maxActive int) *Deriver {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	areaFor := func(lat, lon float64) string { return "Alkapuri" }
	return NewDeriver(nil, dismissals, areaFor, logger, maxActive)
}

func highPrediction(area string, probability float64, band models.SeverityBand) *models.Prediction {
	return &models.Prediction{
		EventType:    models.EventTraffic,
		AreaName:     area,
		Probability:  probability,
		Timeframe:    "1-2 hours",
		SeverityBand: band,
	}
}

func severeIncident(severity float64) *models.Incident {
	return &models.Incident{
		ID:        "srv-1",
		EventType: models.EventWater,
		Latitude:  22.31,
		Longitude: 73.18,
		Severity:  severity,
		Status:    models.StatusApproved,
	}
}

func TestRefresh_SelectsOnlyQualifyingConditions(t *testing.T) {
	// Подготовка: один прогноз выше порога, один ниже, один тяжёлый инцидент
	deriver := newTestDeriver(newFakeDismissals(), 10)
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	predictions := []*models.Prediction{
		highPrediction("Alkapuri", 0.82, models.BandHigh),
		highPrediction("Gotri", 0.55, models.BandMedium),
	}
	incidents := []*models.Incident{
		severeIncident(0.8),
		{ID: "srv-2", EventType: models.EventGarbage, Severity: 0.4},
	}

	// Действие
	alerts := deriver.Refresh(context.Background(), predictions, incidents, now)

	// Проверки: слабый прогноз и лёгкий инцидент не прошли отбор
	require.Len(t, alerts, 2)
	identities := []string{alerts[0].Identity(), alerts[1].Identity()}
	assert.Contains(t, identities, "traffic:Alkapuri")
	assert.Contains(t, identities, "water:Alkapuri")
}

func TestRefresh_FallbackNarrationWithoutBackend(t *testing.T) {
	// Подготовка: генеративного бэкенда нет
	deriver := newTestDeriver(newFakeDismissals(), 10)
	predictions := []*models.Prediction{highPrediction("Alkapuri", 0.82, models.BandHigh)}

	// Действие
	alerts := deriver.Refresh(context.Background(), predictions, nil, time.Now())

	// Проверки: текст собран из детерминированного шаблона
	require.Len(t, alerts, 1)
	assert.NotEmpty(t, alerts[0].Title)
	assert.NotEmpty(t, alerts[0].Message)
	assert.NotEmpty(t, alerts[0].Recommendations)
}

func TestRefresh_CriticalSeverityThreshold(t *testing.T) {
	// Подготовка
	deriver := newTestDeriver(newFakeDismissals(), 10)
	predictions := []*models.Prediction{
		highPrediction("Alkapuri", 0.9, models.BandHigh),
		highPrediction("Gotri", 0.75, models.BandHigh),
	}

	// Действие
	alerts := deriver.Refresh(context.Background(), predictions, nil, time.Now())

	// Проверки: выше 0.85 оповещение критическое, ниже - предупреждение
	require.Len(t, alerts, 2)
	byArea := map[string]models.AlertSeverity{}
	for _, a := range alerts {
		byArea[a.AffectedArea] = a.Severity
	}
	assert.Equal(t, models.AlertCritical, byArea["Alkapuri"])
	assert.Equal(t, models.AlertWarning, byArea["Gotri"])
}

func TestRefresh_IdentityDeduplicatedAcrossCycles(t *testing.T) {
	// Подготовка: одно и то же условие два цикла подряд
	deriver := newTestDeriver(newFakeDismissals(), 10)
	ctx := context.Background()
	predictions := []*models.Prediction{highPrediction("Alkapuri", 0.82, models.BandHigh)}

	// Действие
	first := deriver.Refresh(ctx, predictions, nil, time.Now())
	second := deriver.Refresh(ctx, predictions, nil, time.Now())

	// Проверки: оповещение одно, его ID стабилен между циклами
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestDismiss_SuppressesUntilBandRises(t *testing.T) {
	// Подготовка: оповещение скрыто на полосе medium
	dismissals := newFakeDismissals()
	deriver := newTestDeriver(dismissals, 10)
	ctx := context.Background()
	medium := []*models.Prediction{highPrediction("Alkapuri", 0.72, models.BandMedium)}

	alerts := deriver.Refresh(ctx, medium, nil, time.Now())
	require.Len(t, alerts, 1)
	require.True(t, deriver.Dismiss(ctx, alerts[0].ID))

	// Действие: то же условие не возвращается, усилившееся - возвращается
	same := deriver.Refresh(ctx, medium, nil, time.Now())
	risen := deriver.Refresh(ctx, []*models.Prediction{highPrediction("Alkapuri", 0.88, models.BandHigh)}, nil, time.Now())

	// Проверки
	assert.Empty(t, same)
	require.Len(t, risen, 1)
	assert.Equal(t, models.BandHigh, risen[0].Band)
	assert.Equal(t, models.AlertCritical, risen[0].Severity)
}

func TestDismiss_UnknownAlertID(t *testing.T) {
	deriver := newTestDeriver(newFakeDismissals(), 10)

	assert.False(t, deriver.Dismiss(context.Background(), "missing-id"))
}

func TestRefresh_ActiveUpdatedOnlyOnBandIncrease(t *testing.T) {
	// Подготовка: активное оповещение с полосой high
	deriver := newTestDeriver(newFakeDismissals(), 10)
	ctx := context.Background()

	first := deriver.Refresh(ctx, []*models.Prediction{highPrediction("Alkapuri", 0.88, models.BandHigh)}, nil, time.Now())
	require.Len(t, first, 1)

	// Действие: ослабший повтор того же условия
	second := deriver.Refresh(ctx, []*models.Prediction{highPrediction("Alkapuri", 0.72, models.BandMedium)}, nil, time.Now())

	// Проверки: активное оповещение не затёрто слабой версией
	require.Len(t, second, 1)
	assert.Equal(t, models.BandHigh, second[0].Band)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestRefresh_OldestEvictedBeyondLimit(t *testing.T) {
	// Подготовка: лимит в два активных оповещения
	deriver := newTestDeriver(newFakeDismissals(), 2)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	// Действие: три условия в трёх разных циклах
	for i := 0; i < 3; i++ {
		area := fmt.Sprintf("Zone-%d", i)
		deriver.Refresh(ctx, []*models.Prediction{highPrediction(area, 0.8, models.BandHigh)}, nil, base.Add(time.Duration(i)*time.Minute))
	}

	// Проверки: старейшее оповещение выбыло
	alerts := deriver.Active()
	require.Len(t, alerts, 2)
	for _, a := range alerts {
		assert.NotEqual(t, "Zone-0", a.AffectedArea)
	}
}

func TestRefresh_DismissalStoreErrorSkipsCandidate(t *testing.T) {
	// Подготовка: хранилище скрытий недоступно
	dismissals := newFakeDismissals()
	dismissals.err = errors.New("redis connection refused")
	deriver := newTestDeriver(dismissals, 10)

	// Действие
	alerts := deriver.Refresh(context.Background(), []*models.Prediction{highPrediction("Alkapuri", 0.82, models.BandHigh)}, nil, time.Now())

	// Проверки: кандидат пропущен, паники и фантомных оповещений нет
	assert.Empty(t, alerts)
}

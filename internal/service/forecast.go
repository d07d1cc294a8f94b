package service

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/alerts"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/client"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/observability"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/predict"
)

// Вероятность дождя, когда погодный сигнал недоступен
const fallbackRainProbability = 0.05

// WeatherSource определяет контракт источника погодного сигнала
type WeatherSource interface {
	CurrentSignal(ctx context.Context) (*client.WeatherSignal, error)
}

// ForecastService определяет контракт прогнозов и оповещений для UI-слоя
type ForecastService interface {
	Refresh(ctx context.Context)
	Predictions() []*models.Prediction
	Alerts() []*models.Alert
	DismissAlert(ctx context.Context, alertID string) bool
}

// forecastService связывает движок прогнозов с текущим представлением
// инцидентов и погодным сигналом и перестраивает оповещения из свежих
// прогнозов. Перестроение идемпотентно: повторный Refresh на тех же входах
// не плодит дубликатов.
type forecastService struct {
	engine    *predict.Engine
	weather   WeatherSource
	incidents IncidentService
	deriver   *alerts.Deriver
	logger    *logrus.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock

	mu      sync.Mutex
	current []*models.Prediction
}

func NewForecastService(engine *predict.Engine, weather WeatherSource, incidents IncidentService, deriver *alerts.Deriver, logger *logrus.Logger, metrics *observability.Metrics, clock clockwork.Clock) ForecastService {
	return &forecastService{
		engine:    engine,
		weather:   weather,
		incidents: incidents,
		deriver:   deriver,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
	}
}

var _ ForecastService = (*forecastService)(nil)

// Refresh пересчитывает прогнозы по текущим инцидентам, часу и погоде,
// затем перестраивает оповещения
func (s *forecastService) Refresh(ctx context.Context) {
	incidents := s.incidents.GetIncidents(ctx)
	now := s.clock.Now()

	rain := fallbackRainProbability
	if signal, err := s.weather.CurrentSignal(ctx); err != nil {
		s.logger.WithError(err).Warn("Weather signal unavailable, using fallback rain probability")
	} else {
		rain = signal.RainProbability
	}

	predictions := s.engine.Predict(incidents, now.Hour(), rain, now)

	s.mu.Lock()
	s.current = predictions
	s.mu.Unlock()

	active := s.deriver.Refresh(ctx, predictions, incidents, now)
	s.metrics.ActivePredictions.Set(float64(len(predictions)))
	s.metrics.ActiveAlerts.Set(float64(len(active)))

	s.logger.WithFields(logrus.Fields{
		"predictions":      len(predictions),
		"active_alerts":    len(active),
		"rain_probability": rain,
	}).Info("Forecast refreshed")
}

// Predictions возвращает свежие (непросроченные) прогнозы
func (s *forecastService) Predictions() []*models.Prediction {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	return predict.Fresh(current, s.clock.Now())
}

// Alerts возвращает активные оповещения
func (s *forecastService) Alerts() []*models.Alert {
	return s.deriver.Active()
}

// DismissAlert скрывает оповещение. Скрытие переживает перезапуск и
// повторное появление той же угрозы без роста полосы серьёзности.
func (s *forecastService) DismissAlert(ctx context.Context, alertID string) bool {
	dismissed := s.deriver.Dismiss(ctx, alertID)
	if dismissed {
		s.metrics.ActiveAlerts.Set(float64(len(s.deriver.Active())))
	}
	return dismissed
}

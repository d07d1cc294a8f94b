package alerts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

const (
	// Пороги отбора условий для оповещений
	criticalProbability  = 0.70
	highIncidentSeverity = 0.75

	// Порог, выше которого оповещение становится critical
	criticalAlertProbability = 0.85
)

// DismissalStore хранит скрытые пользователем оповещения между циклами
type DismissalStore interface {
	Dismiss(ctx context.Context, identity string, band models.SeverityBand) error
	DismissedBand(ctx context.Context, identity string) (models.SeverityBand, bool, error)
}

// AreaResolver возвращает имя района для координат инцидента
type AreaResolver func(lat, lon float64) string

// Deriver выводит оповещения из прогнозов и инцидентов каждый цикл.
// Дедупликация идёт по стабильной identity (тип+район), а не по случайному
// ID; скрытое оповещение не возвращается, пока его полоса серьёзности
// не вырастет.
type Deriver struct {
	narrator   Narrator
	dismissals DismissalStore
	areaFor    AreaResolver
	logger     *logrus.Logger
	maxActive  int

	mutex  sync.Mutex
	active []*models.Alert
}

func NewDeriver(narrator Narrator, dismissals DismissalStore, areaFor AreaResolver, logger *logrus.Logger, maxActive int) *Deriver {
	return &Deriver{
		narrator:   narrator,
		dismissals: dismissals,
		areaFor:    areaFor,
		logger:     logger,
		maxActive:  maxActive,
	}
}

// candidate - условие, потенциально достойное оповещения
type candidate struct {
	input NarrationInput
	band  models.SeverityBand
}

// Refresh пересчитывает активные оповещения по текущим прогнозам и инцидентам
// и возвращает актуальный список
func (d *Deriver) Refresh(ctx context.Context, predictions []*models.Prediction, incidents []*models.Incident, now time.Time) []*models.Alert {
	candidates := d.collect(predictions, incidents)

	d.mutex.Lock()
	defer d.mutex.Unlock()

	activeByIdentity := make(map[string]*models.Alert, len(d.active))
	for _, a := range d.active {
		activeByIdentity[a.Identity()] = a
	}

	for _, c := range candidates {
		identity := string(c.input.EventType) + ":" + c.input.AreaName

		// Уже активное оповещение обновляется только при росте полосы
		if existing, ok := activeByIdentity[identity]; ok {
			if !bandAbove(c.band, existing.Band) {
				continue
			}
		}

		// Скрытое пользователем условие не возвращается, пока не усилится
		if d.dismissals != nil {
			dismissedBand, dismissed, err := d.dismissals.DismissedBand(ctx, identity)
			if err != nil {
				d.logger.WithError(err).Warn("Failed to check alert dismissal, skipping candidate")
				continue
			}
			if dismissed && !bandAbove(c.band, dismissedBand) {
				continue
			}
		}

		alert := d.buildAlert(ctx, c, now)
		if existing, ok := activeByIdentity[identity]; ok {
			*existing = *alert
			continue
		}
		activeByIdentity[identity] = alert
		d.active = append(d.active, alert)
	}

	// Ограничение активного списка: старейшие выбывают первыми
	if len(d.active) > d.maxActive {
		sort.Slice(d.active, func(i, j int) bool {
			return d.active[i].Timestamp.After(d.active[j].Timestamp)
		})
		d.active = d.active[:d.maxActive]
	}

	return d.snapshot()
}

// Active возвращает копию текущего списка оповещений
func (d *Deriver) Active() []*models.Alert {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.snapshot()
}

// Dismiss скрывает оповещение по его ID до конца сессии
// (либо до роста полосы серьёзности)
func (d *Deriver) Dismiss(ctx context.Context, alertID string) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	for i, a := range d.active {
		if a.ID != alertID {
			continue
		}
		if d.dismissals != nil {
			if err := d.dismissals.Dismiss(ctx, a.Identity(), a.Band); err != nil {
				d.logger.WithError(err).Error("Failed to persist alert dismissal")
			}
		}
		d.active = append(d.active[:i], d.active[i+1:]...)
		return true
	}
	return false
}

// collect отбирает условия: прогнозы выше критического порога и
// инциденты с высокой серьёзностью
func (d *Deriver) collect(predictions []*models.Prediction, incidents []*models.Incident) []candidate {
	var candidates []candidate

	for _, p := range predictions {
		if p.Probability < criticalProbability {
			continue
		}
		candidates = append(candidates, candidate{
			input: NarrationInput{
				EventType:   p.EventType,
				AreaName:    p.AreaName,
				Probability: p.Probability,
				Timeframe:   p.Timeframe,
			},
			band: p.SeverityBand,
		})
	}

	for _, inc := range incidents {
		if inc.Resolved || inc.Severity < highIncidentSeverity {
			continue
		}
		candidates = append(candidates, candidate{
			input: NarrationInput{
				EventType:   inc.EventType,
				AreaName:    d.areaFor(inc.Latitude, inc.Longitude),
				Probability: inc.Severity,
				Severity:    inc.Severity,
				Timeframe:   "now",
			},
			band: bandForSeverity(inc.Severity),
		})
	}

	return candidates
}

func (d *Deriver) buildAlert(ctx context.Context, c candidate, now time.Time) *models.Alert {
	narration := d.narrate(ctx, c.input)

	severity := models.AlertWarning
	if c.input.Probability >= criticalAlertProbability {
		severity = models.AlertCritical
	}

	return &models.Alert{
		ID:              uuid.NewString(),
		Title:           narration.Title,
		Message:         narration.Message,
		Severity:        severity,
		EventType:       c.input.EventType,
		AffectedArea:    c.input.AreaName,
		Recommendations: narration.Recommendations,
		Confidence:      c.input.Probability,
		Band:            c.band,
		Timestamp:       now,
	}
}

// narrate запрашивает генеративный бэкенд; любая его ошибка не фатальна
// и приводит к детерминированному шаблону
func (d *Deriver) narrate(ctx context.Context, input NarrationInput) *Narration {
	if d.narrator == nil {
		return fallbackNarration(input)
	}
	narration, err := d.narrator.Narrate(ctx, input)
	if err != nil {
		d.logger.WithError(err).Warn("Text backend failed, using fallback template")
		return fallbackNarration(input)
	}
	return narration
}

func (d *Deriver) snapshot() []*models.Alert {
	out := make([]*models.Alert, len(d.active))
	for i, a := range d.active {
		copied := *a
		out[i] = &copied
	}
	return out
}

func bandRank(b models.SeverityBand) int {
	switch b {
	case models.BandHigh:
		return 2
	case models.BandMedium:
		return 1
	default:
		return 0
	}
}

func bandAbove(a, b models.SeverityBand) bool {
	return bandRank(a) > bandRank(b)
}

func bandForSeverity(severity float64) models.SeverityBand {
	switch {
	case severity >= 0.9:
		return models.BandHigh
	case severity >= highIncidentSeverity:
		return models.BandMedium
	default:
		return models.BandLow
	}
}

package service

import (
	"sort"
	"time"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

// voteDelta - локально применённый, ещё не подтверждённый голос.
// Снимается только при подтверждении соответствующей записи очереди.
type voteDelta struct {
	WriteID string
	Vote    models.VoteType
}

const (
	// Скорость затухания severity для локальных неподтверждённых
	// инцидентов: -0.01 за час с момента создания, пол 0.05.
	decayPerHour       = 0.01
	decaySeverityFloor = 0.05
)

// reconcileBase сливает серверный снимок в локальную базу. Серверная запись
// авторитетна для своего id; записи, которых сервер не знает (локальные или
// выпавшие из снимка), сохраняются как есть. Функция чистая: повторный вызов
// с тем же снимком даёт тот же результат.
func reconcileBase(base map[string]*models.Incident, snapshot []*models.Incident, idMap map[string]string) map[string]*models.Incident {
	merged := make(map[string]*models.Incident, len(snapshot)+len(base))
	for _, inc := range snapshot {
		merged[inc.ID] = inc.Clone()
	}
	for id, inc := range base {
		resolved := id
		if mapped, ok := idMap[id]; ok {
			resolved = mapped
		}
		if _, known := merged[resolved]; known {
			continue
		}
		merged[resolved] = inc.Clone()
	}
	return merged
}

// composeView собирает представление для UI: база плюс неподтверждённые
// голоса поверх неё, затухание для локальных записей без подтверждений,
// сортировка по приоритету и отсечка limit. Вход не мутируется.
func composeView(base map[string]*models.Incident, deltas map[string][]voteDelta, now time.Time, limit int) []*models.Incident {
	out := make([]*models.Incident, 0, len(base))
	for id, inc := range base {
		c := inc.Clone()
		for _, d := range deltas[id] {
			c.ApplyVote(d.Vote)
		}
		if models.IsLocalID(id) && c.VerifiedCount == 0 {
			applyDecay(c, now)
		}
		out = append(out, c)
	}
	sortByPriority(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// sortByPriority: нерешённые раньше решённых, затем по severity,
// затем свежие раньше старых. Хвост по id для детерминизма.
func sortByPriority(incidents []*models.Incident) {
	sort.Slice(incidents, func(i, j int) bool {
		a, b := incidents[i], incidents[j]
		if a.Resolved != b.Resolved {
			return !a.Resolved
		}
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func applyDecay(inc *models.Incident, now time.Time) {
	hours := now.Sub(inc.CreatedAt).Hours()
	if hours <= 0 {
		return
	}
	decayed := inc.Severity - decayPerHour*hours
	if decayed < decaySeverityFloor {
		decayed = decaySeverityFloor
	}
	inc.Severity = decayed
}

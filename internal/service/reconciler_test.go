package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

func serverIncident(id string, severity float64, verified int) *models.Incident {
	return &models.Incident{
		ID:            id,
		EventType:     models.EventTraffic,
		Latitude:      22.31,
		Longitude:     73.18,
		Severity:      severity,
		VerifiedCount: verified,
		Status:        models.StatusApproved,
		Source:        models.SourceBackendSync,
		CreatedAt:     time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestReconcileBase_ServerWins(t *testing.T) {
	// Подготовка: локальная база со старым значением severity
	base := map[string]*models.Incident{
		"srv-1": serverIncident("srv-1", 0.4, 1),
	}
	snapshot := []*models.Incident{serverIncident("srv-1", 0.7, 5)}

	// Действие
	merged := reconcileBase(base, snapshot, nil)

	// Проверки: серверная запись авторитетна
	require.Contains(t, merged, "srv-1")
	assert.InDelta(t, 0.7, merged["srv-1"].Severity, 1e-9)
	assert.Equal(t, 5, merged["srv-1"].VerifiedCount)
}

func TestReconcileBase_KeepsLocalOnly(t *testing.T) {
	// Подготовка: локальный инцидент, которого сервер ещё не знает
	localID := models.NewLocalID()
	base := map[string]*models.Incident{
		localID: serverIncident(localID, 0.5, 0),
	}
	snapshot := []*models.Incident{serverIncident("srv-1", 0.6, 2)}

	// Действие
	merged := reconcileBase(base, snapshot, nil)

	// Проверки: и серверный, и локальный присутствуют
	assert.Len(t, merged, 2)
	assert.Contains(t, merged, localID)
	assert.Contains(t, merged, "srv-1")
}

func TestReconcileBase_MappedLocalNotDuplicated(t *testing.T) {
	// Подготовка: локальный ID уже сопоставлен серверному, снимок содержит
	// каноническую запись
	localID := models.NewLocalID()
	base := map[string]*models.Incident{
		localID: serverIncident(localID, 0.5, 0),
	}
	snapshot := []*models.Incident{serverIncident("srv-1", 0.55, 1)}
	idMap := map[string]string{localID: "srv-1"}

	// Действие
	merged := reconcileBase(base, snapshot, idMap)

	// Проверки: одна запись, серверная версия
	require.Len(t, merged, 1)
	assert.InDelta(t, 0.55, merged["srv-1"].Severity, 1e-9)
}

func TestReconcileBase_Idempotent(t *testing.T) {
	// Подготовка
	localID := models.NewLocalID()
	base := map[string]*models.Incident{
		localID: serverIncident(localID, 0.5, 0),
		"srv-1": serverIncident("srv-1", 0.3, 1),
	}
	snapshot := []*models.Incident{
		serverIncident("srv-1", 0.6, 2),
		serverIncident("srv-2", 0.8, 4),
	}

	// Действие: повторная сверка того же снимка
	once := reconcileBase(base, snapshot, nil)
	twice := reconcileBase(once, snapshot, nil)

	// Проверки
	assert.Equal(t, once, twice)
}

func TestReconcileBase_DoesNotMutateInputs(t *testing.T) {
	// Подготовка
	base := map[string]*models.Incident{
		"srv-1": serverIncident("srv-1", 0.4, 1),
	}
	snapshot := []*models.Incident{serverIncident("srv-1", 0.7, 5)}

	// Действие
	merged := reconcileBase(base, snapshot, nil)
	merged["srv-1"].Severity = 0.99

	// Проверки: входы не тронуты
	assert.InDelta(t, 0.4, base["srv-1"].Severity, 1e-9)
	assert.InDelta(t, 0.7, snapshot[0].Severity, 1e-9)
}

func TestComposeView_ReplaysDeltasOnServerBaseline(t *testing.T) {
	// Подготовка: серверная база и один неподтверждённый голос
	base := map[string]*models.Incident{
		"srv-1": serverIncident("srv-1", 0.5, 2),
	}
	deltas := map[string][]voteDelta{
		"srv-1": {{WriteID: "w1", Vote: models.VoteYes}},
	}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Действие
	view := composeView(base, deltas, now, 100)

	// Проверки: дельта наложена поверх серверного базиса, база не мутирована
	require.Len(t, view, 1)
	assert.InDelta(t, 0.6, view[0].Severity, 1e-9)
	assert.Equal(t, 3, view[0].VerifiedCount)
	assert.InDelta(t, 0.5, base["srv-1"].Severity, 1e-9)
}

func TestComposeView_PriorityOrder(t *testing.T) {
	// Подготовка: решённый с высокой severity, нерешённые с разной severity
	resolved := serverIncident("srv-res", 0.95, 3)
	resolved.SetStatus(models.StatusResolved)
	base := map[string]*models.Incident{
		"srv-res": resolved,
		"srv-low": serverIncident("srv-low", 0.3, 0),
		"srv-hi":  serverIncident("srv-hi", 0.8, 1),
	}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Действие
	view := composeView(base, nil, now, 100)

	// Проверки: нерешённые впереди, среди них более серьёзный первым
	require.Len(t, view, 3)
	assert.Equal(t, "srv-hi", view[0].ID)
	assert.Equal(t, "srv-low", view[1].ID)
	assert.Equal(t, "srv-res", view[2].ID)
}

func TestComposeView_CapsAtLimit(t *testing.T) {
	// Подготовка
	base := map[string]*models.Incident{
		"a": serverIncident("a", 0.9, 0),
		"b": serverIncident("b", 0.8, 0),
		"c": serverIncident("c", 0.7, 0),
	}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Действие
	view := composeView(base, nil, now, 2)

	// Проверки: отсечка оставляет самые приоритетные
	require.Len(t, view, 2)
	assert.Equal(t, "a", view[0].ID)
	assert.Equal(t, "b", view[1].ID)
}

func TestComposeView_DecaysUnverifiedLocal(t *testing.T) {
	// Подготовка: локальный инцидент без подтверждений, создан 10 часов назад
	localID := models.NewLocalID()
	inc := serverIncident(localID, 0.5, 0)
	base := map[string]*models.Incident{localID: inc}
	now := inc.CreatedAt.Add(10 * time.Hour)

	// Действие
	view := composeView(base, nil, now, 100)

	// Проверки: -0.01 за час
	require.Len(t, view, 1)
	assert.InDelta(t, 0.4, view[0].Severity, 1e-9)
}

func TestComposeView_DecayFloor(t *testing.T) {
	// Подготовка: очень старый локальный инцидент
	localID := models.NewLocalID()
	inc := serverIncident(localID, 0.5, 0)
	base := map[string]*models.Incident{localID: inc}
	now := inc.CreatedAt.Add(1000 * time.Hour)

	// Действие
	view := composeView(base, nil, now, 100)

	// Проверки: severity не опускается ниже пола
	require.Len(t, view, 1)
	assert.InDelta(t, decaySeverityFloor, view[0].Severity, 1e-9)
}

func TestComposeView_NoDecayForVerifiedOrServer(t *testing.T) {
	// Подготовка: подтверждённый локальный и серверный инциденты той же давности
	localID := models.NewLocalID()
	verifiedLocal := serverIncident(localID, 0.5, 2)
	server := serverIncident("srv-1", 0.5, 0)
	base := map[string]*models.Incident{
		localID: verifiedLocal,
		"srv-1": server,
	}
	now := verifiedLocal.CreatedAt.Add(10 * time.Hour)

	// Действие
	view := composeView(base, nil, now, 100)

	// Проверки
	for _, inc := range view {
		assert.InDelta(t, 0.5, inc.Severity, 1e-9, "id=%s", inc.ID)
	}
}

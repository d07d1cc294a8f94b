package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/observability"
)

var (
	ErrInvalidDraft        = errors.New("invalid incident draft")
	ErrInvalidVote         = errors.New("invalid vote type")
	ErrIncidentNotFound    = errors.New("incident not found")
	ErrDuplicateSubmission = errors.New("duplicate submission")
)

const defaultSeverity = 0.5

// Options - настройки фасада инцидентов
type Options struct {
	ViewLimit       int
	SyncMaxAttempts int
	AttemptTimeout  time.Duration
	StatsWindowMin  int
}

// incidentService - фасад инцидентов узла. Держит локальное представление,
// оптимистично применяет записи пользователя и ставит их в долговечную
// очередь; фоновая синхронизация доигрывает очередь на сервер и сверяет
// представление со снимком сервера.
type incidentService struct {
	queue   QueueStore
	server  ServerClient
	archive Archive
	logger  *logrus.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	opts    Options

	mu     sync.Mutex
	base   map[string]*models.Incident
	deltas map[string][]voteDelta
	idMap  map[string]string
	status SyncStatus

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int

	sched *scheduler
}

func NewIncidentService(queue QueueStore, server ServerClient, archive Archive, logger *logrus.Logger, metrics *observability.Metrics, clock clockwork.Clock, opts Options) IncidentService {
	if opts.ViewLimit <= 0 {
		opts.ViewLimit = 100
	}
	if opts.SyncMaxAttempts <= 0 {
		opts.SyncMaxAttempts = 5
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 10 * time.Second
	}
	s := &incidentService{
		queue:   queue,
		server:  server,
		archive: archive,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
		opts:    opts,
		base:    make(map[string]*models.Incident),
		deltas:  make(map[string][]voteDelta),
		idMap:   make(map[string]string),
		subs:    make(map[int]func(Event)),
	}
	s.sched = newScheduler(s, clock)
	return s
}

var _ IncidentService = (*incidentService)(nil)

// Restore восстанавливает оптимистичное состояние из долговечной очереди
// после перезапуска процесса: соответствия идентификаторов, локальные
// инциденты из неподтверждённых созданий и неподтверждённые голоса.
func (s *incidentService) Restore(ctx context.Context) error {
	mappings, err := s.queue.GetIDMappings(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore id mappings: %w", err)
	}
	writes, err := s.queue.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore pending writes: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for local, server := range mappings {
		s.idMap[local] = server
	}
	for _, w := range writes {
		switch w.Kind {
		case models.WriteCreateIncident:
			p, err := w.DecodeCreatePayload()
			if err != nil {
				s.logger.WithError(err).WithField("write_id", w.ID).Warn("Skipping undecodable create payload during restore")
				continue
			}
			inc := &models.Incident{
				ID:           w.TargetID,
				EventType:    p.EventType,
				Description:  p.Description,
				Latitude:     p.Latitude,
				Longitude:    p.Longitude,
				Severity:     p.Severity,
				RadiusMeters: p.RadiusMeters,
				Status:       models.StatusPending,
				Source:       p.Source,
				CreatedAt:    w.EnqueuedAt,
				UpdatedAt:    w.EnqueuedAt,
			}
			s.base[inc.ID] = inc
		case models.WriteCastVote:
			p, err := w.DecodeVotePayload()
			if err != nil {
				s.logger.WithError(err).WithField("write_id", w.ID).Warn("Skipping undecodable vote payload during restore")
				continue
			}
			s.deltas[w.TargetID] = append(s.deltas[w.TargetID], voteDelta{WriteID: w.ID, Vote: p.VoteType})
		}
	}
	s.status.PendingCount = len(writes)
	s.logger.WithFields(logrus.Fields{
		"pending_writes": len(writes),
		"id_mappings":    len(mappings),
	}).Info("Restored sync state from queue")
	return nil
}

// GetIncidents возвращает слитое представление: серверная база с наложенными
// неподтверждёнными голосами, приоритетная сортировка и отсечка лимита
func (s *incidentService) GetIncidents(_ context.Context) []*models.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	return composeView(s.base, s.deltas, s.clock.Now(), s.opts.ViewLimit)
}

// SubmitIncident оптимистично добавляет инцидент с локальным идентификатором
// и ставит создание в очередь. Второй результат true означает, что запись
// ожидает подтверждения сервером.
func (s *incidentService) SubmitIncident(ctx context.Context, draft *IncidentDraft) (*models.Incident, bool, error) {
	if err := validateDraft(draft); err != nil {
		return nil, false, err
	}

	now := s.clock.Now()
	inc := &models.Incident{
		ID:           models.NewLocalID(),
		EventType:    draft.EventType,
		Description:  draft.Description,
		Latitude:     draft.Latitude,
		Longitude:    draft.Longitude,
		Severity:     draft.Severity,
		RadiusMeters: draft.RadiusMeters,
		Status:       models.StatusPending,
		Source:       draft.Source,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if inc.Severity <= 0 {
		inc.Severity = defaultSeverity
	}
	if inc.Severity > 1 {
		inc.Severity = 1
	}
	if inc.Source == "" {
		inc.Source = models.SourceCitizenReport
	}

	payload, err := json.Marshal(&models.CreateIncidentPayload{
		EventType:    inc.EventType,
		Description:  inc.Description,
		Latitude:     inc.Latitude,
		Longitude:    inc.Longitude,
		Severity:     inc.Severity,
		RadiusMeters: inc.RadiusMeters,
		Source:       inc.Source,
		ClientID:     inc.ID,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal create payload: %w", err)
	}

	token := draft.Token
	if token == "" {
		token = uuid.NewString()
	}
	write := &models.PendingWrite{
		ID:         uuid.NewString(),
		Kind:       models.WriteCreateIncident,
		TargetID:   inc.ID,
		Token:      token,
		Payload:    payload,
		EnqueuedAt: now,
	}
	accepted, err := s.queue.Enqueue(ctx, write)
	if err != nil {
		return nil, false, fmt.Errorf("failed to enqueue incident: %w", err)
	}
	if !accepted {
		s.logger.WithField("token", token).Debug("Coalesced duplicate incident submission")
		return nil, false, ErrDuplicateSubmission
	}

	s.mu.Lock()
	s.base[inc.ID] = inc
	s.status.PendingCount++
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"incident_id": inc.ID,
		"event_type":  inc.EventType,
	}).Info("Incident accepted locally, queued for sync")
	s.notifyIncidentsChanged()
	return inc.Clone(), true, nil
}

// CastVote оптимистично применяет голос к локальному представлению и ставит
// его в очередь. Дельта голоса снимается только при подтверждении записи.
func (s *incidentService) CastVote(ctx context.Context, incidentID string, vote models.VoteType, citizenID string, hasPhoto bool) (*models.Incident, bool, error) {
	if !models.ValidVoteType(vote) {
		return nil, false, ErrInvalidVote
	}

	s.mu.Lock()
	_, known := s.base[incidentID]
	s.mu.Unlock()
	if !known {
		return nil, false, ErrIncidentNotFound
	}

	payload, err := json.Marshal(&models.CastVotePayload{
		VoteType:  vote,
		CitizenID: citizenID,
		HasPhoto:  hasPhoto,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal vote payload: %w", err)
	}
	write := &models.PendingWrite{
		ID:         uuid.NewString(),
		Kind:       models.WriteCastVote,
		TargetID:   incidentID,
		Token:      uuid.NewString(),
		Payload:    payload,
		EnqueuedAt: s.clock.Now(),
	}
	if _, err := s.queue.Enqueue(ctx, write); err != nil {
		return nil, false, fmt.Errorf("failed to enqueue vote: %w", err)
	}

	s.mu.Lock()
	s.deltas[incidentID] = append(s.deltas[incidentID], voteDelta{WriteID: write.ID, Vote: vote})
	s.status.PendingCount++
	merged := s.mergedLocked(incidentID)
	s.mu.Unlock()

	s.notifyIncidentsChanged()
	return merged, true, nil
}

// Status возвращает копию состояния синхронизации
func (s *incidentService) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *incidentService) statusLocked() SyncStatus {
	st := s.status
	st.Running = s.sched.isRunning()
	st.FailedWrites = append([]FailedWrite(nil), s.status.FailedWrites...)
	return st
}

// GetStats возвращает счётчики инцидентов по типам за настроенное окно
func (s *incidentService) GetStats(ctx context.Context) (map[models.EventType]int, error) {
	window := s.opts.StatsWindowMin
	if window <= 0 {
		window = 60
	}
	return s.archive.GetStats(ctx, window)
}

// StartBackgroundSync запускает периодическую синхронизацию. Повторный
// вызов при работающей синхронизации ничего не делает.
func (s *incidentService) StartBackgroundSync(interval time.Duration) {
	s.sched.start(interval)
}

// StopBackgroundSync останавливает синхронизацию. Результаты уже летящего
// цикла отбрасываются. Очередь остаётся нетронутой.
func (s *incidentService) StopBackgroundSync() {
	s.sched.stop()
}

// Subscribe регистрирует подписчика событий и возвращает функцию отписки
func (s *incidentService) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// mergedLocked возвращает инцидент с наложенными неподтверждёнными голосами
func (s *incidentService) mergedLocked(id string) *models.Incident {
	inc, ok := s.base[id]
	if !ok {
		return nil
	}
	c := inc.Clone()
	for _, d := range s.deltas[id] {
		c.ApplyVote(d.Vote)
	}
	return c
}

func (s *incidentService) notifyIncidentsChanged() {
	s.mu.Lock()
	view := composeView(s.base, s.deltas, s.clock.Now(), s.opts.ViewLimit)
	s.mu.Unlock()
	s.publish(Event{Kind: EventIncidentsChanged, Incidents: view})
}

func (s *incidentService) notifySyncStatusChanged() {
	s.mu.Lock()
	st := s.statusLocked()
	s.mu.Unlock()
	s.publish(Event{Kind: EventSyncStatusChanged, Status: &st})
}

func (s *incidentService) publish(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func validateDraft(draft *IncidentDraft) error {
	if draft == nil {
		return ErrInvalidDraft
	}
	if !models.ValidEventType(draft.EventType) {
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidDraft, draft.EventType)
	}
	if draft.Latitude < -90 || draft.Latitude > 90 || draft.Longitude < -180 || draft.Longitude > 180 {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidDraft)
	}
	if draft.Latitude == 0 && draft.Longitude == 0 {
		return fmt.Errorf("%w: location is required", ErrInvalidDraft)
	}
	return nil
}

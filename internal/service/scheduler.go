package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/client"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

// errUnmappedTarget: голос нацелен на локальный инцидент, создание которого
// сервер ещё не подтвердил. Запись остаётся в очереди без счёта попытки.
var errUnmappedTarget = errors.New("vote target not yet confirmed by server")

const maxFailedWrites = 20

// scheduler управляет жизненным циклом фоновой синхронизации: один тикер,
// защита от наложения циклов и счётчик поколений, по которому результаты
// устаревших циклов отбрасываются после stop/start.
type scheduler struct {
	svc   *incidentService
	clock clockwork.Clock

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}

	generation atomic.Int64
	inFlight   atomic.Bool
}

func newScheduler(svc *incidentService, clock clockwork.Clock) *scheduler {
	return &scheduler{svc: svc, clock: clock}
}

func (sc *scheduler) start(interval time.Duration) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.running {
		return
	}
	gen := sc.generation.Add(1)
	sc.stopCh = make(chan struct{})
	sc.running = true
	go sc.loop(gen, interval, sc.stopCh)
	sc.svc.logger.WithField("interval", interval.String()).Info("Background sync started")
}

func (sc *scheduler) stop() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if !sc.running {
		return
	}
	close(sc.stopCh)
	sc.running = false
	// Летящий цикл доработает, но его результаты будут отброшены
	sc.generation.Add(1)
	sc.svc.logger.Info("Background sync stopped")
}

func (sc *scheduler) isRunning() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.running
}

func (sc *scheduler) currentGen() int64 {
	return sc.generation.Load()
}

func (sc *scheduler) loop(gen int64, interval time.Duration, stopCh chan struct{}) {
	sc.cycle(gen)
	ticker := sc.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.Chan():
			sc.cycle(gen)
		}
	}
}

func (sc *scheduler) cycle(gen int64) {
	if !sc.inFlight.CompareAndSwap(false, true) {
		sc.svc.logger.Debug("Previous sync cycle still in flight, skipping tick")
		sc.svc.metrics.SyncCycles.WithLabelValues("skipped").Inc()
		return
	}
	defer sc.inFlight.Store(false)
	sc.svc.syncCycle(gen)
}

// syncCycle - один проход синхронизации: доигрывание очереди на сервер,
// затем снимок сервера и сверка локального представления.
func (s *incidentService) syncCycle(gen int64) {
	ctx := context.Background()

	drainErr := s.drainQueue(ctx, gen)
	snapErr := s.pullSnapshot(ctx, gen)

	outcome := "ok"
	cycleErr := errors.Join(drainErr, snapErr)
	if cycleErr != nil {
		outcome = "degraded"
	}
	s.metrics.SyncCycles.WithLabelValues(outcome).Inc()

	pending := -1
	if writes, err := s.queue.ListPending(ctx); err == nil {
		pending = len(writes)
		s.metrics.QueueDepth.Set(float64(pending))
	}

	s.mu.Lock()
	if s.sched.currentGen() == gen {
		s.status.LastSyncAt = s.clock.Now()
		if cycleErr != nil {
			s.status.LastError = cycleErr.Error()
		} else {
			s.status.LastError = ""
		}
		if pending >= 0 {
			s.status.PendingCount = pending
		}
	}
	s.mu.Unlock()

	if cycleErr != nil {
		s.logger.WithError(cycleErr).Warn("Sync cycle finished degraded, keeping local view")
	}
	s.notifySyncStatusChanged()
	s.notifyIncidentsChanged()
}

// drainQueue проигрывает отложенные записи на сервер в порядке постановки.
// Транзиентная ошибка пропускает остальные записи той же цели, сохраняя
// порядок применения для каждого инцидента.
func (s *incidentService) drainQueue(ctx context.Context, gen int64) error {
	writes, err := s.queue.ListPending(ctx)
	if err != nil {
		return err
	}

	var firstTransient error
	skip := make(map[string]bool)
	for _, w := range writes {
		if s.sched.currentGen() != gen {
			return nil
		}
		if skip[w.TargetID] {
			continue
		}

		attemptCtx, cancel := context.WithTimeout(ctx, s.opts.AttemptTimeout)
		err := s.replayWrite(attemptCtx, gen, w)
		cancel()

		switch {
		case err == nil:
			s.metrics.WriteAttempts.WithLabelValues(string(w.Kind), "confirmed").Inc()
		case errors.Is(err, errUnmappedTarget):
			skip[w.TargetID] = true
		case client.IsRejected(err):
			s.metrics.WriteAttempts.WithLabelValues(string(w.Kind), "rejected").Inc()
			s.abandonWrite(ctx, gen, w, err.Error())
		default:
			s.metrics.WriteAttempts.WithLabelValues(string(w.Kind), "transient").Inc()
			if firstTransient == nil {
				firstTransient = err
			}
			attempts, aerr := s.queue.IncrementAttempt(ctx, w.ID)
			if aerr != nil {
				s.logger.WithError(aerr).WithField("write_id", w.ID).Error("Failed to increment write attempts")
				skip[w.TargetID] = true
				continue
			}
			if attempts >= s.opts.SyncMaxAttempts {
				s.abandonWrite(ctx, gen, w, "max sync attempts exceeded: "+err.Error())
			} else {
				s.logger.WithFields(logrus.Fields{
					"write_id": w.ID,
					"attempts": attempts,
				}).Warn("Pending write failed, will retry next cycle")
				skip[w.TargetID] = true
			}
		}
	}
	return firstTransient
}

func (s *incidentService) replayWrite(ctx context.Context, gen int64, w *models.PendingWrite) error {
	switch w.Kind {
	case models.WriteCreateIncident:
		p, err := w.DecodeCreatePayload()
		if err != nil {
			s.abandonWrite(ctx, gen, w, "malformed payload: "+err.Error())
			return nil
		}
		serverInc, err := s.server.CreateIncident(ctx, p)
		if err != nil {
			return err
		}
		return s.confirmCreate(ctx, gen, w, serverInc)
	case models.WriteCastVote:
		target := s.resolveTarget(w.TargetID)
		if models.IsLocalID(target) {
			return errUnmappedTarget
		}
		p, err := w.DecodeVotePayload()
		if err != nil {
			s.abandonWrite(ctx, gen, w, "malformed payload: "+err.Error())
			return nil
		}
		res, err := s.server.CastVote(ctx, target, p)
		if err != nil {
			return err
		}
		s.confirmVote(ctx, gen, w, res)
		return nil
	default:
		s.abandonWrite(ctx, gen, w, "unknown write kind")
		return nil
	}
}

func (s *incidentService) resolveTarget(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mapped, ok := s.idMap[id]; ok {
		return mapped
	}
	return id
}

// confirmCreate фиксирует подтверждённое сервером создание: записывает
// соответствие идентификаторов, перенацеливает оставшиеся записи очереди и
// заменяет локальную запись канонической серверной.
func (s *incidentService) confirmCreate(ctx context.Context, gen int64, w *models.PendingWrite, serverInc *models.Incident) error {
	localID := w.TargetID
	if err := s.queue.SetIDMapping(ctx, localID, serverInc.ID); err != nil {
		return err
	}
	if err := s.queue.RetargetWrites(ctx, localID, serverInc.ID); err != nil {
		return err
	}
	if err := s.queue.DequeueConfirmed(ctx, w.ID); err != nil {
		return err
	}

	s.mu.Lock()
	if s.sched.currentGen() == gen {
		s.idMap[localID] = serverInc.ID
		delete(s.base, localID)
		s.base[serverInc.ID] = serverInc.Clone()
		if pending, ok := s.deltas[localID]; ok {
			s.deltas[serverInc.ID] = append(s.deltas[serverInc.ID], pending...)
			delete(s.deltas, localID)
		}
	}
	s.mu.Unlock()

	// Архивная запись под локальным ID заменена канонической серверной
	if err := s.archive.DeleteIncident(ctx, localID); err != nil {
		s.logger.WithError(err).WithField("incident_id", localID).Warn("Failed to drop local incident from archive")
	}

	s.logger.WithFields(logrus.Fields{
		"local_id":  localID,
		"server_id": serverInc.ID,
	}).Info("Incident creation confirmed by server")
	return nil
}

func (s *incidentService) confirmVote(ctx context.Context, gen int64, w *models.PendingWrite, res *client.VoteResult) {
	if err := s.queue.DequeueConfirmed(ctx, w.ID); err != nil {
		s.logger.WithError(err).WithField("write_id", w.ID).Error("Failed to dequeue confirmed vote")
	}

	s.mu.Lock()
	if s.sched.currentGen() == gen {
		s.removeDeltaLocked(w.ID)
		target := res.IncidentID
		if target == "" {
			target = s.resolveTargetLocked(w.TargetID)
		}
		if inc, ok := s.base[target]; ok {
			inc.Severity = res.Severity
			inc.VerifiedCount = res.VerifiedCount
			inc.UpdatedAt = s.clock.Now()
		}
	}
	s.mu.Unlock()
}

// abandonWrite окончательно снимает запись с очереди и откатывает её
// оптимистичный эффект. Отказ виден пользователю через статус синхронизации.
func (s *incidentService) abandonWrite(ctx context.Context, gen int64, w *models.PendingWrite, reason string) {
	if err := s.queue.DequeueConfirmed(ctx, w.ID); err != nil {
		s.logger.WithError(err).WithField("write_id", w.ID).Error("Failed to dequeue abandoned write")
	}

	s.mu.Lock()
	if s.sched.currentGen() == gen {
		switch w.Kind {
		case models.WriteCreateIncident:
			delete(s.base, w.TargetID)
			delete(s.deltas, w.TargetID)
		case models.WriteCastVote:
			s.removeDeltaLocked(w.ID)
		}
		s.status.FailedWrites = append(s.status.FailedWrites, FailedWrite{
			WriteID:  w.ID,
			Kind:     w.Kind,
			TargetID: w.TargetID,
			Reason:   reason,
			At:       s.clock.Now(),
		})
		if len(s.status.FailedWrites) > maxFailedWrites {
			s.status.FailedWrites = s.status.FailedWrites[len(s.status.FailedWrites)-maxFailedWrites:]
		}
	}
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"write_id": w.ID,
		"kind":     w.Kind,
		"reason":   reason,
	}).Warn("Pending write abandoned")
}

func (s *incidentService) resolveTargetLocked(id string) string {
	if mapped, ok := s.idMap[id]; ok {
		return mapped
	}
	return id
}

func (s *incidentService) removeDeltaLocked(writeID string) {
	for target, list := range s.deltas {
		for i, d := range list {
			if d.WriteID == writeID {
				s.deltas[target] = append(list[:i], list[i+1:]...)
				if len(s.deltas[target]) == 0 {
					delete(s.deltas, target)
				}
				return
			}
		}
	}
}

// pullSnapshot запрашивает снимок сервера и сверяет с ним локальную базу.
// При недоступности сервера представление остаётся прежним (устаревшим).
func (s *incidentService) pullSnapshot(ctx context.Context, gen int64) error {
	attemptCtx, cancel := context.WithTimeout(ctx, s.opts.AttemptTimeout)
	defer cancel()
	snapshot, err := s.server.ListIncidents(attemptCtx)
	if err != nil {
		return err
	}

	start := s.clock.Now()
	var archived []*models.Incident
	s.mu.Lock()
	if s.sched.currentGen() == gen {
		s.base = reconcileBase(s.base, snapshot, s.idMap)
		archived = make([]*models.Incident, 0, len(s.base))
		for _, inc := range s.base {
			archived = append(archived, inc.Clone())
		}
	}
	s.mu.Unlock()
	s.metrics.ReconcileDuration.Observe(s.clock.Since(start).Seconds())

	if len(archived) > 0 {
		if err := s.archive.UpsertIncidents(ctx, archived); err != nil {
			s.logger.WithError(err).Warn("Failed to archive reconciled incidents")
		}
	}
	return nil
}

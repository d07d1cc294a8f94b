package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/service"
)

const (
	pendingOrderKey  = "sync:pending_order"  // список ID записей в порядке постановки
	pendingWritesKey = "sync:pending_writes" // hash ID -> JSON записи
	idMapKey         = "sync:id_map"         // hash локальный ID -> серверный ID
	dismissedKey     = "alerts:dismissed"    // hash identity -> полоса серьёзности на момент скрытия
	tokenKeyPrefix   = "sync:token:"
	tokenWindow      = 30 * time.Second
)

// SyncStore - хранилище очереди синхронизации в Redis.
// Переживает перезапуск процесса: очередь, маркеры идемпотентности и
// сопоставление локальных ID с серверными лежат в одном внешнем хранилище.
type SyncStore struct {
	redisClient *redis.Client
}

func NewSyncStore(redisClient *redis.Client) *SyncStore {
	return &SyncStore{redisClient: redisClient}
}

var _ service.QueueStore = (*SyncStore)(nil)

// Enqueue ставит запись в очередь. Повторная постановка с тем же токеном
// идемпотентности в пределах короткого окна схлопывается: возвращается
// (false, nil) и очередь не меняется.
func (s *SyncStore) Enqueue(ctx context.Context, write *models.PendingWrite) (bool, error) {
	if write.Token != "" {
		ok, err := s.redisClient.SetNX(ctx, tokenKeyPrefix+write.Token, write.ID, tokenWindow).Result()
		if err != nil {
			return false, fmt.Errorf("failed to check idempotency token: %w", err)
		}
		if !ok {
			return false, nil
		}
	}

	payload, err := json.Marshal(write)
	if err != nil {
		return false, fmt.Errorf("failed to marshal pending write: %w", err)
	}

	// Порядок важен только в пределах одного TargetID, но общий список
	// в порядке постановки этого достаточно для FIFO по каждому инциденту.
	pipe := s.redisClient.TxPipeline()
	pipe.HSet(ctx, pendingWritesKey, write.ID, payload)
	pipe.RPush(ctx, pendingOrderKey, write.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to enqueue pending write: %w", err)
	}
	return true, nil
}

// ListPending возвращает все записи очереди в порядке постановки
func (s *SyncStore) ListPending(ctx context.Context) ([]*models.PendingWrite, error) {
	ids, err := s.redisClient.LRange(ctx, pendingOrderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read pending order: %w", err)
	}
	if len(ids) == 0 {
		return []*models.PendingWrite{}, nil
	}

	raw, err := s.redisClient.HMGet(ctx, pendingWritesKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read pending writes: %w", err)
	}

	writes := make([]*models.PendingWrite, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			// Запись уже подтверждена и удалена, ID в списке осиротел
			continue
		}
		w := &models.PendingWrite{}
		if err := json.Unmarshal([]byte(str), w); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pending write: %w", err)
		}
		writes = append(writes, w)
	}
	return writes, nil
}

// DequeueConfirmed удаляет подтверждённую (или окончательно отклонённую) запись
func (s *SyncStore) DequeueConfirmed(ctx context.Context, writeID string) error {
	pipe := s.redisClient.TxPipeline()
	pipe.HDel(ctx, pendingWritesKey, writeID)
	pipe.LRem(ctx, pendingOrderKey, 1, writeID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to dequeue pending write: %w", err)
	}
	return nil
}

// IncrementAttempt увеличивает счётчик попыток записи и возвращает новое значение
func (s *SyncStore) IncrementAttempt(ctx context.Context, writeID string) (int, error) {
	raw, err := s.redisClient.HGet(ctx, pendingWritesKey, writeID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, fmt.Errorf("pending write %s not found", writeID)
		}
		return 0, fmt.Errorf("failed to read pending write: %w", err)
	}

	w := &models.PendingWrite{}
	if err := json.Unmarshal([]byte(raw), w); err != nil {
		return 0, fmt.Errorf("failed to unmarshal pending write: %w", err)
	}
	w.Attempts++

	payload, err := json.Marshal(w)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal pending write: %w", err)
	}
	if err := s.redisClient.HSet(ctx, pendingWritesKey, writeID, payload).Err(); err != nil {
		return 0, fmt.Errorf("failed to update pending write: %w", err)
	}
	return w.Attempts, nil
}

// SetIDMapping сохраняет сопоставление локального ID с серверным
func (s *SyncStore) SetIDMapping(ctx context.Context, localID, serverID string) error {
	if err := s.redisClient.HSet(ctx, idMapKey, localID, serverID).Err(); err != nil {
		return fmt.Errorf("failed to set id mapping: %w", err)
	}
	return nil
}

// GetIDMappings возвращает все известные сопоставления локальный->серверный ID
func (s *SyncStore) GetIDMappings(ctx context.Context) (map[string]string, error) {
	m, err := s.redisClient.HGetAll(ctx, idMapKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read id mappings: %w", err)
	}
	return m, nil
}

// RetargetWrites переадресует все записи очереди с локального ID на серверный.
// Вызывается после подтверждения создания, чтобы голоса, поставленные в очередь
// до подтверждения, ушли на сервер с каноническим идентификатором.
func (s *SyncStore) RetargetWrites(ctx context.Context, localID, serverID string) error {
	writes, err := s.ListPending(ctx)
	if err != nil {
		return err
	}
	for _, w := range writes {
		if w.TargetID != localID {
			continue
		}
		w.TargetID = serverID
		payload, err := json.Marshal(w)
		if err != nil {
			return fmt.Errorf("failed to marshal pending write: %w", err)
		}
		if err := s.redisClient.HSet(ctx, pendingWritesKey, w.ID, payload).Err(); err != nil {
			return fmt.Errorf("failed to retarget pending write: %w", err)
		}
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/alerts"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

// DismissalStore хранит скрытые пользователем оповещения в Redis.
// Для каждой identity запоминается полоса серьёзности на момент скрытия:
// оповещение возвращается только если полоса выросла.
type DismissalStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewDismissalStore(redisClient *redis.Client, ttl time.Duration) *DismissalStore {
	return &DismissalStore{redisClient: redisClient, ttl: ttl}
}

var _ alerts.DismissalStore = (*DismissalStore)(nil)

// Dismiss запоминает скрытие оповещения
func (s *DismissalStore) Dismiss(ctx context.Context, identity string, band models.SeverityBand) error {
	pipe := s.redisClient.TxPipeline()
	pipe.HSet(ctx, dismissedKey, identity, string(band))
	pipe.Expire(ctx, dismissedKey, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store dismissal: %w", err)
	}
	return nil
}

// DismissedBand возвращает полосу серьёзности скрытого оповещения,
// (""), false - если оповещение не скрывалось
func (s *DismissalStore) DismissedBand(ctx context.Context, identity string) (models.SeverityBand, bool, error) {
	val, err := s.redisClient.HGet(ctx, dismissedKey, identity).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read dismissal: %w", err)
	}
	return models.SeverityBand(val), true, nil
}

package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Cache - потокобезопасный кэш в памяти с TTL, задаваемым при создании.
// Явный объект без состояния на уровне пакета: владелец создаёт кэш и
// передаёт его по ссылке нуждающимся компонентам.
type Cache struct {
	ttl     time.Duration
	entries map[string]*entry
	mutex   sync.RWMutex
}

type entry struct {
	data      []byte
	createdAt time.Time
	expiresAt time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]*entry),
	}
}

// Set сохраняет значение в кэш
func (c *Cache) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for cache: %w", err)
	}

	now := time.Now()
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[key] = &entry{
		data:      data,
		createdAt: now,
		expiresAt: now.Add(c.ttl),
	}
	return nil
}

// Get читает значение, если оно ещё не устарело
func (c *Cache) Get(key string, out any) (bool, error) {
	c.mutex.RLock()
	e, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists || time.Now().After(e.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(e.data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}
	return true, nil
}

// GetStale читает значение даже после истечения TTL, но не старше 2x TTL.
// Нужен для деградации "устаревшие данные лучше, чем никакие".
func (c *Cache) GetStale(key string, out any) (bool, error) {
	c.mutex.RLock()
	e, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists || time.Now().After(e.createdAt.Add(2*c.ttl)) {
		return false, nil
	}
	if err := json.Unmarshal(e.data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}
	return true, nil
}

// Delete удаляет запись из кэша
func (c *Cache) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.entries, key)
}

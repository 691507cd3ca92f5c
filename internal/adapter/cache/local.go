package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/ports"
)

type localEntry struct {
	value     string
	expiresAt time.Time
}

// LocalCache is an in-memory ports.Cache, used when Redis is unreachable.
// Revoked tokens only survive until restart.
type LocalCache struct {
	mu      sync.RWMutex
	entries map[string]localEntry
	now     func() time.Time
	log     *zap.Logger
	stop    chan struct{}
	once    sync.Once
}

func NewLocalCache(cleanupInterval time.Duration, log *zap.Logger) *LocalCache {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}

	c := &LocalCache{
		entries: make(map[string]localEntry),
		now:     time.Now,
		log:     log,
		stop:    make(chan struct{}),
	}
	go c.sweepLoop(cleanupInterval)

	log.Info("Local in-memory cache initialized", zap.Duration("cleanup_interval", cleanupInterval))
	return c
}

func (c *LocalCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.expired(e) {
		return "", ports.ErrCacheMiss
	}
	return e.value, nil
}

func (c *LocalCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	s, err := stringify(value)
	if err != nil {
		return err
	}

	e := localEntry{value: s}
	if expiration > 0 {
		e.expiresAt = c.now().Add(expiration)
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *LocalCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *LocalCache) Ping() error { return nil }

func (c *LocalCache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

func (c *LocalCache) expired(e localEntry) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}

func (c *LocalCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

func (c *LocalCache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
			removed++
		}
	}
	if removed > 0 {
		c.log.Debug("Cache sweep completed", zap.Int("expired_entries", removed))
	}
	return removed
}

func stringify(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal cache value: %w", err)
		}
		return string(data), nil
	}
}

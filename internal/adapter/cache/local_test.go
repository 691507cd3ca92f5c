package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/ports"
)

func newTestLogger() *zap.Logger {
	log, _ := zap.NewDevelopment()
	return log
}

func TestLocalCache_SetGet(t *testing.T) {
	// Arrange
	c := NewLocalCache(time.Hour, newTestLogger())
	defer c.Close()
	ctx := context.Background()

	// Act
	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "k")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "v" {
		t.Errorf("expected v, got %q", got)
	}
}

func TestLocalCache_MissAndExpiry(t *testing.T) {
	// Arrange
	c := NewLocalCache(time.Hour, newTestLogger())
	defer c.Close()
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "revoked_token:abc", "1", time.Minute)

	// Act
	now = now.Add(2 * time.Minute)
	_, err := c.Get(ctx, "revoked_token:abc")
	_, missErr := c.Get(ctx, "absent")

	// Assert
	if !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss for expired key, got %v", err)
	}
	if !errors.Is(missErr, ports.ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss for absent key, got %v", missErr)
	}
	if n := c.sweep(); n != 1 {
		t.Errorf("expected sweep to remove 1 entry, got %d", n)
	}
}

func TestLocalCache_StructValueAndDelete(t *testing.T) {
	c := NewLocalCache(time.Hour, newTestLogger())
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "insights", map[string]int{"progress": 67}, 0)
	got, _ := c.Get(ctx, "insights")
	if got != `{"progress":67}` {
		t.Errorf("expected JSON value, got %q", got)
	}

	_ = c.Delete(ctx, "insights")
	if _, err := c.Get(ctx, "insights"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected miss after delete, got %v", err)
	}
}

func TestLocalCache_CloseTwice(t *testing.T) {
	c := NewLocalCache(time.Hour, newTestLogger())
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}

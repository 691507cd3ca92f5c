//go:build integration

package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/lyra-ai/lyra-backend/internal/ports"
)

func redisURL(t *testing.T) string {
	t.Helper()
	if url := os.Getenv("REDIS_URL"); url != "" {
		return url
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate redis container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("Failed to get redis connection string: %v", err)
	}
	return url
}

func TestRedisCache_Integration(t *testing.T) {
	// Arrange
	ctx := context.Background()
	c, err := NewRedisCache(ctx, redisURL(t), newTestLogger())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	// Act
	if err := c.Set(ctx, "revoked_token:jti-1", "1", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "revoked_token:jti-1")

	// Assert
	if err != nil || got != "1" {
		t.Fatalf("expected stored value, got %q %v", got, err)
	}
	if err := c.Delete(ctx, "revoked_token:jti-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, "revoked_token:jti-1"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
	if err := c.Ping(); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "redis://127.0.0.1:1/0", newTestLogger())
	if err == nil {
		t.Fatal("expected connection error")
	}
}

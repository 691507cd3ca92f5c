package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/mocks"
)

type fakeQueue struct{ connected bool }

func (f fakeQueue) IsConnected() bool { return f.connected }

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestReady_AllHealthy(t *testing.T) {
	// Arrange
	service := NewService(&Config{
		Version: "test",
		Cache:   mocks.NewMockCache(),
		Queue:   fakeQueue{connected: true},
	}, newTestLogger())

	// Act
	resp := service.Ready(context.Background())

	// Assert
	if !resp.Ready || resp.Status != StatusHealthy {
		t.Errorf("expected ready and healthy, got %+v", resp)
	}
	if len(resp.Checks) != 2 {
		t.Errorf("expected 2 checks, got %d", len(resp.Checks))
	}
}

func TestReady_CacheDown(t *testing.T) {
	cache := mocks.NewMockCache()
	cache.PingFunc = func() error { return errors.New("connection refused") }

	service := NewService(&Config{Cache: cache}, newTestLogger())
	resp := service.Ready(context.Background())

	if resp.Ready || resp.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %+v", resp)
	}
}

func TestReady_QueueDownIsDegraded(t *testing.T) {
	service := NewService(&Config{Queue: fakeQueue{connected: false}}, newTestLogger())

	resp := service.Ready(context.Background())

	if !resp.Ready || resp.Status != StatusDegraded {
		t.Errorf("expected ready but degraded, got %+v", resp)
	}
}

func TestFiberHandler_ReadyStatusCode(t *testing.T) {
	// Arrange
	cache := mocks.NewMockCache()
	cache.PingFunc = func() error { return errors.New("down") }
	app := fiber.New()
	NewFiberHandler(NewService(&Config{Cache: cache}, newTestLogger())).RegisterRoutes(app)

	// Act
	resp, err := app.Test(httptest.NewRequest("GET", "/readyz", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	// Assert
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	var ready ReadyResponse
	if err := json.Unmarshal(body, &ready); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ready.Checks["cache"].Status != StatusUnhealthy {
		t.Errorf("expected cache check unhealthy, got %+v", ready.Checks)
	}
}

func TestFiberHandler_Health(t *testing.T) {
	app := fiber.New()
	NewFiberHandler(NewService(&Config{Version: "1.2.3"}, newTestLogger())).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

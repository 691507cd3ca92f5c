package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/mocks"
	"github.com/lyra-ai/lyra-backend/internal/observability/telemetry"
	"github.com/lyra-ai/lyra-backend/pkg/config"
)

func newTestLogger() *zap.Logger {
	log, _ := zap.NewDevelopment()
	return log
}

func get(t *testing.T, app *fiber.App, path string, header map[string]string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestAuthRequired(t *testing.T) {
	// Arrange
	auth := &mocks.MockAuthService{
		ValidateTokenFunc: func(ctx context.Context, token string) (*domain.User, error) {
			if token != "good" {
				return nil, domain.ErrInvalidToken
			}
			return &domain.User{ID: "user-1", Role: domain.UserRoleUser}, nil
		},
	}
	app := fiber.New()
	var seen string
	app.Get("/me", AuthRequired(auth), func(c *fiber.Ctx) error {
		seen, _ = c.Locals("user_id").(string)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer bad", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			status := get(t, app, "/me", map[string]string{"Authorization": tt.header})

			// Assert
			if status != tt.status {
				t.Errorf("expected %d, got %d", tt.status, status)
			}
		})
	}
	if seen != "user-1" {
		t.Errorf("expected user_id local, got %q", seen)
	}
}

func TestQueryTokenAuth(t *testing.T) {
	auth := &mocks.MockAuthService{
		ValidateTokenFunc: func(ctx context.Context, token string) (*domain.User, error) {
			return &domain.User{ID: "user-1"}, nil
		},
	}
	app := fiber.New()
	app.Get("/ws", QueryTokenAuth(auth), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	if s := get(t, app, "/ws", nil); s != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", s)
	}
	if s := get(t, app, "/ws?token=abc", nil); s != http.StatusOK {
		t.Errorf("expected 200 with token, got %d", s)
	}
}

func TestCircuitBreaker_OpensOnServerErrors(t *testing.T) {
	// Arrange
	app := fiber.New()
	app.Use(CircuitBreaker(config.CircuitBreakerConfig{MaxRequests: 2, Timeout: time.Minute, FailureThreshold: 0.5}, newTestLogger()))
	app.Get("/boom", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusInternalServerError) })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	// Act
	for i := 0; i < 2; i++ {
		get(t, app, "/boom", nil)
	}
	status := get(t, app, "/boom", nil)

	// Assert
	if status != http.StatusServiceUnavailable {
		t.Errorf("expected 503 once open, got %d", status)
	}
}

func TestCircuitBreaker_IgnoresClientErrors(t *testing.T) {
	app := fiber.New()
	app.Use(CircuitBreaker(config.CircuitBreakerConfig{MaxRequests: 2, Timeout: time.Minute, FailureThreshold: 0.5}, newTestLogger()))
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	var status int
	for i := 0; i < 4; i++ {
		status = get(t, app, "/missing", nil)
	}

	if status != http.StatusNotFound {
		t.Errorf("expected 404 to pass through, got %d", status)
	}
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(config.RateLimitingConfig{MaxRequests: 2, Window: time.Minute}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	get(t, app, "/", nil)
	get(t, app, "/", nil)
	status := get(t, app, "/", nil)

	if status != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", status)
	}
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	// Arrange
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/tasks/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	counter := telemetry.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/tasks/:id", "200")
	before := testutil.ToFloat64(counter)

	// Act
	get(t, app, "/tasks/abc", nil)
	get(t, app, "/tasks/def", nil)

	// Assert
	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("expected 2 requests on template label, got %v", got)
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(newTestLogger())})
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	app.Get("/panic-free", func(c *fiber.Ctx) error { return context.DeadlineExceeded })

	if s := get(t, app, "/teapot", nil); s != fiber.StatusTeapot {
		t.Errorf("expected 418, got %d", s)
	}
	if s := get(t, app, "/panic-free", nil); s != fiber.StatusInternalServerError {
		t.Errorf("expected 500, got %d", s)
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/adapter/ai/openai"
	"github.com/lyra-ai/lyra-backend/internal/adapter/cache"
	"github.com/lyra-ai/lyra-backend/internal/adapter/http/fiber/handlers"
	"github.com/lyra-ai/lyra-backend/internal/adapter/http/fiber/middleware"
	"github.com/lyra-ai/lyra-backend/internal/adapter/queue"
	"github.com/lyra-ai/lyra-backend/internal/adapter/storage/postgres"
	"github.com/lyra-ai/lyra-backend/internal/adapter/vault"
	wsAdapter "github.com/lyra-ai/lyra-backend/internal/adapter/websocket"
	"github.com/lyra-ai/lyra-backend/internal/observability/telemetry"
	"github.com/lyra-ai/lyra-backend/internal/ports"
	"github.com/lyra-ai/lyra-backend/internal/service/assistant"
	"github.com/lyra-ai/lyra-backend/internal/service/auth"
	"github.com/lyra-ai/lyra-backend/internal/service/goal"
	"github.com/lyra-ai/lyra-backend/internal/service/health"
	"github.com/lyra-ai/lyra-backend/internal/service/note"
	"github.com/lyra-ai/lyra-backend/internal/service/task"
	"github.com/lyra-ai/lyra-backend/internal/service/voice"
	"github.com/lyra-ai/lyra-backend/pkg/config"
	"github.com/lyra-ai/lyra-backend/pkg/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 2. Initialize Logger
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Lyra backend",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Secrets from Vault
	if cfg.Vault.Enabled {
		sm, err := vault.NewSecretManager(cfg.Vault, logger)
		if err != nil {
			logger.Fatal("Failed to create Vault client", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		secrets, err := sm.LoadSecrets(ctx)
		cancel()
		if err != nil {
			logger.Fatal("Failed to load secrets from Vault", zap.Error(err))
		}
		cfg.ApplySecrets(secrets)
		logger.Info("Secrets loaded from Vault", zap.String("address", cfg.Vault.Address))
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("jwt.secret is required")
	}

	// 4. Initialize Tracer
	if cfg.OpenTelemetry.Enabled {
		tp, err := telemetry.InitTracer(cfg.OpenTelemetry.ServiceName, cfg.App.Version,
			cfg.OpenTelemetry.Jaeger.Endpoint, cfg.OpenTelemetry.Jaeger.SamplerParam)
		if err != nil {
			logger.Warn("Failed to initialize tracer, continuing without tracing", zap.Error(err))
		} else if tp != nil {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tp.Shutdown(ctx); err != nil {
					logger.Error("Error shutting down tracer provider", zap.Error(err))
				}
			}()
		}
	}

	// 5. Database
	db, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer postgres.Close(db)

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Info("Database migrations applied")
	}

	var sqlDB *sql.DB
	if sqlDB, err = db.DB(); err != nil {
		logger.Fatal("Failed to get database handle", zap.Error(err))
	}

	// 6. Cache
	appCache := newCache(cfg, logger)
	defer appCache.Close()

	// 7. Message Queue
	var mq queue.MessageQueue
	if cfg.Queue.Driver != "none" {
		mq, err = queue.New(cfg.Queue.Driver, cfg.Queue.NATSURL, cfg.Queue.RabbitMQURL, logger)
		if err != nil {
			logger.Warn("Message queue unavailable, action events disabled",
				zap.String("driver", cfg.Queue.Driver),
				zap.Error(err),
			)
			mq = nil
		} else {
			defer mq.Close()
		}
	}

	// 8. Repositories
	userRepo := postgres.NewUserRepository(db, logger)
	taskRepo := postgres.NewTaskRepository(db, logger)
	goalRepo := postgres.NewGoalRepository(db, logger)
	noteRepo := postgres.NewNoteRepository(db, logger)
	voiceRepo := postgres.NewVoiceRepository(db, logger)

	// 9. Services
	tokens := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTokenDuration, cfg.JWT.RefreshTokenDuration, appCache, logger)
	authService := auth.NewService(userRepo, tokens, logger)

	taskService := task.NewService(taskRepo, logger)
	goalService := goal.NewService(goalRepo, logger)
	noteService := note.NewService(noteRepo, logger)

	assistantOpts := []assistant.Option{assistant.WithGoalHorizon(cfg.Assistant.GoalHorizon)}
	if mq != nil && cfg.Assistant.PublishEvents {
		assistantOpts = append(assistantOpts, assistant.WithPublisher(mq))
	}
	assistantService := assistant.NewService(taskService, goalService, noteService, logger, assistantOpts...)

	whisper := openai.NewWhisperClient(cfg.OpenAI, cfg.CircuitBreaker, logger)
	voiceService := voice.NewService(voiceRepo, whisper, assistantService, logger)

	healthConfig := &health.Config{
		Version:       cfg.App.Version,
		DB:            sqlDB,
		Cache:         appCache,
		CacheOptional: !cfg.Redis.Required,
	}
	if mq != nil {
		healthConfig.Queue = mq
	}
	healthService := health.NewService(healthConfig, logger)

	// 10. HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		BodyLimit:             cfg.HTTP.BodyLimit,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path}\n",
	}))
	app.Use(middleware.Metrics())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}

	health.NewFiberHandler(healthService).RegisterRoutes(app)
	app.Get("/metrics", func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())(c.Context())
		return nil
	})

	api := app.Group("/api/v1")
	if cfg.RateLimiting.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimiting))
	}
	if cfg.CircuitBreaker.Enabled {
		api.Use(middleware.CircuitBreaker(cfg.CircuitBreaker, logger))
	}

	handlers.RegisterRoutes(api, handlers.Handlers{
		Auth:      handlers.NewAuthHandler(authService, logger),
		Assistant: handlers.NewAssistantHandler(assistantService, logger),
		Task:      handlers.NewTaskHandler(taskService, logger),
		Goal:      handlers.NewGoalHandler(goalService, logger),
		Note:      handlers.NewNoteHandler(noteService, logger),
		Voice:     handlers.NewVoiceHandler(voiceService, logger),
	}, middleware.AuthRequired(authService))

	// 11. WebSocket
	hub := wsAdapter.NewHub(logger)
	wsAdapter.SetupRoutes(app, wsAdapter.NewAssistantStreamHandler(assistantService, hub, logger), middleware.QueryTokenAuth(authService))

	// 12. Background Workers
	if mq != nil {
		startWorkers(mq, hub, logger)
	}

	// 13. Start Server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
		logger.Info("HTTP server listening", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 14. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("Servers stopped")
}

// newCache prefers Redis and falls back to the in-process cache unless
// redis.required is set.
func newCache(cfg *config.Config, logger *zap.Logger) ports.Cache {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.URL, logger)
	if err == nil {
		return redisCache
	}
	if cfg.Redis.Required {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	logger.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
	return cache.NewLocalCache(time.Minute, logger)
}

func startWorkers(mq queue.MessageQueue, hub *wsAdapter.Hub, logger *zap.Logger) {
	if err := assistant.NewActionRecorder(logger).Start(mq); err != nil {
		logger.Error("Failed to start action recorder", zap.Error(err))
	}
	if err := mq.Subscribe(assistant.ActionsSubject, hub.HandleActionEvent); err != nil {
		logger.Error("Failed to subscribe websocket hub to action events", zap.Error(err))
	}
}

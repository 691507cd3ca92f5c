package postgres

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/internal/observability/telemetry"
	"github.com/lyra-ai/lyra-backend/pkg/config"
)

const startedAtKey = "lyra:started_at"

// NewConnection opens a GORM connection and applies the pool settings.
func NewConnection(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.LogQueries {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := registerLatencyCallbacks(db); err != nil {
		return nil, err
	}

	log.Info("Connected to PostgreSQL",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)
	return db, nil
}

// RunMigrations creates or updates the tables for every persisted record.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Task{},
		&domain.Goal{},
		&domain.Note{},
		&domain.VoiceSession{},
		&domain.Transcription{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// registerLatencyCallbacks feeds every statement's duration into
// lyra_database_latency_seconds.
func registerLatencyCallbacks(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(startedAtKey, time.Now())
	}
	after := func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(startedAtKey)
		if !ok {
			return
		}
		if started, ok := v.(time.Time); ok {
			telemetry.DatabaseLatency.Observe(time.Since(started).Seconds())
		}
	}

	cb := db.Callback()
	hooks := []struct {
		name string
		err  error
	}{
		{"create:before", cb.Create().Before("gorm:create").Register("lyra:latency_before_create", before)},
		{"create:after", cb.Create().After("gorm:create").Register("lyra:latency_after_create", after)},
		{"query:before", cb.Query().Before("gorm:query").Register("lyra:latency_before_query", before)},
		{"query:after", cb.Query().After("gorm:query").Register("lyra:latency_after_query", after)},
		{"update:before", cb.Update().Before("gorm:update").Register("lyra:latency_before_update", before)},
		{"update:after", cb.Update().After("gorm:update").Register("lyra:latency_after_update", after)},
		{"delete:before", cb.Delete().Before("gorm:delete").Register("lyra:latency_before_delete", before)},
		{"delete:after", cb.Delete().After("gorm:delete").Register("lyra:latency_after_delete", after)},
	}
	for _, h := range hooks {
		if h.err != nil {
			return fmt.Errorf("register %s callback: %w", h.name, h.err)
		}
	}
	return nil
}

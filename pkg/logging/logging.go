package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lyra-ai/lyra-backend/pkg/config"
)

// New builds a JSON production logger, or a console logger when
// cfg.Format is "console".
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(orDefault(cfg.Level, "info"))))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	zc.Sampling = nil
	if cfg.Sampling.Enabled {
		zc.Sampling = &zap.SamplingConfig{
			Initial:    positive(cfg.Sampling.Initial, 100),
			Thereafter: positive(cfg.Sampling.Thereafter, 100),
		}
	}

	return zc.Build()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func positive(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

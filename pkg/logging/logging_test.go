package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/lyra-ai/lyra-backend/pkg/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.LoggingConfig
		level zapcore.Level
	}{
		{"default", config.LoggingConfig{}, zapcore.InfoLevel},
		{"debug console", config.LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{"upper case", config.LoggingConfig{Level: "WARN"}, zapcore.WarnLevel},
		{"sampled", config.LoggingConfig{Level: "error", Sampling: config.LoggingSampling{Enabled: true}}, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !log.Core().Enabled(tt.level) {
				t.Errorf("expected %s to be enabled", tt.level)
			}
			if tt.level > zapcore.DebugLevel && log.Core().Enabled(tt.level-1) {
				t.Errorf("expected %s to be disabled", tt.level-1)
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

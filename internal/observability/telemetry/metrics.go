package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Assistant
	VoiceCommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lyra_voice_commands_total",
		Help: "Voice commands processed by the assistant",
	}, []string{"intent", "outcome"})

	VoiceCommandLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lyra_voice_command_latency_seconds",
		Help:    "Time spent classifying and dispatching a voice command",
		Buckets: prometheus.DefBuckets,
	})

	AssistantActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lyra_assistant_actions_total",
		Help: "Actions recorded by the assistant",
	}, []string{"type", "status"})

	TranscriptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lyra_transcriptions_total",
		Help: "Speech-to-text requests",
	}, []string{"status"})

	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lyra_http_requests_total",
		Help: "HTTP requests served",
	}, []string{"method", "route", "status"})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lyra_database_latency_seconds",
		Help:    "Latency of store queries",
		Buckets: prometheus.DefBuckets,
	})
)

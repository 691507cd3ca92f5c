package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/internal/domain"
	"github.com/lyra-ai/lyra-backend/pkg/config"
)

// Whisper reports no confidence score.
const whisperConfidence = 0.9

var ErrNotConfigured = errors.New("openai: API key not configured")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("openai: API error status %d", e.StatusCode)
	}
	return fmt.Sprintf("openai: API error status %d: %s", e.StatusCode, e.Message)
}

// WhisperClient implements ports.SpeechToText against /audio/transcriptions.
type WhisperClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *zap.Logger
}

func NewWhisperClient(cfg config.OpenAIConfig, cb config.CircuitBreakerConfig, log *zap.Logger) *WhisperClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "whisper-1"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &WhisperClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    newBreaker("openai-whisper", cb, log),
		log:        log,
	}
}

func newBreaker(name string, cfg config.CircuitBreakerConfig, log *zap.Logger) *gobreaker.CircuitBreaker {
	threshold := cfg.FailureThreshold
	if threshold <= 0 {
		threshold = 0.6
	}
	minRequests := uint32(cfg.MaxRequests)
	if minRequests == 0 {
		minRequests = 3
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: minRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && ratio >= threshold
		},
		// client errors say nothing about the upstream's health
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.StatusCode < 500
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

type transcriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *WhisperClient) Transcribe(ctx context.Context, audio []byte, format, language string) (*domain.Transcript, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.transcribe(ctx, audio, format, language)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("openai: transcription unavailable: %w", err)
		}
		return nil, err
	}

	res := out.(*transcriptionResponse)
	c.log.Debug("Audio transcribed",
		zap.Int("bytes", len(audio)),
		zap.String("format", format),
		zap.Int("chars", len(res.Text)),
	)

	lang := res.Language
	if lang == "" {
		lang = language
	}
	return &domain.Transcript{
		Text:       strings.TrimSpace(res.Text),
		Language:   lang,
		Confidence: whisperConfidence,
	}, nil
}

func (c *WhisperClient) transcribe(ctx context.Context, audio []byte, format, language string) (*transcriptionResponse, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile("file", "audio."+strings.ToLower(format))
	if err != nil {
		return nil, fmt.Errorf("openai: create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("openai: write audio: %w", err)
	}
	fields := map[string]string{"model": c.model, "response_format": "json"}
	if language != "" {
		fields["language"] = language
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("openai: write field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("openai: close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e errorResponse
		if raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)); json.Unmarshal(raw, &e) == nil {
			apiErr.Message = e.Error.Message
		}
		return nil, apiErr
	}

	var result transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	return &result, nil
}

package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/jalshakti/sahayak/internal/infrastructure/metrics"
)

var (
	ErrUnavailable     = errors.New("speech transcription is not configured")
	ErrEmptyTranscript = errors.New("no speech recognised in audio")
)

// Transcriber converts recorded citizen speech to text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// WhisperTranscriber calls a Whisper-compatible /audio/transcriptions endpoint.
type WhisperTranscriber struct {
	client   *openai.Client
	model    string
	language string
}

// NewWhisperTranscriber builds a transcriber for the given OpenAI-compatible endpoint.
func NewWhisperTranscriber(apiKey, baseURL, model, language string) *WhisperTranscriber {
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &WhisperTranscriber{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		language: language,
	}
}

// Transcribe implements Transcriber.
func (w *WhisperTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: filename,
		Reader:   audio,
		Language: w.language,
	})
	if err != nil {
		metrics.TranscriptionsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("transcribe audio: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		metrics.TranscriptionsTotal.WithLabelValues("empty").Inc()
		return "", ErrEmptyTranscript
	}
	metrics.TranscriptionsTotal.WithLabelValues("ok").Inc()
	return text, nil
}

// Disabled is used when no speech credential is configured.
type Disabled struct{}

func (Disabled) Transcribe(context.Context, string, io.Reader) (string, error) {
	return "", ErrUnavailable
}

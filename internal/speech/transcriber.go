// Package speech turns recorded audio into journal text.
package speech

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/config"
)

//go:generate mockgen -source=transcriber.go -destination=../mocks/speech/mock_transcriber.go -package=mock_speech

// Transcription is the text recognized from an audio file.
type Transcription struct {
	Text string
	// DurationSeconds is zero when the service did not report it.
	DurationSeconds int
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (Transcription, error)
}

var errNotConfigured = errors.New("speech endpoint is not configured")

// New returns an HTTP transcriber, or one that always fails when no endpoint is configured.
func New(cfg config.SpeechConfig) Transcriber {
	if cfg.Endpoint == "" {
		return unavailable{}
	}
	return NewHTTPTranscriber(cfg)
}

type unavailable struct{}

func (unavailable) Transcribe(context.Context, string) (Transcription, error) {
	return Transcription{}, apperr.Adapter("speech", errNotConfigured)
}

type HTTPTranscriber struct {
	client *resty.Client
}

func NewHTTPTranscriber(cfg config.SpeechConfig) *HTTPTranscriber {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.Endpoint, "/")).
		SetTimeout(cfg.Timeout()).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return &HTTPTranscriber{client: client}
}

type transcribeRequest struct {
	AudioURL string `json:"audio_url"`
}

type transcribeResponse struct {
	Text            string `json:"text"`
	DurationSeconds int    `json:"duration_seconds"`
}

func (t *HTTPTranscriber) Transcribe(ctx context.Context, audioURL string) (Transcription, error) {
	var body transcribeResponse
	res, err := t.client.R().
		SetContext(ctx).
		SetBody(transcribeRequest{AudioURL: audioURL}).
		SetResult(&body).
		Post("/v1/audio/transcriptions")
	if err != nil {
		return Transcription{}, apperr.Adapter("speech", fmt.Errorf("post transcription request: %w", err))
	}
	if res.StatusCode() != http.StatusOK {
		return Transcription{}, apperr.Adapter("speech",
			fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body())))
	}
	return Transcription{
		Text:            strings.TrimSpace(body.Text),
		DurationSeconds: body.DurationSeconds,
	}, nil
}

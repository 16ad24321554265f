// Package moderation classifies journal content before it becomes visible.
package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/config"
)

//go:generate mockgen -source=classifier.go -destination=../mocks/moderation/mock_classifier.go -package=mock_moderation

type Verdict string

const (
	VerdictClean    Verdict = "clean"
	VerdictRejected Verdict = "rejected"
	// VerdictError is applied when the classifier could not decide.
	VerdictError Verdict = "error"
)

func (v Verdict) Valid() bool {
	switch v {
	case VerdictClean, VerdictRejected, VerdictError:
		return true
	}
	return false
}

// Classifier decides whether content may be published.
type Classifier interface {
	Classify(ctx context.Context, content string) (Verdict, error)
}

// New returns an HTTP classifier for the configured endpoint, or AllowAll
// when no endpoint is configured.
func New(cfg config.ModerationConfig, logger *slog.Logger) Classifier {
	if cfg.Endpoint == "" {
		logger.Warn("moderation endpoint is not configured, all content is accepted")
		return AllowAll{}
	}
	return NewHTTPClassifier(cfg)
}

// AllowAll accepts every content.
type AllowAll struct{}

func (AllowAll) Classify(context.Context, string) (Verdict, error) {
	return VerdictClean, nil
}

// HTTPClassifier calls a moderation service over HTTP.
type HTTPClassifier struct {
	client *resty.Client
}

func NewHTTPClassifier(cfg config.ModerationConfig) *HTTPClassifier {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.Endpoint, "/")).
		SetTimeout(cfg.Timeout()).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return &HTTPClassifier{client: client}
}

type classifyRequest struct {
	Content string `json:"content"`
}

type classifyResponse struct {
	Verdict Verdict  `json:"verdict"`
	Labels  []string `json:"labels"`
}

// Classify returns VerdictClean or VerdictRejected. Transport failures,
// non-2xx responses and unknown verdicts are adapter errors.
func (c *HTTPClassifier) Classify(ctx context.Context, content string) (Verdict, error) {
	var body classifyResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(classifyRequest{Content: content}).
		SetResult(&body).
		Post("/v1/text/moderation")
	if err != nil {
		return VerdictError, apperr.Adapter("moderation", fmt.Errorf("post moderation request: %w", err))
	}
	if res.StatusCode() < http.StatusOK || res.StatusCode() >= http.StatusMultipleChoices {
		return VerdictError, apperr.Adapter("moderation",
			fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body())))
	}
	switch body.Verdict {
	case VerdictClean, VerdictRejected:
		return body.Verdict, nil
	}
	return VerdictError, apperr.Adapter("moderation", fmt.Errorf("unknown verdict %q", body.Verdict))
}

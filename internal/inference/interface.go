// Package inference defines the language-model client used for entry analysis and insight cards.
package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client sends a single prompt to a chat-completion model.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is one system + user prompt exchange.
type CompletionRequest struct {
	System string
	User   string
	// ModelKey selects a configured model; empty uses the default model.
	ModelKey string
	// Temperature overrides the configured temperature when set.
	Temperature *float32
}

const (
	DefaultMaxRetryAttempts = 3
)

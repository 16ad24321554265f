package openai

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"resty.dev/v3"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/inference"
)

// Client talks to OpenAI-compatible chat completion APIs of several providers.
type Client struct {
	providers        map[string]provider
	defaultProvider  string
	defaultModelKey  string
	temperature      float32
	timeout          time.Duration
	maxRetryAttempts uint
	logger           *slog.Logger
}

type provider struct {
	name       string
	httpClient *resty.Client
	models     map[string]string
}

func NewClient(cfg config.LLMConfig, logger *slog.Logger) *Client {
	providers := make(map[string]provider, len(cfg.Providers))
	for name, p := range cfg.Providers {
		client := resty.New()
		client.SetBaseURL(p.BaseURL)
		client.SetHeader("Authorization", "Bearer "+p.APIKey)
		client.SetHeader("Content-Type", "application/json")
		providers[name] = provider{name: name, httpClient: client, models: p.Models}
	}

	return &Client{
		providers:        providers,
		defaultProvider:  cfg.DefaultProvider,
		defaultModelKey:  cfg.DefaultModelKey,
		temperature:      cfg.Temperature,
		timeout:          cfg.Timeout(),
		maxRetryAttempts: cfg.MaxRetryAttempts,
		logger:           logger.With("component", "llm"),
	}
}

func (client *Client) Close() error {
	var firstErr error
	for _, p := range client.providers {
		if err := p.httpClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// resolveModel finds the provider and model id for a model key.
// The default provider is searched first, then the others by name.
func (client *Client) resolveModel(modelKey string) (provider, string, error) {
	if modelKey == "" {
		modelKey = client.defaultModelKey
	}
	if p, ok := client.providers[client.defaultProvider]; ok {
		if id, ok := p.models[modelKey]; ok {
			return p, id, nil
		}
	}
	names := make([]string, 0, len(client.providers))
	for name := range client.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := client.providers[name]
		if id, ok := p.models[modelKey]; ok {
			return p, id, nil
		}
	}
	return provider{}, "", fmt.Errorf("model key %q is not configured", modelKey)
}

// Complete implements the inference.Client interface.
// Every failure is reported as an adapter error.
func (client *Client) Complete(ctx context.Context, req inference.CompletionRequest) (string, error) {
	p, model, err := client.resolveModel(req.ModelKey)
	if err != nil {
		return "", apperr.Adapter("llm", err)
	}

	temperature := client.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	body := ChatCompletionRequest{
		Model:       model,
		Temperature: temperature,
		Messages:    make([]Message, 0, 2),
	}
	if req.System != "" {
		body.Messages = append(body.Messages, Message{Role: RoleSystem, Content: req.System})
	}
	body.Messages = append(body.Messages, Message{Role: RoleUser, Content: req.User})

	var content string
	err = client.withRetry(ctx, p.name, func(ctx context.Context) error {
		var err error
		content, err = client.complete(ctx, p, body)
		return err
	})
	if err != nil {
		return "", apperr.Adapter("llm", err)
	}
	return content, nil
}

func (client *Client) complete(ctx context.Context, p provider, body ChatCompletionRequest) (string, error) {
	if client.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.timeout)
		defer cancel()
	}

	response, err := p.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}
	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}

	client.logger.Debug("chat completion",
		"provider", p.name,
		"model", body.Model,
		"prompt_tokens", responseBody.Usage.PromptTokens,
		"completion_tokens", responseBody.Usage.CompletionTokens,
	)
	return content, nil
}

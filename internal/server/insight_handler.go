package server

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/at-ishikawa/guanwo/internal/insight"
)

const insightServiceName = "guanwo.v1.InsightService"

type ListCardsRequest struct {
	CardType      string `json:"card_type" validate:"omitempty,oneof=daily_affirmation weekly_emotion_map weekly_gratitude_list custom"`
	IncludeHidden bool   `json:"include_hidden"`
	Limit         int    `json:"limit" validate:"min=0"`
	Offset        int    `json:"offset" validate:"min=0"`
}

type ListCardsResponse struct {
	Cards []Card `json:"cards"`
}

type CardIDRequest struct {
	CardID string `json:"card_id" validate:"notblank"`
}

type CardResponse struct {
	Card Card `json:"card"`
}

type EmptyResponse struct{}

type GenerateCardRequest struct {
	CardType string `json:"card_type" validate:"required,oneof=daily_affirmation weekly_emotion_map weekly_gratitude_list custom"`
	ConfigID string `json:"config_id" validate:"required_if=CardType custom"`
}

type ListConfigsRequest struct{}

type ListConfigsResponse struct {
	Configs []CardConfig `json:"configs"`
}

type ConfigResponse struct {
	Config CardConfig `json:"config"`
}

type ToggleConfigRequest struct {
	ConfigID string `json:"config_id" validate:"notblank"`
	Enabled  bool   `json:"enabled"`
}

type ConfigIDRequest struct {
	ConfigID string `json:"config_id" validate:"notblank"`
}

type ReorderConfigsRequest struct {
	ConfigIDs []string `json:"config_ids" validate:"dive,notblank"`
}

// InsightHandler serves the insight card and config surface.
type InsightHandler struct {
	base
	service   InsightService
	generator CardGenerator
}

func NewInsightHandler(service InsightService, generator CardGenerator, logger *slog.Logger) (*InsightHandler, error) {
	b, err := newBase(logger.With("component", "insight_handler"))
	if err != nil {
		return nil, err
	}
	return &InsightHandler{base: b, service: service, generator: generator}, nil
}

func (h *InsightHandler) Register(mux *http.ServeMux, opts ...connect.HandlerOption) {
	handle(mux, insightServiceName, "ListCards", unary(h.base, h.ListCards), opts)
	handle(mux, insightServiceName, "GetCard", unary(h.base, h.GetCard), opts)
	handle(mux, insightServiceName, "HideCard", unary(h.base, h.HideCard), opts)
	handle(mux, insightServiceName, "ShowCard", unary(h.base, h.ShowCard), opts)
	handle(mux, insightServiceName, "ShareCard", unary(h.base, h.ShareCard), opts)
	handle(mux, insightServiceName, "GenerateCard", unary(h.base, h.GenerateCard), opts)
	handle(mux, insightServiceName, "ListConfigs", unary(h.base, h.ListConfigs), opts)
	handle(mux, insightServiceName, "CreateConfig", unary(h.base, h.CreateConfig), opts)
	handle(mux, insightServiceName, "ToggleConfig", unary(h.base, h.ToggleConfig), opts)
	handle(mux, insightServiceName, "DeleteConfig", unary(h.base, h.DeleteConfig), opts)
	handle(mux, insightServiceName, "ReorderConfigs", unary(h.base, h.ReorderConfigs), opts)
}

func (h *InsightHandler) ListCards(ctx context.Context, ownerID string, req *ListCardsRequest) (*ListCardsResponse, error) {
	cards, err := h.service.ListCards(ctx, insight.CardFilter{
		OwnerID:       ownerID,
		CardType:      insight.CardType(req.CardType),
		IncludeHidden: req.IncludeHidden,
		Limit:         req.Limit,
		Offset:        req.Offset,
	})
	if err != nil {
		return nil, err
	}
	res := &ListCardsResponse{Cards: make([]Card, 0, len(cards))}
	for _, c := range cards {
		res.Cards = append(res.Cards, toCard(c))
	}
	return res, nil
}

func (h *InsightHandler) GetCard(ctx context.Context, ownerID string, req *CardIDRequest) (*CardResponse, error) {
	card, err := h.service.GetCard(ctx, ownerID, req.CardID)
	if err != nil {
		return nil, err
	}
	return &CardResponse{Card: toCard(*card)}, nil
}

func (h *InsightHandler) HideCard(ctx context.Context, ownerID string, req *CardIDRequest) (*EmptyResponse, error) {
	if err := h.service.Hide(ctx, ownerID, req.CardID); err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (h *InsightHandler) ShowCard(ctx context.Context, ownerID string, req *CardIDRequest) (*EmptyResponse, error) {
	if err := h.service.Show(ctx, ownerID, req.CardID); err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (h *InsightHandler) ShareCard(ctx context.Context, ownerID string, req *CardIDRequest) (*EmptyResponse, error) {
	if err := h.service.Share(ctx, ownerID, req.CardID); err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (h *InsightHandler) GenerateCard(ctx context.Context, ownerID string, req *GenerateCardRequest) (*CardResponse, error) {
	card, err := h.generator.Generate(ctx, insight.GenerateRequest{
		OwnerID:  ownerID,
		CardType: insight.CardType(req.CardType),
		ConfigID: req.ConfigID,
	})
	if err != nil {
		return nil, err
	}
	return &CardResponse{Card: toCard(*card)}, nil
}

func (h *InsightHandler) ListConfigs(ctx context.Context, ownerID string, _ *ListConfigsRequest) (*ListConfigsResponse, error) {
	configs, err := h.service.ListConfigs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	res := &ListConfigsResponse{Configs: make([]CardConfig, 0, len(configs))}
	for _, c := range configs {
		res.Configs = append(res.Configs, toCardConfig(c))
	}
	return res, nil
}

func (h *InsightHandler) CreateConfig(ctx context.Context, ownerID string, req *insight.NewConfig) (*ConfigResponse, error) {
	c, err := h.service.CreateConfig(ctx, ownerID, *req)
	if err != nil {
		return nil, err
	}
	return &ConfigResponse{Config: toCardConfig(*c)}, nil
}

func (h *InsightHandler) ToggleConfig(ctx context.Context, ownerID string, req *ToggleConfigRequest) (*ConfigResponse, error) {
	c, err := h.service.ToggleConfig(ctx, ownerID, req.ConfigID, req.Enabled)
	if err != nil {
		return nil, err
	}
	return &ConfigResponse{Config: toCardConfig(*c)}, nil
}

func (h *InsightHandler) DeleteConfig(ctx context.Context, ownerID string, req *ConfigIDRequest) (*EmptyResponse, error) {
	if err := h.service.DeleteConfig(ctx, ownerID, req.ConfigID); err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (h *InsightHandler) ReorderConfigs(ctx context.Context, ownerID string, req *ReorderConfigsRequest) (*EmptyResponse, error) {
	if err := h.service.ReorderConfigs(ctx, ownerID, req.ConfigIDs); err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

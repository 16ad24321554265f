package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/tag"
	"github.com/at-ishikawa/guanwo/internal/tracking"
)

const tagServiceName = "guanwo.v1.TagService"

type ListAvailableTagsRequest struct{}

type ListAvailableTagsResponse struct {
	Tags []Tag `json:"tags"`
}

type CreateCustomTagRequest struct {
	Name        string `json:"name" validate:"notblank"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Icon        string `json:"icon"`
	Description string `json:"description" validate:"max=200"`
}

type TagResponse struct {
	Tag Tag `json:"tag"`
}

// WindowRequest selects a window either by range (the current week or
// month) or by explicit start and end.
type WindowRequest struct {
	Range string     `json:"range" validate:"omitempty,oneof=week month"`
	Start *time.Time `json:"start" validate:"required_without=Range"`
	End   *time.Time `json:"end" validate:"required_without=Range"`
}

type GetTagOverviewRequest struct {
	WindowRequest
}

type GetTagDetailRequest struct {
	TagID string `json:"tag_id" validate:"notblank"`
	WindowRequest
}

// TagHandler serves the tag registry and trend surface.
type TagHandler struct {
	base
	registry TagRegistry
	trends   TagTrends
	location *time.Location
	now      func() time.Time
}

func NewTagHandler(registry TagRegistry, trends TagTrends, location *time.Location, logger *slog.Logger) (*TagHandler, error) {
	b, err := newBase(logger.With("component", "tag_handler"))
	if err != nil {
		return nil, err
	}
	return &TagHandler{base: b, registry: registry, trends: trends, location: location, now: time.Now}, nil
}

func (h *TagHandler) Register(mux *http.ServeMux, opts ...connect.HandlerOption) {
	handle(mux, tagServiceName, "ListAvailableTags", unary(h.base, h.ListAvailableTags), opts)
	handle(mux, tagServiceName, "CreateCustomTag", unary(h.base, h.CreateCustomTag), opts)
	handle(mux, tagServiceName, "GetTagOverview", unary(h.base, h.GetTagOverview), opts)
	handle(mux, tagServiceName, "GetTagDetail", unary(h.base, h.GetTagDetail), opts)
}

func (h *TagHandler) ListAvailableTags(ctx context.Context, ownerID string, _ *ListAvailableTagsRequest) (*ListAvailableTagsResponse, error) {
	tags, err := h.registry.ListAvailableTags(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &ListAvailableTagsResponse{Tags: toTags(tags)}, nil
}

func (h *TagHandler) CreateCustomTag(ctx context.Context, ownerID string, req *CreateCustomTagRequest) (*TagResponse, error) {
	t, err := h.registry.CreateCustomTag(ctx, ownerID, tag.NewTag{
		Name:        req.Name,
		Color:       req.Color,
		Icon:        req.Icon,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}
	return &TagResponse{Tag: toTag(*t)}, nil
}

func (h *TagHandler) GetTagOverview(ctx context.Context, ownerID string, req *GetTagOverviewRequest) (*TagOverview, error) {
	window, err := h.window(req.WindowRequest)
	if err != nil {
		return nil, err
	}
	overview, err := h.trends.Overview(ctx, ownerID, window)
	if err != nil {
		return nil, err
	}
	res := toTagOverview(*overview)
	return &res, nil
}

func (h *TagHandler) GetTagDetail(ctx context.Context, ownerID string, req *GetTagDetailRequest) (*TagDetail, error) {
	window, err := h.window(req.WindowRequest)
	if err != nil {
		return nil, err
	}
	trend, err := h.trends.TagTrend(ctx, ownerID, req.TagID, window)
	if err != nil {
		return nil, err
	}
	res := toTagDetail(*trend)
	return &res, nil
}

func (h *TagHandler) window(req WindowRequest) (tracking.Window, error) {
	if req.Range != "" {
		if req.Start != nil || req.End != nil {
			return tracking.Window{}, apperr.Invalid("range", "range and start/end are exclusive")
		}
		return tracking.ResolveRange(tracking.RangeKind(req.Range), h.now(), h.location)
	}
	window := tracking.Window{Start: *req.Start, End: *req.End}
	if err := window.Validate(); err != nil {
		return tracking.Window{}, err
	}
	return window, nil
}

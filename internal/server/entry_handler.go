package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/at-ishikawa/guanwo/internal/entry"
)

const entryServiceName = "guanwo.v1.EntryService"

type SubmitEntryImage struct {
	ImageURL     string  `json:"image_url" validate:"required,url"`
	ThumbnailURL *string `json:"thumbnail_url" validate:"omitempty,url"`
	IsLivePhoto  bool    `json:"is_live_photo"`
	UploadStatus string  `json:"upload_status" validate:"omitempty,oneof=pending uploading success failed"`
}

type SubmitEntryRequest struct {
	Content    string `json:"content"`
	SourceType string `json:"source_type" validate:"omitempty,oneof=text voice"`
	// AudioDuration is in seconds.
	AudioDuration *int               `json:"audio_duration"`
	AudioURL      *string            `json:"audio_url" validate:"omitempty,url"`
	Images        []SubmitEntryImage `json:"images" validate:"dive"`
	TagIDs        []string           `json:"tag_ids" validate:"dive,notblank"`
}

type EntryResponse struct {
	Entry Entry `json:"entry"`
}

type EntryIDRequest struct {
	EntryID string `json:"entry_id" validate:"notblank"`
}

type ListEntriesRequest struct {
	From    *time.Time `json:"from"`
	To      *time.Time `json:"to"`
	Emotion string     `json:"emotion" validate:"omitempty,oneof=positive neutral negative"`
	TagID   string     `json:"tag_id"`
	// IncludeHidden also lists entries in sending, failed and violated.
	IncludeHidden bool `json:"include_hidden"`
	Limit         int  `json:"limit" validate:"min=0"`
	Offset        int  `json:"offset" validate:"min=0"`
}

type ListEntriesResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

type GetCalendarSummaryRequest struct {
	// Month is formatted as 2006-01.
	Month string `json:"month" validate:"required,datetime=2006-01"`
}

type DaySummary struct {
	Date            string         `json:"date"`
	Count           int            `json:"count"`
	WordCount       int            `json:"word_count"`
	EmotionCounts   map[string]int `json:"emotion_counts"`
	DominantEmotion string         `json:"dominant_emotion"`
}

type GetCalendarSummaryResponse struct {
	Days []DaySummary `json:"days"`
}

type DeleteEntryResponse struct{}

type ReplaceEntryTagsRequest struct {
	EntryID string   `json:"entry_id" validate:"notblank"`
	TagIDs  []string `json:"tag_ids" validate:"dive,notblank"`
}

type ReplaceEntryTagsResponse struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
}

type ListFlashMomentsRequest struct {
	Limit  int `json:"limit" validate:"min=0"`
	Offset int `json:"offset" validate:"min=0"`
}

// EntryHandler serves the entry surface.
type EntryHandler struct {
	base
	entries  EntryService
	tags     EntryTagReplacer
	location *time.Location
}

func NewEntryHandler(entries EntryService, tags EntryTagReplacer, location *time.Location, logger *slog.Logger) (*EntryHandler, error) {
	b, err := newBase(logger.With("component", "entry_handler"))
	if err != nil {
		return nil, err
	}
	return &EntryHandler{base: b, entries: entries, tags: tags, location: location}, nil
}

func (h *EntryHandler) Register(mux *http.ServeMux, opts ...connect.HandlerOption) {
	handle(mux, entryServiceName, "SubmitEntry", unary(h.base, h.SubmitEntry), opts)
	handle(mux, entryServiceName, "RetryEntry", unary(h.base, h.RetryEntry), opts)
	handle(mux, entryServiceName, "GetEntry", unary(h.base, h.GetEntry), opts)
	handle(mux, entryServiceName, "ListEntries", unary(h.base, h.ListEntries), opts)
	handle(mux, entryServiceName, "GetCalendarSummary", unary(h.base, h.GetCalendarSummary), opts)
	handle(mux, entryServiceName, "DeleteEntry", unary(h.base, h.DeleteEntry), opts)
	handle(mux, entryServiceName, "ReplaceEntryTags", unary(h.base, h.ReplaceEntryTags), opts)
	handle(mux, entryServiceName, "ListFlashMoments", unary(h.base, h.ListFlashMoments), opts)
	handle(mux, entryServiceName, "ShareFlashMoment", unary(h.base, h.ShareFlashMoment), opts)
}

func (h *EntryHandler) SubmitEntry(ctx context.Context, ownerID string, req *SubmitEntryRequest) (*EntryResponse, error) {
	images := make([]entry.NewImage, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, entry.NewImage{
			ImageURL:     img.ImageURL,
			ThumbnailURL: img.ThumbnailURL,
			IsLivePhoto:  img.IsLivePhoto,
			UploadStatus: entry.UploadStatus(img.UploadStatus),
		})
	}
	e, err := h.entries.Submit(ctx, entry.SubmitRequest{
		OwnerID:              ownerID,
		Content:              req.Content,
		SourceType:           entry.SourceType(req.SourceType),
		AudioDurationSeconds: req.AudioDuration,
		AudioURL:             req.AudioURL,
		Images:               images,
		TagIDs:               req.TagIDs,
	})
	if err != nil {
		return nil, err
	}
	return &EntryResponse{Entry: toEntry(*e)}, nil
}

func (h *EntryHandler) RetryEntry(ctx context.Context, ownerID string, req *EntryIDRequest) (*EntryResponse, error) {
	e, err := h.entries.Retry(ctx, ownerID, req.EntryID)
	if err != nil {
		return nil, err
	}
	return &EntryResponse{Entry: toEntry(*e)}, nil
}

func (h *EntryHandler) GetEntry(ctx context.Context, ownerID string, req *EntryIDRequest) (*EntryResponse, error) {
	e, err := h.entries.Get(ctx, ownerID, req.EntryID)
	if err != nil {
		return nil, err
	}
	return &EntryResponse{Entry: toEntry(*e)}, nil
}

func (h *EntryHandler) ListEntries(ctx context.Context, ownerID string, req *ListEntriesRequest) (*ListEntriesResponse, error) {
	filter := entry.ListFilter{
		OwnerID:       ownerID,
		TagID:         req.TagID,
		IncludeHidden: req.IncludeHidden,
		Limit:         req.Limit,
		Offset:        req.Offset,
	}
	if req.From != nil {
		filter.From = *req.From
	}
	if req.To != nil {
		filter.To = *req.To
	}
	if req.Emotion != "" {
		emotion := entry.Emotion(req.Emotion)
		filter.Emotion = &emotion
	}
	result, err := h.entries.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListEntriesResponse{Entries: toEntries(result.Entries), Total: result.Total}, nil
}

func (h *EntryHandler) GetCalendarSummary(ctx context.Context, ownerID string, req *GetCalendarSummaryRequest) (*GetCalendarSummaryResponse, error) {
	month, err := time.ParseInLocation("2006-01", req.Month, h.location)
	if err != nil {
		return nil, fmt.Errorf("parse month %q: %w", req.Month, err)
	}
	days, err := h.entries.CalendarSummary(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}
	res := &GetCalendarSummaryResponse{Days: make([]DaySummary, 0, len(days))}
	for _, d := range days {
		counts := make(map[string]int, len(d.EmotionCounts))
		for emotion, n := range d.EmotionCounts {
			counts[string(emotion)] = n
		}
		res.Days = append(res.Days, DaySummary{
			Date:            d.Date,
			Count:           d.Count,
			WordCount:       d.WordCount,
			EmotionCounts:   counts,
			DominantEmotion: string(d.DominantEmotion),
		})
	}
	return res, nil
}

func (h *EntryHandler) DeleteEntry(ctx context.Context, ownerID string, req *EntryIDRequest) (*DeleteEntryResponse, error) {
	if err := h.entries.Delete(ctx, ownerID, req.EntryID); err != nil {
		return nil, err
	}
	return &DeleteEntryResponse{}, nil
}

func (h *EntryHandler) ReplaceEntryTags(ctx context.Context, ownerID string, req *ReplaceEntryTagsRequest) (*ReplaceEntryTagsResponse, error) {
	change, err := h.tags.ReplaceEntryTags(ctx, ownerID, req.EntryID, req.TagIDs)
	if err != nil {
		return nil, err
	}
	res := &ReplaceEntryTagsResponse{Added: change.Added, Removed: change.Removed}
	if res.Added == nil {
		res.Added = []string{}
	}
	if res.Removed == nil {
		res.Removed = []string{}
	}
	return res, nil
}

func (h *EntryHandler) ListFlashMoments(ctx context.Context, ownerID string, req *ListFlashMomentsRequest) (*ListEntriesResponse, error) {
	result, err := h.entries.ListFlashMoments(ctx, ownerID, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	return &ListEntriesResponse{Entries: toEntries(result.Entries), Total: result.Total}, nil
}

func (h *EntryHandler) ShareFlashMoment(ctx context.Context, ownerID string, req *EntryIDRequest) (*EntryResponse, error) {
	e, err := h.entries.ShareFlashMoment(ctx, ownerID, req.EntryID)
	if err != nil {
		return nil, err
	}
	return &EntryResponse{Entry: toEntry(*e)}, nil
}

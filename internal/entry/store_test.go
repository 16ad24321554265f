package entry_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/entry"
	mock_entry "github.com/at-ishikawa/guanwo/internal/mocks/entry"
	mock_moderation "github.com/at-ishikawa/guanwo/internal/mocks/moderation"
	mock_speech "github.com/at-ishikawa/guanwo/internal/mocks/speech"
	"github.com/at-ishikawa/guanwo/internal/moderation"
	"github.com/at-ishikawa/guanwo/internal/speech"
	"github.com/at-ishikawa/guanwo/internal/tag"
	"github.com/at-ishikawa/guanwo/internal/testutil"
	"github.com/at-ishikawa/guanwo/internal/worker"
)

type storeMocks struct {
	repo        *mock_entry.MockRepository
	tags        *mock_entry.MockTagger
	classifier  *mock_moderation.MockClassifier
	transcriber *mock_speech.MockTranscriber
	analyzer    *mock_entry.MockAnalyzer
	dispatcher  *mock_entry.MockDispatcher
}

func newMockStore(t *testing.T, mode string) (*entry.Store, storeMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := storeMocks{
		repo:        mock_entry.NewMockRepository(ctrl),
		tags:        mock_entry.NewMockTagger(ctrl),
		classifier:  mock_moderation.NewMockClassifier(ctrl),
		transcriber: mock_speech.NewMockTranscriber(ctrl),
		analyzer:    mock_entry.NewMockAnalyzer(ctrl),
		dispatcher:  mock_entry.NewMockDispatcher(ctrl),
	}
	cfg := testutil.NewConfig()
	cfg.Journal.ModerationMode = mode
	store := entry.NewStore(entry.StoreDeps{
		Repository:  m.repo,
		Tags:        m.tags,
		Classifier:  m.classifier,
		Transcriber: m.transcriber,
		Analyzer:    m.analyzer,
		Dispatcher:  m.dispatcher,
	}, cfg, testutil.Logger())
	return store, m
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestStore_Submit_Validation(t *testing.T) {
	tests := []struct {
		name      string
		req       entry.SubmitRequest
		wantField string
	}{
		{
			name:      "blank content",
			req:       entry.SubmitRequest{OwnerID: "user-1", Content: "   "},
			wantField: "content",
		},
		{
			name:      "content longer than 5000 characters",
			req:       entry.SubmitRequest{OwnerID: "user-1", Content: strings.Repeat("字", 5001)},
			wantField: "content",
		},
		{
			name:      "unknown source type",
			req:       entry.SubmitRequest{OwnerID: "user-1", Content: "今天", SourceType: "video"},
			wantField: "source_type",
		},
		{
			name:      "voice entry without duration",
			req:       entry.SubmitRequest{OwnerID: "user-1", Content: "今天", SourceType: entry.SourceVoice},
			wantField: "audio_duration",
		},
		{
			name:      "voice entry longer than allowed",
			req:       entry.SubmitRequest{OwnerID: "user-1", Content: "今天", SourceType: entry.SourceVoice, AudioDurationSeconds: intPtr(301)},
			wantField: "audio_duration",
		},
		{
			name:      "text entry with duration",
			req:       entry.SubmitRequest{OwnerID: "user-1", Content: "今天", AudioDurationSeconds: intPtr(10)},
			wantField: "audio_duration",
		},
		{
			name:      "too many images",
			req:       entry.SubmitRequest{OwnerID: "user-1", Content: "今天", Images: make([]entry.NewImage, 10)},
			wantField: "images",
		},
		{
			name:      "blank owner",
			req:       entry.SubmitRequest{Content: "今天"},
			wantField: "owner_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No repository call is expected: nothing may be persisted.
			store, _ := newMockStore(t, config.ModerationModeSync)

			_, err := store.Submit(context.Background(), tt.req)
			require.Error(t, err)
			var validationErr *apperr.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestStore_Submit_UnavailableTag(t *testing.T) {
	store, m := newMockStore(t, config.ModerationModeSync)
	m.tags.EXPECT().ResolveAvailable(gomock.Any(), "user-1", []string{"t-other"}, "tag_ids").
		Return(nil, apperr.Invalid("tag_ids", "tag t-other is not available"))

	_, err := store.Submit(context.Background(), entry.SubmitRequest{OwnerID: "user-1", Content: "今天", TagIDs: []string{"t-other"}})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestStore_Submit_Async(t *testing.T) {
	store, m := newMockStore(t, config.ModerationModeAsync)
	userTag := tag.Tag{ID: "t1", Name: "阅读"}

	m.tags.EXPECT().ResolveAvailable(gomock.Any(), "user-1", []string{"t1"}, "tag_ids").Return([]tag.Tag{userTag}, nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any(), []string{"t1"}).
		DoAndReturn(func(_ context.Context, e *entry.Entry, _ []string) error {
			assert.Equal(t, "今天很开心", e.Content)
			assert.Equal(t, entry.StatusSending, e.Status)
			assert.False(t, e.IsVisible)
			assert.Equal(t, 5, e.WordCount)
			assert.Equal(t, 1, e.Attempt)
			require.Len(t, e.Images, 1)
			assert.Equal(t, entry.UploadSuccess, e.Images[0].UploadStatus)
			return nil
		})
	m.dispatcher.EXPECT().Submit(gomock.Any()).DoAndReturn(func(job worker.Job) error {
		assert.Contains(t, job.Name(), "moderation:")
		return nil
	})

	got, err := store.Submit(context.Background(), entry.SubmitRequest{
		OwnerID: "user-1",
		Content: "  今天很开心  ",
		Images:  []entry.NewImage{{ImageURL: "https://cdn.example.com/1.jpg"}},
		TagIDs:  []string{"t1"},
	})
	require.NoError(t, err)
	assert.Equal(t, entry.StatusSending, got.Status)
	assert.Equal(t, []tag.Tag{userTag}, got.Tags)
}

func TestStore_Submit_QueueFullFailsAttempt(t *testing.T) {
	store, m := newMockStore(t, config.ModerationModeAsync)

	m.tags.EXPECT().ResolveAvailable(gomock.Any(), "user-1", nil, "tag_ids").Return(nil, nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Len(0)).Return(nil)
	m.dispatcher.EXPECT().Submit(gomock.Any()).Return(worker.ErrQueueFull)
	m.repo.EXPECT().CompareAndSetStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr entry.Transition) (bool, error) {
			assert.Equal(t, entry.StatusFailed, tr.To)
			assert.Equal(t, 1, tr.Attempt)
			require.NotNil(t, tr.FailureReason)
			return true, nil
		})

	_, err := store.Submit(context.Background(), entry.SubmitRequest{OwnerID: "user-1", Content: "今天"})
	require.NoError(t, err)
}

func TestStore_Submit_VoiceTranscription(t *testing.T) {
	store, m := newMockStore(t, config.ModerationModeAsync)

	m.transcriber.EXPECT().Transcribe(gomock.Any(), "https://cdn.example.com/a.m4a").
		Return(speech.Transcription{Text: "今天去跑步了", DurationSeconds: 42}, nil)
	m.tags.EXPECT().ResolveAvailable(gomock.Any(), "user-1", nil, "tag_ids").Return(nil, nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *entry.Entry, _ []string) error {
			assert.Equal(t, "今天去跑步了", e.Content)
			assert.Equal(t, entry.SourceVoice, e.SourceType)
			require.NotNil(t, e.AudioDuration)
			assert.Equal(t, 42, *e.AudioDuration)
			return nil
		})
	m.dispatcher.EXPECT().Submit(gomock.Any()).Return(nil)

	_, err := store.Submit(context.Background(), entry.SubmitRequest{
		OwnerID:    "user-1",
		SourceType: entry.SourceVoice,
		AudioURL:   strPtr("https://cdn.example.com/a.m4a"),
	})
	require.NoError(t, err)
}

func TestStore_Submit_TranscriptionFailure(t *testing.T) {
	store, m := newMockStore(t, config.ModerationModeAsync)
	m.transcriber.EXPECT().Transcribe(gomock.Any(), gomock.Any()).
		Return(speech.Transcription{}, apperr.Adapter("speech", errors.New("status code: 502")))

	_, err := store.Submit(context.Background(), entry.SubmitRequest{
		OwnerID:    "user-1",
		SourceType: entry.SourceVoice,
		AudioURL:   strPtr("https://cdn.example.com/a.m4a"),
	})
	assert.ErrorIs(t, err, apperr.ErrAdapter)
}

func sendingEntry() *entry.Entry {
	return &entry.Entry{ID: "e1", OwnerID: "user-1", Content: "今天很开心", Status: entry.StatusSending, Attempt: 1}
}

func TestStore_ApplyModerationVerdict(t *testing.T) {
	tests := []struct {
		name      string
		verdict   moderation.Verdict
		setupMock func(m storeMocks)
		wantKind  error
	}{
		{
			name:    "clean verdict succeeds and extracts",
			verdict: moderation.VerdictClean,
			setupMock: func(m storeMocks) {
				m.repo.EXPECT().Get(gomock.Any(), "e1").Return(sendingEntry(), nil)
				m.repo.EXPECT().CompareAndSetStatus(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tr entry.Transition) (bool, error) {
						assert.Equal(t, entry.StatusSuccess, tr.To)
						return true, nil
					})
				m.analyzer.EXPECT().Analyze(gomock.Any(), "今天很开心").Return(entry.Analysis{
					Emotion:  entry.EmotionPositive,
					Events:   []string{"心情很好"},
					TagNames: []string{"健康"},
				}, nil)
				m.repo.EXPECT().SaveAnalysis(gomock.Any(), "e1", entry.EmotionPositive, entry.Events{"心情很好"}, gomock.Any()).Return(nil)
				m.tags.EXPECT().AttachSystemTags(gomock.Any(), "e1", []string{"健康"}).Return(nil)
			},
		},
		{
			name:    "analysis failure stores the fallback",
			verdict: moderation.VerdictClean,
			setupMock: func(m storeMocks) {
				m.repo.EXPECT().Get(gomock.Any(), "e1").Return(sendingEntry(), nil)
				m.repo.EXPECT().CompareAndSetStatus(gomock.Any(), gomock.Any()).Return(true, nil)
				m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any()).
					Return(entry.Analysis{}, apperr.Adapter("llm", errors.New("timeout")))
				m.repo.EXPECT().SaveAnalysis(gomock.Any(), "e1", entry.EmotionNeutral, entry.Events{"今天很开心"}, gomock.Any()).Return(nil)
				m.tags.EXPECT().AttachSystemTags(gomock.Any(), "e1", gomock.Len(0)).Return(nil)
			},
		},
		{
			name:    "rejected verdict violates without extraction",
			verdict: moderation.VerdictRejected,
			setupMock: func(m storeMocks) {
				m.repo.EXPECT().Get(gomock.Any(), "e1").Return(sendingEntry(), nil)
				m.repo.EXPECT().CompareAndSetStatus(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tr entry.Transition) (bool, error) {
						assert.Equal(t, entry.StatusViolated, tr.To)
						return true, nil
					})
			},
		},
		{
			name:    "same verdict on a terminal entry is a no-op",
			verdict: moderation.VerdictClean,
			setupMock: func(m storeMocks) {
				e := sendingEntry()
				e.Status = entry.StatusSuccess
				m.repo.EXPECT().Get(gomock.Any(), "e1").Return(e, nil)
			},
		},
		{
			name:    "different verdict on a terminal entry",
			verdict: moderation.VerdictRejected,
			setupMock: func(m storeMocks) {
				e := sendingEntry()
				e.Status = entry.StatusSuccess
				m.repo.EXPECT().Get(gomock.Any(), "e1").Return(e, nil)
			},
			wantKind: apperr.ErrInvalidState,
		},
		{
			name:    "lost race to the same verdict",
			verdict: moderation.VerdictClean,
			setupMock: func(m storeMocks) {
				m.repo.EXPECT().Get(gomock.Any(), "e1").Return(sendingEntry(), nil)
				m.repo.EXPECT().CompareAndSetStatus(gomock.Any(), gomock.Any()).Return(false, nil)
				e := sendingEntry()
				e.Status = entry.StatusSuccess
				m.repo.EXPECT().Get(gomock.Any(), "e1").Return(e, nil)
			},
		},
		{
			name:    "lost race to another verdict",
			verdict: moderation.VerdictClean,
			setupMock: func(m storeMocks) {
				m.repo.EXPECT().Get(gomock.Any(), "e1").Return(sendingEntry(), nil)
				m.repo.EXPECT().CompareAndSetStatus(gomock.Any(), gomock.Any()).Return(false, nil)
				e := sendingEntry()
				e.Status = entry.StatusViolated
				m.repo.EXPECT().Get(gomock.Any(), "e1").Return(e, nil)
			},
			wantKind: apperr.ErrInvalidState,
		},
		{
			name:    "unknown entry",
			verdict: moderation.VerdictClean,
			setupMock: func(m storeMocks) {
				m.repo.EXPECT().Get(gomock.Any(), "e1").Return(nil, apperr.NotFound("entry e1"))
			},
			wantKind: apperr.ErrNotFound,
		},
		{
			name:      "unknown verdict",
			verdict:   "maybe",
			setupMock: func(m storeMocks) {},
			wantKind:  apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, m := newMockStore(t, config.ModerationModeSync)
			tt.setupMock(m)

			err := store.ApplyModerationVerdict(context.Background(), "e1", tt.verdict)
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStore_Submit_SyncModeration(t *testing.T) {
	tests := []struct {
		name          string
		classify      func(ctx context.Context, content string) (moderation.Verdict, error)
		wantStatus    entry.Status
		wantAnalysis  bool
		wantReasonSet bool
	}{
		{
			name: "clean",
			classify: func(context.Context, string) (moderation.Verdict, error) {
				return moderation.VerdictClean, nil
			},
			wantStatus:   entry.StatusSuccess,
			wantAnalysis: true,
		},
		{
			name: "classifier error fails the attempt",
			classify: func(context.Context, string) (moderation.Verdict, error) {
				return moderation.VerdictError, apperr.Adapter("moderation", errors.New("status code: 503"))
			},
			wantStatus:    entry.StatusFailed,
			wantReasonSet: true,
		},
		{
			name: "long classifier error is clipped",
			classify: func(context.Context, string) (moderation.Verdict, error) {
				return moderation.VerdictError, apperr.Adapter("moderation", errors.New(strings.Repeat("服务不可用", 300)))
			},
			wantStatus:    entry.StatusFailed,
			wantReasonSet: true,
		},
		{
			name: "classifier panic fails the attempt",
			classify: func(context.Context, string) (moderation.Verdict, error) {
				panic("classifier bug")
			},
			wantStatus:    entry.StatusFailed,
			wantReasonSet: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, m := newMockStore(t, config.ModerationModeSync)
			var created *entry.Entry

			m.tags.EXPECT().ResolveAvailable(gomock.Any(), "user-1", nil, "tag_ids").Return(nil, nil)
			m.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, e *entry.Entry, _ []string) error {
					created = e
					return nil
				})
			m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, string) (*entry.Entry, error) {
				copied := *created
				return &copied, nil
			}).AnyTimes()
			m.classifier.EXPECT().Classify(gomock.Any(), "今天很开心").DoAndReturn(tt.classify)
			m.repo.EXPECT().CompareAndSetStatus(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, tr entry.Transition) (bool, error) {
					assert.Equal(t, tt.wantStatus, tr.To)
					assert.Equal(t, tt.wantReasonSet, tr.FailureReason != nil)
					if tr.FailureReason != nil {
						assert.LessOrEqual(t, utf8.RuneCountInString(*tr.FailureReason), 501)
						assert.True(t, utf8.ValidString(*tr.FailureReason))
					}
					created.Status = tr.To
					created.IsVisible = tr.To == entry.StatusSuccess
					return true, nil
				})
			if tt.wantAnalysis {
				m.analyzer.EXPECT().Analyze(gomock.Any(), gomock.Any()).
					Return(entry.Analysis{Emotion: entry.EmotionPositive, Events: []string{"开心"}}, nil)
				m.repo.EXPECT().SaveAnalysis(gomock.Any(), gomock.Any(), entry.EmotionPositive, gomock.Any(), gomock.Any()).Return(nil)
				m.tags.EXPECT().AttachSystemTags(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}
			m.repo.EXPECT().ImagesByEntryIDs(gomock.Any(), gomock.Any()).Return(map[string][]entry.Image{}, nil)
			m.tags.EXPECT().TagsForEntries(gomock.Any(), gomock.Any()).Return(map[string][]tag.Tag{}, nil)

			got, err := store.Submit(context.Background(), entry.SubmitRequest{OwnerID: "user-1", Content: "今天很开心"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantStatus == entry.StatusSuccess, got.IsVisible)
		})
	}
}

func TestStore_Submit_CancelledCallerFailsAttempt(t *testing.T) {
	store, m := newMockStore(t, config.ModerationModeSync)
	ctx, cancel := context.WithCancel(context.Background())
	var created *entry.Entry

	m.tags.EXPECT().ResolveAvailable(gomock.Any(), "user-1", nil, "tag_ids").Return(nil, nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *entry.Entry, _ []string) error {
			created = e
			return nil
		})
	m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, string) (*entry.Entry, error) {
		copied := *created
		return &copied, nil
	})
	m.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (moderation.Verdict, error) {
			cancel()
			<-ctx.Done()
			return moderation.VerdictError, ctx.Err()
		})
	m.repo.EXPECT().CompareAndSetStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, tr entry.Transition) (bool, error) {
			// The release write must not inherit the cancellation.
			assert.NoError(t, ctx.Err())
			assert.Equal(t, entry.StatusFailed, tr.To)
			return true, nil
		})
	// Reloading the entry after moderation fails with the cancelled context.
	m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, context.Canceled)

	_, err := store.Submit(ctx, entry.SubmitRequest{OwnerID: "user-1", Content: "今天"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_Retry(t *testing.T) {
	t.Run("re-dispatches moderation", func(t *testing.T) {
		store, m := newMockStore(t, config.ModerationModeAsync)
		reset := sendingEntry()
		reset.Attempt = 2
		m.repo.EXPECT().ResetForRetry(gomock.Any(), "user-1", "e1", gomock.Any()).Return(reset, nil)
		m.dispatcher.EXPECT().Submit(gomock.Any()).DoAndReturn(func(job worker.Job) error {
			assert.Equal(t, "moderation:e1:2", job.Name())
			return nil
		})
		m.repo.EXPECT().ImagesByEntryIDs(gomock.Any(), []string{"e1"}).Return(nil, nil)
		m.tags.EXPECT().TagsForEntries(gomock.Any(), []string{"e1"}).Return(nil, nil)

		got, err := store.Retry(context.Background(), "user-1", "e1")
		require.NoError(t, err)
		assert.Equal(t, 2, got.Attempt)
		assert.Equal(t, entry.StatusSending, got.Status)
	})

	t.Run("invalid state", func(t *testing.T) {
		store, m := newMockStore(t, config.ModerationModeAsync)
		m.repo.EXPECT().ResetForRetry(gomock.Any(), "user-1", "e1", gomock.Any()).
			Return(nil, apperr.InvalidState("entry e1 is success and cannot be retried"))

		_, err := store.Retry(context.Background(), "user-1", "e1")
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	})
}

func TestStore_Get_OtherOwner(t *testing.T) {
	store, m := newMockStore(t, config.ModerationModeAsync)
	m.repo.EXPECT().Get(gomock.Any(), "e1").Return(sendingEntry(), nil)

	_, err := store.Get(context.Background(), "user-2", "e1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStore_List_Validation(t *testing.T) {
	now := time.Now()
	unknown := entry.Emotion("happy")
	tests := []struct {
		name   string
		filter entry.ListFilter
	}{
		{name: "blank owner", filter: entry.ListFilter{}},
		{name: "limit too large", filter: entry.ListFilter{OwnerID: "user-1", Limit: 101}},
		{name: "negative offset", filter: entry.ListFilter{OwnerID: "user-1", Offset: -1}},
		{name: "unknown emotion", filter: entry.ListFilter{OwnerID: "user-1", Emotion: &unknown}},
		{name: "empty window", filter: entry.ListFilter{OwnerID: "user-1", From: now, To: now}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newMockStore(t, config.ModerationModeAsync)
			_, err := store.List(context.Background(), tt.filter)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestStore_FailStale(t *testing.T) {
	store, m := newMockStore(t, config.ModerationModeAsync)
	m.repo.EXPECT().FailStale(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, before time.Time, _ string, at time.Time) (int64, error) {
			assert.Equal(t, 10*time.Minute, at.Sub(before))
			return 2, nil
		})

	n, err := store.FailStale(context.Background(), 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = store.FailStale(context.Background(), 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

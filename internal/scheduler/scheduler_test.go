package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/insight"
	mock_scheduler "github.com/at-ishikawa/guanwo/internal/mocks/scheduler"
	"github.com/at-ishikawa/guanwo/internal/testutil"
)

// Wednesday of ISO week 11.
var now = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)

func TestPeriodKey(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	tests := []struct {
		name      string
		timeRange insight.TimeRange
		now       time.Time
		loc       *time.Location
		want      string
	}{
		{name: "daily", timeRange: insight.RangeDaily, now: now, loc: time.UTC, want: "2026-03-11"},
		{name: "daily in local time", timeRange: insight.RangeDaily, now: time.Date(2026, 3, 11, 17, 0, 0, 0, time.UTC), loc: shanghai, want: "2026-03-12"},
		{name: "weekly", timeRange: insight.RangeWeekly, now: now, loc: time.UTC, want: "2026-W11"},
		{name: "weekly on sunday", timeRange: insight.RangeWeekly, now: time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC), loc: time.UTC, want: "2026-W11"},
		{name: "weekly across the year", timeRange: insight.RangeWeekly, now: time.Date(2027, 1, 1, 12, 0, 0, 0, time.UTC), loc: time.UTC, want: "2026-W53"},
		{name: "monthly", timeRange: insight.RangeMonthly, now: now, loc: time.UTC, want: "2026-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ttl := periodKey(tt.timeRange, tt.now, tt.loc)
			assert.Equal(t, tt.want, got)
			assert.Greater(t, ttl, time.Duration(0))
		})
	}
}

func TestMemoryGate(t *testing.T) {
	ctx := context.Background()
	clock := now
	gate := NewMemoryGate()
	gate.now = func() time.Time { return clock }

	ok, err := gate.Acquire(ctx, "a", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.Acquire(ctx, "a", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = gate.Acquire(ctx, "b", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, gate.Release(ctx, "b"))
	ok, err = gate.Acquire(ctx, "b", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	clock = clock.Add(time.Hour)
	ok, err = gate.Acquire(ctx, "a", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

type call struct {
	ownerID  string
	cardType insight.CardType
	configID string
}

func TestScheduler_RunOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	owners := mock_scheduler.NewMockOwnerLister(ctrl)
	configs := mock_scheduler.NewMockConfigLister(ctrl)
	generator := mock_scheduler.NewMockCardGenerator(ctrl)

	owners.EXPECT().ListOwnersWithEntries(gomock.Any(), now.Add(-8*24*time.Hour)).
		Return([]string{"user-1", "user-2"}, nil).Times(2)
	configs.EXPECT().ListEnabled(gomock.Any(), "user-1").
		Return([]insight.Config{{ID: "cfg-1", OwnerID: "user-1", TimeRange: insight.RangeMonthly}}, nil).Times(2)
	configs.EXPECT().ListEnabled(gomock.Any(), "user-2").
		Return(nil, errors.New("connection reset")).Times(2)

	var (
		mu    sync.Mutex
		calls []call
	)
	generator.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req insight.GenerateRequest) (*insight.Card, error) {
			mu.Lock()
			calls = append(calls, call{ownerID: req.OwnerID, cardType: req.CardType, configID: req.ConfigID})
			mu.Unlock()
			assert.Equal(t, now, req.Now)

			switch {
			case req.OwnerID == "user-2":
				return nil, apperr.InsufficientData("no entries")
			case req.CardType == insight.CardWeeklyGratitudeList:
				return nil, apperr.GenerationFailed(apperr.Adapter("llm", errors.New("timeout")))
			}
			return &insight.Card{ID: "card-" + string(req.CardType)}, nil
		}).AnyTimes()

	cfg := testutil.NewConfig()
	s := NewScheduler(Deps{Owners: owners, Configs: configs, Generator: generator, Gate: NewMemoryGate()}, cfg, testutil.Logger())
	s.now = func() time.Time { return now }

	require.NoError(t, s.RunOnce(context.Background()))
	sortCalls(calls)
	assert.Equal(t, []call{
		{ownerID: "user-1", cardType: insight.CardCustom, configID: "cfg-1"},
		{ownerID: "user-1", cardType: insight.CardDailyAffirmation},
		{ownerID: "user-1", cardType: insight.CardWeeklyEmotionMap},
		{ownerID: "user-1", cardType: insight.CardWeeklyGratitudeList},
		{ownerID: "user-2", cardType: insight.CardDailyAffirmation},
		{ownerID: "user-2", cardType: insight.CardWeeklyEmotionMap},
		{ownerID: "user-2", cardType: insight.CardWeeklyGratitudeList},
	}, calls)

	// Only the failed card is tried again within the same period.
	calls = nil
	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, []call{
		{ownerID: "user-1", cardType: insight.CardWeeklyGratitudeList},
	}, calls)
}

func TestScheduler_RunOnce_ListOwnersFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	owners := mock_scheduler.NewMockOwnerLister(ctrl)
	owners.EXPECT().ListOwnersWithEntries(gomock.Any(), gomock.Any()).Return(nil, errors.New("database is closed"))

	s := NewScheduler(Deps{
		Owners:    owners,
		Configs:   mock_scheduler.NewMockConfigLister(ctrl),
		Generator: mock_scheduler.NewMockCardGenerator(ctrl),
		Gate:      NewMemoryGate(),
	}, testutil.NewConfig(), testutil.Logger())

	assert.Error(t, s.RunOnce(context.Background()))
}

func TestScheduler_Run_StopsWithContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	owners := mock_scheduler.NewMockOwnerLister(ctrl)
	owners.EXPECT().ListOwnersWithEntries(gomock.Any(), gomock.Any()).Return(nil, nil).MinTimes(1)

	s := NewScheduler(Deps{
		Owners:    owners,
		Configs:   mock_scheduler.NewMockConfigLister(ctrl),
		Generator: mock_scheduler.NewMockCardGenerator(ctrl),
		Gate:      NewMemoryGate(),
	}, testutil.NewConfig(), testutil.Logger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, s.Run(ctx))
}

func sortCalls(calls []call) {
	sort.Slice(calls, func(i, j int) bool {
		if calls[i].ownerID != calls[j].ownerID {
			return calls[i].ownerID < calls[j].ownerID
		}
		return calls[i].cardType < calls[j].cardType
	})
}

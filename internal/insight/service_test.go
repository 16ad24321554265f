package insight_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/insight"
	mock_insight "github.com/at-ishikawa/guanwo/internal/mocks/insight"
	"github.com/at-ishikawa/guanwo/internal/testutil"
)

func newService(t *testing.T) (*insight.Service, *mock_insight.MockCardRepository, *mock_insight.MockConfigRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	cards := mock_insight.NewMockCardRepository(ctrl)
	configs := mock_insight.NewMockConfigRepository(ctrl)
	service, err := insight.NewService(cards, configs, testutil.NewConfig(), testutil.Logger())
	require.NoError(t, err)
	return service, cards, configs
}

func TestService_ListCards(t *testing.T) {
	tests := []struct {
		name       string
		filter     insight.CardFilter
		wantFilter *insight.CardFilter
		wantKind   error
	}{
		{
			name:       "default limit",
			filter:     insight.CardFilter{OwnerID: "user-1"},
			wantFilter: &insight.CardFilter{OwnerID: "user-1", Limit: 20},
		},
		{
			name:       "limit is capped",
			filter:     insight.CardFilter{OwnerID: "user-1", CardType: insight.CardCustom, Limit: 500, Offset: 40},
			wantFilter: &insight.CardFilter{OwnerID: "user-1", CardType: insight.CardCustom, Limit: 100, Offset: 40},
		},
		{
			name:     "unknown card type",
			filter:   insight.CardFilter{OwnerID: "user-1", CardType: "horoscope"},
			wantKind: apperr.ErrValidation,
		},
		{
			name:     "negative offset",
			filter:   insight.CardFilter{OwnerID: "user-1", Offset: -1},
			wantKind: apperr.ErrValidation,
		},
		{
			name:     "missing owner",
			filter:   insight.CardFilter{},
			wantKind: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, cards, _ := newService(t)
			if tt.wantFilter != nil {
				cards.EXPECT().List(gomock.Any(), *tt.wantFilter).Return([]insight.Card{{ID: "c1"}}, nil)
			}

			got, err := service.ListCards(context.Background(), tt.filter)
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestService_GetCard(t *testing.T) {
	service, cards, _ := newService(t)
	gomock.InOrder(
		cards.EXPECT().MarkViewed(gomock.Any(), "user-1", "c1", gomock.Any()).Return(nil),
		cards.EXPECT().Get(gomock.Any(), "user-1", "c1").Return(&insight.Card{ID: "c1", IsViewed: true, ViewCount: 1}, nil),
	)

	card, err := service.GetCard(context.Background(), "user-1", "c1")
	require.NoError(t, err)
	assert.True(t, card.IsViewed)

	cards.EXPECT().MarkViewed(gomock.Any(), "user-1", "missing", gomock.Any()).Return(apperr.NotFound("insight card missing"))
	_, err = service.GetCard(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_CardActions(t *testing.T) {
	service, cards, _ := newService(t)
	ctx := context.Background()

	cards.EXPECT().SetHidden(gomock.Any(), "user-1", "c1", true, gomock.Any()).Return(nil)
	cards.EXPECT().SetHidden(gomock.Any(), "user-1", "c1", false, gomock.Any()).Return(nil)
	cards.EXPECT().IncrementShareCount(gomock.Any(), "user-1", "c1", gomock.Any()).Return(nil)

	assert.NoError(t, service.Hide(ctx, "user-1", "c1"))
	assert.NoError(t, service.Show(ctx, "user-1", "c1"))
	assert.NoError(t, service.Share(ctx, "user-1", "c1"))
	assert.ErrorIs(t, service.Hide(ctx, " ", "c1"), apperr.ErrValidation)
}

func TestService_CreateConfig(t *testing.T) {
	enabled := false

	tests := []struct {
		name        string
		in          insight.NewConfig
		createErr   error
		wantEnabled bool
		wantKind    error
	}{
		{
			name:        "enabled by default",
			in:          insight.NewConfig{Name: " 运动月报 ", TimeRange: insight.RangeMonthly, Prompt: "总结{{ len .Entries }}篇日记里的运动"},
			wantEnabled: true,
		},
		{
			name:        "created disabled",
			in:          insight.NewConfig{Name: "睡眠", TimeRange: insight.RangeWeekly, Prompt: "总结睡眠", Enabled: &enabled},
			wantEnabled: false,
		},
		{
			name:     "blank name",
			in:       insight.NewConfig{Name: "  ", TimeRange: insight.RangeDaily, Prompt: "总结"},
			wantKind: apperr.ErrValidation,
		},
		{
			name:     "unknown time range",
			in:       insight.NewConfig{Name: "睡眠", TimeRange: "yearly", Prompt: "总结"},
			wantKind: apperr.ErrValidation,
		},
		{
			name:     "prompt does not parse",
			in:       insight.NewConfig{Name: "睡眠", TimeRange: insight.RangeDaily, Prompt: "{{ .Entries"},
			wantKind: apperr.ErrValidation,
		},
		{
			name:     "prompt refers to an unknown field",
			in:       insight.NewConfig{Name: "睡眠", TimeRange: insight.RangeDaily, Prompt: "{{ .SleepHours }}"},
			wantKind: apperr.ErrValidation,
		},
		{
			name:      "enabled limit reached",
			in:        insight.NewConfig{Name: "睡眠", TimeRange: insight.RangeDaily, Prompt: "总结"},
			createErr: apperr.QuotaExceeded("enabled insight card limit of 10 reached"),
			wantKind:  apperr.ErrQuotaExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, configs := newService(t)
			if tt.wantKind == nil || tt.createErr != nil {
				configs.EXPECT().Create(gomock.Any(), gomock.Any(), 10).Return(tt.createErr)
			}

			got, err := service.CreateConfig(context.Background(), "user-1", tt.in)
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "user-1", got.OwnerID)
			assert.NotContains(t, got.Name, " ")
			assert.Equal(t, tt.wantEnabled, got.IsEnabled)
			assert.Equal(t, insight.RunNever, got.LastRunStatus)
		})
	}
}

func TestService_ConfigActions(t *testing.T) {
	service, _, configs := newService(t)
	ctx := context.Background()

	configs.EXPECT().List(gomock.Any(), "user-1").Return([]insight.Config{{ID: "a"}, {ID: "b"}}, nil)
	configs.EXPECT().SetEnabled(gomock.Any(), "user-1", "a", true, 10, gomock.Any()).
		Return(nil, apperr.QuotaExceeded("enabled insight card limit of 10 reached"))
	configs.EXPECT().Delete(gomock.Any(), "user-1", "b").Return(nil)
	configs.EXPECT().Reorder(gomock.Any(), "user-1", []string{"b", "a"}, gomock.AssignableToTypeOf(time.Time{})).Return(nil)

	list, err := service.ListConfigs(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = service.ToggleConfig(ctx, "user-1", "a", true)
	assert.ErrorIs(t, err, apperr.ErrQuotaExceeded)

	assert.NoError(t, service.DeleteConfig(ctx, "user-1", "b"))
	assert.NoError(t, service.ReorderConfigs(ctx, "user-1", []string{"b", "a"}))
}

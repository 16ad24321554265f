package insight

import (
	"encoding/json"
	"fmt"

	"github.com/at-ishikawa/guanwo/internal/assets"
)

// View flattens a card for Markdown rendering.
func View(card Card) (assets.CardView, error) {
	view := assets.CardView{
		Title:       card.CardType.Title(),
		Type:        string(card.CardType),
		WindowStart: card.DataStartTime,
		WindowEnd:   card.DataEndTime,
		GeneratedAt: card.GeneratedAt,
	}

	switch card.CardType {
	case CardDailyAffirmation:
		var content AffirmationContent
		if err := json.Unmarshal(card.Content, &content); err != nil {
			return assets.CardView{}, fmt.Errorf("json.Unmarshal(card %s) > %w", card.ID, err)
		}
		view.Paragraphs = []string{content.Affirmation}
	case CardWeeklyEmotionMap:
		var content EmotionMapContent
		if err := json.Unmarshal(card.Content, &content); err != nil {
			return assets.CardView{}, fmt.Errorf("json.Unmarshal(card %s) > %w", card.ID, err)
		}
		view.Paragraphs = []string{
			content.Summary,
			fmt.Sprintf("积极 %d · 中立 %d · 消极 %d · 积极率 %.1f%%",
				content.EmotionStats.Positive, content.EmotionStats.Neutral, content.EmotionStats.Negative,
				content.EmotionStats.PositiveRatio*100),
		}
		for _, score := range content.DailyScores {
			view.Items = append(view.Items, fmt.Sprintf("%s: %.2f（%d 条）", score.Date, score.Score, score.Count))
		}
	case CardWeeklyGratitudeList:
		var content GratitudeContent
		if err := json.Unmarshal(card.Content, &content); err != nil {
			return assets.CardView{}, fmt.Errorf("json.Unmarshal(card %s) > %w", card.ID, err)
		}
		for _, item := range content.Items {
			view.Items = append(view.Items, item.Text)
		}
		if content.Closing != "" {
			view.Paragraphs = []string{content.Closing}
		}
	default:
		var content CustomContent
		if err := json.Unmarshal(card.Content, &content); err != nil {
			return assets.CardView{}, fmt.Errorf("json.Unmarshal(card %s) > %w", card.ID, err)
		}
		view.Title = content.Title
		view.Paragraphs = []string{content.Body}
	}
	return view, nil
}

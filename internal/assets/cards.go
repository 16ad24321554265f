package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"time"
)

//go:embed templates/insight-cards.md.go.tmpl
var fallbackInsightCardsTemplate string

// CardsTemplate is the top-level data structure for the card export template
type CardsTemplate struct {
	Title string
	Cards []CardView
}

// CardView is an insight card flattened for Markdown rendering
type CardView struct {
	Title       string
	Type        string
	WindowStart time.Time
	WindowEnd   time.Time
	GeneratedAt time.Time
	Paragraphs  []string
	Items       []string
}

func WriteInsightCards(output io.Writer, templatePath string, templateData CardsTemplate, logger *slog.Logger) error {
	tmpl, err := parseTemplateWithFallback(templatePath, "insight-cards.md.go.tmpl", fallbackInsightCardsTemplate, logger)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

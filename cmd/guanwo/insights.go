package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/guanwo/internal/bootstrap"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/insight"
	"github.com/at-ishikawa/guanwo/internal/pdf"
)

// exportPageSize is the page size used to read every card of an owner.
const exportPageSize = 100

type CardTypeFlag insight.CardType

// Set implements pflag.Value.
func (f *CardTypeFlag) Set(v string) error {
	cardType := insight.CardType(v)
	if !cardType.Valid() {
		return fmt.Errorf("invalid value %q, valid values are %q, %q, %q or %q", v,
			insight.CardDailyAffirmation, insight.CardWeeklyEmotionMap, insight.CardWeeklyGratitudeList, insight.CardCustom)
	}
	*f = CardTypeFlag(cardType)
	return nil
}

// String implements pflag.Value.
func (f *CardTypeFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *CardTypeFlag) Type() string {
	return "CardTypeFlag"
}

var (
	_ pflag.Value = (*CardTypeFlag)(nil)
)

func newInsightsCommand() *cobra.Command {
	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "Insight card commands",
	}
	insightsCmd.AddCommand(
		newInsightsGenerateCommand(),
		newInsightsExportCommand(),
	)
	return insightsCmd
}

func newInsightsGenerateCommand() *cobra.Command {
	var (
		ownerID  string
		configID string
		cardType = CardTypeFlag(insight.CardDailyAffirmation)
	)
	command := &cobra.Command{
		Use:   "generate",
		Short: "Generate one insight card for a user now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if insight.CardType(cardType) == insight.CardCustom && configID == "" {
				return fmt.Errorf("--config is required for %s cards", insight.CardCustom)
			}
			return withServices(cmd.Context(), func(_ *config.Config, services *bootstrap.Services) error {
				card, err := services.Generator.Generate(cmd.Context(), insight.GenerateRequest{
					OwnerID:  ownerID,
					CardType: insight.CardType(cardType),
					ConfigID: configID,
				})
				if err != nil {
					return fmt.Errorf("Generate() > %w", err)
				}
				return printCard(cmd.OutOrStdout(), *card)
			})
		},
	}
	flags := command.Flags()
	flags.StringVar(&ownerID, "user", "", "Owner of the card")
	flags.Var(&cardType, "type", "Card type. Options: daily_affirmation, weekly_emotion_map, weekly_gratitude_list, custom")
	flags.StringVar(&configID, "config", "", "Custom card config id, required for custom cards")
	_ = command.MarkFlagRequired("user")
	return command
}

func printCard(w io.Writer, card insight.Card) error {
	view, err := insight.View(card)
	if err != nil {
		return err
	}
	if _, err := successColor.Fprintf(w, "%s (%s)\n", view.Title, card.ID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s - %s\n", view.WindowStart.Format(time.DateOnly), view.WindowEnd.Format(time.DateOnly)); err != nil {
		return err
	}
	lines := append([]string{}, view.Paragraphs...)
	for _, item := range view.Items {
		lines = append(lines, "- "+item)
	}
	_, err = fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func newInsightsExportCommand() *cobra.Command {
	var (
		ownerID      string
		outputDir    string
		templatePath string
		generatePDF  bool
	)
	command := &cobra.Command{
		Use:   "export",
		Short: "Export the visible insight cards of a user to Markdown and optionally PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(_ *config.Config, services *bootstrap.Services) error {
				var cards []insight.Card
				for offset := 0; ; offset += exportPageSize {
					page, err := services.Insights.ListCards(cmd.Context(), insight.CardFilter{
						OwnerID: ownerID,
						Limit:   exportPageSize,
						Offset:  offset,
					})
					if err != nil {
						return fmt.Errorf("ListCards() > %w", err)
					}
					cards = append(cards, page...)
					if len(page) < exportPageSize {
						break
					}
				}
				if len(cards) == 0 {
					_, err := warnColor.Fprintf(cmd.OutOrStdout(), "no visible cards for %s\n", ownerID)
					return err
				}

				result, err := pdf.ExportCards(cards, pdf.ExportOptions{
					Title:           "Insights of " + ownerID,
					OutputDirectory: outputDir,
					Basename:        "insights-" + ownerID,
					TemplatePath:    templatePath,
					PDF:             generatePDF,
				}, slog.Default())
				if err != nil {
					return fmt.Errorf("pdf.ExportCards() > %w", err)
				}
				if _, err := successColor.Fprintf(cmd.OutOrStdout(), "exported %d cards to %s\n", result.Cards, result.MarkdownPath); err != nil {
					return err
				}
				if result.PDFPath != "" {
					_, err = successColor.Fprintf(cmd.OutOrStdout(), "wrote %s\n", result.PDFPath)
				}
				return err
			})
		},
	}
	flags := command.Flags()
	flags.StringVar(&ownerID, "user", "", "Owner of the cards")
	flags.StringVar(&outputDir, "out", ".", "Output directory")
	flags.StringVar(&templatePath, "template", "", "Markdown template overriding the embedded one")
	flags.BoolVar(&generatePDF, "pdf", false, "Generate PDF output in addition to markdown")
	_ = command.MarkFlagRequired("user")
	return command
}

// Package pdf exports insight cards as Markdown and PDF documents.
package pdf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/guanwo/internal/assets"
	"github.com/at-ishikawa/guanwo/internal/insight"
)

// ConvertMarkdownToPDF converts a markdown file to a PDF next to it and
// returns the PDF's path.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}

type ExportOptions struct {
	Title string
	// OutputDirectory receives <Basename>.md and, with PDF set, <Basename>.pdf.
	OutputDirectory string
	Basename        string
	// TemplatePath overrides the embedded Markdown template.
	TemplatePath string
	PDF          bool
}

type ExportResult struct {
	MarkdownPath string
	PDFPath      string
	Cards        int
}

// ExportCards writes cards to a Markdown file and optionally converts it to PDF.
func ExportCards(cards []insight.Card, opts ExportOptions, logger *slog.Logger) (*ExportResult, error) {
	data := assets.CardsTemplate{
		Title: opts.Title,
		Cards: make([]assets.CardView, 0, len(cards)),
	}
	for _, card := range cards {
		view, err := insight.View(card)
		if err != nil {
			return nil, err
		}
		data.Cards = append(data.Cards, view)
	}

	if err := os.MkdirAll(opts.OutputDirectory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", opts.OutputDirectory, err)
	}
	markdownPath := filepath.Join(opts.OutputDirectory, opts.Basename+".md")
	output, err := os.Create(markdownPath)
	if err != nil {
		return nil, fmt.Errorf("os.Create(%s) > %w", markdownPath, err)
	}
	if err := assets.WriteInsightCards(output, opts.TemplatePath, data, logger); err != nil {
		_ = output.Close()
		return nil, fmt.Errorf("assets.WriteInsightCards() > %w", err)
	}
	if err := output.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", markdownPath, err)
	}

	result := &ExportResult{MarkdownPath: markdownPath, Cards: len(cards)}
	if opts.PDF {
		result.PDFPath, err = ConvertMarkdownToPDF(markdownPath)
		if err != nil {
			return nil, fmt.Errorf("ConvertMarkdownToPDF(%s) > %w", markdownPath, err)
		}
	}
	logger.Debug("exported insight cards",
		slog.String("markdown", result.MarkdownPath),
		slog.String("pdf", result.PDFPath),
		slog.Int("cards", result.Cards),
	)
	return result, nil
}

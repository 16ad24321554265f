package pdf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/guanwo/internal/insight"
	"github.com/at-ishikawa/guanwo/internal/testutil"
)

func TestConvertMarkdownToPDF(t *testing.T) {
	tests := []struct {
		name          string
		markdownPath  string
		setupFile     func(t *testing.T) string
		wantErr       bool
		wantErrMsg    string
		validateAfter func(t *testing.T, pdfPath string)
	}{
		{
			name:         "invalid extension",
			markdownPath: "test.txt",
			wantErr:      true,
			wantErrMsg:   "input file must have .md extension",
		},
		{
			name:         "file not found",
			markdownPath: "nonexistent.md",
			wantErr:      true,
			wantErrMsg:   "os.ReadFile",
		},
		{
			name: "successful conversion",
			setupFile: func(t *testing.T) string {
				mdPath := filepath.Join(t.TempDir(), "cards.md")
				require.NoError(t, os.WriteFile(mdPath, []byte("# Cards\n\nA calm week.\n"), 0644))
				return mdPath
			},
			validateAfter: func(t *testing.T, pdfPath string) {
				_, err := os.Stat(pdfPath)
				assert.NoError(t, err)
				assert.Equal(t, ".pdf", filepath.Ext(pdfPath))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mdPath := tt.markdownPath
			if tt.setupFile != nil {
				mdPath = tt.setupFile(t)
			}

			pdfPath, err := ConvertMarkdownToPDF(mdPath)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, pdfPath)
			if tt.validateAfter != nil {
				tt.validateAfter(t, pdfPath)
			}
		})
	}
}

func TestExportCards(t *testing.T) {
	generated := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	cards := []insight.Card{
		{
			ID:            "c1",
			CardType:      insight.CardCustom,
			Content:       insight.Content(`{"title":"Running","body":"Three runs this week."}`),
			DataStartTime: generated.AddDate(0, 0, -7),
			DataEndTime:   generated,
			GeneratedAt:   generated,
		},
		{
			ID:            "c2",
			CardType:      insight.CardCustom,
			Content:       insight.Content(`{"title":"Sleep","body":"Earlier nights."}`),
			DataStartTime: generated.AddDate(0, 0, -7),
			DataEndTime:   generated,
			GeneratedAt:   generated,
		},
	}

	tests := []struct {
		name    string
		cards   []insight.Card
		pdf     bool
		want    []string
		wantErr bool
	}{
		{
			name:  "markdown only",
			cards: cards,
			want:  []string{"# Insights", "## Running", "Three runs this week.", "## Sleep", "*2026-03-02 ~ 2026-03-09"},
		},
		{
			name:  "with pdf",
			cards: cards[:1],
			pdf:   true,
			want:  []string{"## Running"},
		},
		{
			name: "broken card content",
			cards: []insight.Card{{
				ID:       "c3",
				CardType: insight.CardCustom,
				Content:  insight.Content(`{"title":`),
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "export")
			result, err := ExportCards(tt.cards, ExportOptions{
				Title:           "Insights",
				OutputDirectory: dir,
				Basename:        "user-1",
				PDF:             tt.pdf,
			}, testutil.Logger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.cards), result.Cards)
			assert.Equal(t, filepath.Join(dir, "user-1.md"), result.MarkdownPath)

			content, err := os.ReadFile(result.MarkdownPath)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, string(content), want)
			}

			if tt.pdf {
				_, err := os.Stat(result.PDFPath)
				assert.NoError(t, err)
			} else {
				assert.Empty(t, result.PDFPath)
			}
		})
	}
}

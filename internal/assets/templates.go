package assets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"
)

var funcMap = template.FuncMap{
	"join": strings.Join,
	"date": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"percent": func(ratio float64) string {
		return fmt.Sprintf("%.1f%%", ratio*100)
	},
	"score": func(score float64) string {
		return fmt.Sprintf("%.2f", score)
	},
	"truncate": func(limit int, s string) string {
		if utf8.RuneCountInString(s) <= limit {
			return s
		}
		return string([]rune(s)[:limit]) + "…"
	},
}

func newTemplate(name string) *template.Template {
	return template.New(name).
		Funcs(funcMap).
		Option("missingkey=error")
}

// parseTemplateWithFallback parses templatePath when it exists and falls back
// to the embedded template otherwise, or when the file cannot be parsed.
func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string, logger *slog.Logger) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := newTemplate(fileName).ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			logger.Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := newTemplate(fallbackName).Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template %s: %w", fallbackName, err)
	}
	return tmpl, nil
}

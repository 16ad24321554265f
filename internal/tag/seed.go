package tag

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/guanwo/internal/apperr"
)

//go:embed default_tags.yaml
var defaultSeedFile []byte

// Seed describes a system tag and the words that map onto it.
type Seed struct {
	Name        string   `yaml:"name"`
	Color       string   `yaml:"color"`
	Icon        string   `yaml:"icon"`
	Description string   `yaml:"description"`
	Aliases     []string `yaml:"aliases"`
}

type seedFile struct {
	Tags []Seed `yaml:"tags"`
}

// LoadSeeds reads seeds from path, or the embedded defaults when path is empty.
func LoadSeeds(path string) ([]Seed, error) {
	content := defaultSeedFile
	if path != "" {
		var err error
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
		}
	}

	var file seedFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(tag seeds) > %w", err)
	}
	for i, s := range file.Tags {
		if s.Name == "" {
			return nil, fmt.Errorf("tag seed %d has no name", i)
		}
	}
	return file.Tags, nil
}

// AliasIndex maps every seed name and alias to the seed's name.
func AliasIndex(seeds []Seed) map[string]string {
	index := make(map[string]string)
	for _, s := range seeds {
		index[s.Name] = s.Name
		for _, alias := range s.Aliases {
			index[alias] = s.Name
		}
	}
	return index
}

// SeedSystemTags creates the seeded system tags that do not exist yet and
// returns how many were created.
func (r *Registry) SeedSystemTags(ctx context.Context, seeds []Seed) (int, error) {
	created := 0
	for _, s := range seeds {
		t, err := r.CreateSystemTag(ctx, NewTag{
			Name:        s.Name,
			Color:       s.Color,
			Icon:        s.Icon,
			Description: s.Description,
		})
		if errors.Is(err, apperr.ErrDuplicateTag) {
			r.logger.Debug("system tag already exists", slog.String("name", s.Name))
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed tag %q: %w", s.Name, err)
		}
		r.logger.Info("system tag seeded", slog.String("name", t.Name), slog.String("tag_id", t.ID))
		created++
	}
	return created, nil
}

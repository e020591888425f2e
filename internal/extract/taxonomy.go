// Package extract turns redacted document text into a structured profile of
// skills, organizations, locations, and dates.
package extract

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultCategories is the fixed fallback list used when the taxonomy
// source is missing or unreadable.
var DefaultCategories = []string{
	"Data Science",
	"Backend Development",
	"Frontend Development",
	"Cloud & DevOps",
}

// Taxonomy maps a job-category name to its skill surface forms.
type Taxonomy map[string][]string

// LoadTaxonomy reads the taxonomy YAML at path. An unreadable or malformed
// source yields an empty taxonomy and an error the caller may log; the
// pipeline continues with base entity types only.
func LoadTaxonomy(path string) (Taxonomy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("op=extract.LoadTaxonomy: %w", err)
	}
	var t Taxonomy
	if err := yaml.Unmarshal(b, &t); err != nil {
		return Taxonomy{}, fmt.Errorf("op=extract.LoadTaxonomy: yaml parse: %w", err)
	}
	if t == nil {
		t = Taxonomy{}
	}
	slog.Info("skill taxonomy loaded", slog.String("path", path), slog.Int("categories", len(t)))
	return t, nil
}

// Categories returns the known category names sorted, or DefaultCategories
// when the taxonomy is empty.
func (t Taxonomy) Categories() []string {
	if len(t) == 0 {
		return append([]string(nil), DefaultCategories...)
	}
	out := make([]string, 0, len(t))
	for c := range t {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Vocabulary returns the skill surface forms for category; nil when the
// category is unknown.
func (t Taxonomy) Vocabulary(category string) []string {
	return t[category]
}

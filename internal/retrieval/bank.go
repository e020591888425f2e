// Package retrieval loads the question bank and samples it by skill set.
package retrieval

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
)

// Bank is the in-memory question collection, populated once at startup.
type Bank struct {
	records []domain.QuestionRecord
}

// NewBank wraps an already-loaded record slice (used by tests and seeds).
func NewBank(records []domain.QuestionRecord) *Bank {
	return &Bank{records: records}
}

// LoadBank reads the YAML list at path. A missing, malformed, or non-list
// source yields an empty bank; that is a logged condition, not a failure,
// and every retrieval against an empty bank returns empty results.
func LoadBank(path string) *Bank {
	b, err := os.ReadFile(path)
	if err != nil {
		slog.Error("question bank not readable; retrieval will return empty results",
			slog.String("path", path), slog.Any("error", err))
		return &Bank{}
	}
	var records []domain.QuestionRecord
	if err := yaml.Unmarshal(b, &records); err != nil {
		slog.Error("question bank did not parse as a list; retrieval will return empty results",
			slog.String("path", path), slog.Any("error", err))
		return &Bank{}
	}
	slog.Info("question bank loaded", slog.String("path", path), slog.Int("questions", len(records)))
	return &Bank{records: records}
}

// Size returns the number of loaded records.
func (b *Bank) Size() int { return len(b.records) }

// Records returns the loaded records. Callers must not mutate them.
func (b *Bank) Records() []domain.QuestionRecord { return b.records }

// String implements fmt.Stringer for log-friendly output.
func (b *Bank) String() string { return fmt.Sprintf("Bank(%d questions)", len(b.records)) }

package extract

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
	"github.com/fairyhunter13/ai-interview-prep/internal/redact"
)

// collected entity labels; GPE is renamed to LOCATIONS on output.
var keptLabels = map[string]string{
	"SKILL": domain.LabelSkills,
	"ORG":   domain.LabelOrg,
	"GPE":   domain.LabelLocations,
	"DATE":  domain.LabelDate,
}

// Extractor produces an ExtractedProfile from raw document text. The
// per-category skill vocabulary is composed into a call-scoped rule set, so
// a single Extractor is safe for concurrent use.
type Extractor struct {
	rec Recognizer
	tax Taxonomy
}

// NewExtractor constructs an Extractor. rec may be nil, in which case every
// call degrades to a stub profile instead of failing the pipeline.
func NewExtractor(rec Recognizer, tax Taxonomy) *Extractor {
	return &Extractor{rec: rec, tax: tax}
}

// Extract redacts PII, recognizes entities with the category's skill rules
// applied for this call only, and returns a deduplicated, sorted profile.
func (e *Extractor) Extract(text, category string) domain.ExtractedProfile {
	if e.rec == nil {
		slog.Warn("entity recognizer not available; returning stub profile")
		return stubProfile()
	}

	clean := redact.Redact(text)

	vocab := e.tax.Vocabulary(category)
	rules := make([]Rule, 0, len(vocab))
	for _, skill := range vocab {
		rules = append(rules, Rule{Pattern: skill, Label: "SKILL"})
	}

	ents, err := e.rec.Recognize(clean, rules)
	if err != nil {
		slog.Warn("entity recognition failed; returning stub profile", slog.Any("error", err))
		return stubProfile()
	}

	seen := make(map[string]map[string]struct{})
	for _, ent := range ents {
		label, ok := keptLabels[ent.Label]
		if !ok {
			continue
		}
		v := strings.TrimSpace(ent.Text)
		if v == "" {
			continue
		}
		if seen[label] == nil {
			seen[label] = make(map[string]struct{})
		}
		seen[label][v] = struct{}{}
	}

	profile := make(domain.ExtractedProfile, len(seen))
	for label, values := range seen {
		list := make([]string, 0, len(values))
		for v := range values {
			list = append(list, v)
		}
		sort.Strings(list)
		profile[label] = list
	}
	return profile
}

// stubProfile is the degraded output when no recognizer can run. It flags
// the condition instead of failing the caller.
func stubProfile() domain.ExtractedProfile {
	return domain.ExtractedProfile{
		domain.LabelNote: []string{"entity recognizer unavailable; resume analysis is limited"},
	}
}

// Package domain holds the core entities and ports of the interview-prep
// pipeline. It stays free of adapter dependencies.
package domain

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUnavailable     = errors.New("dependency unavailable")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrInternal        = errors.New("internal error")
)

// Question categories
const (
	CategoryTechnical  = "Technical"
	CategoryBehavioral = "Behavioral"
)

// Entity labels produced by extraction. GPE-style location labels are
// renamed to LabelLocations before they reach an ExtractedProfile.
const (
	LabelSkills    = "SKILLS"
	LabelOrg       = "ORG"
	LabelLocations = "LOCATIONS"
	LabelDate      = "DATE"
	LabelNote      = "NOTE"
)

// QuestionRecord is a single tagged entry of the question bank.
// Records are immutable once loaded; identity is bank position.
type QuestionRecord struct {
	Question string `yaml:"question"`
	Skill    string `yaml:"skill"`
	Category string `yaml:"type"`
}

// RetrievalResult holds the sampled technical and behavioral subsets.
// The subsets are kept separate; callers concatenate explicitly via All.
type RetrievalResult struct {
	Technical  []QuestionRecord
	Behavioral []QuestionRecord
}

// Empty reports whether neither partition produced a record.
func (r RetrievalResult) Empty() bool {
	return len(r.Technical) == 0 && len(r.Behavioral) == 0
}

// All returns the concatenation of both partitions, technical first.
func (r RetrievalResult) All() []QuestionRecord {
	out := make([]QuestionRecord, 0, len(r.Technical)+len(r.Behavioral))
	out = append(out, r.Technical...)
	out = append(out, r.Behavioral...)
	return out
}

// SkillSet is a set of normalized (lower-cased) skill strings.
type SkillSet map[string]struct{}

// NewSkillSet lower-cases, trims, and deduplicates the given skills.
func NewSkillSet(skills []string) SkillSet {
	s := make(SkillSet, len(skills))
	for _, sk := range skills {
		sk = strings.ToLower(strings.TrimSpace(sk))
		if sk != "" {
			s[sk] = struct{}{}
		}
	}
	return s
}

// Contains reports membership, normalizing the probe the same way.
func (s SkillSet) Contains(skill string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(skill))]
	return ok
}

// Empty reports whether the set has no members.
func (s SkillSet) Empty() bool { return len(s) == 0 }

// Sorted returns the members in lexicographic order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for sk := range s {
		out = append(out, sk)
	}
	sort.Strings(out)
	return out
}

// ExtractedProfile maps an entity label to a sorted sequence of unique
// strings. Produced fresh per document; never retained across requests.
type ExtractedProfile map[string][]string

// Skills returns the SKILLS entries, or nil when none were found.
func (p ExtractedProfile) Skills() []string { return p[LabelSkills] }

// EvaluationRecord captures one completed hybrid evaluation.
// Records are append-only and never mutated after creation.
type EvaluationRecord struct {
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	Feedback      string    `json:"feedback"`
	RubricScore   float64   `json:"rubric_score"`
	RubricParsed  bool      `json:"rubric_parsed"`
	SemanticScore float64   `json:"semantic_score"`
	FusedScore    float64   `json:"fused_score"`
	CreatedAt     time.Time `json:"created_at"`
}

// Ports

// ModelClient is the fixed call contract against the external generative
// model. Implementations must be safe for concurrent use.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithTemperature(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Embedder returns fixed-length embedding vectors for texts.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// TextExtractor extracts text from a document at path. Implementations may
// call external services (e.g., Tika); the format handling is opaque here.
type TextExtractor interface {
	ExtractPath(ctx context.Context, fileName, path string) (string, error)
}

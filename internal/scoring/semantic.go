// Package scoring computes the semantic similarity signal and fuses it with
// the rubric signal into the final evaluation score.
package scoring

import (
	"context"
	"log/slog"
	"math"

	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
)

// MaxScore is the upper bound of every score produced here.
const MaxScore = 5.0

// Scorer rescales embedding cosine similarity to the rubric's 0-5 scale.
type Scorer struct {
	embedder domain.Embedder
}

// NewScorer constructs a Scorer over the given embedder. A nil embedder is
// tolerated; every call then degrades to 0.0.
func NewScorer(embedder domain.Embedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// Similarity encodes both texts, computes cosine similarity, and rescales
// (cos+1)/2*5 into [0,5], clamping the upper bound against floating-point
// overshoot. When the embedding model is unavailable it returns 0.0 and
// logs at error level; evaluation still completes with reduced signal.
func (s *Scorer) Similarity(ctx context.Context, answer, reference string) float64 {
	if s.embedder == nil {
		slog.Error("embedding model not available; semantic score degraded to 0")
		return 0.0
	}
	vecs, err := s.embedder.Embed(ctx, []string{answer, reference})
	if err != nil || len(vecs) < 2 {
		slog.Error("embedding failed; semantic score degraded to 0", slog.Any("error", err))
		return 0.0
	}
	cos, ok := cosine(vecs[0], vecs[1])
	if !ok {
		slog.Error("embeddings not comparable; semantic score degraded to 0",
			slog.Int("len_a", len(vecs[0])), slog.Int("len_b", len(vecs[1])))
		return 0.0
	}
	score := (cos + 1) / 2 * MaxScore
	return math.Min(score, MaxScore)
}

// cosine returns the cosine similarity of two vectors; ok is false when the
// vectors differ in length or either has zero magnitude.
func cosine(a, b []float32) (float64, bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), true
}

package scoring_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/ai-interview-prep/internal/scoring"
)

func TestFuse_Identities(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 5.0, scoring.Fuse(5, 5), 1e-9)
	assert.InDelta(t, 0.0, scoring.Fuse(0, 0), 1e-9)
	assert.InDelta(t, 3.2, scoring.Fuse(4, 2), 1e-9)
	assert.InDelta(t, 4.4, scoring.Fuse(4.0, 5.0), 1e-9)
}

func TestFuse_StaysInRange(t *testing.T) {
	t.Parallel()
	for _, r := range []float64{0, 1.5, 2.5, 4, 5} {
		for _, s := range []float64{0, 1, 3.3, 5} {
			f := scoring.Fuse(r, s)
			assert.GreaterOrEqual(t, f, 0.0)
			assert.LessOrEqual(t, f, 5.0)
		}
	}
}

// hashEmbedder returns a deterministic vector per distinct text.
type hashEmbedder struct{}

func (hashEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, 8)
		for j, r := range t {
			v[j%8] += float32(r%13) + 1
		}
		out[i] = v
	}
	return out, nil
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("embedding service down")
}

func TestSimilarity_SelfIsMax(t *testing.T) {
	t.Parallel()
	s := scoring.NewScorer(hashEmbedder{})
	got := s.Similarity(context.Background(), "same answer", "same answer")
	assert.InDelta(t, 5.0, got, 1e-6)
}

func TestSimilarity_Symmetric(t *testing.T) {
	t.Parallel()
	s := scoring.NewScorer(hashEmbedder{})
	ab := s.Similarity(context.Background(), "alpha beta", "gamma delta")
	ba := s.Similarity(context.Background(), "gamma delta", "alpha beta")
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestSimilarity_Range(t *testing.T) {
	t.Parallel()
	s := scoring.NewScorer(hashEmbedder{})
	got := s.Similarity(context.Background(), "short", "a completely different and much longer answer")
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 5.0)
}

func TestSimilarity_EmbedderUnavailable(t *testing.T) {
	t.Parallel()
	assert.Zero(t, scoring.NewScorer(nil).Similarity(context.Background(), "a", "b"))
	assert.Zero(t, scoring.NewScorer(failingEmbedder{}).Similarity(context.Background(), "a", "b"))
}

package retrieval

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
)

// DefaultPerCategory is the number of questions requested per category when
// the caller does not say otherwise.
const DefaultPerCategory = 3

// Retriever samples the bank by skill set. Safe for concurrent use; the
// random source is guarded.
type Retriever struct {
	bank *Bank

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRetriever constructs a Retriever over bank with a time-seeded source.
func NewRetriever(bank *Bank) *Retriever {
	return &Retriever{bank: bank, rng: rand.New(rand.NewSource(time.Now().UnixNano()))} //nolint:gosec // Sampling questions does not need crypto randomness.
}

// NewRetrieverWithSeed constructs a Retriever with a fixed seed for
// deterministic tests.
func NewRetrieverWithSeed(bank *Bank, seed int64) *Retriever {
	return &Retriever{bank: bank, rng: rand.New(rand.NewSource(seed))} //nolint:gosec // Deterministic test sampling.
}

// Retrieve selects every record whose skill tag matches the skill set
// (case-insensitive), partitions by category, and independently samples
// min(available, requested) from each partition without replacement.
// An empty bank or empty skill set returns empty results for both
// categories; those are the callers' fallback triggers, never errors.
func (r *Retriever) Retrieve(skills domain.SkillSet, numTechnical, numBehavioral int) domain.RetrievalResult {
	if r.bank.Size() == 0 {
		slog.Warn("retrieval attempted against an empty question bank")
		return domain.RetrievalResult{}
	}
	if skills.Empty() {
		slog.Warn("retrieval attempted with no skills")
		return domain.RetrievalResult{}
	}

	var technical, behavioral []domain.QuestionRecord
	for _, q := range r.bank.Records() {
		if !skills.Contains(q.Skill) {
			continue
		}
		switch q.Category {
		case domain.CategoryTechnical:
			technical = append(technical, q)
		case domain.CategoryBehavioral:
			behavioral = append(behavioral, q)
		}
	}
	slog.Info("question bank matches",
		slog.Int("technical", len(technical)),
		slog.Int("behavioral", len(behavioral)),
		slog.Any("skills", skills.Sorted()))

	return domain.RetrievalResult{
		Technical:  r.sample(technical, numTechnical),
		Behavioral: r.sample(behavioral, numBehavioral),
	}
}

// sample draws min(len(pool), n) records uniformly without replacement.
func (r *Retriever) sample(pool []domain.QuestionRecord, n int) []domain.QuestionRecord {
	if len(pool) == 0 || n <= 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}
	r.mu.Lock()
	perm := r.rng.Perm(len(pool))
	r.mu.Unlock()
	out := make([]domain.QuestionRecord, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, pool[idx])
	}
	return out
}

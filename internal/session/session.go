// Package session holds per-interaction state: the most recent generated
// questions and the append-only evaluation history. Each interaction gets
// its own Session instance; nothing here is process-global.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
)

// Session is the state of one user interaction. All methods are safe for
// concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu                 sync.Mutex
	generatedQuestions string
	history            []domain.EvaluationRecord
}

// New creates an empty session with a fresh id.
func New() *Session {
	return &Session{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
}

// ResetQuestions clears the generated-questions field. Called at the start
// of every generation request; the evaluation history is never cleared.
func (s *Session) ResetQuestions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generatedQuestions = ""
}

// SetQuestions stores the final generated questions text.
func (s *Session) SetQuestions(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generatedQuestions = text
}

// Questions returns the most recent generated questions text.
func (s *Session) Questions() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generatedQuestions
}

// AppendEvaluation appends a completed record to the history. Records are
// never mutated after this point; history preserves insertion order.
func (s *Session) AppendEvaluation(rec domain.EvaluationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, rec)
}

// History returns a copy of the evaluation history.
func (s *Session) History() []domain.EvaluationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.EvaluationRecord, len(s.history))
	copy(out, s.history)
	return out
}

// Report is the aggregate handed to the report-rendering collaborator.
type Report struct {
	QAPairs             []domain.EvaluationRecord `json:"qa_pairs"`
	Strengths           string                    `json:"strengths"`
	AreasForImprovement string                    `json:"areas_for_improvement"`
	NextPlan            string                    `json:"next_plan"`
	FinalScore          float64                   `json:"final_score"`
	RubricScore         float64                   `json:"rubric_score"`
	SemanticScore       float64                   `json:"semantic_score"`
}

// BuildReport scans every historical record's feedback for the literal
// substrings "strength" and "improve" (case-insensitive) and collects the
// associated questions; duplicates are kept on purpose so repeated themes
// weigh more in the narrative. Returns false when there is nothing to
// report yet.
func (s *Session) BuildReport() (Report, bool) {
	history := s.History()
	if len(history) == 0 {
		return Report{}, false
	}

	var strengths, improvements []string
	for _, rec := range history {
		fb := strings.ToLower(rec.Feedback)
		if strings.Contains(fb, "strength") {
			strengths = append(strengths, rec.Question)
		}
		if strings.Contains(fb, "improve") {
			improvements = append(improvements, rec.Question)
		}
	}

	last := history[len(history)-1]
	return Report{
		QAPairs:             history,
		Strengths:           fmt.Sprintf("Demonstrated strong STAR method usage in questions about: %s", strings.Join(strengths, ", ")),
		AreasForImprovement: fmt.Sprintf("Could improve technical depth in answers to questions about: %s", strings.Join(improvements, ", ")),
		NextPlan:            "Review core concepts related to the improvement areas. Practice mock interviews focusing on concise, impactful answers.",
		FinalScore:          last.FusedScore,
		RubricScore:         last.RubricScore,
		SemanticScore:       last.SemanticScore,
	}, true
}

package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
	"github.com/fairyhunter13/ai-interview-prep/internal/session"
)

func rec(question, feedback string, rubric, semantic, fused float64) domain.EvaluationRecord {
	return domain.EvaluationRecord{
		Question:      question,
		Answer:        "an answer",
		Feedback:      feedback,
		RubricScore:   rubric,
		RubricParsed:  true,
		SemanticScore: semantic,
		FusedScore:    fused,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestSession_QuestionsResetDoesNotTouchHistory(t *testing.T) {
	t.Parallel()
	s := session.New()
	s.SetQuestions("old questions")
	s.AppendEvaluation(rec("Q1", "good strengths shown", 4, 4, 4))

	s.ResetQuestions()
	assert.Empty(t, s.Questions())
	assert.Len(t, s.History(), 1)
}

func TestSession_HistoryAppendOnlyInOrder(t *testing.T) {
	t.Parallel()
	s := session.New()
	s.AppendEvaluation(rec("Q1", "f1", 1, 1, 1))
	s.AppendEvaluation(rec("Q2", "f2", 2, 2, 2))
	s.AppendEvaluation(rec("Q3", "f3", 3, 3, 3))

	h := s.History()
	require.Len(t, h, 3)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, []string{h[0].Question, h[1].Question, h[2].Question})

	// Mutating the returned copy must not affect the session.
	h[0].Question = "mutated"
	assert.Equal(t, "Q1", s.History()[0].Question)
}

func TestSession_StoresFusedScore(t *testing.T) {
	t.Parallel()
	s := session.New()
	s.AppendEvaluation(rec("Q", "feedback", 4.0, 5.0, 4.4))
	assert.InDelta(t, 4.4, s.History()[0].FusedScore, 1e-9)
}

func TestBuildReport_EmptyHistory(t *testing.T) {
	t.Parallel()
	_, ok := session.New().BuildReport()
	assert.False(t, ok)
}

func TestBuildReport_ScansFeedbackSubstrings(t *testing.T) {
	t.Parallel()
	s := session.New()
	s.AppendEvaluation(rec("Q-sql", "A clear STRENGTH in structure.", 4, 4, 4))
	s.AppendEvaluation(rec("Q-python", "You should improve technical depth.", 2, 3, 2.4))
	s.AppendEvaluation(rec("Q-both", "Strengths noted; still room to improve.", 3, 3, 3))
	s.AppendEvaluation(rec("Q-neither", "Fine overall.", 3, 3, 3))

	rep, ok := s.BuildReport()
	require.True(t, ok)
	assert.Contains(t, rep.Strengths, "Q-sql")
	assert.Contains(t, rep.Strengths, "Q-both")
	assert.NotContains(t, rep.Strengths, "Q-python")
	assert.Contains(t, rep.AreasForImprovement, "Q-python")
	assert.Contains(t, rep.AreasForImprovement, "Q-both")
	assert.Len(t, rep.QAPairs, 4)

	// Latest record drives the headline scores.
	assert.InDelta(t, 3.0, rep.FinalScore, 1e-9)
}

func TestStore_GetOrCreate(t *testing.T) {
	t.Parallel()
	st := session.NewStore()
	created, err := st.GetOrCreate("")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := st.GetOrCreate(created.ID)
	require.NoError(t, err)
	assert.Same(t, created, got)

	_, err = st.Get("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

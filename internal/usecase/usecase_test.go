package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ai-interview-prep/internal/adapter/ai"
	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
	"github.com/fairyhunter13/ai-interview-prep/internal/extract"
	"github.com/fairyhunter13/ai-interview-prep/internal/promptgen"
	"github.com/fairyhunter13/ai-interview-prep/internal/retrieval"
	"github.com/fairyhunter13/ai-interview-prep/internal/scoring"
	"github.com/fairyhunter13/ai-interview-prep/internal/session"
)

// fakeModel answers Generate with generateText and GenerateWithTemperature
// (the rubric path) with rubricText.
type fakeModel struct {
	generateText string
	rubricText   string
	generateErr  error
	lastPrompt   string
}

func (f *fakeModel) Generate(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.generateText, nil
}

func (f *fakeModel) GenerateWithTemperature(_ context.Context, prompt string, _ float32) (string, error) {
	f.lastPrompt = prompt
	return f.rubricText, nil
}

type fakeDocs struct {
	text string
	err  error
}

func (f fakeDocs) ExtractPath(_ context.Context, _, _ string) (string, error) {
	return f.text, f.err
}

type constEmbedder struct{}

func (constEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.5, 0.5, 0.5}
	}
	return out, nil
}

func testTaxonomy() extract.Taxonomy {
	return extract.Taxonomy{"Data Science": {"Python", "SQL", "PyTorch"}}
}

func testBank() *retrieval.Bank {
	return retrieval.NewBank([]domain.QuestionRecord{
		{Question: "Explain joins.", Skill: "SQL", Category: domain.CategoryTechnical},
		{Question: "Optimize a slow query.", Skill: "SQL", Category: domain.CategoryTechnical},
		{Question: "Describe a Python project.", Skill: "Python", Category: domain.CategoryTechnical},
		{Question: "Tell me about a data conflict.", Skill: "Python", Category: domain.CategoryBehavioral},
	})
}

func newGenerateService(model *fakeModel, docs fakeDocs) (GenerateService, *session.Store) {
	store := session.NewStore()
	gw := ai.NewGateway(model, "test-model", ai.NoRetryPolicy(), nil)
	svc := NewGenerateService(
		extract.NewExtractor(extract.NewLexiconRecognizer(), testTaxonomy()),
		retrieval.NewRetrieverWithSeed(testBank(), 7),
		gw,
		docs,
		store,
	)
	return svc, store
}

func TestGenerate_ResumeWithMatchingSkills(t *testing.T) {
	t.Parallel()
	model := &fakeModel{generateText: "1. Personalized question."}
	docs := fakeDocs{text: "Built ETL in Python and SQL. Contact me at jane@corp.example."}
	svc, store := newGenerateService(model, docs)

	var updates []string
	out, err := svc.Generate(context.Background(), GenerateInput{
		JobCategory:    "Data Science",
		ResumeFileName: "resume.txt",
		ResumePath:     "/tmp/resume.txt",
	}, func(msg string) { updates = append(updates, msg) })
	require.NoError(t, err)

	assert.Equal(t, promptgen.VariantRewrap, out.Variant)
	assert.Empty(t, out.Warning)
	assert.Equal(t, []string{"Python", "SQL"}, out.Skills)
	assert.Equal(t, "1. Personalized question.", out.Questions)
	assert.NotEmpty(t, updates)
	assert.Equal(t, "Done.", updates[len(updates)-1])

	sess, err := store.Get(out.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "1. Personalized question.", sess.Questions())
}

func TestGenerate_NoDocumentUsesRoleOnly(t *testing.T) {
	t.Parallel()
	model := &fakeModel{generateText: "general questions"}
	svc, _ := newGenerateService(model, fakeDocs{})

	out, err := svc.Generate(context.Background(), GenerateInput{TargetRole: "Data Engineer"}, nil)
	require.NoError(t, err)
	assert.Equal(t, promptgen.VariantRoleOnly, out.Variant)
	assert.Empty(t, out.Warning)
	assert.Contains(t, model.lastPrompt, "Data Engineer")
}

func TestGenerate_NoSkillsFallsBackWithWarning(t *testing.T) {
	t.Parallel()
	model := &fakeModel{generateText: "general questions"}
	docs := fakeDocs{text: "I enjoy gardening and hiking."}
	svc, _ := newGenerateService(model, docs)

	out, err := svc.Generate(context.Background(), GenerateInput{
		TargetRole:     "Data Engineer",
		JobCategory:    "Data Science",
		ResumeFileName: "resume.txt",
		ResumePath:     "/tmp/resume.txt",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, promptgen.VariantRoleOnly, out.Variant)
	assert.Equal(t, promptgen.WarnNoSkills, out.Warning)
}

func TestGenerate_NoDocumentAndNoRoleIsInvalid(t *testing.T) {
	t.Parallel()
	svc, _ := newGenerateService(&fakeModel{}, fakeDocs{})
	_, err := svc.Generate(context.Background(), GenerateInput{TargetRole: "   "}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestGenerate_ExtractionFailureIsUnavailable(t *testing.T) {
	t.Parallel()
	svc, _ := newGenerateService(&fakeModel{}, fakeDocs{err: errors.New("tika down")})
	_, err := svc.Generate(context.Background(), GenerateInput{
		ResumeFileName: "resume.pdf",
		ResumePath:     "/tmp/resume.pdf",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestGenerate_ModelFailureSurfaces(t *testing.T) {
	t.Parallel()
	svc, _ := newGenerateService(&fakeModel{generateErr: errors.New("upstream 503")}, fakeDocs{})
	_, err := svc.Generate(context.Background(), GenerateInput{TargetRole: "Data Engineer"}, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidArgument)
}

func newEvaluateService(model *fakeModel) (EvaluateService, *session.Store) {
	store := session.NewStore()
	gw := ai.NewGateway(model, "test-model", ai.NoRetryPolicy(), nil)
	return NewEvaluateService(gw, scoring.NewScorer(constEmbedder{}), store), store
}

func TestEvaluate_FusesRubricAndSemantic(t *testing.T) {
	t.Parallel()
	model := &fakeModel{
		generateText: "An ideal answer.",
		rubricText:   "Solid answer.\nOverall Score: 4.0/5",
	}
	svc, store := newEvaluateService(model)

	rec, err := svc.Evaluate(context.Background(), EvaluateInput{
		Question:      "Explain joins.",
		Answer:        "Joins combine rows across tables.",
		ResumeContext: "SQL-heavy resume",
	}, nil)
	require.NoError(t, err)

	assert.True(t, rec.RubricParsed)
	assert.InDelta(t, 4.0, rec.RubricScore, 1e-9)
	// Identical embeddings give perfect similarity, rescaled to 5.0.
	assert.InDelta(t, 5.0, rec.SemanticScore, 1e-9)
	assert.InDelta(t, 4.4, rec.FusedScore, 1e-9)

	// The record landed in a fresh session's history.
	require.Equal(t, 1, store.Len())
}

func TestEvaluate_UnparsableRubricScoresZero(t *testing.T) {
	t.Parallel()
	model := &fakeModel{
		generateText: "An ideal answer.",
		rubricText:   "Feedback without any numeric line.",
	}
	svc, _ := newEvaluateService(model)

	rec, err := svc.Evaluate(context.Background(), EvaluateInput{
		Question:      "Q",
		Answer:        "A",
		ResumeContext: "R",
	}, nil)
	require.NoError(t, err)
	assert.False(t, rec.RubricParsed)
	assert.Zero(t, rec.RubricScore)
	assert.InDelta(t, 0.4*5.0, rec.FusedScore, 1e-9)
}

func TestEvaluate_MissingInputIsInvalid(t *testing.T) {
	t.Parallel()
	svc, _ := newEvaluateService(&fakeModel{})
	_, err := svc.Evaluate(context.Background(), EvaluateInput{Question: "Q", Answer: "", ResumeContext: "R"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestEvaluate_HistoryAccumulatesInSession(t *testing.T) {
	t.Parallel()
	model := &fakeModel{generateText: "ref", rubricText: "Shows strength.\nOverall Score: 4.0/5"}
	svc, store := newEvaluateService(model)
	sess := store.Create()

	for _, q := range []string{"Q1", "Q2"} {
		_, err := svc.Evaluate(context.Background(), EvaluateInput{
			SessionID:     sess.ID,
			Question:      q,
			Answer:        "answer text",
			ResumeContext: "resume",
		}, nil)
		require.NoError(t, err)
	}
	assert.Len(t, sess.History(), 2)
}

func TestSessionService_QuestionsAndReport(t *testing.T) {
	t.Parallel()
	store := session.NewStore()
	svc := NewSessionService(store)

	_, err := svc.Questions("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sess := store.Create()
	sess.SetQuestions("1. A question.")
	got, err := svc.Questions(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "1. A question.", got)

	_, err = svc.Report(sess.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	sess.AppendEvaluation(domain.EvaluationRecord{Question: "Q", Feedback: "A strength.", FusedScore: 4.4})
	rep, err := svc.Report(sess.ID)
	require.NoError(t, err)
	assert.True(t, strings.Contains(rep.Strengths, "Q"))
	assert.InDelta(t, 4.4, rep.FinalScore, 1e-9)
}

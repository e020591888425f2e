package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fairyhunter13/ai-interview-prep/internal/adapter/ai"
	"github.com/fairyhunter13/ai-interview-prep/internal/adapter/observability"
	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
	"github.com/fairyhunter13/ai-interview-prep/internal/scoring"
	"github.com/fairyhunter13/ai-interview-prep/internal/session"
)

// EvaluateService runs the hybrid answer-evaluation pipeline.
type EvaluateService struct {
	Gateway  *ai.Gateway
	Scorer   *scoring.Scorer
	Sessions *session.Store
}

// NewEvaluateService wires an EvaluateService.
func NewEvaluateService(gw *ai.Gateway, sc *scoring.Scorer, sessions *session.Store) EvaluateService {
	return EvaluateService{Gateway: gw, Scorer: sc, Sessions: sessions}
}

// EvaluateInput carries one answer evaluation request.
type EvaluateInput struct {
	SessionID     string
	Question      string
	Answer        string
	ResumeContext string
}

// Evaluate generates a reference answer, runs the rubric evaluation, scores
// semantic similarity against the reference, fuses the signals, and appends
// the record to the session history. Gateway degradation never aborts the
// pipeline; only invalid input does.
func (s EvaluateService) Evaluate(ctx context.Context, in EvaluateInput, progress ProgressFunc) (domain.EvaluationRecord, error) {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	in.ResumeContext = strings.TrimSpace(in.ResumeContext)
	if in.Question == "" || in.Answer == "" || in.ResumeContext == "" {
		return domain.EvaluationRecord{}, fmt.Errorf("%w: question, answer, and resume context are all required", domain.ErrInvalidArgument)
	}

	sess, err := s.Sessions.GetOrCreate(in.SessionID)
	if err != nil {
		return domain.EvaluationRecord{}, fmt.Errorf("op=usecase.Evaluate: %w", err)
	}

	progress.emit("Generating reference answer...")
	reference := s.Gateway.ReferenceAnswer(ctx, in.Question, in.ResumeContext)

	progress.emit("Evaluating against rubric...")
	rubric := s.Gateway.EvaluateRubric(ctx, in.Question, in.Answer, in.ResumeContext)

	progress.emit("Scoring semantic similarity...")
	semantic := s.Scorer.Similarity(ctx, in.Answer, reference)

	fused := scoring.Fuse(rubric.Score, semantic)
	rec := domain.EvaluationRecord{
		Question:      in.Question,
		Answer:        in.Answer,
		Feedback:      rubric.Feedback,
		RubricScore:   rubric.Score,
		RubricParsed:  rubric.ScoreParsed,
		SemanticScore: semantic,
		FusedScore:    fused,
		CreatedAt:     time.Now().UTC(),
	}
	sess.AppendEvaluation(rec)
	observability.ObserveEvaluation(rubric.Score, semantic, fused)
	progress.emit("Done.")
	return rec, nil
}

// SessionService exposes read access to session artifacts.
type SessionService struct {
	Sessions *session.Store
}

// NewSessionService wires a SessionService.
func NewSessionService(sessions *session.Store) SessionService {
	return SessionService{Sessions: sessions}
}

// Questions returns the generated questions text for the session.
func (s SessionService) Questions(id string) (string, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return "", err
	}
	return sess.Questions(), nil
}

// Report aggregates the session history; ErrNotFound when the session does
// not exist, ErrInvalidArgument when it has no evaluations yet.
func (s SessionService) Report(id string) (session.Report, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return session.Report{}, err
	}
	rep, ok := sess.BuildReport()
	if !ok {
		return session.Report{}, fmt.Errorf("%w: session has no evaluations yet", domain.ErrInvalidArgument)
	}
	return rep, nil
}

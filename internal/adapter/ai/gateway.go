package ai

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/fairyhunter13/ai-interview-prep/internal/adapter/observability"
	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
	"github.com/fairyhunter13/ai-interview-prep/internal/promptgen"
)

// rubricTemperature keeps rubric evaluations near-deterministic.
const rubricTemperature float32 = 0.2

// Degraded placeholders returned when the evaluation call shapes exhaust
// their retries; the scoring pipeline always completes with best-effort
// output instead of propagating the failure.
const (
	ReferenceAnswerPlaceholder = "Could not generate a reference answer."
	rubricErrorFormat          = "Evaluation error: %v"
)

var overallScoreRe = regexp.MustCompile(`(?i)Overall Score:\s*([0-9.]+)\s*/\s*5`)

// RubricEvaluation is the outcome of an EvaluateRubric call. ScoreParsed
// distinguishes a genuine zero from a malformed model response.
type RubricEvaluation struct {
	Feedback    string
	Score       float64
	ScoreParsed bool
}

// Gateway invokes the external generative model with bounded retry and
// backoff, and audits every successful call.
type Gateway struct {
	client domain.ModelClient
	model  string
	policy RetryPolicy
	audit  *Auditor
}

// NewGateway wires a Gateway. audit may be nil (auditing disabled).
func NewGateway(client domain.ModelClient, model string, policy RetryPolicy, audit *Auditor) *Gateway {
	return &Gateway{client: client, model: model, policy: policy, audit: audit}
}

// GenerateQuestions is the free-form generation call shape. After retries
// are exhausted the error is surfaced; the caller reports failure to the
// user rather than receiving partial text.
func (g *Gateway) GenerateQuestions(ctx context.Context, prompt string) (string, error) {
	text, err := g.generate(ctx, "generate_questions", prompt)
	if err != nil {
		return "", fmt.Errorf("op=ai.GenerateQuestions: %w", err)
	}
	g.audit.RecordCall("model general call", g.model, prompt, text)
	return text, nil
}

// ReferenceAnswer generates an ideal answer for question given resume
// context. On exhaustion it degrades to a textual placeholder so the
// evaluation pipeline still completes.
func (g *Gateway) ReferenceAnswer(ctx context.Context, question, resumeContext string) string {
	prompt := promptgen.ReferenceAnswerPrompt(question, resumeContext)
	text, err := g.generate(ctx, "reference_answer", prompt)
	if err != nil {
		slog.Error("reference answer generation failed after retries", slog.Any("error", err))
		return ReferenceAnswerPlaceholder
	}
	g.audit.RecordCall("model reference answer call", g.model, prompt, text)
	return text
}

// EvaluateRubric runs the rubric evaluation call shape at low temperature
// and parses the overall score out of the free-text response. Exhausted
// retries degrade to a placeholder plus zero score; an unparsable score
// yields 0.0 with ScoreParsed=false and a logged warning.
func (g *Gateway) EvaluateRubric(ctx context.Context, question, answer, resumeContext string) RubricEvaluation {
	prompt := promptgen.EvaluationPrompt(question, answer, resumeContext)
	text, err := g.generateWithTemperature(ctx, "rubric_evaluation", prompt, rubricTemperature)
	if err != nil {
		slog.Error("rubric evaluation failed after retries", slog.Any("error", err))
		return RubricEvaluation{Feedback: fmt.Sprintf(rubricErrorFormat, err), Score: 0.0}
	}

	score, parsed := ParseOverallScore(text)
	if !parsed {
		slog.Warn("could not parse overall score from rubric feedback; defaulting to 0")
	}
	g.audit.RecordRubricCall("model evaluation call", g.model, prompt, text, score, rubricTemperature)
	observability.ObserveAIScoreParse(parsed)
	return RubricEvaluation{Feedback: text, Score: score, ScoreParsed: parsed}
}

// ParseOverallScore extracts the "Overall Score: X/5" numeric token.
func ParseOverallScore(feedback string) (float64, bool) {
	m := overallScoreRe.FindStringSubmatch(feedback)
	if m == nil {
		return 0.0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0.0, false
	}
	return v, true
}

func (g *Gateway) generate(ctx context.Context, op, prompt string) (string, error) {
	return g.retry(ctx, op, func() (string, error) {
		return g.client.Generate(ctx, prompt)
	})
}

func (g *Gateway) generateWithTemperature(ctx context.Context, op, prompt string, temp float32) (string, error) {
	return g.retry(ctx, op, func() (string, error) {
		return g.client.GenerateWithTemperature(ctx, prompt, temp)
	})
}

// retry runs call under the gateway's policy. Every failure is treated as
// transient; the model client marks non-retryable failures itself via
// backoff.Permanent.
func (g *Gateway) retry(ctx context.Context, op string, call func() (string, error)) (string, error) {
	var out string
	attempt := 0
	operation := func() error {
		attempt++
		start := time.Now()
		text, err := call()
		observability.AIRequestsTotal.WithLabelValues(g.model, op).Inc()
		observability.AIRequestDuration.WithLabelValues(g.model, op).Observe(time.Since(start).Seconds())
		if err != nil {
			slog.Warn("model call failed",
				slog.String("op", op),
				slog.Int("attempt", attempt),
				slog.Any("error", err))
			return err
		}
		out = text
		return nil
	}
	if err := backoff.Retry(operation, g.policy.Backoff(ctx)); err != nil {
		return "", fmt.Errorf("model call exhausted %d attempts: %w", attempt, err)
	}
	return out, nil
}

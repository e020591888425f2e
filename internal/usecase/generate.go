// Package usecase orchestrates the generation and evaluation pipelines over
// the domain ports and adapter services.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fairyhunter13/ai-interview-prep/internal/adapter/ai"
	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
	"github.com/fairyhunter13/ai-interview-prep/internal/extract"
	"github.com/fairyhunter13/ai-interview-prep/internal/promptgen"
	"github.com/fairyhunter13/ai-interview-prep/internal/retrieval"
	"github.com/fairyhunter13/ai-interview-prep/internal/session"
)

// ProgressFunc receives user-visible status updates while a pipeline runs.
// Callers may pass nil when they do not want the stream.
type ProgressFunc func(msg string)

func (f ProgressFunc) emit(msg string) {
	if f != nil {
		f(msg)
	}
}

// GenerateService runs the question-generation pipeline.
type GenerateService struct {
	Extractor *extract.Extractor
	Retriever *retrieval.Retriever
	Gateway   *ai.Gateway
	Docs      domain.TextExtractor
	Sessions  *session.Store
}

// NewGenerateService wires a GenerateService.
func NewGenerateService(ex *extract.Extractor, ret *retrieval.Retriever, gw *ai.Gateway, docs domain.TextExtractor, sessions *session.Store) GenerateService {
	return GenerateService{Extractor: ex, Retriever: ret, Gateway: gw, Docs: docs, Sessions: sessions}
}

// GenerateInput carries one generation request. ResumePath is empty when no
// document was uploaded.
type GenerateInput struct {
	SessionID      string
	TargetRole     string
	JobCategory    string
	ResumeFileName string
	ResumePath     string
	NumTechnical   int
	NumBehavioral  int
}

// GenerateOutput is the pipeline result.
type GenerateOutput struct {
	SessionID string
	Questions string
	Variant   promptgen.Variant
	Warning   string
	Skills    []string
}

// Generate validates the request, reads and analyzes the resume when one was
// uploaded, retrieves matching bank questions, composes the prompt via the
// fallback chain, and stores the generated questions in the session. The
// previous generated questions are cleared up front; evaluation history is
// untouched.
func (s GenerateService) Generate(ctx context.Context, in GenerateInput, progress ProgressFunc) (GenerateOutput, error) {
	in.TargetRole = strings.TrimSpace(in.TargetRole)
	hasDoc := in.ResumePath != ""
	if !hasDoc && in.TargetRole == "" {
		return GenerateOutput{}, fmt.Errorf("%w: a resume file or a target role is required", domain.ErrInvalidArgument)
	}
	if in.NumTechnical <= 0 {
		in.NumTechnical = retrieval.DefaultPerCategory
	}
	if in.NumBehavioral <= 0 {
		in.NumBehavioral = retrieval.DefaultPerCategory
	}

	sess, err := s.Sessions.GetOrCreate(in.SessionID)
	if err != nil {
		return GenerateOutput{}, fmt.Errorf("op=usecase.Generate: %w", err)
	}
	sess.ResetQuestions()

	var resumeText string
	var skills []string
	var retrieved domain.RetrievalResult
	if hasDoc {
		progress.emit("Reading resume document...")
		resumeText, err = s.Docs.ExtractPath(ctx, in.ResumeFileName, in.ResumePath)
		if err != nil {
			return GenerateOutput{}, fmt.Errorf("op=usecase.Generate: %w: resume text extraction failed: %v", domain.ErrUnavailable, err)
		}
		progress.emit("Extracting skills and entities...")
		profile := s.Extractor.Extract(resumeText, in.JobCategory)
		skills = profile.Skills()
		if len(skills) > 0 {
			progress.emit("Retrieving matching question bank entries...")
			retrieved = s.Retriever.Retrieve(domain.NewSkillSet(skills), in.NumTechnical, in.NumBehavioral)
		}
	}

	prompt := promptgen.Compose(promptgen.ComposeInput{
		TargetRole:    in.TargetRole,
		HasDocument:   hasDoc,
		ResumeContext: resumeText,
		Skills:        skills,
		Retrieved:     retrieved,
	})
	if prompt.Warning != "" {
		slog.Warn("generation fallback", slog.String("reason", prompt.Warning))
		progress.emit(prompt.Warning)
	}

	progress.emit("Generating interview questions...")
	questions, err := s.Gateway.GenerateQuestions(ctx, prompt.Text)
	if err != nil {
		return GenerateOutput{}, fmt.Errorf("op=usecase.Generate: %w", err)
	}
	sess.SetQuestions(questions)
	progress.emit("Done.")

	return GenerateOutput{
		SessionID: sess.ID,
		Questions: questions,
		Variant:   prompt.Variant,
		Warning:   prompt.Warning,
		Skills:    skills,
	}, nil
}

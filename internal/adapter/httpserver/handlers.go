package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/ai-interview-prep/internal/config"
	"github.com/fairyhunter13/ai-interview-prep/internal/domain"
	"github.com/fairyhunter13/ai-interview-prep/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg       config.Config
	Generate  usecase.GenerateService
	Evaluate  usecase.EvaluateService
	Sessions  usecase.SessionService
	TikaCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers wired.
func NewServer(cfg config.Config, gen usecase.GenerateService, eval usecase.EvaluateService, sessions usecase.SessionService, tikaCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Generate: gen, Evaluate: eval, Sessions: sessions, TikaCheck: tikaCheck}
}

// allowedExt enforces an allowlist for resume uploads: .txt, .pdf, .docx
func allowedExt(name string) bool {
	n := strings.ToLower(name)
	return strings.HasSuffix(n, ".txt") || strings.HasSuffix(n, ".pdf") || strings.HasSuffix(n, ".docx")
}

func allowedMIMEFor(m, filename string) bool {
	m = strings.ToLower(m)
	// Some detectors misclassify rich text; accept any text/* for .txt.
	if strings.HasSuffix(strings.ToLower(filename), ".txt") && strings.HasPrefix(m, "text/") {
		return true
	}
	if strings.HasPrefix(m, "text/plain") { // allow parameters such as charset
		return true
	}
	return m == "application/pdf" || m == "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

func formInt(r *http.Request, field string) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.FormValue(field)))
	if err != nil {
		return 0
	}
	return v
}

// GenerateHandler runs the question-generation pipeline over a multipart
// request with an optional resume file.
func (s *Server) GenerateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
					Code: "INVALID_ARGUMENT", Message: "payload too large",
					Details: map[string]any{"max_mb": s.Cfg.MaxUploadMB},
				}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		in := usecase.GenerateInput{
			SessionID:     r.FormValue("session_id"),
			TargetRole:    r.FormValue("target_role"),
			JobCategory:   r.FormValue("job_category"),
			NumTechnical:  formInt(r, "num_technical"),
			NumBehavioral: formInt(r, "num_behavioral"),
		}

		file, header, err := r.FormFile("resume")
		switch {
		case err == http.ErrMissingFile:
			// Role-only generation; validated downstream.
		case err != nil:
			writeError(w, r, fmt.Errorf("%w: resume: %v", domain.ErrInvalidArgument, err), nil)
			return
		default:
			defer func() { _ = file.Close() }()
			if !allowedExt(header.Filename) {
				writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{
					Code: "INVALID_ARGUMENT", Message: "unsupported media type for resume (extension)",
					Details: map[string]any{"filename": header.Filename},
				}})
				return
			}
			data, err := io.ReadAll(file)
			if err != nil {
				writeError(w, r, fmt.Errorf("%w: resume read: %v", domain.ErrInvalidArgument, err), nil)
				return
			}
			m := mimetype.Detect(data)
			if !allowedMIMEFor(m.String(), header.Filename) {
				writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{
					Code: "INVALID_ARGUMENT", Message: "unsupported media type for resume (content)",
					Details: map[string]any{"mime": m.String(), "filename": header.Filename},
				}})
				return
			}
			tmp, err := os.CreateTemp("", "resume-*")
			if err != nil {
				writeError(w, r, fmt.Errorf("temp file: %w", err), nil)
				return
			}
			defer func() { _ = os.Remove(tmp.Name()); _ = tmp.Close() }()
			if _, err := tmp.Write(data); err != nil {
				writeError(w, r, fmt.Errorf("temp write: %w", err), nil)
				return
			}
			in.ResumeFileName = header.Filename
			in.ResumePath = tmp.Name()
		}

		var progress []string
		out, err := s.Generate.Generate(r.Context(), in, func(msg string) { progress = append(progress, msg) })
		if err != nil {
			writeError(w, r, err, map[string]any{"progress": progress})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"session_id": out.SessionID,
			"questions":  out.Questions,
			"variant":    out.Variant,
			"warning":    out.Warning,
			"skills":     out.Skills,
			"progress":   progress,
		})
	}
}

// EvaluateHandler runs the hybrid answer evaluation over a JSON request.
func (s *Server) EvaluateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
		var req struct {
			SessionID     string `json:"session_id"`
			Question      string `json:"question" validate:"required,max=5000"`
			Answer        string `json:"answer" validate:"required,max=20000"`
			ResumeContext string `json:"resume_context" validate:"required,max=50000"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			verrs := map[string]string{}
			if ve, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range ve {
					verrs[strings.ToLower(fe.Field())] = fe.Tag()
				}
			}
			writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
			return
		}

		var progress []string
		rec, err := s.Evaluate.Evaluate(r.Context(), usecase.EvaluateInput{
			SessionID:     req.SessionID,
			Question:      req.Question,
			Answer:        req.Answer,
			ResumeContext: req.ResumeContext,
		}, func(msg string) { progress = append(progress, msg) })
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"evaluation": rec,
			"progress":   progress,
		})
	}
}

// QuestionsDownloadHandler serves the session's generated questions as a
// plain-text attachment.
func (s *Server) QuestionsDownloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, r, fmt.Errorf("%w: id missing", domain.ErrInvalidArgument), nil)
			return
		}
		questions, err := s.Sessions.Questions(id)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		if questions == "" {
			writeError(w, r, fmt.Errorf("%w: no questions generated yet", domain.ErrInvalidArgument), nil)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="interview_questions.txt"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(questions))
	}
}

// ReportHandler returns the aggregated session report.
func (s *Server) ReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, r, fmt.Errorf("%w: id missing", domain.ErrInvalidArgument), nil)
			return
		}
		rep, err := s.Sessions.Report(id)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

// ReadyzHandler probes the Tika dependency.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 1)
		if s.TikaCheck != nil {
			if err := s.TikaCheck(ctx); err != nil {
				checks = append(checks, check{Name: "tika", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "tika", OK: true})
			}
		}
		ok := true
		for _, c := range checks {
			if !c.OK {
				ok = false
				break
			}
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}

package ai

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// auditTruncateAt bounds prompt/response snippets in audit records.
const auditTruncateAt = 500

// Auditor appends one JSONL record per successful model call. Failures are
// not separately audited beyond normal logging.
type Auditor struct {
	lg *slog.Logger

	encOnce sync.Once
	enc     *tiktoken.Tiktoken
}

// NewAuditor opens (appending) the audit file at path and returns an
// Auditor writing JSON lines to it.
func NewAuditor(path string) (*Auditor, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // Operator-configured audit path.
	if err != nil {
		return nil, fmt.Errorf("op=ai.NewAuditor: %w", err)
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{})
	return &Auditor{lg: slog.New(h)}, nil
}

// NewAuditorWithLogger injects a logger directly; used by tests.
func NewAuditorWithLogger(lg *slog.Logger) *Auditor { return &Auditor{lg: lg} }

// RecordCall audits a general or reference-answer call.
func (a *Auditor) RecordCall(event, model, prompt, response string) {
	if a == nil || a.lg == nil {
		return
	}
	a.lg.Info(event,
		slog.String("model_name", model),
		slog.String("prompt_sent", truncate(prompt, auditTruncateAt)),
		slog.String("response_received", truncate(response, auditTruncateAt)),
		slog.Int("prompt_tokens", a.countTokens(prompt)),
	)
}

// RecordRubricCall audits a rubric evaluation call, including the parsed
// numeric score and the temperature used.
func (a *Auditor) RecordRubricCall(event, model, prompt, response string, parsedScore float64, temperature float32) {
	if a == nil || a.lg == nil {
		return
	}
	a.lg.Info(event,
		slog.String("model_name", model),
		slog.Float64("temperature", float64(temperature)),
		slog.String("prompt_sent", truncate(prompt, auditTruncateAt)),
		slog.String("response_received", truncate(response, auditTruncateAt)),
		slog.Float64("parsed_score", parsedScore),
		slog.Int("prompt_tokens", a.countTokens(prompt)),
	)
}

// countTokens approximates prompt size with the cl100k_base encoding; -1
// when the encoding cannot be loaded.
func (a *Auditor) countTokens(text string) int {
	a.encOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			slog.Warn("token encoding unavailable; audit token counts disabled", slog.Any("error", err))
			return
		}
		a.enc = enc
	})
	if a.enc == nil {
		return -1
	}
	return len(a.enc.Encode(text, nil, nil))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

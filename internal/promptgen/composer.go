package promptgen

import "github.com/fairyhunter13/ai-interview-prep/internal/domain"

// Variant identifies which generation strategy was selected.
type Variant string

const (
	// VariantRoleOnly covers the cold-start path and both fallbacks.
	VariantRoleOnly Variant = "role_only"
	// VariantRewrap personalizes retrieved bank questions.
	VariantRewrap Variant = "rewrap"
)

// user-visible fallback warnings
const (
	WarnNoSkills      = "no specific skills found in the resume; falling back to general role-based questions"
	WarnNoBankMatches = "no bank questions matched the resume skills; falling back to general role-based questions"
)

// ComposeInput carries the signals the three-way decision is made on.
type ComposeInput struct {
	TargetRole    string
	HasDocument   bool
	ResumeContext string
	Skills        []string
	Retrieved     domain.RetrievalResult
}

// Prompt is the composed result: exactly one variant per request, plus an
// optional user-visible warning when a fallback fired.
type Prompt struct {
	Variant Variant
	Text    string
	Warning string
}

// Compose evaluates the fallback chain once per generation request:
// no document -> role-only; no extracted skills -> role-only with warning;
// no bank matches -> role-only with warning; otherwise rewrap.
func Compose(in ComposeInput) Prompt {
	switch {
	case !in.HasDocument:
		return Prompt{Variant: VariantRoleOnly, Text: RoleOnlyPrompt(in.TargetRole)}
	case len(in.Skills) == 0:
		return Prompt{Variant: VariantRoleOnly, Text: RoleOnlyPrompt(in.TargetRole), Warning: WarnNoSkills}
	case in.Retrieved.Empty():
		return Prompt{Variant: VariantRoleOnly, Text: RoleOnlyPrompt(in.TargetRole), Warning: WarnNoBankMatches}
	default:
		return Prompt{Variant: VariantRewrap, Text: RewrapPrompt(in.ResumeContext, in.Retrieved.All())}
	}
}

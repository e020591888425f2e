// Package redact masks PII in free text before it reaches any downstream
// component. Extraction and prompts never see raw emails or phone numbers.
package redact

import "regexp"

// Placeholder tokens. Neither matches the patterns below, so Redact is
// idempotent on already-redacted text.
const (
	EmailPlaceholder = "[REDACTED_EMAIL]"
	PhonePlaceholder = "[REDACTED_PHONE]"
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	// Optional country code, optional parenthesized area code, common separators.
	phoneRe = regexp.MustCompile(`(\+?\d{1,2}[ ]?)?(\(?\d{3}\)?[ .-]?)?\d{3}[ .-]?\d{4}`)
)

// Redact replaces every email and phone-number match with a fixed
// placeholder token. Pure function; no failure mode.
func Redact(text string) string {
	text = emailRe.ReplaceAllString(text, EmailPlaceholder)
	text = phoneRe.ReplaceAllString(text, PhonePlaceholder)
	return text
}

package extract

import (
	"regexp"
	"strings"
)

// Rule is an exact-match surface form mapped to an entity label. Rules are
// composed per call so no shared recognizer state is ever mutated.
type Rule struct {
	Pattern string
	Label   string
}

// Entity is a labeled span of text as reported by a recognizer.
type Entity struct {
	Text  string
	Label string
}

// Recognizer finds labeled entities in text, augmented by call-scoped rules.
// Implementations must treat rules as transient input, not stored state, so
// concurrent calls stay safe.
type Recognizer interface {
	Recognize(text string, rules []Rule) ([]Entity, error)
}

// LexiconRecognizer is a rule-based recognizer over small built-in lexicons
// plus the per-call rule set. It recognizes ORG by corporate suffix, GPE by
// a location lexicon, and DATE by common date shapes.
type LexiconRecognizer struct {
	locations map[string]string // lower-cased form -> canonical form
}

var orgSuffixes = []string{
	"Inc", "Inc.", "LLC", "Ltd", "Ltd.", "Corp", "Corp.", "GmbH",
	"Labs", "Technologies", "Systems", "Solutions", "Software",
}

// A deliberately small seed lexicon; deployments extend it via taxonomy-style
// configuration rather than code.
var knownLocations = []string{
	"New York", "San Francisco", "London", "Berlin", "Singapore",
	"Toronto", "Sydney", "Bangalore", "Jakarta", "Amsterdam",
	"Seattle", "Austin", "Boston", "Dublin", "Tokyo",
}

var (
	dateRe = regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}\b|\b(19|20)\d{2}\s*(?:-|–|to)\s*(?:(19|20)\d{2}|present|Present)\b|\b(19|20)\d{2}\b`)
	wordRe = regexp.MustCompile(`[A-Za-z0-9+#.&/-]+`)
)

// NewLexiconRecognizer constructs a recognizer with the built-in lexicons.
func NewLexiconRecognizer() *LexiconRecognizer {
	locs := make(map[string]string, len(knownLocations))
	for _, l := range knownLocations {
		locs[strings.ToLower(l)] = l
	}
	return &LexiconRecognizer{locations: locs}
}

// Recognize scans text once per concern. The rules slice augments the base
// lexicons for this call only.
func (r *LexiconRecognizer) Recognize(text string, rules []Rule) ([]Entity, error) {
	var ents []Entity
	ents = append(ents, matchRules(text, rules)...)
	ents = append(ents, r.matchLocations(text)...)
	ents = append(ents, matchOrgs(text)...)
	for _, m := range dateRe.FindAllString(text, -1) {
		ents = append(ents, Entity{Text: strings.TrimSpace(m), Label: "DATE"})
	}
	return ents, nil
}

// matchRules finds case-insensitive exact matches of each rule pattern on
// token boundaries.
func matchRules(text string, rules []Rule) []Entity {
	var ents []Entity
	lower := strings.ToLower(text)
	for _, rule := range rules {
		p := strings.ToLower(strings.TrimSpace(rule.Pattern))
		if p == "" {
			continue
		}
		idx := 0
		for {
			i := strings.Index(lower[idx:], p)
			if i < 0 {
				break
			}
			start := idx + i
			end := start + len(p)
			if boundaryAt(lower, start, end) {
				ents = append(ents, Entity{Text: text[start:end], Label: rule.Label})
			}
			idx = end
		}
	}
	return ents
}

func boundaryAt(s string, start, end int) bool {
	if start > 0 && isWordByte(s[start-1]) {
		return false
	}
	if end < len(s) && isWordByte(s[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func (r *LexiconRecognizer) matchLocations(text string) []Entity {
	var ents []Entity
	lower := strings.ToLower(text)
	for key, canonical := range r.locations {
		idx := 0
		for {
			i := strings.Index(lower[idx:], key)
			if i < 0 {
				break
			}
			start := idx + i
			end := start + len(key)
			if boundaryAt(lower, start, end) {
				ents = append(ents, Entity{Text: canonical, Label: "GPE"})
			}
			idx = end
		}
	}
	return ents
}

// matchOrgs tags capitalized token runs that end in a corporate suffix,
// e.g. "Acme Labs" or "Initech Inc.".
func matchOrgs(text string) []Entity {
	var ents []Entity
	tokens := wordRe.FindAllStringIndex(text, -1)
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = text[t[0]:t[1]]
	}
	for i, w := range words {
		if !isOrgSuffix(w) {
			continue
		}
		// Walk back over preceding capitalized words to form the name.
		start := i
		for start > 0 && isCapitalized(words[start-1]) && !isOrgSuffix(words[start-1]) {
			start--
		}
		if start == i {
			continue
		}
		name := strings.Join(words[start:i+1], " ")
		ents = append(ents, Entity{Text: name, Label: "ORG"})
	}
	return ents
}

func isOrgSuffix(w string) bool {
	for _, s := range orgSuffixes {
		if w == s {
			return true
		}
	}
	return false
}

func isCapitalized(w string) bool {
	return len(w) > 0 && w[0] >= 'A' && w[0] <= 'Z'
}

// Package normalize cleans raw contact names into canonical identities.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// Default normalization configuration constants.
const (
	// defaultMaxTokens bounds how many words a legitimate personal name can
	// have. Longer strings are free-text messages mis-filed into the name
	// column, not names.
	defaultMaxTokens = 4
)

// defaultPlaceholders are tokens that mark a name field as filler rather
// than a person. A name is rejected when every token is a placeholder.
var defaultPlaceholders = []string{
	"n/a", "na", "none", "null", "nil",
	"unknown", "tbd", "tba", "test", "user",
	"pending", "vacant", "xxx",
}

var (
	telephoneRe  = regexp.MustCompile(`^\s*Telephone:`)
	leadingNumRe = regexp.MustCompile(`^\d+\s*`)
	rankPrefixRe = regexp.MustCompile(`\bA1C\b`)
	digitsRe     = regexp.MustCompile(`\d+`)
)

// Name is the canonical identity derived from a raw name string.
// Two raw strings denote the same point of contact iff their Keys are equal.
type Name struct {
	Key     string // case-folded comparison form
	Display string // title-cased form used for output
}

// Normalizer validates and canonicalizes raw contact names.
// The zero value is not usable; construct with New.
type Normalizer struct {
	placeholders map[string]struct{}
	maxTokens    int
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		maxTokens: defaultMaxTokens,
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.placeholders == nil {
		n.placeholders = tokenSet(defaultPlaceholders)
	}
	return n
}

// Normalize cleans raw into a canonical Name. A non-nil error always wraps
// ErrRejected and means the row carries no usable person name; callers treat
// it as routine filtering, not a failure. Normalize is pure.
func (n *Normalizer) Normalize(raw string) (Name, error) {
	if telephoneRe.MatchString(raw) {
		return Name{}, ErrTelephoneEntry
	}

	cleaned := clean(raw)
	if cleaned == "" {
		return Name{}, ErrEmptyName
	}

	tokens := strings.Fields(cleaned)
	if len(tokens) > n.maxTokens {
		return Name{}, ErrTooManyWords
	}
	if !containsAlpha(cleaned) {
		return Name{}, ErrNoAlphabetic
	}
	if n.allPlaceholders(tokens) {
		return Name{}, ErrPlaceholder
	}

	key := strings.ToLower(strings.Join(tokens, " "))
	return Name{Key: key, Display: displayCase(tokens)}, nil
}

// TelephoneDigits reports whether raw is a telephone entry mis-filed into
// the name column, and if so returns its digits as a phone number.
func TelephoneDigits(raw string) (string, bool) {
	if !telephoneRe.MatchString(raw) {
		return "", false
	}
	return strings.Join(digitsRe.FindAllString(raw, -1), ""), true
}

// clean strips characters that cannot appear in a personal name: quotes,
// leading numbers, the A1C rank prefix, digits, and punctuation other than
// hyphen, apostrophe, and the period used in initials.
func clean(raw string) string {
	s := strings.ReplaceAll(raw, `"`, "")
	s = strings.TrimSpace(s)
	s = leadingNumRe.ReplaceAllString(s, "")
	s = rankPrefixRe.ReplaceAllString(s, "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '-' || r == '\'' || r == '.':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func (n *Normalizer) allPlaceholders(tokens []string) bool {
	for _, t := range tokens {
		t = strings.ToLower(strings.Trim(t, "."))
		if _, ok := n.placeholders[t]; !ok {
			return false
		}
	}
	return true
}

func containsAlpha(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// displayCase title-cases each token, capitalizing after hyphens and
// apostrophes so "o'brien-smith" renders as "O'Brien-Smith".
func displayCase(tokens []string) string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = titleToken(t)
	}
	return strings.Join(out, " ")
}

func titleToken(t string) string {
	var b strings.Builder
	b.Grow(len(t))
	upperNext := true
	for _, r := range t {
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		upperNext = r == '-' || r == '\''
	}
	return b.String()
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}

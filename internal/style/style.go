// Package style rates the quality of candidate code with external static analysis
// tools. Ratings are on pylint's 0-10 scale.
package style

import (
	"context"
	"errors"
	"strings"
)

// NeutralRating is reported for languages without a configured linter.
const NeutralRating = 5.0

// ErrEmptyCode is returned when there is no code to analyse.
var ErrEmptyCode = errors.New("no code to analyse")

// Rater produces a 0-10 quality rating for source code.
type Rater interface {
	Rate(ctx context.Context, code, language string) (float64, error)
}

// ByLanguage dispatches to a Rater per language and rates everything else neutrally.
type ByLanguage struct {
	raters map[string]Rater
}

// ForLanguages builds a ByLanguage from language name to Rater. Names are matched
// case-insensitively and common aliases (py, python3) are folded.
func ForLanguages(raters map[string]Rater) *ByLanguage {
	m := make(map[string]Rater, len(raters))
	for lang, r := range raters {
		m[NormalizeLanguage(lang)] = r
	}
	return &ByLanguage{raters: m}
}

// Rate uses the language's Rater, or returns NeutralRating if none is configured.
func (b *ByLanguage) Rate(ctx context.Context, code, language string) (float64, error) {
	r, ok := b.raters[NormalizeLanguage(language)]
	if !ok {
		return NeutralRating, nil
	}
	return r.Rate(ctx, code, language)
}

// Supports reports whether a linter is configured for the language.
func (b *ByLanguage) Supports(language string) bool {
	_, ok := b.raters[NormalizeLanguage(language)]
	return ok
}

// NormalizeLanguage lowercases a language name and folds aliases.
func NormalizeLanguage(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	switch lang {
	case "py", "python3", "python2":
		return "python"
	case "js", "node":
		return "javascript"
	case "golang":
		return "go"
	case "c++":
		return "cpp"
	}
	return lang
}

// Static always returns the same rating or error. Useful for tests and for
// disabling analysis.
type Static struct {
	Rating float64
	Err    error
}

// Rate returns the fixed rating.
func (s Static) Rate(context.Context, string, string) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Rating, nil
}

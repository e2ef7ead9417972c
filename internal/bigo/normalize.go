// Package bigo normalizes and compares free-text asymptotic complexity expressions
// such as "O(n log n)" or "n^2" so candidate claims can be graded against analysis.
package bigo

import (
	"regexp"
	"strings"
	"unicode"
)

// Family buckets used for fuzzy comparison.
const (
	FamilyConstant     = "o(1)"
	FamilyLogarithmic  = "o(logn)"
	FamilyLinear       = "o(n)"
	FamilyLinearithmic = "o(nlogn)"
	FamilyQuadratic    = "o(n2)"
	FamilyCubic        = "o(n3)"
)

var (
	bareExprPattern     = regexp.MustCompile(`^[a-z0-9^*]+$`)
	higherDegreePattern = regexp.MustCompile(`n[4-9]`)
)

// rewrites collapses verbose log forms and caret exponents. Every rewrite shortens
// the string, so applying them to a fixpoint always terminates.
var rewrites = strings.NewReplacer(
	"log(n)", "logn",
	"log2n", "logn",
	"log10n", "logn",
	"^2", "2",
	"^3", "3",
)

// Class is a parsed complexity expression.
type Class struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	Family     string `json:"family"`
}

// Parse builds a Class from a raw expression.
func Parse(expr string) Class {
	return Class{
		Raw:        expr,
		Normalized: Normalize(expr),
		Family:     Family(expr),
	}
}

// Normalize canonicalizes a complexity expression, e.g. "O( n log n )" -> "o(nlogn)".
// The output is a comparison key, not guaranteed to be valid Big-O notation.
// Normalize is idempotent.
func Normalize(expr string) string {
	s := stripSpace(strings.ToLower(expr))
	if s == "" {
		return ""
	}

	s = rewriteToFixpoint(s)

	if !strings.HasPrefix(s, "o(") {
		// Bare forms like "nlogn" or "n^2" are wrapped. Anything else is wrapped only
		// when its parentheses balance; unbalanced input is left alone so it can never
		// be double-wrapped on a second pass.
		if bareExprPattern.MatchString(s) || balancedParens(s) {
			s = "o(" + s + ")"
		}
	}

	return rewriteToFixpoint(s)
}

// Family collapses an expression into a coarse bucket: o(1), o(logn), o(n), o(nlogn),
// o(n2) or o(n3). Linear-with-constant forms (2n, k*n, nk) map to o(n). Exponential,
// factorial and higher-degree polynomial classes are returned normalized but
// uncollapsed.
func Family(expr string) string {
	s := Normalize(expr)
	if s == "" {
		return ""
	}

	// Multiplication signs carry no information for bucketing: n*logn == nlogn.
	key := strings.ReplaceAll(s, "*", "")

	switch {
	case strings.Contains(key, "o(1)"):
		return FamilyConstant
	case isLogarithmic(key):
		return FamilyLogarithmic
	case strings.Contains(key, "nlogn"):
		return FamilyLinearithmic
	case strings.Contains(key, "n2"):
		return FamilyQuadratic
	case strings.Contains(key, "n3"):
		return FamilyCubic
	case isHigherOrder(key):
		return s
	case strings.Contains(key, "n"):
		return FamilyLinear
	}
	return s
}

// isLogarithmic reports whether the only n in the expression sits inside logn.
func isLogarithmic(s string) bool {
	if !strings.Contains(s, "logn") || strings.Contains(s, "nlogn") {
		return false
	}
	return !strings.Contains(strings.ReplaceAll(s, "logn", ""), "n")
}

func isHigherOrder(s string) bool {
	return strings.ContainsAny(s, "^!") || higherDegreePattern.MatchString(s)
}

func rewriteToFixpoint(s string) string {
	for {
		next := rewrites.Replace(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func balancedParens(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

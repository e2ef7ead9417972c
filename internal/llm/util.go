// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"encoding/json"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers and surrounding prose from
// JSON responses. LLMs often wrap JSON in ```json ... ``` blocks or add a preamble
// even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimSpace(stripFence(text))
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}

	var extracted string
	if text[start] == '{' {
		extracted = extractJSONObject(text[start:])
	} else {
		extracted = extractJSONArray(text[start:])
	}
	if extracted == "" {
		return text
	}
	return extracted
}

// ExtractJSON returns the first JSON object in an LLM response. The first fenced
// code block is tried first; otherwise the first balanced, well-formed {...} in the
// text is used. Returns ErrNoJSON when nothing qualifies.
func ExtractJSON(text string) (string, error) {
	if block, ok := firstFencedBlock(text); ok {
		if obj := firstJSONObject(block); obj != "" {
			return obj, nil
		}
	}
	if obj := firstJSONObject(text); obj != "" {
		return obj, nil
	}
	return "", ErrNoJSON
}

// stripFence removes a leading ``` fence (with optional language tag) and the last
// closing fence.
func stripFence(text string) string {
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 && isLanguageTag(text[:idx]) {
		text = text[idx+1:]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return text
}

// firstFencedBlock returns the body of the first ``` block. An unterminated
// fence yields everything after it.
func firstFencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start < 0 {
		return "", false
	}
	rest := text[start+3:]
	if idx := strings.Index(rest, "\n"); idx >= 0 && isLanguageTag(rest[:idx]) {
		rest = rest[idx+1:]
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return rest, true
}

// isLanguageTag reports whether the first line after a fence looks like "json" or "python".
func isLanguageTag(line string) bool {
	return len(line) < 20 && !strings.ContainsAny(line, " {[")
}

// firstJSONObject scans for the first '{' that starts a balanced, valid JSON object.
func firstJSONObject(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		if obj := extractJSONObject(s[i:]); obj != "" && json.Valid([]byte(obj)) {
			return obj
		}
	}
	return ""
}

// extractJSONObject returns the balanced {...} prefix of s, or "" if s does not
// start with '{' or never closes it.
func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// extractJSONArray returns the balanced [...] prefix of s, or "" if s does not
// start with '[' or never closes it.
func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

// extractBalanced matches open/close delimiters, ignoring any inside JSON strings.
func extractBalanced(s string, open, close byte) string {
	if s == "" || s[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

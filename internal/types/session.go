// Package types provides type definitions for structured data used throughout the interview-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ReferenceLanguage is the language whose reference solution is preferred when
// asking collaborators for optimal complexity.
const ReferenceLanguage = "python"

// Problem is the coding question the candidate answered.
type Problem struct {
	ID        string            `json:"id,omitempty"`
	Slug      string            `json:"slug,omitempty"`
	Statement string            `json:"statement" validate:"required"`
	Solutions map[string]string `json:"solutions,omitempty"`
}

// TranscriptTurn is one utterance from the interview conversation.
type TranscriptTurn struct {
	Speaker string `json:"speaker" validate:"required"`
	Text    string `json:"text"`
}

// Session is everything the judge needs to score one coding interview.
type Session struct {
	UserID       string           `json:"user_id" validate:"required"`
	SessionID    string           `json:"session_id" validate:"required"`
	Problem      Problem          `json:"problem"`
	Code         string           `json:"code"`
	Language     string           `json:"language,omitempty"`
	ClaimedTime  string           `json:"claimed_time,omitempty"`
	ClaimedSpace string           `json:"claimed_space,omitempty"`
	Transcript   []TranscriptTurn `json:"transcript,omitempty" validate:"dive"`
}

// Validate validates the Session using the validator.
func (s *Session) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// Claims returns the complexity the candidate stated for their solution.
func (s *Session) Claims() Claims {
	return Claims{Time: s.ClaimedTime, Space: s.ClaimedSpace}
}

// TranscriptText renders the transcript as "speaker: text" lines.
func (s *Session) TranscriptText() string {
	var sb strings.Builder
	for _, turn := range s.Transcript {
		sb.WriteString(turn.Speaker)
		sb.WriteString(": ")
		sb.WriteString(turn.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ReferenceSolution picks the reference solution for the problem: the python one
// if present, then the one in the candidate's language, then any (by language name).
// Returns "" when the problem has no solutions.
func (p Problem) ReferenceSolution(language string) string {
	if sol, ok := p.Solutions[ReferenceLanguage]; ok && sol != "" {
		return sol
	}
	if sol, ok := p.Solutions[strings.ToLower(language)]; ok && sol != "" {
		return sol
	}

	langs := make([]string, 0, len(p.Solutions))
	for lang, sol := range p.Solutions {
		if sol != "" {
			langs = append(langs, lang)
		}
	}
	if len(langs) == 0 {
		return ""
	}
	sort.Strings(langs)
	return p.Solutions[langs[0]]
}

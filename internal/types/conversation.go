//nolint:revive // types is a standard Go package name pattern
package types

// FallbackConversationFeedback marks conversation scores produced without the AI scorer.
const FallbackConversationFeedback = "Fallback conversation score (AI error)"

// ConversationScores are the four conversation dimensions, each in [0,100].
type ConversationScores struct {
	Understanding float64 `json:"understanding"`
	Awareness     float64 `json:"awareness"`
	Defense       float64 `json:"defense"`
	Clarity       float64 `json:"clarity"`
}

// ConversationResult is the output of conversation scoring.
type ConversationResult struct {
	ConversationScores
	Feedback []string `json:"feedback"`
}

// DefaultConversationResult is used when conversation scoring is unavailable.
func DefaultConversationResult() ConversationResult {
	return ConversationResult{
		ConversationScores: ConversationScores{
			Understanding: 50,
			Awareness:     50,
			Defense:       50,
			Clarity:       50,
		},
		Feedback: []string{FallbackConversationFeedback},
	}
}

package scoring

import "github.com/jonathan/interview-coach/internal/types"

// ClampConversation bounds each conversation dimension to [0,100] and rounds it
// to one decimal.
func ClampConversation(c types.ConversationScores) types.ConversationScores {
	return types.ConversationScores{
		Understanding: round1(clamp(c.Understanding)),
		Awareness:     round1(clamp(c.Awareness)),
		Defense:       round1(clamp(c.Defense)),
		Clarity:       round1(clamp(c.Clarity)),
	}
}

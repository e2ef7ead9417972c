package judge

import "time"

// State is a stage of a judging run.
type State string

// States of a judging run, in the order they are reached.
const (
	StateInit                State = "INIT"
	StateComplexityInferred  State = "COMPLEXITY_INFERRED"
	StateCodeReviewed        State = "CODE_REVIEWED"
	StateCodeScored          State = "CODE_SCORED"
	StateConversationScored  State = "CONVERSATION_SCORED"
	StateAggregated          State = "AGGREGATED"
	StateFeedbackComposed    State = "FEEDBACK_COMPOSED"
	StatePracticeRecommended State = "PRACTICE_RECOMMENDED"
	StatePersisted           State = "PERSISTED"
)

// States lists every state in run order.
var States = []State{
	StateInit,
	StateComplexityInferred,
	StateCodeReviewed,
	StateCodeScored,
	StateConversationScored,
	StateAggregated,
	StateFeedbackComposed,
	StatePracticeRecommended,
	StatePersisted,
}

// Step records one state transition.
type Step struct {
	State        State         `json:"state"`
	Collaborator string        `json:"collaborator,omitempty"`
	Duration     time.Duration `json:"duration"`
	Degraded     bool          `json:"degraded"`
	Error        string        `json:"error,omitempty"`
}

// StepEvent is emitted to the progress callback after each step.
type StepEvent struct {
	SessionID string `json:"session_id"`
	Index     int    `json:"index"`
	Total     int    `json:"total"`
	Step      Step   `json:"step"`
}

//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewerResult_Compiled(t *testing.T) {
	assert.True(t, ReviewerResult{CompileStatus: "ok"}.Compiled())
	assert.True(t, ReviewerResult{CompileStatus: "OK"}.Compiled())
	assert.False(t, ReviewerResult{CompileStatus: "error"}.Compiled())
	assert.False(t, ReviewerResult{}.Compiled(), "empty status is treated as an error")
}

func TestReviewerResult_PassedCount(t *testing.T) {
	r := ReviewerResult{
		CompileStatus: "ok",
		Tests: []TestResult{
			{Name: "a", Status: "pass"},
			{Name: "b", Status: "PASS"},
			{Name: "c", Status: "fail"},
			{Name: "d", Status: ""},
		},
	}
	assert.Equal(t, 2, r.PassedCount())
}

func TestReviewerResult_UnmarshalCollaboratorOutput(t *testing.T) {
	data := `{
		"compile_status": "ok",
		"tests": [{"name": "basic", "input": "[1,2]", "expected": "3", "output": "3", "status": "pass"}],
		"complexity": {"estimated_time": "O(n)", "estimated_space": "O(1)"}
	}`

	var r ReviewerResult
	require.NoError(t, json.Unmarshal([]byte(data), &r))

	assert.True(t, r.Compiled())
	require.Len(t, r.Tests, 1)
	assert.True(t, r.Tests[0].Passed())
	require.NotNil(t, r.Complexity)
	assert.Equal(t, "O(n)", r.Complexity.EstimatedTime)
}

func TestDefaults(t *testing.T) {
	review := DefaultReviewerResult()
	assert.Equal(t, CompileStatusError, review.CompileStatus)
	assert.NotNil(t, review.Tests)
	assert.Empty(t, review.Tests)

	info := DefaultComplexityInfo()
	assert.Equal(t, "O(n)", info.Optimal.Time)
	assert.Equal(t, "O(1)", info.Optimal.Space)
	assert.Equal(t, "O(n)", info.Candidate.Time)
	assert.Equal(t, "O(1)", info.Candidate.Space)
	assert.Empty(t, info.Candidate.EdgeCovered)

	conv := DefaultConversationResult()
	assert.Equal(t, ConversationScores{Understanding: 50, Awareness: 50, Defense: 50, Clarity: 50}, conv.ConversationScores)
	assert.Equal(t, []string{FallbackConversationFeedback}, conv.Feedback)
}

func TestConversationResult_FlatJSON(t *testing.T) {
	data := `{"understanding": 80, "awareness": 70.5, "defense": 60, "clarity": 90, "feedback": ["good"]}`

	var c ConversationResult
	require.NoError(t, json.Unmarshal([]byte(data), &c))

	assert.Equal(t, 80.0, c.Understanding)
	assert.Equal(t, 70.5, c.Awareness)
	assert.Equal(t, []string{"good"}, c.Feedback)
}

func TestTestResult_UnmarshalNonStringValues(t *testing.T) {
	data := `{"name":"edge_empty","input":[1, 2, 3],"expected":{"a": 1},"output":6,"status":"pass"}`

	var tr TestResult
	require.NoError(t, json.Unmarshal([]byte(data), &tr))
	assert.Equal(t, "edge_empty", tr.Name)
	assert.Equal(t, "[1,2,3]", tr.Input)
	assert.Equal(t, `{"a":1}`, tr.Expected)
	assert.Equal(t, "6", tr.Output)
	assert.True(t, tr.Passed())
}

func TestTestResult_UnmarshalStringsAndNull(t *testing.T) {
	var tr TestResult
	require.NoError(t, json.Unmarshal([]byte(`{"name":"basic","input":"nums=[1]","output":null,"status":"fail"}`), &tr))
	assert.Equal(t, TestResult{Name: "basic", Input: "nums=[1]", Status: "fail"}, tr)
}

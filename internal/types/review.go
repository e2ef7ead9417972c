//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Test and compile status values reported by the reviewer.
const (
	CompileStatusOK    = "ok"
	CompileStatusError = "error"
	TestStatusPass     = "pass"
	TestStatusFail     = "fail"
)

// TestResult is one simulated or executed test case.
type TestResult struct {
	Name     string `json:"name"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Output   string `json:"output"`
	Status   string `json:"status"`
}

// UnmarshalJSON accepts any JSON value for input, expected and output. Reviewers
// often return arrays or numbers there; non-string values are kept as compact JSON.
func (t *TestResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     string          `json:"name"`
		Input    json.RawMessage `json:"input"`
		Expected json.RawMessage `json:"expected"`
		Output   json.RawMessage `json:"output"`
		Status   string          `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TestResult{
		Name:     raw.Name,
		Input:    rawText(raw.Input),
		Expected: rawText(raw.Expected),
		Output:   rawText(raw.Output),
		Status:   raw.Status,
	}
	return nil
}

func rawText(m json.RawMessage) string {
	if len(m) == 0 || string(m) == "null" {
		return ""
	}
	var s string
	if json.Unmarshal(m, &s) == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, m); err != nil {
		return string(m)
	}
	return buf.String()
}

// Passed reports whether the test status is "pass" (case-insensitive).
func (t TestResult) Passed() bool {
	return strings.EqualFold(t.Status, TestStatusPass)
}

// EstimatedComplexity is the reviewer's own complexity estimate, if it gave one.
type EstimatedComplexity struct {
	EstimatedTime  string `json:"estimated_time,omitempty"`
	EstimatedSpace string `json:"estimated_space,omitempty"`
}

// ReviewerResult is the output of code review and simulated execution.
type ReviewerResult struct {
	CompileStatus string               `json:"compile_status"`
	Tests         []TestResult         `json:"tests"`
	Complexity    *EstimatedComplexity `json:"complexity,omitempty"`
}

// Compiled reports whether the compile status is "ok" (case-insensitive).
// An empty status counts as an error.
func (r ReviewerResult) Compiled() bool {
	return strings.EqualFold(r.CompileStatus, CompileStatusOK)
}

// PassedCount returns the number of passing tests.
func (r ReviewerResult) PassedCount() int {
	n := 0
	for _, t := range r.Tests {
		if t.Passed() {
			n++
		}
	}
	return n
}

// DefaultReviewerResult is used when the reviewer is unavailable.
func DefaultReviewerResult() ReviewerResult {
	return ReviewerResult{CompileStatus: CompileStatusError, Tests: []TestResult{}}
}

//nolint:revive // types is a standard Go package name pattern
package types

// Complexity is a time/space pair of Big-O expressions.
type Complexity struct {
	Time  string `json:"time"`
	Space string `json:"space"`
}

// Claims is the candidate's own statement about their solution's complexity.
type Claims struct {
	Time  string `json:"claimed_time"`
	Space string `json:"claimed_space"`
}

// OptimalComplexity is the best known complexity for a problem plus the edge cases
// a complete solution should handle.
type OptimalComplexity struct {
	Time         string   `json:"time"`
	Space        string   `json:"space"`
	EdgeKeywords []string `json:"edge_keywords"`
}

// CandidateComplexity is the inferred complexity of the submitted code and which
// edge cases it does and does not handle.
type CandidateComplexity struct {
	Time        string   `json:"time"`
	Space       string   `json:"space"`
	EdgeCovered []string `json:"edge_covered"`
	EdgeMissing []string `json:"edge_missing"`
}

// ComplexityInfo is the output of complexity and edge-case inference.
type ComplexityInfo struct {
	Optimal   OptimalComplexity   `json:"optimal"`
	Candidate CandidateComplexity `json:"candidate"`
}

// EfficiencyClaim bundles what was claimed, what the code actually does, and what is
// optimal for the problem.
type EfficiencyClaim struct {
	Claimed Complexity `json:"claimed"`
	Actual  Complexity `json:"actual"`
	Optimal Complexity `json:"optimal"`
}

// DefaultComplexityInfo is used when complexity inference is unavailable.
func DefaultComplexityInfo() ComplexityInfo {
	return ComplexityInfo{
		Optimal: OptimalComplexity{
			Time:         "O(n)",
			Space:        "O(1)",
			EdgeKeywords: []string{},
		},
		Candidate: CandidateComplexity{
			Time:        "O(n)",
			Space:       "O(1)",
			EdgeCovered: []string{},
			EdgeMissing: []string{},
		},
	}
}

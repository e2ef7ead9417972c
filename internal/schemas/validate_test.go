package schemas

import (
	"errors"
	"testing"
	"time"

	"github.com/jonathan/interview-coach/internal/types"
	schemafiles "github.com/jonathan/interview-coach/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllEmbeddedSchemasCompile(t *testing.T) {
	for _, name := range schemafiles.Names() {
		t.Run(name, func(t *testing.T) {
			schema, err := Load(name)
			require.NoError(t, err)
			assert.NotNil(t, schema)

			again, err := Load(name)
			require.NoError(t, err)
			assert.Same(t, schema, again, "compiled schemas are cached")
		})
	}
}

func TestLoad_UnknownSchema(t *testing.T) {
	_, err := Load("missing.schema.json")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "missing.schema.json", loadErr.Path)
	assert.Contains(t, err.Error(), "not embedded")
}

func TestValidate_CollaboratorResponses(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		document string
		wantErr  bool
		field    string
	}{
		{
			name:     "complexity valid",
			schema:   schemafiles.Complexity,
			document: `{"optimal": {"time": "O(n)", "space": "O(1)", "edge_keywords": ["empty"]}, "candidate": {"time": "O(n^2)", "space": "O(1)", "edge_covered": [], "edge_missing": ["empty"]}}`,
		},
		{
			name:     "complexity missing candidate",
			schema:   schemafiles.Complexity,
			document: `{"optimal": {"time": "O(n)", "space": "O(1)"}}`,
			wantErr:  true,
			field:    "(root)",
		},
		{
			name:     "complexity wrong type",
			schema:   schemafiles.Complexity,
			document: `{"optimal": {"time": 1, "space": "O(1)"}, "candidate": {"time": "O(n)", "space": "O(1)"}}`,
			wantErr:  true,
			field:    "optimal.time",
		},
		{
			name:     "review valid with mixed-case status",
			schema:   schemafiles.Review,
			document: `{"compile_status": "OK", "tests": [{"name": "a", "input": [1, 2], "expected": 3, "output": "3", "status": "Pass"}]}`,
		},
		{
			name:     "review unknown compile status",
			schema:   schemafiles.Review,
			document: `{"compile_status": "maybe", "tests": []}`,
			wantErr:  true,
			field:    "compile_status",
		},
		{
			name:     "review test without status",
			schema:   schemafiles.Review,
			document: `{"compile_status": "ok", "tests": [{"name": "a"}]}`,
			wantErr:  true,
			field:    "tests.0",
		},
		{
			name:     "conversation valid",
			schema:   schemafiles.Conversation,
			document: `{"understanding": 80, "awareness": 70, "defense": 60.5, "clarity": 90, "feedback": ["clear"]}`,
		},
		{
			name:     "conversation string score",
			schema:   schemafiles.Conversation,
			document: `{"understanding": "high", "awareness": 70, "defense": 60, "clarity": 90}`,
			wantErr:  true,
			field:    "understanding",
		},
		{
			name:     "practice valid",
			schema:   schemafiles.Practice,
			document: `{"Robustness": ["List edge cases first", "Test empty input"]}`,
		},
		{
			name:     "practice empty object",
			schema:   schemafiles.Practice,
			document: `{}`,
		},
		{
			name:     "practice non-list value",
			schema:   schemafiles.Practice,
			document: `{"Robustness": "practice more"}`,
			wantErr:  true,
			field:    "Robustness",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.schema, []byte(tt.document))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			assert.Equal(t, tt.schema, validationErr.Schema)
			require.NotEmpty(t, validationErr.Errors)

			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(schemafiles.Review, []byte(`{"compile_status": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestValidateValue_JudgingResult(t *testing.T) {
	result := &types.JudgingResult{
		ProblemSlug: "two_sum",
		Scores: types.Scores{
			Overall: 72.5,
			Code:    types.CodeScores{Correctness: 100, Efficiency: 80, Robustness: 50, Style: 50},
			Conversation: types.ConversationScores{
				Understanding: 60, Awareness: 60, Defense: 60, Clarity: 60,
			},
		},
		Feedback: types.Feedback{
			Code:     []string{"Missing edge cases: empty"},
			Strength: "Strongest area: Correctness (100.0).",
			NextStep: map[string][]string{},
		},
		ReviewerResult:    types.DefaultReviewerResult(),
		OptimalComplexity: types.DefaultComplexityInfo().Optimal,
		JudgedAt:          time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	assert.NoError(t, ValidateValue(schemafiles.JudgingResult, result))

	result.Scores.Overall = 120
	err := ValidateValue(schemafiles.JudgingResult, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scores.overall")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))

	err := ValidateJSONString(schema, `{}`)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), "validation failed")

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

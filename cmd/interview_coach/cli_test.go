package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/judge"
	"github.com/jonathan/interview-coach/internal/types"
)

// resetFlags restores every flag to its default so commands can run repeatedly
// in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func testSession(id string) *types.Session {
	return &types.Session{
		UserID:       "user-1",
		SessionID:    id,
		Problem:      types.Problem{Slug: "two-sum", Statement: "Return indices of two numbers adding to target."},
		Code:         "def two_sum(nums, target):\n    seen = {}\n",
		Language:     "python",
		ClaimedTime:  "O(n)",
		ClaimedSpace: "O(n)",
		Transcript:   []types.TranscriptTurn{{Speaker: "candidate", Text: "Linear time with a hash map."}},
	}
}

func fullRecording() *Recorded {
	rating := 8.0
	return &Recorded{
		Complexity: &types.ComplexityInfo{
			Optimal:   types.OptimalComplexity{Time: "O(n)", Space: "O(n)", EdgeKeywords: []string{"empty"}},
			Candidate: types.CandidateComplexity{Time: "O(n)", Space: "O(n)", EdgeCovered: []string{"empty"}, EdgeMissing: []string{}},
		},
		Review: &types.ReviewerResult{
			CompileStatus: types.CompileStatusOK,
			Tests: []types.TestResult{
				{Name: "basic", Input: "[2,7,11,15], 9", Expected: "[0,1]", Output: "[0,1]", Status: types.TestStatusPass},
			},
		},
		Conversation: &types.ConversationResult{
			ConversationScores: types.ConversationScores{Understanding: 90, Awareness: 80, Defense: 70, Clarity: 60},
			Feedback:           []string{"Clear explanation."},
		},
		StyleRating: &rating,
	}
}

func TestScoreCommand_FullRecording(t *testing.T) {
	dir := t.TempDir()
	session := writeFile(t, dir, "session.json", testSession("s1"))
	recorded := writeFile(t, dir, "recorded.json", fullRecording())

	out, err := execute(t, "score", "--session", session, "--recorded", recorded)
	require.NoError(t, err)

	var outcome judge.Outcome
	require.NoError(t, json.Unmarshal([]byte(out), &outcome), out)
	require.NotNil(t, outcome.Result)
	assert.InDelta(t, 92.5, outcome.Result.Scores.Overall, 1e-9)
	assert.Empty(t, outcome.Result.Degraded)
	assert.False(t, outcome.Persisted)
	assert.Len(t, outcome.Steps, len(judge.States))
}

func TestScoreCommand_PartialRecordingDegrades(t *testing.T) {
	dir := t.TempDir()
	session := writeFile(t, dir, "session.json", testSession("s1"))
	rating := 6.0
	recorded := writeFile(t, dir, "recorded.json", &Recorded{StyleRating: &rating})
	outPath := filepath.Join(dir, "out", "outcome.json")

	_, err := execute(t, "score", "-s", session, "-r", recorded, "-o", outPath, "--persist")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var outcome judge.Outcome
	require.NoError(t, json.Unmarshal(data, &outcome))
	assert.Equal(t, []string{
		judge.CollaboratorComplexity, judge.CollaboratorReviewer,
		judge.CollaboratorConversation, judge.CollaboratorPractice,
	}, outcome.Result.Degraded)
	assert.Equal(t, 60.0, outcome.Result.Scores.Code.Style)
	assert.True(t, outcome.Persisted)
}

func TestScoreCommand_VerbosePrintsReport(t *testing.T) {
	dir := t.TempDir()
	session := writeFile(t, dir, "session.json", testSession("s1"))
	recorded := writeFile(t, dir, "recorded.json", fullRecording())

	out, err := execute(t, "score", "-v", "-s", session, "-r", recorded)
	require.NoError(t, err)
	assert.Contains(t, out, "ALL COLLABORATORS RESPONDED")
}

func TestScoreCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	recorded := writeFile(t, dir, "recorded.json", fullRecording())
	invalid := writeFile(t, dir, "invalid.json", map[string]string{"session_id": "s"})

	_, err := execute(t, "score", "--recorded", recorded)
	assert.ErrorContains(t, err, `required flag(s) "session" not set`)

	_, err = execute(t, "score", "-s", invalid, "-r", recorded)
	assert.ErrorContains(t, err, "invalid session")

	_, err = execute(t, "score", "-s", filepath.Join(dir, "missing.json"), "-r", recorded)
	assert.ErrorContains(t, err, "failed to read session file")
}

func TestJudgeCommand_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	dir := t.TempDir()
	session := writeFile(t, dir, "session.json", testSession("s1"))

	_, err := execute(t, "judge", "--session", session)
	assert.ErrorContains(t, err, "GEMINI_API_KEY environment variable or --api-key flag is required")

	t.Setenv("OPENAI_API_KEY", "")
	_, err = execute(t, "judge", "--session", session, "--provider", "openai")
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestLoadConfig_FileAndFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "coach.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("provider: anthropic\nstore: memory\nconcurrency: 8\n"), 0o644))

	_, err := execute(t, "--config", cfgPath, "--provider", "openai", "reviews", "list", "-u", "nobody")
	require.NoError(t, err)

	resetFlags(rootCmd)
	require.NoError(t, rootCmd.ParseFlags([]string{"--config", cfgPath, "--store", "memory"}))
	cfg, err := loadConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "memory", cfg.Store)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := execute(t, "--store", "sqlite", "reviews", "list", "-u", "u1")
	assert.ErrorContains(t, err, "'store' fails 'oneof'")
}

func TestReviewsCommand_Memory(t *testing.T) {
	out, err := execute(t, "reviews", "list", "--user", "u1")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	_, err = execute(t, "reviews", "get", "--user", "u1", "--session", "s1")
	assert.ErrorContains(t, err, "coding review not found")
}

func TestReadSessions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", testSession("s2"))
	writeFile(t, dir, "a.json", testSession("s1"))

	sessions, err := readSessions(dir)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s1", sessions[0].SessionID)
	assert.Equal(t, "s2", sessions[1].SessionID)

	arrayDir := t.TempDir()
	arr := writeFile(t, arrayDir, "all.json", []*types.Session{testSession("x"), testSession("y")})
	sessions, err = readSessions(arr)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	bad := writeFile(t, arrayDir, "bad.json", []any{testSession("x"), nil})
	_, err = readSessions(bad)
	assert.ErrorContains(t, err, "session 1")

	notArray := writeFile(t, arrayDir, "one.json", testSession("x"))
	_, err = readSessions(notArray)
	assert.ErrorContains(t, err, "expected a JSON array")
}

func TestSummarize_WritesOutcomes(t *testing.T) {
	dir := t.TempDir()
	sessions := []*types.Session{testSession("a/b"), testSession("c")}
	outcomes := []*judge.Outcome{
		{Result: &types.JudgingResult{Scores: types.Scores{Overall: 70}}, Persisted: true},
		{Result: &types.JudgingResult{Degraded: []string{"style"}}},
	}

	sums, err := summarize(sessions, outcomes, dir)
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, "a/b", sums[0].SessionID)
	assert.Equal(t, 70.0, sums[0].Overall)
	assert.Equal(t, filepath.Join(dir, "a_b.json"), sums[0].Output)
	assert.FileExists(t, sums[0].Output)
	assert.Equal(t, []string{"style"}, sums[1].Degraded)
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "user_42-x.y", safeName("user/42-x.y"))
}

package style

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected float64
		wantErr  bool
	}{
		{
			name:     "standard",
			output:   "************* Module x\nx.py:1:0: C0114: Missing module docstring\n\nYour code has been rated at 7.50/10\n",
			expected: 7.5,
		},
		{
			name:     "with previous run",
			output:   "Your code has been rated at 10.00/10 (previous run: 6.00/10, +4.00)",
			expected: 10,
		},
		{
			name:     "negative rating",
			output:   "Your code has been rated at -2.50/10",
			expected: -2.5,
		},
		{
			name:     "integer rating",
			output:   "rated at 8/10",
			expected: 8,
		},
		{name: "no rating", output: "Traceback (most recent call last):", wantErr: true},
		{name: "empty", output: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRating(tt.output)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// fakePylint writes a shell script that prints output and exits with code.
func fakePylint(t *testing.T, output string, code int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a unix shell")
	}

	path := filepath.Join(t.TempDir(), "pylint")
	script := "#!/bin/sh\ncat <<'OUT'\n" + output + "\nOUT\nexit " + strconv.Itoa(code) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestPylint_Rate(t *testing.T) {
	path := fakePylint(t, "Your code has been rated at 6.25/10", 4)

	rating, err := NewPylint(path).Rate(context.Background(), "def f():\n    return 1\n", "python")
	require.NoError(t, err)
	assert.Equal(t, 6.25, rating)
}

func TestPylint_NoRatingInOutput(t *testing.T) {
	path := fakePylint(t, "usage: pylint [options]", 2)

	_, err := NewPylint(path).Rate(context.Background(), "x = 1\n", "python")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
}

func TestPylint_MissingBinary(t *testing.T) {
	_, err := NewPylint(filepath.Join(t.TempDir(), "does-not-exist")).Rate(context.Background(), "x = 1\n", "python")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run")
}

func TestPylint_EmptyCode(t *testing.T) {
	_, err := NewPylint("").Rate(context.Background(), "   \n", "python")
	assert.ErrorIs(t, err, ErrEmptyCode)
}

func TestByLanguage(t *testing.T) {
	rater := ForLanguages(map[string]Rater{
		"Python": Static{Rating: 9},
		"go":     Static{Err: errors.New("vet failed")},
	})

	rating, err := rater.Rate(context.Background(), "x", "py")
	require.NoError(t, err)
	assert.Equal(t, 9.0, rating)

	rating, err = rater.Rate(context.Background(), "x", "Python3")
	require.NoError(t, err)
	assert.Equal(t, 9.0, rating)

	_, err = rater.Rate(context.Background(), "x", "golang")
	assert.EqualError(t, err, "vet failed")

	rating, err = rater.Rate(context.Background(), "x", "java")
	require.NoError(t, err)
	assert.Equal(t, NeutralRating, rating)

	assert.True(t, rater.Supports("PY"))
	assert.False(t, rater.Supports("java"))
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "python", NormalizeLanguage(" Python3 "))
	assert.Equal(t, "javascript", NormalizeLanguage("JS"))
	assert.Equal(t, "cpp", NormalizeLanguage("C++"))
	assert.Equal(t, "java", NormalizeLanguage("Java"))
}

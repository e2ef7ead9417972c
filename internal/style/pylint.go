package style

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// DefaultPylintPath is looked up on PATH when no explicit path is configured.
const DefaultPylintPath = "pylint"

var ratingPattern = regexp.MustCompile(`rated at (-?\d+(?:\.\d+)?)/10`)

// Pylint rates Python code with pylint's convention and refactor checks.
type Pylint struct {
	path string
}

// NewPylint creates a Pylint rater. An empty path means DefaultPylintPath.
func NewPylint(path string) *Pylint {
	if path == "" {
		path = DefaultPylintPath
	}
	return &Pylint{path: path}
}

// Rate writes the code to a temporary file and runs pylint on it.
func (p *Pylint) Rate(ctx context.Context, code, _ string) (float64, error) {
	if strings.TrimSpace(code) == "" {
		return 0, ErrEmptyCode
	}

	tmp, err := os.CreateTemp("", "candidate-*.py")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(code); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close temp file: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.path, "--score=y", "--disable=all", "--enable=convention,refactor", tmp.Name())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// pylint exits non-zero whenever it reports messages, so the exit code alone
	// says nothing about whether a rating was printed.
	runErr := cmd.Run()
	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return 0, fmt.Errorf("failed to run %s: %w", p.path, runErr)
	}

	rating, err := ParseRating(stdout.String())
	if err != nil {
		if runErr != nil {
			return 0, fmt.Errorf("%s failed: %w (stderr: %s)", p.path, runErr, strings.TrimSpace(stderr.String()))
		}
		return 0, err
	}
	return rating, nil
}

// ParseRating extracts the score from pylint output such as
// "Your code has been rated at 7.50/10 (previous run: 6.00/10, +1.50)".
func ParseRating(output string) (float64, error) {
	m := ratingPattern.FindStringSubmatch(output)
	if m == nil {
		return 0, fmt.Errorf("no rating found in pylint output")
	}
	rating, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse pylint rating %q: %w", m[1], err)
	}
	return rating, nil
}

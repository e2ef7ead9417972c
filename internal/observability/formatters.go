// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/interview-coach/internal/judge"
	"github.com/jonathan/interview-coach/internal/scoring"
	"github.com/jonathan/interview-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJudgingResult outputs scores, feedback, practice and fallbacks for a result.
func (p *Printer) PrintJudgingResult(result *types.JudgingResult) {
	if result == nil {
		return
	}
	p.PrintScores(result)
	p.PrintFeedback(&result.Feedback)
	p.PrintPractice(result.Feedback.NextStep)
	p.PrintDegraded(result.Degraded)
}

// PrintScores outputs the overall score and every dimension.
func (p *Printer) PrintScores(result *types.JudgingResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.ProblemSlug != "" {
		sb.WriteString(fmt.Sprintf("Problem:  %s\n", result.ProblemSlug))
	}
	sb.WriteString(fmt.Sprintf("Overall:  %.1f / 100\n\n", result.Scores.Overall))

	for _, d := range scoring.Dimensions(result.Scores.Code, result.Scores.Conversation) {
		marker := " "
		if d.Score < scoring.WeakThreshold {
			marker = "!"
		}
		sb.WriteString(fmt.Sprintf("%s %-14s %5.1f  %s\n", marker, d.Label, d.Score, bar(d.Score)))
	}

	eff := result.Scores.Code.EfficiencyBreakdown
	sb.WriteString(fmt.Sprintf("\nClaim vs actual:   time %.1f, space %.1f\n", eff.ClaimVsActual.Time, eff.ClaimVsActual.Space))
	sb.WriteString(fmt.Sprintf("Actual vs optimal: time %.1f, space %.1f", eff.ActualVsOptimal.Time, eff.ActualVsOptimal.Space))

	p.printBox("CODING JUDGE SCORES", sb.String())
}

// bar renders a score as a 10-cell bar.
func bar(score float64) string {
	filled := int(score/10 + 0.5)
	filled = max(0, min(10, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 10-filled) + "]"
}

// PrintFeedback outputs the strength, opportunity and the code and conversation notes.
func (p *Printer) PrintFeedback(feedback *types.Feedback) {
	if feedback == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(feedback.Strength + "\n")
	sb.WriteString(feedback.Opportunity + "\n")

	writeList(&sb, "Code", feedback.Code)
	writeList(&sb, "Conversation", feedback.Conversation)

	p.printBox("FEEDBACK", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintPractice outputs practice suggestions grouped by category.
func (p *Printer) PrintPractice(practice map[string][]string) {
	if len(practice) == 0 {
		return
	}

	categories := make([]string, 0, len(practice))
	for c := range practice {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var sb strings.Builder
	for i, c := range categories {
		sb.WriteString(c + ":\n")
		for _, s := range practice[c] {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
		if i < len(categories)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("NEXT STEPS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDegraded outputs which collaborators fell back to defaults.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDegraded(degraded []string) {
	if len(degraded) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL COLLABORATORS RESPONDED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d step(s) used default values:\n\n", len(degraded)))
	for _, name := range degraded {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", name))
	}

	p.printBox("FALLBACKS USED (AI error)", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSteps outputs the state transitions of a run with durations.
func (p *Printer) PrintSteps(steps []judge.Step) {
	if len(steps) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range steps {
		status := "✓"
		if s.Degraded {
			status = "⚠"
		}
		sb.WriteString(fmt.Sprintf("%s %d. %-22s %8s", status, i+1, s.State, s.Duration.Round(time.Millisecond)))
		if s.Error != "" {
			sb.WriteString("\n    " + s.Error)
		}
		if i < len(steps)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("JUDGING STEPS", sb.String())
}

// PrintReviews outputs a one-line summary per stored review.
func (p *Printer) PrintReviews(reviews []types.CodingReview) {
	if len(reviews) == 0 {
		p.printBox("CODING REVIEWS", "No reviews found")
		return
	}

	var sb strings.Builder
	for i, r := range reviews {
		overall, slug := 0.0, ""
		if r.Result != nil {
			overall, slug = r.Result.Scores.Overall, r.Result.ProblemSlug
		}
		sb.WriteString(fmt.Sprintf("%s  %-16s %-16s %5.1f", r.CreatedAt.Format("2006-01-02 15:04"), r.SessionID, slug, overall))
		if i < len(reviews)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("CODING REVIEWS (%d)", len(reviews)), sb.String())
}

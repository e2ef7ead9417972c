package judge

import (
	"sort"
	"strings"

	"github.com/jonathan/interview-coach/internal/scoring"
)

// Limits applied to practice recommendations.
const (
	MaxPracticeCategories  = 3
	MaxPracticeSuggestions = 5
)

// GeneralCategory is the category used when no specific recommendation is available.
const GeneralCategory = "General"

// GeneralPractice is the recommendation used when the recommender's response
// could not be understood.
func GeneralPractice() map[string][]string {
	return map[string][]string{
		GeneralCategory: {
			"Review your weakest categories and practice problems step by step.",
			"Write down edge cases before coding.",
			"Explain your solution aloud to improve clarity.",
			"Try optimizing code by replacing nested loops with hash maps.",
		},
	}
}

// TrimPractice keeps at most MaxPracticeCategories categories with at most
// MaxPracticeSuggestions non-empty suggestions each. Categories naming a weak
// dimension are kept first, in weakness order, then the rest alphabetically.
// Categories left without suggestions are dropped.
func TrimPractice(practice map[string][]string, weak []scoring.Dimension) map[string][]string {
	rank := make(map[string]int, len(weak))
	for i, d := range weak {
		rank[strings.ToLower(d.Label)] = i
		rank[strings.ToLower(d.Key)] = i
	}

	categories := make([]string, 0, len(practice))
	for category := range practice {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		ri, iWeak := rank[strings.ToLower(categories[i])]
		rj, jWeak := rank[strings.ToLower(categories[j])]
		switch {
		case iWeak && jWeak && ri != rj:
			return ri < rj
		case iWeak != jWeak:
			return iWeak
		}
		return categories[i] < categories[j]
	})

	out := make(map[string][]string)
	for _, category := range categories {
		if len(out) == MaxPracticeCategories {
			break
		}
		var items []string
		for _, s := range practice[category] {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			items = append(items, s)
			if len(items) == MaxPracticeSuggestions {
				break
			}
		}
		if len(items) > 0 {
			out[category] = items
		}
	}
	return out
}

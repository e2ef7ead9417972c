// Package schemas embeds the JSON Schemas for collaborator responses and judging results.
package schemas

import "embed"

// Schema file names.
const (
	Complexity    = "complexity.schema.json"
	Review        = "review.schema.json"
	Conversation  = "conversation.schema.json"
	Practice      = "practice.schema.json"
	JudgingResult = "judging_result.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the contents of an embedded schema.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists every embedded schema.
func Names() []string {
	return []string{Complexity, Review, Conversation, Practice, JudgingResult}
}

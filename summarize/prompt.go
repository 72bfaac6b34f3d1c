package summarize

import (
	"fmt"
	"strings"
)

const (
	// maxPromptChars bounds the document portion of the prompt so it stays
	// within the model's practical context budget.
	maxPromptChars   = 8000
	truncationMarker = "... [truncated]"
)

// truncate enforces the prompt character ceiling, appending a marker when the
// text was cut.
func truncate(text string) (string, bool) {
	runes := []rune(text)
	if len(runes) <= maxPromptChars {
		return text, false
	}
	return string(runes[:maxPromptChars]) + truncationMarker, true
}

// BuildPrompt renders the fixed summarization prompt for the given document
// text. maxWords <= 0 means no length instruction is embedded. The reported
// bool is true when the document text was truncated. Output is deterministic
// for a given input.
func BuildPrompt(text string, maxWords int) (string, bool) {
	var lengthInstruction string
	if maxWords > 0 {
		lengthInstruction = fmt.Sprintf(" Keep the summary under %d words.", maxWords)
	}

	bounded, truncated := truncate(text)

	var b strings.Builder
	b.WriteString("Please provide a concise summary of the following document.")
	b.WriteString(lengthInstruction)
	b.WriteString("\n\nDocument:\n")
	b.WriteString(bounded)
	b.WriteString("\n\nSummary:")
	return b.String(), truncated
}

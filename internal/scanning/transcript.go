package scanning

import (
	"errors"
	"strings"
)

// transcriptionPrompt is the shared prompt used by all LLM providers
const transcriptionPrompt = `You are reading a screenshot of a workout from a coaching app.
Transcribe every piece of visible text exactly as it appears, top to bottom.

Rules:
- Keep one visual line of the screenshot per output line
- Keep exercise labels such as "A1." or "B2" at the start of their line
- Keep numbers, units and symbols such as "@", "x" and "lbs" exactly as shown
- Do not summarize, reorder, translate or correct anything
- Do not add commentary before or after the text
- Do not use markdown code blocks`

var errEmptyTranscript = errors.New("no text recognized")

// cleanTranscript strips markdown fences and surrounding whitespace from a
// model reply. Line structure inside the reply is preserved.
func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		// drop the opening fence line including any language tag
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

package extract

import (
	"fmt"
	"strings"

	"github.com/leverageai/dealdesk/core"
)

// recordToolName is the structured extraction tool the model must call.
const recordToolName = "record_action_items"

// extractionInstructions encode the three phase contracts the extraction must
// honor. The phases are normalization contracts for a single request, not
// separate network calls.
const extractionInstructions = `You extract action items from a sales meeting transcript. Work through three phases before recording anything.

Phase 1 - exclude non-actions:
- Exclude any commitment made before the substantive meeting starts (greetings, waiting for attendees, audio checks and similar pre-meeting chatter).
- Exclude an "I will X" statement that is resolved within the next roughly 10 turns: hand-offs, screen-share confirmations, admitting participants, sending a link that is immediately confirmed received. Those already happened during the call and are not future actions.
- Exclude statements describing what the software or system does automatically. Only actions a human will personally perform count.

Phase 2 - classify candidates:
- Classify each remaining statement as exactly one of: commitment, request, blocker, plan, scheduling.
- Obligation language ("need to", "have to", "must") signals a high-confidence commitment.
- Decision-relevant follow-up discussions (for example agreeing to chat about alert thresholds) are real action items even though social chatter is not; always retain them.

Phase 3 - consolidate:
- Merge micro-actions that share the same owner, timeframe and operational goal into one item.
- Keep multiple distinct deliverables promised in a single utterance as separate items; never over-merge.

For every item record: the action, its owner (use names as spoken; "Unassigned" when nobody owns it), its type, any stated deadline, a short verbatim evidence quote, and your confidence between 0 and 1.

Record the final list with the ` + recordToolName + ` tool. Record an empty list only when the transcript genuinely contains no actions.`

// buildUserContent serializes the transcript and attendee rosters for the
// extraction request.
func buildUserContent(chunks []core.TranscriptChunk, attendees Attendees) string {
	var b strings.Builder

	if len(attendees.Team) > 0 {
		fmt.Fprintf(&b, "Team attendees: %s\n", strings.Join(attendees.Team, ", "))
	}
	if len(attendees.Customer) > 0 {
		fmt.Fprintf(&b, "Customer attendees: %s\n", strings.Join(attendees.Customer, ", "))
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}

	b.WriteString("Transcript:\n")
	for _, chunk := range chunks {
		speaker := chunk.SpeakerName
		if speaker == "" {
			speaker = string(chunk.SpeakerRole)
		}
		fmt.Fprintf(&b, "[%d] %s: %s\n", chunk.Index, speaker, chunk.Text)
	}
	return b.String()
}

// recordToolSchema is the argument schema of the extraction tool.
func recordToolSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action_items": map[string]any{
				"type":        "array",
				"description": "Every action item surviving all three phases",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"action":     map[string]any{"type": "string", "description": "What will be done"},
						"owner":      map[string]any{"type": "string", "description": "Who will do it, or Unassigned"},
						"type":       map[string]any{"type": "string", "enum": []string{"commitment", "request", "blocker", "plan", "scheduling"}},
						"deadline":   map[string]any{"type": "string", "description": "Stated deadline, empty when none"},
						"evidence":   map[string]any{"type": "string", "description": "Short verbatim quote"},
						"confidence": map[string]any{"type": "number", "description": "0 to 1"},
					},
					"required": []string{"action", "owner", "type", "confidence"},
				},
			},
		},
		"required": []string{"action_items"},
	}
}

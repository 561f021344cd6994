package wizard

import (
	"encoding/json"
	"fmt"
	"strings"
)

const interpretInstructions = `You are the intake assistant for a bank loan
origination system. Read the conversation transcript and extract any loan
application fields the applicant has provided. Respond with a single JSON
object using only these keys, omitting any key the conversation does not
answer:

{
  "applicant_first_name": string,
  "applicant_last_name": string,
  "amount": number,
  "purpose": string
}

Do not invent values. Do not include commentary outside the JSON object.`

const respondInstructions = `You are the intake assistant for a bank loan
origination system. The application draft below is missing the listed fields.
Write one short, friendly message asking the applicant for the missing
information. Ask only for what is missing. Respond with plain text.`

// composeInterpretPrompt renders the extraction prompt: instructions, the
// current draft, and the running transcript.
func composeInterpretPrompt(session *Session) (string, error) {
	draftJSON, err := json.MarshalIndent(session.Draft, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize draft: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(interpretInstructions)
	sb.WriteString("\n\nCurrent draft:\n\n")
	sb.Write(draftJSON)
	sb.WriteString("\n\nConversation:\n\n")
	writeTranscript(&sb, session.Transcript)

	return sb.String(), nil
}

// composeRespondPrompt renders the follow-up prompt: instructions, the draft,
// the missing fields, and the transcript for conversational continuity.
func composeRespondPrompt(session *Session) (string, error) {
	draftJSON, err := json.MarshalIndent(session.Draft, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize draft: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(respondInstructions)
	sb.WriteString("\n\nCurrent draft:\n\n")
	sb.Write(draftJSON)
	sb.WriteString("\n\nMissing fields: ")
	sb.WriteString(strings.Join(session.Draft.Missing(), ", "))
	sb.WriteString("\n\nConversation:\n\n")
	writeTranscript(&sb, session.Transcript)

	return sb.String(), nil
}

func writeTranscript(sb *strings.Builder, transcript []Message) {
	for _, msg := range transcript {
		sb.WriteString(msg.Role)
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
}

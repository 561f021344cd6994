// Package wizard implements chat-driven loan application intake. A session
// accumulates a conversation transcript and a structured application draft;
// each user turn runs a state graph (interpret → finalize? → respond) that
// extracts draft fields with an LLM agent and, once the draft is complete,
// creates the loan application and closes the session.
package wizard

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionStatus is a wizard session's lifecycle position.
type SessionStatus string

const (
	SessionActive    SessionStatus = "ACTIVE"
	SessionCompleted SessionStatus = "COMPLETED"
)

// Message roles in the session transcript.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message is one transcript entry.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Draft is the structured loan application being assembled across turns.
// Amount is a pointer so "not yet provided" is distinct from zero.
type Draft struct {
	ApplicantFirstName string   `json:"applicant_first_name,omitempty"`
	ApplicantLastName  string   `json:"applicant_last_name,omitempty"`
	Amount             *float64 `json:"amount,omitempty"`
	Purpose            string   `json:"purpose,omitempty"`
}

// Merge folds extracted fields into the draft. Incoming values win only when
// present, so a turn that mentions nothing new never erases earlier answers.
func (d *Draft) Merge(in Draft) {
	if v := strings.TrimSpace(in.ApplicantFirstName); v != "" {
		d.ApplicantFirstName = v
	}
	if v := strings.TrimSpace(in.ApplicantLastName); v != "" {
		d.ApplicantLastName = v
	}
	if in.Amount != nil && *in.Amount > 0 {
		d.Amount = in.Amount
	}
	if v := strings.TrimSpace(in.Purpose); v != "" {
		d.Purpose = v
	}
}

// Complete reports whether every field needed to create the loan is present.
func (d Draft) Complete() bool {
	return len(d.Missing()) == 0
}

// Missing lists the draft fields still unanswered, in prompt order.
func (d Draft) Missing() []string {
	var missing []string
	if strings.TrimSpace(d.ApplicantFirstName) == "" {
		missing = append(missing, "applicant_first_name")
	}
	if strings.TrimSpace(d.ApplicantLastName) == "" {
		missing = append(missing, "applicant_last_name")
	}
	if d.Amount == nil || *d.Amount <= 0 {
		missing = append(missing, "amount")
	}
	if strings.TrimSpace(d.Purpose) == "" {
		missing = append(missing, "purpose")
	}
	return missing
}

// Session is a persisted wizard conversation.
type Session struct {
	ID                uuid.UUID     `json:"id"`
	Status            SessionStatus `json:"status"`
	Transcript        []Message     `json:"transcript"`
	Draft             Draft         `json:"draft"`
	LoanApplicationID *uuid.UUID    `json:"loan_application_id,omitempty"`
	CreatedBy         string        `json:"created_by"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Append adds a transcript entry stamped with the current time.
func (s *Session) Append(role, content string) {
	s.Transcript = append(s.Transcript, Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
}

// LastAssistantMessage returns the most recent assistant reply, or an empty
// string when the transcript has none.
func (s *Session) LastAssistantMessage() string {
	for i := len(s.Transcript) - 1; i >= 0; i-- {
		if s.Transcript[i].Role == MessageRoleAssistant {
			return s.Transcript[i].Content
		}
	}
	return ""
}

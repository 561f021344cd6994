// Package timeline implements the audit timeline: an append-only record of
// verification and wizard activity per loan application, written by a
// buffered asynchronous emitter so domain writes never wait on audit I/O.
package timeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/identity"
)

// EventType identifies what happened.
type EventType string

const (
	EventVerificationCreated EventType = "verification.created"
	EventVerificationUpdated EventType = "verification.updated"
	EventVerificationDeleted EventType = "verification.deleted"
	EventWizardCompleted     EventType = "wizard.completed"
)

// Event is one audit timeline entry.
type Event struct {
	ID                uuid.UUID     `json:"id"`
	LoanApplicationID uuid.UUID     `json:"loan_application_id"`
	VerificationID    *uuid.UUID    `json:"verification_id,omitempty"`
	EventType         EventType     `json:"event_type"`
	ActorID           string        `json:"actor_id"`
	ActorRole         identity.Role `json:"actor_role"`
	Remarks           string        `json:"remarks"`
	CreatedAt         time.Time     `json:"created_at"`
}

// NewEvent builds an unsaved event attributed to the caller. A nil caller
// records the system actor.
func NewEvent(
	caller *identity.Caller,
	eventType EventType,
	loanApplicationID uuid.UUID,
	verificationID *uuid.UUID,
	remarks string,
) Event {
	evt := Event{
		ID:                uuid.New(),
		LoanApplicationID: loanApplicationID,
		VerificationID:    verificationID,
		EventType:         eventType,
		ActorID:           "system",
		Remarks:           remarks,
		CreatedAt:         time.Now().UTC(),
	}

	if caller != nil {
		evt.ActorID = caller.Subject
		evt.ActorRole = caller.Role
	}

	return evt
}

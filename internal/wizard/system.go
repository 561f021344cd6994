package wizard

import (
	"context"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/identity"
)

// System defines the public contract for wizard sessions. Every operation
// takes the resolved caller explicitly; capability gates run before any
// inference or write.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, caller *identity.Caller) (*Session, error)
	Find(ctx context.Context, caller *identity.Caller, id uuid.UUID) (*Session, error)

	// Message appends a user message to an active session and runs one turn
	// of the intake graph, returning the updated session.
	Message(ctx context.Context, caller *identity.Caller, id uuid.UUID, content string) (*Session, error)
}

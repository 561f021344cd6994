package timeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/pkg/lifecycle"
	"github.com/lendcore/veriflow/pkg/pagination"
)

// Emitter accepts events for asynchronous persistence. Emit never blocks:
// when the buffer is full the event is dropped with a warning, since the
// audit trail is best-effort relative to the primary write.
type Emitter interface {
	Emit(evt Event)
}

// System defines the public contract for timeline operations.
type System interface {
	Emitter

	Handler() *Handler

	// Start launches the writer pool and registers drain-on-shutdown with
	// the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator)

	List(
		ctx context.Context,
		caller *identity.Caller,
		page pagination.PageRequest,
		loanApplicationID uuid.UUID,
	) (*pagination.PageResult[Event], error)
}

package loans

import (
	"context"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/pkg/pagination"
)

// System defines the public contract for loan application operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		caller *identity.Caller,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[LoanApplication], error)

	Find(ctx context.Context, caller *identity.Caller, id uuid.UUID) (*LoanApplication, error)
	Create(ctx context.Context, caller *identity.Caller, cmd CreateCommand) (*LoanApplication, error)
}

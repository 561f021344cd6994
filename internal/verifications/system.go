package verifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/pkg/pagination"
)

// System defines the public contract for verification workflows. Every
// operation takes the resolved caller explicitly; capability gates run
// before validation, which runs before any write.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		caller *identity.Caller,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Verification], error)

	Find(ctx context.Context, caller *identity.Caller, id uuid.UUID) (*Verification, error)
	Create(ctx context.Context, caller *identity.Caller, cmd CreateCommand) (*Verification, error)
	Update(ctx context.Context, caller *identity.Caller, cmd UpdateCommand) (*Verification, error)
	Delete(ctx context.Context, caller *identity.Caller, id uuid.UUID) error
}

package loans

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/ability"
	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/pkg/pagination"
	"github.com/lendcore/veriflow/pkg/query"
	"github.com/lendcore/veriflow/pkg/repository"
)

type repo struct {
	db         *sql.DB
	ability    *ability.Resolver
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a loan application repository implementing the System interface.
func New(
	db *sql.DB,
	resolver *ability.Resolver,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		ability:    resolver,
		logger:     logger.With("system", "loans"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.ability, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	caller *identity.Caller,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[LoanApplication], error) {
	if !r.ability.Can(caller, ability.ActionRead, ability.SubjectLoanApplication) {
		return nil, ErrForbidden
	}

	page.Normalize(r.pagination)
	page.RestrictSort(sortKeys...)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ApplicantFirstName", "ApplicantLastName", "Purpose")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryValue[int](ctx, r.db, countSQL, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("count loan applications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	apps, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanLoan)
	if err != nil {
		return nil, fmt.Errorf("query loan applications: %w", err)
	}

	result := pagination.NewPageResult(apps, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, caller *identity.Caller, id uuid.UUID) (*LoanApplication, error) {
	if !r.ability.Can(caller, ability.ActionRead, ability.SubjectLoanApplication) {
		return nil, ErrForbidden
	}

	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	l, err := repository.QueryOne(ctx, r.db, q, args, scanLoan)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &l, nil
}

func (r *repo) Create(ctx context.Context, caller *identity.Caller, cmd CreateCommand) (*LoanApplication, error) {
	if !r.ability.Can(caller, ability.ActionCreate, ability.SubjectLoanApplication) {
		return nil, ErrForbidden
	}

	if err := validateCreate(cmd); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO loan_applications(id, applicant_first_name, applicant_last_name, amount, purpose, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, applicant_first_name, applicant_last_name, amount, purpose, status, created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		strings.TrimSpace(cmd.ApplicantFirstName),
		strings.TrimSpace(cmd.ApplicantLastName),
		cmd.Amount,
		strings.TrimSpace(cmd.Purpose),
		StatusPendingVerification,
	}

	l, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (LoanApplication, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanLoan)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("loan application created", "id", l.ID, "amount", l.Amount)
	return &l, nil
}

func validateCreate(cmd CreateCommand) error {
	if strings.TrimSpace(cmd.ApplicantFirstName) == "" {
		return fmt.Errorf("%w: applicant first name required", ErrInvalidInput)
	}
	if strings.TrimSpace(cmd.ApplicantLastName) == "" {
		return fmt.Errorf("%w: applicant last name required", ErrInvalidInput)
	}
	if cmd.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	return nil
}

// StatusForUpdate loads a loan application's status with a row lock. Callers
// run this inside the transaction that will write the projected status.
func StatusForUpdate(ctx context.Context, q repository.Querier, id uuid.UUID) (Status, error) {
	status, err := repository.QueryValue[Status](
		ctx, q,
		"SELECT status FROM loan_applications WHERE id = $1 FOR UPDATE",
		id,
	)
	if err != nil {
		return "", repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return status, nil
}

// SetStatus writes a loan application's status within the caller's transaction.
func SetStatus(ctx context.Context, e repository.Executor, id uuid.UUID, status Status) error {
	err := repository.ExecExpectOne(
		ctx, e,
		"UPDATE loan_applications SET status = $1, updated_at = now() WHERE id = $2",
		status, id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

// ResetIfVerificationDriven resets a loan application to PENDING_VERIFICATION
// only while its status is still owned by the verification pipeline. The
// guard makes concurrent resets converge instead of clobbering a decision
// status. Reports whether the reset was applied.
func ResetIfVerificationDriven(ctx context.Context, e repository.Executor, id uuid.UUID) (bool, error) {
	return repository.ExecMaybeOne(
		ctx, e,
		`UPDATE loan_applications
		 SET status = $1, updated_at = now()
		 WHERE id = $2 AND status = ANY($3)`,
		StatusPendingVerification,
		id,
		verificationDrivenStatuses(),
	)
}

func verificationDrivenStatuses() []string {
	return []string{
		string(StatusVerificationInProgress),
		string(StatusVerificationCompleted),
		string(StatusVerificationFailed),
	}
}

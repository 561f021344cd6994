package verifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/loans"
	"github.com/lendcore/veriflow/pkg/repository"
)

// Tally counts a loan application's non-deleted verifications by status.
type Tally struct {
	Pending   int
	Completed int
	Failed    int
}

// Active returns the number of non-deleted verifications.
func (t Tally) Active() int {
	return t.Pending + t.Completed + t.Failed
}

// ProjectStatus derives the loan status implied by the verification tally.
// Idempotent; statuses outside the verification pipeline (APPROVED,
// REJECTED, DISBURSED) pass through untouched.
func ProjectStatus(current loans.Status, tally Tally) loans.Status {
	if !current.VerificationDriven() {
		return current
	}

	switch {
	case tally.Active() == 0:
		return loans.StatusPendingVerification
	case tally.Pending > 0:
		return loans.StatusVerificationInProgress
	case tally.Failed > 0:
		return loans.StatusVerificationFailed
	default:
		return loans.StatusVerificationCompleted
	}
}

// tallyForLoan counts the loan's active verifications. Runs inside the
// orchestrator's transaction so the tally and the projected write are
// consistent under concurrent mutation.
func tallyForLoan(ctx context.Context, q repository.Querier, loanID uuid.UUID) (Tally, error) {
	rows, err := q.QueryContext(
		ctx,
		`SELECT status, COUNT(*)
		 FROM verifications
		 WHERE loan_application_id = $1 AND deleted_at IS NULL
		 GROUP BY status`,
		loanID,
	)
	if err != nil {
		return Tally{}, err
	}
	defer rows.Close()

	var tally Tally
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Tally{}, err
		}

		switch status {
		case StatusPending:
			tally.Pending = count
		case StatusCompleted:
			tally.Completed = count
		case StatusFailed:
			tally.Failed = count
		}
	}

	return tally, rows.Err()
}

// projectLoanStatus locks the loan row, recomputes the projection, and
// writes the status only when it differs.
func projectLoanStatus(ctx context.Context, q queryExecutor, loanID uuid.UUID) error {
	current, err := loans.StatusForUpdate(ctx, q, loanID)
	if err != nil {
		return err
	}

	tally, err := tallyForLoan(ctx, q, loanID)
	if err != nil {
		return err
	}

	projected := ProjectStatus(current, tally)
	if projected == current {
		return nil
	}

	return loans.SetStatus(ctx, q, loanID, projected)
}

// queryExecutor combines query and exec access, satisfied by *sql.Tx.
type queryExecutor interface {
	repository.Querier
	repository.Executor
}

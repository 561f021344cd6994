// Package loans implements the loan application domain: entity types, read
// access, and the transaction-scoped status helpers the verification
// orchestrator projects onto.
package loans

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is a loan application's position in the origination pipeline.
type Status string

const (
	StatusPendingVerification    Status = "PENDING_VERIFICATION"
	StatusVerificationInProgress Status = "VERIFICATION_IN_PROGRESS"
	StatusVerificationCompleted  Status = "VERIFICATION_COMPLETED"
	StatusVerificationFailed     Status = "VERIFICATION_FAILED"
	StatusApproved               Status = "APPROVED"
	StatusRejected               Status = "REJECTED"
	StatusDisbursed              Status = "DISBURSED"
)

// ParseStatus validates and converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPendingVerification, StatusVerificationInProgress,
		StatusVerificationCompleted, StatusVerificationFailed,
		StatusApproved, StatusRejected, StatusDisbursed:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// VerificationDriven reports whether the status is owned by the verification
// pipeline. Statuses outside this set (APPROVED, REJECTED, DISBURSED) belong
// to downstream decisioning and are never overwritten by projection.
func (s Status) VerificationDriven() bool {
	switch s {
	case StatusPendingVerification, StatusVerificationInProgress,
		StatusVerificationCompleted, StatusVerificationFailed:
		return true
	}
	return false
}

// LoanApplication represents a loan application under origination.
type LoanApplication struct {
	ID                 uuid.UUID `json:"id"`
	ApplicantFirstName string    `json:"applicant_first_name"`
	ApplicantLastName  string    `json:"applicant_last_name"`
	Amount             float64   `json:"amount"`
	Purpose            string    `json:"purpose"`
	Status             Status    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new loan application.
type CreateCommand struct {
	ApplicantFirstName string  `json:"applicant_first_name"`
	ApplicantLastName  string  `json:"applicant_last_name"`
	Amount             float64 `json:"amount"`
	Purpose            string  `json:"purpose"`
}

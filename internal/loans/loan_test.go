package loans_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/lendcore/veriflow/internal/loans"
)

func TestParseStatus(t *testing.T) {
	valid := []string{
		"PENDING_VERIFICATION",
		"VERIFICATION_IN_PROGRESS",
		"VERIFICATION_COMPLETED",
		"VERIFICATION_FAILED",
		"APPROVED",
		"REJECTED",
		"DISBURSED",
	}

	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			if _, err := loans.ParseStatus(s); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	if _, err := loans.ParseStatus("SHIPPED"); !errors.Is(err, loans.ErrInvalidStatus) {
		t.Errorf("got %v, want ErrInvalidStatus", err)
	}
}

func TestVerificationDriven(t *testing.T) {
	tests := []struct {
		status loans.Status
		want   bool
	}{
		{loans.StatusPendingVerification, true},
		{loans.StatusVerificationInProgress, true},
		{loans.StatusVerificationCompleted, true},
		{loans.StatusVerificationFailed, true},
		{loans.StatusApproved, false},
		{loans.StatusRejected, false},
		{loans.StatusDisbursed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.VerificationDriven(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{loans.ErrNotFound, http.StatusNotFound},
		{loans.ErrDuplicate, http.StatusConflict},
		{loans.ErrForbidden, http.StatusForbidden},
		{loans.ErrInvalidInput, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := loans.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("%v: got %d, want %d", tt.err, got, tt.want)
		}
	}
}

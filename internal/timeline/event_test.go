package timeline_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/internal/timeline"
)

func TestNewEventAttribution(t *testing.T) {
	caller := &identity.Caller{Subject: "officer-1", Role: identity.RoleLoanOfficer}
	loanID := uuid.New()
	verificationID := uuid.New()

	evt := timeline.NewEvent(caller, timeline.EventVerificationCreated, loanID, &verificationID, "residence check")

	if evt.ActorID != "officer-1" {
		t.Errorf("got actor %q", evt.ActorID)
	}
	if evt.ActorRole != identity.RoleLoanOfficer {
		t.Errorf("got role %q", evt.ActorRole)
	}
	if evt.LoanApplicationID != loanID {
		t.Error("loan application id not carried")
	}
	if evt.VerificationID == nil || *evt.VerificationID != verificationID {
		t.Error("verification id not carried")
	}
	if evt.ID == uuid.Nil {
		t.Error("event id should be assigned")
	}
	if evt.CreatedAt.IsZero() {
		t.Error("created_at should be stamped")
	}
}

func TestNewEventSystemActor(t *testing.T) {
	evt := timeline.NewEvent(nil, timeline.EventWizardCompleted, uuid.New(), nil, "")

	if evt.ActorID != "system" {
		t.Errorf("got actor %q, want system", evt.ActorID)
	}
	if evt.ActorRole != "" {
		t.Errorf("got role %q, want empty", evt.ActorRole)
	}
}

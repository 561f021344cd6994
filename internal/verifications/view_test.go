package verifications_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/verifications"
)

func sampleVerification() *verifications.Verification {
	verifier := "inspector-7"
	return &verifications.Verification{
		ID:                uuid.New(),
		LoanApplicationID: uuid.New(),
		Type:              verifications.TypeResidence,
		Status:            verifications.StatusCompleted,
		Result:            true,
		Remarks:           "front door matches photo",
		VerificationDate:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		VerificationTime:  "10:30",
		VerifiedBy:        &verifier,
		CreatedAt:         time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC),
		UpdatedAt:         time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC),
		Details: verifications.ResidenceDetail{
			OwnerFirstName: "Ada",
			OwnerLastName:  "Lovelace",
			ResidenceType:  "OWNED",
			StructureType:  "BUNGALOW",
			AddressLine1:   "12 Main St",
			AddressCity:    "Springfield",
			AddressState:   "IL",
			AddressZipCode: "62701",
		},
	}
}

func TestToViewIdempotent(t *testing.T) {
	record := sampleVerification()

	first := verifications.ToView(record)
	second := verifications.ToView(record)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated transforms differ:\n%+v\n%+v", first, second)
	}
}

func TestToViewResidence(t *testing.T) {
	view := verifications.ToView(sampleVerification())

	if view.TypeLabel != "Residence" {
		t.Errorf("got type label %q", view.TypeLabel)
	}
	if view.StatusLabel != "Completed" {
		t.Errorf("got status label %q", view.StatusLabel)
	}
	if view.VerificationDate != "2025-06-15" {
		t.Errorf("got date %q", view.VerificationDate)
	}
	if view.Details == nil {
		t.Fatal("expected detail view")
	}
	if view.Details.OwnerFullName != "Ada Lovelace" {
		t.Errorf("got owner %q", view.Details.OwnerFullName)
	}
	if view.Details.FullAddress != "12 Main St, Springfield, IL, 62701" {
		t.Errorf("got address %q", view.Details.FullAddress)
	}
}

func TestToViewVehicle(t *testing.T) {
	record := sampleVerification()
	record.Type = verifications.TypeVehicle
	record.Details = verifications.VehicleDetail{
		Make:        "Toyota",
		Model:       "Corolla",
		VehicleType: "SEDAN",
	}

	view := verifications.ToView(record)
	if view.Details == nil {
		t.Fatal("expected detail view")
	}
	if view.Details.Vehicle != "Toyota Corolla (SEDAN)" {
		t.Errorf("got vehicle %q", view.Details.Vehicle)
	}
}

func TestRedact(t *testing.T) {
	view := verifications.ToView(sampleVerification())

	view.Redact(true)
	if view.Remarks == "" {
		t.Error("readable remarks should survive")
	}

	view.Redact(false)
	if view.Remarks != "" {
		t.Error("remarks should be cleared for callers without the grant")
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "", ""},
		{" Ada ", " Lovelace ", "Ada Lovelace"},
	}

	for _, tt := range tests {
		if got := verifications.FullName(tt.first, tt.last); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestFullAddressSkipsEmptySegments(t *testing.T) {
	got := verifications.FullAddress("12 Main St", "", "Springfield", "IL", "62701")
	want := "12 Main St, Springfield, IL, 62701"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestVehicleDescriptionWithoutType(t *testing.T) {
	if got := verifications.VehicleDescription("Toyota", "Corolla", ""); got != "Toyota Corolla" {
		t.Errorf("got %q", got)
	}
}

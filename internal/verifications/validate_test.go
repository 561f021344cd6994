package verifications

import (
	"testing"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/pkg/validation"
)

func validResidenceCreate() CreateCommand {
	return CreateCommand{
		LoanApplicationID: uuid.New(),
		Type:              "RESIDENCE",
		VerificationTime:  "10:30",
		Details: DetailPayload{
			Residence: &ResidenceDetail{
				OwnerFirstName: "Ada",
				OwnerLastName:  "Lovelace",
				ResidenceType:  "OWNED",
				StructureType:  "BUNGALOW",
				AddressLine1:   "12 Main St",
				AddressCity:    "Springfield",
				AddressState:   "IL",
				AddressZipCode: "62701",
			},
		},
	}
}

func TestValidateCreateValid(t *testing.T) {
	if errs := validateCreate(validResidenceCreate()); errs != nil {
		t.Errorf("expected nil, got %v", errs)
	}
}

func TestValidateCreateEnvelope(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateCommand)
		path   string
		key    string
	}{
		{
			"missing loan application",
			func(c *CreateCommand) { c.LoanApplicationID = uuid.Nil },
			"loan_application_id", validation.KeyRequired,
		},
		{
			"missing type",
			func(c *CreateCommand) { c.Type = "" },
			"type", validation.KeyRequired,
		},
		{
			"invalid type",
			func(c *CreateCommand) { c.Type = "WAREHOUSE" },
			"type", validation.KeyInvalid,
		},
		{
			"invalid status",
			func(c *CreateCommand) { s := "DONE"; c.Status = &s },
			"status", validation.KeyInvalid,
		},
		{
			"missing verification time",
			func(c *CreateCommand) { c.VerificationTime = "  " },
			"verification_time", validation.KeyRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validResidenceCreate()
			tt.mutate(&cmd)

			errs := validateCreate(cmd)
			if errs == nil {
				t.Fatal("expected validation failure")
			}
			if errs[tt.path] != tt.key {
				t.Errorf("got %q for %s, want %q", errs[tt.path], tt.path, tt.key)
			}
		})
	}
}

func TestValidateCreateDetailMismatch(t *testing.T) {
	cmd := validResidenceCreate()
	cmd.Type = "VEHICLE"

	errs := validateCreate(cmd)
	if errs == nil {
		t.Fatal("expected validation failure")
	}
	if errs["type"] != validation.KeyMismatch {
		t.Errorf("got %q, want %q", errs["type"], validation.KeyMismatch)
	}
}

func TestValidateCreateDetailAbsent(t *testing.T) {
	cmd := validResidenceCreate()
	cmd.Details = DetailPayload{}

	errs := validateCreate(cmd)
	if errs == nil || errs["type"] != validation.KeyMismatch {
		t.Errorf("got %v, want type mismatch", errs)
	}
}

func TestValidateCreateResidenceRules(t *testing.T) {
	cmd := validResidenceCreate()
	cmd.Details.Residence.OwnerFirstName = ""
	cmd.Details.Residence.ResidenceType = "SQUATTED"

	errs := validateCreate(cmd)
	if errs == nil {
		t.Fatal("expected validation failure")
	}
	if errs["details.owner_first_name"] != validation.KeyRequired {
		t.Errorf("got %q, want required", errs["details.owner_first_name"])
	}
	if errs["details.residence_type"] != validation.KeyInvalid {
		t.Errorf("got %q, want invalid", errs["details.residence_type"])
	}
}

func TestValidateCreateVehicleRules(t *testing.T) {
	cmd := CreateCommand{
		LoanApplicationID: uuid.New(),
		Type:              "VEHICLE",
		VerificationTime:  "09:00",
		Details: DetailPayload{
			Vehicle: &VehicleDetail{Make: "Toyota", Model: "Corolla"},
		},
	}

	if errs := validateCreate(cmd); errs != nil {
		t.Errorf("make and model alone should pass, got %v", errs)
	}

	cmd.Details.Vehicle.Model = ""
	errs := validateCreate(cmd)
	if errs == nil || errs["details.model"] != validation.KeyRequired {
		t.Errorf("got %v, want details.model required", errs)
	}
}

func TestValidateCreateBusinessRules(t *testing.T) {
	cmd := CreateCommand{
		LoanApplicationID: uuid.New(),
		Type:              "BUSINESS",
		VerificationTime:  "14:00",
		Details: DetailPayload{
			Business: &BusinessDetail{BusinessName: "Corner Shop"},
		},
	}

	errs := validateCreate(cmd)
	if errs == nil || errs["details.business_type"] != validation.KeyRequired {
		t.Errorf("got %v, want details.business_type required", errs)
	}
}

func TestValidateUpdate(t *testing.T) {
	tests := []struct {
		name string
		cmd  UpdateCommand
		path string
		key  string
	}{
		{
			"missing id",
			UpdateCommand{},
			"id", validation.KeyRequired,
		},
		{
			"invalid status",
			UpdateCommand{ID: uuid.New(), Status: ptr("DONE")},
			"status", validation.KeyInvalid,
		},
		{
			"blank verification time",
			UpdateCommand{ID: uuid.New(), VerificationTime: ptr(" ")},
			"verification_time", validation.KeyRequired,
		},
		{
			"invalid residence enum",
			UpdateCommand{
				ID:      uuid.New(),
				Details: DetailPatchPayload{Residence: &ResidencePatch{ResidenceType: ptr("SQUATTED")}},
			},
			"details.residence_type", validation.KeyInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateUpdate(tt.cmd)
			if errs == nil {
				t.Fatal("expected validation failure")
			}
			if errs[tt.path] != tt.key {
				t.Errorf("got %q for %s, want %q", errs[tt.path], tt.path, tt.key)
			}
		})
	}
}

func TestValidateUpdatePartialPatchValid(t *testing.T) {
	cmd := UpdateCommand{
		ID:     uuid.New(),
		Status: ptr("COMPLETED"),
		Details: DetailPatchPayload{
			Residence: &ResidencePatch{ResidenceType: ptr("RENTED")},
		},
	}

	if errs := validateUpdate(cmd); errs != nil {
		t.Errorf("expected nil, got %v", errs)
	}
}

func ptr[T any](v T) *T { return &v }

package verifications

import (
	"time"

	"github.com/google/uuid"
)

// DetailPayload carries at most one type-specific detail in a command body.
// The populated variant must match the envelope type; the cross-field rule
// is enforced by validation.
type DetailPayload struct {
	Residence *ResidenceDetail `json:"residence,omitempty"`
	Business  *BusinessDetail  `json:"business,omitempty"`
	Property  *PropertyDetail  `json:"property,omitempty"`
	Vehicle   *VehicleDetail   `json:"vehicle,omitempty"`
}

// For returns the detail matching the given type, or nil when absent.
func (p DetailPayload) For(t Type) Detail {
	switch t {
	case TypeResidence:
		if p.Residence != nil {
			return *p.Residence
		}
	case TypeBusiness:
		if p.Business != nil {
			return *p.Business
		}
	case TypeProperty:
		if p.Property != nil {
			return *p.Property
		}
	case TypeVehicle:
		if p.Vehicle != nil {
			return *p.Vehicle
		}
	}
	return nil
}

// CreateCommand carries the data needed to create a verification with its
// matching detail record.
type CreateCommand struct {
	LoanApplicationID uuid.UUID     `json:"loan_application_id"`
	Type              string        `json:"type"`
	Status            *string       `json:"status,omitempty"`
	Result            *bool         `json:"result,omitempty"`
	Remarks           string        `json:"remarks"`
	VerificationDate  *time.Time    `json:"verification_date,omitempty"`
	VerificationTime  string        `json:"verification_time"`
	Details           DetailPayload `json:"details"`
}

// UpdateCommand carries a partial envelope patch plus optional detail
// patches. Only the patch matching the record's stored type is applied;
// others are ignored.
type UpdateCommand struct {
	ID               uuid.UUID          `json:"id"`
	Status           *string            `json:"status,omitempty"`
	Result           *bool              `json:"result,omitempty"`
	Remarks          *string            `json:"remarks,omitempty"`
	VerificationDate *time.Time         `json:"verification_date,omitempty"`
	VerificationTime *string            `json:"verification_time,omitempty"`
	Details          DetailPatchPayload `json:"details"`
}

// DetailPatchPayload carries partial detail patches keyed by type.
type DetailPatchPayload struct {
	Residence *ResidencePatch `json:"residence,omitempty"`
	Business  *BusinessPatch  `json:"business,omitempty"`
	Property  *PropertyPatch  `json:"property,omitempty"`
	Vehicle   *VehiclePatch   `json:"vehicle,omitempty"`
}

// ResidencePatch is a partial update of a ResidenceDetail. Nil fields are
// left unchanged.
type ResidencePatch struct {
	OwnerFirstName   *string `json:"owner_first_name,omitempty"`
	OwnerLastName    *string `json:"owner_last_name,omitempty"`
	ResidenceType    *string `json:"residence_type,omitempty"`
	StructureType    *string `json:"structure_type,omitempty"`
	AddressLine1     *string `json:"address_line1,omitempty"`
	AddressLine2     *string `json:"address_line2,omitempty"`
	AddressCity      *string `json:"address_city,omitempty"`
	AddressState     *string `json:"address_state,omitempty"`
	AddressZipCode   *string `json:"address_zip_code,omitempty"`
	LocationFromMain *string `json:"location_from_main,omitempty"`
}

// BusinessPatch is a partial update of a BusinessDetail.
type BusinessPatch struct {
	BusinessName *string  `json:"business_name,omitempty"`
	BusinessType *string  `json:"business_type,omitempty"`
	SalesVolume  *float64 `json:"sales_volume,omitempty"`
}

// PropertyPatch is a partial update of a PropertyDetail.
type PropertyPatch struct {
	PropertyType   *string `json:"property_type,omitempty"`
	AddressLine1   *string `json:"address_line1,omitempty"`
	AddressLine2   *string `json:"address_line2,omitempty"`
	AddressCity    *string `json:"address_city,omitempty"`
	AddressState   *string `json:"address_state,omitempty"`
	AddressZipCode *string `json:"address_zip_code,omitempty"`
}

// VehiclePatch is a partial update of a VehicleDetail.
type VehiclePatch struct {
	Make               *string `json:"make,omitempty"`
	Model              *string `json:"model,omitempty"`
	VehicleType        *string `json:"vehicle_type,omitempty"`
	EngineNumber       *string `json:"engine_number,omitempty"`
	ChassisNumber      *string `json:"chassis_number,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
}

// patchedFields lists the envelope field names touched by the patch, for
// field-level capability checks.
func (c UpdateCommand) patchedFields() []string {
	fields := make([]string, 0, 6)
	if c.Status != nil {
		fields = append(fields, "status")
	}
	if c.Result != nil {
		fields = append(fields, "result")
	}
	if c.Remarks != nil {
		fields = append(fields, "remarks")
	}
	if c.VerificationDate != nil {
		fields = append(fields, "verification_date")
	}
	if c.VerificationTime != nil {
		fields = append(fields, "verification_time")
	}
	if c.Details.Residence != nil || c.Details.Business != nil ||
		c.Details.Property != nil || c.Details.Vehicle != nil {
		fields = append(fields, "details")
	}
	return fields
}

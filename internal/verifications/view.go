package verifications

import (
	"strings"

	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

var typeLabels = map[Type]string{
	TypeResidence: "Residence",
	TypeBusiness:  "Business",
	TypeProperty:  "Property",
	TypeVehicle:   "Vehicle",
}

var statusLabels = map[Status]string{
	StatusPending:   "Pending",
	StatusCompleted: "Completed",
	StatusFailed:    "Failed",
}

// View is the display-ready representation of a verification.
type View struct {
	ID                uuid.UUID   `json:"id"`
	LoanApplicationID uuid.UUID   `json:"loan_application_id"`
	Type              Type        `json:"type"`
	TypeLabel         string      `json:"type_label"`
	Status            Status      `json:"status"`
	StatusLabel       string      `json:"status_label"`
	Result            bool        `json:"result"`
	Remarks           string      `json:"remarks,omitempty"`
	VerificationDate  string      `json:"verification_date"`
	VerificationTime  string      `json:"verification_time"`
	VerifiedBy        *string     `json:"verified_by,omitempty"`
	CreatedAt         string      `json:"created_at"`
	UpdatedAt         string      `json:"updated_at"`
	Details           *DetailView `json:"details,omitempty"`
}

// DetailView is the display-ready detail block. Only the fields for the
// record's type are populated.
type DetailView struct {
	OwnerFullName    string   `json:"owner_full_name,omitempty"`
	ResidenceType    string   `json:"residence_type,omitempty"`
	StructureType    string   `json:"structure_type,omitempty"`
	FullAddress      string   `json:"full_address,omitempty"`
	LocationFromMain string   `json:"location_from_main,omitempty"`
	BusinessName     string   `json:"business_name,omitempty"`
	BusinessType     string   `json:"business_type,omitempty"`
	SalesVolume      *float64 `json:"sales_volume,omitempty"`
	PropertyType     string   `json:"property_type,omitempty"`
	Vehicle          string   `json:"vehicle,omitempty"`
	EngineNumber     string   `json:"engine_number,omitempty"`
	ChassisNumber    string   `json:"chassis_number,omitempty"`
	Registration     string   `json:"registration,omitempty"`
}

// ToView produces the display representation of a verification. Pure: the
// record is never mutated and repeated calls yield identical output.
func ToView(v *Verification) View {
	view := View{
		ID:                v.ID,
		LoanApplicationID: v.LoanApplicationID,
		Type:              v.Type,
		TypeLabel:         typeLabels[v.Type],
		Status:            v.Status,
		StatusLabel:       statusLabels[v.Status],
		Result:            v.Result,
		Remarks:           v.Remarks,
		VerificationDate:  v.VerificationDate.Format(dateFormat),
		VerificationTime:  v.VerificationTime,
		VerifiedBy:        v.VerifiedBy,
		CreatedAt:         v.CreatedAt.Format(dateFormat),
		UpdatedAt:         v.UpdatedAt.Format(dateFormat),
	}

	switch d := v.Details.(type) {
	case ResidenceDetail:
		view.Details = &DetailView{
			OwnerFullName:    FullName(d.OwnerFirstName, d.OwnerLastName),
			ResidenceType:    d.ResidenceType,
			StructureType:    d.StructureType,
			FullAddress:      FullAddress(d.AddressLine1, d.AddressLine2, d.AddressCity, d.AddressState, d.AddressZipCode),
			LocationFromMain: d.LocationFromMain,
		}
	case BusinessDetail:
		view.Details = &DetailView{
			BusinessName: d.BusinessName,
			BusinessType: d.BusinessType,
			SalesVolume:  d.SalesVolume,
		}
	case PropertyDetail:
		view.Details = &DetailView{
			PropertyType: d.PropertyType,
			FullAddress:  FullAddress(d.AddressLine1, d.AddressLine2, d.AddressCity, d.AddressState, d.AddressZipCode),
		}
	case VehicleDetail:
		view.Details = &DetailView{
			Vehicle:       VehicleDescription(d.Make, d.Model, d.VehicleType),
			EngineNumber:  d.EngineNumber,
			ChassisNumber: d.ChassisNumber,
			Registration:  d.RegistrationNumber,
		}
	}

	return view
}

// FullName joins first and last name with a single space, trimmed.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// FullAddress joins address parts with ", ", collapsing empty segments so
// a missing line2 never leaves a stray comma.
func FullAddress(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, ", ")
}

// VehicleDescription renders "make model", with the vehicle type appended
// in parentheses when present.
func VehicleDescription(vehicleMake, model, vehicleType string) string {
	desc := strings.TrimSpace(strings.TrimSpace(vehicleMake) + " " + strings.TrimSpace(model))
	if t := strings.TrimSpace(vehicleType); t != "" {
		desc += " (" + t + ")"
	}
	return desc
}

// Redact clears fields the caller's capability set denies reading.
func (v *View) Redact(canReadRemarks bool) {
	if !canReadRemarks {
		v.Remarks = ""
	}
}

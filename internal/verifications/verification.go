// Package verifications implements the verification domain: the inspection
// envelope, its four type-specific detail variants, permission-gated
// transactional workflows, and loan status projection.
package verifications

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type tags the inspection variant. The set is closed; no runtime extension.
type Type string

const (
	TypeResidence Type = "RESIDENCE"
	TypeBusiness  Type = "BUSINESS"
	TypeProperty  Type = "PROPERTY"
	TypeVehicle   Type = "VEHICLE"
)

// ParseType validates and converts a string to a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeResidence, TypeBusiness, TypeProperty, TypeVehicle:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown verification type: %q", s)
}

// Status is a verification's lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// ParseStatus validates and converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusCompleted, StatusFailed:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown verification status: %q", s)
}

// Terminal reports whether the status closes out the inspection.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Detail is the type-specific record attached 1:1 to an envelope. Exactly
// one variant exists per verification and its tag matches the envelope type.
type Detail interface {
	DetailType() Type
}

// ResidenceDetail holds the fields of a residence inspection.
type ResidenceDetail struct {
	OwnerFirstName   string `json:"owner_first_name"`
	OwnerLastName    string `json:"owner_last_name"`
	ResidenceType    string `json:"residence_type"`
	StructureType    string `json:"structure_type"`
	AddressLine1     string `json:"address_line1"`
	AddressLine2     string `json:"address_line2,omitempty"`
	AddressCity      string `json:"address_city"`
	AddressState     string `json:"address_state"`
	AddressZipCode   string `json:"address_zip_code"`
	LocationFromMain string `json:"location_from_main,omitempty"`
}

func (ResidenceDetail) DetailType() Type { return TypeResidence }

// ResidenceTypes and StructureTypes are the closed value sets for
// ResidenceDetail enum fields.
var (
	ResidenceTypes = []string{"OWNED", "RENTED"}
	StructureTypes = []string{"DUPLEX", "APARTMENT", "BUNGALOW"}
)

// BusinessDetail holds the fields of a business inspection.
type BusinessDetail struct {
	BusinessName string   `json:"business_name"`
	BusinessType string   `json:"business_type"`
	SalesVolume  *float64 `json:"sales_volume,omitempty"`
}

func (BusinessDetail) DetailType() Type { return TypeBusiness }

// PropertyDetail holds the fields of a property inspection.
type PropertyDetail struct {
	PropertyType   string `json:"property_type"`
	AddressLine1   string `json:"address_line1"`
	AddressLine2   string `json:"address_line2,omitempty"`
	AddressCity    string `json:"address_city"`
	AddressState   string `json:"address_state"`
	AddressZipCode string `json:"address_zip_code"`
}

func (PropertyDetail) DetailType() Type { return TypeProperty }

// VehicleDetail holds the fields of a vehicle inspection. Only make and
// model are required; identification numbers are recorded when available.
type VehicleDetail struct {
	Make               string `json:"make"`
	Model              string `json:"model"`
	VehicleType        string `json:"vehicle_type,omitempty"`
	EngineNumber       string `json:"engine_number,omitempty"`
	ChassisNumber      string `json:"chassis_number,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
}

func (VehicleDetail) DetailType() Type { return TypeVehicle }

// Verification is the envelope record shared by all four inspection types.
type Verification struct {
	ID                uuid.UUID  `json:"id"`
	LoanApplicationID uuid.UUID  `json:"loan_application_id"`
	Type              Type       `json:"type"`
	Status            Status     `json:"status"`
	Result            bool       `json:"result"`
	Remarks           string     `json:"remarks"`
	VerificationDate  time.Time  `json:"verification_date"`
	VerificationTime  string     `json:"verification_time"`
	VerifiedBy        *string    `json:"verified_by,omitempty"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Details           Detail     `json:"details,omitempty"`
}

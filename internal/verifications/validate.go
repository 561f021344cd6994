package verifications

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/pkg/validation"
)

// validateCreate checks a create command against envelope and type-specific
// detail rules. Returns nil when valid.
func validateCreate(cmd CreateCommand) validation.FieldErrors {
	errs := validation.New()

	if cmd.LoanApplicationID == uuid.Nil {
		errs.Add("loan_application_id", validation.KeyRequired)
	}

	typ, err := ParseType(cmd.Type)
	if err != nil {
		if cmd.Type == "" {
			errs.Add("type", validation.KeyRequired)
		} else {
			errs.Add("type", validation.KeyInvalid)
		}
	}

	if cmd.Status != nil {
		if _, err := ParseStatus(*cmd.Status); err != nil {
			errs.Add("status", validation.KeyInvalid)
		}
	}

	if strings.TrimSpace(cmd.VerificationTime) == "" {
		errs.Add("verification_time", validation.KeyRequired)
	}

	// Cross-field rule: the detail variant must match the envelope type.
	if err == nil {
		detail := cmd.Details.For(typ)
		if detail == nil {
			errs.Add("type", validation.KeyMismatch)
		} else {
			errs.Merge("details", validateDetail(detail))
		}
	}

	if errs.Empty() {
		return nil
	}
	return errs
}

// validateUpdate checks an update command. Everything except the identifier
// is optional; supplied values must still be well-formed.
func validateUpdate(cmd UpdateCommand) validation.FieldErrors {
	errs := validation.New()

	if cmd.ID == uuid.Nil {
		errs.Add("id", validation.KeyRequired)
	}

	if cmd.Status != nil {
		if _, err := ParseStatus(*cmd.Status); err != nil {
			errs.Add("status", validation.KeyInvalid)
		}
	}

	if cmd.VerificationTime != nil && strings.TrimSpace(*cmd.VerificationTime) == "" {
		errs.Add("verification_time", validation.KeyRequired)
	}

	if p := cmd.Details.Residence; p != nil {
		if p.ResidenceType != nil && !slices.Contains(ResidenceTypes, *p.ResidenceType) {
			errs.Add("details.residence_type", validation.KeyInvalid)
		}
		if p.StructureType != nil && !slices.Contains(StructureTypes, *p.StructureType) {
			errs.Add("details.structure_type", validation.KeyInvalid)
		}
	}

	if errs.Empty() {
		return nil
	}
	return errs
}

func validateDetail(detail Detail) validation.FieldErrors {
	switch d := detail.(type) {
	case ResidenceDetail:
		return validateResidence(d)
	case BusinessDetail:
		return validateBusiness(d)
	case PropertyDetail:
		return validateProperty(d)
	case VehicleDetail:
		return validateVehicle(d)
	}
	return nil
}

func validateResidence(d ResidenceDetail) validation.FieldErrors {
	errs := validation.New()

	requireAll(errs, map[string]string{
		"owner_first_name": d.OwnerFirstName,
		"owner_last_name":  d.OwnerLastName,
		"address_line1":    d.AddressLine1,
		"address_city":     d.AddressCity,
		"address_state":    d.AddressState,
		"address_zip_code": d.AddressZipCode,
	})

	requireEnum(errs, "residence_type", d.ResidenceType, ResidenceTypes)
	requireEnum(errs, "structure_type", d.StructureType, StructureTypes)

	return errs
}

func validateBusiness(d BusinessDetail) validation.FieldErrors {
	errs := validation.New()

	requireAll(errs, map[string]string{
		"business_name": d.BusinessName,
		"business_type": d.BusinessType,
	})

	return errs
}

func validateProperty(d PropertyDetail) validation.FieldErrors {
	errs := validation.New()

	requireAll(errs, map[string]string{
		"property_type":    d.PropertyType,
		"address_line1":    d.AddressLine1,
		"address_city":     d.AddressCity,
		"address_state":    d.AddressState,
		"address_zip_code": d.AddressZipCode,
	})

	return errs
}

func validateVehicle(d VehicleDetail) validation.FieldErrors {
	errs := validation.New()

	requireAll(errs, map[string]string{
		"make":  d.Make,
		"model": d.Model,
	})

	return errs
}

func requireAll(errs validation.FieldErrors, fields map[string]string) {
	for path, value := range fields {
		if strings.TrimSpace(value) == "" {
			errs.Add(path, validation.KeyRequired)
		}
	}
}

func requireEnum(errs validation.FieldErrors, path, value string, allowed []string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(path, validation.KeyRequired)
		return
	}
	if !slices.Contains(allowed, value) {
		errs.Add(path, validation.KeyInvalid)
	}
}

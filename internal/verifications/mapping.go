package verifications

import (
	"database/sql"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/pkg/query"
	"github.com/lendcore/veriflow/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "verifications", "v").
	Project("id", "ID").
	Project("loan_application_id", "LoanApplicationID").
	Project("type", "Type").
	Project("status", "Status").
	Project("result", "Result").
	Project("remarks", "Remarks").
	Project("verification_date", "VerificationDate").
	Project("verification_time", "VerificationTime").
	Project("verified_by", "VerifiedBy").
	Project("deleted_at", "DeletedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("public", "verification_residences", "vr", "LEFT JOIN", "v.id = vr.verification_id").
	Project("owner_first_name", "ResidenceOwnerFirstName").
	Project("owner_last_name", "ResidenceOwnerLastName").
	Project("residence_type", "ResidenceType").
	Project("structure_type", "StructureType").
	Project("address_line1", "ResidenceAddressLine1").
	Project("address_line2", "ResidenceAddressLine2").
	Project("address_city", "ResidenceAddressCity").
	Project("address_state", "ResidenceAddressState").
	Project("address_zip_code", "ResidenceAddressZipCode").
	Project("location_from_main", "ResidenceLocationFromMain").
	Join("public", "verification_businesses", "vb", "LEFT JOIN", "v.id = vb.verification_id").
	Project("business_name", "BusinessName").
	Project("business_type", "BusinessType").
	Project("sales_volume", "BusinessSalesVolume").
	Join("public", "verification_properties", "vp", "LEFT JOIN", "v.id = vp.verification_id").
	Project("property_type", "PropertyType").
	Project("address_line1", "PropertyAddressLine1").
	Project("address_line2", "PropertyAddressLine2").
	Project("address_city", "PropertyAddressCity").
	Project("address_state", "PropertyAddressState").
	Project("address_zip_code", "PropertyAddressZipCode").
	Join("public", "verification_vehicles", "vv", "LEFT JOIN", "v.id = vv.verification_id").
	Project("make", "VehicleMake").
	Project("model", "VehicleModel").
	Project("vehicle_type", "VehicleType").
	Project("engine_number", "VehicleEngineNumber").
	Project("chassis_number", "VehicleChassisNumber").
	Project("registration_number", "VehicleRegistrationNumber")

var defaultSort = query.SortField{
	Field:      "VerificationDate",
	Descending: true,
}

// sortKeys maps client sort keys to projection field names. Keys outside
// this allow-list are discarded.
var sortKeys = map[string]string{
	"verification_date": "VerificationDate",
	"created_at":        "CreatedAt",
	"updated_at":        "UpdatedAt",
	"type":              "Type",
	"status":            "Status",
}

// restrictSort rewrites client sort keys to projection field names,
// dropping anything outside the allow-list.
func restrictSort(fields []query.SortField) []query.SortField {
	restricted := make([]query.SortField, 0, len(fields))
	for _, f := range fields {
		if mapped, ok := sortKeys[f.Field]; ok {
			restricted = append(restricted, query.SortField{
				Field:      mapped,
				Descending: f.Descending,
			})
		}
	}
	return restricted
}

// searchFields are the columns free-text search scans: remarks plus the
// human-identifying type-specific fields.
var searchFields = []string{
	"Remarks",
	"ResidenceOwnerFirstName", "ResidenceOwnerLastName",
	"BusinessName",
	"PropertyType",
	"VehicleMake", "VehicleModel", "VehicleRegistrationNumber",
}

// Filters contains optional filtering criteria for verification queries.
// Nil fields are ignored. From and To bound the verification date.
type Filters struct {
	LoanApplicationID *uuid.UUID `json:"loan_application_id,omitempty"`
	Type              *string    `json:"type,omitempty"`
	Status            *string    `json:"status,omitempty"`
	Result            *bool      `json:"result,omitempty"`
	VerifiedBy        *string    `json:"verified_by,omitempty"`
	From              *time.Time `json:"from,omitempty"`
	To                *time.Time `json:"to,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("LoanApplicationID", f.LoanApplicationID).
		WhereEquals("Type", f.Type).
		WhereEquals("Status", f.Status).
		WhereEquals("Result", f.Result).
		WhereEquals("VerifiedBy", f.VerifiedBy).
		WhereOnOrAfter("VerificationDate", f.From).
		WhereOnOrBefore("VerificationDate", f.To)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Date bounds accept RFC 3339 timestamps or bare YYYY-MM-DD dates.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("loan_application_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.LoanApplicationID = &id
		}
	}

	if t := values.Get("type"); t != "" {
		f.Type = &t
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if v := values.Get("result"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Result = &b
		}
	}

	if v := values.Get("verified_by"); v != "" {
		f.VerifiedBy = &v
	}

	if v := values.Get("from"); v != "" {
		if t, ok := parseDate(v); ok {
			f.From = &t
		}
	}

	if v := values.Get("to"); v != "" {
		if t, ok := parseDate(v); ok {
			f.To = &t
		}
	}

	return f
}

func parseDate(v string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func scanVerification(s repository.Scanner) (Verification, error) {
	var v Verification

	var (
		resOwnerFirst, resOwnerLast, resType, resStructure   sql.NullString
		resLine1, resLine2, resCity, resState, resZip        sql.NullString
		resLocation                                          sql.NullString
		bizName, bizType                                     sql.NullString
		bizSales                                             sql.NullFloat64
		propType, propLine1, propLine2                       sql.NullString
		propCity, propState, propZip                         sql.NullString
		vehMake, vehModel, vehType, vehEngine                sql.NullString
		vehChassis, vehRegistration                          sql.NullString
	)

	err := s.Scan(
		&v.ID,
		&v.LoanApplicationID,
		&v.Type,
		&v.Status,
		&v.Result,
		&v.Remarks,
		&v.VerificationDate,
		&v.VerificationTime,
		&v.VerifiedBy,
		&v.DeletedAt,
		&v.CreatedAt,
		&v.UpdatedAt,
		&resOwnerFirst, &resOwnerLast, &resType, &resStructure,
		&resLine1, &resLine2, &resCity, &resState, &resZip, &resLocation,
		&bizName, &bizType, &bizSales,
		&propType, &propLine1, &propLine2, &propCity, &propState, &propZip,
		&vehMake, &vehModel, &vehType, &vehEngine, &vehChassis, &vehRegistration,
	)
	if err != nil {
		return v, err
	}

	switch v.Type {
	case TypeResidence:
		if resOwnerFirst.Valid {
			v.Details = ResidenceDetail{
				OwnerFirstName:   resOwnerFirst.String,
				OwnerLastName:    resOwnerLast.String,
				ResidenceType:    resType.String,
				StructureType:    resStructure.String,
				AddressLine1:     resLine1.String,
				AddressLine2:     resLine2.String,
				AddressCity:      resCity.String,
				AddressState:     resState.String,
				AddressZipCode:   resZip.String,
				LocationFromMain: resLocation.String,
			}
		}
	case TypeBusiness:
		if bizName.Valid {
			detail := BusinessDetail{
				BusinessName: bizName.String,
				BusinessType: bizType.String,
			}
			if bizSales.Valid {
				detail.SalesVolume = &bizSales.Float64
			}
			v.Details = detail
		}
	case TypeProperty:
		if propType.Valid {
			v.Details = PropertyDetail{
				PropertyType:   propType.String,
				AddressLine1:   propLine1.String,
				AddressLine2:   propLine2.String,
				AddressCity:    propCity.String,
				AddressState:   propState.String,
				AddressZipCode: propZip.String,
			}
		}
	case TypeVehicle:
		if vehMake.Valid {
			v.Details = VehicleDetail{
				Make:               vehMake.String,
				Model:              vehModel.String,
				VehicleType:        vehType.String,
				EngineNumber:       vehEngine.String,
				ChassisNumber:      vehChassis.String,
				RegistrationNumber: vehRegistration.String,
			}
		}
	}

	return v, nil
}

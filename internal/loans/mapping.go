package loans

import (
	"net/url"

	"github.com/lendcore/veriflow/pkg/query"
	"github.com/lendcore/veriflow/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "loan_applications", "la").
	Project("id", "ID").
	Project("applicant_first_name", "ApplicantFirstName").
	Project("applicant_last_name", "ApplicantLastName").
	Project("amount", "Amount").
	Project("purpose", "Purpose").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// sortKeys is the allow-list of client-controllable sort fields.
var sortKeys = []string{"Amount", "Status", "CreatedAt", "UpdatedAt"}

// Filters contains optional filtering criteria for loan application queries.
// Nil fields are ignored.
type Filters struct {
	Status        *string `json:"status,omitempty"`
	ApplicantName *string `json:"applicant_name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("ApplicantLastName", f.ApplicantName)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if n := values.Get("applicant_name"); n != "" {
		f.ApplicantName = &n
	}

	return f
}

func scanLoan(s repository.Scanner) (LoanApplication, error) {
	var l LoanApplication
	err := s.Scan(
		&l.ID,
		&l.ApplicantFirstName,
		&l.ApplicantLastName,
		&l.Amount,
		&l.Purpose,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

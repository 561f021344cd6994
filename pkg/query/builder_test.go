package query_test

import (
	"testing"
	"time"

	"github.com/lendcore/veriflow/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.
		NewProjectionMap("public", "verifications", "v").
		Project("id", "ID").
		Project("status", "Status").
		Project("remarks", "Remarks").
		Project("verification_date", "VerificationDate").
		Project("deleted_at", "DeletedAt")
}

func TestBuildNoConditions(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).Build()

	want := "SELECT v.id, v.status, v.remarks, v.verification_date, v.deleted_at FROM public.verifications v"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("got %d args, want 0", len(args))
	}
}

func TestParameterNumbering(t *testing.T) {
	status := "PENDING"
	search := "corner"

	sql, args := query.
		NewBuilder(testProjection()).
		WhereEquals("Status", &status).
		WhereContains("Remarks", &search).
		WhereNull("DeletedAt").
		Build()

	want := "SELECT v.id, v.status, v.remarks, v.verification_date, v.deleted_at " +
		"FROM public.verifications v " +
		"WHERE v.status = $1 AND v.remarks ILIKE $2 AND v.deleted_at IS NULL"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Fatalf("got %d args, want 2", len(args))
	}
	if args[1] != "%corner%" {
		t.Errorf("got %v, want %%corner%%", args[1])
	}
}

func TestNilFiltersAreNoOps(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection()).
		WhereEquals("Status", (*string)(nil)).
		WhereContains("Remarks", nil).
		WhereOnOrAfter("VerificationDate", nil).
		Build()

	if len(args) != 0 {
		t.Errorf("got %d args, want 0", len(args))
	}
	if want := "SELECT v.id, v.status, v.remarks, v.verification_date, v.deleted_at FROM public.verifications v"; sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

func TestDateRange(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	sql, args := query.
		NewBuilder(testProjection()).
		WhereOnOrAfter("VerificationDate", &from).
		WhereOnOrBefore("VerificationDate", &to).
		BuildCount()

	want := "SELECT COUNT(*) FROM public.verifications v " +
		"WHERE v.verification_date >= $1 AND v.verification_date <= $2"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("got %d args, want 2", len(args))
	}
}

func TestBuildPage(t *testing.T) {
	sql, _ := query.
		NewBuilder(testProjection(), query.SortField{Field: "VerificationDate", Descending: true}).
		BuildPage(3, 20)

	want := "SELECT v.id, v.status, v.remarks, v.verification_date, v.deleted_at " +
		"FROM public.verifications v ORDER BY v.verification_date DESC LIMIT 20 OFFSET 40"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

func TestOrderByOverridesDefault(t *testing.T) {
	sql, _ := query.
		NewBuilder(testProjection(), query.SortField{Field: "VerificationDate", Descending: true}).
		OrderByFields([]query.SortField{{Field: "Status"}}).
		Build()

	want := "SELECT v.id, v.status, v.remarks, v.verification_date, v.deleted_at " +
		"FROM public.verifications v ORDER BY v.status ASC"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc")

	want := "SELECT v.id, v.status, v.remarks, v.verification_date, v.deleted_at " +
		"FROM public.verifications v WHERE v.id = $1"
	if sql != want {
		t.Errorf("got %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("got args %v, want [abc]", args)
	}
}

func TestJoinQualifiesSubsequentColumns(t *testing.T) {
	p := query.
		NewProjectionMap("public", "verifications", "v").
		Project("id", "ID").
		Join("public", "verification_vehicles", "vv", "LEFT JOIN", "vv.verification_id = v.id").
		Project("make", "VehicleMake")

	if got := p.Column("VehicleMake"); got != "vv.make" {
		t.Errorf("got %q, want vv.make", got)
	}

	want := "public.verifications v LEFT JOIN public.verification_vehicles vv ON vv.verification_id = v.id"
	if got := p.From(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "status", []query.SortField{{Field: "status"}}},
		{
			"mixed directions",
			"type,-created_at",
			[]query.SortField{{Field: "type"}, {Field: "created_at", Descending: true}},
		},
		{
			"whitespace tolerated",
			" status , -type ",
			[]query.SortField{{Field: "status"}, {Field: "type", Descending: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d fields, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRestrictSort(t *testing.T) {
	fields := []query.SortField{
		{Field: "Status"},
		{Field: "Password"},
		{Field: "CreatedAt", Descending: true},
	}

	got := query.RestrictSort(fields, "Status", "CreatedAt")
	if len(got) != 2 {
		t.Fatalf("got %d fields, want 2", len(got))
	}
	if got[0].Field != "Status" || got[1].Field != "CreatedAt" {
		t.Errorf("unexpected fields: %+v", got)
	}
}

package verifications_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/ability"
	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/internal/timeline"
	"github.com/lendcore/veriflow/internal/verifications"
	"github.com/lendcore/veriflow/pkg/pagination"
	"github.com/lendcore/veriflow/pkg/validation"
)

type emitterStub struct {
	events []timeline.Event
}

func (e *emitterStub) Emit(evt timeline.Event) {
	e.events = append(e.events, evt)
}

// arrayConverter admits []string arguments the way the postgres driver does
// for ANY($n) comparisons; everything else follows the default conversion.
type arrayConverter struct{}

func (arrayConverter) ConvertValue(v any) (driver.Value, error) {
	if s, ok := v.([]string); ok {
		return s, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

// asUUID matches any argument carrying a parseable UUID.
type asUUID struct{}

func (asUUID) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// within matches a timestamp argument close to the current time.
type within struct{ d time.Duration }

func (w within) Match(v driver.Value) bool {
	ts, ok := v.(time.Time)
	if !ok {
		return false
	}
	delta := time.Since(ts)
	return delta > -w.d && delta < w.d
}

func newVerificationSystem(t *testing.T) (verifications.System, sqlmock.Sqlmock, *emitterStub) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(arrayConverter{}))
	if err != nil {
		t.Fatalf("open mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	emitter := &emitterStub{}
	sys := verifications.New(
		db,
		ability.NewResolver(ability.DefaultRules()),
		emitter,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
	return sys, mock, emitter
}

func adminCaller() *identity.Caller {
	return &identity.Caller{Subject: "officer-1", Role: identity.RoleAdmin}
}

func residenceCreate(loanID uuid.UUID) verifications.CreateCommand {
	return verifications.CreateCommand{
		LoanApplicationID: loanID,
		Type:              "RESIDENCE",
		VerificationTime:  "10:30",
		Details: verifications.DetailPayload{
			Residence: &verifications.ResidenceDetail{
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

// residenceRow mirrors the full projection column order so the post-write
// re-read scans cleanly.
func residenceRow(id, loanID uuid.UUID, status string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "loan_application_id", "type", "status", "result", "remarks",
		"verification_date", "verification_time", "verified_by", "deleted_at",
		"created_at", "updated_at",
		"owner_first_name", "owner_last_name", "residence_type", "structure_type",
		"address_line1", "address_line2", "address_city", "address_state",
		"address_zip_code", "location_from_main",
		"business_name", "business_type", "sales_volume",
		"property_type", "property_address_line1", "property_address_line2",
		"property_address_city", "property_address_state", "property_address_zip_code",
		"make", "model", "vehicle_type", "engine_number", "chassis_number",
		"registration_number",
	}).AddRow(
		id.String(), loanID.String(), "RESIDENCE", status, true, "checked",
		now, "10:30", "officer-1", nil,
		now, now,
		"Ada", "Lovelace", "OWNED", "BUNGALOW",
		"12 Main St", "", "Springfield", "IL",
		"62701", "",
		nil, nil, nil,
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil, nil,
	)
}

func statusRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"status"}).AddRow(status)
}

const lockLoanStatus = `SELECT status FROM loan_applications WHERE id = $1 FOR UPDATE`

func TestCreatePersistsEnvelopeAndDetail(t *testing.T) {
	sys, mock, emitter := newVerificationSystem(t)
	loanID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockLoanStatus)).
		WithArgs(loanID).
		WillReturnRows(statusRow("PENDING_VERIFICATION"))
	mock.ExpectExec("INSERT INTO verifications").
		WithArgs(
			asUUID{}, loanID, "RESIDENCE", "PENDING", false, "",
			within{5 * time.Second}, "10:30", "officer-1",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The detail row carries its own generated key alongside the envelope
	// reference; both columns are populated on insert.
	mock.ExpectExec("INSERT INTO verification_residences").
		WithArgs(
			asUUID{}, asUUID{}, "Ada", "Lovelace", "OWNED", "BUNGALOW",
			"12 Main St", "", "Springfield", "IL", "62701", "",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(lockLoanStatus)).
		WithArgs(loanID).
		WillReturnRows(statusRow("PENDING_VERIFICATION"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*)")).
		WithArgs(loanID).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("PENDING", 1))
	mock.ExpectExec("UPDATE loan_applications").
		WithArgs("VERIFICATION_IN_PROGRESS", loanID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM public.verifications").
		WithArgs(asUUID{}).
		WillReturnRows(residenceRow(uuid.New(), loanID, "PENDING"))

	created, err := sys.Create(context.Background(), adminCaller(), residenceCreate(loanID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Type != verifications.TypeResidence {
		t.Errorf("got type %s", created.Type)
	}
	if _, ok := created.Details.(verifications.ResidenceDetail); !ok {
		t.Errorf("got detail %T, want ResidenceDetail", created.Details)
	}

	if len(emitter.events) != 1 || emitter.events[0].EventType != timeline.EventVerificationCreated {
		t.Errorf("got events %+v, want one verification.created", emitter.events)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateInvalidTouchesNothing(t *testing.T) {
	sys, mock, emitter := newVerificationSystem(t)

	cmd := residenceCreate(uuid.New())
	cmd.Details.Residence.OwnerFirstName = ""

	_, err := sys.Create(context.Background(), adminCaller(), cmd)

	var fieldErrs validation.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("got %v, want field errors", err)
	}
	if fieldErrs["details.owner_first_name"] != validation.KeyRequired {
		t.Errorf("got %v", fieldErrs)
	}

	if len(emitter.events) != 0 {
		t.Errorf("rejected create emitted events: %+v", emitter.events)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("rejected create reached the database: %v", err)
	}
}

func TestUpdateTerminalTransitionStampsDate(t *testing.T) {
	sys, mock, emitter := newVerificationSystem(t)
	verificationID := uuid.New()
	loanID := uuid.New()

	completed := "COMPLETED"
	stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	cmd := verifications.UpdateCommand{
		ID:               verificationID,
		Status:           &completed,
		VerificationDate: &stale,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT loan_application_id, type, status")).
		WithArgs(verificationID).
		WillReturnRows(sqlmock.
			NewRows([]string{"loan_application_id", "type", "status"}).
			AddRow(loanID.String(), "RESIDENCE", "PENDING"))
	// The transition into COMPLETED overrides the caller-supplied date with
	// the current time.
	mock.ExpectExec("UPDATE verifications SET").
		WithArgs("COMPLETED", nil, nil, within{5 * time.Second}, nil, verificationID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(lockLoanStatus)).
		WithArgs(loanID).
		WillReturnRows(statusRow("VERIFICATION_IN_PROGRESS"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*)")).
		WithArgs(loanID).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("COMPLETED", 1))
	mock.ExpectExec("UPDATE loan_applications").
		WithArgs("VERIFICATION_COMPLETED", loanID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM public.verifications").
		WithArgs(verificationID).
		WillReturnRows(residenceRow(verificationID, loanID, "COMPLETED"))

	updated, err := sys.Update(context.Background(), adminCaller(), cmd)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != verifications.StatusCompleted {
		t.Errorf("got status %s", updated.Status)
	}

	if len(emitter.events) != 1 || emitter.events[0].EventType != timeline.EventVerificationUpdated {
		t.Errorf("got events %+v, want one verification.updated", emitter.events)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteKeepsDetailAndResetsLoan(t *testing.T) {
	sys, mock, emitter := newVerificationSystem(t)
	verificationID := uuid.New()
	loanID := uuid.New()

	// Ordered expectations: the delete flow stamps the envelope and resets
	// the loan, and runs no statements against the detail tables.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT loan_application_id")).
		WithArgs(verificationID).
		WillReturnRows(sqlmock.NewRows([]string{"loan_application_id"}).AddRow(loanID.String()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE verifications SET deleted_at = now(), updated_at = now() WHERE id = $1")).
		WithArgs(verificationID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(lockLoanStatus)).
		WithArgs(loanID).
		WillReturnRows(statusRow("VERIFICATION_IN_PROGRESS"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*)")).
		WithArgs(loanID).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}))
	mock.ExpectExec("UPDATE loan_applications").
		WithArgs("PENDING_VERIFICATION", loanID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := sys.Delete(context.Background(), adminCaller(), verificationID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(emitter.events) != 1 || emitter.events[0].EventType != timeline.EventVerificationDeleted {
		t.Errorf("got events %+v, want one verification.deleted", emitter.events)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

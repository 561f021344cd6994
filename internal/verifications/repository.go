package verifications

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/ability"
	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/internal/loans"
	"github.com/lendcore/veriflow/internal/timeline"
	"github.com/lendcore/veriflow/pkg/pagination"
	"github.com/lendcore/veriflow/pkg/query"
	"github.com/lendcore/veriflow/pkg/repository"
)

type repo struct {
	db         *sql.DB
	ability    *ability.Resolver
	timeline   timeline.Emitter
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a verification repository implementing the System interface.
func New(
	db *sql.DB,
	resolver *ability.Resolver,
	emitter timeline.Emitter,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		ability:    resolver,
		timeline:   emitter,
		logger:     logger.With("system", "verifications"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.ability, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	caller *identity.Caller,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Verification], error) {
	if !r.ability.Can(caller, ability.ActionRead, ability.SubjectVerification) {
		return nil, ErrForbidden
	}

	page.Normalize(r.pagination)
	page.Sort = restrictSort(page.Sort)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereNull("DeletedAt").
		WhereSearch(page.Search, searchFields...)

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryValue[int](ctx, r.db, countSQL, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("count verifications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanVerification)
	if err != nil {
		return nil, fmt.Errorf("query verifications: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, caller *identity.Caller, id uuid.UUID) (*Verification, error) {
	if !r.ability.Can(caller, ability.ActionRead, ability.SubjectVerification) {
		return nil, ErrForbidden
	}
	return r.find(ctx, r.db, id)
}

// find loads an active verification without a capability gate. Soft-deleted
// records read as not found.
func (r *repo) find(ctx context.Context, q repository.Querier, id uuid.UUID) (*Verification, error) {
	sqlText, args := query.
		NewBuilder(projection).
		WhereEquals("ID", id).
		WhereNull("DeletedAt").
		BuildSingleOrNull()

	v, err := repository.QueryOne(ctx, q, sqlText, args, scanVerification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (r *repo) Create(ctx context.Context, caller *identity.Caller, cmd CreateCommand) (*Verification, error) {
	if !r.ability.Can(caller, ability.ActionCreate, ability.SubjectVerification) {
		return nil, ErrForbidden
	}
	if !r.ability.Can(caller, ability.ActionRead, ability.SubjectLoanApplication) {
		return nil, ErrForbidden
	}

	if errs := validateCreate(cmd); errs != nil {
		return nil, errs
	}

	typ, _ := ParseType(cmd.Type)
	detail := cmd.Details.For(typ)

	status := StatusPending
	if cmd.Status != nil {
		status, _ = ParseStatus(*cmd.Status)
	}

	result := false
	if cmd.Result != nil {
		result = *cmd.Result
	}

	verificationDate := time.Now().UTC()
	if cmd.VerificationDate != nil {
		verificationDate = *cmd.VerificationDate
	}

	id := uuid.New()

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		// Lock the loan row for the whole workflow; concurrent mutations of
		// the same loan's verification set serialize here.
		if _, err := loans.StatusForUpdate(ctx, tx, cmd.LoanApplicationID); err != nil {
			return struct{}{}, err
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			`INSERT INTO verifications(id, loan_application_id, type, status, result, remarks, verification_date, verification_time, verified_by)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			id, cmd.LoanApplicationID, typ, status, result,
			cmd.Remarks, verificationDate, cmd.VerificationTime, caller.Subject,
		); err != nil {
			return struct{}{}, err
		}

		if err := insertDetail(ctx, tx, id, typ, detail); err != nil {
			return struct{}{}, err
		}

		return struct{}{}, projectLoanStatus(ctx, tx, cmd.LoanApplicationID)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("verification created", "id", id, "type", typ, "loan_application_id", cmd.LoanApplicationID)

	r.timeline.Emit(timeline.NewEvent(
		caller,
		timeline.EventVerificationCreated,
		cmd.LoanApplicationID,
		&id,
		cmd.Remarks,
	))

	return r.find(ctx, r.db, id)
}

func (r *repo) Update(ctx context.Context, caller *identity.Caller, cmd UpdateCommand) (*Verification, error) {
	if !r.ability.Can(caller, ability.ActionUpdate, ability.SubjectVerification, cmd.patchedFields()...) {
		return nil, ErrForbidden
	}

	if errs := validateUpdate(cmd); errs != nil {
		return nil, errs
	}

	var loanID uuid.UUID

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var storedType Type
		var oldStatus Status

		err := tx.QueryRowContext(
			ctx,
			`SELECT loan_application_id, type, status
			 FROM verifications
			 WHERE id = $1 AND deleted_at IS NULL
			 FOR UPDATE`,
			cmd.ID,
		).Scan(&loanID, &storedType, &oldStatus)
		if err != nil {
			return struct{}{}, err
		}

		newStatus := oldStatus
		if cmd.Status != nil {
			newStatus, _ = ParseStatus(*cmd.Status)
		}

		// A transition into a terminal status stamps the verification date
		// to now, overriding any caller-supplied value.
		verificationDate := cmd.VerificationDate
		if newStatus != oldStatus && newStatus.Terminal() {
			stamped := time.Now().UTC()
			verificationDate = &stamped
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			`UPDATE verifications SET
				status = COALESCE($1, status),
				result = COALESCE($2, result),
				remarks = COALESCE($3, remarks),
				verification_date = COALESCE($4, verification_date),
				verification_time = COALESCE($5, verification_time),
				updated_at = now()
			 WHERE id = $6`,
			cmd.Status, cmd.Result, cmd.Remarks,
			verificationDate, cmd.VerificationTime, cmd.ID,
		); err != nil {
			return struct{}{}, err
		}

		if err := patchDetail(ctx, tx, cmd.ID, storedType, cmd.Details); err != nil {
			return struct{}{}, err
		}

		if newStatus != oldStatus {
			return struct{}{}, projectLoanStatus(ctx, tx, loanID)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("verification updated", "id", cmd.ID, "loan_application_id", loanID)

	remarks := ""
	if cmd.Remarks != nil {
		remarks = *cmd.Remarks
	}
	r.timeline.Emit(timeline.NewEvent(
		caller,
		timeline.EventVerificationUpdated,
		loanID,
		&cmd.ID,
		remarks,
	))

	return r.find(ctx, r.db, cmd.ID)
}

func (r *repo) Delete(ctx context.Context, caller *identity.Caller, id uuid.UUID) error {
	if !r.ability.Can(caller, ability.ActionDelete, ability.SubjectVerification) {
		return ErrForbidden
	}

	var loanID uuid.UUID

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := tx.QueryRowContext(
			ctx,
			`SELECT loan_application_id
			 FROM verifications
			 WHERE id = $1 AND deleted_at IS NULL
			 FOR UPDATE`,
			id,
		).Scan(&loanID)
		if err != nil {
			return struct{}{}, err
		}

		// Soft delete: only the envelope is stamped. The detail row stays
		// untouched so the audit trail survives.
		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE verifications SET deleted_at = now(), updated_at = now() WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}

		// Lock the loan row, then count survivors in the same transaction
		// so two concurrent deletes cannot both observe "zero remaining".
		if _, err := loans.StatusForUpdate(ctx, tx, loanID); err != nil {
			return struct{}{}, err
		}

		tally, err := tallyForLoan(ctx, tx, loanID)
		if err != nil {
			return struct{}{}, err
		}

		if tally.Active() == 0 {
			if _, err := loans.ResetIfVerificationDriven(ctx, tx, loanID); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("verification deleted", "id", id, "loan_application_id", loanID)

	r.timeline.Emit(timeline.NewEvent(
		caller,
		timeline.EventVerificationDeleted,
		loanID,
		&id,
		"",
	))

	return nil
}

// insertDetail writes the type-specific row. A nil or mismatched detail at
// this point is an invariant violation: validation should have rejected it,
// so the transaction aborts rather than skipping the write.
func insertDetail(ctx context.Context, tx *sql.Tx, id uuid.UUID, typ Type, detail Detail) error {
	if detail == nil || detail.DetailType() != typ {
		return fmt.Errorf("%w: type %s with detail %T", ErrInvariant, typ, detail)
	}

	switch d := detail.(type) {
	case ResidenceDetail:
		return repository.ExecExpectOne(
			ctx, tx,
			`INSERT INTO verification_residences(id, verification_id, owner_first_name, owner_last_name, residence_type, structure_type, address_line1, address_line2, address_city, address_state, address_zip_code, location_from_main)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			uuid.New(), id, d.OwnerFirstName, d.OwnerLastName, d.ResidenceType,
			d.StructureType, d.AddressLine1, d.AddressLine2, d.AddressCity,
			d.AddressState, d.AddressZipCode, d.LocationFromMain,
		)
	case BusinessDetail:
		return repository.ExecExpectOne(
			ctx, tx,
			`INSERT INTO verification_businesses(id, verification_id, business_name, business_type, sales_volume)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), id, d.BusinessName, d.BusinessType, d.SalesVolume,
		)
	case PropertyDetail:
		return repository.ExecExpectOne(
			ctx, tx,
			`INSERT INTO verification_properties(id, verification_id, property_type, address_line1, address_line2, address_city, address_state, address_zip_code)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New(), id, d.PropertyType, d.AddressLine1, d.AddressLine2,
			d.AddressCity, d.AddressState, d.AddressZipCode,
		)
	case VehicleDetail:
		return repository.ExecExpectOne(
			ctx, tx,
			`INSERT INTO verification_vehicles(id, verification_id, make, model, vehicle_type, engine_number, chassis_number, registration_number)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New(), id, d.Make, d.Model, d.VehicleType, d.EngineNumber,
			d.ChassisNumber, d.RegistrationNumber,
		)
	}

	return fmt.Errorf("%w: unhandled detail %T", ErrInvariant, detail)
}

// patchDetail applies the detail patch matching the record's stored type.
// Patches for other types are ignored.
func patchDetail(ctx context.Context, tx *sql.Tx, id uuid.UUID, storedType Type, patch DetailPatchPayload) error {
	switch storedType {
	case TypeResidence:
		if p := patch.Residence; p != nil {
			return repository.ExecExpectOne(
				ctx, tx,
				`UPDATE verification_residences SET
					owner_first_name = COALESCE($1, owner_first_name),
					owner_last_name = COALESCE($2, owner_last_name),
					residence_type = COALESCE($3, residence_type),
					structure_type = COALESCE($4, structure_type),
					address_line1 = COALESCE($5, address_line1),
					address_line2 = COALESCE($6, address_line2),
					address_city = COALESCE($7, address_city),
					address_state = COALESCE($8, address_state),
					address_zip_code = COALESCE($9, address_zip_code),
					location_from_main = COALESCE($10, location_from_main)
				 WHERE verification_id = $11`,
				p.OwnerFirstName, p.OwnerLastName, p.ResidenceType, p.StructureType,
				p.AddressLine1, p.AddressLine2, p.AddressCity, p.AddressState,
				p.AddressZipCode, p.LocationFromMain, id,
			)
		}
	case TypeBusiness:
		if p := patch.Business; p != nil {
			return repository.ExecExpectOne(
				ctx, tx,
				`UPDATE verification_businesses SET
					business_name = COALESCE($1, business_name),
					business_type = COALESCE($2, business_type),
					sales_volume = COALESCE($3, sales_volume)
				 WHERE verification_id = $4`,
				p.BusinessName, p.BusinessType, p.SalesVolume, id,
			)
		}
	case TypeProperty:
		if p := patch.Property; p != nil {
			return repository.ExecExpectOne(
				ctx, tx,
				`UPDATE verification_properties SET
					property_type = COALESCE($1, property_type),
					address_line1 = COALESCE($2, address_line1),
					address_line2 = COALESCE($3, address_line2),
					address_city = COALESCE($4, address_city),
					address_state = COALESCE($5, address_state),
					address_zip_code = COALESCE($6, address_zip_code)
				 WHERE verification_id = $7`,
				p.PropertyType, p.AddressLine1, p.AddressLine2,
				p.AddressCity, p.AddressState, p.AddressZipCode, id,
			)
		}
	case TypeVehicle:
		if p := patch.Vehicle; p != nil {
			return repository.ExecExpectOne(
				ctx, tx,
				`UPDATE verification_vehicles SET
					make = COALESCE($1, make),
					model = COALESCE($2, model),
					vehicle_type = COALESCE($3, vehicle_type),
					engine_number = COALESCE($4, engine_number),
					chassis_number = COALESCE($5, chassis_number),
					registration_number = COALESCE($6, registration_number)
				 WHERE verification_id = $7`,
				p.Make, p.Model, p.VehicleType, p.EngineNumber,
				p.ChassisNumber, p.RegistrationNumber, id,
			)
		}
	}

	return nil
}

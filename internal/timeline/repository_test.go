package timeline_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/ability"
	"github.com/lendcore/veriflow/internal/config"
	"github.com/lendcore/veriflow/internal/timeline"
	"github.com/lendcore/veriflow/pkg/lifecycle"
	"github.com/lendcore/veriflow/pkg/pagination"
)

func newTimelineSystem(t *testing.T) (timeline.System, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sys := timeline.New(
		db,
		ability.NewResolver(ability.DefaultRules()),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		config.TimelineConfig{BufferSize: 4, DrainTimeout: "1s"},
	)
	return sys, mock
}

func TestEmitWritesEventBeforeShutdown(t *testing.T) {
	sys, mock := newTimelineSystem(t)

	mock.ExpectExec("INSERT INTO timeline_events").
		WillReturnResult(sqlmock.NewResult(0, 1))

	lc := lifecycle.New()
	sys.Start(lc)

	sys.Emit(timeline.NewEvent(nil, timeline.EventVerificationCreated, uuid.New(), nil, "site visit"))

	// Shutdown drains the buffer, so the insert has run by the time it returns.
	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestEmitAfterShutdownDropsEvent(t *testing.T) {
	sys, mock := newTimelineSystem(t)

	lc := lifecycle.New()
	sys.Start(lc)

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	// A request finishing its drain in the HTTP server's shutdown hook can
	// still emit after the writer pool has stopped; the event is dropped
	// rather than failing the committed write.
	sys.Emit(timeline.NewEvent(nil, timeline.EventVerificationCreated, uuid.New(), nil, ""))

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

package timeline

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lendcore/veriflow/internal/ability"
	"github.com/lendcore/veriflow/internal/config"
	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/pkg/lifecycle"
	"github.com/lendcore/veriflow/pkg/pagination"
	"github.com/lendcore/veriflow/pkg/query"
	"github.com/lendcore/veriflow/pkg/repository"
)

const writers = 2

// writeTimeout bounds each event insert once the request context is gone.
const writeTimeout = 5 * time.Second

type repo struct {
	db           *sql.DB
	ability      *ability.Resolver
	logger       *slog.Logger
	pagination   pagination.Config
	events       chan Event
	drainTimeout time.Duration
	group        *errgroup.Group

	mu     sync.Mutex
	closed bool
}

// New creates a timeline repository implementing the System interface.
func New(
	db *sql.DB,
	resolver *ability.Resolver,
	logger *slog.Logger,
	pagination pagination.Config,
	cfg config.TimelineConfig,
) System {
	return &repo{
		db:           db,
		ability:      resolver,
		logger:       logger.With("system", "timeline"),
		pagination:   pagination,
		events:       make(chan Event, cfg.BufferSize),
		drainTimeout: cfg.DrainTimeoutDuration(),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Start(lc *lifecycle.Coordinator) {
	r.group = &errgroup.Group{}
	for range writers {
		r.group.Go(r.write)
	}

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		r.closeEvents()

		done := make(chan struct{})
		go func() {
			if err := r.group.Wait(); err != nil {
				r.logger.Error("timeline writer failed during drain", "error", err)
			}
			close(done)
		}()

		select {
		case <-done:
			r.logger.Info("timeline drained")
		case <-time.After(r.drainTimeout):
			r.logger.Warn("timeline drain timeout, events lost", "pending", len(r.events))
		}
	})
}

// closeEvents marks the emitter closed before closing the channel so a
// concurrent Emit from a request still draining in the HTTP server's
// shutdown hook drops the event instead of panicking on a closed channel.
func (r *repo) closeEvents() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.events)
}

func (r *repo) Emit(evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		r.logger.Warn(
			"timeline closed, dropping event",
			"event_type", evt.EventType,
			"loan_application_id", evt.LoanApplicationID,
		)
		return
	}

	select {
	case r.events <- evt:
	default:
		r.logger.Warn(
			"timeline buffer full, dropping event",
			"event_type", evt.EventType,
			"loan_application_id", evt.LoanApplicationID,
		)
	}
}

func (r *repo) write() error {
	for evt := range r.events {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := repository.ExecExpectOne(
			ctx, r.db,
			`INSERT INTO timeline_events(id, loan_application_id, verification_id, event_type, actor_id, actor_role, remarks, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			evt.ID,
			evt.LoanApplicationID,
			evt.VerificationID,
			evt.EventType,
			evt.ActorID,
			evt.ActorRole,
			evt.Remarks,
			evt.CreatedAt,
		)
		cancel()

		if err != nil {
			r.logger.Warn(
				"timeline event write failed",
				"event_type", evt.EventType,
				"loan_application_id", evt.LoanApplicationID,
				"error", err,
			)
		}
	}
	return nil
}

func (r *repo) List(
	ctx context.Context,
	caller *identity.Caller,
	page pagination.PageRequest,
	loanApplicationID uuid.UUID,
) (*pagination.PageResult[Event], error) {
	if !r.ability.Can(caller, ability.ActionRead, ability.SubjectTimeline) {
		return nil, ErrForbidden
	}

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("LoanApplicationID", loanApplicationID)

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryValue[int](ctx, r.db, countSQL, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("count timeline events: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	events, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("query timeline events: %w", err)
	}

	result := pagination.NewPageResult(events, total, page.Page, page.PageSize)
	return &result, nil
}

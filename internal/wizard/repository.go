package wizard

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/lendcore/veriflow/internal/ability"
	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/internal/loans"
	"github.com/lendcore/veriflow/internal/timeline"
	"github.com/lendcore/veriflow/pkg/repository"
)

const sessionColumns = `id, status, transcript, draft, loan_application_id, created_by, created_at, updated_at`

type repo struct {
	db      *sql.DB
	ability *ability.Resolver
	rt      *Runtime
	logger  *slog.Logger
}

// New creates a wizard session repository implementing the System interface.
func New(
	db *sql.DB,
	resolver *ability.Resolver,
	agentCfg gaconfig.AgentConfig,
	loanSystem loans.System,
	emitter timeline.Emitter,
	logger *slog.Logger,
) System {
	scoped := logger.With("system", "wizard")
	return &repo{
		db:      db,
		ability: resolver,
		rt: &Runtime{
			Agent:    agentCfg,
			Loans:    loanSystem,
			Timeline: emitter,
			Logger:   scoped,
		},
		logger: scoped,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Create(ctx context.Context, caller *identity.Caller) (*Session, error) {
	if !r.ability.Can(caller, ability.ActionCreate, ability.SubjectWizardSession) {
		return nil, ErrForbidden
	}

	now := time.Now().UTC()
	session := Session{
		ID:        uuid.New(),
		Status:    SessionActive,
		CreatedBy: caller.Subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
	session.Append(
		MessageRoleAssistant,
		"Hi! I can help you apply for a loan. What is your full name, how much would you like to borrow, and what is the loan for?",
	)

	if err := r.insert(ctx, &session); err != nil {
		return nil, fmt.Errorf("insert wizard session: %w", err)
	}

	r.logger.Info("wizard session created", "id", session.ID, "created_by", session.CreatedBy)
	return &session, nil
}

func (r *repo) Find(ctx context.Context, caller *identity.Caller, id uuid.UUID) (*Session, error) {
	if !r.ability.Can(caller, ability.ActionRead, ability.SubjectWizardSession) {
		return nil, ErrForbidden
	}
	return r.find(ctx, id)
}

func (r *repo) Message(
	ctx context.Context,
	caller *identity.Caller,
	id uuid.UUID,
	content string,
) (*Session, error) {
	if !r.ability.Can(caller, ability.ActionUpdate, ability.SubjectWizardSession) {
		return nil, ErrForbidden
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content required", ErrInvalidInput)
	}

	session, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Status != SessionActive {
		return nil, ErrSessionClosed
	}

	session.Append(MessageRoleUser, content)

	updated, err := RunTurn(ctx, r.rt, caller, session)
	if err != nil {
		return nil, fmt.Errorf("wizard turn: %w", err)
	}

	if err := r.save(ctx, updated); err != nil {
		return nil, fmt.Errorf("save wizard session: %w", err)
	}

	return updated, nil
}

func (r *repo) find(ctx context.Context, id uuid.UUID) (*Session, error) {
	q := fmt.Sprintf("SELECT %s FROM wizard_sessions WHERE id = $1", sessionColumns)

	session, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanSession)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &session, nil
}

func (r *repo) insert(ctx context.Context, session *Session) error {
	transcript, draft, err := encodeSession(session)
	if err != nil {
		return err
	}

	return repository.ExecExpectOne(
		ctx, r.db,
		`INSERT INTO wizard_sessions(id, status, transcript, draft, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		session.ID, session.Status, transcript, draft,
		session.CreatedBy, session.CreatedAt, session.UpdatedAt,
	)
}

func (r *repo) save(ctx context.Context, session *Session) error {
	transcript, draft, err := encodeSession(session)
	if err != nil {
		return err
	}

	session.UpdatedAt = time.Now().UTC()

	err = repository.ExecExpectOne(
		ctx, r.db,
		`UPDATE wizard_sessions
		 SET status = $1, transcript = $2, draft = $3, loan_application_id = $4, updated_at = $5
		 WHERE id = $6`,
		session.Status, transcript, draft,
		session.LoanApplicationID, session.UpdatedAt, session.ID,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func encodeSession(session *Session) (transcript, draft []byte, err error) {
	transcript, err = json.Marshal(session.Transcript)
	if err != nil {
		return nil, nil, fmt.Errorf("serialize transcript: %w", err)
	}

	draft, err = json.Marshal(session.Draft)
	if err != nil {
		return nil, nil, fmt.Errorf("serialize draft: %w", err)
	}

	return transcript, draft, nil
}

func scanSession(s repository.Scanner) (Session, error) {
	var (
		session    Session
		transcript []byte
		draft      []byte
	)

	err := s.Scan(
		&session.ID,
		&session.Status,
		&transcript,
		&draft,
		&session.LoanApplicationID,
		&session.CreatedBy,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return session, err
	}

	if err := json.Unmarshal(transcript, &session.Transcript); err != nil {
		return session, fmt.Errorf("parse transcript: %w", err)
	}

	if err := json.Unmarshal(draft, &session.Draft); err != nil {
		return session, fmt.Errorf("parse draft: %w", err)
	}

	return session, nil
}

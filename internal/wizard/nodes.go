package wizard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/lendcore/veriflow/internal/loans"
	"github.com/lendcore/veriflow/internal/timeline"
	"github.com/lendcore/veriflow/pkg/formatting"
)

// Runtime bundles the dependencies that wizard nodes require. It is
// constructed by higher-level composition code from Infrastructure and
// Domain systems.
type Runtime struct {
	Agent    gaconfig.AgentConfig
	Loans    loans.System
	Timeline timeline.Emitter
	Logger   *slog.Logger
}

// InterpretNode returns a state node that extracts loan application fields
// from the transcript. It sends the extraction prompt to the chat model,
// parses the returned draft fragment, and merges it into the session draft.
func InterpretNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		session, err := extractSession(s)
		if err != nil {
			return s, fmt.Errorf("interpret: %w", err)
		}

		parsed, err := interpretTranscript(ctx, rt, session)
		if err != nil {
			return s, fmt.Errorf("interpret: %w", err)
		}

		session.Draft.Merge(parsed)

		rt.Logger.InfoContext(
			ctx, "interpret node complete",
			"session_id", session.ID,
			"missing", session.Draft.Missing(),
		)

		s = s.Set(KeySession, *session)
		return s, nil
	})
}

// FinalizeNode returns a state node that creates the loan application from a
// completed draft, marks the session completed, and records the completion on
// the audit timeline. It runs only when the draft-complete edge condition
// holds.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		session, err := extractSession(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		caller, err := extractCaller(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		loan, err := rt.Loans.Create(ctx, caller, loans.CreateCommand{
			ApplicantFirstName: session.Draft.ApplicantFirstName,
			ApplicantLastName:  session.Draft.ApplicantLastName,
			Amount:             *session.Draft.Amount,
			Purpose:            session.Draft.Purpose,
		})
		if err != nil {
			return s, fmt.Errorf("finalize: create loan application: %w", err)
		}

		session.Status = SessionCompleted
		session.LoanApplicationID = &loan.ID

		rt.Timeline.Emit(timeline.NewEvent(
			caller,
			timeline.EventWizardCompleted,
			loan.ID,
			nil,
			"loan application created from intake session",
		))

		rt.Logger.InfoContext(
			ctx, "finalize node complete",
			"session_id", session.ID,
			"loan_application_id", loan.ID,
		)

		s = s.Set(KeySession, *session)
		return s, nil
	})
}

// RespondNode returns the exit node that composes the assistant's reply for
// the turn. Completed sessions get a deterministic confirmation; active
// sessions get a chat inference asking for the missing draft fields.
func RespondNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		session, err := extractSession(s)
		if err != nil {
			return s, fmt.Errorf("respond: %w", err)
		}

		var reply string
		if session.Status == SessionCompleted {
			reply = confirmationMessage(session)
		} else {
			reply, err = askForMissing(ctx, rt, session)
			if err != nil {
				return s, fmt.Errorf("respond: %w", err)
			}
		}

		session.Append(MessageRoleAssistant, reply)

		rt.Logger.InfoContext(
			ctx, "respond node complete",
			"session_id", session.ID,
			"status", session.Status,
		)

		s = s.Set(KeySession, *session)
		return s, nil
	})
}

func interpretTranscript(ctx context.Context, rt *Runtime, session *Session) (Draft, error) {
	prompt, err := composeInterpretPrompt(session)
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %w", ErrAgentFailed, err)
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return Draft{}, fmt.Errorf("%w: create agent: %w", ErrAgentFailed, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return Draft{}, fmt.Errorf("%w: chat call: %w", ErrAgentFailed, err)
	}

	parsed, err := formatting.Parse[Draft](resp.Content())
	if err != nil {
		return Draft{}, fmt.Errorf("%w: parse response: %w", ErrAgentFailed, err)
	}

	return parsed, nil
}

func askForMissing(ctx context.Context, rt *Runtime, session *Session) (string, error) {
	prompt, err := composeRespondPrompt(session)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAgentFailed, err)
	}

	a, err := agent.New(&rt.Agent)
	if err != nil {
		return "", fmt.Errorf("%w: create agent: %w", ErrAgentFailed, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: chat call: %w", ErrAgentFailed, err)
	}

	return resp.Content(), nil
}

func confirmationMessage(session *Session) string {
	return fmt.Sprintf(
		"Thanks, %s. Your application for %.2f has been submitted and is pending verification.",
		session.Draft.ApplicantFirstName,
		*session.Draft.Amount,
	)
}

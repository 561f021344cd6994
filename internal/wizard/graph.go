package wizard

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/lendcore/veriflow/internal/identity"
)

const (
	KeySession = "session"
	KeyCaller  = "caller"
)

// RunTurn executes one conversational turn for a session whose transcript
// already contains the new user message. It builds the turn graph
// (interpret → finalize? → respond), executes it, and returns the updated
// session from the final state.
func RunTurn(
	ctx context.Context,
	rt *Runtime,
	caller *identity.Caller,
	session *Session,
) (*Session, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeySession, *session)
	initialState = initialState.Set(KeyCaller, caller)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractSession(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("veriflow-wizard")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("interpret", InterpretNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("finalize", FinalizeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("respond", RespondNode(rt)); err != nil {
		return nil, err
	}

	// interpret → finalize (when the draft is complete)
	if err := graph.AddEdge("interpret", "finalize", draftComplete); err != nil {
		return nil, err
	}

	// interpret → respond (when fields are still missing)
	if err := graph.AddEdge("interpret", "respond", state.Not(draftComplete)); err != nil {
		return nil, err
	}

	// finalize → respond (unconditional)
	if err := graph.AddEdge("finalize", "respond", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("interpret"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("respond"); err != nil {
		return nil, err
	}

	return graph, nil
}

func draftComplete(s state.State) bool {
	val, ok := s.Get(KeySession)
	if !ok {
		return false
	}

	session, ok := val.(Session)
	if !ok {
		return false
	}

	return session.Status == SessionActive && session.Draft.Complete()
}

func extractSession(s state.State) (*Session, error) {
	val, ok := s.Get(KeySession)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeySession)
	}

	session, ok := val.(Session)
	if !ok {
		return nil, fmt.Errorf("%s is not Session", KeySession)
	}

	return &session, nil
}

func extractCaller(s state.State) (*identity.Caller, error) {
	val, ok := s.Get(KeyCaller)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyCaller)
	}

	caller, ok := val.(*identity.Caller)
	if !ok {
		return nil, fmt.Errorf("%s is not *identity.Caller", KeyCaller)
	}

	return caller, nil
}

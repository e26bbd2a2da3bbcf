package cli

import (
	"context"
	"fmt"

	"github.com/ledgerlab/bookledger/book"
	"github.com/ledgerlab/bookledger/persist"
	"github.com/ledgerlab/bookledger/scenario"
	"github.com/ledgerlab/bookledger/state"
)

// Session wires one command invocation together: the scenario, the
// dispatcher, the snapshot store, and the state loaded from it.
type Session struct {
	Scenario *scenario.Scenario
	Store    *state.Store
	State    state.State

	persist persist.Store
	closer  interface{ Close() error }
}

// OpenSession loads the scenario and the snapshot named by the global
// flags. A missing or outdated snapshot yields the initial state.
func (g *Globals) OpenSession(ctx context.Context) (*Session, error) {
	sc := scenario.Consulting()
	if g.Scenario != "" {
		loaded, err := scenario.LoadFile(g.Scenario)
		if err != nil {
			return nil, err
		}
		sc = loaded
	}

	session := &Session{
		Scenario: sc,
		Store:    state.New(sc.Chart()),
	}

	if g.DB != "" {
		store, err := persist.OpenSQLite(g.DB)
		if err != nil {
			return nil, err
		}
		session.persist = store
		session.closer = store
	} else {
		session.persist = persist.NewFileStore(g.Snapshot)
	}

	st, err := persist.LoadOrInitial(ctx, session.persist)
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	session.State = st

	return session, nil
}

// Close releases the underlying store, if it holds resources.
func (s *Session) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

// Dispatch applies one action to the session state.
func (s *Session) Dispatch(action state.Action) error {
	next, err := s.Store.Dispatch(s.State, action)
	if err != nil {
		return err
	}
	s.State = next
	return nil
}

// ResolveSolution returns a transaction's expected solution: scripted
// for the initial and adjusting stages, derived from the posted ledger
// for closing entries.
func (s *Session) ResolveSolution(id string) (scenario.Transaction, scenario.Stage, book.Solution, error) {
	txn, stage, ok := s.Scenario.Transaction(id)
	if !ok {
		return scenario.Transaction{}, "", nil, fmt.Errorf("unknown transaction %q", id)
	}

	if stage != scenario.StageClosing {
		return txn, stage, s.Scenario.Solution(txn.ID), nil
	}

	solution, err := book.DeriveClosingSolution(txn.Position, s.State.Posted, s.Scenario.Chart())
	if err != nil {
		return scenario.Transaction{}, "", nil, err
	}
	return txn, stage, solution, nil
}

// Save writes the session state back to the snapshot store.
func (s *Session) Save(ctx context.Context) error {
	return s.persist.Save(ctx, s.State)
}

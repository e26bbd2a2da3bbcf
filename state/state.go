// Package state owns the mutable ledger state and the single dispatch
// entry point through which all mutation flows. State is an immutable
// value: Dispatch returns a new State and never modifies its input, so
// callers can hold old snapshots safely.
package state

import (
	"golang.org/x/exp/slices"

	"github.com/ledgerlab/bookledger/book"
)

// SchemaVersion is the current snapshot schema version. Persistence
// collaborators must discard snapshots carrying any other version.
const SchemaVersion = 1

// DateLineID is the sentinel line id that targets a draft's entry-level
// date in an UpdateLine action.
const DateLineID = "entry-date"

// Draft is an in-progress journal entry for one transaction. A draft is
// created lazily on first line addition and becomes immutable once
// Posted is true.
type Draft struct {
	Date   string      `json:"date"`
	Lines  []book.Line `json:"lines"`
	Posted bool        `json:"posted"`
}

// clone returns a deep copy of the draft.
func (d Draft) clone() Draft {
	d.Lines = slices.Clone(d.Lines)
	return d
}

// State is the entire mutable state of the engine: per-transaction
// drafts plus the append-only posted-entry log.
type State struct {
	Drafts        map[string]Draft   `json:"draftEntries"`
	Posted        []book.PostedEntry `json:"postedEntries"`
	SchemaVersion int                `json:"schemaVersion"`
}

// Initial returns the empty initial state.
func Initial() State {
	return State{
		Drafts:        make(map[string]Draft),
		SchemaVersion: SchemaVersion,
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	drafts := make(map[string]Draft, len(s.Drafts))
	for id, draft := range s.Drafts {
		drafts[id] = draft.clone()
	}

	posted := make([]book.PostedEntry, len(s.Posted))
	for i, e := range s.Posted {
		e.Lines = slices.Clone(e.Lines)
		posted[i] = e
	}

	return State{Drafts: drafts, Posted: posted, SchemaVersion: s.SchemaVersion}
}

// Draft returns the draft for a transaction, if one exists.
func (s State) Draft(transactionID string) (Draft, bool) {
	d, ok := s.Drafts[transactionID]
	return d, ok
}

// IsPosted reports whether the transaction has been committed to the
// ledger log.
func (s State) IsPosted(transactionID string) bool {
	d, ok := s.Drafts[transactionID]
	return ok && d.Posted
}

// withDraft returns a copy of the state with one draft replaced. The
// drafts map is copied; unchanged drafts are shared.
func (s State) withDraft(transactionID string, draft Draft) State {
	drafts := make(map[string]Draft, len(s.Drafts)+1)
	for id, d := range s.Drafts {
		drafts[id] = d
	}
	drafts[transactionID] = draft
	s.Drafts = drafts
	return s
}

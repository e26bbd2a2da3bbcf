package state

import "github.com/ledgerlab/bookledger/book"

// Action is a request to transition the ledger state. The concrete
// action types below are the only implementations.
type Action interface {
	isAction()
}

// AddLine appends a blank line to the named draft, creating the draft
// if absent.
type AddLine struct {
	TransactionID string
}

// UpdateLine sets one field of one line of the named draft. Field is
// "account", "debit", or "credit"; with Field "date" and LineID equal
// to DateLineID it sets the draft's entry date instead. Values are
// parsed and validated at this boundary, so invalid input never reaches
// the core arithmetic.
type UpdateLine struct {
	TransactionID string
	LineID        string
	Field         string
	Value         string
}

// RemoveLine removes one line from the named draft.
type RemoveLine struct {
	TransactionID string
	LineID        string
}

// Post validates the named draft and, on success, marks it posted and
// appends a PostedEntry to the ledger log. Solution is the expected
// per-account aggregate; when empty, only the structural checks run.
// Date is a fallback used when the draft carries no date of its own.
type Post struct {
	TransactionID string
	IsAdjusting   bool
	IsClosing     bool
	Date          string
	Solution      book.Solution
}

// LoadSolution replaces the named draft's lines with lines synthesized
// from a solution: all debit accounts first, then all credit accounts,
// each side in the solution's account order.
type LoadSolution struct {
	TransactionID string
	Solution      book.Solution
	Date          string
}

// Reset replaces the entire state with the empty initial state.
type Reset struct{}

// LoadExternalState atomically replaces the entire state with a
// snapshot delivered by a persistence collaborator. It is a full
// replace, never a merge.
type LoadExternalState struct {
	Snapshot State
}

func (AddLine) isAction()           {}
func (UpdateLine) isAction()        {}
func (RemoveLine) isAction()        {}
func (Post) isAction()              {}
func (LoadSolution) isAction()      {}
func (Reset) isAction()             {}
func (LoadExternalState) isAction() {}

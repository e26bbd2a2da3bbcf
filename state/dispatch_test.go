package state

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/ledgerlab/bookledger/book"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	chart, err := book.NewChart([]book.Account{
		{Number: 101, Name: "Cash", Category: book.Assets, NormalBalance: book.DebitSide},
		{Number: 301, Name: "Common Stock", Category: book.Equity, NormalBalance: book.CreditSide},
		{Number: 320, Name: "Retained Earnings", Category: book.Equity, NormalBalance: book.CreditSide},
		{Number: 330, Name: "Dividends", Category: book.Equity, NormalBalance: book.DebitSide},
		{Number: 350, Name: "Income Summary", Category: book.Equity, NormalBalance: book.CreditSide},
		{Number: 401, Name: "Service Revenue", Category: book.Revenue, NormalBalance: book.CreditSide},
	}, book.Roles{Revenue: 401, IncomeSummary: 350, RetainedEarnings: 320, Dividends: 330})
	assert.NoError(t, err)
	return New(chart)
}

// dispatch applies an action that must succeed.
func dispatch(t *testing.T, store *Store, st State, action Action) State {
	t.Helper()
	next, err := store.Dispatch(st, action)
	assert.NoError(t, err)
	return next
}

// draftEntry builds a balanced two-line draft for T1.
func draftEntry(t *testing.T, store *Store, st State) State {
	t.Helper()
	st = dispatch(t, store, st, AddLine{TransactionID: "T1"})
	st = dispatch(t, store, st, AddLine{TransactionID: "T1"})
	lines := st.Drafts["T1"].Lines

	st = dispatch(t, store, st, UpdateLine{TransactionID: "T1", LineID: lines[0].ID, Field: "account", Value: "101"})
	st = dispatch(t, store, st, UpdateLine{TransactionID: "T1", LineID: lines[0].ID, Field: "debit", Value: "100"})
	st = dispatch(t, store, st, UpdateLine{TransactionID: "T1", LineID: lines[1].ID, Field: "account", Value: "301"})
	st = dispatch(t, store, st, UpdateLine{TransactionID: "T1", LineID: lines[1].ID, Field: "credit", Value: "100"})
	return st
}

func TestDispatch_AddLineCreatesDraft(t *testing.T) {
	store := testStore(t)
	st := dispatch(t, store, Initial(), AddLine{TransactionID: "T1"})

	draft, ok := st.Draft("T1")
	assert.True(t, ok)
	assert.Equal(t, 1, len(draft.Lines))
	assert.False(t, draft.Posted)
	assert.NotZero(t, draft.Lines[0].ID)
}

func TestDispatch_AddLineDoesNotMutateInput(t *testing.T) {
	store := testStore(t)
	before := Initial()
	_ = dispatch(t, store, before, AddLine{TransactionID: "T1"})

	_, ok := before.Draft("T1")
	assert.False(t, ok)
}

func TestDispatch_LineIDsAreUnique(t *testing.T) {
	store := testStore(t)
	st := Initial()
	for i := 0; i < 5; i++ {
		st = dispatch(t, store, st, AddLine{TransactionID: "T1"})
	}

	seen := make(map[string]bool)
	for _, line := range st.Drafts["T1"].Lines {
		assert.False(t, seen[line.ID], "duplicate id %s", line.ID)
		seen[line.ID] = true
	}
}

func TestDispatch_UpdateLineDateSentinel(t *testing.T) {
	store := testStore(t)
	st := dispatch(t, store, Initial(), AddLine{TransactionID: "T1"})
	st = dispatch(t, store, st, UpdateLine{TransactionID: "T1", LineID: DateLineID, Field: "date", Value: "2024-01-01"})

	assert.Equal(t, "2024-01-01", st.Drafts["T1"].Date)
}

func TestDispatch_UpdateLineRejectsBadAmount(t *testing.T) {
	store := testStore(t)
	st := dispatch(t, store, Initial(), AddLine{TransactionID: "T1"})
	lineID := st.Drafts["T1"].Lines[0].ID

	next, err := store.Dispatch(st, UpdateLine{TransactionID: "T1", LineID: lineID, Field: "debit", Value: "abc"})
	assert.Error(t, err)
	assert.Equal(t, st, next)

	_, err = store.Dispatch(st, UpdateLine{TransactionID: "T1", LineID: lineID, Field: "debit", Value: "-5"})
	assert.Error(t, err)
}

func TestDispatch_UpdateLineRejectsUnknownAccount(t *testing.T) {
	store := testStore(t)
	st := dispatch(t, store, Initial(), AddLine{TransactionID: "T1"})
	lineID := st.Drafts["T1"].Lines[0].ID

	_, err := store.Dispatch(st, UpdateLine{TransactionID: "T1", LineID: lineID, Field: "account", Value: "999"})
	assert.Error(t, err)

	var unknown *book.UnknownAccountError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, 999, unknown.Number)
}

func TestDispatch_UpdateLineUnknownFieldFails(t *testing.T) {
	store := testStore(t)
	st := dispatch(t, store, Initial(), AddLine{TransactionID: "T1"})
	lineID := st.Drafts["T1"].Lines[0].ID

	_, err := store.Dispatch(st, UpdateLine{TransactionID: "T1", LineID: lineID, Field: "memo", Value: "x"})
	assert.Error(t, err)
}

func TestDispatch_RemoveLine(t *testing.T) {
	store := testStore(t)
	st := dispatch(t, store, Initial(), AddLine{TransactionID: "T1"})
	st = dispatch(t, store, st, AddLine{TransactionID: "T1"})
	first := st.Drafts["T1"].Lines[0].ID

	st = dispatch(t, store, st, RemoveLine{TransactionID: "T1", LineID: first})
	assert.Equal(t, 1, len(st.Drafts["T1"].Lines))
}

func TestDispatch_PostAppendsEntry(t *testing.T) {
	store := testStore(t)
	st := draftEntry(t, store, Initial())
	st = dispatch(t, store, st, Post{TransactionID: "T1", Date: "2024-01-01"})

	assert.True(t, st.IsPosted("T1"))
	assert.Equal(t, 1, len(st.Posted))

	entry := st.Posted[0]
	assert.Equal(t, "T1", entry.TransactionID)
	assert.Equal(t, "2024-01-01", entry.Date)
	assert.Equal(t, []book.PostedLine{
		{Account: 101, Debit: 100},
		{Account: 301, Credit: 100},
	}, entry.Lines)
}

// Posting the same transaction twice is idempotent: the second Post
// leaves both the log and the draft unchanged.
func TestDispatch_PostIdempotent(t *testing.T) {
	store := testStore(t)
	st := draftEntry(t, store, Initial())
	st = dispatch(t, store, st, Post{TransactionID: "T1"})
	again := dispatch(t, store, st, Post{TransactionID: "T1"})

	assert.Equal(t, st, again)
	assert.Equal(t, 1, len(again.Posted))
}

func TestDispatch_PostMissingDraftIsNoop(t *testing.T) {
	store := testStore(t)
	st := dispatch(t, store, Initial(), Post{TransactionID: "T9"})
	assert.Equal(t, 0, len(st.Posted))
}

// A failed validation leaves the state untouched and surfaces the
// reason to the caller.
func TestDispatch_PostFailureLeavesStateUnchanged(t *testing.T) {
	store := testStore(t)
	st := dispatch(t, store, Initial(), AddLine{TransactionID: "T1"})
	lineID := st.Drafts["T1"].Lines[0].ID
	st = dispatch(t, store, st, UpdateLine{TransactionID: "T1", LineID: lineID, Field: "account", Value: "101"})
	st = dispatch(t, store, st, UpdateLine{TransactionID: "T1", LineID: lineID, Field: "debit", Value: "100"})

	next, err := store.Dispatch(st, Post{TransactionID: "T1"})
	assert.Error(t, err)
	assert.Equal(t, st, next)

	reason, ok := book.ReasonOf(err)
	assert.True(t, ok)
	assert.Equal(t, book.ReasonUnbalanced, reason)
}

func TestDispatch_PostChecksSolution(t *testing.T) {
	store := testStore(t)
	st := draftEntry(t, store, Initial())

	_, err := store.Dispatch(st, Post{
		TransactionID: "T1",
		Solution:      book.Solution{101: {Debits: 500}, 301: {Credits: 500}},
	})
	assert.Error(t, err)

	reason, _ := book.ReasonOf(err)
	assert.Equal(t, book.ReasonSolutionMismatch, reason)
}

// Posted drafts are immutable: edits and solution loads are no-ops.
func TestDispatch_PostedDraftIsImmutable(t *testing.T) {
	store := testStore(t)
	st := draftEntry(t, store, Initial())
	st = dispatch(t, store, st, Post{TransactionID: "T1"})
	lines := st.Drafts["T1"].Lines

	st = dispatch(t, store, st, AddLine{TransactionID: "T1"})
	st = dispatch(t, store, st, RemoveLine{TransactionID: "T1", LineID: lines[0].ID})
	st = dispatch(t, store, st, UpdateLine{TransactionID: "T1", LineID: lines[0].ID, Field: "debit", Value: "999"})
	st = dispatch(t, store, st, LoadSolution{TransactionID: "T1", Solution: book.Solution{101: {Debits: 1}}})

	assert.Equal(t, lines, st.Drafts["T1"].Lines)
}

// LoadSolution synthesizes debit lines before credit lines, each side
// in ascending account order.
func TestDispatch_LoadSolution(t *testing.T) {
	store := testStore(t)
	st := dispatch(t, store, Initial(), LoadSolution{
		TransactionID: "C2",
		Date:          "2024-12-31",
		Solution: book.Solution{
			350: {Debits: 120},
			401: {Credits: 80},
			330: {Credits: 40},
		},
	})

	draft := st.Drafts["C2"]
	assert.Equal(t, "2024-12-31", draft.Date)
	assert.Equal(t, 3, len(draft.Lines))
	assert.Equal(t, 350, draft.Lines[0].Account)
	assert.Equal(t, int64(120), draft.Lines[0].Debit)
	assert.Equal(t, 330, draft.Lines[1].Account)
	assert.Equal(t, 401, draft.Lines[2].Account)
}

func TestDispatch_LoadSolutionReplacesExistingLines(t *testing.T) {
	store := testStore(t)
	st := draftEntry(t, store, Initial())
	st = dispatch(t, store, st, LoadSolution{
		TransactionID: "T1",
		Solution:      book.Solution{101: {Debits: 100}, 301: {Credits: 100}},
	})

	assert.Equal(t, 2, len(st.Drafts["T1"].Lines))
	assert.Equal(t, int64(100), st.Drafts["T1"].Lines[0].Debit)
}

func TestDispatch_Reset(t *testing.T) {
	store := testStore(t)
	st := draftEntry(t, store, Initial())
	st = dispatch(t, store, st, Post{TransactionID: "T1"})

	st = dispatch(t, store, st, Reset{})
	assert.Equal(t, Initial(), st)
}

// LoadExternalState is a full atomic replace of the state.
func TestDispatch_LoadExternalState(t *testing.T) {
	store := testStore(t)
	saved := draftEntry(t, store, Initial())
	saved = dispatch(t, store, saved, Post{TransactionID: "T1"})

	st := dispatch(t, store, Initial(), LoadExternalState{Snapshot: saved})
	assert.Equal(t, saved, st)

	// A zero-valued snapshot is normalized to usable collections.
	st = dispatch(t, store, st, LoadExternalState{Snapshot: State{SchemaVersion: SchemaVersion}})
	assert.True(t, st.Drafts != nil)
	assert.Equal(t, 0, len(st.Posted))
}

func TestSequence_Monotonic(t *testing.T) {
	seq := NewSequence("L")
	assert.Equal(t, "L1", seq.Next())
	assert.Equal(t, "L2", seq.Next())
	assert.Equal(t, "L3", seq.Next())
}

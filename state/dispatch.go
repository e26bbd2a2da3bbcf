package state

import (
	"fmt"
	"strconv"

	"github.com/ledgerlab/bookledger/book"
)

// Store dispatches actions against ledger state. It carries the chart
// of accounts for boundary validation and an id source for new lines;
// the state itself is passed in and returned by value, keeping every
// transition deterministic apart from id generation.
type Store struct {
	chart *book.Chart
	ids   IDSource
}

// Option configures a Store.
type Option func(*Store)

// WithIDSource replaces the default line id source.
func WithIDSource(ids IDSource) Option {
	return func(s *Store) { s.ids = ids }
}

// New creates a Store for the given chart of accounts.
func New(chart *book.Chart, opts ...Option) *Store {
	s := &Store{
		chart: chart,
		ids:   NewSequence("L"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies one action to the state and returns the resulting
// state. On error the returned state is the input state unchanged; in
// particular a failed Post mutates nothing and reports the validation
// failure for the caller to present.
func (s *Store) Dispatch(st State, action Action) (State, error) {
	switch a := action.(type) {
	case AddLine:
		return s.addLine(st, a), nil
	case UpdateLine:
		return s.updateLine(st, a)
	case RemoveLine:
		return s.removeLine(st, a), nil
	case Post:
		return s.post(st, a)
	case LoadSolution:
		return s.loadSolution(st, a), nil
	case Reset:
		return Initial(), nil
	case LoadExternalState:
		return normalize(a.Snapshot.Clone()), nil
	default:
		return st, fmt.Errorf("unknown action type %T", action)
	}
}

func (s *Store) addLine(st State, a AddLine) State {
	draft := st.Drafts[a.TransactionID]
	if draft.Posted {
		return st
	}

	draft = draft.clone()
	draft.Lines = append(draft.Lines, book.Line{ID: s.ids.Next()})
	return st.withDraft(a.TransactionID, draft)
}

func (s *Store) updateLine(st State, a UpdateLine) (State, error) {
	draft := st.Drafts[a.TransactionID]
	if draft.Posted {
		return st, nil
	}
	draft = draft.clone()

	if a.Field == "date" && a.LineID == DateLineID {
		draft.Date = a.Value
		return st.withDraft(a.TransactionID, draft), nil
	}

	for i, line := range draft.Lines {
		if line.ID != a.LineID {
			continue
		}

		switch a.Field {
		case "account":
			number, err := s.parseAccount(a.Value)
			if err != nil {
				return st, err
			}
			draft.Lines[i].Account = number
		case "debit":
			amount, err := book.ParseAmount(a.Value)
			if err != nil {
				return st, err
			}
			draft.Lines[i].Debit = amount
		case "credit":
			amount, err := book.ParseAmount(a.Value)
			if err != nil {
				return st, err
			}
			draft.Lines[i].Credit = amount
		default:
			return st, fmt.Errorf("unknown line field %q", a.Field)
		}

		return st.withDraft(a.TransactionID, draft), nil
	}

	// Unknown line id: leave the state untouched.
	return st, nil
}

// parseAccount validates an account number at the boundary. The empty
// string clears the selection.
func (s *Store) parseAccount(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	number, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid account number %q", value)
	}
	if _, ok := s.chart.Account(number); !ok {
		return 0, &book.UnknownAccountError{Number: number}
	}
	return number, nil
}

func (s *Store) removeLine(st State, a RemoveLine) State {
	draft, ok := st.Drafts[a.TransactionID]
	if !ok || draft.Posted {
		return st
	}

	lines := make([]book.Line, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		if line.ID != a.LineID {
			lines = append(lines, line)
		}
	}
	draft.Lines = lines
	return st.withDraft(a.TransactionID, draft)
}

func (s *Store) post(st State, a Post) (State, error) {
	draft, ok := st.Drafts[a.TransactionID]
	if !ok || draft.Posted {
		return st, nil
	}

	if _, err := book.Validate(draft.Lines, a.Solution); err != nil {
		return st, err
	}

	// Every line carrying an amount must reference a chart account.
	for _, line := range draft.Lines {
		if line.Debit == 0 && line.Credit == 0 {
			continue
		}
		if _, known := s.chart.Account(line.Account); !known {
			return st, &book.UnknownAccountError{Number: line.Account}
		}
	}

	date := draft.Date
	if date == "" {
		date = a.Date
	}

	entryLines := make([]book.PostedLine, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		if line.Account == 0 {
			continue
		}
		entryLines = append(entryLines, book.PostedLine{
			Account: line.Account,
			Debit:   line.Debit,
			Credit:  line.Credit,
		})
	}

	posted := book.PostedEntry{
		TransactionID: a.TransactionID,
		Date:          date,
		Lines:         entryLines,
		IsAdjusting:   a.IsAdjusting,
		IsClosing:     a.IsClosing,
	}

	sealed := draft.clone()
	sealed.Posted = true

	st = st.withDraft(a.TransactionID, sealed)
	log := make([]book.PostedEntry, len(st.Posted), len(st.Posted)+1)
	copy(log, st.Posted)
	st.Posted = append(log, posted)
	return st, nil
}

func (s *Store) loadSolution(st State, a LoadSolution) State {
	draft := st.Drafts[a.TransactionID]
	if draft.Posted {
		return st
	}

	var lines []book.Line
	for _, number := range a.Solution.Accounts() {
		if t := a.Solution[number]; t.Debits > 0 {
			lines = append(lines, book.Line{ID: s.ids.Next(), Account: number, Debit: t.Debits})
		}
	}
	for _, number := range a.Solution.Accounts() {
		if t := a.Solution[number]; t.Credits > 0 {
			lines = append(lines, book.Line{ID: s.ids.Next(), Account: number, Credit: t.Credits})
		}
	}

	draft.Lines = lines
	if a.Date != "" {
		draft.Date = a.Date
	}
	return st.withDraft(a.TransactionID, draft)
}

// normalize guards against snapshots with missing collections.
func normalize(st State) State {
	if st.Drafts == nil {
		st.Drafts = make(map[string]Draft)
	}
	return st
}

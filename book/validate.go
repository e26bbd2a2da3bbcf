// Package book implements the double-entry bookkeeping rule engine: draft
// entry validation, per-account balance aggregation across bookkeeping
// stages, the five-column worksheet, and derivation of expected closing
// entries from live ledger data.
//
// The package holds no mutable state. Every function is a pure
// computation over immutable reference data (the chart of accounts) and
// an append-only log of posted entries; state ownership lives with the
// state package.
//
// Validation checks are applied in a fixed order and short-circuit on
// the first failure:
//
//  1. the entry has at least one line
//  2. total debits equal total credits
//  3. no debit line appears after a credit line
//  4. per-account totals match the expected solution, when one is given
//
// Example usage:
//
//	details, err := book.Validate(draft.Lines, solution)
//	if err != nil {
//	    reason, _ := book.ReasonOf(err)
//	    // reason is a stable code; details (for solution mismatches)
//	    // carry the per-account comparison for feedback.
//	}
package book

// Comparison describes how one account's drafted totals line up against
// the expected totals for that account.
type Comparison struct {
	Correct bool   `json:"correct"`
	Entered Totals `json:"entered"`
	Want    Totals `json:"expected"`
}

// SumDebits returns the total of all debit amounts across lines.
func SumDebits(lines []Line) int64 {
	var sum int64
	for _, line := range lines {
		sum += line.Debit
	}
	return sum
}

// SumCredits returns the total of all credit amounts across lines.
func SumCredits(lines []Line) int64 {
	var sum int64
	for _, line := range lines {
		sum += line.Credit
	}
	return sum
}

// IsBalanced reports whether total debits equal total credits.
func IsBalanced(lines []Line) bool {
	diff := SumDebits(lines) - SumCredits(lines)
	if diff < 0 {
		diff = -diff
	}
	return diff < 1
}

// AggregateLines folds draft lines into per-account totals.
func AggregateLines(lines []Line) map[int]Totals {
	totals := make(map[int]Totals)
	for _, line := range lines {
		t := totals[line.Account]
		t.Debits += line.Debit
		t.Credits += line.Credit
		totals[line.Account] = t
	}
	return totals
}

// Validate checks a draft entry against the structural rules and, when a
// non-empty solution is supplied, against the expected per-account
// totals. It returns the per-account comparison whenever the solution
// check ran, on success as well as failure, so callers can always give
// account-level feedback. Validate never mutates its inputs.
func Validate(lines []Line, solution Solution) (map[int]Comparison, error) {
	if len(lines) == 0 {
		return nil, &EmptyEntryError{}
	}

	debits, credits := SumDebits(lines), SumCredits(lines)
	if !IsBalanced(lines) {
		return nil, &UnbalancedError{Debits: debits, Credits: credits}
	}

	if err := checkOrder(lines); err != nil {
		return nil, err
	}

	if len(solution) == 0 {
		return nil, nil
	}

	details, correct := compareToSolution(lines, solution)
	if !correct {
		return details, &SolutionMismatchError{Details: details}
	}
	return details, nil
}

// checkOrder enforces the debit-before-credit convention: once a credit
// line has been seen, no later line may carry a debit.
func checkOrder(lines []Line) error {
	creditSeen := false
	for i, line := range lines {
		if creditSeen && line.Debit > 0 {
			return &OrderViolationError{Index: i}
		}
		if line.Credit > 0 {
			creditSeen = true
		}
	}
	return nil
}

// compareToSolution aggregates the draft by account and compares the
// union of drafted and expected accounts. An account present on only one
// side compares against zero totals and therefore mismatches.
func compareToSolution(lines []Line, solution Solution) (map[int]Comparison, bool) {
	entered := AggregateLines(lines)

	union := make(map[int]struct{}, len(entered)+len(solution))
	for number := range entered {
		union[number] = struct{}{}
	}
	for number := range solution {
		union[number] = struct{}{}
	}

	details := make(map[int]Comparison, len(union))
	correct := true
	for number := range union {
		got := entered[number]
		want := solution[number]
		match := got == want
		details[number] = Comparison{Correct: match, Entered: got, Want: want}
		if !match {
			correct = false
		}
	}
	return details, correct
}

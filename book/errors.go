package book

import (
	"errors"
	"fmt"
)

// Reason identifies why a draft entry failed validation. Reasons are
// stable codes intended for callers that present their own feedback.
type Reason string

const (
	ReasonEmptyEntry       Reason = "EmptyEntry"
	ReasonUnbalanced       Reason = "Unbalanced"
	ReasonOrderViolation   Reason = "OrderViolation"
	ReasonSolutionMismatch Reason = "SolutionMismatch"
)

// EmptyEntryError is returned when a draft entry has no lines.
type EmptyEntryError struct{}

func (e *EmptyEntryError) Error() string {
	return "journal entry has no lines"
}

// Reason returns the stable validation reason code.
func (e *EmptyEntryError) Reason() Reason { return ReasonEmptyEntry }

// UnbalancedError is returned when total debits and credits differ.
type UnbalancedError struct {
	Debits  int64
	Credits int64
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("journal entry does not balance: debits %d, credits %d", e.Debits, e.Credits)
}

func (e *UnbalancedError) Reason() Reason { return ReasonUnbalanced }

// OrderViolationError is returned when a debit line follows a credit
// line. Index is the zero-based position of the offending debit line.
type OrderViolationError struct {
	Index int
}

func (e *OrderViolationError) Error() string {
	return fmt.Sprintf("debit on line %d appears after a credit line; list all debits first", e.Index+1)
}

func (e *OrderViolationError) Reason() Reason { return ReasonOrderViolation }

// SolutionMismatchError is returned when the draft's per-account totals
// disagree with the expected solution. Details always carries the full
// per-account comparison so callers can show which accounts are off.
type SolutionMismatchError struct {
	Details map[int]Comparison
}

func (e *SolutionMismatchError) Error() string {
	wrong := 0
	for _, c := range e.Details {
		if !c.Correct {
			wrong++
		}
	}
	return fmt.Sprintf("journal entry does not match the expected solution (%d account(s) differ)", wrong)
}

func (e *SolutionMismatchError) Reason() Reason { return ReasonSolutionMismatch }

// UnknownAccountError is returned when a line references an account
// number that is not in the chart of accounts.
type UnknownAccountError struct {
	Number int
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account number %d", e.Number)
}

// reasoner is implemented by all validation failure errors.
type reasoner interface {
	Reason() Reason
}

// ReasonOf extracts the validation reason code from an error returned by
// Validate, if it carries one.
func ReasonOf(err error) (Reason, bool) {
	var r reasoner
	if errors.As(err, &r) {
		return r.Reason(), true
	}
	return "", false
}

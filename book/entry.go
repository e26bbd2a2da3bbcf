package book

import "golang.org/x/exp/slices"

// Line is one row of a draft journal entry. Account 0 means the row has
// no account selected yet; amounts are whole units with 0 meaning unset.
// The authoring surface keeps at most one of Debit/Credit non-zero per
// row, but nothing here may assume that.
type Line struct {
	ID      string `json:"id"`
	Account int    `json:"account"`
	Debit   int64  `json:"debit"`
	Credit  int64  `json:"credit"`
}

// PostedLine is one row of a committed journal entry.
type PostedLine struct {
	Account int   `json:"account"`
	Debit   int64 `json:"debit"`
	Credit  int64 `json:"credit"`
}

// PostedEntry is a validated journal entry committed to the ledger log.
// Posted entries are append-only; they are never mutated or removed
// except by a full state reset.
type PostedEntry struct {
	TransactionID string       `json:"transactionId"`
	Date          string       `json:"date"`
	Lines         []PostedLine `json:"lines"`
	IsAdjusting   bool         `json:"isAdjusting"`
	IsClosing     bool         `json:"isClosing"`
}

// Totals holds the summed debit and credit amounts for one account.
type Totals struct {
	Debits  int64 `json:"debits" yaml:"debits"`
	Credits int64 `json:"credits" yaml:"credits"`
}

// Add returns the component-wise sum of two totals.
func (t Totals) Add(other Totals) Totals {
	return Totals{Debits: t.Debits + other.Debits, Credits: t.Credits + other.Credits}
}

// IsZero reports whether both sides are zero.
func (t Totals) IsZero() bool {
	return t.Debits == 0 && t.Credits == 0
}

// Solution is the expected per-account aggregate for one transaction:
// account number to debit/credit totals. Scripted transactions carry
// their solution as reference data; closing solutions are derived from
// the ledger.
type Solution map[int]Totals

// Accounts returns the solution's account numbers in ascending order.
func (s Solution) Accounts() []int {
	accounts := make([]int, 0, len(s))
	for number := range s {
		accounts = append(accounts, number)
	}
	slices.Sort(accounts)
	return accounts
}

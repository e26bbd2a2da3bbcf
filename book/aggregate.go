package book

// Filter selects which posted entries participate in an aggregation.
type Filter func(PostedEntry) bool

// ExcludeClosing is the filter used for adjusted trial balances: it
// keeps everything except closing entries.
func ExcludeClosing(e PostedEntry) bool {
	return !e.IsClosing
}

// Aggregate folds posted entries into per-account debit/credit totals.
// A nil filter includes every entry. Summation is order-independent:
// any permutation of the same entries yields the same result.
func Aggregate(entries []PostedEntry, filter Filter) map[int]Totals {
	totals := make(map[int]Totals)
	for _, entry := range entries {
		if filter != nil && !filter(entry) {
			continue
		}
		for _, line := range entry.Lines {
			t := totals[line.Account]
			t.Debits += line.Debit
			t.Credits += line.Credit
			totals[line.Account] = t
		}
	}
	return totals
}

// DisplayBalance nets an account's totals onto its normal side, clamped
// at zero. Ledger views use this so balances never show negative.
func DisplayBalance(normal Side, t Totals) int64 {
	var balance int64
	if normal == DebitSide {
		balance = t.Debits - t.Credits
	} else {
		balance = t.Credits - t.Debits
	}
	if balance < 0 {
		return 0
	}
	return balance
}

// StatementBalance nets an account's totals by category, preserving
// sign. Financial statements use this so contra-accounts and abnormal
// balances surface as negative values instead of being clamped.
func StatementBalance(category Category, t Totals) int64 {
	if category == Assets {
		return t.Debits - t.Credits
	}
	return t.Credits - t.Debits
}

// TrialTotals are the trial-balance column totals over an aggregate.
type TrialTotals struct {
	Debits  int64 `json:"debits"`
	Credits int64 `json:"credits"`
}

// Balanced reports whether the two columns agree.
func (t TrialTotals) Balanced() bool {
	diff := t.Debits - t.Credits
	if diff < 0 {
		diff = -diff
	}
	return diff < 1
}

// SummarizeTrial nets every account in an aggregate onto its heavier
// side and sums the resulting debit and credit columns.
func SummarizeTrial(aggregate map[int]Totals) TrialTotals {
	var totals TrialTotals
	for _, t := range aggregate {
		if t.Debits > t.Credits {
			totals.Debits += t.Debits - t.Credits
		} else {
			totals.Credits += t.Credits - t.Debits
		}
	}
	return totals
}

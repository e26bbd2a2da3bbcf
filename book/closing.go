package book

import "fmt"

// NumClosingSteps is the number of closing entries in the cycle:
// close revenue, close expenses, close income summary, close dividends.
const NumClosingSteps = 4

// ClosingFigures are the intermediate amounts behind the four closing
// entries, computed from the adjusted trial balance.
type ClosingFigures struct {
	RevenueTotal   int64
	ExpenseTotals  map[int]int64 // expense account -> amount, only > 0
	TotalExpenses  int64
	NetIncome      int64
	DividendsTotal int64
}

// DeriveClosingFigures computes revenue, expense, net income, and
// dividend figures from posted entries with closing entries excluded.
// Closing entries never feed back into this computation, so the figures
// are the same no matter how many closing steps are already posted.
func DeriveClosingFigures(entries []PostedEntry, chart *Chart) ClosingFigures {
	adjusted := Aggregate(entries, ExcludeClosing)
	roles := chart.Roles()

	figures := ClosingFigures{
		ExpenseTotals:  make(map[int]int64),
		RevenueTotal:   clampPositive(creditNet(adjusted[roles.Revenue])),
		DividendsTotal: clampPositive(debitNet(adjusted[roles.Dividends])),
	}

	for _, account := range chart.ByCategory(Expenses) {
		amount := clampPositive(debitNet(adjusted[account.Number]))
		if amount > 0 {
			figures.ExpenseTotals[account.Number] = amount
			figures.TotalExpenses += amount
		}
	}

	figures.NetIncome = figures.RevenueTotal - figures.TotalExpenses
	return figures
}

// DeriveClosingSolution computes the expected closing entry for one of
// the four closing steps. An empty solution means the step has no
// meaningful entry (for example zero net income) and nothing needs
// posting.
func DeriveClosingSolution(step int, entries []PostedEntry, chart *Chart) (Solution, error) {
	if step < 1 || step > NumClosingSteps {
		return nil, fmt.Errorf("closing step must be between 1 and %d, got %d", NumClosingSteps, step)
	}

	figures := DeriveClosingFigures(entries, chart)
	roles := chart.Roles()

	switch step {
	case 1: // close revenue to income summary
		if figures.RevenueTotal <= 0 {
			return Solution{}, nil
		}
		return Solution{
			roles.Revenue:       {Debits: figures.RevenueTotal},
			roles.IncomeSummary: {Credits: figures.RevenueTotal},
		}, nil

	case 2: // close expenses to income summary
		if figures.TotalExpenses <= 0 {
			return Solution{}, nil
		}
		solution := Solution{roles.IncomeSummary: {Debits: figures.TotalExpenses}}
		for number, amount := range figures.ExpenseTotals {
			solution[number] = Totals{Credits: amount}
		}
		return solution, nil

	case 3: // close income summary to retained earnings
		switch {
		case figures.NetIncome > 0:
			return Solution{
				roles.IncomeSummary:    {Debits: figures.NetIncome},
				roles.RetainedEarnings: {Credits: figures.NetIncome},
			}, nil
		case figures.NetIncome < 0:
			loss := -figures.NetIncome
			return Solution{
				roles.RetainedEarnings: {Debits: loss},
				roles.IncomeSummary:    {Credits: loss},
			}, nil
		default:
			return Solution{}, nil
		}

	default: // step 4: close dividends to retained earnings
		if figures.DividendsTotal <= 0 {
			return Solution{}, nil
		}
		return Solution{
			roles.RetainedEarnings: {Debits: figures.DividendsTotal},
			roles.Dividends:        {Credits: figures.DividendsTotal},
		}, nil
	}
}

func debitNet(t Totals) int64  { return t.Debits - t.Credits }
func creditNet(t Totals) int64 { return t.Credits - t.Debits }

func clampPositive(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

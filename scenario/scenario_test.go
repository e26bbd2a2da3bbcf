package scenario

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/ledgerlab/bookledger/book"
)

func TestConsulting_Loads(t *testing.T) {
	sc := Consulting()

	assert.Equal(t, "TechSolutions Consulting Inc.", sc.Company.Name)
	assert.Equal(t, 24, len(sc.Accounts))
	assert.Equal(t, 15, len(sc.Initial))
	assert.Equal(t, 5, len(sc.Adjusting))
	assert.Equal(t, 4, len(sc.Closing))
	assert.Equal(t, 20, len(sc.Solutions))
}

func TestConsulting_Chart(t *testing.T) {
	chart := Consulting().Chart()

	cash, ok := chart.Account(101)
	assert.True(t, ok)
	assert.Equal(t, "Cash", cash.Name)
	assert.Equal(t, book.DebitSide, cash.NormalBalance)

	accumulated, ok := chart.Account(155)
	assert.True(t, ok)
	assert.Equal(t, book.Assets, accumulated.Category)
	assert.Equal(t, book.CreditSide, accumulated.NormalBalance)

	roles := chart.Roles()
	assert.Equal(t, 401, roles.Revenue)
	assert.Equal(t, 350, roles.IncomeSummary)
	assert.Equal(t, 320, roles.RetainedEarnings)
	assert.Equal(t, 330, roles.Dividends)
}

// Every scripted solution balances; Load would have rejected the
// scenario otherwise, so this doubles as a fixture sanity check.
func TestConsulting_SolutionsBalance(t *testing.T) {
	sc := Consulting()
	for id, solution := range sc.Solutions {
		var debits, credits int64
		for _, totals := range solution {
			debits += totals.Debits
			credits += totals.Credits
		}
		assert.Equal(t, debits, credits, "solution %s should balance", id)
	}
}

func TestScenario_Transaction(t *testing.T) {
	sc := Consulting()

	txn, stage, ok := sc.Transaction("T11")
	assert.True(t, ok)
	assert.Equal(t, StageInitial, stage)
	assert.Equal(t, "2024-02-10", txn.Date)

	_, stage, ok = sc.Transaction("A3")
	assert.True(t, ok)
	assert.Equal(t, StageAdjusting, stage)

	c2, stage, ok := sc.Transaction("C2")
	assert.True(t, ok)
	assert.Equal(t, StageClosing, stage)
	assert.Equal(t, 2, c2.Position)

	_, _, ok = sc.Transaction("T99")
	assert.False(t, ok)
}

func TestScenario_SolutionForClosingIsEmpty(t *testing.T) {
	sc := Consulting()
	assert.Equal(t, 0, len(sc.Solution("C1")))
}

func TestLoad_RejectsUnbalancedSolution(t *testing.T) {
	_, err := Load([]byte(`
accounts:
  - {number: 101, name: Cash, category: Assets, normalBalance: debit}
  - {number: 401, name: Revenue, category: Revenue, normalBalance: credit}
roles: {revenue: 401, incomeSummary: 101, retainedEarnings: 101, dividends: 101}
solutions:
  T1: {101: {debits: 100}, 401: {credits: 90}}
`))
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownSolutionAccount(t *testing.T) {
	_, err := Load([]byte(`
accounts:
  - {number: 101, name: Cash, category: Assets, normalBalance: debit}
roles: {revenue: 101, incomeSummary: 101, retainedEarnings: 101, dividends: 101}
solutions:
  T1: {999: {debits: 100}, 101: {credits: 100}}
`))
	assert.Error(t, err)
}

func TestLoad_RejectsBadClosingPositions(t *testing.T) {
	_, err := Load([]byte(`
accounts:
  - {number: 101, name: Cash, category: Assets, normalBalance: debit}
roles: {revenue: 101, incomeSummary: 101, retainedEarnings: 101, dividends: 101}
closingTransactions:
  - {id: C1, position: 2}
`))
	assert.Error(t, err)
}

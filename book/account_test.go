package book

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func testChart(t *testing.T) *Chart {
	t.Helper()
	chart, err := NewChart([]Account{
		{Number: 101, Name: "Cash", Category: Assets, NormalBalance: DebitSide},
		{Number: 155, Name: "Accumulated Depreciation - Equipment", Category: Assets, NormalBalance: CreditSide},
		{Number: 201, Name: "Accounts Payable", Category: Liabilities, NormalBalance: CreditSide},
		{Number: 301, Name: "Common Stock", Category: Equity, NormalBalance: CreditSide},
		{Number: 320, Name: "Retained Earnings", Category: Equity, NormalBalance: CreditSide},
		{Number: 330, Name: "Dividends", Category: Equity, NormalBalance: DebitSide},
		{Number: 350, Name: "Income Summary", Category: Equity, NormalBalance: CreditSide},
		{Number: 401, Name: "Service Revenue", Category: Revenue, NormalBalance: CreditSide},
		{Number: 501, Name: "Salaries Expense", Category: Expenses, NormalBalance: DebitSide},
		{Number: 510, Name: "Rent Expense", Category: Expenses, NormalBalance: DebitSide},
	}, Roles{Revenue: 401, IncomeSummary: 350, RetainedEarnings: 320, Dividends: 330})
	assert.NoError(t, err)
	return chart
}

func TestChart_Account(t *testing.T) {
	chart := testChart(t)

	cash, ok := chart.Account(101)
	assert.True(t, ok)
	assert.Equal(t, "Cash", cash.Name)
	assert.Equal(t, Assets, cash.Category)

	_, ok = chart.Account(999)
	assert.False(t, ok)
}

func TestChart_ByCategory(t *testing.T) {
	chart := testChart(t)

	expenses := chart.ByCategory(Expenses)
	assert.Equal(t, 2, len(expenses))
	assert.Equal(t, 501, expenses[0].Number)
	assert.Equal(t, 510, expenses[1].Number)
}

func TestNewChart_DuplicateNumber(t *testing.T) {
	_, err := NewChart([]Account{
		{Number: 101, Name: "Cash", Category: Assets, NormalBalance: DebitSide},
		{Number: 101, Name: "Petty Cash", Category: Assets, NormalBalance: DebitSide},
	}, Roles{Revenue: 101, IncomeSummary: 101, RetainedEarnings: 101, Dividends: 101})
	assert.Error(t, err)
}

func TestNewChart_UnknownRole(t *testing.T) {
	_, err := NewChart([]Account{
		{Number: 101, Name: "Cash", Category: Assets, NormalBalance: DebitSide},
	}, Roles{Revenue: 401, IncomeSummary: 101, RetainedEarnings: 101, Dividends: 101})
	assert.Error(t, err)
}

func TestAccount_Label(t *testing.T) {
	a := Account{Number: 101, Name: "Cash"}
	assert.Equal(t, "101 - Cash", a.Label())
}

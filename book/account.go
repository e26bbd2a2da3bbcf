package book

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Category classifies an account on the financial statements.
type Category string

const (
	Assets      Category = "Assets"
	Liabilities Category = "Liabilities"
	Equity      Category = "Equity"
	Revenue     Category = "Revenue"
	Expenses    Category = "Expenses"
)

// Categories lists all account categories in statement order.
var Categories = []Category{Assets, Liabilities, Equity, Revenue, Expenses}

// Side is the debit or credit column of an entry.
type Side string

const (
	DebitSide  Side = "debit"
	CreditSide Side = "credit"
)

// Account is a single account in the chart of accounts. Accounts are
// immutable reference data supplied at startup.
type Account struct {
	Number        int      `json:"number" yaml:"number"`
	Name          string   `json:"name" yaml:"name"`
	Category      Category `json:"category" yaml:"category"`
	NormalBalance Side     `json:"normalBalance" yaml:"normalBalance"`
}

// Label returns the account formatted as "number - name" for display.
func (a Account) Label() string {
	return fmt.Sprintf("%d - %s", a.Number, a.Name)
}

// Roles names the accounts that play a special part in the closing
// process. Expense accounts need no role; they are found by category.
type Roles struct {
	Revenue          int `json:"revenue" yaml:"revenue"`
	IncomeSummary    int `json:"incomeSummary" yaml:"incomeSummary"`
	RetainedEarnings int `json:"retainedEarnings" yaml:"retainedEarnings"`
	Dividends        int `json:"dividends" yaml:"dividends"`
}

// Chart is an ordered chart of accounts with closing-role lookups.
type Chart struct {
	accounts []Account
	byNumber map[int]Account
	roles    Roles
}

// NewChart builds a chart from an ordered account list and closing roles.
// Account numbers must be unique and every role must name a known account.
func NewChart(accounts []Account, roles Roles) (*Chart, error) {
	byNumber := make(map[int]Account, len(accounts))
	for _, a := range accounts {
		if _, ok := byNumber[a.Number]; ok {
			return nil, fmt.Errorf("duplicate account number %d", a.Number)
		}
		byNumber[a.Number] = a
	}

	for _, role := range []struct {
		name   string
		number int
	}{
		{"revenue", roles.Revenue},
		{"incomeSummary", roles.IncomeSummary},
		{"retainedEarnings", roles.RetainedEarnings},
		{"dividends", roles.Dividends},
	} {
		if _, ok := byNumber[role.number]; !ok {
			return nil, fmt.Errorf("%s role references unknown account %d", role.name, role.number)
		}
	}

	return &Chart{
		accounts: slices.Clone(accounts),
		byNumber: byNumber,
		roles:    roles,
	}, nil
}

// Account returns the account with the given number.
func (c *Chart) Account(number int) (Account, bool) {
	a, ok := c.byNumber[number]
	return a, ok
}

// Accounts returns all accounts in chart order.
func (c *Chart) Accounts() []Account {
	return slices.Clone(c.accounts)
}

// ByCategory returns the accounts of one category in chart order.
func (c *Chart) ByCategory(category Category) []Account {
	var accounts []Account
	for _, a := range c.accounts {
		if a.Category == category {
			accounts = append(accounts, a)
		}
	}
	return accounts
}

// Roles returns the closing-role account numbers.
func (c *Chart) Roles() Roles {
	return c.roles
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/ledgerlab/bookledger/book"
)

// StatementsCmd prints the income statement, statement of retained
// earnings, and balance sheet from the adjusted trial balance.
type StatementsCmd struct{}

const statementWidth = 44

func (cmd *StatementsCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, err := globals.OpenSession(context.Background())
	if err != nil {
		return err
	}
	defer session.Close()

	chart := session.Scenario.Chart()
	entries := session.State.Posted
	adjusted := book.Aggregate(entries, book.ExcludeClosing)
	figures := book.DeriveClosingFigures(entries, chart)

	out := ctx.Stdout

	cmd.incomeStatement(out, chart, figures)
	cmd.retainedEarnings(out, chart, adjusted, figures)
	cmd.balanceSheet(out, chart, adjusted, figures)

	return nil
}

func statementLine(w io.Writer, label string, amount int64) {
	_, _ = fmt.Fprintf(w, "  %s %s\n",
		padRight(truncate(label, statementWidth-14), statementWidth-14),
		padLeft(formatAmountZero(amount), 12))
}

func statementHeader(w io.Writer, title string) {
	_, _ = fmt.Fprintf(w, "%s\n", headerStyle.Render(title))
}

func (cmd *StatementsCmd) incomeStatement(w io.Writer, chart *book.Chart, figures book.ClosingFigures) {
	statementHeader(w, "Income Statement")
	statementLine(w, "Revenue", figures.RevenueTotal)

	for _, account := range chart.ByCategory(book.Expenses) {
		if amount, ok := figures.ExpenseTotals[account.Number]; ok {
			statementLine(w, account.Name, -amount)
		}
	}

	statementLine(w, "Net income", figures.NetIncome)
	_, _ = fmt.Fprintln(w)
}

// retainedEarnings reports the roll-forward: beginning balance plus net
// income less dividends. The beginning balance comes from the adjusted
// trial balance, which still excludes the closing transfers.
func (cmd *StatementsCmd) retainedEarnings(w io.Writer, chart *book.Chart, adjusted map[int]book.Totals, figures book.ClosingFigures) {
	roles := chart.Roles()
	beginning := book.StatementBalance(book.Equity, adjusted[roles.RetainedEarnings])
	ending := beginning + figures.NetIncome - figures.DividendsTotal

	statementHeader(w, "Statement of Retained Earnings")
	statementLine(w, "Beginning retained earnings", beginning)
	statementLine(w, "Net income", figures.NetIncome)
	statementLine(w, "Dividends", -figures.DividendsTotal)
	statementLine(w, "Ending retained earnings", ending)
	_, _ = fmt.Fprintln(w)
}

func (cmd *StatementsCmd) balanceSheet(w io.Writer, chart *book.Chart, adjusted map[int]book.Totals, figures book.ClosingFigures) {
	roles := chart.Roles()

	statementHeader(w, "Balance Sheet")

	var totalAssets int64
	for _, account := range chart.ByCategory(book.Assets) {
		totals, ok := adjusted[account.Number]
		if !ok {
			continue
		}
		balance := book.StatementBalance(book.Assets, totals)
		statementLine(w, account.Name, balance)
		totalAssets += balance
	}
	statementLine(w, "Total assets", totalAssets)
	_, _ = fmt.Fprintln(w)

	var totalLiabilities int64
	for _, account := range chart.ByCategory(book.Liabilities) {
		totals, ok := adjusted[account.Number]
		if !ok {
			continue
		}
		balance := book.StatementBalance(book.Liabilities, totals)
		statementLine(w, account.Name, balance)
		totalLiabilities += balance
	}
	statementLine(w, "Total liabilities", totalLiabilities)
	_, _ = fmt.Fprintln(w)

	// Equity folds the temporary accounts into retained earnings the
	// way the closing entries eventually will.
	var totalEquity int64
	for _, account := range chart.ByCategory(book.Equity) {
		if account.Number == roles.IncomeSummary || account.Number == roles.Dividends {
			continue
		}

		totals := adjusted[account.Number]
		balance := book.StatementBalance(book.Equity, totals)
		if account.Number == roles.RetainedEarnings {
			balance += figures.NetIncome - figures.DividendsTotal
		}
		if balance == 0 {
			continue
		}
		statementLine(w, account.Name, balance)
		totalEquity += balance
	}
	statementLine(w, "Total equity", totalEquity)
	_, _ = fmt.Fprintln(w)

	if totalAssets == totalLiabilities+totalEquity {
		printSuccess(w, "Assets equal liabilities plus equity")
	} else {
		printError(w, fmt.Sprintf("Assets (%s) do not equal liabilities plus equity (%s)",
			formatAmountZero(totalAssets), formatAmountZero(totalLiabilities+totalEquity)))
	}
}

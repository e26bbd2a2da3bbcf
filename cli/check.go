package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/ledgerlab/bookledger/book"
	"github.com/ledgerlab/bookledger/scenario"
)

// CheckCmd verifies the posted ledger: every entry balances on its
// own, the trial balance holds at every worksheet stage, and the
// temporary accounts are empty once all closing entries are posted.
type CheckCmd struct{}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, err := globals.OpenSession(context.Background())
	if err != nil {
		return err
	}
	defer session.Close()

	chart := session.Scenario.Chart()
	entries := session.State.Posted
	failures := 0

	for _, entry := range entries {
		var debits, credits int64
		for _, line := range entry.Lines {
			debits += line.Debit
			credits += line.Credit
		}
		if debits != credits {
			printError(ctx.Stderr, fmt.Sprintf("entry %s does not balance: %s dr / %s cr",
				entry.TransactionID, formatAmountZero(debits), formatAmountZero(credits)))
			failures++
		}
	}

	worksheet := book.BuildWorksheet(entries, chart)
	for _, stage := range book.Stages {
		if !worksheet.Balanced(stage) {
			totals := worksheet.Totals[stage]
			printError(ctx.Stderr, fmt.Sprintf("%s trial balance does not balance: %s dr / %s cr",
				stage, formatAmountZero(totals.Debits), formatAmountZero(totals.Credits)))
			failures++
		}
	}

	if cmd.closingComplete(session) {
		failures += cmd.checkTemporaryAccounts(ctx, session, worksheet)
	}

	if failures > 0 {
		printError(ctx.Stderr, fmt.Sprintf("%d check(s) failed", failures))
		return NewCommandError(1)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Ledger checks passed (%d posted entries)", len(entries)))
	return nil
}

func (cmd *CheckCmd) closingComplete(session *Session) bool {
	closing := session.Scenario.Transactions(scenario.StageClosing)
	if len(closing) == 0 {
		return false
	}
	for _, txn := range closing {
		if !session.State.IsPosted(txn.ID) {
			return false
		}
	}
	return true
}

// checkTemporaryAccounts verifies revenue, expense, income summary,
// and dividend accounts carry nothing past the closing entries.
func (cmd *CheckCmd) checkTemporaryAccounts(ctx *kong.Context, session *Session, worksheet *book.Worksheet) int {
	roles := session.Scenario.Chart().Roles()
	failures := 0

	for _, row := range worksheet.Rows {
		account := row.Account
		temporary := account.Category == book.Revenue ||
			account.Category == book.Expenses ||
			account.Number == roles.IncomeSummary ||
			account.Number == roles.Dividends
		if !temporary {
			continue
		}

		if cell := row.Cells[book.StagePostClose]; !cell.Blank() {
			printError(ctx.Stderr, fmt.Sprintf("%s still carries a post-close balance", account.Label()))
			failures++
		}
	}
	return failures
}

package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/ledgerlab/bookledger/book"
)

// ClosingCmd shows the closing entry derived for one of the four
// closing steps, without posting anything.
type ClosingCmd struct {
	Step int `help:"Closing step (1-4)." arg:""`
}

var closingStepTitles = [book.NumClosingSteps]string{
	"Close revenue to Income Summary",
	"Close expenses to Income Summary",
	"Close Income Summary to Retained Earnings",
	"Close Dividends to Retained Earnings",
}

func (cmd *ClosingCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, err := globals.OpenSession(context.Background())
	if err != nil {
		return err
	}
	defer session.Close()

	chart := session.Scenario.Chart()
	solution, err := book.DeriveClosingSolution(cmd.Step, session.State.Posted, chart)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(ctx.Stdout, "%s\n\n",
		headerStyle.Render(fmt.Sprintf("Step %d: %s", cmd.Step, closingStepTitles[cmd.Step-1])))

	if len(solution) == 0 {
		printInfof(ctx.Stdout, "Nothing to close for this step")
		return nil
	}

	// Debit lines first, then credits, each side in account order.
	for _, number := range solution.Accounts() {
		totals := solution[number]
		if totals.Debits == 0 {
			continue
		}
		account, _ := chart.Account(number)
		_, _ = fmt.Fprintf(ctx.Stdout, "  %s %s\n",
			padRight(account.Label(), 40), padLeft(formatAmount(totals.Debits), 10))
	}
	for _, number := range solution.Accounts() {
		totals := solution[number]
		if totals.Credits == 0 {
			continue
		}
		account, _ := chart.Account(number)
		_, _ = fmt.Fprintf(ctx.Stdout, "      %s %s\n",
			padRight(account.Label(), 36), padLeft(formatAmount(totals.Credits), 21))
	}

	return nil
}

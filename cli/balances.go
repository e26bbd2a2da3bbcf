package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/ledgerlab/bookledger/book"
)

// BalancesCmd prints per-account balances netted onto each account's
// normal side.
type BalancesCmd struct {
	Statement bool `help:"Use signed statement balances instead of clamped display balances." short:"s"`
	Adjusted  bool `help:"Exclude closing entries (adjusted trial balance)." short:"a"`
}

func (cmd *BalancesCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, err := globals.OpenSession(context.Background())
	if err != nil {
		return err
	}
	defer session.Close()

	var filter book.Filter
	if cmd.Adjusted {
		filter = book.ExcludeClosing
	}
	aggregate := book.Aggregate(session.State.Posted, filter)
	if len(aggregate) == 0 {
		printInfof(ctx.Stdout, "Nothing posted yet")
		return nil
	}

	for _, account := range session.Scenario.Chart().Accounts() {
		totals, ok := aggregate[account.Number]
		if !ok {
			continue
		}

		var balance int64
		if cmd.Statement {
			balance = book.StatementBalance(account.Category, totals)
		} else {
			balance = book.DisplayBalance(account.NormalBalance, totals)
		}

		_, _ = fmt.Fprintf(ctx.Stdout, "%s %s\n",
			padRight(truncate(account.Label(), 40), 40),
			padLeft(formatAmountZero(balance), 12))
	}

	trial := book.SummarizeTrial(aggregate)
	_, _ = fmt.Fprintln(ctx.Stdout)
	if trial.Balanced() {
		printSuccess(ctx.Stdout, fmt.Sprintf("Trial balance: %s dr / %s cr",
			formatAmountZero(trial.Debits), formatAmountZero(trial.Credits)))
	} else {
		printError(ctx.Stderr, fmt.Sprintf("Trial balance out of balance: %s dr / %s cr",
			formatAmountZero(trial.Debits), formatAmountZero(trial.Credits)))
		return NewCommandError(1)
	}

	return nil
}

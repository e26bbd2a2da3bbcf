package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/ledgerlab/bookledger/book"
	"github.com/ledgerlab/bookledger/scenario"
	"github.com/ledgerlab/bookledger/state"
)

// PostCmd validates a draft entry against its transaction's solution
// and posts it to the ledger.
type PostCmd struct {
	Transaction string `help:"Transaction ID (e.g. T3, A1, C2)." arg:""`
}

func (cmd *PostCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()

	session, err := globals.OpenSession(runCtx)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := postDraft(ctx, session, cmd.Transaction); err != nil {
		return err
	}

	return session.Save(runCtx)
}

// postDraft dispatches a Post action and renders the outcome. A
// validation failure is printed per reason and reported as exit code 1.
func postDraft(ctx *kong.Context, session *Session, id string) error {
	txn, stage, solution, err := session.ResolveSolution(id)
	if err != nil {
		return err
	}

	if session.State.IsPosted(txn.ID) {
		printInfof(ctx.Stdout, "%s is already posted", txn.ID)
		return nil
	}
	if _, ok := session.State.Draft(txn.ID); !ok {
		return fmt.Errorf("no draft entry for %s; journalize it first", txn.ID)
	}

	err = session.Dispatch(state.Post{
		TransactionID: txn.ID,
		IsAdjusting:   stage == scenario.StageAdjusting,
		IsClosing:     stage == scenario.StageClosing,
		Date:          txn.Date,
		Solution:      solution,
	})
	if err != nil {
		renderValidationError(ctx.Stderr, session, err)
		if _, ok := book.ReasonOf(err); ok {
			return NewCommandError(1)
		}
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Posted %s", txn.ID))
	return nil
}

// renderValidationError explains why an entry was rejected, including
// the per-account comparison on a solution mismatch.
func renderValidationError(w io.Writer, session *Session, err error) {
	reason, ok := book.ReasonOf(err)
	if !ok {
		printError(w, err.Error())
		return
	}

	switch reason {
	case book.ReasonEmptyEntry:
		printError(w, "The entry is empty; add at least one debit and one credit line")
	case book.ReasonUnbalanced:
		var unbalanced *book.UnbalancedError
		if errors.As(err, &unbalanced) {
			printError(w, fmt.Sprintf("Debits (%s) do not equal credits (%s)",
				formatAmountZero(unbalanced.Debits), formatAmountZero(unbalanced.Credits)))
		} else {
			printError(w, err.Error())
		}
	case book.ReasonOrderViolation:
		printError(w, "Debit lines must come before credit lines")
	case book.ReasonSolutionMismatch:
		printError(w, "The entry does not match the expected solution")
		var mismatch *book.SolutionMismatchError
		if errors.As(err, &mismatch) {
			renderMismatch(w, session, mismatch)
		}
	default:
		printError(w, err.Error())
	}
}

func renderMismatch(w io.Writer, session *Session, mismatch *book.SolutionMismatchError) {
	chart := session.Scenario.Chart()
	for _, account := range chart.Accounts() {
		detail, ok := mismatch.Details[account.Number]
		if !ok || detail.Correct {
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s %s: entered %s dr / %s cr, expected %s dr / %s cr\n",
			errorStyle.Render(errorSymbol),
			account.Label(),
			formatAmountZero(detail.Entered.Debits), formatAmountZero(detail.Entered.Credits),
			formatAmountZero(detail.Want.Debits), formatAmountZero(detail.Want.Credits))
	}
}

// printDraft renders a draft as a journal entry: debit lines first,
// credit lines indented beneath them.
func printDraft(w io.Writer, session *Session, id string) {
	draft, ok := session.State.Draft(id)
	if !ok {
		return
	}

	chart := session.Scenario.Chart()
	date := draft.Date
	if date == "" {
		date = "(no date)"
	}
	_, _ = fmt.Fprintf(w, "\n  %s\n", dimStyle.Render(date))

	for _, line := range draft.Lines {
		name := ""
		if account, ok := chart.Account(line.Account); ok {
			name = account.Label()
		}
		switch {
		case line.Debit != 0:
			_, _ = fmt.Fprintf(w, "  %s %s\n", padRight(name, 40), padLeft(formatAmount(line.Debit), 10))
		case line.Credit != 0:
			_, _ = fmt.Fprintf(w, "      %s %s\n", padRight(name, 36), padLeft(formatAmount(line.Credit), 21))
		default:
			_, _ = fmt.Fprintf(w, "  %s\n", dimStyle.Render("(blank line)"))
		}
	}
	_, _ = fmt.Fprintln(w)
}

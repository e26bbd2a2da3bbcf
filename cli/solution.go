package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/ledgerlab/bookledger/state"
)

// SolutionCmd loads a transaction's solution into its draft entry,
// replacing whatever lines the draft held.
type SolutionCmd struct {
	Transaction string `help:"Transaction ID (e.g. T3, A1, C2)." arg:""`
	Post        bool   `help:"Post the entry immediately after loading it." short:"p"`
}

func (cmd *SolutionCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()

	session, err := globals.OpenSession(runCtx)
	if err != nil {
		return err
	}
	defer session.Close()

	txn, stage, solution, err := session.ResolveSolution(cmd.Transaction)
	if err != nil {
		return err
	}

	if session.State.IsPosted(txn.ID) {
		printInfof(ctx.Stdout, "%s is already posted", txn.ID)
		return nil
	}

	if err := session.Dispatch(state.LoadSolution{
		TransactionID: txn.ID,
		Solution:      solution,
		Date:          txn.Date,
	}); err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Loaded %s solution into draft %s", stage, txn.ID))
	printDraft(ctx.Stdout, session, txn.ID)

	if cmd.Post {
		if err := postDraft(ctx, session, txn.ID); err != nil {
			return err
		}
	}

	return session.Save(runCtx)
}

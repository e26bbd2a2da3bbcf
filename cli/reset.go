package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ledgerlab/bookledger/state"
)

// ResetCmd wipes all drafts and posted entries.
type ResetCmd struct {
	Force bool `help:"Skip the confirmation prompt." short:"f"`
}

func (cmd *ResetCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()

	session, err := globals.OpenSession(runCtx)
	if err != nil {
		return err
	}
	defer session.Close()

	if !cmd.Force {
		confirmed, err := promptYesNo("Discard all progress and start over?")
		if err != nil {
			return err
		}
		if !confirmed {
			printInfof(ctx.Stdout, "Reset cancelled")
			return nil
		}
	}

	if err := session.Dispatch(state.Reset{}); err != nil {
		return err
	}
	if err := session.Save(runCtx); err != nil {
		return err
	}

	printSuccess(ctx.Stdout, "Ledger reset")
	return nil
}

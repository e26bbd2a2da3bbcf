package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/ledgerlab/bookledger/scenario"
)

// StatusCmd shows progress through the three transaction sequences.
type StatusCmd struct{}

func (cmd *StatusCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, err := globals.OpenSession(context.Background())
	if err != nil {
		return err
	}
	defer session.Close()

	company := session.Scenario.Company
	_, _ = fmt.Fprintf(ctx.Stdout, "%s\n", headerStyle.Render(company.Name))
	if company.Description != "" {
		_, _ = fmt.Fprintf(ctx.Stdout, "%s\n", dimStyle.Render(company.Description))
	}
	_, _ = fmt.Fprintln(ctx.Stdout)

	stages := []struct {
		stage scenario.Stage
		title string
	}{
		{scenario.StageInitial, "Journal entries"},
		{scenario.StageAdjusting, "Adjusting entries"},
		{scenario.StageClosing, "Closing entries"},
	}

	for _, s := range stages {
		txns := session.Scenario.Transactions(s.stage)
		posted := 0
		for _, txn := range txns {
			if session.State.IsPosted(txn.ID) {
				posted++
			}
		}

		_, _ = fmt.Fprintf(ctx.Stdout, "%s (%d/%d)\n", headerStyle.Render(s.title), posted, len(txns))
		for _, txn := range txns {
			label := txn.Summary
			if label == "" {
				label = txn.Description
			}
			if s.stage == scenario.StageClosing && label == "" {
				label = fmt.Sprintf("Closing entry %d", txn.Position)
			}

			if session.State.IsPosted(txn.ID) {
				_, _ = fmt.Fprintf(ctx.Stdout, "  %s %s  %s\n",
					successStyle.Render(successSymbol), txn.ID, dimStyle.Render(label))
			} else {
				_, _ = fmt.Fprintf(ctx.Stdout, "  %s %s  %s\n",
					infoStyle.Render(infoSymbol), txn.ID, label)
			}
		}
		_, _ = fmt.Fprintln(ctx.Stdout)
	}

	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ledgerlab/bookledger/book"
)

// WorksheetCmd prints the five-stage worksheet: unadjusted, adjusting,
// adjusted, closing, and post-closing trial balances side by side.
type WorksheetCmd struct {
	Wide bool `help:"Print all five stages regardless of terminal width." short:"w"`
}

const (
	worksheetNameWidth = 28
	worksheetColWidth  = 9
)

func (cmd *WorksheetCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, err := globals.OpenSession(context.Background())
	if err != nil {
		return err
	}
	defer session.Close()

	worksheet := book.BuildWorksheet(session.State.Posted, session.Scenario.Chart())
	if len(worksheet.Rows) == 0 {
		printInfof(ctx.Stdout, "Nothing posted yet")
		return nil
	}

	stages := cmd.visibleStages()
	renderWorksheet(ctx.Stdout, worksheet, stages)
	return nil
}

// visibleStages trims trailing columns when the terminal is too narrow
// for the full matrix, unless --wide forces all five.
func (cmd *WorksheetCmd) visibleStages() []book.Stage {
	if cmd.Wide {
		return book.Stages
	}

	width := terminalWidth()
	stages := book.Stages
	for len(stages) > 1 {
		needed := worksheetNameWidth + len(stages)*(2*worksheetColWidth+3)
		if needed <= width {
			break
		}
		stages = stages[:len(stages)-1]
	}
	return stages
}

func renderWorksheet(w io.Writer, worksheet *book.Worksheet, stages []book.Stage) {
	// Stage header row
	_, _ = fmt.Fprint(w, padRight("", worksheetNameWidth))
	for _, stage := range stages {
		header := truncate(stage.String(), 2*worksheetColWidth+1)
		_, _ = fmt.Fprintf(w, "  %s", headerStyle.Render(padLeft(header, 2*worksheetColWidth+1)))
	}
	_, _ = fmt.Fprintln(w)

	// Dr/Cr header row
	_, _ = fmt.Fprint(w, padRight("Account", worksheetNameWidth))
	for range stages {
		_, _ = fmt.Fprintf(w, "  %s %s",
			dimStyle.Render(padLeft("Dr", worksheetColWidth)),
			dimStyle.Render(padLeft("Cr", worksheetColWidth)))
	}
	_, _ = fmt.Fprintln(w)

	for _, row := range worksheet.Rows {
		_, _ = fmt.Fprint(w, padRight(truncate(row.Account.Label(), worksheetNameWidth), worksheetNameWidth))
		for _, stage := range stages {
			cell := row.Cells[stage]
			_, _ = fmt.Fprintf(w, "  %s %s",
				padLeft(formatAmount(cell.Debit), worksheetColWidth),
				padLeft(formatAmount(cell.Credit), worksheetColWidth))
		}
		_, _ = fmt.Fprintln(w)
	}

	rule := strings.Repeat("-", worksheetNameWidth+len(stages)*(2*worksheetColWidth+3))
	_, _ = fmt.Fprintln(w, dimStyle.Render(rule))

	_, _ = fmt.Fprint(w, padRight("Totals", worksheetNameWidth))
	for _, stage := range stages {
		totals := worksheet.Totals[stage]
		debits := padLeft(formatAmountZero(totals.Debits), worksheetColWidth)
		credits := padLeft(formatAmountZero(totals.Credits), worksheetColWidth)
		if worksheet.Balanced(stage) {
			_, _ = fmt.Fprintf(w, "  %s %s", debits, credits)
		} else {
			_, _ = fmt.Fprintf(w, "  %s %s", errorStyle.Render(debits), errorStyle.Render(credits))
		}
	}
	_, _ = fmt.Fprintln(w)
}

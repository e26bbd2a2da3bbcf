package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"

	"github.com/ledgerlab/bookledger/book"
	"github.com/ledgerlab/bookledger/state"
)

// JournalCmd interactively journalizes one transaction: the learner
// picks accounts and amounts line by line, then posts the entry.
type JournalCmd struct {
	Transaction string `help:"Transaction ID (e.g. T3, A1, C2)." arg:""`
}

func (cmd *JournalCmd) Run(ctx *kong.Context, globals *Globals) error {
	if !isTerminal() {
		return fmt.Errorf("journal requires an interactive terminal; use the solution command instead")
	}

	runCtx := context.Background()

	session, err := globals.OpenSession(runCtx)
	if err != nil {
		return err
	}
	defer session.Close()

	txn, _, ok := session.Scenario.Transaction(cmd.Transaction)
	if !ok {
		return fmt.Errorf("unknown transaction %q", cmd.Transaction)
	}
	if session.State.IsPosted(txn.ID) {
		printInfof(ctx.Stdout, "%s is already posted", txn.ID)
		return nil
	}

	_, _ = fmt.Fprintf(ctx.Stdout, "%s %s\n", headerStyle.Render(txn.ID), txn.Description)
	_, _ = fmt.Fprintln(ctx.Stdout)

	if txn.Date != "" {
		if err := cmd.setDate(session, txn.ID, txn.Date); err != nil {
			return err
		}
	}

	for {
		account, done, err := cmd.pickAccount(session)
		if err != nil {
			return err
		}
		if done {
			break
		}

		side, amount, err := cmd.readAmount(session, account)
		if err != nil {
			return err
		}

		if err := cmd.addLine(session, txn.ID, account, side, amount); err != nil {
			return err
		}
	}

	printDraft(ctx.Stdout, session, txn.ID)

	confirmed, err := promptYesNo("Post this entry?")
	if err != nil {
		return err
	}
	if confirmed {
		if err := postDraft(ctx, session, txn.ID); err != nil {
			// The draft survives, so a failed attempt can be retried.
			if saveErr := session.Save(runCtx); saveErr != nil {
				return saveErr
			}
			return err
		}
	} else {
		printInfof(ctx.Stdout, "Draft saved; post it later with: bookledger post %s", txn.ID)
	}

	return session.Save(runCtx)
}

func (cmd *JournalCmd) setDate(session *Session, id, date string) error {
	return session.Dispatch(state.UpdateLine{
		TransactionID: id,
		LineID:        state.DateLineID,
		Field:         "date",
		Value:         date,
	})
}

// pickAccount prompts for the next line's account, or reports the
// entry is complete.
func (cmd *JournalCmd) pickAccount(session *Session) (int, bool, error) {
	const doneValue = 0

	options := []huh.Option[int]{huh.NewOption("(done - no more lines)", doneValue)}
	for _, account := range session.Scenario.Chart().Accounts() {
		options = append(options, huh.NewOption(account.Label(), account.Number))
	}

	var selected int
	form := huh.NewSelect[int]().
		Title("Account").
		Options(options...).
		Value(&selected)

	if err := form.Run(); err != nil {
		return 0, false, fmt.Errorf("failed to read account: %w", err)
	}
	return selected, selected == doneValue, nil
}

// readAmount prompts for the line's side and amount.
func (cmd *JournalCmd) readAmount(session *Session, accountNumber int) (book.Side, int64, error) {
	account, _ := session.Scenario.Chart().Account(accountNumber)

	var side book.Side
	sideForm := huh.NewSelect[book.Side]().
		Title(fmt.Sprintf("Side for %s", account.Label())).
		Options(
			huh.NewOption("Debit", book.DebitSide),
			huh.NewOption("Credit", book.CreditSide),
		).
		Value(&side)
	if err := sideForm.Run(); err != nil {
		return side, 0, fmt.Errorf("failed to read side: %w", err)
	}

	var raw string
	amountForm := huh.NewInput().
		Title("Amount").
		Validate(func(value string) error {
			_, err := book.ParseAmount(value)
			return err
		}).
		Value(&raw)
	if err := amountForm.Run(); err != nil {
		return side, 0, fmt.Errorf("failed to read amount: %w", err)
	}

	amount, err := book.ParseAmount(raw)
	if err != nil {
		return side, 0, err
	}
	return side, amount, nil
}

// addLine appends a line to the draft and fills its fields through the
// dispatcher, so every value passes the same validation the web API
// applies.
func (cmd *JournalCmd) addLine(session *Session, id string, account int, side book.Side, amount int64) error {
	if err := session.Dispatch(state.AddLine{TransactionID: id}); err != nil {
		return err
	}

	draft, _ := session.State.Draft(id)
	lineID := draft.Lines[len(draft.Lines)-1].ID

	if err := session.Dispatch(state.UpdateLine{
		TransactionID: id,
		LineID:        lineID,
		Field:         "account",
		Value:         strconv.Itoa(account),
	}); err != nil {
		return err
	}

	field := "debit"
	if side == book.CreditSide {
		field = "credit"
	}
	return session.Dispatch(state.UpdateLine{
		TransactionID: id,
		LineID:        lineID,
		Field:         field,
		Value:         strconv.FormatInt(amount, 10),
	})
}

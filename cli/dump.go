package cli

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
)

// DumpCmd prints the raw ledger state for debugging.
type DumpCmd struct{}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, err := globals.OpenSession(context.Background())
	if err != nil {
		return err
	}
	defer session.Close()

	repr.Println(session.State)
	return nil
}

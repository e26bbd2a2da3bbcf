package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Snapshot string `help:"Snapshot file holding ledger progress." default:"bookledger.json" type:"path"`
	DB       string `help:"Keep the snapshot in a SQLite database instead of a JSON file." type:"path"`
	Scenario string `help:"Scenario YAML file (defaults to the bundled consulting scenario)." type:"existingfile"`
}

type Commands struct {
	Globals

	Status     StatusCmd     `cmd:"" help:"Show progress through the bookkeeping cycle."`
	Journal    JournalCmd    `cmd:"" help:"Journalize a transaction interactively."`
	Solution   SolutionCmd   `cmd:"" help:"Load a transaction's solution into its draft entry."`
	Post       PostCmd       `cmd:"" help:"Validate a draft entry and post it to the ledger."`
	Check      CheckCmd      `cmd:"" help:"Verify the posted ledger balances at every stage."`
	Worksheet  WorksheetCmd  `cmd:"" help:"Print the five-stage worksheet."`
	Balances   BalancesCmd   `cmd:"" help:"Print per-account ledger balances."`
	Statements StatementsCmd `cmd:"" help:"Print the financial statements."`
	Closing    ClosingCmd    `cmd:"" help:"Show the derived closing entry for a step."`
	Reset      ResetCmd      `cmd:"" help:"Discard all progress and start over."`
	Dump       DumpCmd       `cmd:"" help:"Dump the raw ledger state for debugging."`
	Serve      ServeCmd      `cmd:"" help:"Start the web server."`
}

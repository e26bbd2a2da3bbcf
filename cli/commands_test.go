package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/ledgerlab/bookledger/book"
	"github.com/ledgerlab/bookledger/scenario"
	"github.com/ledgerlab/bookledger/state"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "", formatAmount(0))
	assert.Equal(t, "5", formatAmount(5))
	assert.Equal(t, "950", formatAmount(950))
	assert.Equal(t, "1,000", formatAmount(1000))
	assert.Equal(t, "35,500", formatAmount(35500))
	assert.Equal(t, "1,234,567", formatAmount(1234567))
	assert.Equal(t, "(5,000)", formatAmount(-5000))
	assert.Equal(t, "0", formatAmountZero(0))
}

func TestPadding(t *testing.T) {
	assert.Equal(t, "   abc", padLeft("abc", 6))
	assert.Equal(t, "abc   ", padRight("abc", 6))
	assert.Equal(t, "abcdef", padLeft("abcdef", 3))

	// Wide characters count as two columns.
	assert.Equal(t, "  現金", padLeft("現金", 6))
}

func testGlobals(t *testing.T) *Globals {
	t.Helper()
	return &Globals{Snapshot: filepath.Join(t.TempDir(), "bookledger.json")}
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	globals := testGlobals(t)

	session, err := globals.OpenSession(ctx)
	assert.NoError(t, err)
	defer session.Close()

	txn, stage, solution, err := session.ResolveSolution("T1")
	assert.NoError(t, err)
	assert.Equal(t, scenario.StageInitial, stage)

	assert.NoError(t, session.Dispatch(state.LoadSolution{
		TransactionID: txn.ID,
		Solution:      solution,
		Date:          txn.Date,
	}))
	assert.NoError(t, session.Dispatch(state.Post{
		TransactionID: txn.ID,
		Date:          txn.Date,
		Solution:      solution,
	}))
	assert.NoError(t, session.Save(ctx))

	// A fresh session sees the posted entry.
	reopened, err := globals.OpenSession(ctx)
	assert.NoError(t, err)
	defer reopened.Close()

	assert.True(t, reopened.State.IsPosted("T1"))
	assert.Equal(t, 1, len(reopened.State.Posted))
}

func TestSessionSQLite(t *testing.T) {
	ctx := context.Background()
	globals := &Globals{DB: filepath.Join(t.TempDir(), "bookledger.db")}

	session, err := globals.OpenSession(ctx)
	assert.NoError(t, err)

	assert.NoError(t, session.Dispatch(state.AddLine{TransactionID: "T1"}))
	assert.NoError(t, session.Save(ctx))
	session.Close()

	reopened, err := globals.OpenSession(ctx)
	assert.NoError(t, err)
	defer reopened.Close()

	_, ok := reopened.State.Draft("T1")
	assert.True(t, ok)
}

func TestResolveSolution(t *testing.T) {
	ctx := context.Background()
	globals := testGlobals(t)

	session, err := globals.OpenSession(ctx)
	assert.NoError(t, err)
	defer session.Close()

	t.Run("Scripted", func(t *testing.T) {
		_, stage, solution, err := session.ResolveSolution("T3")
		assert.NoError(t, err)
		assert.Equal(t, scenario.StageInitial, stage)
		assert.Equal(t, int64(6000), solution[101].Debits)
		assert.Equal(t, int64(6000), solution[401].Credits)
	})

	t.Run("ClosingDerived", func(t *testing.T) {
		txn, stage, solution, err := session.ResolveSolution("C1")
		assert.NoError(t, err)
		assert.Equal(t, scenario.StageClosing, stage)
		assert.Equal(t, 1, txn.Position)
		// No revenue posted yet, so there is nothing to close.
		assert.Equal(t, 0, len(solution))
	})

	t.Run("Unknown", func(t *testing.T) {
		_, _, _, err := session.ResolveSolution("Z9")
		assert.Error(t, err)
	})
}

func TestRenderWorksheet(t *testing.T) {
	sc := scenario.Consulting()
	entries := []book.PostedEntry{
		{
			TransactionID: "T1",
			Date:          "2024-01-01",
			Lines: []book.PostedLine{
				{Account: 101, Debit: 100000},
				{Account: 301, Credit: 100000},
			},
		},
	}
	worksheet := book.BuildWorksheet(entries, sc.Chart())

	var buf bytes.Buffer
	renderWorksheet(&buf, worksheet, book.Stages)
	output := buf.String()

	assert.True(t, strings.Contains(output, "101 - Cash"))
	assert.True(t, strings.Contains(output, "301 - Common Stock"))
	assert.True(t, strings.Contains(output, "100,000"))
	assert.True(t, strings.Contains(output, "Totals"))
	assert.True(t, strings.Contains(output, "Unadjusted"))
}

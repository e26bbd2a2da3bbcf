package cli

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatAmount renders a whole-unit amount with thousands separators.
// Zero renders empty, matching ledger column conventions.
func formatAmount(v int64) string {
	if v == 0 {
		return ""
	}

	negative := v < 0
	if negative {
		v = -v
	}

	digits := strconv.FormatInt(v, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if negative {
		return "(" + b.String() + ")"
	}
	return b.String()
}

// formatAmountZero is formatAmount except zero renders as "0", for
// totals rows where an empty cell would read as missing data.
func formatAmountZero(v int64) string {
	if v == 0 {
		return "0"
	}
	return formatAmount(v)
}

// padLeft right-aligns a cell to the given display width. Widths are
// measured with runewidth so wide characters in account names do not
// skew the columns.
func padLeft(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}

// padRight left-aligns a cell to the given display width.
func padRight(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// truncate shortens a cell to the given display width with an ellipsis.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

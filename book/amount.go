package book

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-entered amount string into whole units.
// The empty string parses to zero (an unset field). Fractional input is
// rounded half away from zero; negative amounts are rejected so the
// debit/credit columns stay sign-free.
func ParseAmount(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative amount %q", value)
	}

	return d.Round(0).IntPart(), nil
}

// MustParseAmount is ParseAmount for values known to be valid. It panics
// on error and is intended for tests and embedded reference data.
func MustParseAmount(value string) int64 {
	n, err := ParseAmount(value)
	if err != nil {
		panic(err)
	}
	return n
}

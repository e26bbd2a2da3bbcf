// Package scenario supplies the immutable reference data the engine
// consumes at startup: the chart of accounts, the transaction catalog,
// and the scripted solutions for the initial and adjusting entries.
// Scenarios are described in YAML; the bundled consulting-firm scenario
// is embedded in the binary.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ledgerlab/bookledger/book"
)

// Stage identifies which phase of the bookkeeping cycle a transaction
// belongs to.
type Stage string

const (
	StageInitial   Stage = "initial"
	StageAdjusting Stage = "adjusting"
	StageClosing   Stage = "closing"
)

// Company describes the business behind a scenario.
type Company struct {
	Name        string `yaml:"name" json:"name"`
	Industry    string `yaml:"industry" json:"industry"`
	Description string `yaml:"description" json:"description"`
}

// Transaction is one catalog entry for the learner to journalize.
// Closing transactions carry no fixed description beyond their ordinal
// position in the closing process (1-4).
type Transaction struct {
	ID          string `yaml:"id" json:"id"`
	Date        string `yaml:"date" json:"date"`
	Description string `yaml:"description" json:"description"`
	Summary     string `yaml:"summary,omitempty" json:"summary,omitempty"`
	Position    int    `yaml:"position,omitempty" json:"position,omitempty"`
}

// Scenario bundles a company, its chart of accounts, the three ordered
// transaction sequences, and the scripted solutions.
type Scenario struct {
	Company   Company                  `yaml:"company"`
	Accounts  []book.Account           `yaml:"accounts"`
	Roles     book.Roles               `yaml:"roles"`
	Initial   []Transaction            `yaml:"initialTransactions"`
	Adjusting []Transaction            `yaml:"adjustingTransactions"`
	Closing   []Transaction            `yaml:"closingTransactions"`
	Solutions map[string]book.Solution `yaml:"solutions"`

	chart *book.Chart
}

// Load parses a scenario from YAML and validates its chart.
func Load(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	chart, err := book.NewChart(sc.Accounts, sc.Roles)
	if err != nil {
		return nil, fmt.Errorf("invalid chart of accounts: %w", err)
	}
	sc.chart = chart

	for id, solution := range sc.Solutions {
		if err := checkSolution(chart, solution); err != nil {
			return nil, fmt.Errorf("solution %s: %w", id, err)
		}
	}

	for i, txn := range sc.Closing {
		if txn.Position < 1 || txn.Position > book.NumClosingSteps {
			return nil, fmt.Errorf("closing transaction %s: position %d out of range", txn.ID, txn.Position)
		}
		if txn.Position != i+1 {
			return nil, fmt.Errorf("closing transaction %s: expected position %d, got %d", txn.ID, i+1, txn.Position)
		}
	}

	return &sc, nil
}

// LoadFile reads and parses a scenario YAML file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Load(data)
}

// checkSolution verifies a scripted solution references known accounts
// and balances.
func checkSolution(chart *book.Chart, solution book.Solution) error {
	var debits, credits int64
	for number, totals := range solution {
		if _, ok := chart.Account(number); !ok {
			return fmt.Errorf("references unknown account %d", number)
		}
		debits += totals.Debits
		credits += totals.Credits
	}
	if debits != credits {
		return fmt.Errorf("does not balance: debits %d, credits %d", debits, credits)
	}
	return nil
}

// Chart returns the validated chart of accounts.
func (sc *Scenario) Chart() *book.Chart {
	return sc.chart
}

// Solution returns the scripted solution for a transaction, or an empty
// solution when none is scripted (closing solutions are derived, not
// scripted).
func (sc *Scenario) Solution(transactionID string) book.Solution {
	return sc.Solutions[transactionID]
}

// Transaction looks a transaction up across all three sequences.
func (sc *Scenario) Transaction(id string) (Transaction, Stage, bool) {
	for _, txn := range sc.Initial {
		if txn.ID == id {
			return txn, StageInitial, true
		}
	}
	for _, txn := range sc.Adjusting {
		if txn.ID == id {
			return txn, StageAdjusting, true
		}
	}
	for _, txn := range sc.Closing {
		if txn.ID == id {
			return txn, StageClosing, true
		}
	}
	return Transaction{}, "", false
}

// Transactions returns the catalog for one stage in order.
func (sc *Scenario) Transactions(stage Stage) []Transaction {
	switch stage {
	case StageInitial:
		return sc.Initial
	case StageAdjusting:
		return sc.Adjusting
	case StageClosing:
		return sc.Closing
	}
	return nil
}

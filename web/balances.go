package web

import (
	"net/http"

	"github.com/ledgerlab/bookledger/book"
)

// AccountBalance is one account's aggregated totals plus its netted
// balance under the requested view.
type AccountBalance struct {
	Account book.Account `json:"account"`
	Totals  book.Totals  `json:"totals"`
	Balance int64        `json:"balance"`
}

// BalancesResponse is the JSON response structure for the balances
// endpoint.
type BalancesResponse struct {
	View     string           `json:"view"`
	Scope    string           `json:"scope"`
	Balances []AccountBalance `json:"balances"`
	Trial    book.TrialTotals `json:"trial"`
}

// handleGetBalances handles GET requests to /api/balances.
//
// Query parameters:
//   - view: "display" (netted to the normal side, clamped at zero;
//     default) or "statement" (signed by category, so contra-accounts
//     show negative).
//   - scope: "all" (every posted entry; default) or "adjusted"
//     (closing entries excluded).
//
// Accounts come back in chart order, restricted to accounts touched by
// at least one entry in scope.
func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	if view == "" {
		view = "display"
	}
	if view != "display" && view != "statement" {
		http.Error(w, "invalid view: "+view, http.StatusBadRequest)
		return
	}

	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = "all"
	}
	var filter book.Filter
	switch scope {
	case "all":
	case "adjusted":
		filter = book.ExcludeClosing
	default:
		http.Error(w, "invalid scope: "+scope, http.StatusBadRequest)
		return
	}

	chart := s.scenario.Chart()
	aggregate := book.Aggregate(s.currentState().Posted, filter)

	balances := make([]AccountBalance, 0, len(aggregate))
	for _, account := range chart.Accounts() {
		totals, ok := aggregate[account.Number]
		if !ok {
			continue
		}

		var balance int64
		if view == "display" {
			balance = book.DisplayBalance(account.NormalBalance, totals)
		} else {
			balance = book.StatementBalance(account.Category, totals)
		}

		balances = append(balances, AccountBalance{
			Account: account,
			Totals:  totals,
			Balance: balance,
		})
	}

	writeJSONResponse(w, &BalancesResponse{
		View:     view,
		Scope:    scope,
		Balances: balances,
		Trial:    book.SummarizeTrial(aggregate),
	})
}

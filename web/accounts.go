package web

import (
	"net/http"

	"github.com/ledgerlab/bookledger/book"
	"github.com/ledgerlab/bookledger/scenario"
)

// AccountsResponse is the JSON response structure for the accounts
// endpoint. Accounts come back in chart order (ascending number).
type AccountsResponse struct {
	Company  scenario.Company `json:"company"`
	Accounts []book.Account   `json:"accounts"`
	Roles    book.Roles       `json:"roles"`
}

// handleGetAccounts handles GET requests to /api/accounts.
func (s *Server) handleGetAccounts(w http.ResponseWriter, r *http.Request) {
	chart := s.scenario.Chart()
	writeJSONResponse(w, &AccountsResponse{
		Company:  s.scenario.Company,
		Accounts: chart.Accounts(),
		Roles:    chart.Roles(),
	})
}

// TransactionsResponse is the JSON response structure for the
// transactions endpoint.
type TransactionsResponse struct {
	Stage        scenario.Stage         `json:"stage,omitempty"`
	Transactions []scenario.Transaction `json:"transactions"`
}

// handleGetTransactions handles GET requests to /api/transactions.
//
// Query parameters:
//   - stage: "initial", "adjusting", or "closing". If omitted, returns
//     all three sequences concatenated in cycle order.
func (s *Server) handleGetTransactions(w http.ResponseWriter, r *http.Request) {
	stageParam := r.URL.Query().Get("stage")
	if stageParam == "" {
		var all []scenario.Transaction
		for _, stage := range []scenario.Stage{scenario.StageInitial, scenario.StageAdjusting, scenario.StageClosing} {
			all = append(all, s.scenario.Transactions(stage)...)
		}
		writeJSONResponse(w, &TransactionsResponse{Transactions: all})
		return
	}

	stage := scenario.Stage(stageParam)
	switch stage {
	case scenario.StageInitial, scenario.StageAdjusting, scenario.StageClosing:
	default:
		http.Error(w, "invalid stage: "+stageParam, http.StatusBadRequest)
		return
	}

	writeJSONResponse(w, &TransactionsResponse{
		Stage:        stage,
		Transactions: s.scenario.Transactions(stage),
	})
}

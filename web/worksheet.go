package web

import (
	"net/http"
	"strconv"

	"github.com/ledgerlab/bookledger/book"
)

// WorksheetResponse is the JSON response structure for the worksheet
// endpoint.
type WorksheetResponse struct {
	Stages    []string        `json:"stages"`
	Worksheet *book.Worksheet `json:"worksheet"`
}

// handleGetWorksheet handles GET requests to /api/worksheet. The
// worksheet is rebuilt from the posted ledger on every request.
func (s *Server) handleGetWorksheet(w http.ResponseWriter, r *http.Request) {
	stages := make([]string, 0, book.NumStages)
	for _, stage := range book.Stages {
		stages = append(stages, stage.String())
	}

	writeJSONResponse(w, &WorksheetResponse{
		Stages:    stages,
		Worksheet: book.BuildWorksheet(s.currentState().Posted, s.scenario.Chart()),
	})
}

// ClosingResponse is the JSON response structure for the closing
// endpoint.
type ClosingResponse struct {
	Step     int           `json:"step"`
	Solution book.Solution `json:"solution"`
}

// handleGetClosing handles GET requests to /api/closing/{step}. The
// solution is derived from the non-closing entries posted so far, so
// it stays stable while the closing entries themselves are posted.
func (s *Server) handleGetClosing(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(r.PathValue("step"))
	if err != nil {
		http.Error(w, "invalid closing step: "+r.PathValue("step"), http.StatusBadRequest)
		return
	}

	solution, err := book.DeriveClosingSolution(step, s.currentState().Posted, s.scenario.Chart())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSONResponse(w, &ClosingResponse{Step: step, Solution: solution})
}

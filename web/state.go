package web

import (
	"net/http"

	"github.com/ledgerlab/bookledger/scenario"
	"github.com/ledgerlab/bookledger/state"
)

// StageProgress counts how many of a stage's transactions have been
// posted so far.
type StageProgress struct {
	Stage  scenario.Stage `json:"stage"`
	Posted int            `json:"posted"`
	Total  int            `json:"total"`
}

// StateResponse is the JSON response structure for the state endpoint
// and for successful actions.
type StateResponse struct {
	State    state.State     `json:"state"`
	Progress []StageProgress `json:"progress"`
}

// handleGetState handles GET requests to /api/state.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, s.stateResponse(s.currentState()))
}

func (s *Server) stateResponse(st state.State) *StateResponse {
	stages := []scenario.Stage{scenario.StageInitial, scenario.StageAdjusting, scenario.StageClosing}

	progress := make([]StageProgress, 0, len(stages))
	for _, stage := range stages {
		txns := s.scenario.Transactions(stage)
		posted := 0
		for _, txn := range txns {
			if st.IsPosted(txn.ID) {
				posted++
			}
		}
		progress = append(progress, StageProgress{Stage: stage, Posted: posted, Total: len(txns)})
	}

	return &StateResponse{State: st, Progress: progress}
}

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ledgerlab/bookledger/book"
	"github.com/ledgerlab/bookledger/scenario"
	"github.com/ledgerlab/bookledger/state"
)

// actionRequest is the JSON envelope for POST /api/actions. Type
// selects the action; the remaining fields are read per type.
type actionRequest struct {
	Type          string `json:"type"`
	TransactionID string `json:"transactionId,omitempty"`
	LineID        string `json:"lineId,omitempty"`
	Field         string `json:"field,omitempty"`
	Value         string `json:"value,omitempty"`
}

// ActionErrorResponse is the JSON body returned when an action is
// rejected. Reason is set for validation failures; Details carries the
// per-account comparison on a solution mismatch.
type ActionErrorResponse struct {
	Error   string                  `json:"error"`
	Reason  book.Reason             `json:"reason,omitempty"`
	Details map[int]book.Comparison `json:"details,omitempty"`
}

// handlePostAction handles POST requests to /api/actions. The request
// names an action; posting and solution loading resolve the expected
// solution server-side, so clients never submit answer data.
func (s *Server) handlePostAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	action, err := s.buildAction(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	next, err := s.dispatch(action)
	if err != nil {
		writeActionError(w, err)
		return
	}

	writeJSONResponse(w, s.stateResponse(next))
}

// buildAction translates a request envelope into a dispatchable action.
func (s *Server) buildAction(req actionRequest) (state.Action, error) {
	switch req.Type {
	case "addLine":
		return state.AddLine{TransactionID: req.TransactionID}, nil

	case "updateLine":
		return state.UpdateLine{
			TransactionID: req.TransactionID,
			LineID:        req.LineID,
			Field:         req.Field,
			Value:         req.Value,
		}, nil

	case "removeLine":
		return state.RemoveLine{TransactionID: req.TransactionID, LineID: req.LineID}, nil

	case "post":
		txn, stage, solution, err := s.resolveTransaction(req.TransactionID)
		if err != nil {
			return nil, err
		}
		return state.Post{
			TransactionID: txn.ID,
			IsAdjusting:   stage == scenario.StageAdjusting,
			IsClosing:     stage == scenario.StageClosing,
			Date:          txn.Date,
			Solution:      solution,
		}, nil

	case "loadSolution":
		txn, _, solution, err := s.resolveTransaction(req.TransactionID)
		if err != nil {
			return nil, err
		}
		return state.LoadSolution{
			TransactionID: txn.ID,
			Solution:      solution,
			Date:          txn.Date,
		}, nil

	case "reset":
		return state.Reset{}, nil
	}

	return nil, fmt.Errorf("unknown action type %q", req.Type)
}

// resolveTransaction looks the transaction up in the catalog and
// resolves its expected solution: scripted for the initial and
// adjusting stages, derived from the posted ledger for closing.
func (s *Server) resolveTransaction(id string) (scenario.Transaction, scenario.Stage, book.Solution, error) {
	txn, stage, ok := s.scenario.Transaction(id)
	if !ok {
		return scenario.Transaction{}, "", nil, fmt.Errorf("unknown transaction %q", id)
	}

	if stage != scenario.StageClosing {
		return txn, stage, s.scenario.Solution(txn.ID), nil
	}

	solution, err := book.DeriveClosingSolution(txn.Position, s.currentState().Posted, s.scenario.Chart())
	if err != nil {
		return scenario.Transaction{}, "", nil, err
	}
	return txn, stage, solution, nil
}

// writeActionError maps a dispatch error onto an HTTP status: 422 for
// validation failures with a reason code, 400 for everything else.
func writeActionError(w http.ResponseWriter, err error) {
	resp := &ActionErrorResponse{Error: err.Error()}

	status := http.StatusBadRequest
	if reason, ok := book.ReasonOf(err); ok {
		status = http.StatusUnprocessableEntity
		resp.Reason = reason

		var mismatch *book.SolutionMismatchError
		if errors.As(err, &mismatch) {
			resp.Details = mismatch.Details
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ross1116/pokebattlesim/internal/battle"
)

func (server *Server) handleCreateBattle(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, fmt.Errorf("%w: %w", errMalformedInput, err))
		return
	}
	s, err := server.createSession(r.Context(), req.Player)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.snapshot())
}

func (server *Server) handleGetBattle(w http.ResponseWriter, r *http.Request) {
	s, err := server.session(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (server *Server) handlePlayTurn(w http.ResponseWriter, r *http.Request) {
	s, err := server.session(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	var action battle.BattleAction
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeError(w, fmt.Errorf("%w: %w", errMalformedInput, err))
		return
	}

	result, err := s.playTurn(action, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	if result.Winner != "" {
		server.saveReport(r.Context(), s)
	}
	writeJSON(w, http.StatusOK, BattleResponse{ID: s.id, View: result.View, Log: result.Log, Winner: result.Winner})
}

func (server *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := server.reports.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

package server

import (
	"errors"

	"github.com/ross1116/pokebattlesim/internal/ai"
	"github.com/ross1116/pokebattlesim/internal/battle"
)

var (
	ErrBattleOver     = errors.New("battle is over")
	ErrInvalidAction  = errors.New("invalid action")
	ErrUnknownBattle  = errors.New("unknown battle")
	errMalformedInput = errors.New("malformed request body")
)

type Config struct {
	Host    string
	Port    string
	Depth   int
	Weights ai.Weights
	// Seed makes every battle and AI generator deterministic when non-zero.
	Seed uint64
}

// Response is the frame written to websocket clients: log, state, game_end or error.
type Response struct {
	Type    string                 `json:"type"`
	Message map[string]interface{} `json:"message"`
}

type createRequest struct {
	Player string `json:"player"`
}

// BattleResponse is the HTTP body for battle creation, lookup and turns.
type BattleResponse struct {
	ID     string          `json:"id"`
	View   battle.SideView `json:"view"`
	Log    []string        `json:"log"`
	Winner string          `json:"winner,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

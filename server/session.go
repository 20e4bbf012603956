package server

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/ross1116/pokebattlesim/internal/ai"
	"github.com/ross1116/pokebattlesim/internal/battle"
	"github.com/ross1116/pokebattlesim/internal/store"
)

// session is one player-versus-AI battle. Every access goes through mu.
type session struct {
	id         string
	playerName string
	started    time.Time
	depth      int

	mu       sync.Mutex
	battle   *battle.Battle
	bot      *ai.AI
	lines    []string
	push     func(string)
	finished bool
	saved    bool
}

func newSession(id, playerName string, player, opp []battle.BattlePokemon, cfg *Config, battleRng, aiRng *rand.Rand) (*session, error) {
	s := &session{id: id, playerName: playerName, started: time.Now().UTC(), depth: cfg.Depth}
	b, err := battle.New(player, opp,
		battle.WithRand(battleRng),
		battle.WithSideNames(playerName, "AI"),
		battle.WithLogSink(s.record),
	)
	if err != nil {
		return nil, err
	}
	s.battle = b
	s.bot = ai.New(battle.SideAI, cfg.Weights, ai.WithRand(aiRng))
	return s, nil
}

// record is the battle's log sink. It runs inside ExecuteTurn, with mu held.
func (s *session) record(line string) {
	s.lines = append(s.lines, line)
	if s.push != nil {
		s.push(line)
	}
}

type turnResult struct {
	Log    []string
	View   battle.SideView
	Winner string
}

// playTurn validates the player's action, lets the AI answer and resolves the turn.
// push, when set, receives each log line as it is produced.
func (s *session) playTurn(action battle.BattleAction, push func(string)) (turnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return turnResult{}, ErrBattleOver
	}

	state := s.battle.State()
	if action.ActorID == "" {
		action.ActorID = state.Player().Active().InstanceID
	}
	if err := s.battle.ValidateAction(battle.SidePlayer, action); err != nil {
		return turnResult{}, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	reply := s.bot.BestAction(s.battle, s.depth)

	s.lines, s.push = nil, push
	s.battle.ExecuteTurn(action, reply)
	s.push = nil

	result := turnResult{Log: slices.Clone(s.lines), View: battle.ViewFor(state, battle.SidePlayer)}
	if winner, ok := state.Winner(); ok {
		s.finished = true
		result.Winner = state.Side(winner).Name
	}
	return result, nil
}

func (s *session) snapshot() BattleResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.battle.State()
	resp := BattleResponse{
		ID:   s.id,
		View: battle.ViewFor(state, battle.SidePlayer),
		Log:  slices.Clone(state.Log),
	}
	if winner, ok := state.Winner(); ok {
		resp.Winner = state.Side(winner).Name
	}
	return resp
}

// report returns the record to persist, once, after the battle has ended.
func (s *session) report() (*store.BattleReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.finished || s.saved {
		return nil, false
	}
	s.saved = true
	state := s.battle.State()
	winner, _ := state.Winner()
	return &store.BattleReport{
		ID:         s.id,
		Winner:     state.Side(winner).Name,
		PlayerName: s.playerName,
		Turns:      state.Turn - 1,
		Log:        slices.Clone(state.Log),
		StartedAt:  s.started,
		FinishedAt: time.Now().UTC(),
	}, true
}

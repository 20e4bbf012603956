// Package ai picks actions for one side of a battle by simulating the next turn
// on cloned state and scoring the outcome.
package ai

import (
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/ross1116/pokebattlesim/internal/battle"
	"github.com/ross1116/pokebattlesim/internal/pokemon"
)

// Weights tune EvaluateState and BestSwitch. KO must dominate HP, which must dominate the rest.
type Weights struct {
	HP            float64 `yaml:"hp"`
	KO            float64 `yaml:"ko"`
	Speed         float64 `yaml:"speed"`
	TypeAdvantage float64 `yaml:"type_advantage"`
	Status        float64 `yaml:"status"`
}

func DefaultWeights() Weights {
	return Weights{HP: 100, KO: 10000, Speed: 20, TypeAdvantage: 50, Status: -30}
}

type AI struct {
	side    battle.SideID
	weights Weights
	rng     *rand.Rand
}

type Option func(*AI)

func WithRand(rng *rand.Rand) Option {
	return func(a *AI) { a.rng = rng }
}

func New(side battle.SideID, w Weights, opts ...Option) *AI {
	a := &AI{side: side, weights: w}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return a
}

// BestAction chooses the action for the AI's side in b. The battle is not modified.
func (a *AI) BestAction(b *battle.Battle, depth int) battle.BattleAction {
	return a.Decide(b.State(), depth)
}

// Decide is BestAction over a bare state. depth 1 looks one turn ahead; each extra level
// searches one more turn while both active combatants are still standing.
func (a *AI) Decide(state *battle.BattleState, depth int) battle.BattleAction {
	action, _ := a.search(state, max(depth, 1))
	return action
}

func (a *AI) search(state *battle.BattleState, depth int) (battle.BattleAction, float64) {
	active := state.Side(a.side).Active()
	if active.IsFainted() {
		return a.BestSwitch(state), a.EvaluateState(state)
	}

	candidates := lo.Filter(battle.LegalActions(state, a.side), func(act battle.BattleAction, _ int) bool {
		return act.Kind == battle.ActionMove
	})
	if len(candidates) == 0 {
		log.Debug().Str("pokemon", active.Name).Msg("no usable moves, switching out")
		return a.BestSwitch(state), a.EvaluateState(state)
	}

	predicted := a.PredictPlayerMove(state)
	best, bestScore := candidates[0], math.Inf(-1)
	for _, candidate := range candidates {
		next := a.simulate(state, predicted, candidate)
		score := a.EvaluateState(next)
		if depth > 1 && !next.Side(a.side).Active().IsFainted() && !next.Opponent(a.side).Active().IsFainted() {
			_, score = a.search(next, depth-1)
		}
		log.Debug().Int("slot", candidate.Index).Float64("score", score).Int("depth", depth).Msg("scored candidate")
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return best, bestScore
}

// simulate plays one turn on a copy of state and returns the resulting state.
func (a *AI) simulate(state *battle.BattleState, opponent, own battle.BattleAction) *battle.BattleState {
	sim := battle.Restore(*state,
		battle.WithRand(rand.New(rand.NewPCG(a.rng.Uint64(), a.rng.Uint64()))),
		battle.WithLogger(zerolog.Nop()),
	)
	if a.side == battle.SideAI {
		sim.ExecuteTurn(opponent, own)
	} else {
		sim.ExecuteTurn(own, opponent)
	}
	return sim.State()
}

// PredictPlayerMove guesses the opponent's reply as the move that rolls the most damage
// against the AI's current active combatant.
func (a *AI) PredictPlayerMove(state *battle.BattleState) battle.BattleAction {
	opp := state.Opponent(a.side)
	attacker := opp.Active()
	defender := state.Side(a.side).Active()

	if attacker.IsFainted() {
		if legal := battle.LegalActions(state, a.side.Other()); len(legal) > 0 {
			return legal[0]
		}
		return battle.StruggleAction(attacker.InstanceID)
	}

	bestSlot, bestDamage := -1, -1
	for i := range attacker.Moves {
		move := &attacker.Moves[i]
		if move.PP <= 0 {
			continue
		}
		dmg := battle.CalculateDamage(attacker, defender, move, a.rng).Damage
		if dmg > bestDamage {
			bestSlot, bestDamage = i, dmg
		}
	}
	if bestSlot < 0 {
		if legal := battle.LegalActions(state, a.side.Other()); len(legal) > 0 {
			return legal[0]
		}
		return battle.StruggleAction(attacker.InstanceID)
	}
	return battle.MoveAction(attacker.InstanceID, bestSlot)
}

// BestSwitch scores every healthy bench member on remaining HP and type matchup against the
// opposing active combatant. With nobody left it returns the struggle sentinel.
func (a *AI) BestSwitch(state *battle.BattleState) battle.BattleAction {
	own := state.Side(a.side)
	opp := state.Opponent(a.side).Active()
	bench := own.Bench()
	if len(bench) == 0 {
		return battle.StruggleAction(own.Active().InstanceID)
	}

	scores := lo.Map(bench, func(idx int, _ int) float64 {
		candidate := &own.Team[idx]
		threat := maxEffectiveness(opp.Types, candidate.Types)
		advantage := maxEffectiveness(candidate.Types, opp.Types)
		return a.weights.HP*candidate.HPFraction() -
			a.weights.TypeAdvantage*(threat-1) +
			a.weights.TypeAdvantage*(advantage-1)
	})

	best := 0
	for i := range scores {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return battle.SwitchAction(own.Active().InstanceID, bench[best])
}

// EvaluateState scores a position from the AI side's point of view using only the two
// active combatants.
func (a *AI) EvaluateState(state *battle.BattleState) float64 {
	own := state.Side(a.side).Active()
	opp := state.Opponent(a.side).Active()

	if own.IsFainted() || state.Forfeited[a.side] {
		return -2 * a.weights.KO
	}
	if opp.IsFainted() || state.Forfeited[a.side.Other()] {
		return 5 * a.weights.KO
	}

	score := a.weights.HP * (own.HPFraction() - opp.HPFraction())
	if own.Speed() > opp.Speed() {
		score += a.weights.Speed
	}
	if own.Status != battle.StatusNone {
		score += a.weights.Status
	}
	return score
}

func maxEffectiveness(attacking, defending []pokemon.Type) float64 {
	if len(attacking) == 0 {
		return 1
	}
	return lo.Max(lo.Map(attacking, func(t pokemon.Type, _ int) float64 {
		return pokemon.GetTypeEffectiveness(t, defending)
	}))
}

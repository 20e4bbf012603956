package battle

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	thawChance      = 0.2
	fullParaChance  = 0.25
	maxSleepTurns   = 3
	burnDivisor     = 16
	poisonDivisor   = 8
	defaultPlayer   = "Player"
	defaultOpponent = "AI"
)

// Battle owns a BattleState and advances it one turn at a time.
// It is not safe for concurrent use.
type Battle struct {
	state   BattleState
	rng     *rand.Rand
	logSink func(string)
	logger  *zerolog.Logger
}

type Option func(*Battle)

func WithRand(rng *rand.Rand) Option {
	return func(b *Battle) { b.rng = rng }
}

// WithLogSink registers a callback invoked synchronously for every battle log line.
func WithLogSink(sink func(string)) Option {
	return func(b *Battle) { b.logSink = sink }
}

func WithSideNames(player, ai string) Option {
	return func(b *Battle) {
		b.state.Player().Name = player
		b.state.AI().Name = ai
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(b *Battle) { b.logger = &logger }
}

// New starts a battle with the first member of each roster active. The rosters are copied.
func New(player, ai []BattlePokemon, opts ...Option) (*Battle, error) {
	if len(player) == 0 || len(ai) == 0 {
		return nil, ErrEmptyRoster
	}
	state := BattleState{Turn: 1}
	for id, roster := range [2][]BattlePokemon{player, ai} {
		side := SideState{ID: SideID(id), Team: make([]BattlePokemon, len(roster))}
		for i := range roster {
			side.Team[i] = roster[i].Clone()
		}
		state.Sides[id] = side
	}
	state.Player().Name = defaultPlayer
	state.AI().Name = defaultOpponent

	b := newBattle(state, opts)
	for id := range b.state.Sides {
		side := &b.state.Sides[id]
		b.logf("%s sent out %s!", side.Name, side.Active().Name)
	}
	return b, nil
}

// Restore resumes a battle from a saved state. The state is deep-copied.
func Restore(state BattleState, opts ...Option) *Battle {
	return newBattle(state.Clone(), opts)
}

func newBattle(state BattleState, opts []Option) *Battle {
	b := &Battle{state: state, logger: &log.Logger}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return b
}

func (b *Battle) State() *BattleState {
	return &b.state
}

// Clone returns an independent copy for simulation. The copy has no log sink and
// discards diagnostics. It draws from a freshly seeded generator so b's own rolls are
// unaffected; use Restore with WithRand for a reproducible simulation.
func (b *Battle) Clone() *Battle {
	nop := zerolog.Nop()
	return &Battle{
		state:  b.state.Clone(),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger: &nop,
	}
}

func (b *Battle) ValidateAction(side SideID, action BattleAction) error {
	return ValidateAction(&b.state, side, action)
}

func (b *Battle) LegalActions(side SideID) []BattleAction {
	return LegalActions(&b.state, side)
}

type pendingMove struct {
	side     SideID
	slot     int
	priority int
	speed    int
}

// ExecuteTurn resolves one full turn: switches first, then moves by priority and speed,
// then end-of-turn damage. Invalid actions are skipped with a warning. A struggle
// forfeits the battle for its side and no moves resolve that turn.
func (b *Battle) ExecuteTurn(player, ai BattleAction) {
	actions := [2]BattleAction{player, ai}
	var moves []pendingMove

	for id, action := range actions {
		side := SideID(id)
		switch action.Kind {
		case ActionSwitch:
			b.switchIn(side, action.Index)
		case ActionStruggle:
			b.state.Forfeited[side] = true
			b.logf("%s has nothing left to fight with!", b.state.Side(side).Name)
		case ActionMove:
			active := b.state.Side(side).Active()
			if action.Index < 0 || action.Index >= len(active.Moves) {
				b.logger.Warn().Str("side", side.String()).Int("slot", action.Index).Msg("ignoring move outside the moveset")
				continue
			}
			moves = append(moves, pendingMove{side: side, slot: action.Index})
		default:
			b.logger.Warn().Str("side", side.String()).Str("kind", string(action.Kind)).Msg("ignoring unknown action")
		}
	}

	if _, over := b.state.Winner(); over {
		b.state.Turn++
		return
	}

	// Speed is read after switches so an incoming combatant's stat is used.
	for i := range moves {
		active := b.state.Side(moves[i].side).Active()
		moves[i].priority = active.Moves[moves[i].slot].Priority
		moves[i].speed = active.Speed()
	}
	slices.SortStableFunc(moves, func(a, c pendingMove) int {
		if a.priority != c.priority {
			return cmp.Compare(c.priority, a.priority)
		}
		return cmp.Compare(c.speed, a.speed)
	})

	for _, m := range moves {
		b.executeMove(m.side, m.slot)
	}
	b.endOfTurn()
	b.state.Turn++
}

func (b *Battle) switchIn(side SideID, index int) {
	s := b.state.Side(side)
	if index < 0 || index >= len(s.Team) {
		b.logger.Warn().Str("side", side.String()).Int("index", index).Msg("ignoring switch outside the roster")
		return
	}
	if s.Team[index].IsFainted() {
		b.logger.Warn().Str("side", side.String()).Str("target", s.Team[index].Name).Msg("ignoring switch to fainted combatant")
		return
	}
	if index == s.ActiveIndex {
		return
	}
	s.Active().StatStages = StatStages{}
	s.ActiveIndex = index
	b.logf("%s sent out %s!", s.Name, s.Active().Name)
}

func (b *Battle) executeMove(side SideID, slot int) {
	attacker := b.state.Side(side).Active()
	defender := b.state.Opponent(side).Active()
	if attacker.IsFainted() {
		return
	}
	if !b.canAct(attacker) {
		return
	}

	move := &attacker.Moves[slot]
	if move.PP <= 0 {
		b.logf("%s tried to use %s but has no PP left!", attacker.Name, move.Name)
		return
	}
	move.PP--
	b.state.LastMove = move.Name
	b.logf("%s used %s!", attacker.Name, move.Name)

	if defender.IsFainted() {
		b.logf("But it failed!")
		return
	}

	hit, roll := rollAccuracy(attacker, defender, move, b.rng)
	b.logger.Debug().Str("move", move.Name).Int("accuracy", move.Accuracy).Float64("roll", roll).Bool("hit", hit).Msg("accuracy check")
	if !hit {
		b.logf("%s's attack missed!", attacker.Name)
		return
	}

	dealt := 0
	if move.Category != CategoryStatus {
		res := CalculateDamage(attacker, defender, move, b.rng)
		b.logger.Debug().Str("move", move.Name).Int("damage", res.Damage).Float64("effectiveness", res.Effectiveness).Bool("crit", res.Critical).Msg("damage roll")
		if res.Critical {
			b.logf("A critical hit!")
		}
		dealt = defender.ApplyDamage(res.Damage)
		switch {
		case res.Effectiveness == 0:
			b.logf("It had no effect on %s...", defender.Name)
		case res.Effectiveness > 1:
			b.logf("It's super effective!")
		case res.Effectiveness < 1:
			b.logf("It's not very effective...")
		}
		if defender.IsFainted() {
			b.logf("%s fainted!", defender.Name)
		}
	}

	b.applyEffect(attacker, defender, move, dealt)
}

// canAct resolves sleep, freeze and paralysis before a move.
func (b *Battle) canAct(p *BattlePokemon) bool {
	switch p.Status {
	case StatusSleep:
		if p.StatusTurns <= 0 {
			p.Status, p.StatusTurns = StatusNone, 0
			b.logf("%s woke up!", p.Name)
			return true
		}
		p.StatusTurns--
		b.logf("%s is fast asleep.", p.Name)
		return false
	case StatusFreeze:
		if b.rng.Float64() < thawChance {
			p.Status = StatusNone
			b.logf("%s thawed out!", p.Name)
			return true
		}
		b.logf("%s is frozen solid!", p.Name)
		return false
	case StatusParalysis:
		if b.rng.Float64() < fullParaChance {
			b.logf("%s is paralyzed! It can't move!", p.Name)
			return false
		}
	}
	return true
}

func (b *Battle) applyEffect(attacker, defender *BattlePokemon, move *BattleMove, dealt int) {
	effect := LookupEffect(move.Effect)

	if effect.Status != StatusNone {
		applied := false
		if !defender.IsFainted() && defender.Status == StatusNone {
			roll := b.rng.Float64() * 100
			if effect.StatusChance == 0 || roll < float64(effect.StatusChance) {
				turns := 0
				if effect.Status == StatusSleep {
					turns = 1 + b.rng.IntN(maxSleepTurns)
				}
				applied = defender.ApplyStatus(effect.Status, turns)
			}
		}
		if applied {
			b.emit(statusMessage(defender.Name, effect.Status))
		} else if move.Category == CategoryStatus {
			b.logf("But it failed!")
		}
	}

	for _, change := range effect.StatChanges {
		target := attacker
		if change.Delta < 0 {
			target = defender
		}
		if target.IsFainted() {
			continue
		}
		applied := target.ApplyStatStage(change.Stat, change.Delta)
		b.emit(stageMessage(target.Name, change.Stat, change.Delta, applied))
	}

	if effect.HealPercent > 0 && !attacker.IsFainted() {
		if attacker.Heal(attacker.MaxHP*effect.HealPercent/100) > 0 {
			b.logf("%s restored HP.", attacker.Name)
		} else {
			b.logf("%s's HP is full!", attacker.Name)
		}
	}

	if dealt > 0 && effect.RecoilPercent > 0 {
		attacker.ApplyDamage(max(1, dealt*effect.RecoilPercent/100))
		b.logf("%s is hit with recoil!", attacker.Name)
		if attacker.IsFainted() {
			b.logf("%s fainted!", attacker.Name)
		}
	}

	if dealt > 0 && effect.DrainPercent > 0 && attacker.Heal(max(1, dealt*effect.DrainPercent/100)) > 0 {
		b.logf("%s had its energy drained!", defender.Name)
	}
}

// endOfTurn applies burn and poison damage to both active combatants, player first.
func (b *Battle) endOfTurn() {
	for id := range b.state.Sides {
		p := b.state.Sides[id].Active()
		if p.IsFainted() {
			continue
		}
		switch p.Status {
		case StatusBurn:
			p.ApplyDamage(max(1, p.MaxHP/burnDivisor))
			b.logf("%s is hurt by its burn!", p.Name)
		case StatusPoison:
			p.ApplyDamage(max(1, p.MaxHP/poisonDivisor))
			b.logf("%s is hurt by poison!", p.Name)
		default:
			continue
		}
		if p.IsFainted() {
			b.logf("%s fainted!", p.Name)
		}
	}
}

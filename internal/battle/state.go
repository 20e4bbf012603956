package battle

import (
	"slices"

	"github.com/ross1116/pokebattlesim/internal/pokemon"
	"github.com/ross1116/pokebattlesim/internal/stats"
)

type Status string

const (
	StatusNone      Status = ""
	StatusBurn      Status = "burn"
	StatusPoison    Status = "poison"
	StatusParalysis Status = "paralysis"
	StatusSleep     Status = "sleep"
	StatusFreeze    Status = "freeze"
)

type Category string

const (
	CategoryPhysical Category = "physical"
	CategorySpecial  Category = "special"
	CategoryStatus   Category = "status"
)

// Stat indexes a combatant's stat stages.
type Stat int

const (
	StatAttack Stat = iota
	StatDefense
	StatSpAttack
	StatSpDefense
	StatSpeed
	StatAccuracy
	numStats
)

var statNames = [numStats]string{"Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed", "accuracy"}

func (s Stat) String() string {
	if s < 0 || s >= numStats {
		return "stat"
	}
	return statNames[s]
}

const (
	MinStage = -6
	MaxStage = 6
)

type StatStages [numStats]int

type BattleMove struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Type     pokemon.Type `json:"type"`
	Power    int          `json:"power"`
	Accuracy int          `json:"accuracy"`
	PP       int          `json:"pp"`
	MaxPP    int          `json:"max_pp"`
	Priority int          `json:"priority"`
	Category Category     `json:"category"`
	Target   string       `json:"target"`
	Effect   EffectKind   `json:"effect"`
}

type BattlePokemon struct {
	InstanceID  string         `json:"instance_id"`
	SpeciesID   int            `json:"species_id"`
	Name        string         `json:"name"`
	Types       []pokemon.Type `json:"types"`
	Level       int            `json:"level"`
	Stats       stats.Block    `json:"stats"`
	CurrentHP   int            `json:"current_hp"`
	MaxHP       int            `json:"max_hp"`
	Status      Status         `json:"status"`
	StatusTurns int            `json:"status_turns"`
	StatStages  StatStages     `json:"stat_stages"`
	Moves       []BattleMove   `json:"moves"`
	Ability     string         `json:"ability,omitempty"`
	Item        string         `json:"item,omitempty"`
}

func (bp *BattlePokemon) IsFainted() bool {
	return bp.CurrentHP <= 0
}

func (bp *BattlePokemon) HPFraction() float64 {
	if bp.MaxHP <= 0 {
		return 0
	}
	return float64(bp.CurrentHP) / float64(bp.MaxHP)
}

// ApplyDamage subtracts dmg, flooring HP at zero, and returns the HP actually lost.
func (bp *BattlePokemon) ApplyDamage(dmg int) int {
	if bp.IsFainted() || dmg <= 0 {
		return 0
	}
	if dmg > bp.CurrentHP {
		dmg = bp.CurrentHP
	}
	bp.CurrentHP -= dmg
	return dmg
}

// Heal restores up to amount HP without exceeding MaxHP and returns the HP gained.
func (bp *BattlePokemon) Heal(amount int) int {
	if bp.IsFainted() || amount <= 0 {
		return 0
	}
	if missing := bp.MaxHP - bp.CurrentHP; amount > missing {
		amount = missing
	}
	bp.CurrentHP += amount
	return amount
}

// ApplyStatus sets a major status if the combatant has none. It reports whether it took.
func (bp *BattlePokemon) ApplyStatus(newStatus Status, turns int) bool {
	if bp.Status != StatusNone || bp.IsFainted() || newStatus == StatusNone {
		return false
	}
	bp.Status = newStatus
	bp.StatusTurns = turns
	return true
}

// ApplyStatStage shifts a stage within [MinStage, MaxStage] and returns the applied delta.
func (bp *BattlePokemon) ApplyStatStage(stat Stat, change int) int {
	if stat < 0 || stat >= numStats {
		return 0
	}
	current := bp.StatStages[stat]
	next := min(max(current+change, MinStage), MaxStage)
	bp.StatStages[stat] = next
	return next - current
}

// EffectiveStat scales a battle stat by its current stage.
func (bp *BattlePokemon) EffectiveStat(stat Stat) int {
	var raw int
	switch stat {
	case StatAttack:
		raw = bp.Stats.Atk
	case StatDefense:
		raw = bp.Stats.Def
	case StatSpAttack:
		raw = bp.Stats.Spa
	case StatSpDefense:
		raw = bp.Stats.Spd
	case StatSpeed:
		raw = bp.Stats.Spe
	default:
		return 0
	}
	return int(float64(raw) * stageMultiplier(bp.StatStages[stat]))
}

func (bp *BattlePokemon) Speed() int {
	return bp.EffectiveStat(StatSpeed)
}

func (bp *BattlePokemon) HasType(t pokemon.Type) bool {
	return slices.Contains(bp.Types, t)
}

func (bp *BattlePokemon) Clone() BattlePokemon {
	out := *bp
	out.Types = slices.Clone(bp.Types)
	out.Moves = slices.Clone(bp.Moves)
	return out
}

func stageMultiplier(stage int) float64 {
	if stage >= 0 {
		return float64(2+stage) / 2
	}
	return 2 / float64(2-stage)
}

func accuracyMultiplier(stage int) float64 {
	if stage >= 0 {
		return float64(3+stage) / 3
	}
	return 3 / float64(3-stage)
}

type SideState struct {
	ID          SideID          `json:"id"`
	Name        string          `json:"name"`
	ActiveIndex int             `json:"active_index"`
	Team        []BattlePokemon `json:"team"`
	Conditions  []string        `json:"conditions"`
}

func (s *SideState) Active() *BattlePokemon {
	return &s.Team[s.ActiveIndex]
}

func (s *SideState) clone() SideState {
	out := *s
	out.Team = make([]BattlePokemon, len(s.Team))
	for i := range s.Team {
		out.Team[i] = s.Team[i].Clone()
	}
	out.Conditions = slices.Clone(s.Conditions)
	return out
}

// Bench returns the roster indices, other than the active one, that can still battle.
func (s *SideState) Bench() []int {
	var out []int
	for i := range s.Team {
		if i != s.ActiveIndex && !s.Team[i].IsFainted() {
			out = append(out, i)
		}
	}
	return out
}

// FieldState is tracked for hosts; damage and effects do not consult it.
type FieldState struct {
	Weather      string `json:"weather"`
	WeatherTurns int    `json:"weather_turns"`
	Terrain      string `json:"terrain"`
	TerrainTurns int    `json:"terrain_turns"`
}

type BattleState struct {
	Turn     int          `json:"turn"`
	Sides    [2]SideState `json:"sides"`
	Field    FieldState   `json:"field"`
	LastMove string       `json:"last_move"`
	Log      []string     `json:"log"`

	// Forfeited marks a side that submitted the struggle sentinel.
	Forfeited [2]bool `json:"forfeited"`
}

func (s *BattleState) Side(id SideID) *SideState {
	return &s.Sides[id]
}

func (s *BattleState) Opponent(id SideID) *SideState {
	return &s.Sides[id.Other()]
}

func (s *BattleState) Player() *SideState { return &s.Sides[SidePlayer] }
func (s *BattleState) AI() *SideState     { return &s.Sides[SideAI] }

// Clone returns a deep copy that shares no mutable memory with s.
func (s *BattleState) Clone() BattleState {
	out := *s
	for i := range s.Sides {
		out.Sides[i] = s.Sides[i].clone()
	}
	out.Log = slices.Clone(s.Log)
	return out
}

// Winner reports the side whose opponent has no combatant left standing or has
// forfeited. When both sides forfeit in the same turn the player side loses.
func (s *BattleState) Winner() (SideID, bool) {
	switch {
	case IsAllFainted(s.AI().Team):
		return SidePlayer, true
	case IsAllFainted(s.Player().Team):
		return SideAI, true
	case s.Forfeited[SidePlayer]:
		return SideAI, true
	case s.Forfeited[SideAI]:
		return SidePlayer, true
	}
	return 0, false
}

func IsAllFainted(team []BattlePokemon) bool {
	for i := range team {
		if !team[i].IsFainted() {
			return false
		}
	}
	return true
}

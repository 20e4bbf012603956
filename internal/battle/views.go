package battle

import (
	"github.com/ross1116/pokebattlesim/internal/pokemon"
)

type MoveView struct {
	Slot     int          `json:"slot"`
	Name     string       `json:"name"`
	Type     pokemon.Type `json:"type"`
	Category Category     `json:"category"`
	Power    int          `json:"power"`
	Accuracy int          `json:"accuracy"`
	PP       int          `json:"pp"`
	MaxPP    int          `json:"max_pp"`
}

// PokemonSummary is what either side may see about any combatant.
type PokemonSummary struct {
	Index     int            `json:"index"`
	Name      string         `json:"name"`
	Types     []pokemon.Type `json:"types"`
	Level     int            `json:"level"`
	HPPercent int            `json:"hp_percent"`
	Status    Status         `json:"status,omitempty"`
	Fainted   bool           `json:"fainted"`
	Active    bool           `json:"active"`
}

// PokemonFullView adds exact HP, stats and moves for the owning side.
type PokemonFullView struct {
	PokemonSummary
	CurrentHP  int        `json:"current_hp"`
	MaxHP      int        `json:"max_hp"`
	StatStages StatStages `json:"stat_stages"`
	Moves      []MoveView `json:"moves"`
}

type SideView struct {
	Name     string            `json:"name"`
	Active   int               `json:"active"`
	Team     []PokemonFullView `json:"team"`
	Opponent []PokemonSummary  `json:"opponent"`
	Turn     int               `json:"turn"`
	Actions  []BattleAction    `json:"actions"`
}

func summarize(p *BattlePokemon, index int, active bool) PokemonSummary {
	return PokemonSummary{
		Index:     index,
		Name:      p.Name,
		Types:     p.Types,
		Level:     p.Level,
		HPPercent: int(p.HPFraction()*100 + 0.5),
		Status:    p.Status,
		Fainted:   p.IsFainted(),
		Active:    active,
	}
}

func FullView(p *BattlePokemon, index int, active bool) PokemonFullView {
	view := PokemonFullView{
		PokemonSummary: summarize(p, index, active),
		CurrentHP:      p.CurrentHP,
		MaxHP:          p.MaxHP,
		StatStages:     p.StatStages,
		Moves:          make([]MoveView, len(p.Moves)),
	}
	for i, m := range p.Moves {
		view.Moves[i] = MoveView{
			Slot: i, Name: m.Name, Type: m.Type, Category: m.Category,
			Power: m.Power, Accuracy: m.Accuracy, PP: m.PP, MaxPP: m.MaxPP,
		}
	}
	return view
}

// LimitedView hides exact HP and moves.
func LimitedView(p *BattlePokemon, index int, active bool) PokemonSummary {
	return summarize(p, index, active)
}

// ViewFor builds what side is allowed to know about the battle.
func ViewFor(state *BattleState, side SideID) SideView {
	own := state.Side(side)
	opp := state.Opponent(side)
	view := SideView{
		Name:     own.Name,
		Active:   own.ActiveIndex,
		Team:     make([]PokemonFullView, len(own.Team)),
		Opponent: make([]PokemonSummary, len(opp.Team)),
		Turn:     state.Turn,
		Actions:  LegalActions(state, side),
	}
	for i := range own.Team {
		view.Team[i] = FullView(&own.Team[i], i, i == own.ActiveIndex)
	}
	for i := range opp.Team {
		view.Opponent[i] = LimitedView(&opp.Team[i], i, i == opp.ActiveIndex)
	}
	return view
}

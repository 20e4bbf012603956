package battle

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ross1116/pokebattlesim/internal/pokemon"
	"github.com/ross1116/pokebattlesim/internal/stats"
)

// NewBattleMove converts PokeAPI move data and classifies its secondary effect.
func NewBattleMove(m *pokemon.MoveInfo) BattleMove {
	category := Category(strings.ToLower(m.DamageClass.Name))
	switch category {
	case CategoryPhysical, CategorySpecial, CategoryStatus:
	default:
		category = CategoryStatus
	}
	return BattleMove{
		ID:       m.ID,
		Name:     pokemon.DisplayName(m.Name),
		Type:     pokemon.Type(strings.ToLower(m.Type.Name)),
		Power:    m.Power,
		Accuracy: m.Accuracy,
		PP:       m.Pp,
		MaxPP:    m.Pp,
		Priority: m.Priority,
		Category: category,
		Target:   m.Target.Name,
		Effect:   ClassifyEffect(m.Name, m.ShortEffect()),
	}
}

// NewBattlePokemon builds a full-HP combatant at level from species data and its moves.
func NewBattlePokemon(p *pokemon.Pokemon, moves []*pokemon.MoveInfo, level int) (BattlePokemon, error) {
	if len(moves) == 0 {
		return BattlePokemon{}, fmt.Errorf("%s: %w", p.Name, ErrNoMoves)
	}
	block := stats.Compute(p, level)
	bp := BattlePokemon{
		InstanceID: uuid.NewString(),
		SpeciesID:  p.ID,
		Name:       pokemon.DisplayName(p.Name),
		Types:      p.TypeNames(),
		Level:      level,
		Stats:      block,
		CurrentHP:  block.HP,
		MaxHP:      block.HP,
		Moves:      make([]BattleMove, 0, len(moves)),
	}
	for _, m := range moves {
		bp.Moves = append(bp.Moves, NewBattleMove(m))
	}
	return bp, nil
}

// Package team assembles battle rosters from PokeAPI or from a YAML roster file.
package team

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/ross1116/pokebattlesim/internal/battle"
	"github.com/ross1116/pokebattlesim/internal/pokemon"
)

const (
	MovesPerPokemon = 4
	// maxCandidates bounds how many learnable moves are fetched per species.
	maxCandidates = 16
)

// Source produces the two rosters for a new battle.
type Source interface {
	Teams(ctx context.Context) (player, ai []battle.BattlePokemon, err error)
}

// Builder draws random species from PokeAPI. It is safe for concurrent use.
type Builder struct {
	client *pokemon.Client
	level  int
	size   int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewBuilder(client *pokemon.Client, level, size int, rng *rand.Rand) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Builder{client: client, level: level, size: size, rng: rng}
}

func (b *Builder) Teams(ctx context.Context) ([]battle.BattlePokemon, []battle.BattlePokemon, error) {
	player, err := b.Random(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("player team: %w", err)
	}
	ai, err := b.Random(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("ai team: %w", err)
	}
	return player, ai, nil
}

// Random builds a team of distinct random species.
func (b *Builder) Random(ctx context.Context) ([]battle.BattlePokemon, error) {
	b.mu.Lock()
	ids := pokemon.RandomDexNumbers(b.rng, b.size)
	b.mu.Unlock()
	team := make([]battle.BattlePokemon, 0, len(ids))
	for _, id := range ids {
		bp, err := b.Build(ctx, id)
		if err != nil {
			return nil, err
		}
		team = append(team, bp)
	}
	return team, nil
}

// Build fetches one species by name or dex number and gives it up to four level-up moves.
func (b *Builder) Build(ctx context.Context, identifier any) (battle.BattlePokemon, error) {
	p, err := b.client.FetchPokemon(ctx, identifier)
	if err != nil {
		return battle.BattlePokemon{}, err
	}

	learnable := pokemon.FilterMoveByLearn(p)
	b.mu.Lock()
	b.rng.Shuffle(len(learnable), func(i, j int) { learnable[i], learnable[j] = learnable[j], learnable[i] })
	b.mu.Unlock()
	urls := lo.Map(lo.Slice(learnable, 0, maxCandidates), func(m pokemon.ApiResource, _ int) string { return m.URL })

	moves, err := b.client.FetchMovesInParallel(ctx, urls)
	if err != nil {
		return battle.BattlePokemon{}, fmt.Errorf("moves for %s: %w", p.Name, err)
	}
	picked := pokemon.PickMoves(moves, p.TypeNames(), MovesPerPokemon)

	bp, err := battle.NewBattlePokemon(p, picked, b.level)
	if err != nil {
		return battle.BattlePokemon{}, err
	}
	log.Debug().Str("pokemon", bp.Name).Int("level", bp.Level).
		Strs("moves", lo.Map(bp.Moves, func(m battle.BattleMove, _ int) string { return m.Name })).
		Msg("built pokemon")
	return bp, nil
}

// NewSource returns a Roster when rosterPath is set and a PokeAPI Builder otherwise.
func NewSource(rosterPath, pokeAPIURL string, level, size int) (Source, error) {
	if rosterPath != "" {
		r, err := LoadRoster(rosterPath, level)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return NewBuilder(pokemon.NewClient(pokeAPIURL), level, size, nil), nil
}

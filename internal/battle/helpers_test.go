package battle_test

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/ross1116/pokebattlesim/internal/battle"
	"github.com/ross1116/pokebattlesim/internal/pokemon"
	"github.com/ross1116/pokebattlesim/internal/stats"
)

// lowSource makes every Float64 draw effectively zero: minimum damage roll, a critical
// hit, every accuracy and status check passes, and IntN returns 0.
type lowSource struct{}

func (lowSource) Uint64() uint64 { return 1 << 11 }

// highSource makes every Float64 draw effectively one: maximum damage roll, no
// critical hit, imperfect accuracy misses, and chance-based statuses never apply.
type highSource struct{}

func (highSource) Uint64() uint64 { return math.MaxUint64 }

func lowRand() *rand.Rand  { return rand.New(lowSource{}) }
func highRand() *rand.Rand { return rand.New(highSource{}) }

func mon(name string, types []pokemon.Type, block stats.Block, moves ...battle.BattleMove) battle.BattlePokemon {
	return battle.BattlePokemon{
		InstanceID: strings.ToLower(name),
		Name:       name,
		Types:      types,
		Level:      50,
		Stats:      block,
		CurrentHP:  block.HP,
		MaxHP:      block.HP,
		Moves:      moves,
	}
}

func even(hp, speed int) stats.Block {
	return stats.Block{HP: hp, Atk: 100, Def: 100, Spa: 100, Spd: 100, Spe: speed}
}

func physical(name string, t pokemon.Type, power int) battle.BattleMove {
	return battle.BattleMove{
		Name: name, Type: t, Power: power, Accuracy: 100,
		PP: 35, MaxPP: 35, Category: battle.CategoryPhysical,
	}
}

func statusMove(name string, t pokemon.Type, effect battle.EffectKind) battle.BattleMove {
	return battle.BattleMove{
		Name: name, Type: t, Accuracy: 100, PP: 20, MaxPP: 20,
		Category: battle.CategoryStatus, Effect: effect,
	}
}

func withEffect(m battle.BattleMove, effect battle.EffectKind) battle.BattleMove {
	m.Effect = effect
	return m
}

func newBattle(t *testing.T, player, ai []battle.BattlePokemon, rng *rand.Rand) *battle.Battle {
	t.Helper()
	b, err := battle.New(player, ai, battle.WithRand(rng))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func logIndex(lines []string, substr string) int {
	return slices.IndexFunc(lines, func(l string) bool { return strings.Contains(l, substr) })
}

func hasLine(lines []string, substr string) bool {
	return logIndex(lines, substr) >= 0
}

func countLines(lines []string, substr string) int {
	n := 0
	for _, l := range lines {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}

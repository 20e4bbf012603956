package battle

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/ross1116/pokebattlesim/internal/pokemon"
)

const (
	critChance     = 1.0 / 16
	critMultiplier = 1.5
	stabMultiplier = 1.5
)

type DamageResult struct {
	Damage        int
	Effectiveness float64
	Critical      bool
}

// CalculateDamage rolls the damage move would deal from attacker to defender.
// Status moves and immune defenders take no damage and consume no randomness.
func CalculateDamage(attacker, defender *BattlePokemon, move *BattleMove, rng *rand.Rand) DamageResult {
	effectiveness := pokemon.GetTypeEffectiveness(move.Type, defender.Types)
	result := DamageResult{Effectiveness: effectiveness}
	if effectiveness == 0 || move.Category == CategoryStatus || move.Power <= 0 {
		return result
	}

	var offense, defense int
	if move.Category == CategoryPhysical {
		offense = attacker.EffectiveStat(StatAttack)
		defense = defender.EffectiveStat(StatDefense)
	} else {
		offense = attacker.EffectiveStat(StatSpAttack)
		defense = defender.EffectiveStat(StatSpDefense)
	}
	defense = max(defense, 1)

	stab := 1.0
	if slices.Contains(attacker.Types, move.Type) {
		stab = stabMultiplier
	}

	random := 0.85 + 0.15*rng.Float64()
	crit := 1.0
	if rng.Float64() < critChance {
		crit = critMultiplier
		result.Critical = true
	}

	level := float64(attacker.Level)
	base := ((2*level/5+2)*float64(move.Power)*float64(offense)/float64(defense))/50 + 2
	result.Damage = max(int(math.Floor(base*stab*effectiveness*random*crit)), 0)
	return result
}

// rollAccuracy reports whether move lands. Accuracy of 100 or more never misses.
func rollAccuracy(attacker, defender *BattlePokemon, move *BattleMove, rng *rand.Rand) (bool, float64) {
	if move.Accuracy >= 100 || move.Accuracy <= 0 {
		return true, 0
	}
	stage := attacker.StatStages[StatAccuracy] - defender.StatStages[StatAccuracy]
	stage = min(max(stage, MinStage), MaxStage)
	threshold := float64(move.Accuracy) * accuracyMultiplier(stage)
	roll := rng.Float64() * 100
	return roll <= threshold, roll
}

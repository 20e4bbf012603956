package stats

import "github.com/ross1116/pokebattlesim/internal/pokemon"

// Block is a combatant's computed stat block.
type Block struct {
	HP  int `json:"hp" yaml:"hp"`
	Atk int `json:"atk" yaml:"atk"`
	Def int `json:"def" yaml:"def"`
	Spa int `json:"spa" yaml:"spa"`
	Spd int `json:"spd" yaml:"spd"`
	Spe int `json:"spe" yaml:"spe"`
}

// HpCalc is the HP formula with no IVs, EVs or nature. At level 100 it reduces to baseHp*2+110.
func HpCalc(baseHp, level int) int {
	return 2*baseHp*level/100 + level + 10
}

// StatCalc is the non-HP stat formula with no IVs, EVs or nature.
func StatCalc(baseStat, level int) int {
	return 2*baseStat*level/100 + 5
}

func GetStat(p *pokemon.Pokemon, statName string) int {
	return p.BaseStat(statName)
}

// Compute derives the full stat block for a species at the given level.
func Compute(p *pokemon.Pokemon, level int) Block {
	return Block{
		HP:  HpCalc(GetStat(p, "hp"), level),
		Atk: StatCalc(GetStat(p, "attack"), level),
		Def: StatCalc(GetStat(p, "defense"), level),
		Spa: StatCalc(GetStat(p, "special-attack"), level),
		Spd: StatCalc(GetStat(p, "special-defense"), level),
		Spe: StatCalc(GetStat(p, "speed"), level),
	}
}

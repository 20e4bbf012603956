package pokemon

type Type string

const (
	Normal   Type = "normal"
	Fire     Type = "fire"
	Water    Type = "water"
	Electric Type = "electric"
	Grass    Type = "grass"
	Ice      Type = "ice"
	Fighting Type = "fighting"
	Poison   Type = "poison"
	Ground   Type = "ground"
	Flying   Type = "flying"
	Psychic  Type = "psychic"
	Bug      Type = "bug"
	Rock     Type = "rock"
	Ghost    Type = "ghost"
	Dragon   Type = "dragon"
	Dark     Type = "dark"
	Steel    Type = "steel"
	Fairy    Type = "fairy"
)

// TypeEffectiveness maps an attacking type to its multiplier against each defending type.
// Only the fifteen original types are charted; any pair not listed is neutral.
var TypeEffectiveness = map[Type]map[Type]float64{
	Normal: {Rock: 0.5, Ghost: 0},
	Fire:   {Fire: 0.5, Water: 0.5, Grass: 2, Ice: 2, Bug: 2, Rock: 0.5, Dragon: 0.5},
	Water:  {Fire: 2, Water: 0.5, Grass: 0.5, Ground: 2, Rock: 2, Dragon: 0.5},
	Electric: {
		Water: 2, Electric: 0.5, Grass: 0.5, Ground: 0, Flying: 2, Dragon: 0.5,
	},
	Grass: {
		Fire: 0.5, Water: 2, Grass: 0.5, Poison: 0.5, Ground: 2, Flying: 0.5, Bug: 0.5,
		Rock: 2, Dragon: 0.5,
	},
	Ice: {Fire: 0.5, Water: 0.5, Grass: 2, Ice: 0.5, Ground: 2, Flying: 2, Dragon: 2},
	Fighting: {
		Normal: 2, Ice: 2, Poison: 0.5, Flying: 0.5, Psychic: 0.5, Bug: 0.5, Rock: 2, Ghost: 0,
	},
	Poison:  {Grass: 2, Poison: 0.5, Ground: 0.5, Rock: 0.5, Ghost: 0.5},
	Ground:  {Fire: 2, Electric: 2, Grass: 0.5, Poison: 2, Flying: 0, Bug: 0.5, Rock: 2},
	Flying:  {Electric: 0.5, Grass: 2, Fighting: 2, Bug: 2, Rock: 0.5},
	Psychic: {Fighting: 2, Poison: 2, Psychic: 0.5},
	Bug:     {Fire: 0.5, Grass: 2, Fighting: 0.5, Poison: 0.5, Flying: 0.5, Psychic: 2, Ghost: 0.5},
	Rock:    {Fire: 2, Ice: 2, Fighting: 0.5, Ground: 0.5, Flying: 2, Bug: 2},
	Ghost:   {Normal: 0, Psychic: 2, Ghost: 2},
	Dragon:  {Dragon: 2},
}

// GetTypeEffectiveness multiplies the chart entry for moveType against each defender type.
func GetTypeEffectiveness(moveType Type, defenderTypes []Type) float64 {
	effectiveness := 1.0
	attacking, ok := TypeEffectiveness[moveType]
	if !ok {
		return effectiveness
	}
	for _, t := range defenderTypes {
		if mult, ok := attacking[t]; ok {
			effectiveness *= mult
		}
	}
	return effectiveness
}

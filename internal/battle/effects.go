package battle

import (
	"fmt"
	"strings"
)

// EffectKind identifies a move's secondary effect. The zero value is EffectBasicDamage.
type EffectKind int

const (
	EffectBasicDamage EffectKind = iota
	EffectBurnChance
	EffectParalyzeChance
	EffectPoisonChance
	EffectFreezeChance
	EffectInflictBurn
	EffectInflictParalysis
	EffectInflictPoison
	EffectInflictSleep
	EffectLowerAttack
	EffectLowerDefense
	EffectLowerSpeed
	EffectLowerAccuracy
	EffectRaiseAttack
	EffectRaiseDefense
	EffectRaiseSpAttack
	EffectRaiseSpeed
	EffectHealHalf
	EffectRecoil
	EffectDrain
	numEffects
)

var effectNames = [numEffects]string{
	"basic_damage",
	"burn_chance",
	"paralyze_chance",
	"poison_chance",
	"freeze_chance",
	"inflict_burn",
	"inflict_paralysis",
	"inflict_poison",
	"inflict_sleep",
	"lower_attack",
	"lower_defense",
	"lower_speed",
	"lower_accuracy",
	"raise_attack",
	"raise_defense",
	"raise_sp_attack",
	"raise_speed",
	"heal_half",
	"recoil",
	"drain",
}

func (k EffectKind) String() string {
	if k < 0 || k >= numEffects {
		return fmt.Sprintf("EffectKind(%d)", int(k))
	}
	return effectNames[k]
}

func ParseEffectKind(s string) (EffectKind, error) {
	if s == "" {
		return EffectBasicDamage, nil
	}
	for i, name := range effectNames {
		if name == s {
			return EffectKind(i), nil
		}
	}
	return EffectBasicDamage, fmt.Errorf("unknown effect %q", s)
}

func (k EffectKind) MarshalText() ([]byte, error) {
	if k < 0 || k >= numEffects {
		return nil, fmt.Errorf("invalid effect kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *EffectKind) UnmarshalText(text []byte) error {
	parsed, err := ParseEffectKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

type StatChange struct {
	Stat  Stat
	Delta int
}

// MoveEffect describes what a move does besides direct damage.
// A zero StatusChance means the status always applies.
type MoveEffect struct {
	Status        Status
	StatusChance  int
	StatChanges   []StatChange
	HealPercent   int
	RecoilPercent int
	DrainPercent  int
}

// LookupEffect returns the descriptor for kind. Unknown kinds behave like basic damage.
func LookupEffect(kind EffectKind) MoveEffect {
	switch kind {
	case EffectBasicDamage:
		return MoveEffect{}
	case EffectBurnChance:
		return MoveEffect{Status: StatusBurn, StatusChance: 10}
	case EffectParalyzeChance:
		return MoveEffect{Status: StatusParalysis, StatusChance: 10}
	case EffectPoisonChance:
		return MoveEffect{Status: StatusPoison, StatusChance: 30}
	case EffectFreezeChance:
		return MoveEffect{Status: StatusFreeze, StatusChance: 10}
	case EffectInflictBurn:
		return MoveEffect{Status: StatusBurn}
	case EffectInflictParalysis:
		return MoveEffect{Status: StatusParalysis}
	case EffectInflictPoison:
		return MoveEffect{Status: StatusPoison}
	case EffectInflictSleep:
		return MoveEffect{Status: StatusSleep}
	case EffectLowerAttack:
		return MoveEffect{StatChanges: []StatChange{{StatAttack, -1}}}
	case EffectLowerDefense:
		return MoveEffect{StatChanges: []StatChange{{StatDefense, -1}}}
	case EffectLowerSpeed:
		return MoveEffect{StatChanges: []StatChange{{StatSpeed, -1}}}
	case EffectLowerAccuracy:
		return MoveEffect{StatChanges: []StatChange{{StatAccuracy, -1}}}
	case EffectRaiseAttack:
		return MoveEffect{StatChanges: []StatChange{{StatAttack, 2}}}
	case EffectRaiseDefense:
		return MoveEffect{StatChanges: []StatChange{{StatDefense, 1}}}
	case EffectRaiseSpAttack:
		return MoveEffect{StatChanges: []StatChange{{StatSpAttack, 2}}}
	case EffectRaiseSpeed:
		return MoveEffect{StatChanges: []StatChange{{StatSpeed, 2}}}
	case EffectHealHalf:
		return MoveEffect{HealPercent: 50}
	case EffectRecoil:
		return MoveEffect{RecoilPercent: 33}
	case EffectDrain:
		return MoveEffect{DrainPercent: 50}
	}
	return MoveEffect{}
}

type effectRule struct {
	kind     EffectKind
	keywords []string
}

// Checked in order; the first rule with a matching keyword wins.
var classifierRules = []effectRule{
	{EffectHealHalf, []string{"recover", "roost", "soft-boiled", "milk-drink", "slack-off", "heals the user by half"}},
	{EffectDrain, []string{"absorb", "drain", "leech-life", "giga-drain", "drains half the damage"}},
	{EffectRecoil, []string{"double-edge", "take-down", "submission", "brave-bird", "flare-blitz", "in recoil"}},
	{EffectInflictSleep, []string{"sleep-powder", "hypnosis", "sing", "spore", "lovely-kiss", "puts the target to sleep"}},
	{EffectInflictParalysis, []string{"thunder-wave", "stun-spore", "glare", "paralyzes the target"}},
	{EffectInflictPoison, []string{"poison-powder", "toxic", "poison-gas", "poisons the target"}},
	{EffectInflictBurn, []string{"will-o-wisp", "burns the target"}},
	{EffectRaiseAttack, []string{"swords-dance", "raises the user's attack"}},
	{EffectRaiseSpAttack, []string{"nasty-plot", "raises the user's special attack"}},
	{EffectRaiseSpeed, []string{"agility", "rock-polish", "raises the user's speed"}},
	{EffectRaiseDefense, []string{"harden", "withdraw", "defense-curl", "raises the user's defense"}},
	{EffectLowerAttack, []string{"growl", "lowers the target's attack"}},
	{EffectLowerDefense, []string{"tail-whip", "leer", "screech", "lowers the target's defense"}},
	{EffectLowerSpeed, []string{"string-shot", "lowers the target's speed"}},
	{EffectLowerAccuracy, []string{"sand-attack", "smokescreen", "flash", "lowers the target's accuracy"}},
	{EffectBurnChance, []string{"ember", "flamethrower", "fire-blast", "fire-punch", "chance to burn"}},
	{EffectFreezeChance, []string{"ice-beam", "blizzard", "ice-punch", "powder-snow", "chance to freeze"}},
	{EffectParalyzeChance, []string{"thunderbolt", "thunder-shock", "thunder-punch", "body-slam", "chance to paralyze"}},
	{EffectPoisonChance, []string{"poison-sting", "sludge", "smog", "poison-jab", "chance to poison"}},
}

// ClassifyEffect picks an effect identifier from a move's API name and short effect text.
func ClassifyEffect(name, description string) EffectKind {
	name = strings.ToLower(strings.TrimSpace(name))
	description = strings.ToLower(description)
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if name == kw || (strings.Contains(kw, " ") && strings.Contains(description, kw)) {
				return rule.kind
			}
		}
	}
	return EffectBasicDamage
}

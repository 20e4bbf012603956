package pokemon

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Pokemon struct {
	ID    int         `json:"id"`
	Name  string      `json:"name"`
	Types []TypeSlot  `json:"types"`
	Stats []BaseStats `json:"stats"`
	Moves []MoveSlot  `json:"moves"`
}

type BaseStats struct {
	BaseStat int         `json:"base_stat"`
	Stat     ApiResource `json:"stat"`
}

type TypeSlot struct {
	Slot int      `json:"slot"`
	Type TypeInfo `json:"type"`
}

type TypeInfo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type MoveSlot struct {
	Move                ApiResource              `json:"move"`
	VersionGroupDetails []VersionGroupDetailInfo `json:"version_group_details"`
}

type ApiResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type VersionGroupDetailInfo struct {
	LevelLearnedAt  int         `json:"level_learned_at"`
	MoveLearnMethod ApiResource `json:"move_learn_method"`
	VersionGroup    ApiResource `json:"version_group"`
}

type MoveInfo struct {
	ID            int             `json:"id"`
	Accuracy      int             `json:"accuracy"`
	DamageClass   ApiResource     `json:"damage_class"`
	EffectChance  int             `json:"effect_chance"`
	EffectEntries []EffectEntries `json:"effect_entries"`
	Name          string          `json:"name"`
	Power         int             `json:"power"`
	Pp            int             `json:"pp"`
	Priority      int             `json:"priority"`
	Target        ApiResource     `json:"target"`
	Type          ApiResource     `json:"type"`
}

type EffectEntries struct {
	Effect      string      `json:"effect"`
	Language    ApiResource `json:"language"`
	ShortEffect string      `json:"short_effect"`
}

// TypeNames returns the pokemon's types in slot order.
func (p *Pokemon) TypeNames() []Type {
	types := make([]Type, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, Type(strings.ToLower(t.Type.Name)))
	}
	return types
}

// BaseStat returns the named base stat, or 0 if the API omitted it.
func (p *Pokemon) BaseStat(name string) int {
	for _, s := range p.Stats {
		if s.Stat.Name == name {
			return s.BaseStat
		}
	}
	return 0
}

// ShortEffect returns the English short effect text with the effect chance substituted.
func (m *MoveInfo) ShortEffect() string {
	for _, e := range m.EffectEntries {
		if e.Language.Name == "en" {
			return strings.ReplaceAll(e.ShortEffect, "$effect_chance", strconv.Itoa(m.EffectChance))
		}
	}
	return ""
}

// DisplayName turns an API slug such as "thunder-wave" into "Thunder Wave".
// Casers are stateful, so each call builds its own.
func DisplayName(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

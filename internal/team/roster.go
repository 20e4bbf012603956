package team

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ross1116/pokebattlesim/internal/battle"
	"github.com/ross1116/pokebattlesim/internal/pokemon"
	"github.com/ross1116/pokebattlesim/internal/stats"
)

const defaultPP = 10

type MoveEntry struct {
	Name     string          `yaml:"name"`
	Type     pokemon.Type    `yaml:"type"`
	Power    int             `yaml:"power"`
	Accuracy int             `yaml:"accuracy"`
	PP       int             `yaml:"pp"`
	Priority int             `yaml:"priority"`
	Category battle.Category `yaml:"category"`
	Effect   string          `yaml:"effect"`
}

type Entry struct {
	Name  string         `yaml:"name"`
	Level int            `yaml:"level"`
	Types []pokemon.Type `yaml:"types"`
	Stats stats.Block    `yaml:"stats"`
	Moves []MoveEntry    `yaml:"moves"`
}

// Roster is a fixed pair of teams read from YAML:
//
//	player:
//	  - name: pikachu
//	    types: [electric]
//	    stats: {hp: 95, atk: 60, def: 35, spa: 55, spd: 45, spe: 95}
//	    moves:
//	      - {name: thunderbolt, type: electric, power: 90, accuracy: 100, pp: 15, category: special}
//	ai:
//	  - ...
type Roster struct {
	Player []Entry `yaml:"player"`
	AI     []Entry `yaml:"ai"`

	level int
}

// LoadRoster reads a roster file. Entries without a level use defaultLevel.
func LoadRoster(path string, defaultLevel int) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return ParseRoster(data, defaultLevel)
}

func ParseRoster(data []byte, defaultLevel int) (*Roster, error) {
	r := &Roster{level: defaultLevel}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if len(r.Player) == 0 || len(r.AI) == 0 {
		return nil, battle.ErrEmptyRoster
	}
	// Convert once up front so a bad entry fails at load time.
	if _, _, err := r.Teams(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

// Teams returns fresh copies of both teams with new instance IDs.
func (r *Roster) Teams(context.Context) ([]battle.BattlePokemon, []battle.BattlePokemon, error) {
	player, err := r.convert(r.Player)
	if err != nil {
		return nil, nil, fmt.Errorf("player team: %w", err)
	}
	ai, err := r.convert(r.AI)
	if err != nil {
		return nil, nil, fmt.Errorf("ai team: %w", err)
	}
	return player, ai, nil
}

func (r *Roster) convert(entries []Entry) ([]battle.BattlePokemon, error) {
	team := make([]battle.BattlePokemon, 0, len(entries))
	for _, e := range entries {
		bp, err := e.toBattle(r.level)
		if err != nil {
			return nil, err
		}
		team = append(team, bp)
	}
	return team, nil
}

func (e Entry) toBattle(defaultLevel int) (battle.BattlePokemon, error) {
	if len(e.Moves) == 0 {
		return battle.BattlePokemon{}, fmt.Errorf("%s: %w", e.Name, battle.ErrNoMoves)
	}
	if e.Stats.HP <= 0 {
		return battle.BattlePokemon{}, fmt.Errorf("%s: hp must be positive", e.Name)
	}
	level := e.Level
	if level == 0 {
		level = defaultLevel
	}

	bp := battle.BattlePokemon{
		InstanceID: uuid.NewString(),
		Name:       pokemon.DisplayName(e.Name),
		Types:      lowerTypes(e.Types),
		Level:      level,
		Stats:      e.Stats,
		CurrentHP:  e.Stats.HP,
		MaxHP:      e.Stats.HP,
	}
	for _, m := range e.Moves {
		move, err := m.toBattle()
		if err != nil {
			return battle.BattlePokemon{}, fmt.Errorf("%s: %w", e.Name, err)
		}
		bp.Moves = append(bp.Moves, move)
	}
	return bp, nil
}

func (m MoveEntry) toBattle() (battle.BattleMove, error) {
	effect := battle.ClassifyEffect(m.Name, "")
	if m.Effect != "" {
		parsed, err := battle.ParseEffectKind(m.Effect)
		if err != nil {
			return battle.BattleMove{}, fmt.Errorf("move %s: %w", m.Name, err)
		}
		effect = parsed
	}
	category := m.Category
	if category == "" {
		category = battle.CategoryPhysical
		if m.Power == 0 {
			category = battle.CategoryStatus
		}
	}
	accuracy := m.Accuracy
	if accuracy == 0 {
		accuracy = 100
	}
	pp := m.PP
	if pp == 0 {
		pp = defaultPP
	}
	return battle.BattleMove{
		Name:     pokemon.DisplayName(m.Name),
		Type:     pokemon.Type(strings.ToLower(string(m.Type))),
		Power:    m.Power,
		Accuracy: accuracy,
		PP:       pp,
		MaxPP:    pp,
		Priority: m.Priority,
		Category: category,
		Effect:   effect,
	}, nil
}

func lowerTypes(types []pokemon.Type) []pokemon.Type {
	out := make([]pokemon.Type, len(types))
	for i, t := range types {
		out[i] = pokemon.Type(strings.ToLower(string(t)))
	}
	return out
}

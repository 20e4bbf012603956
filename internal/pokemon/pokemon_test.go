package pokemon_test

import (
	"math/rand/v2"
	"testing"

	"github.com/ross1116/pokebattlesim/internal/pokemon"
)

func TestGetTypeEffectiveness(t *testing.T) {
	tests := []struct {
		move     pokemon.Type
		defender []pokemon.Type
		want     float64
	}{
		{pokemon.Water, []pokemon.Type{pokemon.Fire}, 2},
		{pokemon.Electric, []pokemon.Type{pokemon.Water, pokemon.Flying}, 4},
		{pokemon.Grass, []pokemon.Type{pokemon.Fire, pokemon.Flying}, 0.25},
		{pokemon.Normal, []pokemon.Type{pokemon.Ghost}, 0},
		{pokemon.Ground, []pokemon.Type{pokemon.Flying, pokemon.Rock}, 0},
		{pokemon.Fire, []pokemon.Type{pokemon.Steel}, 1},
		{pokemon.Dark, []pokemon.Type{pokemon.Psychic}, 1},
		{pokemon.Water, nil, 1},
	}
	for _, tt := range tests {
		if got := pokemon.GetTypeEffectiveness(tt.move, tt.defender); got != tt.want {
			t.Errorf("%s vs %v: expected %v, got %v", tt.move, tt.defender, tt.want, got)
		}
	}
}

func TestDisplayName(t *testing.T) {
	for slug, want := range map[string]string{
		"thunder-wave": "Thunder Wave",
		"pikachu":      "Pikachu",
		"mr-mime":      "Mr Mime",
	} {
		if got := pokemon.DisplayName(slug); got != want {
			t.Errorf("%s: expected %q, got %q", slug, want, got)
		}
	}
}

func TestShortEffect(t *testing.T) {
	m := &pokemon.MoveInfo{
		EffectChance: 10,
		EffectEntries: []pokemon.EffectEntries{
			{ShortEffect: "Hat eine Chance", Language: pokemon.ApiResource{Name: "de"}},
			{ShortEffect: "Has a $effect_chance% chance to paralyze the target.", Language: pokemon.ApiResource{Name: "en"}},
		},
	}
	if got := m.ShortEffect(); got != "Has a 10% chance to paralyze the target." {
		t.Fatalf("unexpected short effect %q", got)
	}
}

func learn(name, method string) pokemon.MoveSlot {
	return pokemon.MoveSlot{
		Move: pokemon.ApiResource{Name: name, URL: "/move/" + name},
		VersionGroupDetails: []pokemon.VersionGroupDetailInfo{
			{MoveLearnMethod: pokemon.ApiResource{Name: "egg"}},
			{MoveLearnMethod: pokemon.ApiResource{Name: method}},
		},
	}
}

func TestFilterMoveByLearn(t *testing.T) {
	p := &pokemon.Pokemon{Moves: []pokemon.MoveSlot{
		learn("tackle", "level-up"),
		learn("solar-beam", "machine"),
		learn("tackle", "level-up"),
		learn("vine-whip", "level-up"),
	}}
	got := pokemon.FilterMoveByLearn(p)
	if len(got) != 2 || got[0].Name != "tackle" || got[1].Name != "vine-whip" {
		t.Fatalf("expected tackle and vine-whip, got %v", got)
	}
}

func move(name, typ, class string, power int) *pokemon.MoveInfo {
	return &pokemon.MoveInfo{
		Name: name, Power: power,
		Type:        pokemon.ApiResource{Name: typ},
		DamageClass: pokemon.ApiResource{Name: class},
	}
}

func TestPickMoves(t *testing.T) {
	candidates := []*pokemon.MoveInfo{
		move("growl", "normal", "status", 0),
		move("tackle", "normal", "physical", 40),
		nil,
		move("ember", "fire", "special", 40),
		move("scratch", "normal", "physical", 40),
		move("smokescreen", "normal", "status", 0),
		move("flamethrower", "fire", "special", 90),
	}
	got := pokemon.PickMoves(candidates, []pokemon.Type{pokemon.Fire}, 4)
	want := []string{"ember", "flamethrower", "tackle", "growl"}
	if len(got) != len(want) {
		t.Fatalf("expected %d moves, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], got[i].Name)
		}
	}

	onlyStatus := pokemon.PickMoves([]*pokemon.MoveInfo{move("growl", "normal", "status", 0), move("leer", "normal", "status", 0)}, nil, 4)
	if len(onlyStatus) != 2 {
		t.Fatalf("expected status moves to fill the set, got %d", len(onlyStatus))
	}
}

func TestRandomDexNumbers(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	ids := pokemon.RandomDexNumbers(rng, 6)
	if len(ids) != 6 {
		t.Fatalf("expected 6 ids, got %d", len(ids))
	}
	seen := map[int]bool{}
	for _, id := range ids {
		if id < 1 || id > pokemon.MaxDexNumber || seen[id] {
			t.Fatalf("bad or repeated id %d in %v", id, ids)
		}
		seen[id] = true
	}
}

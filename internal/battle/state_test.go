package battle_test

import (
	"testing"

	"github.com/ross1116/pokebattlesim/internal/battle"
)

func TestApplyDamageAndHealClamp(t *testing.T) {
	p := mon("Geodude", nil, even(40, 20))

	if lost := p.ApplyDamage(55); lost != 40 || p.CurrentHP != 0 || !p.IsFainted() {
		t.Fatalf("expected HP floored at 0 after losing 40, got %d (lost %d)", p.CurrentHP, lost)
	}
	if gained := p.Heal(10); gained != 0 {
		t.Fatalf("expected a fainted combatant not to heal, gained %d", gained)
	}

	p.CurrentHP = 35
	if gained := p.Heal(20); gained != 5 || p.CurrentHP != 40 {
		t.Fatalf("expected heal capped at max HP, got %d (gained %d)", p.CurrentHP, gained)
	}
}

func TestApplyStatStageClamp(t *testing.T) {
	p := mon("Snorlax", nil, even(200, 30))

	if applied := p.ApplyStatStage(battle.StatDefense, 5); applied != 5 {
		t.Fatalf("expected +5, got %d", applied)
	}
	if applied := p.ApplyStatStage(battle.StatDefense, 3); applied != 1 {
		t.Fatalf("expected the stage to stop at +6, applied %d", applied)
	}
	if applied := p.ApplyStatStage(battle.StatSpeed, -9); applied != battle.MinStage {
		t.Fatalf("expected the stage to stop at -6, applied %d", applied)
	}
	if got := p.EffectiveStat(battle.StatDefense); got != 400 {
		t.Fatalf("expected +6 Defense to quadruple 100, got %d", got)
	}
	if got := p.Speed(); got != 7 {
		t.Fatalf("expected -6 Speed to quarter 30, got %d", got)
	}
}

func TestApplyStatusOnlyOnce(t *testing.T) {
	p := mon("Oddish", nil, even(100, 30))
	if !p.ApplyStatus(battle.StatusPoison, 0) {
		t.Fatalf("expected poison to apply")
	}
	if p.ApplyStatus(battle.StatusBurn, 0) || p.Status != battle.StatusPoison {
		t.Fatalf("expected a second status to be refused")
	}
}

func TestBenchAndWinner(t *testing.T) {
	a, b, c := mon("A", nil, even(10, 1)), mon("B", nil, even(10, 1)), mon("C", nil, even(10, 1))
	b.CurrentHP = 0
	state := battle.BattleState{}
	state.Sides[battle.SidePlayer] = battle.SideState{Team: []battle.BattlePokemon{a, b, c}}
	state.Sides[battle.SideAI] = battle.SideState{ID: battle.SideAI, Team: []battle.BattlePokemon{c}}

	bench := state.Player().Bench()
	if len(bench) != 1 || bench[0] != 2 {
		t.Fatalf("expected bench [2], got %v", bench)
	}
	if _, over := state.Winner(); over {
		t.Fatalf("expected the battle to continue")
	}
	state.AI().Team[0].CurrentHP = 0
	if winner, over := state.Winner(); !over || winner != battle.SidePlayer {
		t.Fatalf("expected the player to win")
	}
}

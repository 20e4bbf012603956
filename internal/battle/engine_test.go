package battle_test

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/ross1116/pokebattlesim/internal/battle"
	"github.com/ross1116/pokebattlesim/internal/pokemon"
)

func TestNewRejectsEmptyRoster(t *testing.T) {
	_, err := battle.New(nil, []battle.BattlePokemon{mon("Eevee", []pokemon.Type{pokemon.Normal}, even(100, 50))})
	if !errors.Is(err, battle.ErrEmptyRoster) {
		t.Fatalf("expected ErrEmptyRoster, got %v", err)
	}
}

func TestNewSendsOutFirstMembers(t *testing.T) {
	var sunk []string
	b, err := battle.New(
		[]battle.BattlePokemon{mon("Charmander", nil, even(100, 50)), mon("Squirtle", nil, even(100, 50))},
		[]battle.BattlePokemon{mon("Bulbasaur", nil, even(100, 50))},
		battle.WithLogSink(func(line string) { sunk = append(sunk, line) }),
		battle.WithSideNames("Red", "Blue"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	state := b.State()
	if state.Player().ActiveIndex != 0 || state.AI().ActiveIndex != 0 {
		t.Fatalf("expected first roster entries active")
	}
	expected := []string{"Red sent out Charmander!", "Blue sent out Bulbasaur!"}
	if !slices.Equal(state.Log, expected) || !slices.Equal(sunk, expected) {
		t.Fatalf("expected log %v, got state %v and sink %v", expected, state.Log, sunk)
	}
}

func TestPriorityOverridesSpeed(t *testing.T) {
	slowbro := mon("Slowbro", []pokemon.Type{pokemon.Water}, even(500, 30), withPriority(physical("Quick Attack", pokemon.Normal, 40), 1))
	sneasel := mon("Sneasel", []pokemon.Type{pokemon.Ice}, even(500, 115), physical("Tackle", pokemon.Normal, 40))
	b := newBattle(t, []battle.BattlePokemon{slowbro}, []battle.BattlePokemon{sneasel}, highRand())

	b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))

	log := b.State().Log
	quick, tackle := logIndex(log, "Slowbro used Quick Attack!"), logIndex(log, "Sneasel used Tackle!")
	if quick < 0 || tackle < 0 || quick > tackle {
		t.Fatalf("expected the priority move first, got log %v", log)
	}
}

func TestFasterCombatantMovesFirst(t *testing.T) {
	slow := mon("Snorlax", []pokemon.Type{pokemon.Normal}, even(500, 30), physical("Tackle", pokemon.Normal, 40))
	fast := mon("Jolteon", []pokemon.Type{pokemon.Electric}, even(500, 130), physical("Tackle", pokemon.Normal, 40))
	b := newBattle(t, []battle.BattlePokemon{slow}, []battle.BattlePokemon{fast}, highRand())

	b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))

	log := b.State().Log
	if logIndex(log, "Jolteon used") > logIndex(log, "Snorlax used") {
		t.Fatalf("expected Jolteon to move first, got %v", log)
	}
}

func TestSwitchResolvesBeforeMoves(t *testing.T) {
	lead := mon("Pikachu", []pokemon.Type{pokemon.Electric}, even(100, 200), physical("Tackle", pokemon.Normal, 40))
	bench := mon("Onix", []pokemon.Type{pokemon.Rock}, even(100, 10), physical("Tackle", pokemon.Normal, 40))
	foe := mon("Zubat", []pokemon.Type{pokemon.Poison}, even(100, 300), withPriority(physical("Quick Attack", pokemon.Normal, 40), 1))
	b := newBattle(t, []battle.BattlePokemon{lead, bench}, []battle.BattlePokemon{foe}, highRand())

	b.ExecuteTurn(battle.SwitchAction("pikachu", 1), battle.MoveAction("zubat", 0))

	state := b.State()
	if state.Player().ActiveIndex != 1 {
		t.Fatalf("expected Onix active, got index %d", state.Player().ActiveIndex)
	}
	if state.Player().Team[0].CurrentHP != 100 {
		t.Fatalf("expected Pikachu untouched, got %d HP", state.Player().Team[0].CurrentHP)
	}
	if state.Player().Team[1].CurrentHP >= 100 {
		t.Fatalf("expected Onix to take the hit")
	}
	if logIndex(state.Log, "Player sent out Onix!") > logIndex(state.Log, "Zubat used Quick Attack!") {
		t.Fatalf("expected switch before move, got %v", state.Log)
	}
}

func TestSwitchToFaintedTargetIgnored(t *testing.T) {
	lead := mon("Pikachu", nil, even(100, 50), physical("Tackle", pokemon.Normal, 40))
	fainted := mon("Raichu", nil, even(100, 50), physical("Tackle", pokemon.Normal, 40))
	fainted.CurrentHP = 0
	foe := mon("Zubat", nil, even(100, 50), physical("Tackle", pokemon.Normal, 40))
	b := newBattle(t, []battle.BattlePokemon{lead, fainted}, []battle.BattlePokemon{foe}, highRand())

	b.ExecuteTurn(battle.SwitchAction("", 1), battle.MoveAction("", 0))

	if b.State().Player().ActiveIndex != 0 {
		t.Fatalf("expected the switch to a fainted target to be ignored")
	}
	if b.State().Turn != 2 {
		t.Fatalf("expected turn 2, got %d", b.State().Turn)
	}
}

func TestPerfectAccuracyNeverMisses(t *testing.T) {
	attacker := mon("Machamp", nil, even(100000, 50), physical("Karate Chop", pokemon.Fighting, 50))
	defender := mon("Golem", nil, even(100000, 40), physical("Karate Chop", pokemon.Fighting, 50))
	attacker.Moves[0].PP, defender.Moves[0].PP = 2*iterCount, 2*iterCount
	b := newBattle(t, []battle.BattlePokemon{attacker}, []battle.BattlePokemon{defender}, rand.New(rand.NewPCG(7, 11)))

	for range iterCount {
		b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
	}
	if hasLine(b.State().Log, "missed") {
		t.Fatalf("a 100%% accurate move missed")
	}
}

func TestImperfectAccuracyCanMiss(t *testing.T) {
	inaccurate := physical("Rock Slide", pokemon.Rock, 75)
	inaccurate.Accuracy = 90
	attacker := mon("Golem", nil, even(100, 50), inaccurate)
	defender := mon("Pidgey", nil, even(100, 40), statusMove("Growl", pokemon.Normal, battle.EffectLowerAttack))
	b := newBattle(t, []battle.BattlePokemon{attacker}, []battle.BattlePokemon{defender}, highRand())

	b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))

	if !hasLine(b.State().Log, "Golem's attack missed!") {
		t.Fatalf("expected a miss, got %v", b.State().Log)
	}
	if b.State().AI().Active().CurrentHP != 100 {
		t.Fatalf("expected no damage on a miss")
	}
}

func TestImmunityLogsNoEffect(t *testing.T) {
	for seed := range uint64(50) {
		attacker := mon("Tauros", []pokemon.Type{pokemon.Normal}, even(100, 110), withEffect(physical("Headbutt", pokemon.Normal, 70), battle.EffectLowerDefense))
		defender := mon("Haunter", []pokemon.Type{pokemon.Ghost, pokemon.Poison}, even(100, 95), statusMove("Growl", pokemon.Normal, battle.EffectLowerAttack))
		b := newBattle(t, []battle.BattlePokemon{attacker}, []battle.BattlePokemon{defender}, rand.New(rand.NewPCG(seed, seed)))

		b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))

		if hp := b.State().AI().Active().CurrentHP; hp != 100 {
			t.Fatalf("seed %d: expected immune defender at full HP, got %d", seed, hp)
		}
		if !hasLine(b.State().Log, "It had no effect on Haunter") {
			t.Fatalf("seed %d: expected a no-effect message, got %v", seed, b.State().Log)
		}
		// the secondary effect still runs against an immune target
		if stage := b.State().AI().Active().StatStages[battle.StatDefense]; stage != -1 {
			t.Fatalf("seed %d: expected Haunter's Defense at -1, got %d", seed, stage)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	player := mon("Charmander", []pokemon.Type{pokemon.Fire}, even(100, 65), physical("Scratch", pokemon.Normal, 40))
	ai := mon("Bulbasaur", []pokemon.Type{pokemon.Grass, pokemon.Poison}, even(100, 45), physical("Tackle", pokemon.Normal, 40))
	var sunk int
	b, err := battle.New([]battle.BattlePokemon{player}, []battle.BattlePokemon{ai},
		battle.WithRand(highRand()), battle.WithLogSink(func(string) { sunk++ }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.State().AI().Conditions = []string{"reflect"}
	sunkBefore := sunk

	clone := b.Clone()
	clone.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
	cs := clone.State()
	cs.Player().Team[0].Types[0] = pokemon.Water
	cs.AI().Conditions[0] = "light-screen"
	cs.AI().Team[0].StatStages[battle.StatAttack] = 3

	orig := b.State()
	switch {
	case orig.Turn != 1:
		t.Fatalf("original turn advanced to %d", orig.Turn)
	case orig.Player().Active().CurrentHP != 100 || orig.AI().Active().CurrentHP != 100:
		t.Fatalf("original HP changed")
	case orig.Player().Active().Moves[0].PP != 35:
		t.Fatalf("original PP changed to %d", orig.Player().Active().Moves[0].PP)
	case orig.Player().Active().Types[0] != pokemon.Fire:
		t.Fatalf("original types changed")
	case orig.AI().Conditions[0] != "reflect":
		t.Fatalf("original conditions changed")
	case orig.AI().Active().StatStages[battle.StatAttack] != 0:
		t.Fatalf("original stat stages changed")
	case len(orig.Log) != 2:
		t.Fatalf("original log grew to %d lines", len(orig.Log))
	case sunk != sunkBefore:
		t.Fatalf("clone emitted to the original's log sink")
	}
}

func TestStateCloneCopiesEverything(t *testing.T) {
	b := newBattle(t,
		[]battle.BattlePokemon{mon("Mew", []pokemon.Type{pokemon.Psychic}, even(100, 100), physical("Pound", pokemon.Normal, 40))},
		[]battle.BattlePokemon{mon("Ditto", []pokemon.Type{pokemon.Normal}, even(100, 48), physical("Pound", pokemon.Normal, 40))},
		highRand())
	b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
	orig := b.State()
	orig.Field.Weather = "rain"
	copied := orig.Clone()

	if copied.Turn != orig.Turn || copied.LastMove != orig.LastMove || copied.Field != orig.Field {
		t.Fatalf("clone dropped scalar fields")
	}
	if !slices.Equal(copied.Log, orig.Log) {
		t.Fatalf("clone dropped log history")
	}
	copied.Log[0] = "changed"
	copied.Player().Team[0].Moves[0].Name = "changed"
	if orig.Log[0] == "changed" || orig.Player().Team[0].Moves[0].Name == "changed" {
		t.Fatalf("clone shares memory with the original")
	}
}

func TestHPStaysInRange(t *testing.T) {
	healer := mon("Chansey", []pokemon.Type{pokemon.Normal}, even(120, 50),
		physical("Double-Edge", pokemon.Normal, 120),
		statusMove("Soft-Boiled", pokemon.Normal, battle.EffectHealHalf),
		withEffect(physical("Giga Drain", pokemon.Grass, 75), battle.EffectDrain),
	)
	healer.Moves[0].Effect = battle.EffectRecoil
	rng := rand.New(rand.NewPCG(3, 5))

	for range 50 {
		b := newBattle(t, []battle.BattlePokemon{healer}, []battle.BattlePokemon{healer}, rng)
		for turn := 0; turn < 40; turn++ {
			state := b.State()
			if _, over := state.Winner(); over {
				break
			}
			b.ExecuteTurn(battle.MoveAction("", rng.IntN(3)), battle.MoveAction("", rng.IntN(3)))
			for _, side := range state.Sides {
				for _, p := range side.Team {
					if p.CurrentHP < 0 || p.CurrentHP > p.MaxHP {
						t.Fatalf("HP %d outside [0, %d]", p.CurrentHP, p.MaxHP)
					}
				}
			}
		}
	}
}

func TestPPDepletes(t *testing.T) {
	move := physical("Thunder", pokemon.Electric, 110)
	move.PP, move.MaxPP = 1, 1
	attacker := mon("Zapdos", nil, even(500, 100), move)
	defender := mon("Lapras", nil, even(500, 60), statusMove("Growl", pokemon.Normal, battle.EffectLowerAttack))
	b := newBattle(t, []battle.BattlePokemon{attacker}, []battle.BattlePokemon{defender}, highRand())

	b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
	if pp := b.State().Player().Active().Moves[0].PP; pp != 0 {
		t.Fatalf("expected 0 PP, got %d", pp)
	}
	if err := b.ValidateAction(battle.SidePlayer, battle.MoveAction("", 0)); !errors.Is(err, battle.ErrNoPP) {
		t.Fatalf("expected ErrNoPP, got %v", err)
	}
	if len(b.LegalActions(battle.SidePlayer)) != 0 {
		t.Fatalf("expected no legal actions")
	}

	b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
	if !hasLine(b.State().Log, "Zapdos tried to use Thunder but has no PP left!") {
		t.Fatalf("expected a no-PP message, got %v", b.State().Log)
	}
}

func TestStatStagesClamp(t *testing.T) {
	dancer := mon("Scyther", nil, even(500, 105), statusMove("Swords Dance", pokemon.Normal, battle.EffectRaiseAttack))
	dancer.Moves[0].PP = 10
	target := mon("Magikarp", nil, even(500, 80), statusMove("Splash", pokemon.Water, battle.EffectBasicDamage))
	b := newBattle(t, []battle.BattlePokemon{dancer}, []battle.BattlePokemon{target}, highRand())

	for range 4 {
		b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
	}
	if stage := b.State().Player().Active().StatStages[battle.StatAttack]; stage != battle.MaxStage {
		t.Fatalf("expected stage %d after clamping, got %d", battle.MaxStage, stage)
	}
	if !hasLine(b.State().Log, "Scyther's Attack won't go any higher!") {
		t.Fatalf("expected a clamp message, got %v", b.State().Log)
	}
}

func TestStatusEffects(t *testing.T) {
	t.Run("chance burn and residual damage", func(t *testing.T) {
		ember := withEffect(physical("Ember", pokemon.Fire, 40), battle.EffectBurnChance)
		attacker := mon("Vulpix", nil, even(160, 65), ember)
		defender := mon("Rattata", nil, even(160, 72), statusMove("Growl", pokemon.Normal, battle.EffectLowerAttack))
		b := newBattle(t, []battle.BattlePokemon{attacker}, []battle.BattlePokemon{defender}, lowRand())

		b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))

		foe := b.State().AI().Active()
		if foe.Status != battle.StatusBurn {
			t.Fatalf("expected burn, got %q", foe.Status)
		}
		if !hasLine(b.State().Log, "Rattata was burned!") || !hasLine(b.State().Log, "Rattata is hurt by its burn!") {
			t.Fatalf("expected burn messages, got %v", b.State().Log)
		}
	})

	t.Run("chance status never applies on a high roll", func(t *testing.T) {
		ember := withEffect(physical("Ember", pokemon.Fire, 40), battle.EffectBurnChance)
		attacker := mon("Vulpix", nil, even(160, 65), ember)
		defender := mon("Rattata", nil, even(160, 72), statusMove("Growl", pokemon.Normal, battle.EffectLowerAttack))
		b := newBattle(t, []battle.BattlePokemon{attacker}, []battle.BattlePokemon{defender}, highRand())

		b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
		if s := b.State().AI().Active().Status; s != battle.StatusNone {
			t.Fatalf("expected no status, got %q", s)
		}
	})

	t.Run("paralysis can prevent moving", func(t *testing.T) {
		wave := statusMove("Thunder Wave", pokemon.Electric, battle.EffectInflictParalysis)
		attacker := mon("Pikachu", nil, even(100, 90), wave)
		defender := mon("Geodude", nil, even(100, 20), physical("Tackle", pokemon.Normal, 40))
		b := newBattle(t, []battle.BattlePokemon{attacker}, []battle.BattlePokemon{defender}, lowRand())

		b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))

		log := b.State().Log
		if !hasLine(log, "Geodude is paralyzed! It may be unable to move!") || !hasLine(log, "Geodude is paralyzed! It can't move!") {
			t.Fatalf("expected paralysis messages, got %v", log)
		}
		if hasLine(log, "Geodude used") {
			t.Fatalf("paralyzed combatant moved")
		}
	})

	t.Run("sleep wears off", func(t *testing.T) {
		spore := statusMove("Spore", pokemon.Grass, battle.EffectInflictSleep)
		attacker := mon("Parasect", nil, even(300, 30), spore)
		defender := mon("Eevee", nil, even(300, 55), physical("Tackle", pokemon.Normal, 40))
		b := newBattle(t, []battle.BattlePokemon{attacker}, []battle.BattlePokemon{defender}, lowRand())

		b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
		foe := b.State().AI().Active()
		if foe.Status != battle.StatusSleep || foe.StatusTurns != 1 {
			t.Fatalf("expected one turn of sleep, got %q for %d", foe.Status, foe.StatusTurns)
		}
		b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
		if !hasLine(b.State().Log, "Eevee is fast asleep.") {
			t.Fatalf("expected Eevee asleep, got %v", b.State().Log)
		}
		b.ExecuteTurn(battle.SwitchAction("", 0), battle.MoveAction("", 0))
		if !hasLine(b.State().Log, "Eevee woke up!") || countLines(b.State().Log, "Eevee used Tackle!") != 2 {
			t.Fatalf("expected Eevee to wake and attack, got %v", b.State().Log)
		}
	})

	t.Run("status move fails on a statused target", func(t *testing.T) {
		wave := statusMove("Thunder Wave", pokemon.Electric, battle.EffectInflictParalysis)
		attacker := mon("Pikachu", nil, even(100, 90), wave)
		defender := mon("Geodude", nil, even(100, 20), physical("Tackle", pokemon.Normal, 40))
		defender.Status = battle.StatusPoison
		b := newBattle(t, []battle.BattlePokemon{attacker}, []battle.BattlePokemon{defender}, highRand())

		b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
		if !hasLine(b.State().Log, "But it failed!") {
			t.Fatalf("expected failure, got %v", b.State().Log)
		}
	})
}

func TestRecoilAndDrain(t *testing.T) {
	edge := withEffect(physical("Double-Edge", pokemon.Normal, 120), battle.EffectRecoil)
	drain := withEffect(physical("Giga Drain", pokemon.Grass, 75), battle.EffectDrain)
	user := mon("Tauros", nil, even(300, 110), edge, drain)
	foe := mon("Snorlax", nil, even(300, 30), statusMove("Growl", pokemon.Normal, battle.EffectLowerAttack))
	b := newBattle(t, []battle.BattlePokemon{user}, []battle.BattlePokemon{foe}, highRand())

	b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
	afterRecoil := b.State().Player().Active().CurrentHP
	if afterRecoil >= 300 || !hasLine(b.State().Log, "Tauros is hit with recoil!") {
		t.Fatalf("expected recoil damage, got %d HP and log %v", afterRecoil, b.State().Log)
	}

	b.ExecuteTurn(battle.MoveAction("", 1), battle.MoveAction("", 0))
	if hp := b.State().Player().Active().CurrentHP; hp <= afterRecoil {
		t.Fatalf("expected drain to heal above %d, got %d", afterRecoil, hp)
	}
	if !hasLine(b.State().Log, "Snorlax had its energy drained!") {
		t.Fatalf("expected a drain message, got %v", b.State().Log)
	}
}

func TestFaintedActorSkipsMove(t *testing.T) {
	glass := mon("Abra", nil, even(1, 10), physical("Tackle", pokemon.Normal, 40))
	hitter := mon("Jolteon", nil, even(200, 130), physical("Tackle", pokemon.Normal, 40))
	b := newBattle(t, []battle.BattlePokemon{glass}, []battle.BattlePokemon{hitter}, highRand())

	b.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))

	log := b.State().Log
	if !hasLine(log, "Abra fainted!") || hasLine(log, "Abra used") {
		t.Fatalf("expected Abra to faint before moving, got %v", log)
	}
	if winner, over := b.State().Winner(); !over || winner != battle.SideAI {
		t.Fatalf("expected the AI side to win")
	}
}

func TestInvalidActionsAreNoOps(t *testing.T) {
	a := mon("Pidgey", nil, even(100, 56), physical("Tackle", pokemon.Normal, 40))
	c := mon("Spearow", nil, even(100, 70), physical("Peck", pokemon.Flying, 35))
	b := newBattle(t, []battle.BattlePokemon{a}, []battle.BattlePokemon{c}, highRand())

	b.ExecuteTurn(battle.MoveAction("", 7), battle.BattleAction{Kind: "dance"})

	state := b.State()
	if state.Turn != 2 {
		t.Fatalf("expected the turn counter to advance, got %d", state.Turn)
	}
	if state.Player().Active().CurrentHP != 100 || state.AI().Active().CurrentHP != 100 {
		t.Fatalf("invalid actions changed HP")
	}
}

func TestStruggleForfeits(t *testing.T) {
	a := mon("Magikarp", nil, even(100, 80))
	c := mon("Gyarados", nil, even(100, 81), physical("Tackle", pokemon.Normal, 40))
	b := newBattle(t, []battle.BattlePokemon{a}, []battle.BattlePokemon{c}, highRand())

	if err := b.ValidateAction(battle.SidePlayer, battle.StruggleAction("")); err != nil {
		t.Fatalf("expected struggle to be legal with no moves, got %v", err)
	}
	b.ExecuteTurn(battle.StruggleAction(""), battle.MoveAction("", 0))
	state := b.State()
	if !hasLine(state.Log, "Player has nothing left to fight with!") {
		t.Fatalf("expected a struggle message, got %v", state.Log)
	}
	if hasLine(state.Log, "Gyarados used") {
		t.Fatalf("expected no moves after a forfeit, got %v", state.Log)
	}
	if winner, over := state.Winner(); !over || winner != battle.SideAI {
		t.Fatalf("expected the AI side to win after the player struggled")
	}
	if state.Turn != 2 {
		t.Fatalf("expected the turn counter to advance, got %d", state.Turn)
	}
}

func TestBothSidesStruggling(t *testing.T) {
	a := mon("Magikarp", nil, even(100, 80))
	c := mon("Feebas", nil, even(100, 80))
	b := newBattle(t, []battle.BattlePokemon{a}, []battle.BattlePokemon{c}, highRand())

	b.ExecuteTurn(battle.StruggleAction(""), battle.StruggleAction(""))
	if winner, over := b.State().Winner(); !over || winner != battle.SideAI {
		t.Fatalf("expected the player side to lose a double forfeit")
	}
}

func TestCloneLeavesOriginalRollsAlone(t *testing.T) {
	build := func() *battle.Battle {
		return newBattle(t,
			[]battle.BattlePokemon{mon("Machop", []pokemon.Type{pokemon.Fighting}, even(1000, 35), physical("Karate Chop", pokemon.Fighting, 50))},
			[]battle.BattlePokemon{mon("Rattata", []pokemon.Type{pokemon.Normal}, even(1000, 72), physical("Tackle", pokemon.Normal, 40))},
			rand.New(rand.NewPCG(7, 11)))
	}
	plain, cloned := build(), build()

	sim := cloned.Clone()
	for range 3 {
		sim.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
	}

	for range 3 {
		plain.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
		cloned.ExecuteTurn(battle.MoveAction("", 0), battle.MoveAction("", 0))
	}
	if !slices.Equal(plain.State().Log, cloned.State().Log) {
		t.Fatalf("cloning changed the original's rolls:\n%v\n%v", plain.State().Log, cloned.State().Log)
	}
}

func TestValidateAction(t *testing.T) {
	lead := mon("Bulbasaur", nil, even(100, 45), physical("Tackle", pokemon.Normal, 40))
	down := mon("Ivysaur", nil, even(100, 60), physical("Tackle", pokemon.Normal, 40))
	down.CurrentHP = 0
	ready := mon("Venusaur", nil, even(100, 80), physical("Tackle", pokemon.Normal, 40))
	b := newBattle(t, []battle.BattlePokemon{lead, down, ready}, []battle.BattlePokemon{ready}, highRand())

	tests := []struct {
		action   battle.BattleAction
		expected error
	}{
		{battle.MoveAction("bulbasaur", 0), nil},
		{battle.MoveAction("", 4), battle.ErrInvalidMove},
		{battle.MoveAction("venusaur", 0), battle.ErrUnknownActor},
		{battle.SwitchAction("", 1), battle.ErrFaintedTarget},
		{battle.SwitchAction("", 0), battle.ErrAlreadyActive},
		{battle.SwitchAction("", 9), battle.ErrInvalidSwitch},
		{battle.SwitchAction("", 2), nil},
		{battle.StruggleAction(""), battle.ErrStruggleDenied},
		{battle.BattleAction{Kind: "run"}, battle.ErrUnknownKind},
	}
	for _, tt := range tests {
		err := b.ValidateAction(battle.SidePlayer, tt.action)
		if !errors.Is(err, tt.expected) {
			t.Errorf("%+v: expected %v, got %v", tt.action, tt.expected, err)
		}
	}

	legal := b.LegalActions(battle.SidePlayer)
	if len(legal) != 2 || legal[0].Kind != battle.ActionMove || legal[1] != battle.SwitchAction("bulbasaur", 2) {
		t.Fatalf("unexpected legal actions %+v", legal)
	}
}

func TestSideIDText(t *testing.T) {
	for _, id := range []battle.SideID{battle.SidePlayer, battle.SideAI} {
		text, _ := id.MarshalText()
		var back battle.SideID
		if err := back.UnmarshalText(text); err != nil || back != id {
			t.Fatalf("round trip of %s gave %s (%v)", id, back, err)
		}
	}
	var id battle.SideID
	if err := id.UnmarshalText([]byte("spectator")); err == nil || !strings.Contains(err.Error(), "spectator") {
		t.Fatalf("expected an error naming the bad side, got %v", err)
	}
}

func withPriority(m battle.BattleMove, priority int) battle.BattleMove {
	m.Priority = priority
	return m
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ross1116/pokebattlesim/internal/ai"
	"github.com/ross1116/pokebattlesim/internal/battle"
)

var errNoInput = errors.New("input closed before the battle ended")

// game is the offline terminal battle against the AI.
type game struct {
	battle *battle.Battle
	bot    *ai.AI
	depth  int
	in     *bufio.Scanner
	out    *bufio.Writer
}

// play runs turns until one side has nobody left and returns the winner.
func (g *game) play() (battle.SideID, error) {
	for {
		state := g.battle.State()
		if winner, ok := state.Winner(); ok {
			if winner == battle.SidePlayer {
				fmt.Fprintln(g.out, "\nYou won the battle!")
			} else {
				fmt.Fprintln(g.out, "\nYou lost the battle!")
			}
			g.out.Flush()
			return winner, nil
		}

		battle.RenderView(g.out, battle.ViewFor(state, battle.SidePlayer))
		action, err := g.choose(state)
		if err != nil {
			return 0, err
		}
		if err := g.battle.ValidateAction(battle.SidePlayer, action); err != nil {
			fmt.Fprintf(g.out, "That won't work: %v\n", err)
			continue
		}

		fmt.Fprintln(g.out)
		g.battle.ExecuteTurn(action, g.bot.BestAction(g.battle, g.depth))
	}
}

func (g *game) choose(state *battle.BattleState) (battle.BattleAction, error) {
	active := state.Player().Active()
	if active.IsFainted() {
		fmt.Fprintf(g.out, "\n%s has fainted! Choose a replacement.\n", active.Name)
		return g.chooseSwitch(state)
	}
	if len(battle.LegalActions(state, battle.SidePlayer)) == 0 {
		return battle.StruggleAction(active.InstanceID), nil
	}

	fmt.Fprintln(g.out, "\nWhat would you like to do?")
	fmt.Fprintln(g.out, "1. Fight")
	fmt.Fprintln(g.out, "2. Switch Pokémon")
	choice, err := g.readNumber("Enter your choice (1-2): ")
	if err != nil {
		return battle.BattleAction{}, err
	}

	switch choice {
	case 1:
		battle.RenderMoves(g.out, battle.FullView(active, state.Player().ActiveIndex, true))
		slot, err := g.readNumber(fmt.Sprintf("\nSelect your move (enter a number 1 - %d): ", len(active.Moves)))
		if err != nil {
			return battle.BattleAction{}, err
		}
		return battle.MoveAction(active.InstanceID, slot-1), nil
	case 2:
		return g.chooseSwitch(state)
	}
	fmt.Fprintln(g.out, "Invalid choice. Please try again.")
	return g.choose(state)
}

func (g *game) chooseSwitch(state *battle.BattleState) (battle.BattleAction, error) {
	side := state.Player()
	fmt.Fprintln(g.out, "\nYour Pokémon squad:")
	for i := range side.Team {
		p := &side.Team[i]
		label := "Ready"
		switch {
		case p.IsFainted():
			label = "Fainted"
		case i == side.ActiveIndex:
			label = "Active"
		}
		fmt.Fprintf(g.out, "%d. %s - HP: %d/%d - %s\n", i+1, p.Name, p.CurrentHP, p.MaxHP, label)
	}
	index, err := g.readNumber("Select a Pokémon to switch to: ")
	if err != nil {
		return battle.BattleAction{}, err
	}
	return battle.SwitchAction(side.Active().InstanceID, index-1), nil
}

// readNumber prompts until a number is entered. Non-numeric input is re-prompted.
func (g *game) readNumber(prompt string) (int, error) {
	for {
		fmt.Fprint(g.out, prompt)
		g.out.Flush()
		if !g.in.Scan() {
			if err := g.in.Err(); err != nil {
				return 0, err
			}
			return 0, errNoInput
		}
		n, err := strconv.Atoi(strings.TrimSpace(g.in.Text()))
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(g.out, "Please enter a number.")
	}
}

package battle

import (
	"errors"
	"fmt"
)

type SideID int

const (
	SidePlayer SideID = iota
	SideAI
)

func (s SideID) Other() SideID {
	return 1 - s
}

func (s SideID) String() string {
	if s == SideAI {
		return "ai"
	}
	return "player"
}

func (s SideID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SideID) UnmarshalText(text []byte) error {
	switch string(text) {
	case "player":
		*s = SidePlayer
	case "ai":
		*s = SideAI
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}

type ActionKind string

const (
	ActionMove   ActionKind = "move"
	ActionSwitch ActionKind = "switch"
	// ActionStruggle signals that the side cannot continue: no combatant left to send
	// out or no move left to use. ExecuteTurn records it as a forfeit.
	ActionStruggle ActionKind = "struggle"
)

type BattleAction struct {
	Kind    ActionKind `json:"type"`
	Index   int        `json:"index"`
	ActorID string     `json:"actor_id"`
}

func MoveAction(actorID string, slot int) BattleAction {
	return BattleAction{Kind: ActionMove, Index: slot, ActorID: actorID}
}

func SwitchAction(actorID string, rosterIndex int) BattleAction {
	return BattleAction{Kind: ActionSwitch, Index: rosterIndex, ActorID: actorID}
}

func StruggleAction(actorID string) BattleAction {
	return BattleAction{Kind: ActionStruggle, ActorID: actorID}
}

var (
	ErrEmptyRoster    = errors.New("roster is empty")
	ErrNoMoves        = errors.New("combatant has no moves")
	ErrInvalidMove    = errors.New("invalid move slot")
	ErrInvalidSwitch  = errors.New("invalid switch target")
	ErrFaintedTarget  = errors.New("switch target has fainted")
	ErrAlreadyActive  = errors.New("switch target is already active")
	ErrNoPP           = errors.New("move has no PP left")
	ErrMustSwitch     = errors.New("active combatant has fainted and must be replaced")
	ErrUnknownActor   = errors.New("action does not belong to the active combatant")
	ErrUnknownKind    = errors.New("unknown action type")
	ErrStruggleDenied = errors.New("side still has a legal action")
)

// ValidateAction checks an action against the side's current state without executing it.
func ValidateAction(state *BattleState, side SideID, action BattleAction) error {
	s := state.Side(side)
	active := s.Active()
	if action.ActorID != "" && action.ActorID != active.InstanceID {
		return fmt.Errorf("%w: %s", ErrUnknownActor, action.ActorID)
	}

	switch action.Kind {
	case ActionMove:
		if active.IsFainted() {
			return ErrMustSwitch
		}
		if action.Index < 0 || action.Index >= len(active.Moves) {
			return fmt.Errorf("%w: %d", ErrInvalidMove, action.Index)
		}
		if active.Moves[action.Index].PP <= 0 {
			return fmt.Errorf("%w: %s", ErrNoPP, active.Moves[action.Index].Name)
		}
	case ActionSwitch:
		if action.Index < 0 || action.Index >= len(s.Team) {
			return fmt.Errorf("%w: %d", ErrInvalidSwitch, action.Index)
		}
		if s.Team[action.Index].IsFainted() {
			return fmt.Errorf("%w: %s", ErrFaintedTarget, s.Team[action.Index].Name)
		}
		if action.Index == s.ActiveIndex {
			return ErrAlreadyActive
		}
	case ActionStruggle:
		if len(LegalActions(state, side)) > 0 {
			return ErrStruggleDenied
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, action.Kind)
	}
	return nil
}

// LegalActions lists every action the side may submit this turn, moves first in slot order.
// A side with a fainted active combatant may only switch.
func LegalActions(state *BattleState, side SideID) []BattleAction {
	s := state.Side(side)
	active := s.Active()
	var actions []BattleAction
	if !active.IsFainted() {
		for i, m := range active.Moves {
			if m.PP > 0 {
				actions = append(actions, MoveAction(active.InstanceID, i))
			}
		}
	}
	for _, i := range s.Bench() {
		actions = append(actions, SwitchAction(active.InstanceID, i))
	}
	return actions
}

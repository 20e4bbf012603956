package pokemon

import (
	"strings"

	"github.com/samber/lo"
)

// FilterMoveByLearn returns the moves a species learns by level-up, deduplicated by name.
func FilterMoveByLearn(p *Pokemon) []ApiResource {
	var moves []ApiResource
	for _, move := range p.Moves {
		for _, detail := range move.VersionGroupDetails {
			if detail.MoveLearnMethod.Name == "level-up" {
				moves = append(moves, move.Move)
				break
			}
		}
	}
	return lo.UniqBy(moves, func(m ApiResource) string { return m.Name })
}

func IsStatusMove(m *MoveInfo) bool {
	return m.DamageClass.Name == "status"
}

// PickMoves chooses up to n moves from candidates in their given order: damaging moves
// that share a type with the user first, then other damaging moves, keeping one slot for a
// status move when one is available.
func PickMoves(candidates []*MoveInfo, types []Type, n int) []*MoveInfo {
	candidates = lo.Filter(candidates, func(m *MoveInfo, _ int) bool { return m != nil })

	sameType := lo.Filter(candidates, func(m *MoveInfo, _ int) bool {
		return !IsStatusMove(m) && m.Power > 0 && lo.Contains(types, Type(strings.ToLower(m.Type.Name)))
	})
	others := lo.Filter(candidates, func(m *MoveInfo, _ int) bool {
		return !IsStatusMove(m) && m.Power > 0 && !lo.Contains(types, Type(strings.ToLower(m.Type.Name)))
	})
	status := lo.Filter(candidates, func(m *MoveInfo, _ int) bool { return IsStatusMove(m) })

	damaging := append(append([]*MoveInfo{}, sameType...), others...)

	reserve := 0
	if len(status) > 0 && n > 1 {
		reserve = 1
	}
	take := min(len(damaging), n-reserve)
	selected := append(make([]*MoveInfo, 0, n), damaging[:take]...)
	if reserve == 1 {
		selected = append(selected, status[0])
		status = status[1:]
	}
	for _, m := range append(damaging[take:], status...) {
		if len(selected) >= n {
			break
		}
		selected = append(selected, m)
	}
	return selected
}

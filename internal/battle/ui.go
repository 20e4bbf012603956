package battle

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func statusLabel(s Status) string {
	if s == StatusNone {
		return "OK"
	}
	return cases.Upper(language.English).String(string(s))
}

func readiness(p PokemonSummary) string {
	switch {
	case p.Fainted:
		return "Fainted"
	case p.Active:
		return "Active"
	}
	return "Ready"
}

// RenderView writes a side's view of the battlefield as plain text.
func RenderView(w io.Writer, v SideView) {
	fmt.Fprintf(w, "\n=== TURN %d ===\n", v.Turn)
	fmt.Fprintln(w, "\nYour Team:")
	for _, p := range v.Team {
		fmt.Fprintf(w, "%d. %s Lv%d - HP: %d/%d (%d%%) - %s - %s\n",
			p.Index+1, p.Name, p.Level, p.CurrentHP, p.MaxHP, p.HPPercent, statusLabel(p.Status), readiness(p.PokemonSummary))
	}
	fmt.Fprintln(w, "\nOpponent's Team:")
	for _, p := range v.Opponent {
		fmt.Fprintf(w, "%d. %s Lv%d - HP: %d%% - %s - %s\n",
			p.Index+1, p.Name, p.Level, p.HPPercent, statusLabel(p.Status), readiness(p))
	}
}

func RenderMoves(w io.Writer, p PokemonFullView) {
	fmt.Fprintln(w, "\nMoveset:")
	for _, m := range p.Moves {
		fmt.Fprintf(w, "%d. %s [%s/%s] Pow %d Acc %d (PP: %d/%d)\n",
			m.Slot+1, m.Name, strings.ToUpper(string(m.Type)), m.Category, m.Power, m.Accuracy, m.PP, m.MaxPP)
	}
}

func RenderLog(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

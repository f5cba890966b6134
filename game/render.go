package game

import (
	"fmt"
	"strings"

	"github.com/ivomac/coup/engine"
)

// Render returns a debug view of the match: the current phase, the legal
// moves, and a markdown table of every seat's cards and coins. It reveals all
// hands, so it is for logs and local play only.
func (g *Game) Render() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder

	fmt.Fprintf(&b, "\nTurn %d - %s", g.turn, g.phase.Kind())
	if responder := g.phase.Responder(); responder != nil {
		fmt.Fprintf(&b, " - seat %d", responder.Seat)
	}
	b.WriteString("\n")

	if g.winner >= 0 {
		fmt.Fprintf(&b, "\nGAME OVER - winner is seat %d\n", g.winner)
	} else if moves := g.phase.LegalMoves(); len(moves) > 0 {
		names := make([]string, len(moves))
		for i, m := range moves {
			names[i] = m.String()
		}
		fmt.Fprintf(&b, "\nAvailable actions: %s\n", strings.Join(names, " "))
	}

	b.WriteString("\n| seat | cards | coins |\n|---|---|---|\n")
	for _, p := range g.table.Seats() {
		fmt.Fprintf(&b, "| %d | %s | %d$ |\n", p.Seat, handString(p), p.Coins)
	}
	return b.String()
}

func handString(p *engine.Player) string {
	cards := p.Cards()
	var parts []string
	for _, r := range engine.Roles {
		for i := uint8(0); i < cards[r]; i++ {
			parts = append(parts, r.String()[:3])
		}
	}
	return strings.Join(parts, " ")
}

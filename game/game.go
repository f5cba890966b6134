// Package game drives complete games of Coup over the engine's turn machine.
// It owns what the core deliberately leaves to a driver: resolving target
// offsets, rotating turn order at end of turn, resetting the per-round pass
// flags, and reporting eliminations and the winner.
package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ivomac/coup/engine"
)

// OnEliminationFunc is called when a seat loses its last card.
type OnEliminationFunc func(gameID uuid.UUID, seat int)

// OnGameEndFunc is called once a single player remains.
type OnGameEndFunc func(gameID uuid.UUID, winnerSeat int)

// Game is one running match. All methods are safe for a single external
// driver; the mutex only guards against accidental concurrent drivers.
type Game struct {
	ID    uuid.UUID
	Rules engine.Rules

	OnElimination OnEliminationFunc
	OnGameEnd     OnGameEndFunc

	mu     sync.Mutex
	table  *engine.Table
	phase  engine.Phase
	turn   int
	winner int
	alive  []bool

	log logrus.FieldLogger
}

// New creates a game with the given rules and deals the first table.
func New(rules engine.Rules, seed uint64, log logrus.FieldLogger) (*Game, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	g := &Game{
		ID:     uuid.New(),
		Rules:  rules,
		winner: -1,
		log:    log,
	}
	if err := g.Reset(seed); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset deals a fresh table and hands the first turn to a random living seat.
func (g *Game) Reset(seed uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	table, err := engine.NewTable(g.Rules, seed)
	if err != nil {
		return err
	}
	start := table.RandomAlive()

	g.table = table
	g.phase = engine.Start{Player: start}
	g.turn = 1
	g.winner = -1
	g.alive = make([]bool, table.NumSeats())
	for i, p := range table.Seats() {
		g.alive[i] = p.Alive()
	}

	g.log.WithFields(logrus.Fields{
		"game":  g.ID,
		"seed":  seed,
		"alive": table.AliveCount(),
		"start": start.Seat,
	}).Debug("table dealt")
	return nil
}

// Table returns the seating arena for snapshot reads.
func (g *Game) Table() *engine.Table {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.table
}

// Phase returns the current turn phase.
func (g *Game) Phase() engine.Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Turn returns the 1-based turn counter.
func (g *Game) Turn() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turn
}

// Winner returns the winning seat, or -1 while the game is still running.
func (g *Game) Winner() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner
}

// Over reports whether the game has reached its terminal phase.
func (g *Game) Over() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase.Kind() == engine.KindGameOver
}

// LegalMoves returns the legal move set for the current responder.
func (g *Game) LegalMoves() []engine.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase.LegalMoves()
}

// Step validates and applies one move for the current responder. When the
// move completes the turn, end-of-turn bookkeeping runs before Step returns:
// pass flags reset, eliminations reported, and the phase rotated to the next
// survivor's Start or to GameOver.
func (g *Game) Step(mv engine.Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	responder := g.phase.Responder()
	if responder == nil {
		return fmt.Errorf("step in %s: %w", g.phase.Kind(), engine.ErrIllegalMove)
	}

	// Validate the move before touching the target offset, so bad input
	// always surfaces as an illegal move rather than a resolution error.
	legal := false
	for _, m := range g.phase.LegalMoves() {
		if m == mv {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("step %s in %s: %w", mv, g.phase.Kind(), engine.ErrIllegalMove)
	}

	var target *engine.Player
	if mv.Target != 0 {
		var err error
		target, err = g.table.Resolve(responder, mv.Target)
		if err != nil {
			return err
		}
	}

	next, err := g.phase.Apply(mv.Action, target)
	if err != nil {
		return err
	}

	g.log.WithFields(logrus.Fields{
		"game":  g.ID,
		"turn":  g.turn,
		"phase": g.phase.Kind(),
		"seat":  responder.Seat,
		"move":  mv,
		"next":  next.Kind(),
	}).Debug("move applied")

	g.phase = next
	if next.Kind() == engine.KindEndTurn {
		return g.finishTurn(next.(engine.EndTurn))
	}
	return nil
}

// finishTurn runs the driver-side bookkeeping the core leaves to us.
// Called with the mutex held.
func (g *Game) finishTurn(end engine.EndTurn) error {
	aliveCount := 0
	for _, p := range g.table.Seats() {
		p.ResetFlags()
		if p.Alive() {
			aliveCount++
			continue
		}
		if g.alive[p.Seat] {
			g.alive[p.Seat] = false
			g.log.WithFields(logrus.Fields{
				"game": g.ID,
				"turn": g.turn,
				"seat": p.Seat,
			}).Info("player eliminated")
			if g.OnElimination != nil {
				g.OnElimination(g.ID, p.Seat)
			}
		}
	}

	if aliveCount <= 1 {
		g.phase = engine.GameOver{}
		if aliveCount == 1 {
			for _, p := range g.table.Seats() {
				if p.Alive() {
					g.winner = p.Seat
					break
				}
			}
			g.log.WithFields(logrus.Fields{
				"game":   g.ID,
				"turn":   g.turn,
				"winner": g.winner,
			}).Info("game over")
			if g.OnGameEnd != nil {
				g.OnGameEnd(g.ID, g.winner)
			}
		}
		return nil
	}

	next, err := end.Act.Actor.NextAlive()
	if err != nil {
		return err
	}
	g.turn++
	g.phase = engine.Start{Player: next}
	return nil
}

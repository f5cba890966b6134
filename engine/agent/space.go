// Package agent exposes the engine to learning agents: a fixed discrete
// action space per player count and a flat observation encoding of everything
// a single seat is allowed to see.
package agent

import (
	"fmt"

	"github.com/ivomac/coup/engine"
)

// Space enumerates the discrete action space for a fixed player count: every
// catalog action, with targeted actions fanned out over living-order target
// offsets 1..N-1. The enumeration order is stable across games, so action
// indices are safe to use as network outputs.
type Space struct {
	numPlayers int
	moves      []engine.Move
	index      map[engine.Move]int
}

// NewSpace builds the action space for numPlayers seats. The full space must
// fit in a 64-bit legality mask, which holds for any playable table.
func NewSpace(numPlayers int) (*Space, error) {
	if numPlayers < 2 {
		return nil, fmt.Errorf("action space: %d players, need at least 2", numPlayers)
	}
	s := &Space{numPlayers: numPlayers, index: make(map[engine.Move]int)}
	for _, a := range engine.Catalog {
		if a.Type == engine.ActTarget {
			for tgt := 1; tgt < numPlayers; tgt++ {
				s.add(engine.Move{Action: a, Target: tgt})
			}
		} else {
			s.add(engine.Move{Action: a})
		}
	}
	if len(s.moves) > 64 {
		return nil, fmt.Errorf("action space: %d actions exceed the 64-bit mask", len(s.moves))
	}
	return s, nil
}

func (s *Space) add(m engine.Move) {
	s.index[m] = len(s.moves)
	s.moves = append(s.moves, m)
}

// NumPlayers returns the player count the space was built for.
func (s *Space) NumPlayers() int { return s.numPlayers }

// Len returns the number of discrete actions.
func (s *Space) Len() int { return len(s.moves) }

// MoveAt returns the move at a discrete action index.
func (s *Space) MoveAt(i int) (engine.Move, error) {
	if i < 0 || i >= len(s.moves) {
		return engine.Move{}, fmt.Errorf("action space: index %d out of range [0,%d)", i, len(s.moves))
	}
	return s.moves[i], nil
}

// Index returns the discrete action index for a move.
func (s *Space) Index(m engine.Move) (int, bool) {
	i, ok := s.index[m]
	return i, ok
}

// LegalMask returns a bitmask of the phase's legal moves: bit i is set when
// MoveAt(i) is currently legal for the responder.
func (s *Space) LegalMask(ph engine.Phase) uint64 {
	var mask uint64
	for _, m := range ph.LegalMoves() {
		if i, ok := s.index[m]; ok {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

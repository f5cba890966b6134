package engine

import "errors"

// Driver input errors. These are recoverable: the caller supplied a move or
// target outside the current legal set and should re-prompt.
var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrInvalidTarget = errors.New("invalid target")
)

// Contract-breach errors. Reaching one of these signals a defect in the
// calling driver (losing an unheld card, drawing from an exhausted deck,
// walking the ring after the win condition); they must not be caught and
// played through.
var (
	ErrCardNotHeld    = errors.New("card not held")
	ErrEmptyDeck      = errors.New("deck exhausted")
	ErrNoOtherPlayers = errors.New("no other alive players")
)

package engine

import "fmt"

// Coin thresholds and payouts.
const (
	StartingCoins   = 2
	IncomeGain      = 1
	ForeignAidGain  = 2
	TaxGain         = 3
	AssassinateCost = 3
	CoupCost        = 7
	MustCoupCoins   = 10 // at or above, Coup is the only legal opening
	StealMax        = 2
)

// Rules holds configurable table settings.
type Rules struct {
	NumSeats     uint8 // fixed seating ring size; 0 treated as 6
	NumAlive     uint8 // seats dealt in at setup; 0 treated as NumSeats
	CardsPerRole uint8 // copies of each role in the deck; 0 treated as 3
	DeadDraw     bool  // burn two cards for every unused seat at setup
}

// DefaultRules returns the standard six-seat table.
func DefaultRules() Rules {
	return Rules{NumSeats: 6, NumAlive: 6, CardsPerRole: 3}
}

func (r *Rules) numSeats() int {
	if r.NumSeats == 0 {
		return 6
	}
	return int(r.NumSeats)
}

func (r *Rules) numAlive() int {
	if r.NumAlive == 0 {
		return r.numSeats()
	}
	return int(r.NumAlive)
}

func (r *Rules) cardsPerRole() uint8 {
	if r.CardsPerRole == 0 {
		return 3
	}
	return r.CardsPerRole
}

// Validate checks that the table can be dealt: at least two live seats, no
// more live seats than chairs, and a deck big enough that every dealt seat
// holds two cards with spares left for exchanges.
func (r Rules) Validate() error {
	seats, alive := r.numSeats(), r.numAlive()
	if seats < 2 {
		return fmt.Errorf("rules: %d seats, need at least 2", seats)
	}
	if alive < 2 {
		return fmt.Errorf("rules: %d alive seats, need at least 2", alive)
	}
	if alive > seats {
		return fmt.Errorf("rules: %d alive seats exceed %d seats", alive, seats)
	}
	total := int(r.cardsPerRole()) * NumRoles
	dealt := alive
	if r.DeadDraw {
		dealt = seats
	}
	if max := total/2 - 1; dealt > max {
		return fmt.Errorf("rules: %d dealt seats exceed %d supported by a %d-card deck", dealt, max, total)
	}
	return nil
}

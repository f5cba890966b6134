package engine

import "fmt"

// Table is the arena for one game: the fixed seating ring, the shared deck,
// and the tally of revealed (eliminated) cards. Seats never move or disappear;
// elimination is expressed only through empty hands.
type Table struct {
	seats    []*Player
	deck     *Deck
	revealed [NumRoles]uint8
}

// NewTable seats rules.NumSeats players and deals two cards to each of
// rules.NumAlive randomly chosen seats. Unused seats start with no cards
// (eliminated before play); with DeadDraw set they burn two cards so the deck
// composition matches a full table.
func NewTable(rules Rules, seed uint64) (*Table, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	t := &Table{
		deck:  NewDeck(rules.cardsPerRole(), seed),
		seats: make([]*Player, rules.numSeats()),
	}
	for i := range t.seats {
		t.seats[i] = &Player{Seat: i, Coins: StartingCoins, table: t}
	}

	// Pick the live subset by partial Fisher-Yates over seat indices.
	order := make([]int, len(t.seats))
	for i := range order {
		order[i] = i
	}
	numAlive := rules.numAlive()
	for i := 0; i < numAlive; i++ {
		j := i + int(t.deck.randN(uint64(len(order)-i)))
		order[i], order[j] = order[j], order[i]
	}
	live := make(map[int]bool, numAlive)
	for _, seat := range order[:numAlive] {
		live[seat] = true
	}

	for _, p := range t.seats {
		switch {
		case live[p.Seat]:
			if err := p.Draw(); err != nil {
				return nil, err
			}
			if err := p.Draw(); err != nil {
				return nil, err
			}
		case rules.DeadDraw:
			for i := 0; i < 2; i++ {
				if _, err := t.deck.Draw(); err != nil {
					return nil, fmt.Errorf("dead draw for seat %d: %w", p.Seat, err)
				}
			}
		}
	}

	return t, nil
}

// Seats returns the seating ring in fixed order. Callers must treat it as
// read-only.
func (t *Table) Seats() []*Player { return t.seats }

// Seat returns the player at the given seat index.
func (t *Table) Seat(i int) *Player { return t.seats[i] }

// NumSeats returns the size of the seating ring.
func (t *Table) NumSeats() int { return len(t.seats) }

// DeckCount returns the remaining copies of a role in the draw pile.
func (t *Table) DeckCount(r Role) uint8 { return t.deck.Count(r) }

// DeckTotal returns the number of cards remaining in the draw pile.
func (t *Table) DeckTotal() int { return t.deck.Total() }

// Revealed returns how many copies of a role have been permanently revealed
// through card losses.
func (t *Table) Revealed(r Role) uint8 {
	if r >= NumRoles {
		return 0
	}
	return t.revealed[r]
}

// AliveCount returns the number of players still holding cards.
func (t *Table) AliveCount() int {
	n := 0
	for _, p := range t.seats {
		if p.Alive() {
			n++
		}
	}
	return n
}

// RandomAlive returns a uniformly random living player, drawn from the same
// seeded source as the deck.
func (t *Table) RandomAlive() *Player {
	alive := make([]*Player, 0, len(t.seats))
	for _, p := range t.seats {
		if p.Alive() {
			alive = append(alive, p)
		}
	}
	if len(alive) == 0 {
		return nil
	}
	return alive[t.deck.randN(uint64(len(alive)))]
}

// Resolve maps a living-order target offset from p (1 = next alive after p)
// to a player. Offset 0 resolves to p itself.
func (t *Table) Resolve(p *Player, offset int) (*Player, error) {
	if offset == 0 {
		return p, nil
	}
	step := 0
	n := len(t.seats)
	for i := 1; i < n; i++ {
		q := t.seats[(p.Seat+i)%n]
		if !q.Alive() {
			continue
		}
		step++
		if step == offset {
			return q, nil
		}
	}
	return nil, fmt.Errorf("resolve offset %d from seat %d: %w", offset, p.Seat, ErrInvalidTarget)
}

// Ring returns every seat starting at from, in fixed seating order, dead
// seats included. Used by the observation layer for viewer-relative indexing.
func (t *Table) Ring(from *Player) []*Player {
	n := len(t.seats)
	ring := make([]*Player, 0, n)
	for i := 0; i < n; i++ {
		ring = append(ring, t.seats[(from.Seat+i)%n])
	}
	return ring
}

// aliveAfter returns the living players after p in ring order. The slice
// index plus one is the player's living-order target offset.
func (t *Table) aliveAfter(p *Player) []*Player {
	n := len(t.seats)
	var alive []*Player
	for i := 1; i < n; i++ {
		q := t.seats[(p.Seat+i)%n]
		if q.Alive() {
			alive = append(alive, q)
		}
	}
	return alive
}

// offsetTo returns the living-order offset from p to q (1 = next alive after
// p), or 0 when q is not a living other seat.
func (t *Table) offsetTo(p, q *Player) int {
	for i, other := range t.aliveAfter(p) {
		if other == q {
			return i + 1
		}
	}
	return 0
}

// Unseen returns, per role, the number of cards the viewer cannot see: the
// draw pile plus every other hand. Revealed cards are public and excluded.
func (t *Table) Unseen(viewer *Player) [NumRoles]uint8 {
	var unseen [NumRoles]uint8
	for _, r := range Roles {
		unseen[r] = t.deck.Count(r)
	}
	for _, q := range t.seats {
		if q == viewer {
			continue
		}
		for _, r := range Roles {
			unseen[r] += q.cards[r]
		}
	}
	return unseen
}

// Player is one seat's mutable state. Coins and cards are mutated only by the
// turn machine acting for the current responder; the pass flags are consumed
// once per decision round and reset by the driver at end of turn.
type Player struct {
	Seat  int
	Coins int

	cards [NumRoles]uint8

	ChallengePassed      bool
	BlockPassed          bool
	BlockChallengePassed bool

	table *Table
}

// Alive reports whether the player still holds at least one card.
// Elimination is irreversible: cards only shrink or swap one for one.
func (p *Player) Alive() bool { return p.CardCount() > 0 }

// CardCount returns the number of cards in hand.
func (p *Player) CardCount() int {
	n := 0
	for _, c := range p.cards {
		n += int(c)
	}
	return n
}

// Held returns how many copies of a role the player holds.
func (p *Player) Held(r Role) uint8 {
	if r >= NumRoles {
		return 0
	}
	return p.cards[r]
}

// Cards returns a snapshot of the player's own hand. Consumers must only
// surface a hand to the seat that owns it.
func (p *Player) Cards() [NumRoles]uint8 { return p.cards }

// Draw moves one random card from the shared deck into the hand.
func (p *Player) Draw() error {
	r, err := p.table.deck.Draw()
	if err != nil {
		return fmt.Errorf("seat %d draw: %w", p.Seat, err)
	}
	p.cards[r]++
	return nil
}

// Putback returns one held card of the given role to the deck. Used both for
// proving a challenged claim and for returning exchange cards.
func (p *Player) Putback(r Role) error {
	if r >= NumRoles || p.cards[r] == 0 {
		return fmt.Errorf("seat %d putback %s: %w", p.Seat, r, ErrCardNotHeld)
	}
	p.cards[r]--
	p.table.deck.Put(r)
	return nil
}

// Lose permanently removes one held card of the given role, revealing it.
func (p *Player) Lose(r Role) error {
	if r >= NumRoles || p.cards[r] == 0 {
		return fmt.Errorf("seat %d lose %s: %w", p.Seat, r, ErrCardNotHeld)
	}
	p.cards[r]--
	p.table.revealed[r]++
	return nil
}

// NextAlive walks the seating ring after this player and returns the first
// surviving seat. Callers must have ruled out a sole survivor first.
func (p *Player) NextAlive() (*Player, error) {
	n := len(p.table.seats)
	for i := 1; i < n; i++ {
		q := p.table.seats[(p.Seat+i)%n]
		if q.Alive() {
			return q, nil
		}
	}
	return nil, fmt.Errorf("seat %d next alive: %w", p.Seat, ErrNoOtherPlayers)
}

// ResetFlags clears the per-round pass flags.
func (p *Player) ResetFlags() {
	p.ChallengePassed = false
	p.BlockPassed = false
	p.BlockChallengePassed = false
}

package engine

import "fmt"

// NumRoles is the number of distinct role identities.
const NumRoles = 5

// Role identifies one of the five court roles. Roles carry no behavior of
// their own; they are deck units and bluff claims.
type Role uint8

const (
	Ambassador Role = iota
	Assassin
	Captain
	Contessa
	Duke
)

// NoRole marks the absence of a role claim.
const NoRole Role = 0xFF

// Roles lists every role identity in catalog order.
var Roles = [NumRoles]Role{Ambassador, Assassin, Captain, Contessa, Duke}

var roleNames = [NumRoles]string{"Ambassador", "Assassin", "Captain", "Contessa", "Duke"}

func (r Role) String() string {
	if r >= NumRoles {
		return "None"
	}
	return roleNames[r]
}

// Deck is the shared draw pile: a multiset of roles plus the game's single
// random source. It is owned by the Table and mutated only through player
// draw/putback and dead-seat burns at setup.
type Deck struct {
	counts [NumRoles]uint8
	rng    uint64
}

// NewDeck builds a pile with perRole copies of each role, seeded for
// deterministic draws.
func NewDeck(perRole uint8, seed uint64) *Deck {
	d := &Deck{rng: seed}
	if d.rng == 0 {
		d.rng = 1 // xorshift can't start at 0
	}
	for i := range d.counts {
		d.counts[i] = perRole
	}
	return d
}

// ---------------------------------------------------------------------------
// xorshift64 RNG — inline, no interface
// ---------------------------------------------------------------------------

func (d *Deck) nextRand() uint64 {
	x := d.rng
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	d.rng = x
	return x
}

// randN returns a random number in [0, n).
func (d *Deck) randN(n uint64) uint64 {
	return d.nextRand() % n
}

// Draw removes one uniformly random card from the pile.
func (d *Deck) Draw() (Role, error) {
	total := d.Total()
	if total == 0 {
		return NoRole, fmt.Errorf("deck draw: %w", ErrEmptyDeck)
	}
	k := d.randN(uint64(total))
	for _, r := range Roles {
		c := uint64(d.counts[r])
		if k < c {
			d.counts[r]--
			return r, nil
		}
		k -= c
	}
	return NoRole, fmt.Errorf("deck draw walked past total %d: %w", total, ErrEmptyDeck)
}

// Put returns one card of the given role to the pile.
func (d *Deck) Put(r Role) {
	d.counts[r]++
}

// Count returns the remaining copies of a role.
func (d *Deck) Count(r Role) uint8 {
	if r >= NumRoles {
		return 0
	}
	return d.counts[r]
}

// Total returns the number of cards remaining in the pile.
func (d *Deck) Total() int {
	total := 0
	for _, c := range d.counts {
		total += int(c)
	}
	return total
}

package engine

// ChallengeKind distinguishes a challenge to a declared action from a
// challenge to a block.
type ChallengeKind uint8

const (
	ChallengeAction ChallengeKind = iota
	ChallengeBlock
)

func (k ChallengeKind) String() string {
	if k == ChallengeBlock {
		return "block"
	}
	return "action"
}

// ActInfo records a declared action for the life of the turn. Target equals
// Actor for non-targeted actions.
type ActInfo struct {
	Actor  *Player
	Action *Action
	Target *Player
}

// ChallengeInfo records a resolved challenge.
type ChallengeInfo struct {
	Kind       ChallengeKind
	Challenger *Player
	Loser      *Player
}

// Failed reports whether the challenge was wrong: the claim was genuine and
// the challenger pays for it.
func (c *ChallengeInfo) Failed() bool { return c.Loser == c.Challenger }

// BlockInfo records a declared block.
type BlockInfo struct {
	Blocker *Player
	Action  *Action
}

// ResolveSteal transfers min(StealMax, target coins) from the target to the
// actor. Partial steals are legal; the target never goes negative.
func ResolveSteal(act *ActInfo) {
	amount := act.Target.Coins
	if amount > StealMax {
		amount = StealMax
	}
	act.Actor.Coins += amount
	act.Target.Coins -= amount
}

// resolveChallenge decides a called challenge against a claimed role. A
// claimant who truly holds the role always proves it by returning that card
// to the deck and drawing a fresh replacement — never by keeping the same
// physical card, so deck order leaks nothing — and the challenger loses a
// card. Otherwise the claimant loses a card.
func resolveChallenge(kind ChallengeKind, claimant *Player, claimed Role, challenger *Player) (*ChallengeInfo, error) {
	loser := claimant
	if claimed != NoRole && claimant.Held(claimed) > 0 {
		if err := claimant.Putback(claimed); err != nil {
			return nil, err
		}
		if err := claimant.Draw(); err != nil {
			return nil, err
		}
		loser = challenger
	}
	return &ChallengeInfo{Kind: kind, Challenger: challenger, Loser: loser}, nil
}

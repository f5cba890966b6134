// Package engine implements the Coup card game rules.
//
// The turn protocol is a closed set of Phase values. Exactly one player (the
// phase's responder) has legal moves at any time; a driver repeatedly asks the
// current phase for its legal move set, applies one externally chosen move,
// and replaces the phase with the result. Phases are immutable values carrying
// only their responder and the records accumulated this turn; player coins,
// cards, and the shared deck are mutated as transition side effects. At
// EndTurn the driver resets the per-round pass flags and rotates to the next
// surviving player, or to GameOver once at most one player remains.
package engine

import "fmt"

// PhaseKind tags the concrete variant of a Phase.
type PhaseKind uint8

const (
	KindStart PhaseKind = iota
	KindChallenge
	KindChallengeResolve
	KindForeignAidBlock
	KindTargetBlock
	KindBlockChallenge
	KindBlockChallengeResolve
	KindActionResolve
	KindExchangeResolve
	KindExchangeTwoResolve
	KindEndTurn
	KindGameOver
)

var phaseKindNames = [...]string{
	"Start", "Challenge", "ChallengeResolve", "ForeignAidBlock", "TargetBlock",
	"BlockChallenge", "BlockChallengeResolve", "ActionResolve",
	"ExchangeResolve", "ExchangeTwoResolve", "EndTurn", "GameOver",
}

func (k PhaseKind) String() string {
	if int(k) >= len(phaseKindNames) {
		return "Unknown"
	}
	return phaseKindNames[k]
}

// Records bundles the resolution records a phase has accumulated, for the
// observation and logging layers.
type Records struct {
	Act            *ActInfo
	Challenge      *ChallengeInfo
	Block          *BlockInfo
	BlockChallenge *ChallengeInfo
}

// Phase is one variant of the turn state machine.
type Phase interface {
	Kind() PhaseKind

	// Responder returns the single player who must act, or nil for the
	// EndTurn and GameOver variants.
	Responder() *Player

	// LegalMoves returns the ordered legal move set for the responder.
	// Empty for EndTurn and GameOver.
	LegalMoves() []Move

	// Apply consumes one move and returns the next phase. Targeted moves
	// carry the resolved target player; all others pass nil. Returns
	// ErrIllegalMove or ErrInvalidTarget on bad driver input.
	Apply(action *Action, target *Player) (Phase, error)

	// Records returns the resolution records accumulated so far this turn.
	Records() Records

	isPhase()
}

// ---------------------------------------------------------------------------
// Legal move builders
// ---------------------------------------------------------------------------

func challengeMoves() []Move {
	var moves []Move
	for _, a := range Catalog {
		if a.Type == ActChallenge {
			moves = append(moves, Move{Action: a})
		}
	}
	return moves
}

func blockMoves(act *Action) []Move {
	moves := make([]Move, 0, len(act.Blocks))
	for _, b := range act.Blocks {
		moves = append(moves, Move{Action: b})
	}
	return moves
}

// loseMoves enumerates one card-loss move per distinct role currently held;
// duplicate holdings collapse to a single selectable move.
func loseMoves(p *Player) []Move {
	var moves []Move
	for _, r := range Roles {
		if p.Held(r) > 0 {
			moves = append(moves, Move{Action: LoseFor(r)})
		}
	}
	return moves
}

// legalAction reports whether the action appears in the phase's legal set.
func legalAction(ph Phase, a *Action) bool {
	for _, m := range ph.LegalMoves() {
		if m.Action == a {
			return true
		}
	}
	return false
}

// legalMove reports whether the exact (action, offset) pair is in the phase's
// legal set.
func legalMove(ph Phase, mv Move) bool {
	for _, m := range ph.LegalMoves() {
		if m == mv {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Start
// ---------------------------------------------------------------------------

// Start is the opening phase: the turn holder declares an action.
type Start struct {
	Player *Player
}

func (s Start) Kind() PhaseKind    { return KindStart }
func (s Start) Responder() *Player { return s.Player }
func (s Start) Records() Records   { return Records{} }
func (s Start) isPhase()           {}

func (s Start) LegalMoves() []Move {
	p := s.Player
	others := p.table.aliveAfter(p)

	var moves []Move
	if p.Coins >= CoupCost {
		for i := range others {
			moves = append(moves, Move{Action: Coup, Target: i + 1})
		}
		if p.Coins >= MustCoupCoins {
			// Must coup: every other option is withdrawn.
			return moves
		}
	}

	for i, other := range others {
		if p.Coins >= AssassinateCost {
			moves = append(moves, Move{Action: Assassinate, Target: i + 1})
		}
		if other.Coins > 0 {
			moves = append(moves, Move{Action: Steal, Target: i + 1})
		}
	}

	for _, a := range Catalog {
		if a.Type == ActSelf {
			moves = append(moves, Move{Action: a})
		}
	}
	return moves
}

func (s Start) Apply(action *Action, target *Player) (Phase, error) {
	if action.Type == ActTarget {
		if target == nil || target == s.Player || !target.Alive() {
			return nil, fmt.Errorf("start: %s: %w", action.Name, ErrInvalidTarget)
		}
		// Legality is per pair: Steal against one target can be legal while
		// against a coinless one it is not.
		offset := s.Player.table.offsetTo(s.Player, target)
		if !legalMove(s, Move{Action: action, Target: offset}) {
			return nil, fmt.Errorf("start: %s: %w", action.Name, ErrIllegalMove)
		}
	} else {
		if !legalAction(s, action) {
			return nil, fmt.Errorf("start: %s: %w", action.Name, ErrIllegalMove)
		}
		target = s.Player
	}

	act := &ActInfo{Actor: s.Player, Action: action, Target: target}

	switch action {
	case Income:
		act.Actor.Coins += IncomeGain
		return EndTurn{Act: act}, nil

	case ForeignAid:
		next, err := s.Player.NextAlive()
		if err != nil {
			return nil, err
		}
		return ForeignAidBlock{Player: next, Act: act}, nil

	case Coup:
		act.Actor.Coins -= CoupCost
		return ActionResolve{Player: act.Target, Act: act}, nil

	case Assassinate:
		// The cost is paid up front and kept even if the attempt is later
		// challenged or blocked.
		act.Actor.Coins -= AssassinateCost
	}

	// Every remaining opening claims a role and may be challenged.
	next, err := s.Player.NextAlive()
	if err != nil {
		return nil, err
	}
	return Challenge{Player: next, Act: act}, nil
}

// ---------------------------------------------------------------------------
// Challenge round
// ---------------------------------------------------------------------------

// Challenge polls each alive player after the actor, in seating order, for a
// challenge to the declared claim. Any single call short-circuits the round;
// a unanimous pass resolves the action.
type Challenge struct {
	Player *Player
	Act    *ActInfo
}

func (c Challenge) Kind() PhaseKind    { return KindChallenge }
func (c Challenge) Responder() *Player { return c.Player }
func (c Challenge) Records() Records   { return Records{Act: c.Act} }
func (c Challenge) isPhase()           {}
func (c Challenge) LegalMoves() []Move { return challengeMoves() }

func (c Challenge) Apply(action *Action, _ *Player) (Phase, error) {
	switch action {
	case ChallengePass:
		c.Player.ChallengePassed = true
		next, err := c.Player.NextAlive()
		if err != nil {
			return nil, err
		}
		if next == c.Act.Actor {
			return resolveUnchallenged(c.Act)
		}
		return Challenge{Player: next, Act: c.Act}, nil

	case ChallengeCall:
		chl, err := resolveChallenge(ChallengeAction, c.Act.Actor, c.Act.Action.Role, c.Player)
		if err != nil {
			return nil, err
		}
		return ChallengeResolve{Player: chl.Loser, Act: c.Act, Challenge: chl}, nil
	}
	return nil, fmt.Errorf("challenge: %s: %w", action.Name, ErrIllegalMove)
}

// resolveUnchallenged resolves a claimed action once every responder passed.
func resolveUnchallenged(act *ActInfo) (Phase, error) {
	switch act.Action {
	case Exchange:
		if err := act.Actor.Draw(); err != nil {
			return nil, err
		}
		if err := act.Actor.Draw(); err != nil {
			return nil, err
		}
		return ExchangeResolve{Player: act.Actor, Act: act}, nil

	case Tax:
		act.Actor.Coins += TaxGain
		return EndTurn{Act: act}, nil
	}
	// Assassinate and Steal offer the target a block.
	return TargetBlock{Player: act.Target, Act: act}, nil
}

// ChallengeResolve makes the challenge loser reveal and lose one card, then
// resolves or abandons the interrupted action.
type ChallengeResolve struct {
	Player    *Player
	Act       *ActInfo
	Challenge *ChallengeInfo
}

func (c ChallengeResolve) Kind() PhaseKind    { return KindChallengeResolve }
func (c ChallengeResolve) Responder() *Player { return c.Player }
func (c ChallengeResolve) Records() Records   { return Records{Act: c.Act, Challenge: c.Challenge} }
func (c ChallengeResolve) isPhase()           {}
func (c ChallengeResolve) LegalMoves() []Move { return loseMoves(c.Player) }

func (c ChallengeResolve) Apply(action *Action, _ *Player) (Phase, error) {
	if !legalAction(c, action) {
		return nil, fmt.Errorf("challenge resolve: %s: %w", action.Name, ErrIllegalMove)
	}
	if err := c.Player.Lose(action.Role); err != nil {
		return nil, err
	}

	act, chl := c.Act, c.Challenge
	if chl.Loser == act.Actor {
		// A failed claim forfeits the action.
		return EndTurn{Act: act, Challenge: chl}, nil
	}

	switch act.Action {
	case Tax:
		act.Actor.Coins += TaxGain
		return EndTurn{Act: act, Challenge: chl}, nil

	case Exchange:
		if err := act.Actor.Draw(); err != nil {
			return nil, err
		}
		if err := act.Actor.Draw(); err != nil {
			return nil, err
		}
		return ExchangeResolve{Player: act.Actor, Act: act, Challenge: chl}, nil
	}

	if !act.Target.Alive() {
		// The challenger was the target and the lost card eliminated them:
		// the action is abandoned, never retargeted.
		return EndTurn{Act: act, Challenge: chl}, nil
	}
	return TargetBlock{Player: act.Target, Act: act, Challenge: chl}, nil
}

// ---------------------------------------------------------------------------
// Block rounds
// ---------------------------------------------------------------------------

// ForeignAidBlock polls each alive player after the actor for a Duke-claiming
// block of the foreign aid. A unanimous pass pays the actor.
type ForeignAidBlock struct {
	Player *Player
	Act    *ActInfo
}

func (f ForeignAidBlock) Kind() PhaseKind    { return KindForeignAidBlock }
func (f ForeignAidBlock) Responder() *Player { return f.Player }
func (f ForeignAidBlock) Records() Records   { return Records{Act: f.Act} }
func (f ForeignAidBlock) isPhase()           {}
func (f ForeignAidBlock) LegalMoves() []Move { return blockMoves(f.Act.Action) }

func (f ForeignAidBlock) Apply(action *Action, _ *Player) (Phase, error) {
	switch action {
	case BlockPass:
		f.Player.BlockPassed = true
		next, err := f.Player.NextAlive()
		if err != nil {
			return nil, err
		}
		if next == f.Act.Actor {
			f.Act.Actor.Coins += ForeignAidGain
			return EndTurn{Act: f.Act}, nil
		}
		return ForeignAidBlock{Player: next, Act: f.Act}, nil

	case BlockForeignAid:
		blk := &BlockInfo{Blocker: f.Player, Action: BlockForeignAid}
		next, err := f.Player.NextAlive()
		if err != nil {
			return nil, err
		}
		return BlockChallenge{Player: next, Act: f.Act, Block: blk}, nil
	}
	return nil, fmt.Errorf("foreign aid block: %s: %w", action.Name, ErrIllegalMove)
}

// TargetBlock gives the action's target — and only the target — the choice to
// block or let the action resolve.
type TargetBlock struct {
	Player    *Player
	Act       *ActInfo
	Challenge *ChallengeInfo
}

func (b TargetBlock) Kind() PhaseKind    { return KindTargetBlock }
func (b TargetBlock) Responder() *Player { return b.Player }
func (b TargetBlock) Records() Records   { return Records{Act: b.Act, Challenge: b.Challenge} }
func (b TargetBlock) isPhase()           {}
func (b TargetBlock) LegalMoves() []Move { return blockMoves(b.Act.Action) }

func (b TargetBlock) Apply(action *Action, _ *Player) (Phase, error) {
	if !legalAction(b, action) {
		return nil, fmt.Errorf("target block: %s: %w", action.Name, ErrIllegalMove)
	}

	if action == BlockPass {
		b.Player.BlockPassed = true
		switch b.Act.Action {
		case Steal:
			ResolveSteal(b.Act)
			return EndTurn{Act: b.Act, Challenge: b.Challenge}, nil
		case Assassinate:
			return ActionResolve{Player: b.Act.Target, Act: b.Act, Challenge: b.Challenge}, nil
		}
		return nil, fmt.Errorf("target block: unblockable action %s reached block phase", b.Act.Action.Name)
	}

	blk := &BlockInfo{Blocker: b.Player, Action: action}
	next, err := b.Player.NextAlive()
	if err != nil {
		return nil, err
	}
	return BlockChallenge{Player: next, Act: b.Act, Challenge: b.Challenge, Block: blk}, nil
}

// BlockChallenge polls each alive player after the blocker, excluding the
// blocker, for a challenge to the block's role claim. A unanimous pass lets
// the block stand.
type BlockChallenge struct {
	Player    *Player
	Act       *ActInfo
	Challenge *ChallengeInfo
	Block     *BlockInfo
}

func (c BlockChallenge) Kind() PhaseKind    { return KindBlockChallenge }
func (c BlockChallenge) Responder() *Player { return c.Player }
func (c BlockChallenge) isPhase()           {}
func (c BlockChallenge) LegalMoves() []Move { return challengeMoves() }

func (c BlockChallenge) Records() Records {
	return Records{Act: c.Act, Challenge: c.Challenge, Block: c.Block}
}

func (c BlockChallenge) Apply(action *Action, _ *Player) (Phase, error) {
	switch action {
	case ChallengePass:
		c.Player.BlockChallengePassed = true
		next, err := c.Player.NextAlive()
		if err != nil {
			return nil, err
		}
		if next == c.Block.Blocker {
			// Block stands.
			return EndTurn{Act: c.Act, Challenge: c.Challenge, Block: c.Block}, nil
		}
		return BlockChallenge{Player: next, Act: c.Act, Challenge: c.Challenge, Block: c.Block}, nil

	case ChallengeCall:
		chl, err := resolveChallenge(ChallengeBlock, c.Block.Blocker, c.Block.Action.Role, c.Player)
		if err != nil {
			return nil, err
		}
		return BlockChallengeResolve{
			Player:         chl.Loser,
			Act:            c.Act,
			Challenge:      c.Challenge,
			Block:          c.Block,
			BlockChallenge: chl,
		}, nil
	}
	return nil, fmt.Errorf("block challenge: %s: %w", action.Name, ErrIllegalMove)
}

// BlockChallengeResolve makes the block-challenge loser lose a card, then
// either lets the block stand or re-applies the blocked action.
type BlockChallengeResolve struct {
	Player         *Player
	Act            *ActInfo
	Challenge      *ChallengeInfo
	Block          *BlockInfo
	BlockChallenge *ChallengeInfo
}

func (c BlockChallengeResolve) Kind() PhaseKind    { return KindBlockChallengeResolve }
func (c BlockChallengeResolve) Responder() *Player { return c.Player }
func (c BlockChallengeResolve) isPhase()           {}
func (c BlockChallengeResolve) LegalMoves() []Move { return loseMoves(c.Player) }

func (c BlockChallengeResolve) Records() Records {
	return Records{Act: c.Act, Challenge: c.Challenge, Block: c.Block, BlockChallenge: c.BlockChallenge}
}

func (c BlockChallengeResolve) Apply(action *Action, _ *Player) (Phase, error) {
	if !legalAction(c, action) {
		return nil, fmt.Errorf("block challenge resolve: %s: %w", action.Name, ErrIllegalMove)
	}
	if err := c.Player.Lose(action.Role); err != nil {
		return nil, err
	}

	end := EndTurn{Act: c.Act, Challenge: c.Challenge, Block: c.Block, BlockChallenge: c.BlockChallenge}

	if c.BlockChallenge.Failed() {
		// The block was genuine; the challenger paid and the block stands.
		return end, nil
	}

	// Block defeated: re-apply the original action's effect.
	act := c.Act
	switch act.Action {
	case ForeignAid:
		act.Actor.Coins += ForeignAidGain
		return end, nil

	case Steal:
		if act.Target.Alive() {
			ResolveSteal(act)
		}
		return end, nil

	case Assassinate:
		if !act.Target.Alive() {
			// Losing the block challenge eliminated the target; the
			// assassination is abandoned.
			return end, nil
		}
		return ActionResolve{
			Player:         act.Target,
			Act:            act,
			Challenge:      c.Challenge,
			Block:          c.Block,
			BlockChallenge: c.BlockChallenge,
		}, nil
	}
	return nil, fmt.Errorf("block challenge resolve: unblockable action %s reached block phase", act.Action.Name)
}

// ---------------------------------------------------------------------------
// Action resolution
// ---------------------------------------------------------------------------

// ActionResolve makes the action's target lose a card. Reached by Coup
// directly and by a surviving Assassinate.
type ActionResolve struct {
	Player         *Player
	Act            *ActInfo
	Challenge      *ChallengeInfo
	Block          *BlockInfo
	BlockChallenge *ChallengeInfo
}

func (a ActionResolve) Kind() PhaseKind    { return KindActionResolve }
func (a ActionResolve) Responder() *Player { return a.Player }
func (a ActionResolve) isPhase()           {}
func (a ActionResolve) LegalMoves() []Move { return loseMoves(a.Player) }

func (a ActionResolve) Records() Records {
	return Records{Act: a.Act, Challenge: a.Challenge, Block: a.Block, BlockChallenge: a.BlockChallenge}
}

func (a ActionResolve) Apply(action *Action, _ *Player) (Phase, error) {
	if !legalAction(a, action) {
		return nil, fmt.Errorf("action resolve: %s: %w", action.Name, ErrIllegalMove)
	}
	if err := a.Player.Lose(action.Role); err != nil {
		return nil, err
	}
	return EndTurn{Act: a.Act, Challenge: a.Challenge, Block: a.Block, BlockChallenge: a.BlockChallenge}, nil
}

// ExchangeResolve returns the first of the two extra exchange cards to the
// deck. The move vocabulary is the lose-card set, but the card goes back to
// the pile rather than being revealed.
type ExchangeResolve struct {
	Player    *Player
	Act       *ActInfo
	Challenge *ChallengeInfo
}

func (e ExchangeResolve) Kind() PhaseKind    { return KindExchangeResolve }
func (e ExchangeResolve) Responder() *Player { return e.Player }
func (e ExchangeResolve) Records() Records   { return Records{Act: e.Act, Challenge: e.Challenge} }
func (e ExchangeResolve) isPhase()           {}
func (e ExchangeResolve) LegalMoves() []Move { return loseMoves(e.Player) }

func (e ExchangeResolve) Apply(action *Action, _ *Player) (Phase, error) {
	if !legalAction(e, action) {
		return nil, fmt.Errorf("exchange resolve: %s: %w", action.Name, ErrIllegalMove)
	}
	if err := e.Player.Putback(action.Role); err != nil {
		return nil, err
	}
	return ExchangeTwoResolve{Player: e.Player, Act: e.Act, Challenge: e.Challenge}, nil
}

// ExchangeTwoResolve returns the second extra card, restoring the hand size.
type ExchangeTwoResolve struct {
	Player    *Player
	Act       *ActInfo
	Challenge *ChallengeInfo
}

func (e ExchangeTwoResolve) Kind() PhaseKind    { return KindExchangeTwoResolve }
func (e ExchangeTwoResolve) Responder() *Player { return e.Player }
func (e ExchangeTwoResolve) Records() Records   { return Records{Act: e.Act, Challenge: e.Challenge} }
func (e ExchangeTwoResolve) isPhase()           {}
func (e ExchangeTwoResolve) LegalMoves() []Move { return loseMoves(e.Player) }

func (e ExchangeTwoResolve) Apply(action *Action, _ *Player) (Phase, error) {
	if !legalAction(e, action) {
		return nil, fmt.Errorf("exchange resolve: %s: %w", action.Name, ErrIllegalMove)
	}
	if err := e.Player.Putback(action.Role); err != nil {
		return nil, err
	}
	return EndTurn{Act: e.Act, Challenge: e.Challenge}, nil
}

// ---------------------------------------------------------------------------
// Terminal markers
// ---------------------------------------------------------------------------

// EndTurn marks the turn complete. It has no responder; the driver resets the
// per-round pass flags, reports eliminations, and rotates to the next Start
// (or GameOver). It carries the full resolution record of the finished turn.
type EndTurn struct {
	Act            *ActInfo
	Challenge      *ChallengeInfo
	Block          *BlockInfo
	BlockChallenge *ChallengeInfo
}

func (e EndTurn) Kind() PhaseKind    { return KindEndTurn }
func (e EndTurn) Responder() *Player { return nil }
func (e EndTurn) isPhase()           {}
func (e EndTurn) LegalMoves() []Move { return nil }

func (e EndTurn) Records() Records {
	return Records{Act: e.Act, Challenge: e.Challenge, Block: e.Block, BlockChallenge: e.BlockChallenge}
}

func (e EndTurn) Apply(action *Action, _ *Player) (Phase, error) {
	return nil, fmt.Errorf("end turn: %s: %w", action.Name, ErrIllegalMove)
}

// GameOver is the terminal phase, reached once at most one player survives.
// It self-loops on Apply.
type GameOver struct{}

func (g GameOver) Kind() PhaseKind    { return KindGameOver }
func (g GameOver) Responder() *Player { return nil }
func (g GameOver) Records() Records   { return Records{} }
func (g GameOver) isPhase()           {}
func (g GameOver) LegalMoves() []Move { return nil }

func (g GameOver) Apply(*Action, *Player) (Phase, error) { return g, nil }

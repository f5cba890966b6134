package agent

import "github.com/ivomac/coup/engine"

// Segment describes one slice of the observation vector.
type Segment struct {
	Type  string // "Counts", "One-hot", or "Indicator"
	Desc  string
	Max   int
	Size  int
	Scope string // "Public" or "Private"
}

// Layout returns the observation layout for a player count and per-role card
// count. All player-indexed segments are viewer-relative: index 0 is the
// viewer, index i the i-th seat after them in fixed ring order (dead seats
// included, so positions are stable for the whole game).
func Layout(numPlayers, maxCardCount int) []Segment {
	return []Segment{
		{Type: "Counts", Desc: "Coins of each player", Max: 12, Size: numPlayers, Scope: "Public"},
		{Type: "Counts", Desc: "Unseen card totals", Max: maxCardCount, Size: engine.NumRoles, Scope: "Private"},
		{Type: "Counts", Desc: "Player's cards by type", Max: maxCardCount, Size: engine.NumRoles, Scope: "Private"},
		{Type: "Counts", Desc: "Card totals per player", Max: 4, Size: numPlayers, Scope: "Public"},
		{Type: "One-hot", Desc: "Action", Max: 1, Size: len(engine.StartActions), Scope: "Public"},
		{Type: "One-hot", Desc: "Actor", Max: 1, Size: numPlayers, Scope: "Public"},
		{Type: "One-hot", Desc: "Action's target", Max: 1, Size: numPlayers, Scope: "Public"},
		{Type: "Indicator", Desc: "Challenge passed", Max: 1, Size: numPlayers, Scope: "Public"},
		{Type: "One-hot", Desc: "Challenger", Max: 1, Size: numPlayers, Scope: "Public"},
		{Type: "One-hot", Desc: "Challenge loser", Max: 1, Size: numPlayers, Scope: "Public"},
		{Type: "One-hot", Desc: "Block action", Max: 1, Size: len(engine.BlockActions), Scope: "Public"},
		{Type: "Indicator", Desc: "Block passed", Max: 1, Size: numPlayers, Scope: "Public"},
		{Type: "One-hot", Desc: "Blocker", Max: 1, Size: numPlayers, Scope: "Public"},
		{Type: "Indicator", Desc: "Block challenge passed", Max: 1, Size: numPlayers, Scope: "Public"},
		{Type: "One-hot", Desc: "Block challenger", Max: 1, Size: numPlayers, Scope: "Public"},
		{Type: "One-hot", Desc: "Block challenge loser", Max: 1, Size: numPlayers, Scope: "Public"},
	}
}

// Dim returns the observation vector length for a player count.
func Dim(numPlayers int) int {
	total := 0
	for _, seg := range Layout(numPlayers, 0) {
		total += seg.Size
	}
	return total
}

// Observe encodes the game from the viewer's seat into a fresh vector of
// length Dim(table seats). Only information the viewer is entitled to is
// written: their own hand, the aggregate of unseen cards, and the public
// record of the turn in flight.
func Observe(t *engine.Table, ph engine.Phase, viewer *engine.Player) []int8 {
	ring := t.Ring(viewer)
	rec := ph.Records()

	out := make([]int8, 0, Dim(len(ring)))

	for _, q := range ring {
		out = append(out, int8(q.Coins))
	}

	unseen := t.Unseen(viewer)
	for _, r := range engine.Roles {
		out = append(out, int8(unseen[r]))
	}

	own := viewer.Cards()
	for _, r := range engine.Roles {
		out = append(out, int8(own[r]))
	}

	for _, q := range ring {
		out = append(out, int8(q.CardCount()))
	}

	out = appendAct(out, ring, rec.Act)
	out = appendChallenge(out, ring, rec.Challenge)
	out = appendBlock(out, ring, rec.Block)
	out = appendChallenge(out, ring, rec.BlockChallenge)

	return out
}

func appendAct(out []int8, ring []*engine.Player, act *engine.ActInfo) []int8 {
	for _, a := range engine.StartActions {
		out = append(out, bit(act != nil && act.Action == a))
	}
	for _, q := range ring {
		out = append(out, bit(act != nil && act.Actor == q))
	}
	for _, q := range ring {
		out = append(out, bit(act != nil && act.Target == q))
	}
	return out
}

func appendChallenge(out []int8, ring []*engine.Player, chl *engine.ChallengeInfo) []int8 {
	for _, q := range ring {
		out = append(out, bit(chl != nil && challengePassed(chl.Kind, q)))
	}
	for _, q := range ring {
		out = append(out, bit(chl != nil && chl.Challenger == q))
	}
	for _, q := range ring {
		out = append(out, bit(chl != nil && chl.Loser == q))
	}
	return out
}

// challengePassed picks the pass flag matching the challenge round's kind.
func challengePassed(kind engine.ChallengeKind, p *engine.Player) bool {
	if kind == engine.ChallengeBlock {
		return p.BlockChallengePassed
	}
	return p.ChallengePassed
}

func appendBlock(out []int8, ring []*engine.Player, blk *engine.BlockInfo) []int8 {
	for _, a := range engine.BlockActions {
		out = append(out, bit(blk != nil && blk.Action == a))
	}
	for _, q := range ring {
		out = append(out, bit(blk != nil && q.BlockPassed))
	}
	for _, q := range ring {
		out = append(out, bit(blk != nil && blk.Blocker == q))
	}
	return out
}

func bit(b bool) int8 {
	if b {
		return 1
	}
	return 0
}

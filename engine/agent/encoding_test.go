package agent

import (
	"testing"

	"github.com/ivomac/coup/engine"
)

func TestDim(t *testing.T) {
	for _, n := range []int{2, 4, 6} {
		want := 12*n + 22
		if got := Dim(n); got != want {
			t.Errorf("Dim(%d): want %d, got %d", n, want, got)
		}
		total := 0
		for _, seg := range Layout(n, 3) {
			total += seg.Size
		}
		if total != want {
			t.Errorf("Layout(%d) sizes sum to %d, want %d", n, total, want)
		}
	}
}

func TestObserveOpening(t *testing.T) {
	tbl, err := engine.NewTable(engine.Rules{NumSeats: 2}, 22)
	if err != nil {
		t.Fatal(err)
	}
	a := tbl.Seat(0)

	obs := Observe(tbl, engine.Start{Player: a}, a)
	if len(obs) != Dim(2) {
		t.Fatalf("observation length: want %d, got %d", Dim(2), len(obs))
	}

	// Coins, viewer first.
	if obs[0] != 2 || obs[1] != 2 {
		t.Errorf("coin counts: got %d, %d", obs[0], obs[1])
	}

	// Unseen cards are the deck plus the opponent's hand.
	unseen := 0
	for i := 2; i < 7; i++ {
		unseen += int(obs[i])
	}
	if unseen != 13 {
		t.Errorf("unseen total: want 13, got %d", unseen)
	}

	// Own hand holds two cards.
	own := 0
	for i := 7; i < 12; i++ {
		own += int(obs[i])
	}
	if own != 2 {
		t.Errorf("own card total: want 2, got %d", own)
	}

	// Card counts per player.
	if obs[12] != 2 || obs[13] != 2 {
		t.Errorf("card counts: got %d, %d", obs[12], obs[13])
	}

	// No action declared yet: the whole record region is zero.
	for i := 14; i < len(obs); i++ {
		if obs[i] != 0 {
			t.Errorf("record region index %d: want 0, got %d", i, obs[i])
		}
	}
}

func TestObserveDeclaredAction(t *testing.T) {
	tbl, err := engine.NewTable(engine.Rules{NumSeats: 2}, 23)
	if err != nil {
		t.Fatal(err)
	}
	a, b := tbl.Seat(0), tbl.Seat(1)

	ph, err := (engine.Start{Player: a}).Apply(engine.Tax, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ph.Kind() != engine.KindChallenge {
		t.Fatalf("phase after tax: got %s", ph.Kind())
	}

	// Observed from seat 1: ring order is [b, a], so the actor sits at
	// relative index 1. With two players the layout offsets are: action
	// one-hot at 14, actor at 21, target at 23.
	obs := Observe(tbl, ph, b)

	taxIdx := -1
	for i, act := range engine.StartActions {
		if act == engine.Tax {
			taxIdx = i
		}
	}
	if taxIdx < 0 {
		t.Fatal("Tax missing from StartActions")
	}
	for i := 0; i < len(engine.StartActions); i++ {
		want := int8(0)
		if i == taxIdx {
			want = 1
		}
		if obs[14+i] != want {
			t.Errorf("action one-hot index %d: want %d, got %d", i, want, obs[14+i])
		}
	}

	if obs[21] != 0 || obs[22] != 1 {
		t.Errorf("actor one-hot: got %d, %d", obs[21], obs[22])
	}
	// Tax is untargeted: the record aims it back at the actor.
	if obs[23] != 0 || obs[24] != 1 {
		t.Errorf("target one-hot: got %d, %d", obs[23], obs[24])
	}
}

func TestObserveChallengeAndBlock(t *testing.T) {
	tbl, err := engine.NewTable(engine.Rules{NumSeats: 3}, 24)
	if err != nil {
		t.Fatal(err)
	}
	a := tbl.Seat(0)

	// Foreign aid blocked by seat 1; seat 2 is being polled for a challenge.
	ph, err := (engine.Start{Player: a}).Apply(engine.ForeignAid, nil)
	if err != nil {
		t.Fatal(err)
	}
	ph, err = ph.Apply(engine.BlockForeignAid, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ph.Kind() != engine.KindBlockChallenge {
		t.Fatalf("phase after block: got %s", ph.Kind())
	}

	// Three-player layout offsets: block one-hot at 38, blocker at 46.
	obs := Observe(tbl, ph, a)
	if len(obs) != Dim(3) {
		t.Fatalf("observation length: want %d, got %d", Dim(3), len(obs))
	}

	blockIdx := -1
	for i, act := range engine.BlockActions {
		if act == engine.BlockForeignAid {
			blockIdx = i
		}
	}
	if obs[38+blockIdx] != 1 {
		t.Errorf("block one-hot bit %d not set", blockIdx)
	}
	// Ring from seat 0 is [0, 1, 2]; the blocker is seat 1.
	if obs[46] != 0 || obs[47] != 1 || obs[48] != 0 {
		t.Errorf("blocker one-hot: got %d, %d, %d", obs[46], obs[47], obs[48])
	}
}

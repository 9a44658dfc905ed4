package game

import "testing"

// --- Invariant helpers ---

// recordingListener captures the score and move sequences a session emits.
type recordingListener struct {
	NopListener
	scores []int
	moves  []int
}

func (r *recordingListener) ScoreChanged(score int) { r.scores = append(r.scores, score) }
func (r *recordingListener) MovesChanged(n int)     { r.moves = append(r.moves, n) }

// --- Conservation ---

func TestInvariant_TileConservation(t *testing.T) {
	tp := NewTestPlay(
		WithBoardSize(8, 8),
		WithGemTypes(5),
		WithMoves(30),
		WithSeed(7),
	)
	for i := 0; i < 25; i++ {
		if tp.Session.GameOver() {
			break
		}
		a, b, ok := FindMove(tp.Board())
		if !ok {
			break
		}
		tp.Swap(a, b)
		if got := tp.Board().TileCount(); got != 64 {
			t.Fatalf("move %d: board holds %d tiles at idle, want 64", i+1, got)
		}
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				if tp.Board().At(row, col) == nil {
					t.Fatalf("move %d: empty cell (%d,%d) at idle", i+1, row, col)
				}
			}
		}
	}
}

func TestInvariant_NoMatchesAtIdle(t *testing.T) {
	tp := NewTestPlay(
		WithBoardSize(8, 8),
		WithGemTypes(5),
		WithMoves(30),
		WithSeed(11),
	)
	for i := 0; i < 25; i++ {
		if tp.Session.GameOver() {
			break
		}
		a, b, ok := FindMove(tp.Board())
		if !ok {
			break
		}
		tp.Swap(a, b)
		if groups := FindMatches(tp.Board()); len(groups) != 0 {
			t.Fatalf("move %d: %d unresolved match group(s) at idle", i+1, len(groups))
		}
	}
}

// --- Score and move monotonicity ---

func TestInvariant_ScoreMonotonicMovesDecreasing(t *testing.T) {
	rec := &recordingListener{}
	tp := NewTestPlay(
		WithBoardSize(8, 8),
		WithGemTypes(5),
		WithMoves(12),
		WithSeed(5),
		WithListener(rec),
	)
	tp.AutoPlay(60)

	prev := 0
	for i, s := range rec.scores {
		if s < prev {
			t.Fatalf("score decreased at notification %d: %d -> %d", i, prev, s)
		}
		prev = s
	}
	prevMoves := 12
	for i, m := range rec.moves {
		if m != prevMoves-1 {
			t.Fatalf("move notification %d skipped: %d -> %d", i, prevMoves, m)
		}
		if m < 0 {
			t.Fatalf("moves went negative: %d", m)
		}
		prevMoves = m
	}
	if tp.Session.MovesRemaining() < 0 {
		t.Fatal("remaining moves must never be negative")
	}
}

// --- Probes are side-effect free ---

func TestInvariant_FindMoveLeavesBoardUntouched(t *testing.T) {
	tp := NewTestPlay(WithBoardSize(8, 8), WithGemTypes(5), WithSeed(3))
	before := BoardReport(tp.Board())
	FindMove(tp.Board())
	if after := BoardReport(tp.Board()); after != before {
		t.Fatalf("probing for a move mutated the board:\n%s\nvs\n%s", before, after)
	}
}

func TestInvariant_RevertedSwapLeavesBoardIdentical(t *testing.T) {
	tp := NewTestPlay(WithLayout(
		"bcdcb",
		"cdedc",
		"debed",
		"efcfe",
		"aabac",
	))
	before := BoardReport(tp.Board())
	if res := tp.Swap(Pos{0, 0}, Pos{0, 1}); res != SwapAccepted {
		t.Fatalf("expected accepted (reverted) swap, got %s", res)
	}
	if after := BoardReport(tp.Board()); after != before {
		t.Fatalf("reverted swap left residue:\n%s\nvs\n%s", before, after)
	}
}

// --- Autoplayer agrees with the engine ---

func TestInvariant_FindMoveProducesRealMoves(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		tp := NewTestPlay(WithBoardSize(8, 8), WithGemTypes(5), WithSeed(seed))
		a, b, ok := FindMove(tp.Board())
		if !ok {
			continue // dead boards are legal, just rare
		}
		res := tp.Swap(a, b)
		if res != SwapAccepted {
			t.Fatalf("seed %d: suggested move was rejected: %s", seed, res)
		}
		if got := len(tp.Log.Filter("swap", "reverted")); got != 0 {
			t.Fatalf("seed %d: suggested move reverted, the probe should have ruled it out", seed)
		}
	}
}

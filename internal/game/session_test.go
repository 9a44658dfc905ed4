package game

import (
	"math/rand"
	"testing"
)

// matchFree5x5 has no matches and no swap constraints beyond what each test
// overlays on the bottom rows.
var matchFree5x5 = []string{
	"bcdcb",
	"cdedc",
	"debed",
	"efcfe",
	"aabac",
}

func TestNewSession_ValidatesConfig(t *testing.T) {
	bad := []Config{
		{Rows: 0, Cols: 5, GemTypes: 4, StartingMoves: 10},
		{Rows: 5, Cols: -1, GemTypes: 4, StartingMoves: 10},
		{Rows: 5, Cols: 5, GemTypes: 2, StartingMoves: 10},
		{Rows: 5, Cols: 5, GemTypes: 4, StartingMoves: 0},
	}
	for i, cfg := range bad {
		if _, err := NewSession(cfg); err == nil {
			t.Errorf("config %d should be rejected: %+v", i, cfg)
		}
	}

	s, err := NewSession(Config{
		Rows: 6, Cols: 6, GemTypes: 4, StartingMoves: 15,
		Rng: rand.New(rand.NewSource(3)), // #nosec G404 -- test fixture
	})
	if err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if s.CurrentPhase() != PhaseIdle {
		t.Fatalf("new session should be idle, got %s", s.CurrentPhase())
	}
	if s.Score() != 0 || s.MovesRemaining() != 15 || s.GameOver() {
		t.Fatalf("fresh session state wrong: score=%d moves=%d over=%v", s.Score(), s.MovesRemaining(), s.GameOver())
	}
	if s.Board().TileCount() != 36 {
		t.Fatalf("board not fully seeded: %d tiles", s.Board().TileCount())
	}
}

func TestRequestSwap_RejectsNotAdjacent(t *testing.T) {
	tp := NewTestPlay(WithLayout(matchFree5x5...))
	cases := []struct {
		name string
		a, b Pos
	}{
		{"diagonal", Pos{0, 0}, Pos{1, 1}},
		{"same cell", Pos{2, 2}, Pos{2, 2}},
		{"distance 2", Pos{0, 0}, Pos{0, 2}},
		{"off board", Pos{0, 0}, Pos{0, -1}},
		{"both off board", Pos{-1, -1}, Pos{9, 9}},
	}
	for _, c := range cases {
		if res := tp.Swap(c.a, c.b); res != SwapRejectedNotAdjacent {
			t.Errorf("%s: expected not-adjacent rejection, got %s", c.name, res)
		}
	}
	if tp.Session.MovesRemaining() != 20 || tp.Session.Score() != 0 {
		t.Fatal("rejected swaps must not touch moves or score")
	}
}

func TestRequestSwap_RejectsWhileResolving(t *testing.T) {
	tp := NewTestPlay(WithLayout(matchFree5x5...), WithStepped())
	// (4,2)<->(4,3) turns the bottom row into "aaabc".
	if res := tp.Swap(Pos{4, 2}, Pos{4, 3}); res != SwapAccepted {
		t.Fatalf("matching swap should be accepted, got %s", res)
	}
	if tp.Session.CurrentPhase() != PhaseMatching {
		t.Fatalf("stepped session should pause in matching, got %s", tp.Session.CurrentPhase())
	}
	if res := tp.Swap(Pos{0, 0}, Pos{0, 1}); res != SwapRejectedBusy {
		t.Fatalf("mid-resolution swap should be busy-rejected, got %s", res)
	}
	tp.Session.Resolve()
	if tp.Session.CurrentPhase() != PhaseIdle {
		t.Fatal("session should settle back to idle")
	}
}

func TestRequestSwap_NoMatchReverts(t *testing.T) {
	tp := NewTestPlay(WithLayout(matchFree5x5...))
	a := tp.Board().At(0, 0)
	n := tp.Board().At(0, 1)
	res := tp.Swap(Pos{0, 0}, Pos{0, 1})
	if res != SwapAccepted {
		t.Fatalf("a reverted swap is still accepted, got %s", res)
	}
	if tp.Board().At(0, 0) != a || tp.Board().At(0, 1) != n {
		t.Fatal("board should be restored after a no-match swap")
	}
	if tp.Session.MovesRemaining() != 20 {
		t.Fatal("a reverted swap must not cost a move")
	}
	if tp.Session.Score() != 0 {
		t.Fatal("a reverted swap must not score")
	}
	if got := len(tp.Log.Filter("swap", "reverted")); got != 1 {
		t.Fatalf("expected 1 reverted log entry, got %d", got)
	}
	if tp.Reporter.Totals().Reverted != 1 {
		t.Fatalf("reporter should count the reversion, got %d", tp.Reporter.Totals().Reverted)
	}
}

func TestRequestSwap_MatchOfThreeScoresAndConsumesMove(t *testing.T) {
	tp := NewTestPlay(WithLayout(matchFree5x5...), WithStepped())
	if res := tp.Swap(Pos{4, 2}, Pos{4, 3}); res != SwapAccepted {
		t.Fatalf("expected accepted swap, got %s", res)
	}
	if tp.Session.MovesRemaining() != 19 {
		t.Fatalf("matching swap costs exactly one move, remaining=%d", tp.Session.MovesRemaining())
	}
	tp.Session.Step()
	if tp.Session.Score() != 30 {
		t.Fatalf("a plain 3-match scores 30, got %d", tp.Session.Score())
	}
	if tp.Session.CurrentPhase() != PhaseFilling {
		t.Fatalf("after the match pass the session fills, got %s", tp.Session.CurrentPhase())
	}
	tp.Session.Resolve()
	if tp.Session.Score() < 30 {
		t.Fatal("cascades may only add score")
	}
	if tp.Session.MovesRemaining() != 19 {
		t.Fatal("cascades must not cost extra moves")
	}
	if tp.Board().TileCount() != 25 {
		t.Fatalf("board should refill to 25 tiles, got %d", tp.Board().TileCount())
	}
}

func TestRequestSwap_FourRunSpawnsBomb(t *testing.T) {
	tp := NewTestPlay(WithLayout(
		"bcdcb",
		"cdedc",
		"debed",
		"efafe",
		"aabac",
	), WithStepped())
	// Dropping the 'a' from (3,2) completes "aaaa" across cols 0-3.
	if res := tp.Swap(Pos{3, 2}, Pos{4, 2}); res != SwapAccepted {
		t.Fatalf("expected accepted swap, got %s", res)
	}
	tp.Session.Step()
	if tp.Session.Score() != 4*10+20 {
		t.Fatalf("4-match with bomb spawn scores 60, got %d", tp.Session.Score())
	}
	spawned := tp.Board().At(4, 2)
	if spawned == nil || spawned.Special != SpecialBomb || spawned.Type != 0 {
		t.Fatalf("bomb of the run's type should sit at the middle cell, got %v", spawned)
	}
	if got := len(tp.Log.Filter("board", "special_spawned")); got != 1 {
		t.Fatalf("expected 1 special_spawned entry, got %d", got)
	}
}

func TestRequestSwap_FiveRunSpawnsPlus(t *testing.T) {
	tp := NewTestPlay(WithLayout(
		"bcdcb",
		"cdedc",
		"debed",
		"efafe",
		"aabaa",
	), WithStepped())
	if res := tp.Swap(Pos{3, 2}, Pos{4, 2}); res != SwapAccepted {
		t.Fatalf("expected accepted swap, got %s", res)
	}
	tp.Session.Step()
	if tp.Session.Score() != 5*10+30 {
		t.Fatalf("5-match with plus spawn scores 80, got %d", tp.Session.Score())
	}
	spawned := tp.Board().At(4, 2)
	if spawned == nil || spawned.Special != SpecialPlus {
		t.Fatalf("plus should sit at the middle cell, got %v", spawned)
	}
}

func TestRequestSwap_UnionSpawnsBombAtPivot(t *testing.T) {
	tp := NewTestPlay(WithLayout(
		"cdedc",
		"deaed",
		"babab",
		"cfafc",
		"deaed",
	), WithStepped())
	// Pulling the 'a' from (1,2) down to (2,2) completes both the row-2
	// 3-run and the column-2 3-run through the same cell.
	if res := tp.Swap(Pos{1, 2}, Pos{2, 2}); res != SwapAccepted {
		t.Fatalf("expected accepted swap, got %s", res)
	}
	tp.Session.Step()
	if tp.Session.Score() != 5*10+20 {
		t.Fatalf("union of 5 with bomb spawn scores 70, got %d", tp.Session.Score())
	}
	spawned := tp.Board().At(2, 2)
	if spawned == nil || spawned.Special != SpecialBomb || spawned.Type != 0 {
		t.Fatalf("bomb should spawn at the pivot, got %v", spawned)
	}
}

func TestRequestSwap_TwoPlusClearsBoard(t *testing.T) {
	tp := NewTestPlay(WithLayout(
		"bcdcb",
		"cd12c",
		"debed",
		"efcfe",
		"bcdcb",
	), WithStepped())
	if res := tp.Swap(Pos{1, 2}, Pos{1, 3}); res != SwapAccepted {
		t.Fatalf("expected accepted swap, got %s", res)
	}
	if tp.Session.Score() != 25*50 {
		t.Fatalf("full clear of 25 tiles scores 1250, got %d", tp.Session.Score())
	}
	if tp.Board().TileCount() != 0 {
		t.Fatalf("every tile should be gone before refill, %d remain", tp.Board().TileCount())
	}
	if tp.Session.MovesRemaining() != 19 {
		t.Fatal("the clear costs one move")
	}
	tp.Session.Resolve()
	if tp.Board().TileCount() != 25 {
		t.Fatalf("board should refill completely, got %d", tp.Board().TileCount())
	}
}

func TestRequestSwap_BombPlusCross(t *testing.T) {
	tp := NewTestPlay(WithLayout(
		"ababa",
		"aB3ba",
		"babab",
		"ababa",
		"babab",
	), WithStepped())
	if res := tp.Swap(Pos{1, 1}, Pos{1, 2}); res != SwapAccepted {
		t.Fatalf("expected accepted swap, got %s", res)
	}
	// Post-swap the bomb sits at (1,2) and the plus at (1,1): a radius-1
	// square over rows 0-2 cols 1-3 plus row 1 and column 1 in full.
	if tp.Session.Score() != 13*20 {
		t.Fatalf("bomb+plus swap should clear 13 tiles at 20 each, got %d", tp.Session.Score())
	}
	if tp.Session.MovesRemaining() != 19 {
		t.Fatal("a special combination costs one move")
	}
}

func TestRequestSwap_BombBombWideBlast(t *testing.T) {
	tp := NewTestPlay(WithLayout(
		"ababa",
		"babab",
		"aBCba",
		"babab",
		"ababa",
	), WithStepped())
	if res := tp.Swap(Pos{2, 1}, Pos{2, 2}); res != SwapAccepted {
		t.Fatalf("expected accepted swap, got %s", res)
	}
	// Radius-2 blasts from (2,1) and (2,2) blanket the whole 5x5.
	if tp.Session.Score() != 25*20 {
		t.Fatalf("double-bomb swap should clear all 25 tiles at 20 each, got %d", tp.Session.Score())
	}
	if tp.Board().TileCount() != 0 {
		t.Fatalf("blast should empty the board, %d tiles remain", tp.Board().TileCount())
	}
}

func TestRequestSwap_MatchWithBombMemberChains(t *testing.T) {
	tp := NewTestPlay(WithLayout(
		"bcdcb",
		"cdedc",
		"debed",
		"efafe",
		"aAbac",
	), WithStepped())
	// Swap completes "aAa" on the bottom row; the bomb member detonates
	// instead of spawning anything.
	if res := tp.Swap(Pos{4, 2}, Pos{4, 3}); res != SwapAccepted {
		t.Fatalf("expected accepted swap, got %s", res)
	}
	tp.Session.Step()
	// 3 matched at 10 plus the bomb's extra coverage at the chained rate.
	// The blast from (4,1) covers rows 3-4, cols 0-2; the matched tiles are
	// already gone, so only (3,0),(3,1),(3,2) chain.
	if got := tp.Session.Score(); got != 3*10+3*10 {
		t.Fatalf("match plus chained blast should score 60, got %d", got)
	}
}

func TestRequestSwap_SpawnedBombInsideBlastChains(t *testing.T) {
	tp := NewTestPlay(WithLayout(
		"cdedce",
		"bBacdc",
		"aabacd",
		"dcfefc",
		"cdedcd",
		"dcfefc",
	), WithStepped())
	// One swap completes two runs at once: row 1 becomes "bbb" with the
	// bomb as a member, and row 2 becomes "aaaa", which spawns a fresh bomb
	// at its middle cell (2,2). That cell sits inside the triggered bomb's
	// radius, so the spawn must chain in the same pass.
	if res := tp.Swap(Pos{1, 2}, Pos{2, 2}); res != SwapAccepted {
		t.Fatalf("expected accepted swap, got %s", res)
	}
	tp.Session.Step()
	// 7 matched at 10, one bomb spawn at 20, then the chain: the (1,1)
	// blast takes (0,0)-(0,2) and the new bomb at (2,2); its blast takes
	// (1,3) and (3,1)-(3,3). 8 chained tiles at 10.
	if got := tp.Session.Score(); got != 7*10+20+8*10 {
		t.Fatalf("spawn-into-blast pass should score 170, got %d", got)
	}
	if tp.Board().At(2, 2) != nil {
		t.Fatal("the spawned bomb should be consumed by the chain")
	}
	for _, p := range []Pos{{1, 3}, {3, 1}, {3, 2}, {3, 3}} {
		if tp.Board().At(p.Row, p.Col) != nil {
			t.Errorf("the spawned bomb's blast should have cleared %s", p)
		}
	}
	if tp.Board().At(3, 0) == nil || tp.Board().At(0, 3) == nil {
		t.Error("tiles outside both blasts must survive")
	}
	removals := tp.Log.Filter("board", "removed")
	if len(removals) != 2 || removals[0].NumVal != 7 || removals[1].NumVal != 8 {
		t.Fatalf("expected removal batches of 7 then 8, got %v", removals)
	}
}

func TestSession_GameOverAfterLastMove(t *testing.T) {
	tp := NewTestPlay(WithLayout(matchFree5x5...), WithMoves(1))
	if res := tp.Swap(Pos{4, 2}, Pos{4, 3}); res != SwapAccepted {
		t.Fatalf("expected accepted swap, got %s", res)
	}
	if !tp.Session.GameOver() {
		t.Fatal("session should end when the last move resolves")
	}
	if tp.Session.MovesRemaining() != 0 {
		t.Fatalf("moves should be exactly 0 at game over, got %d", tp.Session.MovesRemaining())
	}
	if got := len(tp.Log.Filter("session", "game_over")); got != 1 {
		t.Fatalf("expected 1 game_over entry, got %d", got)
	}
	if res := tp.Swap(Pos{0, 0}, Pos{0, 1}); res != SwapRejectedBusy {
		t.Fatalf("swaps after game over are busy-rejected, got %s", res)
	}
}

func TestSession_RevertedSwapDoesNotEndGame(t *testing.T) {
	tp := NewTestPlay(WithLayout(matchFree5x5...), WithMoves(1))
	if res := tp.Swap(Pos{0, 0}, Pos{0, 1}); res != SwapAccepted {
		t.Fatalf("expected accepted (reverted) swap, got %s", res)
	}
	if tp.Session.GameOver() {
		t.Fatal("a free reverted swap must not end the game")
	}
	if tp.Session.MovesRemaining() != 1 {
		t.Fatal("the last move should still be available")
	}
}

func TestStep_NoOpWhileIdle(t *testing.T) {
	tp := NewTestPlay(WithLayout(matchFree5x5...), WithStepped())
	if got := tp.Session.Step(); got != PhaseIdle {
		t.Fatalf("stepping an idle session should stay idle, got %s", got)
	}
}

func TestStepped_PhaseCycle(t *testing.T) {
	tp := NewTestPlay(WithLayout(matchFree5x5...), WithStepped())
	if res := tp.Swap(Pos{4, 2}, Pos{4, 3}); res != SwapAccepted {
		t.Fatalf("expected accepted swap, got %s", res)
	}
	phases := []Phase{tp.Session.CurrentPhase()}
	for i := 0; i < 50 && tp.Session.CurrentPhase() != PhaseIdle; i++ {
		phases = append(phases, tp.Session.Step())
	}
	if phases[0] != PhaseMatching {
		t.Fatalf("resolution starts in matching, got %s", phases[0])
	}
	if phases[len(phases)-1] != PhaseIdle {
		t.Fatalf("resolution should reach idle, trace: %v", phases)
	}
	for i := 0; i+1 < len(phases); i++ {
		if phases[i] == PhaseMatching && phases[i+1] != PhaseFilling {
			t.Fatalf("matching must hand over to filling, trace: %v", phases)
		}
	}
}

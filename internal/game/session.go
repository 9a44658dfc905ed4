package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Phase is the session's position in the resolution cycle.
type Phase uint8

const (
	PhaseIdle     Phase = iota // accepting exactly one swap request
	PhaseSwapping              // swap committed, combination checks running
	PhaseMatching              // removing groups, spawning specials, chaining
	PhaseFilling               // gravity + refill
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSwapping:
		return "swapping"
	case PhaseMatching:
		return "matching"
	case PhaseFilling:
		return "filling"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// SwapResult is the synchronous answer to a swap request.
type SwapResult uint8

const (
	// SwapAccepted: the request was processed. A no-match swap that got
	// reverted is still accepted — reversion is a normal outcome, and the
	// listener sees it as SwapReverted.
	SwapAccepted SwapResult = iota
	// SwapRejectedNotAdjacent: coordinates off the board or not at
	// Manhattan distance 1. No state changed.
	SwapRejectedNotAdjacent
	// SwapRejectedBusy: the session is mid-resolution or out of moves.
	// The request is dropped, never queued.
	SwapRejectedBusy
)

func (r SwapResult) String() string {
	switch r {
	case SwapAccepted:
		return "accepted"
	case SwapRejectedNotAdjacent:
		return "rejected:not_adjacent"
	case SwapRejectedBusy:
		return "rejected:busy"
	default:
		return fmt.Sprintf("result(%d)", uint8(r))
	}
}

// Scoring rates. Explosion removals are priced by how they were triggered:
// specials played by direct swap reward more than chains uncovered inside
// a match resolution.
const (
	pointsPerMatchedTile  = 10
	pointsPerBombSpawn    = 20
	pointsPerPlusSpawn    = 30
	pointsPerChainedTile  = 10 // specials uncovered during match resolution
	pointsPerExplodedTile = 20 // specials triggered by direct swap
	pointsPerClearedTile  = 50 // two-plus full-board clear
)

// Config sets up a Session. Rows, Cols and StartingMoves must be positive
// and GemTypes at least 3 (fewer makes match generation degenerate).
type Config struct {
	Rows          int
	Cols          int
	GemTypes      int
	StartingMoves int
	// Rng drives gem type generation. Nil means time-seeded.
	Rng *rand.Rand
	// Listener receives engine events. Nil means no notifications.
	Listener Listener
	// Stepped defers match/fill resolution to explicit Step calls so a
	// presenter can animate between logical steps. When false (the
	// default) RequestSwap resolves the whole cascade before returning.
	Stepped bool
}

// Session owns a Board and the score/move counters, and orchestrates the
// turn sequence: swap → validate → resolve matches → explosions → gravity
// → refill → cascade loop. Single-threaded by contract: callers must not
// issue a new swap before the session returns to idle, and in stepped mode
// must call Step until it does.
type Session struct {
	board    *Board
	listener Listener
	stepped  bool

	phase Phase
	score int
	moves int
	over  bool
}

// NewSession validates the configuration, seeds the board and returns an
// idle session.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("board size %dx%d: dimensions must be positive", cfg.Rows, cfg.Cols)
	}
	if cfg.GemTypes < 3 {
		return nil, fmt.Errorf("gem types %d: need at least 3", cfg.GemTypes)
	}
	if cfg.StartingMoves <= 0 {
		return nil, fmt.Errorf("starting moves %d: must be positive", cfg.StartingMoves)
	}
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- gameplay only
	}
	l := cfg.Listener
	if l == nil {
		l = NopListener{}
	}
	return &Session{
		board:    NewBoard(cfg.Rows, cfg.Cols, cfg.GemTypes, rng),
		listener: l,
		stepped:  cfg.Stepped,
		phase:    PhaseIdle,
		moves:    cfg.StartingMoves,
	}, nil
}

// newSessionWithBoard wraps a pre-built board; used by the test harness.
func newSessionWithBoard(b *Board, startingMoves int, l Listener, stepped bool) *Session {
	if l == nil {
		l = NopListener{}
	}
	return &Session{board: b, listener: l, stepped: stepped, phase: PhaseIdle, moves: startingMoves}
}

// Board exposes the grid for read-only inspection (rendering, reports).
// Mutation stays inside the session.
func (s *Session) Board() *Board { return s.board }

// Score returns the accumulated score. Monotonic non-negative.
func (s *Session) Score() int { return s.score }

// MovesRemaining returns the remaining move budget.
func (s *Session) MovesRemaining() int { return s.moves }

// GameOver reports whether the session has consumed its last move.
func (s *Session) GameOver() bool { return s.over }

// CurrentPhase returns the session's phase.
func (s *Session) CurrentPhase() Phase { return s.phase }

// RequestSwap swaps the tiles at two adjacent coordinates. Requests while
// the session is not idle (or already over) are dropped with a busy
// rejection; off-board or non-adjacent coordinates are rejected with no
// state change. A committed swap that produces neither a match nor a
// special combination is swapped back and costs no move.
func (s *Session) RequestSwap(a, b Pos) SwapResult {
	if s.over || s.phase != PhaseIdle {
		return SwapRejectedBusy
	}
	ta := s.board.At(a.Row, a.Col)
	tb := s.board.At(b.Row, b.Col)
	if ta == nil || tb == nil || !s.board.AreAdjacent(ta, tb) {
		return SwapRejectedNotAdjacent
	}

	s.phase = PhaseSwapping
	s.swapAndNotify(ta, tb)

	// Special combination checks, in priority order.
	switch {
	case ta.Special == SpecialPlus && tb.Special == SpecialPlus:
		s.fullBoardClear()
	case (ta.Special == SpecialBomb && tb.Special == SpecialPlus) ||
		(ta.Special == SpecialPlus && tb.Special == SpecialBomb):
		s.triggerSwapSpecials(ta, tb, DefaultBombRadius)
	case ta.Special == SpecialBomb && tb.Special == SpecialBomb:
		s.triggerSwapSpecials(ta, tb, SwapBombRadius)
	default:
		if len(FindMatches(s.board)) == 0 {
			// No match: revert, no move consumed, no score change.
			s.board.Swap(ta, tb)
			s.phase = PhaseIdle
			s.listener.SwapReverted(ta, tb)
			return SwapAccepted
		}
		s.consumeMove()
		s.phase = PhaseMatching
	}

	if !s.stepped {
		s.Resolve()
	}
	return SwapAccepted
}

// Step advances the resolution pipeline by one phase: one matching pass or
// one gravity+refill pass. It is a no-op while idle. Stepped-mode callers
// invoke it after their in-flight animations settle, which keeps visual
// and logical state within one step of each other.
func (s *Session) Step() Phase {
	switch s.phase {
	case PhaseMatching:
		s.stepMatching()
	case PhaseFilling:
		s.stepFilling()
	}
	return s.phase
}

// Resolve runs Step until the session is idle again.
func (s *Session) Resolve() {
	for s.phase != PhaseIdle {
		s.Step()
	}
}

func (s *Session) swapAndNotify(ta, tb *Tile) {
	ar, ac := ta.Row, ta.Col
	br, bc := tb.Row, tb.Col
	s.board.Swap(ta, tb)
	s.listener.TileMoved(ta, ar, ac, ta.Row, ta.Col)
	s.listener.TileMoved(tb, br, bc, tb.Row, tb.Col)
}

// fullBoardClear handles the two-plus swap: every tile removed at the
// premium rate, no routing through the generic engine.
func (s *Session) fullBoardClear() {
	all := s.board.Tiles()
	s.board.RemoveAll(all)
	s.listener.TilesRemoved(all)
	s.addScore(len(all) * pointsPerClearedTile)
	s.consumeMove()
	s.phase = PhaseFilling
}

// triggerSwapSpecials detonates both swapped specials through the generic
// engine at the given bomb radius.
func (s *Session) triggerSwapSpecials(ta, tb *Tile, bombRadius int) {
	acts := make([]Activation, 0, 2)
	for _, t := range []*Tile{ta, tb} {
		acts = append(acts, Activation{Row: t.Row, Col: t.Col, Kind: t.Special, Radius: bombRadius})
	}
	removed := Explode(s.board, acts)
	s.board.RemoveAll(removed)
	s.listener.TilesRemoved(removed)
	s.addScore(len(removed) * pointsPerExplodedTile)
	s.consumeMove()
	s.phase = PhaseFilling
}

// stepMatching runs one full match resolution pass: classify every group,
// commit removals, spawn specials, then chain any uncovered specials
// through the explosion engine. A spawned special landing inside a
// simultaneously-triggered blast or line chains immediately too, since the
// engine reads the board after the spawns commit.
func (s *Session) stepMatching() {
	groups := FindMatches(s.board)
	if len(groups) == 0 {
		s.phase = PhaseFilling
		return
	}
	res := ResolveGroups(groups)

	// Commit removals, skipping any tile that no longer occupies its cell.
	// A stale group member is a programming error; dropping it preserves
	// playability over strict failure.
	live := res.Removed[:0]
	for _, t := range res.Removed {
		if s.board.At(t.Row, t.Col) == t {
			live = append(live, t)
		}
	}
	s.board.RemoveAll(live)
	s.listener.TilesRemoved(live)

	spawned := make([]*Tile, 0, len(res.Spawns))
	for _, sp := range res.Spawns {
		if t := s.board.CreateAt(sp.Row, sp.Col, sp.Type, sp.Special); t != nil {
			spawned = append(spawned, t)
		}
	}
	if len(spawned) > 0 {
		s.listener.TilesSpawned(spawned)
	}

	points := len(live)*pointsPerMatchedTile +
		res.BombsSpawned()*pointsPerBombSpawn +
		res.PlusesSpawned()*pointsPerPlusSpawn

	if len(res.Triggered) > 0 {
		chained := Explode(s.board, res.Triggered)
		s.board.RemoveAll(chained)
		if len(chained) > 0 {
			s.listener.TilesRemoved(chained)
		}
		points += len(chained) * pointsPerChainedTile
	}

	s.addScore(points)
	s.phase = PhaseFilling
}

// stepFilling settles gravity, refills, and either loops back to matching
// (cascade) or returns to idle.
func (s *Session) stepFilling() {
	for _, mv := range s.board.ApplyGravity() {
		s.listener.TileMoved(mv.Tile, mv.FromRow, mv.FromCol, mv.ToRow, mv.ToCol)
	}
	if created := s.board.FillEmpty(); len(created) > 0 {
		s.listener.TilesSpawned(created)
	}
	if len(FindMatches(s.board)) > 0 {
		s.phase = PhaseMatching
		return
	}
	s.phase = PhaseIdle
	if s.moves <= 0 {
		s.over = true
		s.listener.GameOver(s.score)
	}
}

func (s *Session) consumeMove() {
	s.moves--
	s.listener.MovesChanged(s.moves)
}

func (s *Session) addScore(points int) {
	if points <= 0 {
		return
	}
	s.score += points
	s.listener.ScoreChanged(s.score)
}

package game

import (
	"fmt"
	"math/rand"
)

// TestPlay is a deterministic headless harness used by tests and the
// batch report CLI. It wraps a Session with a structured PlayLog, a
// PlayReporter, and literal board layouts for exact setups.
type TestPlay struct {
	Session  *Session
	Log      *PlayLog
	Reporter *PlayReporter

	move int // 1-based swap request counter
}

// playConfig is the option target; options are applied in declaration
// order during construction.
type playConfig struct {
	rows     int
	cols     int
	gemTypes int
	moves    int
	seed     int64
	verbose  bool
	stepped  bool
	layout   []string
	extra    []Listener
}

// PlayOption configures a TestPlay during construction.
type PlayOption func(*playConfig)

// WithBoardSize sets the grid dimensions.
func WithBoardSize(rows, cols int) PlayOption {
	return func(c *playConfig) {
		c.rows = rows
		c.cols = cols
	}
}

// WithGemTypes sets the number of gem types in play.
func WithGemTypes(n int) PlayOption {
	return func(c *playConfig) { c.gemTypes = n }
}

// WithMoves sets the starting move budget.
func WithMoves(n int) PlayOption {
	return func(c *playConfig) { c.moves = n }
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) PlayOption {
	return func(c *playConfig) { c.seed = seed }
}

// WithVerbose enables per-tile verbose logging.
func WithVerbose(v bool) PlayOption {
	return func(c *playConfig) { c.verbose = v }
}

// WithStepped defers resolution to explicit Step calls, as a presenter
// would drive it.
func WithStepped() PlayOption {
	return func(c *playConfig) { c.stepped = true }
}

// WithListener attaches an extra listener alongside the log and reporter.
func WithListener(l Listener) PlayOption {
	return func(c *playConfig) { c.extra = append(c.extra, l) }
}

// WithLayout replaces random seeding with a literal board. One string per
// row, one rune per cell: 'a'..'z' plain gem of that type, 'A'..'Z' bomb,
// '1'..'9' plus, '.' empty. Row lengths must match and override
// WithBoardSize. Panics on malformed layouts — harness misuse is a test
// bug, not a runtime condition.
func WithLayout(rows ...string) PlayOption {
	return func(c *playConfig) { c.layout = rows }
}

// NewTestPlay builds the harness. Defaults: 7x7, 4 gem types, 20 moves,
// seed 1.
func NewTestPlay(opts ...PlayOption) *TestPlay {
	cfg := playConfig{rows: 7, cols: 7, gemTypes: 4, moves: 20, seed: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	rng := rand.New(rand.NewSource(cfg.seed)) // #nosec G404 -- deterministic test harness
	var board *Board
	if len(cfg.layout) > 0 {
		board = boardFromLayout(cfg.layout, cfg.gemTypes, rng)
	} else {
		board = NewBoard(cfg.rows, cfg.cols, cfg.gemTypes, rng)
	}

	tp := &TestPlay{
		Log:      NewPlayLog(cfg.verbose),
		Reporter: NewPlayReporter(),
	}
	listeners := append([]Listener{&logListener{tp}, tp.Reporter}, cfg.extra...)
	tp.Session = newSessionWithBoard(board, cfg.moves, MultiListener(listeners...), cfg.stepped)
	return tp
}

// boardFromLayout parses the WithLayout strings into an exact board.
func boardFromLayout(rows []string, gemTypes int, rng *rand.Rand) *Board {
	if len(rows) == 0 {
		panic("layout: no rows")
	}
	cols := len(rows[0])
	b := NewEmptyBoard(len(rows), cols, gemTypes, rng)
	for r, line := range rows {
		if len(line) != cols {
			panic(fmt.Sprintf("layout: row %d has %d cells, want %d", r, len(line), cols))
		}
		for c, ch := range line {
			switch {
			case ch == '.':
				// empty cell
			case ch >= 'a' && ch <= 'z':
				b.CreateAt(r, c, int(ch-'a'), SpecialNone)
			case ch >= 'A' && ch <= 'Z':
				b.CreateAt(r, c, int(ch-'A'), SpecialBomb)
			case ch >= '1' && ch <= '9':
				b.CreateAt(r, c, int(ch-'1'), SpecialPlus)
			default:
				panic(fmt.Sprintf("layout: bad cell %q at (%d,%d)", ch, r, c))
			}
		}
	}
	return b
}

// Board returns the session's grid.
func (tp *TestPlay) Board() *Board { return tp.Session.Board() }

// Swap issues one swap request, bracketed by the reporter and logged.
func (tp *TestPlay) Swap(a, b Pos) SwapResult {
	tp.move++
	tp.Reporter.BeginMove(tp.move, tp.Session.Score())
	res := tp.Session.RequestSwap(a, b)
	tp.Reporter.EndMove(res, tp.Session.Score())
	switch {
	case res != SwapAccepted:
		tp.Log.Add(tp.move, "swap", "rejected", fmt.Sprintf("%s↔%s %s", a, b, res), 0)
	case tp.Log.HasEntry("swap", "reverted", fmt.Sprintf("move=%d", tp.move)):
		// already logged by the listener
	default:
		tp.Log.Add(tp.move, "swap", "accepted", fmt.Sprintf("%s↔%s", a, b), 0)
	}
	return res
}

// AutoPlay issues up to n autoplayer-chosen moves, stopping early when the
// game ends or no valid move exists. Returns how many swaps were issued.
func (tp *TestPlay) AutoPlay(n int) int {
	played := 0
	for i := 0; i < n; i++ {
		if tp.Session.GameOver() {
			break
		}
		a, b, ok := FindMove(tp.Board())
		if !ok {
			tp.Log.Add(tp.move, "session", "no_moves", "no valid swap available", 0)
			break
		}
		tp.Swap(a, b)
		played++
	}
	return played
}

// Summary returns the play log's closing block for the session.
func (tp *TestPlay) Summary() string {
	return tp.Log.Summary(tp.Session)
}

// logListener translates engine events into PlayLog entries.
type logListener struct {
	tp *TestPlay
}

func (l *logListener) TilesRemoved(tiles []*Tile) {
	l.tp.Log.Add(l.tp.move, "board", "removed", fmt.Sprintf("%d tiles", len(tiles)), float64(len(tiles)))
}

func (l *logListener) TilesSpawned(tiles []*Tile) {
	specials := 0
	for _, t := range tiles {
		if t.IsSpecial() {
			specials++
			l.tp.Log.Add(l.tp.move, "board", "special_spawned",
				fmt.Sprintf("%s %s at (%d,%d)", t.Special, string(rune('a'+t.Type)), t.Row, t.Col), 0)
		}
	}
	l.tp.Log.Add(l.tp.move, "board", "spawned", fmt.Sprintf("%d tiles (%d special)", len(tiles), specials), float64(len(tiles)))
}

func (l *logListener) TileMoved(t *Tile, fr, fc, tr, tc int) {
	l.tp.Log.AddVerbose(l.tp.move, "board", "moved",
		fmt.Sprintf("(%d,%d) → (%d,%d)", fr, fc, tr, tc), 0)
}

func (l *logListener) SwapReverted(a, b *Tile) {
	l.tp.Log.Add(l.tp.move, "swap", "reverted",
		fmt.Sprintf("move=%d (%d,%d)↔(%d,%d)", l.tp.move, a.Row, a.Col, b.Row, b.Col), 0)
}

func (l *logListener) ScoreChanged(score int) {
	l.tp.Log.Add(l.tp.move, "score", "changed", fmt.Sprintf("total=%d", score), float64(score))
}

func (l *logListener) MovesChanged(n int) {
	l.tp.Log.Add(l.tp.move, "session", "move_consumed", fmt.Sprintf("remaining=%d", n), float64(n))
}

func (l *logListener) GameOver(final int) {
	l.tp.Log.Add(l.tp.move, "session", "game_over", fmt.Sprintf("final_score=%d", final), float64(final))
}

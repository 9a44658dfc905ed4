package game

import "math/rand"

// CellSize is the world-space edge length of one board cell, in pixels.
// The engine never draws anything; it only provides the mapping so the
// presentation layer and the gravity code agree on which way is "up"
// (lower row index).
const CellSize = 64

// seedRedrawLimit bounds the per-cell redraw loop during initial seeding.
// After this many redraws the last drawn type is accepted even if it
// completes a run; rare pre-existing matches are tolerated rather than
// risking an unbounded loop on small gem counts.
const seedRedrawLimit = 10

// Board is the rows×cols gem grid. Cells hold nil only transiently between
// a removal and the refill inside one resolution step. The board is owned
// by a Session and mutated exclusively through its own methods.
type Board struct {
	rows     int
	cols     int
	gemTypes int
	cells    []*Tile // row-major: index = row*cols + col
	rng      *rand.Rand
}

// TileMove records one tile relocation produced by gravity.
type TileMove struct {
	Tile    *Tile
	FromRow int
	FromCol int
	ToRow   int
	ToCol   int
}

// NewBoard creates a fully seeded board. Every cell receives a random-type
// plain tile; a drawn type that would complete a run of 3 with the
// already-placed left/up neighbours is redrawn up to seedRedrawLimit times.
func NewBoard(rows, cols, gemTypes int, rng *rand.Rand) *Board {
	b := &Board{
		rows:     rows,
		cols:     cols,
		gemTypes: gemTypes,
		cells:    make([]*Tile, rows*cols),
		rng:      rng,
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			tt := b.rng.Intn(gemTypes)
			for try := 0; try < seedRedrawLimit && b.seedCompletesRun(row, col, tt); try++ {
				tt = b.rng.Intn(gemTypes)
			}
			b.CreateAt(row, col, tt, SpecialNone)
		}
	}
	return b
}

// NewEmptyBoard creates a board with every cell empty. Used by the test
// harness to build literal layouts.
func NewEmptyBoard(rows, cols, gemTypes int, rng *rand.Rand) *Board {
	return &Board{
		rows:     rows,
		cols:     cols,
		gemTypes: gemTypes,
		cells:    make([]*Tile, rows*cols),
		rng:      rng,
	}
}

// Rows returns the board height in cells.
func (b *Board) Rows() int { return b.rows }

// Cols returns the board width in cells.
func (b *Board) Cols() int { return b.cols }

// GemTypes returns the number of distinct gem types in play.
func (b *Board) GemTypes() int { return b.gemTypes }

// seedCompletesRun reports whether placing type tt at (row, col) during
// seeding would complete a horizontal or vertical run of 3. Only the left
// and up neighbours can exist at this point (row-major fill order).
func (b *Board) seedCompletesRun(row, col, tt int) bool {
	l1 := b.At(row, col-1)
	l2 := b.At(row, col-2)
	if l1 != nil && l2 != nil && l1.Type == tt && l2.Type == tt {
		return true
	}
	u1 := b.At(row-1, col)
	u2 := b.At(row-2, col)
	if u1 != nil && u2 != nil && u1.Type == tt && u2.Type == tt {
		return true
	}
	return false
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// At returns the tile at (row, col), or nil for an empty cell or any
// out-of-bounds coordinate. Never an error — matching and explosion code
// lean on this for boundary clipping.
func (b *Board) At(row, col int) *Tile {
	if !b.inBounds(row, col) {
		return nil
	}
	return b.cells[row*b.cols+col]
}

// CreateAt constructs and places a tile, overwriting whatever occupies the
// cell. Used for seeding, refill and post-match special spawns. Returns
// nil if the coordinate is out of bounds.
func (b *Board) CreateAt(row, col, gemType int, special Special) *Tile {
	if !b.inBounds(row, col) {
		return nil
	}
	t := &Tile{Type: gemType, Special: special, Row: row, Col: col}
	b.cells[row*b.cols+col] = t
	return t
}

// AreAdjacent reports whether two tiles occupy orthogonally neighbouring
// cells: Manhattan distance exactly 1.
func (b *Board) AreAdjacent(a, t *Tile) bool {
	if a == nil || t == nil {
		return false
	}
	dr := a.Row - t.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - t.Col
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Swap exchanges the grid positions of two tiles currently on the board.
// Adjacency is not checked here; that is the session's invariant.
func (b *Board) Swap(a, t *Tile) {
	if a == nil || t == nil {
		return
	}
	if b.At(a.Row, a.Col) != a || b.At(t.Row, t.Col) != t {
		return
	}
	b.cells[a.Row*b.cols+a.Col] = t
	b.cells[t.Row*b.cols+t.Col] = a
	a.Row, t.Row = t.Row, a.Row
	a.Col, t.Col = t.Col, a.Col
}

// RemoveAll clears the given tiles' cells. A tile that no longer occupies
// its recorded cell is skipped; removed tiles are invalid for further
// board operations.
func (b *Board) RemoveAll(tiles []*Tile) {
	for _, t := range tiles {
		if t == nil {
			continue
		}
		if b.At(t.Row, t.Col) == t {
			b.cells[t.Row*b.cols+t.Col] = nil
		}
	}
}

// ApplyGravity compacts every column independently: scanning bottom-up,
// each empty cell pulls down the nearest tile above it. One write-pointer
// sweep per column settles the whole column. Returns the moves performed,
// in column order then fall order; an empty slice means nothing moved.
func (b *Board) ApplyGravity() []TileMove {
	var moves []TileMove
	for col := 0; col < b.cols; col++ {
		write := b.rows - 1
		for row := b.rows - 1; row >= 0; row-- {
			t := b.cells[row*b.cols+col]
			if t == nil {
				continue
			}
			if row != write {
				b.cells[write*b.cols+col] = t
				b.cells[row*b.cols+col] = nil
				moves = append(moves, TileMove{Tile: t, FromRow: row, FromCol: col, ToRow: write, ToCol: col})
				t.Row = write
			}
			write--
		}
	}
	return moves
}

// FillEmpty creates a random plain tile in every remaining empty cell,
// column-major top-to-bottom, and returns the new tiles so the caller can
// animate them dropping in from above the visible area.
func (b *Board) FillEmpty() []*Tile {
	var created []*Tile
	for col := 0; col < b.cols; col++ {
		for row := 0; row < b.rows; row++ {
			if b.cells[row*b.cols+col] != nil {
				continue
			}
			t := b.CreateAt(row, col, b.rng.Intn(b.gemTypes), SpecialNone)
			created = append(created, t)
		}
	}
	return created
}

// TileCount returns the number of occupied cells.
func (b *Board) TileCount() int {
	n := 0
	for _, t := range b.cells {
		if t != nil {
			n++
		}
	}
	return n
}

// Tiles returns every tile currently on the board, row-major.
func (b *Board) Tiles() []*Tile {
	out := make([]*Tile, 0, len(b.cells))
	for _, t := range b.cells {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// WorldPosition maps a cell coordinate to the world-space centre of that
// cell. Row 0 is the top of the board; falling tiles move toward larger Y.
func WorldPosition(row, col int) (x, y float64) {
	return float64(col)*CellSize + CellSize/2, float64(row)*CellSize + CellSize/2
}

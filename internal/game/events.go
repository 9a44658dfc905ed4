package game

// Listener receives fire-and-forget notifications from a Session. The
// engine never waits on a listener and consumes no return values; logical
// state is correct regardless of what the presentation layer does with
// these. A real-time presenter sequences its animations between the
// session's phase steps (see Session.Step).
type Listener interface {
	// TilesRemoved is invoked once per committed removal batch (a match
	// resolution, an explosion chain, or a full-board clear).
	TilesRemoved(tiles []*Tile)
	// TilesSpawned is invoked for refill tiles and spawned specials. The
	// tiles carry their final positions.
	TilesSpawned(tiles []*Tile)
	// TileMoved is invoked for each swap and gravity relocation.
	TileMoved(t *Tile, fromRow, fromCol, toRow, toCol int)
	// SwapReverted signals that a committed swap produced no match and was
	// swapped back. The tiles are back at their original cells.
	SwapReverted(a, b *Tile)
	// ScoreChanged reports the new running total after each scoring batch.
	ScoreChanged(score int)
	// MovesChanged reports the remaining move count after a consumed move.
	MovesChanged(remaining int)
	// GameOver fires once, when the session runs out of moves.
	GameOver(finalScore int)
}

// NopListener is a do-nothing Listener for embedding, so collaborators
// only implement the callbacks they care about.
type NopListener struct{}

func (NopListener) TilesRemoved([]*Tile)                {}
func (NopListener) TilesSpawned([]*Tile)                {}
func (NopListener) TileMoved(*Tile, int, int, int, int) {}
func (NopListener) SwapReverted(*Tile, *Tile)           {}
func (NopListener) ScoreChanged(int)                    {}
func (NopListener) MovesChanged(int)                    {}
func (NopListener) GameOver(int)                        {}

// multiListener fans events out to several listeners in order.
type multiListener []Listener

// MultiListener combines listeners; nil entries are dropped.
func MultiListener(ls ...Listener) Listener {
	var out multiListener
	for _, l := range ls {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

func (m multiListener) TilesRemoved(tiles []*Tile) {
	for _, l := range m {
		l.TilesRemoved(tiles)
	}
}

func (m multiListener) TilesSpawned(tiles []*Tile) {
	for _, l := range m {
		l.TilesSpawned(tiles)
	}
}

func (m multiListener) TileMoved(t *Tile, fr, fc, tr, tc int) {
	for _, l := range m {
		l.TileMoved(t, fr, fc, tr, tc)
	}
}

func (m multiListener) SwapReverted(a, b *Tile) {
	for _, l := range m {
		l.SwapReverted(a, b)
	}
}

func (m multiListener) ScoreChanged(score int) {
	for _, l := range m {
		l.ScoreChanged(score)
	}
}

func (m multiListener) MovesChanged(n int) {
	for _, l := range m {
		l.MovesChanged(n)
	}
}

func (m multiListener) GameOver(final int) {
	for _, l := range m {
		l.GameOver(final)
	}
}

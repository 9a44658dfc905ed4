package game

const (
	// DefaultBombRadius is the blast radius of a bomb triggered by a match
	// or a chain reaction.
	DefaultBombRadius = 1
	// SwapBombRadius is the enlarged radius used when two bombs are swapped
	// into each other directly.
	SwapBombRadius = 2
)

// Activation is one pending special-tile trigger: a board cell, the kind
// of special that sat there, and for bombs the blast radius. Activations
// reference coordinates rather than tiles because the triggering special
// is usually already off the board by the time the engine runs.
type Activation struct {
	Row    int
	Col    int
	Kind   Special
	Radius int
}

// Explode expands a worklist of activations into the final removed-tile
// set. Bombs clear the clipped square neighborhood of their radius; pluses
// clear their entire row and column. Any bomb or plus discovered inside a
// blast or line is enqueued as a fresh activation (chain reaction) instead
// of being swallowed as a plain tile. Queues are FIFO per kind with bombs
// drained before pluses; the order only affects incidental visual
// sequencing, never the final set.
//
// The removed tiles are still on the board when Explode returns; the
// caller commits the removal (and prices it — swap-triggered and
// match-chained activations score at different rates).
func Explode(b *Board, initial []Activation) []*Tile {
	var bombs, pluses []Activation
	activated := make(map[Pos]bool)
	enqueue := func(a Activation) {
		p := Pos{a.Row, a.Col}
		if activated[p] {
			return
		}
		activated[p] = true
		if a.Kind == SpecialBomb {
			bombs = append(bombs, a)
		} else {
			pluses = append(pluses, a)
		}
	}
	for _, a := range initial {
		enqueue(a)
	}

	removedSet := make(map[*Tile]bool)
	var removed []*Tile
	hit := func(t *Tile) {
		if t == nil || removedSet[t] {
			return
		}
		removedSet[t] = true
		removed = append(removed, t)
		if t.IsSpecial() {
			enqueue(Activation{Row: t.Row, Col: t.Col, Kind: t.Special, Radius: DefaultBombRadius})
		}
	}

	for len(bombs) > 0 || len(pluses) > 0 {
		var a Activation
		if len(bombs) > 0 {
			a, bombs = bombs[0], bombs[1:]
		} else {
			a, pluses = pluses[0], pluses[1:]
		}
		switch a.Kind {
		case SpecialBomb:
			r := a.Radius
			if r <= 0 {
				r = DefaultBombRadius
			}
			for row := a.Row - r; row <= a.Row+r; row++ {
				for col := a.Col - r; col <= a.Col+r; col++ {
					hit(b.At(row, col)) // At clips out-of-bounds to nil
				}
			}
		case SpecialPlus:
			for col := 0; col < b.Cols(); col++ {
				hit(b.At(a.Row, col))
			}
			for row := 0; row < b.Rows(); row++ {
				hit(b.At(row, a.Col))
			}
		}
	}
	return removed
}

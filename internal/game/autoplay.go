package game

// FindMove scans the board row-major for the first swap a player could
// legally make: an adjacent pair that either forms a match after swapping
// or is one of the special-tile combinations (two pluses, bomb+plus, two
// bombs). Each candidate is probed by swapping, checking, and swapping
// back, which leaves the board bit-identical. Returns false when the board
// is dead.
func FindMove(b *Board) (Pos, Pos, bool) {
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			t := b.At(row, col)
			if t == nil {
				continue
			}
			for _, n := range []*Tile{b.At(row, col+1), b.At(row+1, col)} {
				if n == nil {
					continue
				}
				if isSpecialCombo(t, n) || swapMakesMatch(b, t, n) {
					return Pos{t.Row, t.Col}, Pos{n.Row, n.Col}, true
				}
			}
		}
	}
	return Pos{}, Pos{}, false
}

// isSpecialCombo reports whether swapping the pair triggers directly
// without needing a match.
func isSpecialCombo(a, b *Tile) bool {
	return a.IsSpecial() && b.IsSpecial()
}

// swapMakesMatch probes a swap for a resulting match, then reverts it.
func swapMakesMatch(b *Board, t, n *Tile) bool {
	b.Swap(t, n)
	found := len(FindMatches(b)) > 0
	b.Swap(t, n)
	return found
}

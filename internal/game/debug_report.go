package game

import (
	"fmt"
	"strings"
)

// BoardReport renders the grid as an ASCII block: one glyph per tile
// ('a'.. plain, 'A'.. bomb, '1'.. plus, '.' empty), with column and row
// indices for orientation. Used by the play log summary and the in-game
// clipboard copy.
func BoardReport(b *Board) string {
	var sb strings.Builder
	sb.WriteString("    ")
	for col := 0; col < b.Cols(); col++ {
		fmt.Fprintf(&sb, "%d", col%10)
	}
	sb.WriteByte('\n')
	for row := 0; row < b.Rows(); row++ {
		fmt.Fprintf(&sb, "%3d ", row)
		for col := 0; col < b.Cols(); col++ {
			t := b.At(row, col)
			if t == nil {
				sb.WriteByte('.')
			} else {
				sb.WriteRune(t.Glyph())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SessionReport is the full debug dump: session counters, the board, and a
// short legend. The windowed app copies this to the clipboard on request.
func SessionReport(s *Session) string {
	var sb strings.Builder
	sb.WriteString("--- Gem Rush debug report ---\n")
	fmt.Fprintf(&sb, "board=%dx%d gems=%d\n", s.Board().Rows(), s.Board().Cols(), s.Board().GemTypes())
	fmt.Fprintf(&sb, "score=%d moves_remaining=%d phase=%s game_over=%v\n",
		s.Score(), s.MovesRemaining(), s.CurrentPhase(), s.GameOver())
	fmt.Fprintf(&sb, "tiles=%d\n\n", s.Board().TileCount())
	sb.WriteString(BoardReport(s.Board()))
	sb.WriteString("\nlegend: a-z plain gem, A-Z bomb, 1-9 plus, . empty\n")
	return sb.String()
}

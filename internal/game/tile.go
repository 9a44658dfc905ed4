package game

import "fmt"

// Special identifies the power-up kind carried by a tile, if any.
type Special uint8

const (
	SpecialNone Special = iota // plain gem
	SpecialBomb                // clears a square neighborhood when triggered
	SpecialPlus                // clears its full row and column when triggered
	specialCount               // sentinel
)

// String returns a short label for logs and reports.
func (s Special) String() string {
	switch s {
	case SpecialNone:
		return "none"
	case SpecialBomb:
		return "bomb"
	case SpecialPlus:
		return "plus"
	default:
		return fmt.Sprintf("special(%d)", uint8(s))
	}
}

// Tile is one gem on the board. Identity is its type + special kind; the
// row/col fields are mutable position state kept in sync by Board whenever
// the tile moves (swap, gravity). Tiles are created through Board.CreateAt
// and become invalid for board operations once removed.
type Tile struct {
	Type    int // gem type in [0, gemTypes)
	Special Special
	Row     int
	Col     int
}

// IsSpecial returns true for bomb and plus tiles.
func (t *Tile) IsSpecial() bool {
	return t.Special != SpecialNone
}

// Glyph returns a one-rune label for debug reports and layouts:
// 'a'.. for plain gems, 'A'.. for bombs, '1'.. for pluses.
func (t *Tile) Glyph() rune {
	switch t.Special {
	case SpecialBomb:
		return rune('A' + t.Type)
	case SpecialPlus:
		return rune('1' + t.Type)
	default:
		return rune('a' + t.Type)
	}
}

// Pos is a board coordinate. Row 0 is the top row; gravity pulls toward
// higher row indices.
type Pos struct {
	Row int
	Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

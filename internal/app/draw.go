package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Gem-Rush/internal/game"
)

// gemColors is the render palette, one entry per gem type.
var gemColors = []color.RGBA{
	{R: 214, G: 64, B: 64, A: 255},  // red
	{R: 64, G: 160, B: 214, A: 255}, // blue
	{R: 80, G: 190, B: 90, A: 255},  // green
	{R: 230, G: 190, B: 60, A: 255}, // yellow
	{R: 180, G: 90, B: 210, A: 255}, // purple
	{R: 235, G: 140, B: 60, A: 255}, // orange
	{R: 70, G: 205, B: 190, A: 255}, // teal
	{R: 225, G: 110, B: 160, A: 255}, // pink
}

func gemColor(gemType int) color.RGBA {
	return gemColors[gemType%len(gemColors)]
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 14, B: 22, A: 255})

	ox := float32(borderWidth)
	oy := float32(borderWidth + hudHeight)
	b := a.session.Board()
	bw := float32(b.Cols() * game.CellSize)
	bh := float32(b.Rows() * game.CellSize)

	// Board background and cell grid.
	vector.FillRect(screen, ox, oy, bw, bh, color.RGBA{R: 28, G: 26, B: 38, A: 255}, false)
	gridCol := color.RGBA{R: 42, G: 40, B: 56, A: 255}
	for col := 0; col <= b.Cols(); col++ {
		x := ox + float32(col*game.CellSize)
		vector.StrokeLine(screen, x, oy, x, oy+bh, 1.0, gridCol, false)
	}
	for row := 0; row <= b.Rows(); row++ {
		y := oy + float32(row*game.CellSize)
		vector.StrokeLine(screen, ox, y, ox+bw, y, 1.0, gridCol, false)
	}

	// Selection highlight.
	if a.selected != nil {
		sx := ox + float32(a.selected.Col*game.CellSize)
		sy := oy + float32(a.selected.Row*game.CellSize)
		vector.StrokeRect(screen, sx+2, sy+2, game.CellSize-4, game.CellSize-4, 3.0,
			color.RGBA{R: 255, G: 240, B: 120, A: 230}, false)
	}

	// Settled tiles (tiles with a live anim are drawn by the anim pass).
	for _, t := range b.Tiles() {
		if a.hidden[t] {
			continue
		}
		x, y := game.WorldPosition(t.Row, t.Col)
		a.drawGem(screen, t, ox+float32(x), oy+float32(y), 1.0, 1.0)
	}

	// Animation pass.
	for i := range a.anims {
		an := &a.anims[i]
		p := an.progress()
		switch an.kind {
		case animMove:
			x := an.fromX + (an.toX-an.fromX)*p
			y := an.fromY + (an.toY-an.fromY)*p
			a.drawGem(screen, an.tile, ox+float32(x), oy+float32(y), 1.0, 1.0)
		case animRemove:
			a.drawGem(screen, an.tile, ox+float32(an.toX), oy+float32(an.toY), 1.0+0.4*p, 1.0-p)
		case animSpawn:
			x := an.fromX + (an.toX-an.fromX)*p
			y := an.fromY + (an.toY-an.fromY)*p
			if y >= an.toY-float64(3*game.CellSize) {
				a.drawGem(screen, an.tile, ox+float32(x), oy+float32(y), 0.6+0.4*p, 0.4+0.6*p)
			}
		}
	}

	// Board frame.
	frameCol := color.RGBA{R: 90, G: 80, B: 120, A: 255}
	vector.StrokeRect(screen, ox-1, oy-1, bw+2, bh+2, 2.0, frameCol, false)

	a.drawHUD(screen)

	if a.session.GameOver() {
		a.drawGameOver(screen, ox, oy, bw, bh)
	}
}

// drawGem renders one tile centred at (cx, cy), with a scale and alpha
// used by the removal/spawn animations.
func (a *App) drawGem(screen *ebiten.Image, t *game.Tile, cx, cy float32, scale, alpha float64) {
	if t == nil || alpha <= 0 {
		return
	}
	c := gemColor(t.Type)
	c.A = uint8(255 * alpha)
	half := float32(scale) * (game.CellSize/2 - 6)

	vector.FillRect(screen, cx-half, cy-half, half*2, half*2, c, false)
	// Top-left highlight, bottom-right shade.
	hi := color.RGBA{R: 255, G: 255, B: 255, A: uint8(70 * alpha)}
	sh := color.RGBA{A: uint8(90 * alpha)}
	vector.StrokeLine(screen, cx-half, cy-half, cx+half, cy-half, 1.5, hi, false)
	vector.StrokeLine(screen, cx-half, cy-half, cx-half, cy+half, 1.5, hi, false)
	vector.StrokeLine(screen, cx-half, cy+half, cx+half, cy+half, 1.5, sh, false)
	vector.StrokeLine(screen, cx+half, cy-half, cx+half, cy+half, 1.5, sh, false)

	switch t.Special {
	case game.SpecialBomb:
		ring := color.RGBA{R: 255, G: 255, B: 255, A: uint8(180 * alpha)}
		core := color.RGBA{R: 20, G: 18, B: 24, A: uint8(230 * alpha)}
		vector.FillCircle(screen, cx, cy, half*0.62, ring, false)
		vector.FillCircle(screen, cx, cy, half*0.52, core, false)
	case game.SpecialPlus:
		bar := color.RGBA{R: 255, G: 255, B: 255, A: uint8(210 * alpha)}
		w := half * 0.35
		vector.FillRect(screen, cx-half*0.8, cy-w/2, half*1.6, w, bar, false)
		vector.FillRect(screen, cx-w/2, cy-half*0.8, w, half*1.6, bar, false)
	}
}

// drawHUD renders score/move counters into the half-scale buffer and
// blits it at 2x, so the text stays crisp.
func (a *App) drawHUD(screen *ebiten.Image) {
	a.hudBuf.Clear()
	face := basicfont.Face7x13

	scoreStr := fmt.Sprintf("SCORE %d", a.session.Score())
	movesStr := fmt.Sprintf("MOVES %d", a.session.MovesRemaining())
	text.Draw(a.hudBuf, scoreStr, face, borderWidth/2, 18, color.RGBA{R: 240, G: 235, B: 210, A: 255})
	mw := len(movesStr) * 7
	text.Draw(a.hudBuf, movesStr, face, a.width/2-borderWidth/2-mw, 18, color.RGBA{R: 200, G: 220, B: 245, A: 255})

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(2, 2)
	opts.GeoM.Translate(0, borderWidth/2)
	screen.DrawImage(a.hudBuf, opts)

	hint := "click two adjacent gems to swap   R=restart  C=copy report  Q=quit"
	if a.statusMsg != "" && a.statusTimeLeft() {
		hint = a.statusMsg
	}
	ebitenutil.DebugPrintAt(screen, hint, borderWidth, a.height-18)
}

func (a *App) drawGameOver(screen *ebiten.Image, ox, oy, bw, bh float32) {
	vector.FillRect(screen, ox, oy, bw, bh, color.RGBA{A: 160}, false)
	msg := fmt.Sprintf("GAME OVER — final score %d", a.session.Score())
	sub := "press R for a new game"
	face := basicfont.Face7x13
	mx := int(ox) + int(bw)/2 - len(msg)*7/2
	my := int(oy) + int(bh)/2
	text.Draw(screen, msg, face, mx, my, color.RGBA{R: 255, G: 230, B: 160, A: 255})
	text.Draw(screen, sub, face, int(ox)+int(bw)/2-len(sub)*7/2, my+20, color.RGBA{R: 220, G: 220, B: 220, A: 255})
}

// Package app is the windowed presentation layer: rendering, input and
// animation pacing around the engine in internal/game. The engine never
// waits on it; the app advances the session one phase at a time and lets
// its own animations settle in between, so the picture on screen is never
// more than one logical step behind the board.
package app

import (
	"math/rand"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Gem-Rush/internal/audio"
	"github.com/Garsondee/Gem-Rush/internal/game"
)

// Default session shape for the windowed game.
const (
	boardRows     = 8
	boardCols     = 8
	gemTypes      = 6
	startingMoves = 30
)

// borderWidth is the pixel gap between the window edge and the board.
const borderWidth = 24

// hudHeight is the pixel strip above the board for score/move counters.
const hudHeight = 56

// Animation lengths in frames (60 TPS).
const (
	swapFrames   = 8
	fallFrames   = 10
	removeFrames = 12
	spawnFrames  = 10
)

type animKind uint8

const (
	animMove animKind = iota
	animRemove
	animSpawn
)

// anim is one in-flight visual transition, in world-space pixels. frame
// starts negative when the anim is chained behind an earlier one for the
// same tile.
type anim struct {
	kind         animKind
	tile         *game.Tile
	fromX, fromY float64
	toX, toY     float64
	frame        int
	total        int
}

// progress returns the clamped 0..1 animation position.
func (an *anim) progress() float64 {
	if an.frame <= 0 {
		return 0
	}
	if an.frame >= an.total {
		return 1
	}
	return float64(an.frame) / float64(an.total)
}

// App implements ebiten.Game and game.Listener. It owns the session and a
// sound player; the session owns the board.
type App struct {
	session *game.Session
	sound   *audio.Player
	rng     *rand.Rand

	width  int
	height int

	selected    *game.Pos
	prevMouse   bool
	prevKeys    map[ebiten.Key]bool
	anims       []anim
	hidden      map[*game.Tile]bool // tiles drawn by an anim, not at their cell
	batchInMove int                 // removal batches seen since the last swap
	statusMsg   string
	statusUntil time.Time

	hudBuf *ebiten.Image
}

// New builds the app and its first session.
func New() *App {
	a := &App{
		sound:    audio.NewPlayer(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- gameplay only
		prevKeys: make(map[ebiten.Key]bool),
		hidden:   make(map[*game.Tile]bool),
	}
	a.width = borderWidth*2 + boardCols*game.CellSize
	a.height = borderWidth*2 + hudHeight + boardRows*game.CellSize
	a.hudBuf = ebiten.NewImage(a.width/2, hudHeight/2)
	if err := a.sound.Init(); err != nil {
		// No audio device is not fatal; cues become no-ops.
		a.flash("audio unavailable: " + err.Error())
	}
	a.startSession()
	return a
}

func (a *App) startSession() {
	s, err := game.NewSession(game.Config{
		Rows:          boardRows,
		Cols:          boardCols,
		GemTypes:      gemTypes,
		StartingMoves: startingMoves,
		Rng:           a.rng,
		Listener:      a,
		Stepped:       true,
	})
	if err != nil {
		// Static configuration above; an error here is a programming bug.
		panic(err)
	}
	a.session = s
	a.selected = nil
	a.anims = a.anims[:0]
	a.hidden = make(map[*game.Tile]bool)
}

// Layout implements ebiten.Game.
func (a *App) Layout(_, _ int) (int, int) {
	return a.width, a.height
}

// Update implements ebiten.Game: input, animation advance, and session
// stepping once the in-flight visuals have settled.
func (a *App) Update() error {
	if err := a.handleInput(); err != nil {
		return err
	}
	a.advanceAnims()
	if len(a.anims) == 0 && a.session.CurrentPhase() != game.PhaseIdle {
		a.session.Step()
	}
	return nil
}

func (a *App) advanceAnims() {
	kept := a.anims[:0]
	for i := range a.anims {
		an := a.anims[i]
		an.frame++
		if an.frame < an.total {
			kept = append(kept, an)
		}
	}
	a.anims = kept

	// A tile is drawn by its anim, not at its cell, while any move/spawn
	// anim for it is live. Removed tiles are already off the board.
	for t := range a.hidden {
		delete(a.hidden, t)
	}
	for i := range a.anims {
		an := &a.anims[i]
		if an.kind != animRemove && an.tile != nil {
			a.hidden[an.tile] = true
		}
	}
}

// queueAnim appends an anim, delaying it behind any anim already queued
// for the same tile so chained transitions (swap then revert, fall then
// fade) play in order.
func (a *App) queueAnim(an anim) {
	if an.tile != nil {
		for i := range a.anims {
			prev := &a.anims[i]
			if prev.tile == an.tile {
				if remaining := prev.total - prev.frame; remaining > -an.frame {
					an.frame = -remaining
				}
			}
		}
		if an.kind != animRemove {
			a.hidden[an.tile] = true
		}
	}
	a.anims = append(a.anims, an)
}

// handleInput processes keys (edge-triggered) and board clicks.
func (a *App) handleInput() error {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !a.prevKeys[k]
	}

	if pressed(ebiten.KeyQ) || pressed(ebiten.KeyEscape) {
		a.prevKeys = currentKeys
		a.sound.Close()
		return ebiten.Termination
	}
	if pressed(ebiten.KeyR) {
		a.startSession()
		a.flash("new game")
	}
	if pressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(game.SessionReport(a.session)); err != nil {
			a.flash("clipboard copy failed: " + err.Error())
		} else {
			a.flash("debug report copied")
		}
	}
	a.prevKeys = currentKeys

	// Left mouse click: select a cell, or swap with an adjacent selection.
	mousePressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if mousePressed && !a.prevMouse {
		mx, my := ebiten.CursorPosition()
		if p, ok := a.cellAt(mx, my); ok {
			a.handleCellClick(p)
		}
	}
	a.prevMouse = mousePressed
	return nil
}

func (a *App) handleCellClick(p game.Pos) {
	if a.session.GameOver() {
		return
	}
	if a.selected == nil {
		sel := p
		a.selected = &sel
		return
	}
	prev := *a.selected
	a.selected = nil
	if prev == p {
		return // deselect
	}
	switch a.session.RequestSwap(prev, p) {
	case game.SwapAccepted:
		a.batchInMove = 0
		a.sound.Play(audio.CueSwap)
	case game.SwapRejectedNotAdjacent:
		// Treat a far click as a fresh selection, the usual match-3 feel.
		sel := p
		a.selected = &sel
	case game.SwapRejectedBusy:
		// Dropped; resolution still running.
	}
}

// cellAt maps a screen pixel to a board coordinate.
func (a *App) cellAt(mx, my int) (game.Pos, bool) {
	x := mx - borderWidth
	y := my - borderWidth - hudHeight
	if x < 0 || y < 0 {
		return game.Pos{}, false
	}
	p := game.Pos{Row: y / game.CellSize, Col: x / game.CellSize}
	if p.Row >= a.session.Board().Rows() || p.Col >= a.session.Board().Cols() {
		return game.Pos{}, false
	}
	return p, true
}

func (a *App) flash(msg string) {
	a.statusMsg = msg
	a.statusUntil = time.Now().Add(3 * time.Second)
}

func (a *App) statusTimeLeft() bool {
	return time.Now().Before(a.statusUntil)
}

// --- game.Listener ---

// TileMoved animates swaps and gravity falls.
func (a *App) TileMoved(t *game.Tile, fromRow, fromCol, toRow, toCol int) {
	fx, fy := game.WorldPosition(fromRow, fromCol)
	tx, ty := game.WorldPosition(toRow, toCol)
	total := swapFrames
	if fromCol == toCol && toRow > fromRow {
		total = fallFrames
	}
	a.queueAnim(anim{kind: animMove, tile: t, fromX: fx, fromY: fy, toX: tx, toY: ty, total: total})
}

// TilesRemoved fades out a removal batch and picks its cue.
func (a *App) TilesRemoved(tiles []*game.Tile) {
	special := false
	for _, t := range tiles {
		if t.IsSpecial() {
			special = true
		}
		x, y := game.WorldPosition(t.Row, t.Col)
		a.queueAnim(anim{kind: animRemove, tile: t, fromX: x, fromY: y, toX: x, toY: y, total: removeFrames})
	}
	a.batchInMove++
	switch {
	case special:
		a.sound.Play(audio.CueExplosion)
	case a.batchInMove > 1:
		a.sound.Play(audio.CueCascade)
	default:
		a.sound.Play(audio.CueMatch)
	}
}

// TilesSpawned drops refill tiles in from above the board.
func (a *App) TilesSpawned(tiles []*game.Tile) {
	for _, t := range tiles {
		x, y := game.WorldPosition(t.Row, t.Col)
		a.queueAnim(anim{kind: animSpawn, tile: t, fromX: x, fromY: y - 3*game.CellSize, toX: x, toY: y, total: spawnFrames})
	}
}

// SwapReverted queues the swap-back animation (the engine reverts the
// board silently) and plays the rejection buzz.
func (a *App) SwapReverted(t1, t2 *game.Tile) {
	// The tiles are back at their original cells; each animates home from
	// the other's cell, chained behind the forward swap anim.
	x1, y1 := game.WorldPosition(t1.Row, t1.Col)
	x2, y2 := game.WorldPosition(t2.Row, t2.Col)
	a.queueAnim(anim{kind: animMove, tile: t1, fromX: x2, fromY: y2, toX: x1, toY: y1, total: swapFrames})
	a.queueAnim(anim{kind: animMove, tile: t2, fromX: x1, fromY: y1, toX: x2, toY: y2, total: swapFrames})
	a.sound.Play(audio.CueRevert)
}

// ScoreChanged is drawn from session state every frame; nothing to do.
func (a *App) ScoreChanged(int) {}

// MovesChanged is drawn from session state every frame; nothing to do.
func (a *App) MovesChanged(int) {}

// GameOver plays the closing jingle.
func (a *App) GameOver(int) {
	a.sound.Play(audio.CueGameOver)
}

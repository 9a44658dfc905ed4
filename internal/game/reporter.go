package game

import (
	"fmt"
	"strings"
)

// MoveReport captures what one swap request did to the session.
type MoveReport struct {
	Move       int
	Result     SwapResult
	Reverted   bool
	ScoreDelta int
	// TilesRemoved counts every tile cleared during the move, cascades and
	// chains included.
	TilesRemoved int
	// RemovalBatches is the number of committed removal waves; a value
	// above one means the move cascaded or chained specials.
	RemovalBatches  int
	SpecialsSpawned int
}

// PlayReporter aggregates per-move statistics over a session. It listens
// for engine events between BeginMove/EndMove brackets set by the caller
// (the harness and the headless report drive these).
type PlayReporter struct {
	NopListener
	history []MoveReport

	active     bool
	current    MoveReport
	startScore int
}

// NewPlayReporter creates an empty reporter.
func NewPlayReporter() *PlayReporter {
	return &PlayReporter{}
}

// BeginMove opens a collection bracket before a swap request.
func (r *PlayReporter) BeginMove(moveIndex, score int) {
	r.active = true
	r.current = MoveReport{Move: moveIndex}
	r.startScore = score
}

// EndMove closes the bracket and stores the move's report.
func (r *PlayReporter) EndMove(result SwapResult, score int) {
	if !r.active {
		return
	}
	r.active = false
	r.current.Result = result
	r.current.ScoreDelta = score - r.startScore
	r.history = append(r.history, r.current)
}

// TilesRemoved implements Listener.
func (r *PlayReporter) TilesRemoved(tiles []*Tile) {
	if !r.active {
		return
	}
	r.current.TilesRemoved += len(tiles)
	r.current.RemovalBatches++
}

// TilesSpawned implements Listener.
func (r *PlayReporter) TilesSpawned(tiles []*Tile) {
	if !r.active {
		return
	}
	for _, t := range tiles {
		if t.IsSpecial() {
			r.current.SpecialsSpawned++
		}
	}
}

// SwapReverted implements Listener.
func (r *PlayReporter) SwapReverted(a, b *Tile) {
	if !r.active {
		return
	}
	r.current.Reverted = true
}

// History returns all collected move reports.
func (r *PlayReporter) History() []MoveReport {
	return r.history
}

// Totals aggregates the collected history.
type Totals struct {
	MovesPlayed     int // accepted, non-reverted
	Reverted        int
	Rejected        int
	TilesRemoved    int
	SpecialsSpawned int
	ScoreGained     int
	MaxBatchDepth   int // deepest cascade/chain seen in one move
}

// Totals computes aggregate statistics over the history.
func (r *PlayReporter) Totals() Totals {
	var t Totals
	for _, m := range r.history {
		switch {
		case m.Result != SwapAccepted:
			t.Rejected++
		case m.Reverted:
			t.Reverted++
		default:
			t.MovesPlayed++
		}
		t.TilesRemoved += m.TilesRemoved
		t.SpecialsSpawned += m.SpecialsSpawned
		t.ScoreGained += m.ScoreDelta
		if m.RemovalBatches > t.MaxBatchDepth {
			t.MaxBatchDepth = m.RemovalBatches
		}
	}
	return t
}

// Format renders the aggregate as a fixed-width block.
func (t Totals) Format() string {
	var b strings.Builder
	b.WriteString("=== Move totals ===\n")
	fmt.Fprintf(&b, "moves_played=%d reverted=%d rejected=%d\n", t.MovesPlayed, t.Reverted, t.Rejected)
	fmt.Fprintf(&b, "tiles_removed=%d specials_spawned=%d\n", t.TilesRemoved, t.SpecialsSpawned)
	avg := 0.0
	if t.MovesPlayed > 0 {
		avg = float64(t.ScoreGained) / float64(t.MovesPlayed)
	}
	fmt.Fprintf(&b, "score_gained=%d avg_per_move=%.1f max_batch_depth=%d\n", t.ScoreGained, avg, t.MaxBatchDepth)
	return b.String()
}

// Format renders one move's report as a single line.
func (m MoveReport) Format() string {
	return fmt.Sprintf("move %d: result=%s reverted=%v removed=%d batches=%d specials=%d score_delta=%d",
		m.Move, m.Result, m.Reverted, m.TilesRemoved, m.RemovalBatches, m.SpecialsSpawned, m.ScoreDelta)
}

// FormatLatest renders the most recent move's report, or a placeholder.
func (r *PlayReporter) FormatLatest() string {
	if len(r.history) == 0 {
		return "(no moves recorded)"
	}
	return r.history[len(r.history)-1].Format()
}

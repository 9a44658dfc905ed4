package game

import (
	"fmt"
	"strings"
)

// PlayLogEntry is one recorded engine event during a harness-driven play.
type PlayLogEntry struct {
	Move     int     // 1-based move counter at the time of the event; 0 = setup
	Category string  // swap, match, board, score, session
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[M=003] board   removed   5 tiles
func (e PlayLogEntry) String() string {
	return fmt.Sprintf("[M=%03d] %-8s %-14s %s", e.Move, e.Category, e.Key, e.Value)
}

// PlayLog collects structured engine events. It is unbounded and
// machine-readable, meant for test assertions and headless reports rather
// than UI display.
type PlayLog struct {
	entries []PlayLogEntry
	verbose bool
}

// NewPlayLog creates a PlayLog. If verbose is true, per-tile move entries
// are also recorded (gravity falls get noisy on big cascades).
func NewPlayLog(verbose bool) *PlayLog {
	return &PlayLog{verbose: verbose}
}

// Add records a new entry.
func (pl *PlayLog) Add(move int, category, key, value string, numVal float64) {
	pl.entries = append(pl.entries, PlayLogEntry{
		Move:     move,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (pl *PlayLog) AddVerbose(move int, category, key, value string, numVal float64) {
	if !pl.verbose {
		return
	}
	pl.Add(move, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (pl *PlayLog) Entries() []PlayLogEntry {
	return pl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (pl *PlayLog) Filter(category, key string) []PlayLogEntry {
	var out []PlayLogEntry
	for _, e := range pl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterMove returns entries recorded during a specific move.
func (pl *PlayLog) FilterMove(move int) []PlayLogEntry {
	var out []PlayLogEntry
	for _, e := range pl.entries {
		if e.Move == move {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (pl *PlayLog) CountCategory(category, key string) int {
	return len(pl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (pl *PlayLog) LastOf(category, key string) (PlayLogEntry, bool) {
	entries := pl.Filter(category, key)
	if len(entries) == 0 {
		return PlayLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring.
func (pl *PlayLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range pl.entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Summary formats a closing block for a played session: counters plus the
// final board state.
func (pl *PlayLog) Summary(s *Session) string {
	var b strings.Builder
	b.WriteString("=== Play summary ===\n")
	fmt.Fprintf(&b, "score=%d moves_remaining=%d phase=%s game_over=%v\n",
		s.Score(), s.MovesRemaining(), s.CurrentPhase(), s.GameOver())
	fmt.Fprintf(&b, "swaps: accepted=%d reverted=%d rejected=%d\n",
		pl.CountCategory("swap", "accepted"),
		pl.CountCategory("swap", "reverted"),
		pl.CountCategory("swap", "rejected"))
	fmt.Fprintf(&b, "removal_batches=%d spawn_batches=%d\n",
		pl.CountCategory("board", "removed"),
		pl.CountCategory("board", "spawned"))
	b.WriteString(BoardReport(s.Board()))
	return b.String()
}

// Command headless-report plays batches of autopiloted Gem Rush sessions
// and prints per-run and aggregate statistics. Useful for eyeballing
// score balance and cascade behaviour across seeds without a window.
package main

import (
	"flag"
	"fmt"

	"github.com/Garsondee/Gem-Rush/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	finalScore     int
	movesPlayed    int
	reverted       int
	tilesRemoved   int
	specials       int
	maxBatchDepth  int
	movesRemaining int
	gameOver       bool
	deadBoard      bool
}

func main() {
	var runs int
	var moves int
	var rows int
	var cols int
	var gems int
	var seedBase int64
	var seedStep int64
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless sessions")
	flag.IntVar(&moves, "moves", 30, "starting move budget per session")
	flag.IntVar(&rows, "rows", 8, "board rows")
	flag.IntVar(&cols, "cols", 8, "board columns")
	flag.IntVar(&gems, "gems", 6, "gem type count (>= 3)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.BoolVar(&verbose, "verbose", false, "dump the full play log per run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if moves <= 0 {
		fmt.Println("error: -moves must be > 0")
		return
	}
	if gems < 3 {
		fmt.Println("error: -gems must be >= 3")
		return
	}

	fmt.Printf("=== Headless Play Report ===\n")
	fmt.Printf("board=%dx%d gems=%d moves=%d runs=%d seed_base=%d seed_step=%d\n\n",
		rows, cols, gems, moves, runs, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runSession(i+1, seed, rows, cols, gems, moves, verbose)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runSession(runIndex int, seed int64, rows, cols, gems, moves int, verbose bool) runStats {
	tp := game.NewTestPlay(
		game.WithBoardSize(rows, cols),
		game.WithGemTypes(gems),
		game.WithMoves(moves),
		game.WithSeed(seed),
		game.WithVerbose(verbose),
	)
	// The autoplayer needs headroom above the move budget because reverted
	// and no-op swaps are free; 4x is comfortably past any plausible streak.
	tp.AutoPlay(moves * 4)

	if verbose {
		for _, e := range tp.Log.Entries() {
			fmt.Println(e.String())
		}
		for _, m := range tp.Reporter.History() {
			fmt.Println(m.Format())
		}
	}

	t := tp.Reporter.Totals()
	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		finalScore:     tp.Session.Score(),
		movesPlayed:    t.MovesPlayed,
		reverted:       t.Reverted,
		tilesRemoved:   t.TilesRemoved,
		specials:       t.SpecialsSpawned,
		maxBatchDepth:  t.MaxBatchDepth,
		movesRemaining: tp.Session.MovesRemaining(),
		gameOver:       tp.Session.GameOver(),
		deadBoard:      tp.Log.CountCategory("session", "no_moves") > 0,
	}
}

// classifyRun names how the run ended.
func classifyRun(rs runStats) string {
	switch {
	case rs.gameOver:
		return "budget-spent"
	case rs.deadBoard:
		return "dead-board"
	default:
		return "cap-reached"
	}
}

// avgPerMove returns score per played move, 0 when no move was played.
func avgPerMove(score, movesPlayed int) float64 {
	if movesPlayed == 0 {
		return 0
	}
	return float64(score) / float64(movesPlayed)
}

func printRun(rs runStats) {
	fmt.Printf("--- run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s score=%d moves_played=%d reverted=%d moves_remaining=%d\n",
		classifyRun(rs), rs.finalScore, rs.movesPlayed, rs.reverted, rs.movesRemaining)
	fmt.Printf("tiles_removed=%d specials_spawned=%d max_batch_depth=%d avg_score_per_move=%.1f\n",
		rs.tilesRemoved, rs.specials, rs.maxBatchDepth, avgPerMove(rs.finalScore, rs.movesPlayed))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalScore := 0
	totalMoves := 0
	totalReverted := 0
	totalRemoved := 0
	totalSpecials := 0
	maxDepth := 0
	budgetSpent := 0
	deadBoards := 0
	bestScore := 0
	bestRun := 0

	for _, rs := range all {
		totalScore += rs.finalScore
		totalMoves += rs.movesPlayed
		totalReverted += rs.reverted
		totalRemoved += rs.tilesRemoved
		totalSpecials += rs.specials
		if rs.maxBatchDepth > maxDepth {
			maxDepth = rs.maxBatchDepth
		}
		if rs.gameOver {
			budgetSpent++
		}
		if rs.deadBoard {
			deadBoards++
		}
		if rs.finalScore > bestScore {
			bestScore = rs.finalScore
			bestRun = rs.runIndex
		}
	}

	n := len(all)
	fmt.Printf("=== Aggregate over %d runs ===\n", n)
	fmt.Printf("score: total=%d avg=%.1f best=%d (run %d)\n",
		totalScore, float64(totalScore)/float64(n), bestScore, bestRun)
	fmt.Printf("moves: played=%d reverted=%d avg_score_per_move=%.1f\n",
		totalMoves, totalReverted, avgPerMove(totalScore, totalMoves))
	fmt.Printf("boards: tiles_removed=%d specials_spawned=%d max_batch_depth=%d\n",
		totalRemoved, totalSpecials, maxDepth)
	fmt.Printf("outcomes: budget_spent=%d dead_boards=%d cap_reached=%d\n",
		budgetSpent, deadBoards, n-budgetSpent-deadBoards)
}

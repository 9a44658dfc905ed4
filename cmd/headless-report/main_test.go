package main

import "testing"

func TestClassifyRun(t *testing.T) {
	cases := []struct {
		name string
		rs   runStats
		want string
	}{
		{"budget spent", runStats{gameOver: true}, "budget-spent"},
		{"dead board", runStats{deadBoard: true}, "dead-board"},
		{"cap reached", runStats{}, "cap-reached"},
		{"game over wins over dead board", runStats{gameOver: true, deadBoard: true}, "budget-spent"},
	}
	for _, c := range cases {
		if got := classifyRun(c.rs); got != c.want {
			t.Errorf("%s: classifyRun=%q, want %q", c.name, got, c.want)
		}
	}
}

func TestAvgPerMove(t *testing.T) {
	if got := avgPerMove(300, 10); got != 30.0 {
		t.Fatalf("avgPerMove(300,10)=%f, want 30", got)
	}
	if got := avgPerMove(300, 0); got != 0 {
		t.Fatalf("avgPerMove with zero moves should be 0, got %f", got)
	}
}

func TestRunSessionDeterministic(t *testing.T) {
	a := runSession(1, 42, 7, 7, 4, 10, false)
	b := runSession(1, 42, 7, 7, 4, 10, false)
	if a.finalScore != b.finalScore || a.movesPlayed != b.movesPlayed || a.tilesRemoved != b.tilesRemoved {
		t.Fatalf("same seed should reproduce the run: %+v vs %+v", a, b)
	}
}

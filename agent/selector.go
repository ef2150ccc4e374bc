package agent

import (
	"github.com/plus3/stacker/tetris"
)

// Placement is where a piece comes to rest: its rotation, the column of its
// leftmost cell and the row of its topmost cell.
type Placement struct {
	Rotation int
	Column   int
	Row      int
}

// Candidate is one evaluated placement.
type Candidate struct {
	Placement
	Features Features
	Score    float64
}

// Evaluate simulates dropping the shape at the given rotation in column col
// and scores the resulting board. ok is false when the column admits no
// resting position. The board is not modified.
func Evaluate(board *tetris.Board, shape tetris.Shape, rotation, col int, w Weights) (Candidate, bool) {
	after, row, lock, ok := tetris.Simulate(board, shape, rotation, col)
	if !ok {
		return Candidate{}, false
	}
	f := Measure(after, lock)
	return Candidate{
		Placement: Placement{Rotation: rotation, Column: col, Row: row},
		Features:  f,
		Score:     f.Score(w),
	}, true
}

// Candidates returns every valid placement of the shape, scored, ordered by
// rotation then column.
func Candidates(board *tetris.Board, shape tetris.Shape, w Weights) []Candidate {
	out := make([]Candidate, 0, tetris.NumRotations*board.Width())
	for rot := 0; rot < tetris.NumRotations; rot++ {
		for col := 0; col < board.Width(); col++ {
			if c, ok := Evaluate(board, shape, rot, col, w); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// SelectBest returns the highest-scoring placement of the shape. Candidates
// are visited by ascending rotation, then ascending column, and only a
// strictly greater score replaces the incumbent, so ties go to the earliest
// one. ok is false when no placement exists at all, which the caller should
// treat as a top-out.
func SelectBest(board *tetris.Board, shape tetris.Shape, w Weights) (best Candidate, ok bool) {
	for rot := 0; rot < tetris.NumRotations; rot++ {
		for col := 0; col < board.Width(); col++ {
			c, valid := Evaluate(board, shape, rot, col, w)
			if !valid {
				continue
			}
			if !ok || c.Score > best.Score {
				best, ok = c, true
			}
		}
	}
	return best, ok
}

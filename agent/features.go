package agent

import (
	"math/bits"

	"github.com/plus3/stacker/tetris"
)

// Features is the board-quality vector of one simulated placement.
type Features [NumFeatures]int

// Score is the dot product of the features and the weights.
func (f Features) Score(w Weights) float64 {
	var score float64
	for i, v := range f {
		score += float64(v) * w[i]
	}
	return score
}

// Measure computes every feature of a board that resulted from locking a
// piece. The board must already have its full rows cleared; lock carries the
// values that only exist before compaction.
func Measure(board *tetris.Board, lock tetris.LockResult) Features {
	var f Features
	f[LandingHeight] = lock.LandingHeight
	if lock.LinesCleared > 0 {
		f[ErodedPieceCells] = lock.LinesCleared * lock.ErodedCells
	}
	f[RowTransitions] = rowTransitions(board)
	f[ColumnTransitions] = columnTransitions(board)
	f[Holes] = holes(board)
	f[Wells] = wells(board)
	return f
}

// walled surrounds a row with occupied wall cells: bit 0 is the left wall,
// bit c+1 is column c and bit width+1 is the right wall.
func walled(row uint64, width int) uint64 {
	return row<<1 | 1 | 1<<(width+1)
}

// rowTransitions counts occupancy changes between horizontal neighbours, the
// side walls counting as occupied. An empty row has two.
func rowTransitions(b *tetris.Board) int {
	width := b.Width()
	pairs := uint64(1)<<(width+1) - 1
	var sum int
	for r := 0; r < b.Height(); r++ {
		w := walled(b.RowBits(r), width)
		sum += bits.OnesCount64((w ^ w>>1) & pairs)
	}
	return sum
}

// columnTransitions counts occupancy changes between vertical neighbours,
// from an empty boundary above the top row down to an occupied floor.
func columnTransitions(b *tetris.Board) int {
	var sum int
	var above uint64
	for r := 0; r < b.Height(); r++ {
		row := b.RowBits(r)
		sum += bits.OnesCount64(above ^ row)
		above = row
	}
	return sum + bits.OnesCount64(above^b.FullRow())
}

// holes counts empty cells with an occupied cell anywhere above them in the
// same column.
func holes(b *tetris.Board) int {
	var sum int
	var covered uint64
	for r := 0; r < b.Height(); r++ {
		row := b.RowBits(r)
		sum += bits.OnesCount64(covered &^ row)
		covered |= row
	}
	return sum
}

// wells counts empty cells whose left and right neighbours are occupied or
// walls. Each cell counts once regardless of how deep the well is.
func wells(b *tetris.Board) int {
	width := b.Width()
	full := b.FullRow()
	var sum int
	for r := 0; r < b.Height(); r++ {
		row := b.RowBits(r)
		w := walled(row, width)
		sum += bits.OnesCount64(^row & w & (w >> 2) & full)
	}
	return sum
}

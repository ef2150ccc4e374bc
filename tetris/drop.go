package tetris

// LockResult describes what happened when a piece was written to a board.
type LockResult struct {
	// LandingHeight is the height above the floor of the piece's lowest cell
	// at the moment it came to rest, before any line was cleared.
	LandingHeight int
	// LinesCleared is the number of full rows removed.
	LinesCleared int
	// ErodedCells is how many of the piece's own cells were in cleared rows.
	ErodedCells int
}

// Drop finds the resting row of the shape at the given rotation when it
// falls straight down in column col, col being its leftmost cell. The
// returned row is the board row of the piece's topmost cell.
//
// The descent starts with the topmost cell in row 0 and advances one row at a
// time while the piece still fits. ok is false when even the first row does
// not fit, including when the piece sticks out of the board sideways.
func (b *Board) Drop(s Shape, rotation, col int) (row int, ok bool) {
	if !b.Fits(s, rotation, 0, col) {
		return 0, false
	}
	for b.Fits(s, rotation, row+1, col) {
		row++
	}
	return row, true
}

// Lock writes the piece into the board at (row, col), then removes every full
// row, shifting the rows above it down and inserting empty rows at the top.
// The caller must have checked that the piece fits.
func (b *Board) Lock(s Shape, rotation, row, col int) LockResult {
	cells := s.Cells(rotation)
	for _, c := range cells {
		b.rows[row+c.Row] |= 1 << (col + c.Col)
	}

	res := LockResult{
		LandingHeight: len(b.rows) - row - s.Height(rotation),
	}

	full := b.FullRow()
	for _, c := range cells {
		if b.rows[row+c.Row] == full {
			res.ErodedCells++
		}
	}

	// Compact bottom-up, skipping full rows; dst trails src by the number of
	// rows cleared so far.
	dst := len(b.rows) - 1
	for src := len(b.rows) - 1; src >= 0; src-- {
		if b.rows[src] == full {
			res.LinesCleared++
			continue
		}
		b.rows[dst] = b.rows[src]
		dst--
	}
	for ; dst >= 0; dst-- {
		b.rows[dst] = 0
	}
	return res
}

// Simulate drops a piece onto a copy of the board and locks it there. The
// source board is left untouched. ok is false when the column admits no
// resting position for the piece.
func Simulate(b *Board, s Shape, rotation, col int) (after *Board, row int, res LockResult, ok bool) {
	row, ok = b.Drop(s, rotation, col)
	if !ok {
		return nil, 0, LockResult{}, false
	}
	after = b.Clone()
	res = after.Lock(s, rotation, row, col)
	return after, row, res, true
}

// Package tetris models the playfield of a falling-block stacking puzzle:
// a fixed-size occupancy grid, the tetromino catalog with its rotation
// tables, and gravity drop with line clears.
//
// Row 0 is the topmost row. Each row is stored as a bit set where bit c is
// column c, so a board is cheap to clone for what-if simulation.
package tetris

import (
	"fmt"
	"math/bits"
	"strings"
)

const (
	DefaultHeight = 20
	DefaultWidth  = 10
	maxWidth      = 62 // leaves room for a wall bit on either side
)

// Board is a height x width occupancy grid.
type Board struct {
	rows  []uint64
	width int
}

// NewBoard creates an empty board. It panics when the dimensions cannot be
// represented, which is a caller bug rather than a game condition.
func NewBoard(height, width int) *Board {
	if height < 1 || width < 1 || width > maxWidth {
		panic(fmt.Sprintf("tetris: invalid board dimensions %dx%d", height, width))
	}
	return &Board{
		rows:  make([]uint64, height),
		width: width,
	}
}

// NewDefaultBoard creates an empty 20x10 board.
func NewDefaultBoard() *Board {
	return NewBoard(DefaultHeight, DefaultWidth)
}

func (b *Board) Height() int { return len(b.rows) }
func (b *Board) Width() int  { return b.width }

// FullRow is the bit pattern of a completely occupied row.
func (b *Board) FullRow() uint64 {
	return 1<<b.width - 1
}

// RowBits returns the occupancy of a row, bit c being column c.
func (b *Board) RowBits(row int) uint64 {
	return b.rows[row]
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < len(b.rows) && col >= 0 && col < b.width
}

// IsEmpty reports whether a cell is in bounds and unoccupied.
func (b *Board) IsEmpty(row, col int) bool {
	return b.inBounds(row, col) && b.rows[row]>>col&1 == 0
}

// Fill marks a cell occupied.
func (b *Board) Fill(row, col int) {
	if !b.inBounds(row, col) {
		panic(fmt.Sprintf("tetris: cell (%d,%d) outside %dx%d board", row, col, len(b.rows), b.width))
	}
	b.rows[row] |= 1 << col
}

// FillRow marks every cell of a row occupied except the given columns.
func (b *Board) FillRow(row int, except ...int) {
	bitsRow := b.FullRow()
	for _, col := range except {
		bitsRow &^= 1 << col
	}
	b.rows[row] = bitsRow
}

// Occupied returns the number of occupied cells.
func (b *Board) Occupied() int {
	var n int
	for _, r := range b.rows {
		n += bits.OnesCount64(r)
	}
	return n
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{
		rows:  make([]uint64, len(b.rows)),
		width: b.width,
	}
	copy(out.rows, b.rows)
	return out
}

// Equal reports whether two boards have the same dimensions and occupancy.
func (b *Board) Equal(other *Board) bool {
	if b.width != other.width || len(b.rows) != len(other.rows) {
		return false
	}
	for i := range b.rows {
		if b.rows[i] != other.rows[i] {
			return false
		}
	}
	return true
}

// ToppedOut reports whether any cell of the top row is occupied.
func (b *Board) ToppedOut() bool {
	return b.rows[0] != 0
}

// Fits reports whether the shape at the given rotation, with its bounding box
// at (row, col), lies entirely on empty in-bounds cells.
func (b *Board) Fits(s Shape, rotation, row, col int) bool {
	for _, c := range s.Cells(rotation) {
		if !b.IsEmpty(row+c.Row, col+c.Col) {
			return false
		}
	}
	return true
}

// String renders the board top to bottom, '#' for occupied and '.' for empty.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(len(b.rows) * (b.width + 1))
	for _, r := range b.rows {
		for c := 0; c < b.width; c++ {
			if r>>c&1 != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard builds a board from rows written top to bottom, '#' marking an
// occupied cell and any other byte an empty one. All rows must share a width.
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse board: no rows")
	}
	width := len(rows[0])
	if width < 1 || width > maxWidth {
		return nil, fmt.Errorf("parse board: invalid width %d", width)
	}
	b := NewBoard(len(rows), width)
	for i, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("parse board: row %d has width %d, want %d", i, len(line), width)
		}
		for c := 0; c < width; c++ {
			if line[c] == '#' {
				b.rows[i] |= 1 << c
			}
		}
	}
	return b, nil
}

// MustParseBoard is like ParseBoard but panics on malformed input.
func MustParseBoard(rows ...string) *Board {
	b, err := ParseBoard(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

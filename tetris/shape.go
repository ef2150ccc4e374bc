package tetris

import (
	"fmt"
	"strings"
)

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	I Shape = iota
	O
	T
	S
	Z
	J
	L
	numShapes
)

// NumRotations is the size of the rotation index space for every shape,
// including the ones whose geometry repeats.
const NumRotations = 4

// Shapes lists every shape in canonical order.
var Shapes = [...]Shape{I, O, T, S, Z, J, L}

// Cell is a (row, column) offset from the top-left corner of a piece's
// bounding box.
type Cell struct {
	Row, Col int
}

// shapeCells holds the four occupied offsets of every (shape, rotation).
// Each rotation is the clockwise quarter turn of the previous one, normalized
// so the topmost row and leftmost column are both 0.
var shapeCells = [numShapes][NumRotations][4]Cell{
	I: {
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}}, // ####
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	},
	O: {
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	T: {
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}}, // .#. / ###
		{{0, 0}, {1, 0}, {1, 1}, {2, 0}}, // #. / ## / #.
		{{0, 0}, {0, 1}, {0, 2}, {1, 1}}, // ### / .#.
		{{0, 1}, {1, 0}, {1, 1}, {2, 1}}, // .# / ## / .#
	},
	S: {
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}}, // .## / ##.
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}}, // #. / ## / .#
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
	Z: {
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}}, // ##. / .##
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}}, // .# / ## / #.
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
	},
	J: {
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}}, // #.. / ###
		{{0, 0}, {0, 1}, {1, 0}, {2, 0}}, // ## / #. / #.
		{{0, 0}, {0, 1}, {0, 2}, {1, 2}}, // ### / ..#
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}}, // .# / .# / ##
	},
	L: {
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}}, // ..# / ###
		{{0, 0}, {1, 0}, {2, 0}, {2, 1}}, // #. / #. / ##
		{{0, 0}, {0, 1}, {0, 2}, {1, 0}}, // ### / #..
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}}, // ## / .# / .#
	},
}

// extents caches the bounding box of every (shape, rotation).
var extents = func() (e [numShapes][NumRotations]struct{ w, h int }) {
	for s := range shapeCells {
		for r, cells := range shapeCells[s] {
			for _, c := range cells {
				e[s][r].h = max(e[s][r].h, c.Row+1)
				e[s][r].w = max(e[s][r].w, c.Col+1)
			}
		}
	}
	return e
}()

func (s Shape) check(rotation int) {
	if s >= numShapes {
		panic(fmt.Sprintf("tetris: unknown shape %d", s))
	}
	if rotation < 0 || rotation >= NumRotations {
		panic(fmt.Sprintf("tetris: rotation %d out of range", rotation))
	}
}

// Cells returns the four occupied offsets of the shape at the given rotation.
// It panics on an unknown shape or a rotation outside 0..3.
func (s Shape) Cells(rotation int) [4]Cell {
	s.check(rotation)
	return shapeCells[s][rotation]
}

// Width returns the number of columns spanned at the given rotation.
func (s Shape) Width(rotation int) int {
	s.check(rotation)
	return extents[s][rotation].w
}

// Height returns the number of rows spanned at the given rotation.
func (s Shape) Height(rotation int) int {
	s.check(rotation)
	return extents[s][rotation].h
}

const shapeNames = "IOTSZJL"

func (s Shape) String() string {
	if s >= numShapes {
		return fmt.Sprintf("Shape(%d)", s)
	}
	return shapeNames[s : s+1]
}

// ParseShape resolves a one-letter shape name, case-insensitively.
func ParseShape(name string) (Shape, error) {
	if len(name) == 1 {
		if i := strings.IndexByte(shapeNames, strings.ToUpper(name)[0]); i >= 0 {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}

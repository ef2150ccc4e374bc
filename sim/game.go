package sim

import (
	"errors"
	"fmt"

	"github.com/plus3/stacker/tetris"
)

var (
	ErrGameOver      = errors.New("game over")
	ErrNoActivePiece = errors.New("no active piece")
	ErrBlocked       = errors.New("move blocked")
)

// lineScores is indexed by the number of lines cleared in one lock.
var lineScores = [...]int{0, 100, 300, 500, 800}

// Piece is the falling piece: its shape, rotation and the board position of
// its bounding box.
type Piece struct {
	Shape    tetris.Shape
	Rotation int
	Row      int
	Col      int
}

// Game is the live state of one game. It owns its board; the board returned
// by Board may be read but callers must not lock pieces into it.
type Game struct {
	board  *tetris.Board
	source Source

	active    Piece
	hasActive bool
	over      bool

	score  int
	lines  int
	level  int
	pieces int
}

// NewGame starts a game on board, drawing shapes from source.
func NewGame(board *tetris.Board, source Source) *Game {
	return &Game{
		board:  board,
		source: source,
		level:  1,
	}
}

func (g *Game) Board() *tetris.Board { return g.board }
func (g *Game) Over() bool           { return g.over }
func (g *Game) Score() int           { return g.score }
func (g *Game) Lines() int           { return g.lines }
func (g *Game) Level() int           { return g.level }

// Pieces is the number of pieces locked so far.
func (g *Game) Pieces() int { return g.pieces }

// Active returns the falling piece, if any.
func (g *Game) Active() (Piece, bool) {
	return g.active, g.hasActive
}

// End marks the game over. It is used when the host gives up on a piece.
func (g *Game) End() {
	g.over = true
	g.hasActive = false
}

// Spawn draws the next shape and places it centred in the top row at
// rotation 0. The game ends when the top row is already occupied or the new
// piece does not fit. Spawning while a piece is falling returns that piece.
func (g *Game) Spawn() (Piece, error) {
	if g.over {
		return Piece{}, ErrGameOver
	}
	if g.hasActive {
		return g.active, nil
	}
	if g.board.ToppedOut() {
		g.End()
		return Piece{}, fmt.Errorf("spawn: top row occupied: %w", ErrGameOver)
	}

	s := g.source.Next()
	p := Piece{
		Shape: s,
		Col:   (g.board.Width() - s.Width(0)) / 2,
	}
	if !g.board.Fits(p.Shape, p.Rotation, p.Row, p.Col) {
		g.End()
		return Piece{}, fmt.Errorf("spawn %v at column %d: %w", s, p.Col, ErrGameOver)
	}
	g.active, g.hasActive = p, true
	return p, nil
}

// Apply moves the falling piece to the requested rotation and column and
// hard-drops it. Rotation happens first, one clockwise quarter turn at a
// time, then the piece shifts one column at a time, and every step must fit.
// If a step collides the piece is left where it was and ErrBlocked is
// returned.
func (g *Game) Apply(rotation, column int) (tetris.LockResult, error) {
	if !g.hasActive {
		return tetris.LockResult{}, ErrNoActivePiece
	}
	if rotation < 0 || rotation >= tetris.NumRotations {
		return tetris.LockResult{}, fmt.Errorf("apply: rotation %d: %w", rotation, ErrBlocked)
	}

	p := g.active
	for p.Rotation != rotation {
		next := (p.Rotation + 1) % tetris.NumRotations
		if !g.board.Fits(p.Shape, next, p.Row, p.Col) {
			return tetris.LockResult{}, fmt.Errorf("rotate %v to %d at column %d: %w", p.Shape, next, p.Col, ErrBlocked)
		}
		p.Rotation = next
	}
	for p.Col != column {
		step := 1
		if column < p.Col {
			step = -1
		}
		if !g.board.Fits(p.Shape, p.Rotation, p.Row, p.Col+step) {
			return tetris.LockResult{}, fmt.Errorf("shift %v to column %d: %w", p.Shape, p.Col+step, ErrBlocked)
		}
		p.Col += step
	}
	for g.board.Fits(p.Shape, p.Rotation, p.Row+1, p.Col) {
		p.Row++
	}

	res := g.board.Lock(p.Shape, p.Rotation, p.Row, p.Col)
	g.hasActive = false
	g.pieces++
	g.score += lineScores[min(res.LinesCleared, len(lineScores)-1)] * g.level
	g.lines += res.LinesCleared
	g.level = g.lines/10 + 1
	return res, nil
}

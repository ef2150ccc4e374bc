// Package sim is a headless reference host for the agent: a falling-piece
// game that spawns pieces from a 7-bag, applies decisions step by step and
// keeps the score, plus a runner that paces the agent against it.
package sim

import (
	"math/rand/v2"

	"github.com/plus3/stacker/tetris"
)

// Source yields the sequence of shapes a game spawns.
type Source interface {
	Next() tetris.Shape
}

// Bag deals every shape once, in shuffled order, before reshuffling.
type Bag struct {
	r     *rand.Rand
	queue []tetris.Shape
}

// NewBag creates a bag whose sequence is fully determined by seed.
func NewBag(seed uint64) *Bag {
	return &Bag{
		r:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		queue: make([]tetris.Shape, 0, len(tetris.Shapes)),
	}
}

func (b *Bag) refill() {
	b.queue = append(b.queue[:0], tetris.Shapes[:]...)
	b.r.Shuffle(len(b.queue), func(i, j int) {
		b.queue[i], b.queue[j] = b.queue[j], b.queue[i]
	})
}

// Next removes and returns the next shape.
func (b *Bag) Next() tetris.Shape {
	if len(b.queue) == 0 {
		b.refill()
	}
	s := b.queue[0]
	b.queue = b.queue[1:]
	return s
}

// Peek returns the shape Next will return without consuming it.
func (b *Bag) Peek() tetris.Shape {
	if len(b.queue) == 0 {
		b.refill()
	}
	return b.queue[0]
}

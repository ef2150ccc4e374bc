package sim_test

import (
	"testing"

	"github.com/plus3/stacker/sim"
	"github.com/plus3/stacker/tetris"
	"github.com/stretchr/testify/assert"
)

func TestBagDealsEachShapeOncePerSeven(t *testing.T) {
	bag := sim.NewBag(42)

	for round := 0; round < 20; round++ {
		seen := make(map[tetris.Shape]int)
		for i := 0; i < len(tetris.Shapes); i++ {
			seen[bag.Next()]++
		}
		for _, s := range tetris.Shapes {
			assert.Equal(t, 1, seen[s], "round %d shape %v", round, s)
		}
	}
}

func TestBagIsDeterministic(t *testing.T) {
	a, b := sim.NewBag(7), sim.NewBag(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestBagPeek(t *testing.T) {
	bag := sim.NewBag(3)
	for i := 0; i < 30; i++ {
		next := bag.Peek()
		assert.Equal(t, next, bag.Peek(), "peek must not consume")
		assert.Equal(t, next, bag.Next())
	}
}

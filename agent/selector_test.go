package agent_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/stacker/agent"
	"github.com/plus3/stacker/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateHorizontalIOnEmptyBoard(t *testing.T) {
	b := tetris.NewDefaultBoard()

	c, ok := agent.Evaluate(b, tetris.I, 0, 3, agent.DefaultWeights)
	require.True(t, ok)

	assert.Equal(t, agent.Placement{Rotation: 0, Column: 3, Row: 19}, c.Placement)
	assert.Equal(t, 0, c.Features[agent.LandingHeight])
	assert.Equal(t, 0, c.Features[agent.Holes])
	assert.Equal(t, 0, c.Features[agent.Wells])
	assert.Equal(t, 42, c.Features[agent.RowTransitions])
	assert.Equal(t, 10, c.Features[agent.ColumnTransitions])
	assert.InDelta(t, c.Features.Score(agent.DefaultWeights), c.Score, 1e-9)
	assert.Equal(t, 0, b.Occupied(), "evaluation must not touch the input board")
}

func TestCandidatesEnumeration(t *testing.T) {
	b := tetris.NewDefaultBoard()

	t.Run("O fits nine columns in every rotation", func(t *testing.T) {
		cs := agent.Candidates(b, tetris.O, agent.DefaultWeights)
		assert.Len(t, cs, 36)
	})

	t.Run("I fits seven columns flat and ten upright", func(t *testing.T) {
		cs := agent.Candidates(b, tetris.I, agent.DefaultWeights)
		require.Len(t, cs, 34)
		assert.Equal(t, agent.Placement{Rotation: 0, Column: 0, Row: 19}, cs[0].Placement)
		assert.Equal(t, agent.Placement{Rotation: 3, Column: 9, Row: 16}, cs[len(cs)-1].Placement)
	})

	t.Run("ordered by rotation then column", func(t *testing.T) {
		cs := agent.Candidates(b, tetris.T, agent.DefaultWeights)
		for i := 1; i < len(cs); i++ {
			prev, cur := cs[i-1].Placement, cs[i].Placement
			assert.True(t, prev.Rotation < cur.Rotation ||
				(prev.Rotation == cur.Rotation && prev.Column < cur.Column))
		}
	})
}

func TestSelectBestTieBreak(t *testing.T) {
	b := tetris.NewDefaultBoard()

	t.Run("mirror placements keep the lower column", func(t *testing.T) {
		// O against either wall scores the same; all four rotations of O are
		// the same shape, so rotation 0 column 0 must win.
		left, ok := agent.Evaluate(b, tetris.O, 0, 0, agent.DefaultWeights)
		require.True(t, ok)
		right, ok := agent.Evaluate(b, tetris.O, 0, 8, agent.DefaultWeights)
		require.True(t, ok)
		require.Equal(t, left.Score, right.Score)

		best, ok := agent.SelectBest(b, tetris.O, agent.DefaultWeights)
		require.True(t, ok)
		assert.Equal(t, agent.Placement{Rotation: 0, Column: 0, Row: 18}, best.Placement)
	})

	t.Run("all-zero weights pick the first valid candidate", func(t *testing.T) {
		for _, s := range tetris.Shapes {
			best, ok := agent.SelectBest(b, s, agent.Weights{})
			require.True(t, ok)
			assert.Equal(t, 0, best.Rotation, "%v", s)
			assert.Equal(t, 0, best.Column, "%v", s)
		}
	})
}

func TestSelectBestFillsWell(t *testing.T) {
	b := tetris.NewDefaultBoard()
	b.FillRow(19, 9)

	best, ok := agent.SelectBest(b, tetris.I, agent.DefaultWeights)
	require.True(t, ok)
	// Rotation 3 is the same upright I and loses the tie.
	assert.Equal(t, agent.Placement{Rotation: 1, Column: 9, Row: 16}, best.Placement)
	assert.Equal(t, 1, best.Features[agent.ErodedPieceCells])
}

func TestSelectBestTopOut(t *testing.T) {
	b := tetris.NewDefaultBoard()
	b.FillRow(0)
	b.FillRow(1, 4)

	for _, s := range tetris.Shapes {
		_, ok := agent.SelectBest(b, s, agent.DefaultWeights)
		assert.False(t, ok, "%v", s)
		assert.Empty(t, agent.Candidates(b, s, agent.DefaultWeights))
	}
}

func TestSelectBestTopOutCheckerboard(t *testing.T) {
	// A flat I needs four adjacent empty cells in row 0. Every other
	// orientation needs an empty cell in row 0 directly above an empty cell
	// in row 1. The offset checkerboard leaves neither.
	b := tetris.NewDefaultBoard()
	for col := 0; col < b.Width(); col++ {
		if col%2 == 0 {
			b.Fill(0, col)
		} else {
			b.Fill(1, col)
		}
	}

	for _, s := range tetris.Shapes {
		_, ok := agent.SelectBest(b, s, agent.DefaultWeights)
		assert.False(t, ok, "%v", s)
	}
}

func randomStack(r *rand.Rand) *tetris.Board {
	b := tetris.NewDefaultBoard()
	for col := 0; col < b.Width(); col++ {
		height := r.IntN(12)
		for row := b.Height() - height; row < b.Height(); row++ {
			if r.IntN(5) != 0 {
				b.Fill(row, col)
			}
		}
	}
	return b
}

func TestSelectBestProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 100; i++ {
		b := randomStack(r)
		snapshot := b.Clone()

		for _, s := range tetris.Shapes {
			best, ok := agent.SelectBest(b, s, agent.DefaultWeights)
			if !ok {
				continue
			}
			p := best.Placement
			assert.True(t, b.Fits(s, p.Rotation, p.Row, p.Column), "placement overlaps or leaves the board\n%s", b)
			assert.False(t, b.Fits(s, p.Rotation, p.Row+1, p.Column), "placement is floating\n%s", b)

			again, ok := agent.SelectBest(b, s, agent.DefaultWeights)
			require.True(t, ok)
			assert.Equal(t, best, again, "selection must be deterministic")

			for _, c := range agent.Candidates(b, s, agent.DefaultWeights) {
				assert.LessOrEqual(t, c.Score, best.Score)
			}
		}
		assert.True(t, snapshot.Equal(b), "selection must not mutate the board")
	}
}

func BenchmarkSelectBest(b *testing.B) {
	r := rand.New(rand.NewPCG(5, 8))
	boards := make([]*tetris.Board, 16)
	for i := range boards {
		boards[i] = randomStack(r)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		agent.SelectBest(boards[i%len(boards)], tetris.Shapes[i%len(tetris.Shapes)], agent.DefaultWeights)
	}
}

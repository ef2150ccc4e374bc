package sim

import (
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/stacker/tetris"
)

// DecisionStats summarizes how long the driver took to decide.
type DecisionStats struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Last  time.Duration
	Total time.Duration
}

// Stats is a snapshot of a runner's counters.
type Stats struct {
	Decisions DecisionStats
	// Clears[n] is the number of locks that cleared n lines.
	Clears [5]int
	// Spawned counts pieces spawned per shape.
	Spawned map[tetris.Shape]int
}

type statsInternal struct {
	count int64
	min   time.Duration
	max   time.Duration
	last  time.Duration
	total time.Duration

	clears  *intmap.Map[int, int]
	spawned *intmap.Map[int, int]
}

func newStats() *statsInternal {
	return &statsInternal{
		min:     time.Duration(1<<63 - 1),
		clears:  intmap.New[int, int](len(lineScores)),
		spawned: intmap.New[int, int](len(tetris.Shapes)),
	}
}

func (s *statsInternal) recordDecision(d time.Duration) {
	s.count++
	s.last = d
	s.total += d
	if d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
}

func (s *statsInternal) recordLock(lines int) {
	n, _ := s.clears.Get(lines)
	s.clears.Put(lines, n+1)
}

func (s *statsInternal) recordSpawn(shape tetris.Shape) {
	n, _ := s.spawned.Get(int(shape))
	s.spawned.Put(int(shape), n+1)
}

func (s *statsInternal) snapshot() Stats {
	out := Stats{
		Decisions: DecisionStats{
			Count: s.count,
			Max:   s.max,
			Last:  s.last,
			Total: s.total,
		},
		Spawned: make(map[tetris.Shape]int, s.spawned.Len()),
	}
	if s.count > 0 {
		out.Decisions.Min = s.min
		out.Decisions.Avg = s.total / time.Duration(s.count)
	}
	for lines := range out.Clears {
		out.Clears[lines], _ = s.clears.Get(lines)
	}
	for _, shape := range tetris.Shapes {
		if n, ok := s.spawned.Get(int(shape)); ok {
			out.Spawned[shape] = n
		}
	}
	return out
}

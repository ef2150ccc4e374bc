package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/stacker/agent"
	"github.com/plus3/stacker/sim"
)

// How a game ended.
const (
	EndTopOut    = "top-out"
	EndLimit     = "limit"
	EndCancelled = "cancelled"
)

type GameResult struct {
	Game     int
	Seed     uint64
	Ended    string
	Pieces   int
	Lines    int
	Score    int
	Level    int
	Duration time.Duration
	Stats    sim.Stats
}

type Report struct {
	// Configuration
	Games     int
	Seed      uint64
	MaxPieces int
	Speed     int
	Weights   agent.Weights

	// Results
	Results       []GameResult
	TotalTime     time.Duration
	TotalPieces   int
	TopOuts       int
	Clears        [5]int
	LinesPerGame  Stats
	ScorePerGame  Stats
	DecisionTime  DecisionStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Stats summarizes one integer measurement across games.
type Stats struct {
	Min     int
	Max     int
	Avg     float64
	Samples []int
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total int
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = float64(total) / float64(len(s.Samples))
}

// DecisionStats merges the per-game decision timings.
type DecisionStats struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Total time.Duration
}

func (d *DecisionStats) add(s sim.DecisionStats) {
	if s.Count == 0 {
		return
	}
	if d.Count == 0 || s.Min < d.Min {
		d.Min = s.Min
	}
	if s.Max > d.Max {
		d.Max = s.Max
	}
	d.Count += s.Count
	d.Total += s.Total
	d.Avg = d.Total / time.Duration(d.Count)
}

// Finalize aggregates the per-game results.
func (r *Report) Finalize() {
	r.LinesPerGame = Stats{Samples: make([]int, 0, len(r.Results))}
	r.ScorePerGame = Stats{Samples: make([]int, 0, len(r.Results))}
	r.DecisionTime = DecisionStats{}
	r.TotalPieces, r.TopOuts, r.Clears = 0, 0, [5]int{}

	for _, res := range r.Results {
		r.TotalPieces += res.Pieces
		if res.Ended == EndTopOut {
			r.TopOuts++
		}
		for n, count := range res.Stats.Clears {
			r.Clears[n] += count
		}
		r.LinesPerGame.Samples = append(r.LinesPerGame.Samples, res.Lines)
		r.ScorePerGame.Samples = append(r.ScorePerGame.Samples, res.Score)
		r.DecisionTime.add(res.Stats.Decisions)
	}
	r.LinesPerGame.Finalize()
	r.ScorePerGame.Finalize()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Stacker Benchmark Report

## Configuration
- **Games:** {{.Games}}
- **First Seed:** {{.Seed}}
- **Max Pieces:** {{if .MaxPieces}}{{.MaxPieces}}{{else}}unlimited{{end}}
- **Speed:** {{if .Speed}}{{.Speed}} decisions/s{{else}}unpaced{{end}}
- **Weights:** {{weights .Weights}}

## Results
- **Total Time:** {{.TotalTime}}
- **Total Pieces:** {{.TotalPieces}}
- **Top-outs:** {{.TopOuts}} of {{.Games}}
- **Lines per Game:**
  - **Avg:** {{printf "%.1f" .LinesPerGame.Avg}}
  - **Min:** {{.LinesPerGame.Min}}
  - **Max:** {{.LinesPerGame.Max}}
- **Score per Game:**
  - **Avg:** {{printf "%.1f" .ScorePerGame.Avg}}
  - **Min:** {{.ScorePerGame.Min}}
  - **Max:** {{.ScorePerGame.Max}}
- **Line Clears:** {{index .Clears 1}} single, {{index .Clears 2}} double, {{index .Clears 3}} triple, {{index .Clears 4}} tetris
- **Decision Time ({{.DecisionTime.Count}} decisions):**
  - **Avg:** {{.DecisionTime.Avg}}
  - **Min:** {{.DecisionTime.Min}}
  - **Max:** {{.DecisionTime.Max}}

## Games
| Game | Seed | Ended | Pieces | Lines | Score | Level | Time |
|---:|---:|---|---:|---:|---:|---:|---:|
{{range .Results}}| {{.Game}} | {{.Seed}} | {{.Ended}} | {{.Pieces}} | {{.Lines}} | {{.Score}} | {{.Level}} | {{.Duration}} |
{{end}}
## Memory Usage (Raw Bytes)
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"weights": func(w agent.Weights) string {
			return w.String()
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

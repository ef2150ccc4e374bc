package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/plus3/stacker/agent"
)

// GameRow is one finished game as stored in the results file.
type GameRow struct {
	Game       int32  `parquet:"game"`
	Seed       int64  `parquet:"seed"`
	Ended      string `parquet:"ended,dict"`
	Pieces     int32  `parquet:"pieces"`
	Lines      int32  `parquet:"lines"`
	Score      int64  `parquet:"score"`
	Level      int32  `parquet:"level"`
	Singles    int32  `parquet:"singles"`
	Doubles    int32  `parquet:"doubles"`
	Triples    int32  `parquet:"triples"`
	Tetrises   int32  `parquet:"tetrises"`
	DurationNs int64  `parquet:"duration_ns"`

	DecisionAvgNs int64 `parquet:"decision_avg_ns"`
	DecisionMaxNs int64 `parquet:"decision_max_ns"`
}

// Rows converts the per-game results for export.
func (r *Report) Rows() []GameRow {
	rows := make([]GameRow, 0, len(r.Results))
	for _, res := range r.Results {
		c := res.Stats.Clears
		rows = append(rows, GameRow{
			Game:          int32(res.Game),
			Seed:          int64(res.Seed),
			Ended:         res.Ended,
			Pieces:        int32(res.Pieces),
			Lines:         int32(res.Lines),
			Score:         int64(res.Score),
			Level:         int32(res.Level),
			Singles:       int32(c[1]),
			Doubles:       int32(c[2]),
			Triples:       int32(c[3]),
			Tetrises:      int32(c[4]),
			DurationNs:    res.Duration.Nanoseconds(),
			DecisionAvgNs: res.Stats.Decisions.Avg.Nanoseconds(),
			DecisionMaxNs: res.Stats.Decisions.Max.Nanoseconds(),
		})
	}
	return rows
}

// writeResults writes rows to outPath through a temp file and an atomic
// rename. The weights are recorded in the file metadata.
func writeResults(outPath string, rows []GameRow, w agent.Weights) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "stacker_game_v1"),
		parquet.KeyValueMetadata("weights", w.String()),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

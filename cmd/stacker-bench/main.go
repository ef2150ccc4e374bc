// Command stacker-bench plays headless games with the placement agent and
// reports how well and how fast it plays.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/plus3/stacker/agent"
	"github.com/plus3/stacker/sim"
	"github.com/plus3/stacker/tetris"
	"golang.org/x/sync/errgroup"
)

type options struct {
	Games     int
	Seed      uint64
	MaxPieces int
	Duration  time.Duration
	Speed     int
	Parallel  int
	Config    agent.Config
}

func main() {
	games := flag.Int("games", 10, "Number of games to play.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; game i uses seed+i.")
	maxPieces := flag.Int("max-pieces", 10000, "Stop a game after this many pieces; 0 means play until top-out.")
	duration := flag.Duration("duration", 0, "Overall time limit; 0 means none.")
	speed := flag.Int("speed", 0, "Decisions per second for paced play; 0 plays unpaced. Defaults to the -config speed when a config is given.")
	parallel := flag.Int("parallel", runtime.GOMAXPROCS(0), "Games played at once.")
	configPath := flag.String("config", "", "Path to a JSON agent config.")
	out := flag.String("out", "", "Write one Parquet row per game to this path.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	weights := agent.DefaultWeights
	flag.Var(&weights, "weights", "Six comma-separated feature weights.")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level: %v\n", err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := agent.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			logger.Error("load config", "path", *configPath, "err", err)
			os.Exit(1)
		}
	}
	speedSet := false
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "weights":
			cfg.Weights = weights
		case "speed":
			speedSet = true
		}
	})

	opts := options{
		Games:     *games,
		Seed:      *seed,
		MaxPieces: *maxPieces,
		Duration:  *duration,
		Speed:     pacing(*speed, speedSet, cfg, *configPath != ""),
		Parallel:  *parallel,
		Config:    cfg,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting benchmark", "games", opts.Games, "seed", opts.Seed, "weights", cfg.Weights.String())
	report, err := run(ctx, opts, logger)
	if err != nil {
		logger.Error("benchmark failed", "err", err)
		os.Exit(1)
	}

	fmt.Println("\n--- Stacker Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("generate report", "err", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")

	if *out != "" {
		if err := writeResults(*out, report.Rows(), cfg.Weights); err != nil {
			logger.Error("write results", "path", *out, "err", err)
			os.Exit(1)
		}
		logger.Info("wrote results", "path", *out, "games", len(report.Results))
	}
}

// loadConfig reads a JSON agent config. Fields absent from the file keep
// their default values.
func loadConfig(path string) (agent.Config, error) {
	cfg := agent.DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// pacing picks the decisions per second for the run: the -speed flag when
// given, else the config file's speed, else 0 for unpaced play.
func pacing(flagSpeed int, flagSet bool, cfg agent.Config, fromFile bool) int {
	switch {
	case flagSet:
		return flagSpeed
	case fromFile:
		return cfg.Speed
	default:
		return 0
	}
}

// run plays every game and collects the report. A deadline or cancellation
// cuts games short but is not an error.
func run(ctx context.Context, opts options, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	report := &Report{
		Games:     opts.Games,
		Seed:      opts.Seed,
		MaxPieces: opts.MaxPieces,
		Speed:     opts.Speed,
		Weights:   opts.Config.Weights,
		Results:   make([]GameResult, opts.Games),
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Parallel, 1))
	for i := range report.Results {
		g.Go(func() error {
			res, err := playGame(gctx, i, opts, logger)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			report.Results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Finalize()
	return report, nil
}

func playGame(ctx context.Context, id int, opts options, logger *slog.Logger) (GameResult, error) {
	seed := opts.Seed + uint64(id)
	log := logger.With("game", id, "seed", seed)

	game := sim.NewGame(tetris.NewDefaultBoard(), sim.NewBag(seed))
	driver := agent.NewDriver(opts.Config)
	driver.Enable()
	runner := sim.NewRunner(game, driver, log)

	start := time.Now()
	var err error
	if opts.Speed > 0 {
		driver.SetSpeed(opts.Speed)
		err = runner.Run(ctx, opts.MaxPieces)
	} else {
		err = runner.RunUntil(ctx, opts.MaxPieces)
	}
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return GameResult{}, err
	}

	res := GameResult{
		Game:     id,
		Seed:     seed,
		Pieces:   game.Pieces(),
		Lines:    game.Lines(),
		Score:    game.Score(),
		Level:    game.Level(),
		Duration: time.Since(start),
		Stats:    runner.Stats(),
	}
	switch {
	case game.Over():
		res.Ended = EndTopOut
	case err != nil:
		res.Ended = EndCancelled
	default:
		res.Ended = EndLimit
	}

	log.Info("game finished",
		"ended", res.Ended,
		"pieces", res.Pieces,
		"lines", res.Lines,
		"score", res.Score,
		"duration", res.Duration,
	)
	return res, nil
}

package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/plus3/stacker/agent"
)

// ErrDriverDisabled is returned by RunUntil when the driver passes, since an
// unpaced loop would otherwise spin without progress.
var ErrDriverDisabled = errors.New("driver disabled")

// Runner plays a Game with a Driver, one decision per spawned piece. A Runner
// is not safe for concurrent use; the driver it holds is.
type Runner struct {
	game   *Game
	driver *agent.Driver
	log    *slog.Logger
	stats  *statsInternal
}

// NewRunner creates a runner. A nil logger discards all output.
func NewRunner(game *Game, driver *agent.Driver, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		game:   game,
		driver: driver,
		log:    logger,
		stats:  newStats(),
	}
}

func (r *Runner) Game() *Game { return r.game }

// Stats returns a snapshot of the decision timings and line-clear counts.
func (r *Runner) Stats() Stats {
	return r.stats.snapshot()
}

// Once runs a single cycle: spawn a piece if none is falling, ask the driver
// where to put it and apply the answer. A Pass decision leaves the piece
// falling. It returns ErrGameOver once the game has ended, including when the
// driver reports a top-out or its placement cannot be reached.
func (r *Runner) Once() (agent.Decision, error) {
	_, falling := r.game.Active()
	p, err := r.game.Spawn()
	if err != nil {
		r.log.Debug("spawn failed", "err", err)
		return agent.Decision{}, err
	}
	if !falling {
		r.stats.recordSpawn(p.Shape)
	}

	start := time.Now()
	dec := r.driver.Decide(r.game.Board(), p.Shape)
	r.stats.recordDecision(time.Since(start))

	switch dec.Kind {
	case agent.Pass:
		return dec, nil
	case agent.TopOut:
		r.game.End()
		r.log.Debug("no placement", "shape", p.Shape)
		return dec, fmt.Errorf("place %v: %w", p.Shape, ErrGameOver)
	}

	c := dec.Candidate
	res, err := r.game.Apply(c.Rotation, c.Column)
	if err != nil {
		if errors.Is(err, ErrBlocked) {
			r.game.End()
			r.log.Debug("placement unreachable", "shape", p.Shape, "err", err)
			return dec, fmt.Errorf("%w: %w", ErrGameOver, err)
		}
		return dec, err
	}
	r.stats.recordLock(res.LinesCleared)

	r.log.Debug("placed",
		"piece", r.game.Pieces(),
		"shape", p.Shape,
		"rotation", c.Rotation,
		"column", c.Column,
		"row", c.Row,
		"lines", res.LinesCleared,
		"score", c.Score,
	)
	return dec, nil
}

// Run cycles at the pace the driver's speed asks for until the game ends,
// maxPieces have been locked (zero means no limit) or ctx is cancelled. Speed
// changes take effect on the next tick. A Pass decision just waits for the
// next tick. It returns nil when the game ends or the limit is reached and
// ctx.Err() on cancellation.
func (r *Runner) Run(ctx context.Context, maxPieces int) error {
	interval := r.driver.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for maxPieces <= 0 || r.game.Pieces() < maxPieces {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.step(); err != nil {
				if errors.Is(err, ErrGameOver) {
					return nil
				}
				return err
			}
			if next := r.driver.Interval(); next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
	return nil
}

// RunUntil cycles as fast as possible until the game ends, maxPieces have
// been locked (zero means no limit) or ctx is cancelled.
func (r *Runner) RunUntil(ctx context.Context, maxPieces int) error {
	for maxPieces <= 0 || r.game.Pieces() < maxPieces {
		if err := ctx.Err(); err != nil {
			return err
		}
		dec, err := r.step()
		if err != nil {
			if errors.Is(err, ErrGameOver) {
				return nil
			}
			return err
		}
		if dec.Kind == agent.Pass {
			return ErrDriverDisabled
		}
	}
	return nil
}

func (r *Runner) step() (agent.Decision, error) {
	dec, err := r.Once()
	if errors.Is(err, ErrGameOver) {
		r.logGameOver()
	}
	return dec, err
}

func (r *Runner) logGameOver() {
	r.log.Info("game over",
		"pieces", r.game.Pieces(),
		"lines", r.game.Lines(),
		"score", r.game.Score(),
		"level", r.game.Level(),
	)
}

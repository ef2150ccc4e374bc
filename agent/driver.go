package agent

import (
	"sync"
	"time"

	"github.com/plus3/stacker/tetris"
)

const (
	MinSpeed     = 1
	MaxSpeed     = 1000
	DefaultSpeed = 100
)

// Config is the host-facing configuration of a Driver.
type Config struct {
	Enabled bool    `json:"enabled"`
	Speed   int     `json:"speed"`
	Weights Weights `json:"weights"`
}

// DefaultConfig returns a disabled driver configuration running at the
// default speed with the default weights.
func DefaultConfig() Config {
	return Config{
		Enabled: false,
		Speed:   DefaultSpeed,
		Weights: DefaultWeights,
	}
}

// DecisionKind tells the host what to do with a Decision.
type DecisionKind int

const (
	// Pass means the driver is disabled and the host keeps control.
	Pass DecisionKind = iota
	// Move carries a placement to apply.
	Move
	// TopOut means no legal placement exists; the game is over.
	TopOut
)

func (k DecisionKind) String() string {
	switch k {
	case Pass:
		return "pass"
	case Move:
		return "move"
	case TopOut:
		return "top-out"
	default:
		return "unknown"
	}
}

// Decision is the driver's answer for one spawned piece.
type Decision struct {
	Kind      DecisionKind
	Candidate Candidate
}

// Driver owns the agent's configuration and answers one decision request per
// spawned piece. Configuration may be changed from another goroutine while a
// decision is in progress; the decision uses the weights it started with.
//
// Driver has no clock of its own. Speed only tells the host how often to ask.
type Driver struct {
	mu      sync.RWMutex
	enabled bool
	speed   int
	weights Weights
}

// NewDriver creates a driver from cfg, clamping the speed into range.
func NewDriver(cfg Config) *Driver {
	return &Driver{
		enabled: cfg.Enabled,
		speed:   clampSpeed(cfg.Speed),
		weights: cfg.Weights,
	}
}

func clampSpeed(n int) int {
	return min(max(n, MinSpeed), MaxSpeed)
}

// SetSpeed stores n clamped into [MinSpeed, MaxSpeed].
func (d *Driver) SetSpeed(n int) {
	d.mu.Lock()
	d.speed = clampSpeed(n)
	d.mu.Unlock()
}

// Speed returns the configured decisions per second.
func (d *Driver) Speed() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.speed
}

// Interval is the pause between decisions that Speed asks the host for.
func (d *Driver) Interval() time.Duration {
	return time.Second / time.Duration(d.Speed())
}

func (d *Driver) Enable() {
	d.mu.Lock()
	d.enabled = true
	d.mu.Unlock()
}

func (d *Driver) Disable() {
	d.mu.Lock()
	d.enabled = false
	d.mu.Unlock()
}

func (d *Driver) Enabled() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.enabled
}

func (d *Driver) SetWeights(w Weights) {
	d.mu.Lock()
	d.weights = w
	d.mu.Unlock()
}

func (d *Driver) Weights() Weights {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.weights
}

// Config returns a snapshot of the current configuration.
func (d *Driver) Config() Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Config{Enabled: d.enabled, Speed: d.speed, Weights: d.weights}
}

// Decide chooses a placement for shape on board. A disabled driver passes
// without searching. The board is only read.
func (d *Driver) Decide(board *tetris.Board, shape tetris.Shape) Decision {
	d.mu.RLock()
	enabled, w := d.enabled, d.weights
	d.mu.RUnlock()

	if !enabled {
		return Decision{Kind: Pass}
	}
	best, ok := SelectBest(board, shape, w)
	if !ok {
		return Decision{Kind: TopOut}
	}
	return Decision{Kind: Move, Candidate: best}
}

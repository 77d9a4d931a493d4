package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/telemetry"
)

// State is the driver lifecycle state.
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateGameOver
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidTransition is returned for a control call the current state does not allow.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrStopped is returned for any control call after Stop.
	ErrStopped = errors.New("driver stopped")
)

// Driver paces a Game from frame timestamps and owns its lifecycle.
// All methods are safe for concurrent use.
type Driver struct {
	mu        sync.Mutex
	game      *Game
	clock     Clock
	maxDelta  float64
	state     State
	last      time.Time
	observers []Observer
	done      chan struct{}
}

// NewDriver builds a game from cfg and wraps it in an idle driver.
// A nil clock uses the system clock.
func NewDriver(cfg *config.Config, opts Options, clock Clock) (*Driver, error) {
	g, err := NewGame(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Driver{
		game:     g,
		clock:    clock,
		maxDelta: cfg.Clock.MaxDelta,
		done:     make(chan struct{}),
	}, nil
}

// Subscribe registers an observer for subsequent reports.
func (d *Driver) Subscribe(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Start begins a new session from idle or after a game over. The arena is
// reset and an initial report is sent to observers.
func (d *Driver) Start() error {
	d.mu.Lock()
	switch d.state {
	case StateStopped:
		d.mu.Unlock()
		return ErrStopped
	case StateRunning, StatePaused:
		state := d.state
		d.mu.Unlock()
		return fmt.Errorf("%w: start while %s", ErrInvalidTransition, state)
	}
	d.startLocked()
	return nil
}

// Restart abandons the current session, if any, and starts a new one.
// Unlike Start it is allowed while running or paused.
func (d *Driver) Restart() error {
	d.mu.Lock()
	if d.state == StateStopped {
		d.mu.Unlock()
		return ErrStopped
	}
	d.startLocked()
	return nil
}

// startLocked resets the arena and enters the running state. It is called
// with d.mu held and releases it before notifying observers.
func (d *Driver) startLocked() {
	d.game.Reset()
	d.state = StateRunning
	d.last = d.clock.Now()
	initial := d.game.result(0, 0)
	observers := d.observersLocked()
	d.mu.Unlock()

	for _, o := range observers {
		o.OnTick(initial)
	}
}

// Pause suspends ticking.
func (d *Driver) Pause() error {
	return d.transition(StateRunning, StatePaused, "pause")
}

// Resume continues ticking. The frame frontier is recaptured so the paused
// interval is excluded from the next dt.
func (d *Driver) Resume() error {
	return d.transition(StatePaused, StateRunning, "resume")
}

func (d *Driver) transition(from, to State, op string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateStopped {
		return ErrStopped
	}
	if d.state != from {
		return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, op, d.state)
	}
	d.state = to
	if to == StateRunning {
		d.last = d.clock.Now()
	}
	slog.Debug("driver_state", "session", d.game.Session(), "state", to.String())
	return nil
}

// Stop ends the driver from any state. Pending input is discarded and Run
// returns. Stopping twice is a no-op.
func (d *Driver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateStopped {
		return nil
	}
	d.state = StateStopped
	d.game.input = inputState{}
	close(d.done)
	return nil
}

// Close stops the driver and flushes run output.
func (d *Driver) Close() error {
	_ = d.Stop()
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.game.Close()
}

// SetTarget queues a steering target for the next tick.
func (d *Driver) SetTarget(x, y float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateStopped {
		return ErrStopped
	}
	d.game.SetTarget(x, y)
	return nil
}

// SetDirection queues a direction input for the next tick.
func (d *Driver) SetDirection(dx, dy float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateStopped {
		return ErrStopped
	}
	d.game.SetDirection(dx, dy)
	return nil
}

// Frame runs one tick for the timestamp now. dt is the time since the
// previous frame, clamped to [0, max_delta]. Returns false without ticking
// unless the driver is running.
func (d *Driver) Frame(now time.Time) (TickResult, bool) {
	d.mu.Lock()
	if d.state != StateRunning {
		d.mu.Unlock()
		return TickResult{}, false
	}

	dt := now.Sub(d.last).Seconds()
	if dt < 0 {
		dt = 0
	} else {
		d.last = now
	}
	if d.maxDelta > 0 && dt > d.maxDelta {
		dt = d.maxDelta
	}

	d.game.perfCollector.RecordFrame()
	res := d.game.Step(dt)

	var over GameOverEvent
	if res.GameOver {
		d.state = StateGameOver
		over, _ = d.game.GameOverEvent()
	}
	observers := d.observersLocked()
	d.mu.Unlock()

	for _, o := range observers {
		o.OnTick(res)
	}
	if res.GameOver {
		for _, o := range observers {
			o.OnGameOver(over)
		}
	}
	return res, true
}

// Run drives frames from the clock at fps until ctx is cancelled or Stop is
// called. It returns ctx.Err() on cancellation and nil after Stop.
func (d *Driver) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.done:
			return nil
		case <-ticker.C:
			d.Frame(d.clock.Now())
		}
	}
}

// Done is closed once the driver stops.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

// Snapshot returns a read-only copy of the arena.
func (d *Driver) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.game.Snapshot()
	s.State = d.state
	return s
}

// Leaderboard returns the ranked finished sessions.
func (d *Driver) Leaderboard() []telemetry.SessionResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.game.Leaderboard()
}

func (d *Driver) observersLocked() []Observer {
	if len(d.observers) == 0 {
		return nil
	}
	out := make([]Observer, len(d.observers))
	copy(out, d.observers)
	return out
}

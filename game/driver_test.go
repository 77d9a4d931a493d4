package game

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/pthm-cable/reef/components"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestDriver(t *testing.T) (*Driver, *ManualClock) {
	t.Helper()
	clock := NewManualClock(epoch)
	d, err := NewDriver(quietConfig(), Options{Seed: 1}, clock)
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d, clock
}

func TestDriverTransitions(t *testing.T) {
	d, _ := newTestDriver(t)

	if d.State() != StateIdle {
		t.Fatalf("initial state = %v, want idle", d.State())
	}
	if err := d.Pause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Pause from idle: %v, want ErrInvalidTransition", err)
	}
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start while running: %v, want ErrInvalidTransition", err)
	}
	if err := d.Resume(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Resume while running: %v, want ErrInvalidTransition", err)
	}
	if err := d.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if err := d.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start while paused: %v, want ErrInvalidTransition", err)
	}
	if err := d.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}

	if err := d.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := d.Stop(); err != nil {
		t.Errorf("second Stop: %v, want nil", err)
	}
	select {
	case <-d.Done():
	default:
		t.Error("Done not closed after Stop")
	}

	if err := d.Start(); !errors.Is(err, ErrStopped) {
		t.Errorf("Start after Stop: %v, want ErrStopped", err)
	}
	if err := d.Resume(); !errors.Is(err, ErrStopped) {
		t.Errorf("Resume after Stop: %v, want ErrStopped", err)
	}
	if err := d.SetTarget(1, 1); !errors.Is(err, ErrStopped) {
		t.Errorf("SetTarget after Stop: %v, want ErrStopped", err)
	}
	if err := d.SetDirection(1, 0); !errors.Is(err, ErrStopped) {
		t.Errorf("SetDirection after Stop: %v, want ErrStopped", err)
	}
	if _, ok := d.Frame(epoch.Add(time.Second)); ok {
		t.Error("Frame ticked after Stop")
	}
}

func TestDriverFrameDelta(t *testing.T) {
	d, clock := newTestDriver(t)

	if _, ok := d.Frame(clock.Now()); ok {
		t.Fatal("Frame ticked before Start")
	}
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		advance time.Duration
		wantDT  float64
	}{
		{"normal frame", 100 * time.Millisecond, 0.1},
		{"stall is clamped", 2 * time.Second, 0.25},
		{"zero elapsed", 0, 0},
	}
	for _, tt := range tests {
		res, ok := d.Frame(clock.Advance(tt.advance))
		if !ok {
			t.Fatalf("%s: Frame did not tick", tt.name)
		}
		if math.Abs(res.DT-tt.wantDT) > 1e-9 {
			t.Errorf("%s: dt = %v, want %v", tt.name, res.DT, tt.wantDT)
		}
	}

	// A timestamp behind the frontier yields dt 0 and keeps the frontier
	res, _ := d.Frame(clock.Now().Add(-time.Second))
	if res.DT != 0 {
		t.Errorf("backwards frame dt = %v, want 0", res.DT)
	}
	res, _ = d.Frame(clock.Advance(50 * time.Millisecond))
	if math.Abs(res.DT-0.05) > 1e-9 {
		t.Errorf("dt after backwards frame = %v, want 0.05", res.DT)
	}
}

func TestDriverPauseExcludesTime(t *testing.T) {
	d, clock := newTestDriver(t)
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}
	d.Frame(clock.Advance(100 * time.Millisecond))

	if err := d.Pause(); err != nil {
		t.Fatal(err)
	}
	if _, ok := d.Frame(clock.Advance(5 * time.Second)); ok {
		t.Error("Frame ticked while paused")
	}
	if err := d.Resume(); err != nil {
		t.Fatal(err)
	}

	res, ok := d.Frame(clock.Advance(50 * time.Millisecond))
	if !ok {
		t.Fatal("Frame did not tick after Resume")
	}
	if math.Abs(res.DT-0.05) > 1e-9 || math.Abs(res.SimTime-0.15) > 1e-9 {
		t.Errorf("dt/simTime = %v/%v, want 0.05/0.15", res.DT, res.SimTime)
	}
	if snap := d.Snapshot(); snap.State != StateRunning {
		t.Errorf("snapshot state = %v, want running", snap.State)
	}
}

func TestDriverObserversAndRestart(t *testing.T) {
	d, clock := newTestDriver(t)

	var ticks []TickResult
	var overs []GameOverEvent
	d.Subscribe(ObserverFuncs{
		Tick:     func(r TickResult) { ticks = append(ticks, r) },
		GameOver: func(e GameOverEvent) { overs = append(overs, e) },
	})

	if err := d.Start(); err != nil {
		t.Fatal(err)
	}
	if len(ticks) != 1 || ticks[0].Tick != 0 {
		t.Fatalf("initial report = %+v, want one tick-0 report", ticks)
	}
	first := ticks[0].Session

	d.Frame(clock.Advance(16 * time.Millisecond))
	d.game.spawnFishAt(components.KindEnemy, d.game.centre(), 25, 0)
	res, _ := d.Frame(clock.Advance(16 * time.Millisecond))

	if !res.GameOver || d.State() != StateGameOver {
		t.Fatalf("game over = %v, state = %v", res.GameOver, d.State())
	}
	if len(ticks) != 3 {
		t.Errorf("tick reports = %d, want 3", len(ticks))
	}
	if len(overs) != 1 || overs[0].KillerSize != 25 || overs[0].Tick != 2 {
		t.Fatalf("game over reports = %+v", overs)
	}
	if _, ok := d.Frame(clock.Advance(time.Second)); ok {
		t.Error("Frame ticked after game over")
	}
	if err := d.Pause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Pause after game over: %v, want ErrInvalidTransition", err)
	}

	if err := d.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	last := ticks[len(ticks)-1]
	if last.Session == first || last.Tick != 0 || last.Score != 0 {
		t.Errorf("restart report = %+v, want fresh session", last)
	}
	if len(d.Leaderboard()) != 1 {
		t.Errorf("leaderboard entries = %d, want 1", len(d.Leaderboard()))
	}
}

func TestDriverObserverMayCallBack(t *testing.T) {
	d, clock := newTestDriver(t)
	restarts := 0
	d.Subscribe(ObserverFuncs{GameOver: func(GameOverEvent) {
		if err := d.Start(); err == nil {
			restarts++
		}
	}})

	if err := d.Start(); err != nil {
		t.Fatal(err)
	}
	d.game.spawnFishAt(components.KindEnemy, d.game.centre(), 25, 0)
	d.Frame(clock.Advance(16 * time.Millisecond))

	if restarts != 1 || d.State() != StateRunning {
		t.Errorf("restarts = %d, state = %v, want 1/running", restarts, d.State())
	}
}

func TestDriverRun(t *testing.T) {
	t.Run("stop", func(t *testing.T) {
		d, _ := newTestDriver(t)
		if err := d.Start(); err != nil {
			t.Fatal(err)
		}
		errc := make(chan error, 1)
		go func() { errc <- d.Run(context.Background(), 240) }()

		time.Sleep(20 * time.Millisecond)
		d.Stop()
		select {
		case err := <-errc:
			if err != nil {
				t.Errorf("Run after Stop = %v, want nil", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return after Stop")
		}
	})

	t.Run("cancel", func(t *testing.T) {
		d, _ := newTestDriver(t)
		ctx, cancel := context.WithCancel(context.Background())
		errc := make(chan error, 1)
		go func() { errc <- d.Run(ctx, 240) }()

		cancel()
		select {
		case err := <-errc:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Run after cancel = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return after cancel")
		}
	})
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateIdle:     "idle",
		StateRunning:  "running",
		StatePaused:   "paused",
		StateGameOver: "game_over",
		StateStopped:  "stopped",
		State(99):     "unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestDriverRestart(t *testing.T) {
	d, clock := newTestDriver(t)
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}
	d.Frame(clock.Advance(100 * time.Millisecond))
	first := d.Snapshot().Session
	if err := d.Pause(); err != nil {
		t.Fatal(err)
	}

	if err := d.Restart(); err != nil {
		t.Fatalf("Restart while paused: %v", err)
	}
	snap := d.Snapshot()
	if snap.Session == first || snap.Tick != 0 || snap.State != StateRunning {
		t.Errorf("after restart session/tick/state = %s/%d/%v", snap.Session, snap.Tick, snap.State)
	}

	d.Stop()
	if err := d.Restart(); !errors.Is(err, ErrStopped) {
		t.Errorf("Restart after Stop: %v, want ErrStopped", err)
	}
}

func TestDriverRestartConcurrentWithStart(t *testing.T) {
	d, _ := newTestDriver(t)
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 4*50)
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				errs <- d.Restart()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = d.Start()
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Restart: %v, want nil", err)
		}
	}
	if d.State() != StateRunning {
		t.Errorf("state = %v, want running", d.State())
	}
}

func TestFrameTime(t *testing.T) {
	if got := FrameTime(epoch, 600, 60); !got.Equal(epoch.Add(10 * time.Second)) {
		t.Errorf("frame 600 at 60fps = %v, want start+10s", got.Sub(epoch))
	}
	if got := FrameTime(epoch, 1, 60); got.Sub(epoch) != 16666666*time.Nanosecond {
		t.Errorf("frame 1 at 60fps = %v", got.Sub(epoch))
	}
	if got := FrameTime(epoch, 30, 0); !got.Equal(epoch.Add(500 * time.Millisecond)) {
		t.Errorf("zero fps should fall back to 60, got %v", got.Sub(epoch))
	}
}

func TestDriverSpawnsOnSimulatedSecond(t *testing.T) {
	cfg := quietConfig()
	cfg.Small.SpawnInterval = 10
	clock := NewManualClock(epoch)
	d, err := NewDriver(cfg, Options{Seed: 1}, clock)
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}

	for n := int64(1); n <= 600; n++ {
		now := FrameTime(epoch, n, 60)
		clock.Set(now)
		res, ok := d.Frame(now)
		if !ok {
			t.Fatalf("frame %d did not tick", n)
		}
		if n < 600 && res.Counts.Small != 0 {
			t.Fatalf("small fish spawned early at frame %d", n)
		}
		if n == 600 {
			if res.Counts.Small != 1 {
				t.Errorf("small = %d at frame 600, want 1", res.Counts.Small)
			}
			if math.Abs(res.SimTime-10) > 1e-9 {
				t.Errorf("sim time = %v, want 10", res.SimTime)
			}
		}
	}
}

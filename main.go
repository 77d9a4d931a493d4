package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/camera"
	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/game"
	"github.com/pthm-cable/reef/renderer"
	"github.com/pthm-cable/reef/telemetry"
	"github.com/pthm-cable/reef/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, steered by the autopilot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks across all sessions (0 = unlimited)")
	maxSessions := flag.Int("max-sessions", 0, "Headless: stop after N finished sessions (0 = unlimited)")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9100)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *metricsAddr != "" {
		opts.Metrics = telemetry.NewMetrics()
		srv := serveMetrics(*metricsAddr, opts.Metrics)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("metrics server shutdown", "error", err)
			}
		}()
	}

	if *headless {
		err = runHeadless(ctx, cfg, opts, *maxTicks, *maxSessions)
	} else {
		err = runWindow(cfg, opts, *maxTicks)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func serveMetrics(addr string, m *telemetry.Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		slog.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}

// runHeadless drives the arena from a synthetic clock at target_fps frames
// per simulated second, with the autopilot steering. Sessions restart
// after game over.
func runHeadless(ctx context.Context, cfg *config.Config, opts game.Options, maxTicks int64, maxSessions int) error {
	start := time.Unix(0, 0)
	clock := game.NewManualClock(start)
	d, err := game.NewDriver(cfg, opts, clock)
	if err != nil {
		return err
	}
	defer d.Close()

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	pilot := game.AutopilotParams{FleeRadius: cfg.Input.JoystickReach / 2}

	finished := 0
	d.Subscribe(game.ObserverFuncs{GameOver: func(game.GameOverEvent) { finished++ }})

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"max_sessions", maxSessions,
		"fps", fps,
	)

	if err := d.Start(); err != nil {
		return err
	}

	var total, frames int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if x, y, ok := game.Autopilot(d.Snapshot(), pilot); ok {
			d.SetTarget(x, y)
		}
		frames++
		now := game.FrameTime(start, frames, fps)
		clock.Set(now)
		if _, ok := d.Frame(now); ok {
			total++
		}

		if maxTicks > 0 && total >= maxTicks {
			slog.Info("max ticks reached", "ticks", total)
			return nil
		}
		if d.State() == game.StateGameOver {
			if maxSessions > 0 && finished >= maxSessions {
				slog.Info("max sessions reached", "sessions", finished)
				return nil
			}
			if err := d.Start(); err != nil {
				return err
			}
		}
	}
}

// runWindow opens the viewer. Mouse steers toward the cursor, arrows or
// WASD steer by direction, Space pauses and R restarts.
func runWindow(cfg *config.Config, opts game.Options, maxTicks int64) error {
	screenW, screenH := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	rl.InitWindow(screenW, screenH, "Reef")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	d, err := game.NewDriver(cfg, opts, game.SystemClock{})
	if err != nil {
		return err
	}
	defer d.Close()

	cam := camera.New(float64(screenW), float64(screenH), cfg.Derived.WorldW, cfg.Derived.WorldH)
	arena := renderer.NewArenaRenderer()
	hud := ui.NewHUD()
	controls := ui.NewControlsPanel(ui.AnchorTopRight)
	gameOver := ui.NewGameOverPanel(5)

	var lastOver game.GameOverEvent
	d.Subscribe(game.ObserverFuncs{GameOver: func(ev game.GameOverEvent) { lastOver = ev }})

	if err := d.Start(); err != nil {
		return err
	}

	var total int64
	keyHeld := false
	for !rl.WindowShouldClose() {
		// Input
		dx, dy := keyDirection()
		switch {
		case dx != 0 || dy != 0:
			d.SetDirection(dx, dy)
			keyHeld = true
		case keyHeld:
			d.SetDirection(0, 0)
			keyHeld = false
		case rl.IsMouseButtonDown(rl.MouseButtonLeft):
			m := rl.GetMousePosition()
			wx, wy := cam.ScreenToWorld(float64(m.X), float64(m.Y))
			d.SetTarget(wx, wy)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			cam.ZoomBy(1 + float64(wheel)*0.1)
		}

		action := ui.ActionNone
		if rl.IsKeyPressed(rl.KeySpace) {
			action = togglePause(d.State())
		}
		if rl.IsKeyPressed(rl.KeyR) {
			action = ui.ActionRestart
		}

		if _, ok := d.Frame(time.Now()); ok {
			total++
		}

		snap := d.Snapshot()
		if cam.Zoom > cam.FitZoom {
			cam.Follow(snap.Player.X, snap.Player.Y)
		} else {
			cam.Reset()
		}

		// Draw
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		arena.Draw(snap, cam)
		hud.Draw(ui.HUDData{
			Score:      snap.Score,
			PlayerSize: snap.Player.Size,
			Tick:       snap.Tick,
			SimTime:    snap.SimTime,
			Counts: game.PoolCounts{
				Small:   len(snap.Small),
				Enemy:   len(snap.Enemy),
				Food:    len(snap.Food),
				Bubbles: len(snap.Bubbles),
			},
			SmallCap: cfg.Small.Cap,
			EnemyCap: cfg.Enemy.Cap,
			FoodCap:  cfg.Food.Cap,
			FPS:      rl.GetFPS(),
			State:    snap.State,
		})
		if a := controls.Draw(snap.State, screenW, screenH); a != ui.ActionNone {
			action = a
		}
		if snap.State == game.StateGameOver {
			if gameOver.Draw(lastOver, d.Leaderboard(), screenW, screenH) == ui.ActionRestart {
				action = ui.ActionRestart
			}
		}
		hud.DrawControls(screenW, screenH, "Mouse: steer | Arrows/WASD: swim | Wheel: zoom | SPACE: Pause | R: Restart")

		rl.EndDrawing()

		if err := apply(d, action); err != nil {
			slog.Warn("control rejected", "error", err)
		}

		if maxTicks > 0 && total >= maxTicks {
			break
		}
	}
	return nil
}

// keyDirection reads the arrow and WASD keys as a direction vector.
func keyDirection() (dx, dy float64) {
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		dx--
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		dx++
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		dy--
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		dy++
	}
	return dx, dy
}

func togglePause(s game.State) ui.Action {
	switch s {
	case game.StateRunning:
		return ui.ActionPause
	case game.StatePaused:
		return ui.ActionResume
	}
	return ui.ActionNone
}

func apply(d *game.Driver, a ui.Action) error {
	switch a {
	case ui.ActionPause:
		return d.Pause()
	case ui.ActionResume:
		return d.Resume()
	case ui.ActionRestart:
		return d.Restart()
	}
	return nil
}

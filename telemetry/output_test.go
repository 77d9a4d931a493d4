package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/reef/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Nil manager accepts every write
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("nil WriteTelemetry: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := om.WriteTelemetry(WindowStats{Session: "s", WindowEndTick: int64(i * 600), Score: i}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Session: "s", Type: BookmarkScoreSurge, Tick: 600, Description: "surge"}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
	}
	if err := om.WriteSession(SessionResult{Session: "s", Score: 9, Killer: "enemy"}); err != nil {
		t.Fatalf("WriteSession: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, "s", 600); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	lb := NewLeaderboard(2)
	lb.Consider(SessionResult{Session: "s", Score: 9})
	if err := om.WriteLeaderboard(lb); err != nil {
		t.Fatalf("WriteLeaderboard: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "session,window_end,sim_time,score") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "session,window_end") != 1 {
		t.Error("header should be written once")
	}

	for _, name := range []string{"bookmarks.csv", "sessions.csv", "perf.csv", "config.yaml", "leaderboard.json"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
	if om.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", om.Dir(), dir)
	}
}

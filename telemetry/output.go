package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/reef/config"
)

// csvStream is one append-only CSV file; the header goes out with the first record.
type csvStream struct {
	name          string
	file          *os.File
	headerWritten bool
}

func openStream(dir, name string) (*csvStream, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvStream{name: name, file: f}, nil
}

// writeRecord appends a single record to s.
func writeRecord[T any](s *csvStream, record T) error {
	records := []T{record}

	if !s.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, s.file); err != nil {
			return fmt.Errorf("writing %s: %w", s.name, err)
		}
		s.headerWritten = true
		return nil
	}

	// Subsequent writes skip headers
	if err := gocsv.MarshalWithoutHeaders(records, s.file); err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

// OutputManager handles structured run output with CSV logging.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir       string
	telemetry *csvStream
	perf      *csvStream
	bookmarks *csvStream
	sessions  *csvStream
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	streams := []struct {
		dst  **csvStream
		name string
	}{
		{&om.telemetry, "telemetry.csv"},
		{&om.perf, "perf.csv"},
		{&om.bookmarks, "bookmarks.csv"},
		{&om.sessions, "sessions.csv"},
	}
	for _, s := range streams {
		stream, err := openStream(dir, s.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*s.dst = stream
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return writeRecord(om.telemetry, stats)
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, session string, windowEnd int64) error {
	if om == nil {
		return nil
	}
	return writeRecord(om.perf, stats.ToCSV(session, windowEnd))
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return writeRecord(om.bookmarks, b)
}

// WriteSession writes a finished session to sessions.csv.
func (om *OutputManager) WriteSession(r SessionResult) error {
	if om == nil {
		return nil
	}
	return writeRecord(om.sessions, r)
}

// WriteLeaderboard saves the leaderboard as JSON.
func (om *OutputManager) WriteLeaderboard(lb *Leaderboard) error {
	if om == nil || lb == nil {
		return nil
	}

	data, err := lb.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling leaderboard: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "leaderboard.json"), data, 0644); err != nil {
		return fmt.Errorf("writing leaderboard.json: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, s := range []*csvStream{om.telemetry, om.perf, om.bookmarks, om.sessions} {
		if s == nil {
			continue
		}
		if err := s.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

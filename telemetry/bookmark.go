package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/reef/components"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSizeMilestone  BookmarkType = "size_milestone"
	BookmarkScoreSurge     BookmarkType = "score_surge"
	BookmarkPoolCollapse   BookmarkType = "pool_collapse"
	BookmarkFoodSaturation BookmarkType = "food_saturation"
)

// saturationWindows is how many consecutive full-food windows trigger a bookmark.
const saturationWindows = 3

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Session     string       `csv:"session"`
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"session", b.Session,
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in a session.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	milestones []float64
	foodCap    int

	// State tracking, reset per session
	session        string
	milestonesHit  int                      // milestones already passed
	poolPeak       [components.NumKinds]int // peak pool size since last collapse
	saturatedCount int                      // consecutive windows with food at cap
}

// NewBookmarkDetector creates a detector with the given history size.
// milestones must be ascending player sizes; foodCap is the food pool cap.
func NewBookmarkDetector(historySize int, milestones []float64, foodCap int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for rolling averages
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		milestones:  milestones,
		foodCap:     foodCap,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	if stats.Session != bd.session {
		bd.resetSession(stats.Session)
	}

	var bookmarks []Bookmark

	bookmarks = append(bookmarks, bd.checkMilestones(stats)...)

	if b := bd.checkScoreSurge(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	for k := 0; k < components.NumKinds; k++ {
		if b := bd.checkPoolCollapse(stats, components.Kind(k)); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	if b := bd.checkFoodSaturation(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	return bookmarks
}

func (bd *BookmarkDetector) resetSession(session string) {
	bd.session = session
	bd.historyIdx = 0
	bd.historyFull = false
	bd.milestonesHit = 0
	bd.poolPeak = [components.NumKinds]int{}
	bd.saturatedCount = 0
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkMilestones(stats WindowStats) []Bookmark {
	var out []Bookmark
	for bd.milestonesHit < len(bd.milestones) && stats.PlayerSize >= bd.milestones[bd.milestonesHit] {
		m := bd.milestones[bd.milestonesHit]
		bd.milestonesHit++
		out = append(out, Bookmark{
			Session:     stats.Session,
			Type:        BookmarkSizeMilestone,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Player reached size %.0f (now %.1f, score %d)", m, stats.PlayerSize, stats.Score),
		})
	}
	return out
}

func (bd *BookmarkDetector) checkScoreSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.ScoreGained
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	gained := float64(stats.ScoreGained)
	if gained > avg*2.0 && stats.ScoreGained >= 10 {
		return &Bookmark{
			Session:     stats.Session,
			Type:        BookmarkScoreSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Scored %d in one window, %.1fx average (%.1f)", stats.ScoreGained, gained/avg, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPoolCollapse(stats WindowStats, kind components.Kind) *Bookmark {
	count := stats.SmallCount
	if kind == components.KindEnemy {
		count = stats.EnemyCount
	}

	peak := bd.poolPeak[kind]
	if count > peak {
		bd.poolPeak[kind] = count
		return nil
	}
	if peak == 0 {
		return nil
	}

	drop := 1.0 - float64(count)/float64(peak)
	if drop > 0.50 && peak-count >= 5 {
		// Reset peak after collapse
		bd.poolPeak[kind] = count

		return &Bookmark{
			Session:     stats.Session,
			Type:        BookmarkPoolCollapse,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%s pool collapsed %.0f%% from peak %d to %d", kind, drop*100, peak, count),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkFoodSaturation(stats WindowStats) *Bookmark {
	if bd.foodCap <= 0 || stats.FoodCount < bd.foodCap {
		bd.saturatedCount = 0
		return nil
	}

	bd.saturatedCount++
	if bd.saturatedCount == saturationWindows { // trigger exactly once per streak
		return &Bookmark{
			Session:     stats.Session,
			Type:        BookmarkFoodSaturation,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Food held at cap %d for %d windows", bd.foodCap, saturationWindows),
		}
	}

	return nil
}

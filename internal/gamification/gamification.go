// Package gamification derives the level progress bar from the server's
// opaque xp and level counters.
package gamification

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/models"
)

// Overlay is everything the level display needs
type Overlay struct {
	Level    int
	XP       int
	XPNeeded int
	Percent  float64 // always within [0, 100]
}

// XPNeeded is the client-assumed threshold for the next level
func XPNeeded(level int) int {
	if level < 1 {
		level = 1
	}
	return level * constants.XPPerLevel
}

// Percent returns min(100, 100*xp/XPNeeded(level)), floored at 0
func Percent(xp, level int) float64 {
	if xp <= 0 {
		return 0
	}
	p := 100 * float64(xp) / float64(XPNeeded(level))
	return math.Min(100, p)
}

// FromStats builds an overlay from server counters
func FromStats(stats models.GamificationStats) Overlay {
	level := stats.Level
	if level < 1 {
		level = 1
	}
	xp := stats.XP
	if xp < 0 {
		xp = 0
	}
	return Overlay{
		Level:    level,
		XP:       xp,
		XPNeeded: XPNeeded(level),
		Percent:  Percent(xp, level),
	}
}

// PercentLabel renders the bar width, e.g. "75%". The value is floored so the
// bar never reads 100% before the threshold is actually met.
func (o Overlay) PercentLabel() string {
	return fmt.Sprintf("%d%%", int(math.Floor(o.Percent)))
}

// Ratio is Percent as a fraction for progress widgets
func (o Overlay) Ratio() float64 {
	return o.Percent / 100
}

// Cells maps the percentage onto a bar of the given width
func (o Overlay) Cells(width int) int {
	if width <= 0 {
		return 0
	}
	return int(math.Floor(o.Ratio() * float64(width)))
}

// StatusSource is where the counters come from; the status endpoint doubles
// as the session check.
type StatusSource interface {
	Status(ctx context.Context) (models.Status, error)
}

// Tracker holds the last overlay. Every refresh overwrites it completely.
type Tracker struct {
	src StatusSource

	mu      sync.RWMutex
	current Overlay
	loaded  bool
}

// NewTracker returns a tracker reading from src
func NewTracker(src StatusSource) *Tracker {
	return &Tracker{src: src}
}

// Refresh re-reads the status. When the user is not logged in the previous
// overlay is left untouched and ok is false.
func (t *Tracker) Refresh(ctx context.Context) (overlay Overlay, ok bool, err error) {
	status, err := t.src.Status(ctx)
	if err != nil {
		return Overlay{}, false, err
	}
	if !status.LoggedIn {
		return Overlay{}, false, nil
	}

	overlay = FromStats(status.Stats())
	t.mu.Lock()
	t.current = overlay
	t.loaded = true
	t.mu.Unlock()
	return overlay, true, nil
}

// Current returns the last overlay and whether one has been loaded
func (t *Tracker) Current() (Overlay, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current, t.loaded
}

// Reset forgets the last overlay
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.current = Overlay{}
	t.loaded = false
	t.mu.Unlock()
}

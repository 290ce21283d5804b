package gamification

import (
	"context"
	"errors"
	"testing"

	"github.com/julianstephens/habitdash/internal/models"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		xp    int
		level int
		want  float64
	}{
		{"zero xp", 0, 1, 0},
		{"half way level one", 50, 1, 50},
		{"scenario level two", 150, 2, 75},
		{"exact threshold", 200, 2, 100},
		{"late level up clamps", 450, 2, 100},
		{"negative xp floors", -10, 3, 0},
		{"zero level treated as one", 50, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.xp, tt.level); got != tt.want {
				t.Errorf("Percent(%d, %d) = %v, want %v", tt.xp, tt.level, got, tt.want)
			}
		})
	}
}

func TestPercentAlwaysInRange(t *testing.T) {
	for level := 1; level <= 20; level++ {
		for xp := 0; xp <= 3000; xp += 7 {
			p := Percent(xp, level)
			if p < 0 || p > 100 {
				t.Fatalf("Percent(%d, %d) = %v out of [0, 100]", xp, level, p)
			}
		}
	}
}

func TestFromStatsScenario(t *testing.T) {
	o := FromStats(models.GamificationStats{XP: 150, Level: 2})

	if o.Level != 2 || o.XP != 150 || o.XPNeeded != 200 {
		t.Errorf("FromStats() = %+v", o)
	}
	if o.PercentLabel() != "75%" {
		t.Errorf("PercentLabel() = %q, want 75%%", o.PercentLabel())
	}
	if o.Cells(40) != 30 {
		t.Errorf("Cells(40) = %d, want 30", o.Cells(40))
	}
}

func TestPercentLabelFloors(t *testing.T) {
	o := FromStats(models.GamificationStats{XP: 299, Level: 3})
	if o.PercentLabel() != "99%" {
		t.Errorf("PercentLabel() = %q, want 99%%", o.PercentLabel())
	}
}

type fakeStatus struct {
	status models.Status
	err    error
	calls  int
}

func (f *fakeStatus) Status(context.Context) (models.Status, error) {
	f.calls++
	return f.status, f.err
}

func intPtr(i int) *int { return &i }

func TestTrackerRefresh(t *testing.T) {
	src := &fakeStatus{status: models.Status{LoggedIn: true, Username: "amy", XP: intPtr(150), Level: intPtr(2)}}
	tr := NewTracker(src)

	if _, ok := tr.Current(); ok {
		t.Error("Current() reported loaded before any refresh")
	}

	o, ok, err := tr.Refresh(context.Background())
	if err != nil || !ok {
		t.Fatalf("Refresh() = %v, %v", ok, err)
	}
	if o.PercentLabel() != "75%" {
		t.Errorf("Refresh() overlay = %+v", o)
	}

	// Full overwrite, nothing accumulated
	src.status = models.Status{LoggedIn: true, XP: intPtr(10), Level: intPtr(1)}
	o, _, _ = tr.Refresh(context.Background())
	if o.XP != 10 || o.Level != 1 || o.XPNeeded != 100 {
		t.Errorf("second Refresh() overlay = %+v", o)
	}
}

func TestTrackerRefreshLoggedOutKeepsPrevious(t *testing.T) {
	src := &fakeStatus{status: models.Status{LoggedIn: true, XP: intPtr(20), Level: intPtr(1)}}
	tr := NewTracker(src)
	tr.Refresh(context.Background())

	src.status = models.Status{LoggedIn: false}
	_, ok, err := tr.Refresh(context.Background())
	if err != nil || ok {
		t.Errorf("Refresh() = %v, %v; want not ok", ok, err)
	}
	if cur, _ := tr.Current(); cur.XP != 20 {
		t.Errorf("Current() = %+v, want previous overlay", cur)
	}
}

func TestTrackerRefreshError(t *testing.T) {
	boom := errors.New("boom")
	tr := NewTracker(&fakeStatus{err: boom})
	if _, _, err := tr.Refresh(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Refresh() error = %v, want %v", err, boom)
	}
}

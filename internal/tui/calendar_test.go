package tui

import (
	"strings"
	"testing"
	"time"

	"shoetracker/internal/analysis"
	"shoetracker/internal/config"
	"shoetracker/internal/service"
	"shoetracker/internal/store"
	"shoetracker/internal/units"
)

var calendarNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func TestRenderMonthCalendar(t *testing.T) {
	runs := []time.Time{
		time.Date(2024, 5, 3, 7, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 3, 18, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 14, 7, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 30, 7, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name     string
		cal      analysis.Calendar
		header   string
		firstRow string
	}{
		{
			name:     "monday first",
			cal:      analysis.ISOCalendar(time.UTC),
			header:   "Mo  Tu  We  Th  Fr  Sa  Su",
			firstRow: "         1   2   3•  4   5",
		},
		{
			name:     "sunday first",
			cal:      analysis.Calendar{Location: time.UTC, FirstWeekday: time.Sunday, MinDaysInFirstWeek: 1},
			header:   "Su  Mo  Tu  We  Th  Fr  Sa",
			firstRow: "             1   2   3•  4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderMonthCalendar(tt.cal, calendarNow, runs, calendarNow)
			lines := strings.Split(got, "\n")

			if !strings.Contains(lines[0], "May 2024") {
				t.Errorf("title = %q, want May 2024", lines[0])
			}
			if lines[1] != tt.header {
				t.Errorf("header = %q, want %q", lines[1], tt.header)
			}
			if lines[2] != tt.firstRow {
				t.Errorf("first week = %q, want %q", lines[2], tt.firstRow)
			}
			if !strings.Contains(got, "14•") {
				t.Error("run on the 14th not marked")
			}
			if strings.Contains(got, "30•") {
				t.Error("run from April marked in May")
			}
			if n := strings.Count(got, runMarker); n != 2 {
				t.Errorf("%d marked days, want 2", n)
			}
		})
	}
}

func loadedDetail(t *testing.T) DetailModel {
	t.Helper()

	cal := analysis.ISOCalendar(time.UTC)
	shoe := store.Shoe{
		ID:             "s1",
		Name:           "Pegasus",
		Purchased:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		TargetDistance: 600,
	}
	workouts := []store.Workout{
		{ID: "w2", ExternalID: "strava:2", Date: time.Date(2024, 5, 3, 7, 0, 0, 0, time.UTC), DistanceKm: 8},
		{ID: "w1", ExternalID: "strava:1", Date: time.Date(2024, 4, 28, 7, 0, 0, 0, time.UTC), DistanceKm: 10},
	}
	detail := &service.ShoeDetail{
		Shoe:     shoe,
		Metrics:  analysis.ComputeShoeMetrics(shoe, workouts, calendarNow),
		Insights: analysis.BuildInsights(shoe, workouts, cal, calendarNow),
		Workouts: workouts,
	}

	m := DetailModel{
		conv:    units.New(config.UnitsMetric, "en-GB"),
		cal:     cal,
		loading: true,
		now:     func() time.Time { return calendarNow },
	}
	updated, _ := m.Update(shoeDetailLoadedMsg{detail: detail})
	return updated.(DetailModel)
}

func TestDetailCalendarChangesMonth(t *testing.T) {
	m := loadedDetail(t)

	got := m.renderCalendar()
	if !strings.Contains(got, "May 2024") || !strings.Contains(got, " 3•") {
		t.Errorf("initial calendar should show May with the 3rd marked:\n%s", got)
	}
	if !strings.Contains(got, "Run days (2)") {
		t.Errorf("calendar title missing run day count:\n%s", got)
	}

	updated, _ := m.Update(runeKey('<'))
	m = updated.(DetailModel)
	got = m.renderCalendar()
	if !strings.Contains(got, "April 2024") || !strings.Contains(got, "28•") {
		t.Errorf("previous month should show April with the 28th marked:\n%s", got)
	}

	for range 2 {
		updated, _ = m.Update(runeKey('>'))
		m = updated.(DetailModel)
	}
	got = m.renderCalendar()
	if !strings.Contains(got, "June 2024") || strings.Contains(got, runMarker) {
		t.Errorf("June should have no marked days:\n%s", got)
	}
}

func TestDetailCalendarKeepsMonthOnReload(t *testing.T) {
	m := loadedDetail(t)

	updated, _ := m.Update(runeKey('<'))
	m = updated.(DetailModel)

	updated, _ = m.Update(shoeDetailLoadedMsg{detail: m.detail})
	m = updated.(DetailModel)
	if m.month.Month() != time.April {
		t.Errorf("month after reload = %v, want April", m.month.Month())
	}
}

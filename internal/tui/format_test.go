package tui

import (
	"strings"
	"testing"
	"time"

	"shoetracker/internal/analysis"
	"shoetracker/internal/config"
	"shoetracker/internal/units"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m"},
		{45 * time.Minute, "45m"},
		{time.Hour + 5*time.Minute, "1h 5m"},
		{26*time.Hour + 59*time.Second, "26h 0m"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Pegasus", 10, "Pegasus"},
		{"Endorphin Speed 3", 10, "Endorph..."},
		{"Über-Laufschuh", 8, "Über-..."},
	}

	for _, tt := range tests {
		if got := truncateName(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateName(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestRelativeDay(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	if got := relativeDay(nil, now); got != "never" {
		t.Errorf("relativeDay(nil) = %q, want never", got)
	}

	then := now.AddDate(0, 0, -3)
	if got := relativeDay(&then, now); got != "3 days ago" {
		t.Errorf("relativeDay(-3d) = %q, want %q", got, "3 days ago")
	}
}

func TestFormatDaysRemaining(t *testing.T) {
	one, many := 1, 42
	tests := []struct {
		days *int
		want string
	}{
		{nil, "-"},
		{&one, "1 day"},
		{&many, "42 days"},
	}

	for _, tt := range tests {
		if got := formatDaysRemaining(tt.days); got != tt.want {
			t.Errorf("formatDaysRemaining = %q, want %q", got, tt.want)
		}
	}
}

func TestShoeStatus(t *testing.T) {
	tests := []struct {
		name string
		m    analysis.ShoeMetrics
		want string
	}{
		{"fresh", analysis.ShoeMetrics{Progress: 10}, ""},
		{"nearly worn", analysis.ShoeMetrics{Progress: 85, CloseToExpiration: true}, "nearly worn"},
		{"expired", analysis.ShoeMetrics{Progress: 120, HasExpired: true}, "worn out"},
		{"archived wins", analysis.ShoeMetrics{HasExpired: true, IsArchived: true}, "retired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shoeStatus(tt.m); got != tt.want {
				t.Errorf("shoeStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDownsample(t *testing.T) {
	data := make([]float64, 200)
	for i := range data {
		data[i] = float64(i)
	}

	got := downsample(data, 50)
	if len(got) != 50 {
		t.Fatalf("len = %d, want 50", len(got))
	}
	if got[0] != 0 || got[49] != 199 {
		t.Errorf("endpoints = %v, %v, want 0, 199", got[0], got[49])
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("downsampled series not monotonic at %d: %v < %v", i, got[i], got[i-1])
		}
	}

	short := []float64{1, 2, 3}
	if got := downsample(short, 50); len(got) != 3 {
		t.Errorf("short series resized to %d", len(got))
	}
}

func TestSeriesConvertUnits(t *testing.T) {
	conv := units.New(config.UnitsImperial, "en-US")
	points := []analysis.MileagePoint{{Total: 0}, {Total: 10}}

	got := cumulativeSeries(points, conv)
	if got[1] < 6.21 || got[1] > 6.22 {
		t.Errorf("cumulative 10 km = %v mi, want ~6.21", got[1])
	}

	weeks := []analysis.WeekMileage{{Total: 5}}
	if got := weeklySeries(weeks, units.New(config.UnitsMetric, "en-US")); got[0] != 5 {
		t.Errorf("weekly metric = %v, want 5", got[0])
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		percent    float64
		wantFilled int
	}{
		{0, 0},
		{0.5, 5},
		{1.7, 10},
		{-1, 0},
	}

	for _, tt := range tests {
		bar := RenderProgressBar(tt.percent, 10, false, false)
		filled := strings.Count(bar, "█")
		empty := strings.Count(bar, "░")
		if filled != tt.wantFilled || filled+empty != 10 {
			t.Errorf("RenderProgressBar(%v) = %d filled, %d empty, want %d filled of 10", tt.percent, filled, empty, tt.wantFilled)
		}
	}
}

func TestSetThemeAcceptsEveryOption(t *testing.T) {
	defer SetTheme(config.ThemeSystem)

	for _, theme := range config.ThemeOptions() {
		SetTheme(theme)
		if out := RenderKeyHelp("q", "Quit"); !strings.Contains(out, "Quit") {
			t.Errorf("theme %s: RenderKeyHelp = %q", theme, out)
		}
	}
}

package analysis

import (
	"testing"
	"time"

	"golang.org/x/text/language"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var sundayCalendar = Calendar{Location: time.UTC, FirstWeekday: time.Sunday, MinDaysInFirstWeek: 1}

func TestWeekStart(t *testing.T) {
	iso := ISOCalendar(time.UTC)
	wed := time.Date(2024, 5, 15, 18, 45, 0, 0, time.UTC)

	if got := iso.WeekStart(wed); !got.Equal(date(2024, 5, 13)) {
		t.Errorf("ISO WeekStart = %v, want Monday 2024-05-13", got)
	}
	if got := sundayCalendar.WeekStart(wed); !got.Equal(date(2024, 5, 12)) {
		t.Errorf("Sunday WeekStart = %v, want Sunday 2024-05-12", got)
	}
	if got := iso.WeekStart(date(2024, 5, 13)); !got.Equal(date(2024, 5, 13)) {
		t.Errorf("WeekStart on first weekday = %v, want same day", got)
	}
}

func TestWeekISO(t *testing.T) {
	iso := ISOCalendar(time.UTC)

	tests := []struct {
		day  time.Time
		want WeekKey
	}{
		{date(2024, 1, 1), WeekKey{2024, 1}},
		{date(2024, 4, 29), WeekKey{2024, 18}},
		{date(2024, 12, 30), WeekKey{2025, 1}},
		{date(2026, 1, 1), WeekKey{2026, 1}},
		{date(2027, 1, 1), WeekKey{2026, 53}},
		{date(2027, 1, 3), WeekKey{2026, 53}},
		{date(2027, 1, 4), WeekKey{2027, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.day.Format("2006-01-02"), func(t *testing.T) {
			if got := iso.Week(tt.day); got != tt.want {
				t.Errorf("Week(%s) = %+v, want %+v", tt.day.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestWeekSundayFirst(t *testing.T) {
	tests := []struct {
		day  time.Time
		want WeekKey
	}{
		{date(2025, 12, 31), WeekKey{2026, 1}},
		{date(2026, 1, 3), WeekKey{2026, 1}},
		{date(2026, 1, 4), WeekKey{2026, 2}},
		{date(2024, 1, 6), WeekKey{2024, 1}},
		{date(2024, 1, 7), WeekKey{2024, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.day.Format("2006-01-02"), func(t *testing.T) {
			if got := sundayCalendar.Week(tt.day); got != tt.want {
				t.Errorf("Week(%s) = %+v, want %+v", tt.day.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	cal := ISOCalendar(time.UTC)
	morning := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"same instant", morning, morning, 0},
		{"later same day", morning, morning.Add(5 * time.Hour), 0},
		{"just short of two days", morning, time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), 1},
		{"exactly two days", morning, time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), 2},
		{"across leap day", date(2024, 2, 28), date(2024, 3, 1), 2},
		{"backwards partial", time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), morning, -1},
		{"backwards whole", time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), morning, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.DaysBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}

	if got := cal.WeeksBetween(date(2024, 1, 1), date(2024, 1, 14)); got != 1 {
		t.Errorf("WeeksBetween(13 days) = %d, want 1", got)
	}
}

func TestCalendarForLocale(t *testing.T) {
	us := CalendarForLocale(language.MustParse("en-US"))
	if us.FirstWeekday != time.Sunday || us.MinDaysInFirstWeek != 1 {
		t.Errorf("en-US calendar = %+v, want Sunday/1", us)
	}

	de := CalendarForLocale(language.MustParse("de-DE"))
	if de.FirstWeekday != time.Monday || de.MinDaysInFirstWeek != 4 {
		t.Errorf("de-DE calendar = %+v, want Monday/4", de)
	}
}

func TestWeekdays(t *testing.T) {
	got := sundayCalendar.Weekdays()
	if got[0] != time.Sunday || got[6] != time.Saturday {
		t.Errorf("Sunday-first weekdays = %v", got)
	}

	got = ISOCalendar(time.UTC).Weekdays()
	if got[0] != time.Monday || got[6] != time.Sunday {
		t.Errorf("ISO weekdays = %v", got)
	}
}

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name        string
		cal         Calendar
		month       time.Time
		rows        int
		leadingZero int // empty cells before the 1st
	}{
		// May 1st 2024 is a Wednesday
		{"ISO May 2024", ISOCalendar(time.UTC), date(2024, 5, 17), 5, 2},
		{"Sunday May 2024", sundayCalendar, date(2024, 5, 17), 5, 3},
		// February 2026 starts on a Sunday and has exactly four weeks
		{"Sunday Feb 2026", sundayCalendar, date(2026, 2, 10), 4, 0},
		{"ISO Feb 2026", ISOCalendar(time.UTC), date(2026, 2, 10), 5, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := tt.cal.MonthGrid(tt.month)
			if len(grid) != tt.rows {
				t.Fatalf("rows = %d, want %d", len(grid), tt.rows)
			}

			var days, leading int
			for i, day := range grid[0] {
				if day.IsZero() {
					leading++
					continue
				}
				if day.Day() != 1 || i != tt.leadingZero {
					t.Errorf("first day %v at column %d, want the 1st at %d", day, i, tt.leadingZero)
				}
				break
			}
			if leading != tt.leadingZero {
				t.Errorf("leading empty cells = %d, want %d", leading, tt.leadingZero)
			}

			for _, row := range grid {
				if len(row) != 7 {
					t.Fatalf("row has %d cells", len(row))
				}
				for i, day := range row {
					if day.IsZero() {
						continue
					}
					days++
					if day.Weekday() != tt.cal.Weekdays()[i] {
						t.Errorf("%v in column %d, want weekday %v", day, i, tt.cal.Weekdays()[i])
					}
				}
			}
			want := tt.cal.MonthStart(tt.month).AddDate(0, 1, -1).Day()
			if days != want {
				t.Errorf("grid has %d days, want %d", days, want)
			}
		})
	}
}

func TestStartOfDayUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	cal := Calendar{Location: tokyo, FirstWeekday: time.Sunday, MinDaysInFirstWeek: 1}

	// 20:00 UTC is already the next day in Tokyo
	got := cal.StartOfDay(time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC))
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, tokyo)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}

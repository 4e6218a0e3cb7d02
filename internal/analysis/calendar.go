package analysis

import (
	"time"

	"golang.org/x/text/language"
)

// Calendar describes how days are grouped into numbered weeks.
// FirstWeekday is the day a week starts on; MinDaysInFirstWeek is how many
// days of the new year the first week must contain.
type Calendar struct {
	Location           *time.Location
	FirstWeekday       time.Weekday
	MinDaysInFirstWeek int
}

// WeekKey identifies a week by its week-numbering year and week of that year.
// The year can differ from the calendar year around New Year.
type WeekKey struct {
	Year int
	Week int
}

// Regions whose calendars start the week on Sunday and count the week
// containing January 1st as week 1
var sundayFirstRegions = map[string]bool{
	"US": true, "CA": true, "MX": true, "BR": true, "JP": true,
	"IL": true, "PH": true, "KR": true, "TW": true, "HK": true,
	"IN": true, "ZA": true, "SA": true,
}

// ISOCalendar returns the ISO-8601 week scheme (Monday, 4 days) in loc
func ISOCalendar(loc *time.Location) Calendar {
	return Calendar{Location: loc, FirstWeekday: time.Monday, MinDaysInFirstWeek: 4}
}

// CalendarForLocale returns the week scheme customary for the locale's
// region in the local time zone. Unknown regions use ISO-8601.
func CalendarForLocale(tag language.Tag) Calendar {
	region, _ := tag.Region()
	if sundayFirstRegions[region.String()] {
		return Calendar{Location: time.Local, FirstWeekday: time.Sunday, MinDaysInFirstWeek: 1}
	}
	return ISOCalendar(time.Local)
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c Calendar) minDays() int {
	if c.MinDaysInFirstWeek < 1 || c.MinDaysInFirstWeek > 7 {
		return 1
	}
	return c.MinDaysInFirstWeek
}

// StartOfDay returns midnight of t's day in the calendar's location
func (c Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.location())
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.location())
}

// WeekStart returns midnight of the first day of the week containing t
func (c Calendar) WeekStart(t time.Time) time.Time {
	day := c.StartOfDay(t)
	offset := (int(day.Weekday()) - int(c.FirstWeekday) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// Weekdays returns the seven weekdays in display order, starting with
// FirstWeekday
func (c Calendar) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = (c.FirstWeekday + time.Weekday(i)) % 7
	}
	return days
}

// MonthStart returns midnight of the first day of t's month
func (c Calendar) MonthStart(t time.Time) time.Time {
	t = t.In(c.location())
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.location())
}

// MonthGrid lays out the month containing t as rows of seven days, each row
// starting on FirstWeekday. Cells before the first and after the last day of
// the month are zero times.
func (c Calendar) MonthGrid(t time.Time) [][]time.Time {
	first := c.MonthStart(t)
	next := first.AddDate(0, 1, 0)

	var rows [][]time.Time
	for start := c.WeekStart(first); start.Before(next); start = start.AddDate(0, 0, 7) {
		row := make([]time.Time, 7)
		for i := range row {
			day := start.AddDate(0, 0, i)
			if !day.Before(first) && day.Before(next) {
				row[i] = day
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Week returns the week-numbering year and week of year for t
func (c Calendar) Week(t time.Time) WeekKey {
	start := c.WeekStart(t)
	// The week belongs to the year holding at least minDays of its days
	year := start.AddDate(0, 0, 7-c.minDays()).Year()

	first := c.WeekStart(time.Date(year, time.January, c.minDays(), 0, 0, 0, 0, c.location()))
	return WeekKey{Year: year, Week: civilDays(first, start)/7 + 1}
}

// DaysBetween returns the number of whole days elapsed from from to to.
// The count is negative when to is before from.
func (c Calendar) DaysBetween(from, to time.Time) int {
	from = from.In(c.location())
	to = to.In(c.location())

	days := civilDays(from, to)
	fromClock := from.Sub(c.StartOfDay(from))
	toClock := to.Sub(c.StartOfDay(to))

	switch {
	case days > 0 && toClock < fromClock:
		days--
	case days < 0 && toClock > fromClock:
		days++
	}
	return days
}

// WeeksBetween returns the number of whole weeks elapsed from from to to
func (c Calendar) WeeksBetween(from, to time.Time) int {
	return c.DaysBetween(from, to) / 7
}

// civilDays counts calendar date changes between a and b, ignoring clock
// time and DST transitions
func civilDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

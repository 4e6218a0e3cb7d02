package tui

import (
	"strings"
	"time"

	"shoetracker/internal/analysis"
)

// runMarker follows the day number of a day with at least one run
const runMarker = "•"

// renderMonthCalendar draws the month containing month as a grid, weeks
// starting on the calendar's first weekday. Run days carry a marker and
// today is underlined.
func renderMonthCalendar(cal analysis.Calendar, month time.Time, runDays []time.Time, today time.Time) string {
	ran := make(map[int64]bool, len(runDays))
	for _, d := range runDays {
		ran[cal.StartOfDay(d).Unix()] = true
	}
	today = cal.StartOfDay(today)

	var header strings.Builder
	for _, wd := range cal.Weekdays() {
		header.WriteString(wd.String()[:2] + "  ")
	}

	lines := []string{
		cardTitleStyle.UnsetMarginBottom().Render(cal.MonthStart(month).Format("January 2006")),
		tableDimStyle.UnsetPadding().Render(strings.TrimRight(header.String(), " ")),
	}

	for _, week := range cal.MonthGrid(month) {
		var row strings.Builder
		for _, day := range week {
			if day.IsZero() {
				row.WriteString("    ")
				continue
			}

			num := day.Format("_2")
			if day.Equal(today) {
				num = calendarTodayStyle.Render(num)
			}
			if ran[day.Unix()] {
				row.WriteString(calendarRunStyle.Render(num+runMarker) + " ")
			} else {
				row.WriteString(num + "  ")
			}
		}
		lines = append(lines, strings.TrimRight(row.String(), " "))
	}

	return strings.Join(lines, "\n")
}

package analysis

import (
	"math"
	"sort"
	"time"

	"shoetracker/internal/store"
)

// MileagePoint is the running distance total at the end of a day
type MileagePoint struct {
	Day   time.Time
	Total float64
}

// WeekMileage is the distance logged during one calendar week
type WeekMileage struct {
	Start time.Time
	Key   WeekKey
	Total float64
}

// Insights holds the chart series for one shoe
type Insights struct {
	Start       time.Time // purchase day
	End         time.Time // archive day or today
	Cumulative  []MileagePoint
	Weekly      []WeekMileage
	WorkoutDays []time.Time
}

// BuildInsights computes the chart series for a shoe, ending at the archive
// date for retired shoes and at now otherwise.
func BuildInsights(shoe store.Shoe, workouts []store.Workout, cal Calendar, now time.Time) Insights {
	end := now
	if shoe.Archived != nil {
		end = *shoe.Archived
	}

	return Insights{
		Start:       cal.StartOfDay(shoe.Purchased),
		End:         cal.StartOfDay(end),
		Cumulative:  CumulativeMileage(workouts, shoe.Purchased, end, cal),
		Weekly:      WeeklyMileage(workouts, shoe.Purchased, end, cal),
		WorkoutDays: WorkoutDays(workouts, cal),
	}
}

// CumulativeMileage returns one point per workout day with the running
// total after that day. The series is anchored at 0 on the purchase day and
// extended flat to the end day when the workouts don't reach either.
// Negative distances count as zero.
func CumulativeMileage(workouts []store.Workout, purchased, end time.Time, cal Calendar) []MileagePoint {
	if len(workouts) == 0 {
		return nil
	}

	sorted := sortedByDate(workouts)
	startDay := cal.StartOfDay(purchased)
	endDay := cal.StartOfDay(end)

	var points []MileagePoint
	var total float64
	for _, w := range sorted {
		total += math.Max(0, w.DistanceKm)
		day := cal.StartOfDay(w.Date)

		if n := len(points); n > 0 && points[n-1].Day.Equal(day) {
			points[n-1].Total = total
			continue
		}
		points = append(points, MileagePoint{Day: day, Total: total})
	}

	if points[0].Day.After(startDay) {
		points = append([]MileagePoint{{Day: startDay, Total: 0}}, points...)
	}
	if points[len(points)-1].Day.Before(endDay) {
		points = append(points, MileagePoint{Day: endDay, Total: total})
	}

	return points
}

// WeeklyMileage returns every week from the one containing the purchase day
// through the one containing the end day, with the distance logged in each.
// Weeks without workouts are included with a zero total. Negative distances
// count as zero.
func WeeklyMileage(workouts []store.Workout, purchased, end time.Time, cal Calendar) []WeekMileage {
	if cal.StartOfDay(end).Before(cal.StartOfDay(purchased)) {
		return nil
	}

	byWeek := make(map[WeekKey]float64)
	for _, w := range workouts {
		byWeek[cal.Week(w.Date)] += math.Max(0, w.DistanceKm)
	}

	last := cal.WeekStart(end)
	var weeks []WeekMileage
	for start := cal.WeekStart(purchased); !start.After(last); start = start.AddDate(0, 0, 7) {
		key := cal.Week(start)
		weeks = append(weeks, WeekMileage{
			Start: start,
			Key:   key,
			Total: byWeek[key],
		})
	}

	return weeks
}

// WorkoutDays returns the distinct days with at least one workout, ascending
func WorkoutDays(workouts []store.Workout, cal Calendar) []time.Time {
	seen := make(map[int64]bool)
	var days []time.Time
	for _, w := range workouts {
		day := cal.StartOfDay(w.Date)
		if seen[day.Unix()] {
			continue
		}
		seen[day.Unix()] = true
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

func sortedByDate(workouts []store.Workout) []store.Workout {
	sorted := make([]store.Workout, len(workouts))
	copy(sorted, workouts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

package analysis

import (
	"testing"
	"time"

	"shoetracker/internal/store"
)

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestCumulativeMileage(t *testing.T) {
	cal := ISOCalendar(time.UTC)
	workouts := []store.Workout{
		workout(at(2024, 5, 5, 7), 10),
		workout(at(2024, 5, 3, 7), 5),
		workout(at(2024, 5, 3, 19), 3),
	}

	got := CumulativeMileage(workouts, at(2024, 5, 1, 10), at(2024, 5, 10, 15), cal)
	want := []MileagePoint{
		{date(2024, 5, 1), 0},
		{date(2024, 5, 3), 8},
		{date(2024, 5, 5), 18},
		{date(2024, 5, 10), 18},
	}

	if len(got) != len(want) {
		t.Fatalf("CumulativeMileage = %d points, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Day.Equal(want[i].Day) || got[i].Total != want[i].Total {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCumulativeMileage_NoAnchorsWhenSpanned(t *testing.T) {
	cal := ISOCalendar(time.UTC)
	workouts := []store.Workout{
		workout(at(2024, 5, 1, 18), 4),
		workout(at(2024, 5, 10, 6), 6),
	}

	got := CumulativeMileage(workouts, at(2024, 5, 1, 9), at(2024, 5, 10, 20), cal)

	if len(got) != 2 {
		t.Fatalf("CumulativeMileage = %+v, want 2 points", got)
	}
	if got[0].Total != 4 || got[1].Total != 10 {
		t.Errorf("totals = [%v %v], want [4 10]", got[0].Total, got[1].Total)
	}
}

func TestCumulativeMileage_ClampsNegative(t *testing.T) {
	cal := ISOCalendar(time.UTC)
	workouts := []store.Workout{
		workout(at(2024, 5, 2, 7), 5),
		workout(at(2024, 5, 3, 7), -2),
	}

	got := CumulativeMileage(workouts, at(2024, 5, 2, 0), at(2024, 5, 3, 0), cal)

	for i := 1; i < len(got); i++ {
		if got[i].Total < got[i-1].Total {
			t.Errorf("series decreased at %d: %+v", i, got)
		}
	}
	if last := got[len(got)-1].Total; last != 5 {
		t.Errorf("final total = %v, want 5", last)
	}
}

func TestCumulativeMileage_Empty(t *testing.T) {
	cal := ISOCalendar(time.UTC)
	if got := CumulativeMileage(nil, at(2024, 5, 1, 0), at(2024, 5, 10, 0), cal); len(got) != 0 {
		t.Errorf("CumulativeMileage(nil) = %+v, want empty", got)
	}
}

func TestWeeklyMileage(t *testing.T) {
	cal := ISOCalendar(time.UTC)
	workouts := []store.Workout{
		workout(at(2024, 5, 2, 7), 5),
		workout(at(2024, 5, 15, 7), 7),
		workout(at(2024, 5, 16, 7), 3),
	}

	got := WeeklyMileage(workouts, at(2024, 5, 1, 12), at(2024, 5, 20, 8), cal)
	want := []WeekMileage{
		{date(2024, 4, 29), WeekKey{2024, 18}, 5},
		{date(2024, 5, 6), WeekKey{2024, 19}, 0},
		{date(2024, 5, 13), WeekKey{2024, 20}, 10},
		{date(2024, 5, 20), WeekKey{2024, 21}, 0},
	}

	if len(got) != len(want) {
		t.Fatalf("WeeklyMileage = %d weeks, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Start.Equal(want[i].Start) || got[i].Key != want[i].Key || got[i].Total != want[i].Total {
			t.Errorf("week %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWeeklyMileage_YearBoundary(t *testing.T) {
	cal := ISOCalendar(time.UTC)
	workouts := []store.Workout{
		workout(at(2024, 12, 31, 7), 8),
		workout(at(2025, 1, 2, 7), 4),
	}

	got := WeeklyMileage(workouts, at(2024, 12, 25, 0), at(2025, 1, 8, 0), cal)
	wantKeys := []WeekKey{{2024, 52}, {2025, 1}, {2025, 2}}

	if len(got) != len(wantKeys) {
		t.Fatalf("WeeklyMileage = %+v, want %d weeks", got, len(wantKeys))
	}
	for i, k := range wantKeys {
		if got[i].Key != k {
			t.Errorf("week %d key = %+v, want %+v", i, got[i].Key, k)
		}
	}
	// Both workouts fall in ISO week 1 of 2025
	if got[1].Total != 12 {
		t.Errorf("2025-W01 total = %v, want 12", got[1].Total)
	}
}

func TestWeeklyMileage_DenseAndSumsToTotal(t *testing.T) {
	for _, cal := range []Calendar{ISOCalendar(time.UTC), sundayCalendar} {
		purchased := at(2023, 11, 14, 9)
		end := at(2024, 3, 2, 18)

		var workouts []store.Workout
		var total float64
		for d := purchased; d.Before(end); d = d.AddDate(0, 0, 3) {
			km := float64(d.Day()%5) + 1
			workouts = append(workouts, workout(d, km))
			total += km
		}

		got := WeeklyMileage(workouts, purchased, end, cal)

		wantWeeks := cal.WeeksBetween(cal.WeekStart(purchased), cal.WeekStart(end)) + 1
		if len(got) != wantWeeks {
			t.Errorf("%v: %d weeks, want %d", cal.FirstWeekday, len(got), wantWeeks)
		}

		var sum float64
		for i, w := range got {
			sum += w.Total
			if i > 0 && w.Start.Sub(got[i-1].Start) != 7*24*time.Hour {
				t.Errorf("%v: gap between weeks %d and %d", cal.FirstWeekday, i-1, i)
			}
		}
		if sum != total {
			t.Errorf("%v: weekly sum = %v, want %v", cal.FirstWeekday, sum, total)
		}
	}
}

func TestWeeklyMileage_ClampsNegative(t *testing.T) {
	cal := ISOCalendar(time.UTC)
	shoe := store.Shoe{Purchased: at(2024, 5, 1, 0), TargetDistance: 500}
	workouts := []store.Workout{
		workout(at(2024, 5, 2, 7), 6),
		workout(at(2024, 5, 3, 7), -4),
	}

	got := WeeklyMileage(workouts, shoe.Purchased, at(2024, 5, 5, 0), cal)
	if len(got) != 1 || got[0].Total != 6 {
		t.Fatalf("WeeklyMileage = %+v, want one week of 6", got)
	}

	metrics := ComputeShoeMetrics(shoe, workouts, at(2024, 5, 5, 0))
	if got[0].Total != metrics.TotalKilometers {
		t.Errorf("weekly total %v != TotalKilometers %v", got[0].Total, metrics.TotalKilometers)
	}
}

func TestWeeklyMileage_EndBeforePurchase(t *testing.T) {
	cal := ISOCalendar(time.UTC)
	if got := WeeklyMileage(nil, at(2024, 5, 10, 0), at(2024, 5, 1, 0), cal); got != nil {
		t.Errorf("WeeklyMileage = %+v, want nil", got)
	}
}

func TestWorkoutDays(t *testing.T) {
	cal := ISOCalendar(time.UTC)
	workouts := []store.Workout{
		workout(at(2024, 5, 3, 19), 3),
		workout(at(2024, 5, 1, 7), 5),
		workout(at(2024, 5, 3, 7), 5),
	}

	got := WorkoutDays(workouts, cal)
	if len(got) != 2 || !got[0].Equal(date(2024, 5, 1)) || !got[1].Equal(date(2024, 5, 3)) {
		t.Errorf("WorkoutDays = %v, want [2024-05-01 2024-05-03]", got)
	}
}

func TestBuildInsights_ArchivedEndsAtArchive(t *testing.T) {
	cal := ISOCalendar(time.UTC)
	archived := at(2024, 5, 20, 12)
	shoe := store.Shoe{Purchased: at(2024, 5, 1, 0), Archived: &archived}
	workouts := []store.Workout{workout(at(2024, 5, 4, 7), 10)}

	ins := BuildInsights(shoe, workouts, cal, at(2025, 1, 1, 0))

	if !ins.End.Equal(date(2024, 5, 20)) {
		t.Errorf("End = %v, want 2024-05-20", ins.End)
	}
	if last := ins.Cumulative[len(ins.Cumulative)-1]; !last.Day.Equal(date(2024, 5, 20)) || last.Total != 10 {
		t.Errorf("last cumulative point = %+v, want 2024-05-20/10", last)
	}
	if len(ins.Weekly) != 4 {
		t.Errorf("Weekly = %d weeks, want 4", len(ins.Weekly))
	}
	if len(ins.WorkoutDays) != 1 {
		t.Errorf("WorkoutDays = %v, want one day", ins.WorkoutDays)
	}
}

package analysis

import (
	"math"
	"time"

	"shoetracker/internal/store"
)

// CloseToExpirationPct is the progress at which a shoe is flagged as nearly worn out
const CloseToExpirationPct = 80.0

// ShoeMetrics holds mileage and depletion figures derived from a shoe's workouts.
// Pointer fields are nil when the value is undefined for the workout set.
type ShoeMetrics struct {
	TotalKilometers    float64
	TotalDuration      time.Duration
	NumberOfRuns       int
	AverageKmPerRun    *float64
	AverageKmPerWeek   *float64
	MaximumDistance    *float64 // longest single run, km
	TotalElevationGain *float64 // meters; nil when no workout recorded elevation
	LastWorkoutDate    *time.Time

	Progress          float64 // percent of target, 0 when target <= 0
	Remainder         float64 // km left before target, never negative
	DaysRemaining     *int
	HasExpired        bool
	CloseToExpiration bool
	IsArchived        bool
	AgeDays           int
}

// ComputeShoeMetrics derives all metrics for a shoe from scratch.
// Archived shoes are measured up to their archive date, others up to now.
func ComputeShoeMetrics(shoe store.Shoe, workouts []store.Workout, now time.Time) ShoeMetrics {
	cal := Calendar{Location: now.Location()}
	end := now
	if shoe.Archived != nil {
		end = *shoe.Archived
	}

	m := ShoeMetrics{
		NumberOfRuns: len(workouts),
		IsArchived:   shoe.IsArchived(),
	}

	var totalKm, totalSeconds, elevation float64
	var hasElevation bool
	var first *time.Time
	for i := range workouts {
		w := &workouts[i]
		totalKm += w.DistanceKm
		totalSeconds += w.DurationSeconds

		if w.ElevationGain != nil {
			elevation += *w.ElevationGain
			hasElevation = true
		}
		if m.MaximumDistance == nil || w.DistanceKm > *m.MaximumDistance {
			m.MaximumDistance = floatPtr(w.DistanceKm)
		}
		if first == nil || w.Date.Before(*first) {
			first = &w.Date
		}
		if m.LastWorkoutDate == nil || w.Date.After(*m.LastWorkoutDate) {
			d := w.Date
			m.LastWorkoutDate = &d
		}
	}

	m.TotalKilometers = math.Max(0, totalKm)
	m.TotalDuration = time.Duration(math.Max(0, totalSeconds) * float64(time.Second))
	if hasElevation {
		m.TotalElevationGain = floatPtr(elevation)
	}

	if m.NumberOfRuns > 0 {
		m.AverageKmPerRun = floatPtr(m.TotalKilometers / float64(m.NumberOfRuns))
	}

	if first != nil {
		weeks := cal.WeeksBetween(*first, end)
		if weeks > 0 {
			m.AverageKmPerWeek = floatPtr(m.TotalKilometers / float64(weeks))
		} else {
			m.AverageKmPerWeek = floatPtr(m.TotalKilometers)
		}
	}

	target := float64(shoe.TargetDistance)
	if shoe.TargetDistance > 0 {
		m.Progress = m.TotalKilometers / target * 100
	}
	m.Remainder = math.Max(target-m.TotalKilometers, 0)
	m.HasExpired = m.Remainder <= 0
	m.CloseToExpiration = m.Progress >= CloseToExpirationPct && !m.HasExpired

	if m.AverageKmPerWeek != nil && *m.AverageKmPerWeek > 0 {
		days := int(math.Ceil(m.Remainder / *m.AverageKmPerWeek * 7))
		m.DaysRemaining = &days
	}

	if age := cal.DaysBetween(shoe.Purchased, end); age > 0 {
		m.AgeDays = age
	}

	return m
}

func floatPtr(v float64) *float64 {
	return &v
}

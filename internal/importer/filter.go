// Package importer selects workouts from an external health data source and
// attributes them to shoes.
package importer

import (
	"context"
	"time"

	"shoetracker/internal/config"
	"shoetracker/internal/store"
)

// Candidate is a workout offered by a health data source that has not been
// checked against the local store yet
type Candidate struct {
	ExternalID          string
	Name                string
	Start               time.Time
	DistanceMeters      *float64
	DurationSeconds     float64
	ElevationGainMeters *float64
}

// DistanceKm returns the candidate's distance in kilometres; ok is false when
// the source did not record one
func (c Candidate) DistanceKm() (km float64, ok bool) {
	if c.DistanceMeters == nil {
		return 0, false
	}
	return *c.DistanceMeters / 1000, true
}

// HealthDataSource provides running workouts recorded outside the app
type HealthDataSource interface {
	// RequestAuthorization ensures the source may be read
	RequestAuthorization(ctx context.Context) error
	// FetchRunningWorkouts returns runs starting at or after since (all runs
	// when since is nil), most recent first
	FetchRunningWorkouts(ctx context.Context, since *time.Time) ([]Candidate, error)
}

// Repository is the persistence the importer needs
type Repository interface {
	AllAssignedExternalIDs() (map[string]struct{}, error)
	AssignWorkout(p store.AssignWorkoutParams, shoeID string) (*store.Workout, error)
}

// Since returns the earliest start time allowed by the range, or nil when
// the range is unbounded
func Since(timeRange config.TimeRangeOption, now time.Time) *time.Time {
	days, ok := timeRange.Days()
	if !ok {
		return nil
	}
	since := now.AddDate(0, 0, -days)
	return &since
}

// Filter returns the candidates that may be assigned to a shoe purchased at
// purchased: inside the time range, not yet assigned to any shoe, and not
// run before the purchase. Input order is preserved.
func Filter(candidates []Candidate, assigned map[string]struct{}, timeRange config.TimeRangeOption, purchased, now time.Time) []Candidate {
	since := Since(timeRange, now)

	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if since != nil && c.Start.Before(*since) {
			continue
		}
		if _, ok := assigned[c.ExternalID]; ok {
			continue
		}
		if c.Start.Before(purchased) {
			continue
		}
		eligible = append(eligible, c)
	}
	return eligible
}

package store

import "time"

// Auth is the connected Strava account and its OAuth tokens
type Auth struct {
	AthleteID    int64
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	ConnectedAt  time.Time  // zero on save means now
	RefreshedAt  *time.Time // nil until the first token refresh
}

// Shoe is a tracked pair of shoes with a mileage target
type Shoe struct {
	ID             string     `yaml:"id"`
	Name           string     `yaml:"name"`
	Color          string     `yaml:"color,omitempty"` // empty when unset
	Created        time.Time  `yaml:"created"`
	Purchased      time.Time  `yaml:"purchased"`
	TargetDistance int        `yaml:"target_distance"`    // kilometers
	Archived       *time.Time `yaml:"archived,omitempty"` // nil while in rotation
}

// IsArchived reports whether the shoe has been retired
func (s Shoe) IsArchived() bool {
	return s.Archived != nil
}

// Workout is one imported run attributed to a shoe
type Workout struct {
	ID              string    `yaml:"id"`
	ExternalID      string    `yaml:"external_id"` // health-source identifier, unique
	ShoeID          string    `yaml:"shoe_id"`
	Date            time.Time `yaml:"date"`
	DistanceKm      float64   `yaml:"distance_km"`
	DurationSeconds float64   `yaml:"duration_seconds"`
	ElevationGain   *float64  `yaml:"elevation_gain,omitempty"` // meters, nullable
}

// AssignWorkoutParams describes an external workout being attributed to a shoe
type AssignWorkoutParams struct {
	ExternalID      string
	Date            time.Time
	DistanceKm      float64
	DurationSeconds float64
	ElevationGain   *float64
}

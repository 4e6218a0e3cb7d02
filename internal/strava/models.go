package strava

import (
	"fmt"
	"time"
)

// Activity represents a Strava activity summary from the API
type Activity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	SportType          string    `json:"sport_type"`
	StartDate          time.Time `json:"start_date"`
	Distance           float64   `json:"distance"`             // meters
	MovingTime         int       `json:"moving_time"`          // seconds
	ElapsedTime        int       `json:"elapsed_time"`         // seconds
	TotalElevationGain *float64  `json:"total_elevation_gain"` // meters
	GearID             string    `json:"gear_id"`
	Manual             bool      `json:"manual"`
}

// Sport types that wear running shoes
var runSportTypes = map[string]bool{
	"Run":        true,
	"TrailRun":   true,
	"VirtualRun": true,
}

// IsRun reports whether the activity is a run of any kind.
// Older activities only carry Type.
func (a Activity) IsRun() bool {
	if a.SportType != "" {
		return runSportTypes[a.SportType]
	}
	return runSportTypes[a.Type]
}

// ExternalID returns the identifier stored with imported workouts
func (a Activity) ExternalID() string {
	return fmt.Sprintf("strava:%d", a.ID)
}

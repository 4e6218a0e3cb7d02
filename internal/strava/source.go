package strava

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"shoetracker/internal/importer"
	"shoetracker/internal/logging"
)

// Source reads runs from a Strava account for assignment to shoes
type Source struct {
	client *Client
	tokens oauth2.TokenSource
	logger *zap.Logger
}

// NewSource creates a health data source backed by the Strava API.
// tokens may be nil when no account is connected.
func NewSource(tokens oauth2.TokenSource, logger *zap.Logger) *Source {
	s := &Source{tokens: tokens, logger: logging.OrNop(logger)}
	if tokens != nil {
		s.client = NewClient(tokens)
	}
	return s
}

// RequestAuthorization checks that a usable Strava token is available
func (s *Source) RequestAuthorization(ctx context.Context) error {
	if s.tokens == nil {
		return fmt.Errorf("%w: strava account not connected, run 'shoes login'", importer.ErrAuthorizationDenied)
	}
	if _, err := s.tokens.Token(); err != nil {
		return fmt.Errorf("%w: %w", importer.ErrAuthorizationDenied, err)
	}
	return nil
}

// FetchRunningWorkouts returns runs started at or after since, most recent first
func (s *Source) FetchRunningWorkouts(ctx context.Context, since *time.Time) ([]importer.Candidate, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: strava account not connected", importer.ErrAuthorizationDenied)
	}

	var after time.Time
	if since != nil {
		// Strava's bound is exclusive
		after = since.Add(-time.Second)
	}

	activities, err := s.client.GetAllActivities(ctx, after, func(fetched int) {
		s.logger.Debug("fetched strava activities", zap.Int("count", fetched))
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Unauthorized() {
			return nil, fmt.Errorf("%w: %w", importer.ErrAuthorizationDenied, err)
		}
		return nil, err
	}

	candidates := toCandidates(activities)

	short, daily := s.client.RateLimitStatus()
	s.logger.Info("fetched strava runs",
		zap.Int("activities", len(activities)),
		zap.Int("runs", len(candidates)),
		zap.Int("rate_short_remaining", short),
		zap.Int("rate_daily_remaining", daily),
	)

	return candidates, nil
}

// toCandidates keeps runs and orders them most recent first
func toCandidates(activities []Activity) []importer.Candidate {
	candidates := make([]importer.Candidate, 0, len(activities))
	for _, a := range activities {
		if !a.IsRun() {
			continue
		}

		c := importer.Candidate{
			ExternalID:          a.ExternalID(),
			Name:                a.Name,
			Start:               a.StartDate,
			DurationSeconds:     float64(a.MovingTime),
			ElevationGainMeters: a.TotalElevationGain,
		}
		if a.Distance > 0 {
			d := a.Distance
			c.DistanceMeters = &d
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Start.After(candidates[j].Start)
	})
	return candidates
}

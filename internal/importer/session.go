package importer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"shoetracker/internal/config"
	"shoetracker/internal/logging"
	"shoetracker/internal/store"
)

var (
	// ErrImportInProgress is returned when Load is called while another load runs
	ErrImportInProgress = errors.New("workout import already in progress")
	// ErrAuthorizationDenied is returned when the health data source refuses access
	ErrAuthorizationDenied = errors.New("health data authorization denied")
	// ErrSourceUnavailable is returned when workouts could not be fetched
	ErrSourceUnavailable = errors.New("health data source unavailable")
	// ErrMissingDistance is returned when assigning a candidate without a distance
	ErrMissingDistance = errors.New("workout has no distance")
)

// Session loads assignable workouts for one shoe at a time
type Session struct {
	source    HealthDataSource
	repo      Repository
	timeRange config.TimeRangeOption
	logger    *zap.Logger
	now       func() time.Time

	busy atomic.Bool
}

// NewSession creates an import session reading from source and writing to repo
func NewSession(source HealthDataSource, repo Repository, timeRange config.TimeRangeOption, logger *zap.Logger) *Session {
	return &Session{
		source:    source,
		repo:      repo,
		timeRange: timeRange,
		logger:    logging.OrNop(logger),
		now:       time.Now,
	}
}

// Loading reports whether a Load is running
func (s *Session) Loading() bool {
	return s.busy.Load()
}

// Load fetches the workouts that can still be assigned to shoe.
// On any failure it returns no candidates.
func (s *Session) Load(ctx context.Context, shoe store.Shoe) ([]Candidate, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrImportInProgress
	}
	defer s.busy.Store(false)

	start := time.Now()
	now := s.now()

	if err := s.source.RequestAuthorization(ctx); err != nil {
		s.logger.Warn("health data authorization failed", zap.Error(err))
		return nil, wrapSentinel(ErrAuthorizationDenied, err)
	}

	assigned, err := s.repo.AllAssignedExternalIDs()
	if err != nil {
		return nil, fmt.Errorf("reading assigned workouts: %w", err)
	}

	candidates, err := s.source.FetchRunningWorkouts(ctx, Since(s.timeRange, now))
	if err != nil {
		s.logger.Warn("fetching workouts failed", zap.Error(err))
		return nil, wrapSentinel(ErrSourceUnavailable, err)
	}

	eligible := Filter(candidates, assigned, s.timeRange, shoe.Purchased, now)

	s.logger.Info("loaded workout candidates",
		zap.String("shoe_id", shoe.ID),
		zap.String("time_range", string(s.timeRange)),
		zap.Int("fetched", len(candidates)),
		zap.Int("eligible", len(eligible)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return eligible, nil
}

// Assign attributes a candidate to a shoe. Assigning a workout that already
// belongs to another shoe moves it.
func (s *Session) Assign(ctx context.Context, shoeID string, c Candidate) (*store.Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	km, ok := c.DistanceKm()
	if !ok {
		return nil, fmt.Errorf("assigning %s: %w", c.ExternalID, ErrMissingDistance)
	}

	params := store.AssignWorkoutParams{
		ExternalID:      c.ExternalID,
		Date:            c.Start,
		DistanceKm:      km,
		DurationSeconds: c.DurationSeconds,
		ElevationGain:   c.ElevationGainMeters,
	}

	w, err := s.repo.AssignWorkout(params, shoeID)
	if err != nil {
		return nil, fmt.Errorf("assigning %s: %w", c.ExternalID, err)
	}

	s.logger.Info("assigned workout",
		zap.String("shoe_id", shoeID),
		zap.String("external_id", c.ExternalID),
		zap.Float64("distance_km", km),
	)
	return w, nil
}

func wrapSentinel(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
